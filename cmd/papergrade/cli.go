package main

import (
	"context"
	"io"
	"time"

	"github.com/papergrade/papergrade"
	"github.com/papergrade/papergrade/analyze"
	"github.com/papergrade/papergrade/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Session    *papergrade.Session
	Fetcher    papergrade.Fetcher
	Classifier papergrade.Classifier
	Crawler    *crawl.Crawler
	Analyzer   *analyze.Analyzer
	Assembler  papergrade.DocumentAssembler
	PDFText    papergrade.PDFTextExtractor
	Store      papergrade.ObjectStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log fetches and provider calls to stderr"`

	Classify ClassifyCmd `cmd:"" help:"Classify a whitepaper URL"`
	Crawl    CrawlCmd    `cmd:"" help:"Crawl a documentation site or download a PDF and store the result"`
	Analyze  AnalyzeCmd  `cmd:"" help:"Analyze a whitepaper and produce a score report"`
	Score    ScoreCmd    `cmd:"" help:"Extract a score from an analysis text file"`
}

// ClassifyCmd is the "classify" subcommand.
type ClassifyCmd struct {
	URL string `arg:"" help:"Whitepaper or documentation URL"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL   string        `arg:"" help:"Whitepaper or documentation URL"`
	Title string        `help:"Title for the assembled document (defaults to the site host)"`
	Delay time.Duration `default:"500ms" help:"Courtesy delay between page fetches"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	Target string `arg:"" help:"Whitepaper URL or path to a local PDF"`
}

// ScoreCmd is the "score" subcommand.
type ScoreCmd struct {
	File      string `arg:"" help:"Text file containing analysis output"`
	MaxPoints int    `default:"30" help:"Maximum points for the aspect"`
}
