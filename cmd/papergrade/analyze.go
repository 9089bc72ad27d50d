package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/papergrade/papergrade"
	"github.com/papergrade/papergrade/fs"
)

// Run executes the analyze command: resolve the target to whitepaper text,
// run the four-aspect evaluation, and store the rendered score report.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	if !deps.Session.AllowAnalysis() {
		err := papergrade.Errorf(papergrade.EUNAVAILABLE, "analysis limit reached for this session (%d)", deps.Session.AnalysisLimit)
		fmt.Fprintf(deps.Stderr, "error: %s\n", papergrade.ErrorMessage(err))
		return err
	}

	text, err := c.resolveText(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", papergrade.ErrorMessage(err))
		return err
	}
	if text == "" {
		fmt.Fprintf(deps.Stderr, "could not determine what %s points at; no action taken\n", c.Target)
		return nil
	}

	report := deps.Analyzer.AnalyzeAll(deps.Ctx, c.Target, text)
	deps.Session.RecordAnalysis(report)

	for _, aspect := range report.Aspects {
		fmt.Fprintf(deps.Stdout, "%-12s %5.1f / %d\n", aspect.Aspect, aspect.Score, aspect.MaxPoints)
	}
	fmt.Fprintf(deps.Stdout, "%-12s %5.1f / %d\n", "total", report.Total, report.MaxTotal)

	data, err := deps.Assembler.AssembleReport(report)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", papergrade.ErrorMessage(err))
		return err
	}

	key := fs.ObjectKey("report-"+report.ID+".pdf", data)
	stored, err := deps.Store.Put(deps.Ctx, key, bytes.NewReader(data))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", papergrade.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "stored %s\n", stored)
	return nil
}

// resolveText turns the target into analyzable text. Local files are read
// as PDFs; URLs are classified and either downloaded or crawled. An empty
// result with a nil error means the target could not be classified.
func (c *AnalyzeCmd) resolveText(deps *Dependencies) (string, error) {
	if info, err := os.Stat(c.Target); err == nil && !info.IsDir() {
		data, err := os.ReadFile(c.Target)
		if err != nil {
			return "", err
		}
		return deps.PDFText.ExtractText(data)
	}

	result, err := deps.Classifier.Classify(deps.Ctx, c.Target)
	if err != nil {
		return "", err
	}

	switch result.Kind {
	case papergrade.KindDirectPDF, papergrade.KindPDFViewer:
		body, err := deps.Fetcher.Fetch(deps.Ctx, result.PDFURL)
		if err != nil {
			return "", err
		}
		return deps.PDFText.ExtractText([]byte(body))
	case papergrade.KindDocSite:
		pages, err := deps.Crawler.Crawl(deps.Ctx, c.Target, nil)
		if err != nil {
			return "", err
		}
		deps.Session.RecordCrawl(len(pages))

		var sb strings.Builder
		for _, page := range pages {
			if page.Title != "" {
				sb.WriteString(page.Title)
				sb.WriteString("\n")
			}
			sb.WriteString(page.Content)
			sb.WriteString("\n\n")
		}
		return sb.String(), nil
	}

	return "", nil
}
