package main

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/papergrade/papergrade"
	"github.com/papergrade/papergrade/crawl"
	"github.com/papergrade/papergrade/fs"
)

// Run executes the crawl command: direct PDFs are downloaded and stored
// as-is, documentation sites are crawled and reassembled into one PDF.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	result, err := deps.Classifier.Classify(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", papergrade.ErrorMessage(err))
		return err
	}

	switch result.Kind {
	case papergrade.KindDirectPDF, papergrade.KindPDFViewer:
		return c.downloadPDF(deps, result.PDFURL)
	case papergrade.KindDocSite:
		return c.crawlSite(deps)
	}

	fmt.Fprintf(deps.Stderr, "could not determine what %s points at; no action taken\n", c.URL)
	return nil
}

func (c *CrawlCmd) downloadPDF(deps *Dependencies, pdfURL string) error {
	body, err := deps.Fetcher.Fetch(deps.Ctx, pdfURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", papergrade.ErrorMessage(err))
		return err
	}

	key := fs.ObjectKey(documentName(pdfURL, ".pdf"), []byte(body))
	stored, err := deps.Store.Put(deps.Ctx, key, strings.NewReader(body))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", papergrade.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "stored %s\n", stored)
	return nil
}

func (c *CrawlCmd) crawlSite(deps *Dependencies) error {
	pages, err := deps.Crawler.Crawl(deps.Ctx, c.URL, func(e crawl.ProgressEvent) {
		switch e.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stderr, "found %d pages\n", e.Total)
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stderr, "[%d/%d] %s\n", e.Completed, e.Total, e.Title)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "[%d/%d] skipped %s: %s\n", e.Completed, e.Total, e.URL, e.Err)
		}
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", papergrade.ErrorMessage(err))
		return err
	}
	deps.Session.RecordCrawl(len(pages))

	title := c.Title
	if title == "" {
		title = documentName(c.URL, "")
	}

	data, err := deps.Assembler.AssemblePages(deps.Ctx, title, pages)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", papergrade.ErrorMessage(err))
		return err
	}

	key := fs.ObjectKey(documentName(c.URL, ".pdf"), data)
	stored, err := deps.Store.Put(deps.Ctx, key, bytes.NewReader(data))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", papergrade.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "crawled %d pages\n", len(pages))
	fmt.Fprintf(deps.Stdout, "stored %s\n", stored)
	return nil
}

// documentName derives a readable artifact name from a URL.
func documentName(rawURL, ext string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "document" + ext
	}
	return u.Host + ext
}
