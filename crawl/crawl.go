// Package crawl provides documentation-site crawl orchestration. It
// coordinates menu discovery, page fetching, and content extraction into an
// ordered sequence of page records, handling partial failures per page.
package crawl

import (
	"context"
	"net/url"

	"github.com/papergrade/papergrade"
)

// ProgressType indicates the type of progress event.
type ProgressType int

// Progress event types.
const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Title     string
	URL       string
	Err       error
}

// ProgressFunc is a callback for reporting crawl progress. The crawl
// behaves identically with no subscriber attached.
type ProgressFunc func(event ProgressEvent)

// Crawler orchestrates menu extraction and page extraction across all
// discovered pages of a documentation site. Execution is strictly
// sequential; the Throttle is a courtesy delay between page fetches, not a
// concurrency primitive.
type Crawler struct {
	Fetcher  papergrade.Fetcher
	Menu     papergrade.MenuExtractor
	Pages    papergrade.PageExtractor
	Throttle *Throttle
}

// Crawl discovers the site's menu from the root URL and extracts every
// linked page in menu order. An empty menu degrades to extracting the root
// as a single standalone page. A single page's failure is reported through
// the progress callback and skipped; only "zero pages extracted" is
// terminal, returned as ENOTFOUND. Cancellation mid-crawl returns the
// pages collected so far, or the context's error when there are none.
func (c *Crawler) Crawl(ctx context.Context, rootURL string, progress ProgressFunc) ([]*papergrade.Page, error) {
	rootHTML, fetchErr := c.Fetcher.Fetch(ctx, rootURL)

	var items []papergrade.MenuItem
	if fetchErr == nil {
		// Menu extraction failures are non-fatal: no menu means the site
		// is treated as a single page.
		if extracted, err := c.Menu.ExtractMenu(rootHTML, rootURL); err == nil {
			items = extracted
		}
	}

	if len(items) == 0 {
		if fetchErr != nil {
			return nil, papergrade.Errorf(papergrade.ENOTFOUND, "no content could be extracted from %s", rootURL)
		}
		page, err := c.Pages.ExtractPage(rootHTML, rootURL)
		if err != nil {
			return nil, papergrade.Errorf(papergrade.ENOTFOUND, "no content could be extracted from %s", rootURL)
		}
		notify(progress, ProgressEvent{Type: ProgressFinished, Completed: 1, Total: 1})
		return []*papergrade.Page{page}, nil
	}

	notify(progress, ProgressEvent{Type: ProgressStarted, Total: len(items)})

	var pages []*papergrade.Page
	var waitErr error
	for i, item := range items {
		if waitErr = c.wait(ctx, item.URL); waitErr != nil {
			break // context canceled
		}

		page, err := c.fetchPage(ctx, item.URL)
		if err != nil {
			notify(progress, ProgressEvent{
				Type:      ProgressFailed,
				Completed: i + 1,
				Total:     len(items),
				Title:     item.Title,
				URL:       item.URL,
				Err:       err,
			})
			continue
		}

		pages = append(pages, page)
		notify(progress, ProgressEvent{
			Type:      ProgressCompleted,
			Completed: i + 1,
			Total:     len(items),
			Title:     item.Title,
			URL:       item.URL,
		})
	}

	if len(pages) == 0 {
		if waitErr != nil {
			return nil, waitErr
		}
		return nil, papergrade.Errorf(papergrade.ENOTFOUND, "no pages could be extracted from %s", rootURL)
	}

	notify(progress, ProgressEvent{Type: ProgressFinished, Completed: len(pages), Total: len(items)})
	return pages, nil
}

// fetchPage fetches and extracts a single page. No retries: page-level
// failures are skipped by the caller, not retried.
func (c *Crawler) fetchPage(ctx context.Context, pageURL string) (*papergrade.Page, error) {
	html, err := c.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return c.Pages.ExtractPage(html, pageURL)
}

func (c *Crawler) wait(ctx context.Context, rawURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.Throttle == nil {
		return nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	return c.Throttle.Wait(ctx, u.Host)
}

func notify(progress ProgressFunc, event ProgressEvent) {
	if progress != nil {
		progress(event)
	}
}
