package crawl_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/papergrade/papergrade"
	"github.com/papergrade/papergrade/crawl"
	"github.com/papergrade/papergrade/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrawler_Crawl(t *testing.T) {
	t.Parallel()

	t.Run("crawls all menu pages in order", func(t *testing.T) {
		t.Parallel()

		items := []papergrade.MenuItem{
			{Title: "Introduction", URL: "https://docs.example.com/intro", Level: 0},
			{Title: "Tokenomics", URL: "https://docs.example.com/tokenomics", Level: 1},
			{Title: "Roadmap", URL: "https://docs.example.com/roadmap", Level: 1},
		}

		var fetched []string
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				fetched = append(fetched, url)
				return "<html>" + url + "</html>", nil
			},
		}
		menu := &mock.MenuExtractor{
			ExtractMenuFn: func(html, baseURL string) ([]papergrade.MenuItem, error) {
				return items, nil
			},
		}
		extractor := &mock.PageExtractor{
			ExtractPageFn: func(html, pageURL string) (*papergrade.Page, error) {
				return &papergrade.Page{SourceURL: pageURL, Content: html}, nil
			},
		}

		var events []crawl.ProgressEvent
		c := &crawl.Crawler{Fetcher: fetcher, Menu: menu, Pages: extractor}
		pages, err := c.Crawl(context.Background(), "https://docs.example.com", func(e crawl.ProgressEvent) {
			events = append(events, e)
		})
		require.NoError(t, err)

		require.Len(t, pages, 3)
		assert.Equal(t, "https://docs.example.com/intro", pages[0].SourceURL)
		assert.Equal(t, "https://docs.example.com/tokenomics", pages[1].SourceURL)
		assert.Equal(t, "https://docs.example.com/roadmap", pages[2].SourceURL)

		// Root fetched once for menu discovery, then one fetch per page.
		assert.Equal(t, []string{
			"https://docs.example.com",
			"https://docs.example.com/intro",
			"https://docs.example.com/tokenomics",
			"https://docs.example.com/roadmap",
		}, fetched)

		require.Len(t, events, 5)
		assert.Equal(t, crawl.ProgressStarted, events[0].Type)
		assert.Equal(t, 3, events[0].Total)
		assert.Equal(t, crawl.ProgressCompleted, events[1].Type)
		assert.Equal(t, "Introduction", events[1].Title)
		assert.Equal(t, 1, events[1].Completed)
		assert.Equal(t, crawl.ProgressCompleted, events[2].Type)
		assert.Equal(t, crawl.ProgressCompleted, events[3].Type)
		assert.Equal(t, crawl.ProgressFinished, events[4].Type)
		assert.Equal(t, 3, events[4].Completed)
	})

	t.Run("skips failed pages and continues", func(t *testing.T) {
		t.Parallel()

		items := []papergrade.MenuItem{
			{Title: "Intro", URL: "https://docs.example.com/intro"},
			{Title: "Broken", URL: "https://docs.example.com/broken"},
			{Title: "Roadmap", URL: "https://docs.example.com/roadmap"},
		}

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				if url == "https://docs.example.com/broken" {
					return "", fmt.Errorf("connection reset")
				}
				return "<html></html>", nil
			},
		}
		menu := &mock.MenuExtractor{
			ExtractMenuFn: func(html, baseURL string) ([]papergrade.MenuItem, error) {
				return items, nil
			},
		}
		extractor := &mock.PageExtractor{
			ExtractPageFn: func(html, pageURL string) (*papergrade.Page, error) {
				return &papergrade.Page{SourceURL: pageURL}, nil
			},
		}

		var failed []crawl.ProgressEvent
		c := &crawl.Crawler{Fetcher: fetcher, Menu: menu, Pages: extractor}
		pages, err := c.Crawl(context.Background(), "https://docs.example.com", func(e crawl.ProgressEvent) {
			if e.Type == crawl.ProgressFailed {
				failed = append(failed, e)
			}
		})
		require.NoError(t, err)

		require.Len(t, pages, 2)
		assert.Equal(t, "https://docs.example.com/intro", pages[0].SourceURL)
		assert.Equal(t, "https://docs.example.com/roadmap", pages[1].SourceURL)

		require.Len(t, failed, 1)
		assert.Equal(t, "https://docs.example.com/broken", failed[0].URL)
		assert.Equal(t, "Broken", failed[0].Title)
		assert.Error(t, failed[0].Err)
	})

	t.Run("degrades to single page when no menu found", func(t *testing.T) {
		t.Parallel()

		var fetchCount int
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				fetchCount++
				return "<html>root</html>", nil
			},
		}
		menu := &mock.MenuExtractor{
			ExtractMenuFn: func(html, baseURL string) ([]papergrade.MenuItem, error) {
				return nil, nil
			},
		}
		extractor := &mock.PageExtractor{
			ExtractPageFn: func(html, pageURL string) (*papergrade.Page, error) {
				return &papergrade.Page{SourceURL: pageURL, Content: "root content"}, nil
			},
		}

		var events []crawl.ProgressEvent
		c := &crawl.Crawler{Fetcher: fetcher, Menu: menu, Pages: extractor}
		pages, err := c.Crawl(context.Background(), "https://docs.example.com", func(e crawl.ProgressEvent) {
			events = append(events, e)
		})
		require.NoError(t, err)

		require.Len(t, pages, 1)
		assert.Equal(t, "https://docs.example.com", pages[0].SourceURL)

		// The root HTML fetched for menu discovery is reused.
		assert.Equal(t, 1, fetchCount)

		require.Len(t, events, 1)
		assert.Equal(t, crawl.ProgressFinished, events[0].Type)
		assert.Equal(t, 1, events[0].Total)
	})

	t.Run("returns ENOTFOUND when nothing can be extracted", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html></html>", nil
			},
		}
		menu := &mock.MenuExtractor{
			ExtractMenuFn: func(html, baseURL string) ([]papergrade.MenuItem, error) {
				return nil, nil
			},
		}
		extractor := &mock.PageExtractor{
			ExtractPageFn: func(html, pageURL string) (*papergrade.Page, error) {
				return nil, papergrade.Errorf(papergrade.ENOTFOUND, "no content container found at %s", pageURL)
			},
		}

		c := &crawl.Crawler{Fetcher: fetcher, Menu: menu, Pages: extractor}
		pages, err := c.Crawl(context.Background(), "https://docs.example.com", nil)
		assert.Nil(t, pages)
		assert.Equal(t, papergrade.ENOTFOUND, papergrade.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND when every page fails", func(t *testing.T) {
		t.Parallel()

		items := []papergrade.MenuItem{
			{Title: "Intro", URL: "https://docs.example.com/intro"},
			{Title: "Roadmap", URL: "https://docs.example.com/roadmap"},
		}

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				if url == "https://docs.example.com" {
					return "<html></html>", nil
				}
				return "", fmt.Errorf("503 service unavailable")
			},
		}
		menu := &mock.MenuExtractor{
			ExtractMenuFn: func(html, baseURL string) ([]papergrade.MenuItem, error) {
				return items, nil
			},
		}
		extractor := &mock.PageExtractor{
			ExtractPageFn: func(html, pageURL string) (*papergrade.Page, error) {
				return &papergrade.Page{SourceURL: pageURL}, nil
			},
		}

		c := &crawl.Crawler{Fetcher: fetcher, Menu: menu, Pages: extractor}
		pages, err := c.Crawl(context.Background(), "https://docs.example.com", nil)
		assert.Nil(t, pages)
		assert.Equal(t, papergrade.ENOTFOUND, papergrade.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND when root fetch fails", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", fmt.Errorf("dial tcp: no such host")
			},
		}
		menu := &mock.MenuExtractor{
			ExtractMenuFn: func(html, baseURL string) ([]papergrade.MenuItem, error) {
				t.Fatal("menu extractor must not be called when the root fetch fails")
				return nil, nil
			},
		}
		extractor := &mock.PageExtractor{
			ExtractPageFn: func(html, pageURL string) (*papergrade.Page, error) {
				t.Fatal("page extractor must not be called when the root fetch fails")
				return nil, nil
			},
		}

		c := &crawl.Crawler{Fetcher: fetcher, Menu: menu, Pages: extractor}
		pages, err := c.Crawl(context.Background(), "https://docs.example.com", nil)
		assert.Nil(t, pages)
		assert.Equal(t, papergrade.ENOTFOUND, papergrade.ErrorCode(err))
	})

	t.Run("menu extraction error degrades to single page", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html>root</html>", nil
			},
		}
		menu := &mock.MenuExtractor{
			ExtractMenuFn: func(html, baseURL string) ([]papergrade.MenuItem, error) {
				return nil, papergrade.Errorf(papergrade.EINVALID, "invalid base URL")
			},
		}
		extractor := &mock.PageExtractor{
			ExtractPageFn: func(html, pageURL string) (*papergrade.Page, error) {
				return &papergrade.Page{SourceURL: pageURL}, nil
			},
		}

		c := &crawl.Crawler{Fetcher: fetcher, Menu: menu, Pages: extractor}
		pages, err := c.Crawl(context.Background(), "https://docs.example.com", nil)
		require.NoError(t, err)
		require.Len(t, pages, 1)
		assert.Equal(t, "https://docs.example.com", pages[0].SourceURL)
	})

	t.Run("cancellation with nothing collected returns the context error", func(t *testing.T) {
		t.Parallel()

		items := []papergrade.MenuItem{
			{Title: "Broken", URL: "https://docs.example.com/broken"},
			{Title: "Never", URL: "https://docs.example.com/never"},
		}

		ctx, cancel := context.WithCancel(context.Background())
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				if url == "https://docs.example.com" {
					return "<html></html>", nil
				}
				return "", fmt.Errorf("503 service unavailable")
			},
		}
		menu := &mock.MenuExtractor{
			ExtractMenuFn: func(html, baseURL string) ([]papergrade.MenuItem, error) {
				return items, nil
			},
		}
		extractor := &mock.PageExtractor{
			ExtractPageFn: func(html, pageURL string) (*papergrade.Page, error) {
				return &papergrade.Page{SourceURL: pageURL}, nil
			},
		}

		c := &crawl.Crawler{Fetcher: fetcher, Menu: menu, Pages: extractor}
		pages, err := c.Crawl(ctx, "https://docs.example.com", func(e crawl.ProgressEvent) {
			if e.Type == crawl.ProgressFailed {
				cancel() // stop before the second item
			}
		})
		assert.Nil(t, pages)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("cancellation after partial progress returns collected pages", func(t *testing.T) {
		t.Parallel()

		items := []papergrade.MenuItem{
			{Title: "Intro", URL: "https://docs.example.com/intro"},
			{Title: "Never", URL: "https://docs.example.com/never"},
		}

		ctx, cancel := context.WithCancel(context.Background())
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "<html></html>", nil
			},
		}
		menu := &mock.MenuExtractor{
			ExtractMenuFn: func(html, baseURL string) ([]papergrade.MenuItem, error) {
				return items, nil
			},
		}
		extractor := &mock.PageExtractor{
			ExtractPageFn: func(html, pageURL string) (*papergrade.Page, error) {
				return &papergrade.Page{SourceURL: pageURL}, nil
			},
		}

		c := &crawl.Crawler{Fetcher: fetcher, Menu: menu, Pages: extractor}
		pages, err := c.Crawl(ctx, "https://docs.example.com", func(e crawl.ProgressEvent) {
			if e.Type == crawl.ProgressCompleted {
				cancel()
			}
		})
		require.NoError(t, err)
		require.Len(t, pages, 1)
		assert.Equal(t, "https://docs.example.com/intro", pages[0].SourceURL)
	})

	t.Run("finished event reports the success count", func(t *testing.T) {
		t.Parallel()

		items := []papergrade.MenuItem{
			{Title: "Intro", URL: "https://docs.example.com/intro"},
			{Title: "Broken", URL: "https://docs.example.com/broken"},
			{Title: "Roadmap", URL: "https://docs.example.com/roadmap"},
		}

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				if url == "https://docs.example.com/broken" {
					return "", fmt.Errorf("connection reset")
				}
				return "<html></html>", nil
			},
		}
		menu := &mock.MenuExtractor{
			ExtractMenuFn: func(html, baseURL string) ([]papergrade.MenuItem, error) {
				return items, nil
			},
		}
		extractor := &mock.PageExtractor{
			ExtractPageFn: func(html, pageURL string) (*papergrade.Page, error) {
				return &papergrade.Page{SourceURL: pageURL}, nil
			},
		}

		var finished *crawl.ProgressEvent
		c := &crawl.Crawler{Fetcher: fetcher, Menu: menu, Pages: extractor}
		pages, err := c.Crawl(context.Background(), "https://docs.example.com", func(e crawl.ProgressEvent) {
			if e.Type == crawl.ProgressFinished {
				finished = &e
			}
		})
		require.NoError(t, err)
		require.Len(t, pages, 2)

		require.NotNil(t, finished)
		assert.Equal(t, 2, finished.Completed)
		assert.Equal(t, 3, finished.Total)
	})

	t.Run("nil progress callback is tolerated", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html></html>", nil
			},
		}
		menu := &mock.MenuExtractor{
			ExtractMenuFn: func(html, baseURL string) ([]papergrade.MenuItem, error) {
				return []papergrade.MenuItem{{Title: "Intro", URL: "https://docs.example.com/intro"}}, nil
			},
		}
		extractor := &mock.PageExtractor{
			ExtractPageFn: func(html, pageURL string) (*papergrade.Page, error) {
				return &papergrade.Page{SourceURL: pageURL}, nil
			},
		}

		c := &crawl.Crawler{Fetcher: fetcher, Menu: menu, Pages: extractor}
		pages, err := c.Crawl(context.Background(), "https://docs.example.com", nil)
		require.NoError(t, err)
		assert.Len(t, pages, 1)
	})

	t.Run("extraction failure on a page is skipped", func(t *testing.T) {
		t.Parallel()

		items := []papergrade.MenuItem{
			{Title: "Intro", URL: "https://docs.example.com/intro"},
			{Title: "Empty", URL: "https://docs.example.com/empty"},
		}

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html></html>", nil
			},
		}
		menu := &mock.MenuExtractor{
			ExtractMenuFn: func(html, baseURL string) ([]papergrade.MenuItem, error) {
				return items, nil
			},
		}
		extractor := &mock.PageExtractor{
			ExtractPageFn: func(html, pageURL string) (*papergrade.Page, error) {
				if pageURL == "https://docs.example.com/empty" {
					return nil, papergrade.Errorf(papergrade.ENOTFOUND, "no content container found at %s", pageURL)
				}
				return &papergrade.Page{SourceURL: pageURL}, nil
			},
		}

		c := &crawl.Crawler{Fetcher: fetcher, Menu: menu, Pages: extractor}
		pages, err := c.Crawl(context.Background(), "https://docs.example.com", nil)
		require.NoError(t, err)
		require.Len(t, pages, 1)
		assert.Equal(t, "https://docs.example.com/intro", pages[0].SourceURL)
	})
}
