package http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/papergrade/papergrade"
	papergradehttp "github.com/papergrade/papergrade/http"
	"github.com/papergrade/papergrade/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClassifier(fetchFn func(ctx context.Context, url string) (string, error), platform papergrade.Platform, candidates []papergrade.PDFCandidate) *papergradehttp.Classifier {
	fetcher := &mock.Fetcher{FetchFn: fetchFn}
	detector := &mock.PlatformDetector{
		DetectFn: func(html string) papergrade.Platform { return platform },
	}
	finder := &mock.PDFReferenceFinder{
		FindPDFReferencesFn: func(html, baseURL string) []papergrade.PDFCandidate { return candidates },
	}
	return papergradehttp.NewClassifier(fetcher, detector, finder)
}

func TestClassifier_Classify(t *testing.T) {
	t.Parallel()

	t.Run("direct PDF via HEAD content type", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodHead, r.Method)
			w.Header().Set("Content-Type", "application/pdf")
		}))
		defer srv.Close()

		c := newTestClassifier(func(ctx context.Context, url string) (string, error) {
			t.Fatal("page fetch must not run for a direct PDF")
			return "", nil
		}, papergrade.PlatformUnknown, nil)

		got, err := c.Classify(context.Background(), srv.URL+"/paper.pdf")
		require.NoError(t, err)
		assert.Equal(t, papergrade.KindDirectPDF, got.Kind)
		assert.Equal(t, srv.URL+"/paper.pdf", got.PDFURL)
	})

	t.Run("falls back to GET when HEAD is rejected", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodHead {
				http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
				return
			}
			w.Header().Set("Content-Type", "application/pdf")
		}))
		defer srv.Close()

		c := newTestClassifier(nil, papergrade.PlatformUnknown, nil)

		got, err := c.Classify(context.Background(), srv.URL+"/paper.pdf")
		require.NoError(t, err)
		assert.Equal(t, papergrade.KindDirectPDF, got.Kind)
	})

	t.Run("PDF viewer from an embedded reference", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
		}))
		defer srv.Close()

		c := newTestClassifier(func(ctx context.Context, url string) (string, error) {
			return "<html><embed src='/paper.pdf'></html>", nil
		}, papergrade.PlatformUnknown, []papergrade.PDFCandidate{
			{URL: srv.URL + "/paper.pdf", NeedsProbe: false},
		})

		got, err := c.Classify(context.Background(), srv.URL+"/viewer")
		require.NoError(t, err)
		assert.Equal(t, papergrade.KindPDFViewer, got.Kind)
		assert.Equal(t, srv.URL+"/paper.pdf", got.PDFURL)
	})

	t.Run("probes uncertain candidates and skips failures", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/pdf-export" {
				w.Header().Set("Content-Type", "application/pdf")
				return
			}
			w.Header().Set("Content-Type", "text/html")
		}))
		defer srv.Close()

		c := newTestClassifier(func(ctx context.Context, url string) (string, error) {
			return "<html></html>", nil
		}, papergrade.PlatformUnknown, []papergrade.PDFCandidate{
			{URL: srv.URL + "/download", NeedsProbe: true},
			{URL: srv.URL + "/pdf-export", NeedsProbe: true},
		})

		got, err := c.Classify(context.Background(), srv.URL+"/viewer")
		require.NoError(t, err)
		assert.Equal(t, papergrade.KindPDFViewer, got.Kind)
		assert.Equal(t, srv.URL+"/pdf-export", got.PDFURL)
	})

	t.Run("doc site via platform fingerprint", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
		}))
		defer srv.Close()

		c := newTestClassifier(func(ctx context.Context, url string) (string, error) {
			return "<html><div data-testid='table-of-contents'></div></html>", nil
		}, papergrade.PlatformGitBook, nil)

		got, err := c.Classify(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, papergrade.KindDocSite, got.Kind)
		assert.Empty(t, got.PDFURL)
	})

	t.Run("doc site via domain hint", func(t *testing.T) {
		t.Parallel()

		c := newTestClassifier(func(ctx context.Context, url string) (string, error) {
			return "<html><p>plain page</p></html>", nil
		}, papergrade.PlatformUnknown, nil)

		got, err := c.Classify(context.Background(), "https://docs.invalid/whitepaper")
		require.NoError(t, err)
		assert.Equal(t, papergrade.KindDocSite, got.Kind)
	})

	t.Run("degrades to unknown when the page cannot be fetched", func(t *testing.T) {
		t.Parallel()

		c := newTestClassifier(func(ctx context.Context, url string) (string, error) {
			return "", fmt.Errorf("dial tcp: no such host")
		}, papergrade.PlatformUnknown, nil)

		got, err := c.Classify(context.Background(), "https://unreachable.invalid")
		require.NoError(t, err)
		assert.Equal(t, papergrade.KindUnknown, got.Kind)
	})

	t.Run("unknown when no signal matches", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
		}))
		defer srv.Close()

		c := newTestClassifier(func(ctx context.Context, url string) (string, error) {
			return "<html><p>a blog post</p></html>", nil
		}, papergrade.PlatformUnknown, nil)

		got, err := c.Classify(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, papergrade.KindUnknown, got.Kind)
	})
}
