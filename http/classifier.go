package http

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/papergrade/papergrade"
)

// Ensure Classifier implements papergrade.Classifier at compile time.
var _ papergrade.Classifier = (*Classifier)(nil)

// docSiteDomainHints are URL substrings that mark a documentation site
// even when the page markup carries no platform fingerprint.
var docSiteDomainHints = []string{
	".gitbook.io",
	"gitbook.io",
	"docs.",
}

// Classifier determines what a target URL points at. Direct content-type
// checks come first, then PDF-embedding idioms in the page markup, then
// documentation-platform fingerprints. Network failures degrade to
// KindUnknown.
type Classifier struct {
	Fetcher  papergrade.Fetcher
	Detector papergrade.PlatformDetector
	Finder   papergrade.PDFReferenceFinder

	client *http.Client
}

// NewClassifier creates a Classifier. Content-type probes use their own
// HTTP client with the default fetch timeout.
func NewClassifier(fetcher papergrade.Fetcher, detector papergrade.PlatformDetector, finder papergrade.PDFReferenceFinder) *Classifier {
	return &Classifier{
		Fetcher:  fetcher,
		Detector: detector,
		Finder:   finder,
		client:   &http.Client{Timeout: DefaultFetchTimeout},
	}
}

// Classify determines whether the URL is a direct PDF, a page embedding a
// PDF viewer, or a documentation site. KindUnknown means no signal matched
// or the target could not be reached.
func (c *Classifier) Classify(ctx context.Context, rawURL string) (papergrade.Classification, error) {
	if c.isPDF(ctx, rawURL) {
		return papergrade.Classification{Kind: papergrade.KindDirectPDF, PDFURL: rawURL}, nil
	}

	html, err := c.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return papergrade.Classification{Kind: papergrade.KindUnknown}, nil
	}

	for _, candidate := range c.Finder.FindPDFReferences(html, rawURL) {
		if candidate.NeedsProbe && !c.isPDF(ctx, candidate.URL) {
			continue
		}
		return papergrade.Classification{Kind: papergrade.KindPDFViewer, PDFURL: candidate.URL}, nil
	}

	if c.Detector.Detect(html) != papergrade.PlatformUnknown || hasDocSiteDomain(rawURL) {
		return papergrade.Classification{Kind: papergrade.KindDocSite}, nil
	}

	return papergrade.Classification{Kind: papergrade.KindUnknown}, nil
}

// isPDF reports whether the URL serves an application/pdf content type,
// checked with HEAD and falling back to GET for servers that reject HEAD.
func (c *Classifier) isPDF(ctx context.Context, rawURL string) bool {
	if ok, err := c.probe(ctx, http.MethodHead, rawURL); err == nil {
		return ok
	}
	ok, err := c.probe(ctx, http.MethodGet, rawURL)
	return err == nil && ok
}

func (c *Classifier) probe(ctx context.Context, method, rawURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return false, err
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, papergrade.Errorf(papergrade.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, rawURL)
	}
	return strings.Contains(resp.Header.Get("Content-Type"), "application/pdf"), nil
}

func hasDocSiteDomain(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Host)
	for _, hint := range docSiteDomainHints {
		if strings.Contains(host, hint) {
			return true
		}
	}
	return false
}
