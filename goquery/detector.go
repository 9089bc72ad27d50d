package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/papergrade/papergrade"
)

var _ papergrade.PlatformDetector = (*Detector)(nil)

// Detector identifies documentation platforms from HTML content. It checks
// meta generator tags first, then platform-specific CSS classes and data
// attributes that are unique to each documentation generator.
type Detector struct{}

// NewDetector creates a Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect analyzes HTML and returns the identified platform.
// Returns PlatformUnknown if the platform cannot be determined.
func (d *Detector) Detect(html string) papergrade.Platform {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return papergrade.PlatformUnknown
	}

	// Meta generator tags are the most reliable signal when present.
	if platform := detectFromMetaGenerator(doc); platform != papergrade.PlatformUnknown {
		return platform
	}

	// GitBook markers: current platform testids plus legacy book classes.
	if hasSelector(doc, "[data-testid='space.sidebar']") ||
		hasSelector(doc, "[data-testid='page.desktopTableOfContents']") ||
		hasSelector(doc, ".book-summary") ||
		hasSelector(doc, "[class*='gitbook']") {
		return papergrade.PlatformGitBook
	}

	// Docusaurus markers.
	if hasSelector(doc, "#__docusaurus") ||
		hasSelector(doc, "#__docusaurus_skipToContent_fallback") ||
		hasSelector(doc, ".theme-doc-sidebar-container") {
		return papergrade.PlatformDocusaurus
	}

	// MkDocs Material markers.
	if hasSelector(doc, "[data-md-color-scheme]") ||
		hasSelector(doc, "[data-md-component]") ||
		hasSelector(doc, ".md-nav--primary") {
		return papergrade.PlatformMkDocs
	}

	return papergrade.PlatformUnknown
}

func detectFromMetaGenerator(doc *goquery.Document) papergrade.Platform {
	generator := ""
	doc.Find("meta[name='generator']").Each(func(_ int, s *goquery.Selection) {
		if content, exists := s.Attr("content"); exists {
			generator = strings.ToLower(content)
		}
	})

	switch {
	case strings.Contains(generator, "gitbook"):
		return papergrade.PlatformGitBook
	case strings.Contains(generator, "docusaurus"):
		return papergrade.PlatformDocusaurus
	case strings.Contains(generator, "mkdocs"):
		return papergrade.PlatformMkDocs
	}
	return papergrade.PlatformUnknown
}

func hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}
