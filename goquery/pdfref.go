package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/papergrade/papergrade"
)

var _ papergrade.PDFReferenceFinder = (*PDFRefFinder)(nil)

// PDFRefFinder scans page HTML for PDF-embedding idioms: embed, object,
// and iframe sources, then anchors referencing PDF files.
type PDFRefFinder struct{}

// NewPDFRefFinder creates a PDFRefFinder.
func NewPDFRefFinder() *PDFRefFinder {
	return &PDFRefFinder{}
}

// FindPDFReferences returns deduplicated candidate PDF URLs in discovery
// order, embed/object/iframe sources before anchors. Candidates whose path
// does not end in .pdf but that mention "pdf" are flagged NeedsProbe: the
// classifier must confirm their content type before accepting them.
func (f *PDFRefFinder) FindPDFReferences(html string, baseURL string) []papergrade.PDFCandidate {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var candidates []papergrade.PDFCandidate

	add := func(ref string) {
		if isNonContentLink(ref) {
			return
		}
		if !strings.Contains(strings.ToLower(ref), "pdf") {
			return
		}

		resolved := resolveURL(base, ref)
		if resolved == "" || seen[resolved] {
			return
		}

		seen[resolved] = true
		candidates = append(candidates, papergrade.PDFCandidate{
			URL:        resolved,
			NeedsProbe: !hasPDFExt(resolved),
		})
	}

	doc.Find("embed[src], iframe[src]").Each(func(_ int, sel *goquery.Selection) {
		if src, exists := sel.Attr("src"); exists {
			add(src)
		}
	})
	doc.Find("object[data]").Each(func(_ int, sel *goquery.Selection) {
		if data, exists := sel.Attr("data"); exists {
			add(data)
		}
	})
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		if href, exists := sel.Attr("href"); exists {
			add(href)
		}
	})

	return candidates
}
