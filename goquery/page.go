package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/papergrade/papergrade"
)

var _ papergrade.PageExtractor = (*PageSelector)(nil)

// contentSelectors are ordered from platform-specific markup down to a
// generic catch-all. The first matching container wins.
var contentSelectors = []string{
	"[data-testid='page.contentEditor']",
	".markdown-section",
	".page-inner",
	".theme-doc-markdown",
	".md-content",
	"main article",
	"article",
	"main .content",
	"main",
	".content",
}

// noiseSelectors identify chrome removed from the selected container before
// text and image extraction: on-page TOC widgets, navigation, toolbar
// buttons, and anything carrying a platform-internal class prefix.
var noiseSelectors = []string{
	"[data-testid='page.desktopTableOfContents']",
	"nav",
	"header",
	"footer",
	"aside",
	".toc",
	".table-of-contents",
	".on-this-page",
	".edit-link",
	".page-footer",
	"button",
	"[class*='toolbar']",
	"[class*='gitbook']",
	"script",
	"style",
}

// titleSelectors are tried in order; the first non-empty match wins before
// falling back to the document title.
var titleSelectors = []string{
	"[data-testid='page.title']",
	"main h1",
	"article h1",
	".page-title",
	"h1",
}

// PageSelector isolates the main content block of a single page.
type PageSelector struct{}

// NewPageSelector creates a PageSelector.
func NewPageSelector() *PageSelector {
	return &PageSelector{}
}

// ExtractPage extracts the title, body text, and embedded images of a page.
// Returns ENOTFOUND when no content container could be located; callers
// treat that as "page unusable", not as fatal to an overall crawl.
func (s *PageSelector) ExtractPage(html string, pageURL string) (*papergrade.Page, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, papergrade.Errorf(papergrade.EINVALID, "invalid page URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, papergrade.Errorf(papergrade.EINVALID, "failed to parse HTML: %v", err)
	}

	var container *goquery.Selection
	for _, selector := range contentSelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			container = sel
			break
		}
	}
	if container == nil {
		return nil, papergrade.Errorf(papergrade.ENOTFOUND, "no content container found at %s", pageURL)
	}

	container.Find(strings.Join(noiseSelectors, ", ")).Remove()

	return &papergrade.Page{
		SourceURL: pageURL,
		Title:     extractTitle(doc),
		Content:   extractBlocks(container),
		Images:    extractImages(container, base),
	}, nil
}

// extractTitle runs the title selector cascade, falling back to the
// document's <title>.
func extractTitle(doc *goquery.Document) string {
	for _, selector := range titleSelectors {
		if title := collapseWhitespace(doc.Find(selector).First().Text()); title != "" {
			return title
		}
	}
	return collapseWhitespace(doc.Find("title").First().Text())
}

// extractBlocks joins the container's block-level text with newlines,
// stripping leading and trailing whitespace per block. A block nesting
// other blocks contributes only its direct text; the nested blocks emit
// theirs on their own visit.
func extractBlocks(container *goquery.Selection) string {
	var blocks []string
	container.Find("p, h1, h2, h3, h4, h5, h6, li, pre, blockquote").Each(func(_ int, sel *goquery.Selection) {
		if text := blockText(sel); text != "" {
			blocks = append(blocks, text)
		}
	})

	// Containers with no block children still count as content.
	if len(blocks) == 0 {
		return collapseWhitespace(container.Text())
	}
	return strings.Join(blocks, "\n")
}

// blockText returns the block's own text. For list items and blockquotes
// wrapping nested blocks, the nested nodes are removed from a clone first
// so the parent's direct text is kept without duplicating its children's.
func blockText(sel *goquery.Selection) string {
	nested := "p, li, ul, ol, blockquote"
	if (sel.Is("blockquote") || sel.Is("li")) && sel.Find(nested).Length() > 0 {
		own := sel.Clone()
		own.Find(nested).Remove()
		return collapseWhitespace(own.Text())
	}
	return collapseWhitespace(sel.Text())
}

// extractImages collects every img with a usable src, resolved absolute
// against the page URL. Images with no src are skipped.
func extractImages(container *goquery.Selection, base *url.URL) []papergrade.Image {
	var images []papergrade.Image
	container.Find("img").Each(func(_ int, img *goquery.Selection) {
		src, exists := img.Attr("src")
		if !exists || strings.TrimSpace(src) == "" {
			return
		}

		resolved := resolveURL(base, src)
		if resolved == "" {
			return
		}

		alt, _ := img.Attr("alt")
		images = append(images, papergrade.Image{Src: resolved, Alt: alt})
	})
	return images
}
