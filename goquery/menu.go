package goquery

import (
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/papergrade/papergrade"
)

var _ papergrade.MenuExtractor = (*MenuSelector)(nil)

// menuContainerSelectors are tried in order from platform-specific markup
// (GitBook testids, legacy GitBook summaries) to generic navigation
// landmarks. Every matching container is scanned, not just the first.
var menuContainerSelectors = []string{
	"[data-testid='space.sidebar']",
	"[data-testid='page.desktopTableOfContents']",
	".book-summary",
	".summary",
	"nav[aria-label='Table of contents']",
	"[role='navigation']",
	"nav",
	"aside",
	".sidebar",
	".menu",
	".toc",
	".table-of-contents",
}

// menuFallbackSelectors locate generic content landmarks scanned for
// anchors when no menu container produced any items.
var menuFallbackSelectors = []string{
	"main",
	"article",
	".content",
	"[class*='content']",
}

// MenuSelector discovers a documentation site's table of contents from its
// root page HTML.
type MenuSelector struct{}

// NewMenuSelector creates a MenuSelector.
func NewMenuSelector() *MenuSelector {
	return &MenuSelector{}
}

// ExtractMenu returns the ordered, deduplicated navigation entries of a
// documentation page. Deduplication is by resolved URL, first occurrence
// wins. An item's level is the count of ancestor list elements between the
// anchor and its menu container. The result is stable-sorted by
// (Level, URL), a stable but non-document order; callers must not assume
// depth-first traversal order.
func (s *MenuSelector) ExtractMenu(html string, baseURL string) ([]papergrade.MenuItem, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, papergrade.Errorf(papergrade.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, papergrade.Errorf(papergrade.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var items []papergrade.MenuItem

	collect := func(container *goquery.Selection) {
		container.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			if isNonContentLink(href) {
				return
			}

			resolved := resolveURL(base, href)
			if resolved == "" || seen[resolved] {
				return
			}

			title := menuItemTitle(a)
			if title == "" {
				return
			}

			seen[resolved] = true
			items = append(items, papergrade.MenuItem{
				Title: title,
				URL:   resolved,
				Level: a.ParentsUntilSelection(container).Filter("ul, ol").Length(),
			})
		})
	}

	for _, selector := range menuContainerSelectors {
		doc.Find(selector).Each(func(_ int, container *goquery.Selection) {
			collect(container)
		})
	}

	// No menu containers yielded anything: scan generic content landmarks
	// with the same item-extraction routine.
	if len(items) == 0 {
		for _, selector := range menuFallbackSelectors {
			doc.Find(selector).Each(func(_ int, container *goquery.Selection) {
				collect(container)
			})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Level != items[j].Level {
			return items[i].Level < items[j].Level
		}
		return items[i].URL < items[j].URL
	})

	return items, nil
}

// menuItemTitle composes the item title from an optional icon/emoji-marked
// child followed by the cleaned anchor text, space-joined. The label is
// taken from a clone with the icon nodes removed, so the icon text is
// never duplicated regardless of where the markup places it.
func menuItemTitle(a *goquery.Selection) string {
	icon := collapseWhitespace(a.Find("[class*='icon'], [class*='emoji']").First().Text())
	if icon == "" {
		return collapseWhitespace(a.Text())
	}

	label := a.Clone()
	label.Find("[class*='icon'], [class*='emoji']").Remove()

	rest := collapseWhitespace(label.Text())
	if rest == "" {
		return icon
	}
	return icon + " " + rest
}
