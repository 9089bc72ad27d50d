package mock

import (
	"github.com/papergrade/papergrade"
)

var _ papergrade.MenuExtractor = (*MenuExtractor)(nil)

// MenuExtractor is a mock implementation of papergrade.MenuExtractor.
type MenuExtractor struct {
	ExtractMenuFn func(html string, baseURL string) ([]papergrade.MenuItem, error)
}

func (m *MenuExtractor) ExtractMenu(html string, baseURL string) ([]papergrade.MenuItem, error) {
	return m.ExtractMenuFn(html, baseURL)
}

var _ papergrade.PageExtractor = (*PageExtractor)(nil)

// PageExtractor is a mock implementation of papergrade.PageExtractor.
type PageExtractor struct {
	ExtractPageFn func(html string, pageURL string) (*papergrade.Page, error)
}

func (p *PageExtractor) ExtractPage(html string, pageURL string) (*papergrade.Page, error) {
	return p.ExtractPageFn(html, pageURL)
}
