package papergrade

import "context"

// Page represents the extracted content of one crawled page.
// A Page is immutable once returned by a PageExtractor.
type Page struct {
	SourceURL string
	Title     string // may be empty if the page has no recognizable title
	Content   string // plain text, newline-delimited blocks
	Images    []Image
}

// Image references an image embedded in a page. Src is always an absolute
// URL resolved against the page it was found on: protocol-relative
// references become https, root-relative and relative paths are joined
// against the page URL.
type Image struct {
	Src string
	Alt string
}

// MenuItem represents one discovered navigation entry of a documentation
// site. Title is never empty; URL is absolute and unique within a menu.
// Level is the nesting depth derived from the count of ancestor list
// elements inside the menu container.
type MenuItem struct {
	Title string
	URL   string
	Level int
}

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch retrieves the HTML content from the given URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// MenuExtractor discovers a documentation site's table of contents from its
// root page HTML. The returned items are deduplicated by URL (first
// occurrence wins) and stable-sorted by (Level, URL); callers must not
// assume document order. An empty result means "no menu, treat as a single
// page".
type MenuExtractor interface {
	ExtractMenu(html string, baseURL string) ([]MenuItem, error)
}

// PageExtractor isolates the main content block of a single page,
// discarding navigation and chrome. Returns ENOTFOUND when no usable
// content container can be located.
type PageExtractor interface {
	ExtractPage(html string, pageURL string) (*Page, error)
}
