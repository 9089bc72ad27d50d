package papergrade

import "context"

// DocumentAssembler renders crawl and analysis results into a single
// downloadable document.
type DocumentAssembler interface {
	// AssemblePages renders an ordered sequence of crawled pages into one
	// document. Implementations may fetch referenced images; an image that
	// cannot be fetched or embedded is skipped, never fatal.
	AssemblePages(ctx context.Context, title string, pages []*Page) ([]byte, error)

	// AssembleReport renders a score report into a document.
	AssembleReport(report *Report) ([]byte, error)
}

// PDFTextExtractor extracts readable text from PDF bytes.
type PDFTextExtractor interface {
	ExtractText(data []byte) (string, error)
}
