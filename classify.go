package papergrade

import "context"

// Kind identifies what a target URL points at.
type Kind string

// Classification kinds.
const (
	KindDirectPDF Kind = "direct_pdf"
	KindPDFViewer Kind = "pdf_viewer"
	KindDocSite   Kind = "doc_site"
	KindUnknown   Kind = "unknown"
)

// Classification is the result of classifying a target URL.
// PDFURL is set for KindDirectPDF and KindPDFViewer and holds the URL the
// PDF can be downloaded from.
type Classification struct {
	Kind   Kind
	PDFURL string
}

// Classifier determines whether a target URL is a direct PDF, a PDF-viewer
// page, or a documentation site. Implementations degrade network failures
// to KindUnknown rather than returning an error; callers must report
// KindUnknown to the user and take no action.
type Classifier interface {
	Classify(ctx context.Context, url string) (Classification, error)
}

// Platform identifies a documentation platform.
type Platform string

// Supported documentation platforms.
const (
	PlatformUnknown    Platform = ""
	PlatformGitBook    Platform = "gitbook"
	PlatformDocusaurus Platform = "docusaurus"
	PlatformMkDocs     Platform = "mkdocs"
)

// PlatformDetector identifies documentation platforms from HTML.
type PlatformDetector interface {
	// Detect analyzes HTML and returns the identified platform.
	// Returns PlatformUnknown if the platform cannot be determined.
	Detect(html string) Platform
}

// PDFCandidate is a possible PDF reference found in page HTML.
// NeedsProbe marks candidates that mention "pdf" without ending in .pdf;
// such candidates must be confirmed by content type before acceptance.
type PDFCandidate struct {
	URL        string
	NeedsProbe bool
}

// PDFReferenceFinder scans page HTML for PDF-embedding idioms
// (embed/object/iframe sources and anchors referencing PDF files).
// Candidate URLs are resolved absolute against the page URL.
type PDFReferenceFinder interface {
	FindPDFReferences(html string, baseURL string) []PDFCandidate
}
