package mock

import (
	"context"

	"github.com/papergrade/papergrade"
)

var _ papergrade.Classifier = (*Classifier)(nil)

// Classifier is a mock implementation of papergrade.Classifier.
type Classifier struct {
	ClassifyFn func(ctx context.Context, url string) (papergrade.Classification, error)
}

func (c *Classifier) Classify(ctx context.Context, url string) (papergrade.Classification, error) {
	return c.ClassifyFn(ctx, url)
}

var _ papergrade.PlatformDetector = (*PlatformDetector)(nil)

// PlatformDetector is a mock implementation of papergrade.PlatformDetector.
type PlatformDetector struct {
	DetectFn func(html string) papergrade.Platform
}

func (d *PlatformDetector) Detect(html string) papergrade.Platform {
	return d.DetectFn(html)
}

var _ papergrade.PDFReferenceFinder = (*PDFReferenceFinder)(nil)

// PDFReferenceFinder is a mock implementation of
// papergrade.PDFReferenceFinder.
type PDFReferenceFinder struct {
	FindPDFReferencesFn func(html string, baseURL string) []papergrade.PDFCandidate
}

func (f *PDFReferenceFinder) FindPDFReferences(html string, baseURL string) []papergrade.PDFCandidate {
	return f.FindPDFReferencesFn(html, baseURL)
}
