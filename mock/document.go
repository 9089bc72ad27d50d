package mock

import (
	"context"

	"github.com/papergrade/papergrade"
)

var _ papergrade.DocumentAssembler = (*DocumentAssembler)(nil)

// DocumentAssembler is a mock implementation of papergrade.DocumentAssembler.
type DocumentAssembler struct {
	AssemblePagesFn  func(ctx context.Context, title string, pages []*papergrade.Page) ([]byte, error)
	AssembleReportFn func(report *papergrade.Report) ([]byte, error)
}

func (a *DocumentAssembler) AssemblePages(ctx context.Context, title string, pages []*papergrade.Page) ([]byte, error) {
	return a.AssemblePagesFn(ctx, title, pages)
}

func (a *DocumentAssembler) AssembleReport(report *papergrade.Report) ([]byte, error) {
	return a.AssembleReportFn(report)
}

var _ papergrade.PDFTextExtractor = (*PDFTextExtractor)(nil)

// PDFTextExtractor is a mock implementation of papergrade.PDFTextExtractor.
type PDFTextExtractor struct {
	ExtractTextFn func(data []byte) (string, error)
}

func (e *PDFTextExtractor) ExtractText(data []byte) (string, error) {
	return e.ExtractTextFn(data)
}
