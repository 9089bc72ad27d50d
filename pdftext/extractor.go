// Package pdftext extracts readable text from PDF documents.
package pdftext

import (
	"bytes"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/papergrade/papergrade"
)

// Ensure Extractor implements papergrade.PDFTextExtractor at compile time.
var _ papergrade.PDFTextExtractor = (*Extractor)(nil)

// Extractor pulls plain text out of PDF bytes. The underlying parser
// panics on some malformed documents; those are converted to EINVALID
// errors instead of crashing the caller.
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText returns the document's plain text.
func (e *Extractor) ExtractText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = papergrade.Errorf(papergrade.EINVALID, "malformed PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", papergrade.Errorf(papergrade.EINVALID, "parse PDF: %v", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", papergrade.Errorf(papergrade.EINVALID, "extract PDF text: %v", err)
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, plain); err != nil {
		return "", papergrade.Errorf(papergrade.EINVALID, "read PDF text: %v", err)
	}

	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", papergrade.Errorf(papergrade.ENOTFOUND, "no extractable text in PDF")
	}
	return out, nil
}
