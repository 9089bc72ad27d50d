// Package gofpdf assembles crawled page records and score reports into
// paginated PDF documents.
package gofpdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/papergrade/papergrade"
)

// DefaultImageTimeout bounds each image download during assembly.
const DefaultImageTimeout = 15 * time.Second

// maxImageWidth is the widest an embedded image is drawn, in mm.
const maxImageWidth = 170.0

// Ensure Assembler implements papergrade.DocumentAssembler at compile time.
var _ papergrade.DocumentAssembler = (*Assembler)(nil)

// Assembler renders pages and reports as A4 PDF documents. Referenced
// images are downloaded and embedded; any image that cannot be fetched or
// registered is skipped.
type Assembler struct {
	client *http.Client
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithHTTPClient overrides the client used for image downloads.
func WithHTTPClient(client *http.Client) Option {
	return func(a *Assembler) {
		a.client = client
	}
}

// NewAssembler creates an Assembler.
func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{
		client: &http.Client{Timeout: DefaultImageTimeout},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AssemblePages renders the crawled pages into a single PDF, one page
// record per PDF page, in crawl order.
func (a *Assembler) AssemblePages(ctx context.Context, title string, pages []*papergrade.Page) ([]byte, error) {
	if len(pages) == 0 {
		return nil, papergrade.Errorf(papergrade.EINVALID, "no pages to assemble")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	// Core fonts are cp1252; crawled text is UTF-8.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if title != "" {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 22)
		pdf.MultiCell(0, 10, tr(title), "", "C", false)
		pdf.Ln(8)
	}

	for _, page := range pages {
		pdf.AddPage()

		if page.Title != "" {
			pdf.SetFont("Helvetica", "B", 18)
			pdf.MultiCell(0, 8, tr(page.Title), "", "L", false)
			pdf.Ln(2)
		}

		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, "Source: "+tr(page.SourceURL), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(4)

		pdf.SetFont("Helvetica", "", 10)
		for _, paragraph := range strings.Split(page.Content, "\n") {
			if strings.TrimSpace(paragraph) == "" {
				pdf.Ln(3)
				continue
			}
			pdf.MultiCell(0, 5, tr(paragraph), "", "L", false)
			pdf.Ln(1)
		}

		for _, img := range page.Images {
			a.embedImage(ctx, pdf, img)
		}
	}

	return output(pdf)
}

// AssembleReport renders the score report as a PDF.
func (a *Assembler) AssembleReport(report *papergrade.Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.MultiCell(0, 10, "Whitepaper Analysis Report", "", "C", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 5, "Source: "+tr(report.SourceURL), "", "C", false)
	pdf.MultiCell(0, 5, "Generated: "+report.CreatedAt.Format("2006-01-02 15:04 MST"), "", "C", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 8, fmt.Sprintf("Total Score: %.1f / %d", report.Total, report.MaxTotal), "", "L", false)
	pdf.Ln(4)

	for _, aspect := range report.Aspects {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.MultiCell(0, 7, fmt.Sprintf("%s: %.1f / %d", titleCase(string(aspect.Aspect)), aspect.Score, aspect.MaxPoints), "", "L", false)
		pdf.Ln(1)

		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(aspect.Analysis), "", "L", false)
		pdf.Ln(4)
	}

	return output(pdf)
}

// embedImage downloads and draws one image. Failures clear the document
// error state and are ignored so one broken image never spoils the
// assembly.
func (a *Assembler) embedImage(ctx context.Context, pdf *gofpdf.Fpdf, img papergrade.Image) {
	data, imageType, err := a.download(ctx, img.Src)
	if err != nil {
		return
	}

	opts := gofpdf.ImageOptions{ImageType: imageType}
	info := pdf.RegisterImageOptionsReader(img.Src, opts, bytes.NewReader(data))
	if pdf.Err() {
		pdf.ClearError()
		return
	}

	width := info.Width()
	if width > maxImageWidth {
		width = maxImageWidth
	}
	pdf.Ln(3)
	pdf.ImageOptions(img.Src, pdf.GetX(), pdf.GetY(), width, 0, true, opts, 0, "")
	if pdf.Err() {
		pdf.ClearError()
	}
}

// download fetches image bytes and maps the content type to a gofpdf image
// type. Unsupported formats are rejected.
func (a *Assembler) download(ctx context.Context, src string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", papergrade.Errorf(papergrade.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, src)
	}

	imageType := imageTypeFor(resp.Header.Get("Content-Type"), src)
	if imageType == "" {
		return nil, "", papergrade.Errorf(papergrade.EINVALID, "unsupported image format at %s", src)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	return data, imageType, nil
}

func imageTypeFor(contentType, src string) string {
	switch {
	case strings.Contains(contentType, "image/png"):
		return "PNG"
	case strings.Contains(contentType, "image/jpeg"), strings.Contains(contentType, "image/jpg"):
		return "JPG"
	case strings.Contains(contentType, "image/gif"):
		return "GIF"
	}
	lower := strings.ToLower(src)
	switch {
	case strings.HasSuffix(lower, ".png"):
		return "PNG"
	case strings.HasSuffix(lower, ".jpg"), strings.HasSuffix(lower, ".jpeg"):
		return "JPG"
	case strings.HasSuffix(lower, ".gif"):
		return "GIF"
	}
	return ""
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, papergrade.Errorf(papergrade.EINTERNAL, "render PDF: %v", err)
	}
	return buf.Bytes(), nil
}
