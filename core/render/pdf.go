// Package render — PDF renderer.
// Lays the mutation outline out as a printable report using gofpdf:
// one indented line per element, its fields in a smaller monospace font.
package render

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/adroitwhiz/scratch-vm/core/mutation"
)

const (
	pdfIndentMM   = 6.0
	pdfMaxIndents = 20
)

// PDFRenderer renders a mutation tree as a PDF document.
type PDFRenderer struct {
	// Title is printed at the top of the first page when set.
	Title string
}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{Title: "Mutation"}
}

// Render converts the object outline into PDF bytes.
func (r *PDFRenderer) Render(obj *mutation.Object) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	left, _, _, _ := pdf.GetMargins()

	if r.Title != "" {
		pdf.SetFont("Helvetica", "B", 18)
		pdf.MultiCell(0, 8, r.Title, "", "L", false)
		pdf.Ln(4)
	}

	for _, entry := range outline(obj) {
		depth := entry.Depth
		// Deep trees would push text off the page.
		if depth > pdfMaxIndents {
			depth = pdfMaxIndents
		}
		indent := left + float64(depth)*pdfIndentMM

		pdf.SetX(indent)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.MultiCell(0, 6, entry.Tag, "", "L", false)

		pdf.SetFont("Courier", "", 9)
		pdf.SetFillColor(245, 245, 245)
		for _, field := range entry.Fields {
			pdf.SetX(indent + pdfIndentMM/2)
			pdf.MultiCell(0, 4.5, field, "", "L", true)
		}
		pdf.Ln(1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}
