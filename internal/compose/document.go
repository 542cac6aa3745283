package compose

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/alnah/go-pdfdesk/internal/paper"
)

// Document is the document-assembly collaborator: a page-oriented writer
// that places raster images on pages and serializes the result.
type Document interface {
	// AddPage appends a page with the document's default size.
	AddPage()

	// AddPageSize appends a page of w x h in the document unit.
	AddPageSize(w, h float64)

	// AddImage places PNG or JPEG data on the current page.
	// The name must be unique within the document.
	AddImage(name string, data []byte, imageType string, x, y, w, h float64) error

	// SetTitle sets the document title metadata.
	SetTitle(title string)

	// PageCount returns the number of pages added so far.
	PageCount() int

	// Bytes serializes the document.
	Bytes() ([]byte, error)
}

// DocumentFactory creates an empty document for the given page geometry.
type DocumentFactory func(spec paper.Spec) Document

// Image types accepted by AddImage.
const (
	ImagePNG  = "PNG"
	ImageJPEG = "JPG"
)

// producer is written to the PDF Creator field.
const producer = "go-pdfdesk"

// FPDFDocument implements Document with gofpdf.
type FPDFDocument struct {
	pdf *gofpdf.Fpdf
}

// NewFPDFDocument creates a gofpdf document with zero margins and no
// automatic page breaks, so images are placed at absolute coordinates.
// Specs without a format (e.g. image pages) use a custom size in spec.Unit.
func NewFPDFDocument(spec paper.Spec) Document {
	orientation := "P"
	if spec.Landscape() {
		orientation = "L"
	}

	unit := spec.Unit
	if unit == "" {
		unit = paper.UnitPoint
	}

	var pdf *gofpdf.Fpdf
	if spec.Format == "" {
		pdf = gofpdf.NewCustom(&gofpdf.InitType{
			OrientationStr: "P",
			UnitStr:        unit,
			Size:           gofpdf.SizeType{Wd: spec.Width, Ht: spec.Height},
		})
	} else {
		pdf = gofpdf.New(orientation, unit, spec.SizeName(), "")
	}

	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator(producer, true)
	pdf.SetCreationDate(time.Now())
	return &FPDFDocument{pdf: pdf}
}

// AddPage appends a page with the default size and orientation.
func (d *FPDFDocument) AddPage() {
	d.pdf.AddPage()
}

// AddPageSize appends a page of exactly w x h.
func (d *FPDFDocument) AddPageSize(w, h float64) {
	d.pdf.AddPageFormat("P", gofpdf.SizeType{Wd: w, Ht: h})
}

// AddImage registers the image under name and draws it at (x, y) with size w x h.
func (d *FPDFDocument) AddImage(name string, data []byte, imageType string, x, y, w, h float64) error {
	if d.pdf.PageCount() == 0 {
		return fmt.Errorf("placing image %q: no page added", name)
	}

	opts := gofpdf.ImageOptions{ImageType: imageType, ReadDpi: false}
	d.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if d.pdf.Err() {
		return fmt.Errorf("registering image %q: %w", name, d.pdf.Error())
	}

	d.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	if d.pdf.Err() {
		return fmt.Errorf("placing image %q: %w", name, d.pdf.Error())
	}
	return nil
}

// SetTitle sets the PDF Title metadata.
func (d *FPDFDocument) SetTitle(title string) {
	d.pdf.SetTitle(title, true)
}

// PageCount returns the number of pages.
func (d *FPDFDocument) PageCount() int {
	return d.pdf.PageCount()
}

// Bytes writes the finished PDF.
func (d *FPDFDocument) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Compile-time interface check.
var _ Document = (*FPDFDocument)(nil)
