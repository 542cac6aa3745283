package pdfdesk

import (
	"github.com/alnah/go-pdfdesk/internal/pdfops"
)

// WatermarkOptions describes a text watermark centered on every page.
// Zero values take the defaults (48pt, opacity 0.3, -45 degrees, gray).
type WatermarkOptions = pdfops.WatermarkOptions

// PDFInfo summarizes a PDF document.
type PDFInfo = pdfops.Info

// PDF toolkit errors.
var (
	ErrNoInput              = pdfops.ErrNoInput
	ErrInvalidRotation      = pdfops.ErrInvalidRotation
	ErrInvalidPageSelection = pdfops.ErrInvalidPageSelection
	ErrEmptyWatermark       = pdfops.ErrEmptyWatermark
	ErrInvalidWatermark     = pdfops.ErrInvalidWatermark
	ErrEmptyPassword        = pdfops.ErrEmptyPassword
	ErrWrongPassword        = pdfops.ErrWrongPassword
	ErrEncrypted            = pdfops.ErrEncrypted
	ErrNotEncrypted         = pdfops.ErrNotEncrypted
	ErrUnsupportedImage     = pdfops.ErrUnsupportedImage
	ErrProcessing           = pdfops.ErrProcessing
)

// Toolkit performs page-level operations on existing PDF documents.
// All operations take and return in-memory documents. A Toolkit is safe for
// concurrent use.
type Toolkit struct {
	p *pdfops.Processor
}

// NewToolkit creates a Toolkit.
func NewToolkit() *Toolkit {
	return &Toolkit{p: pdfops.New()}
}

// PageCount returns the number of pages in a document.
func (t *Toolkit) PageCount(in []byte) (int, error) {
	return t.p.PageCount(in)
}

// Info returns page count, page sizes and metadata.
func (t *Toolkit) Info(in []byte) (*PDFInfo, error) {
	return t.p.Info(in)
}

// Merge concatenates the pages of all inputs in order.
func (t *Toolkit) Merge(inputs [][]byte) ([]byte, error) {
	return t.p.Merge(inputs)
}

// Split returns one single-page document per page.
// Use SplitName to name the parts.
func (t *Toolkit) Split(in []byte) ([][]byte, error) {
	return t.p.Split(in)
}

// SplitName returns the file name of page n of a document split from base.
func SplitName(base string, n int) string {
	return pdfops.SplitName(base, n)
}

// ExtractPages returns a document with the selected pages, in selection order.
// Selections are 1-based, comma separated pages and ranges: "1,3-5,end".
func (t *Toolkit) ExtractPages(in []byte, selection string) ([]byte, error) {
	pages, err := t.selection(in, selection)
	if err != nil {
		return nil, err
	}
	return t.p.ExtractPages(in, pages)
}

// Organize reorders pages to the given order. Pages left out are dropped.
func (t *Toolkit) Organize(in []byte, order string) ([]byte, error) {
	pages, err := t.selection(in, order)
	if err != nil {
		return nil, err
	}
	return t.p.Organize(in, pages)
}

// Rotate sets every page to an absolute rotation of degrees clockwise, a
// multiple of 90.
func (t *Toolkit) Rotate(in []byte, degrees int) ([]byte, error) {
	return t.p.Rotate(in, degrees)
}

// Watermark stamps a text watermark on every page.
func (t *Toolkit) Watermark(in []byte, opts WatermarkOptions) ([]byte, error) {
	return t.p.Watermark(in, opts)
}

// ImagesToPDF creates a document with one page per PNG or JPEG image,
// each page the size of its image.
func (t *Toolkit) ImagesToPDF(images [][]byte) ([]byte, error) {
	return t.p.ImagesToPDF(images)
}

// Compress rewrites the document losslessly, removing redundant objects.
func (t *Toolkit) Compress(in []byte) ([]byte, error) {
	return t.p.Compress(in)
}

// Lock encrypts the document with AES-256, using password as both the
// user and the owner password.
func (t *Toolkit) Lock(in []byte, password string) ([]byte, error) {
	return t.p.Lock(in, password)
}

// Unlock decrypts the document.
func (t *Toolkit) Unlock(in []byte, password string) ([]byte, error) {
	return t.p.Unlock(in, password)
}

// selection resolves a page selection against the document's page count.
func (t *Toolkit) selection(in []byte, sel string) ([]int, error) {
	count, err := t.p.PageCount(in)
	if err != nil {
		return nil, err
	}
	return pdfops.ParsePages(sel, count)
}
