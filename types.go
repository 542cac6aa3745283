package pdfdesk

import (
	"fmt"

	"github.com/alnah/go-pdfdesk/internal/pagination"
	"github.com/alnah/go-pdfdesk/internal/paper"
)

// PaperFormat names a supported paper size.
type PaperFormat = paper.Format

// Paper formats.
const (
	FormatA4     = paper.A4
	FormatLetter = paper.Letter
)

// Orientation names a page orientation.
type Orientation = paper.Orientation

// Orientations.
const (
	Portrait  = paper.Portrait
	Landscape = paper.Landscape
)

// Mode selects how content taller than one page is laid out.
type Mode = pagination.Mode

// Pagination modes.
const (
	// ModeSlice cuts the content into consecutive page-height slices.
	ModeSlice = pagination.ModeSlice

	// ModeFitPage scales the whole content down onto a single page.
	ModeFitPage = pagination.ModeFitPage
)

// PageSpec is the geometry of one output page.
type PageSpec = paper.Spec

// Tile is the region of the raster placed on one page.
type Tile = pagination.Tile

// Input contains conversion parameters.
// The zero value of every option selects its default.
type Input struct {
	HTML        string      // HTML fragment or full document
	Markdown    string      // Markdown source, used when HTML is empty
	Format      PaperFormat // "a4" (default) or "letter"
	Orientation Orientation // "portrait" (default) or "landscape"
	Mode        Mode        // ModeSlice (default) or ModeFitPage
	CSS         string      // applied after the converter style
	Title       string      // PDF title; defaults to the document <title>
	SourceDir   string      // base directory for relative image paths
}

// Validate checks the input options.
func (in Input) Validate() error {
	if in.HTML != "" && in.Markdown != "" {
		return ErrConflictingInput
	}
	if _, err := in.PageSpec(); err != nil {
		return err
	}
	if !in.Mode.Valid() {
		return fmt.Errorf("%w: %q (must be %s or %s)", ErrInvalidMode, in.Mode, ModeSlice, ModeFitPage)
	}
	return nil
}

// PageSpec returns the page geometry for the input's format and orientation.
func (in Input) PageSpec() (PageSpec, error) {
	return paper.Lookup(in.Format, in.Orientation)
}

// ParseMode normalizes a mode name. Empty means ModeSlice.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if m == "" {
		return ModeSlice, nil
	}
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q (must be %s or %s)", ErrInvalidMode, s, ModeSlice, ModeFitPage)
	}
	return m, nil
}

// Result is the output of a successful conversion.
type Result struct {
	PDF          []byte   // document bytes
	Pages        int      // page count
	Page         PageSpec // page geometry used
	Tiles        []Tile   // raster regions, one per page in page order
	RasterWidth  int      // captured raster width in pixels
	RasterHeight int      // captured raster height in pixels
	HTML         []byte   // sandbox document that was rendered
}
