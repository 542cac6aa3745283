package pdfops

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/alnah/go-pdfdesk/internal/compose"
)

func init() {
	// Keep pdfcpu from creating a config directory under the user's home.
	api.DisableConfigDir()
}

// Processor runs PDF operations. The zero value is not usable; use New.
// A Processor is safe for concurrent use: every call gets its own configuration.
type Processor struct {
	newDocument compose.DocumentFactory
}

// Option configures a Processor.
type Option func(*Processor)

// WithDocumentFactory sets the document used by ImagesToPDF.
func WithDocumentFactory(f compose.DocumentFactory) Option {
	return func(p *Processor) {
		p.newDocument = f
	}
}

// New creates a Processor.
func New(opts ...Option) *Processor {
	p := &Processor{newDocument: compose.NewFPDFDocument}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// config returns a fresh relaxed pdfcpu configuration.
func (p *Processor) config() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// run applies fn to in and returns what fn wrote.
func (p *Processor) run(op string, in []byte, conf *model.Configuration, fn func(io.ReadSeeker, io.Writer, *model.Configuration) error) ([]byte, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNoInput)
	}
	var out bytes.Buffer
	if err := fn(bytes.NewReader(in), &out, conf); err != nil {
		return nil, classify(op, err, conf.UserPW != "" || conf.OwnerPW != "")
	}
	return out.Bytes(), nil
}

// PageCount returns the number of pages in the document.
func (p *Processor) PageCount(in []byte) (int, error) {
	if len(in) == 0 {
		return 0, fmt.Errorf("counting pages: %w", ErrNoInput)
	}
	n, err := api.PageCount(bytes.NewReader(in), p.config())
	if err != nil {
		return 0, classify("counting pages", err, false)
	}
	return n, nil
}

// Merge concatenates every page of the inputs, in input order.
func (p *Processor) Merge(inputs [][]byte) ([]byte, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("merging: %w", ErrNoInput)
	}

	readers := make([]io.ReadSeeker, len(inputs))
	for i, in := range inputs {
		if len(in) == 0 {
			return nil, fmt.Errorf("merging: document %d: %w", i+1, ErrNoInput)
		}
		readers[i] = bytes.NewReader(in)
	}

	var out bytes.Buffer
	if err := api.MergeRaw(readers, &out, false, p.config()); err != nil {
		return nil, classify("merging", err, false)
	}
	return out.Bytes(), nil
}

// Split returns one single-page document per page, in page order.
func (p *Processor) Split(in []byte) ([][]byte, error) {
	n, err := p.PageCount(in)
	if err != nil {
		return nil, err
	}

	parts := make([][]byte, 0, n)
	for page := 1; page <= n; page++ {
		sel := toSelection([]int{page})
		part, err := p.run(fmt.Sprintf("splitting page %d", page), in, p.config(), func(rs io.ReadSeeker, w io.Writer, conf *model.Configuration) error {
			return api.Trim(rs, w, sel, conf)
		})
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	return parts, nil
}

// SplitName names the file for one split page: "<base>_page_<n>.pdf".
func SplitName(base string, page int) string {
	return fmt.Sprintf("%s_page_%d.pdf", base, page)
}

// ExtractPages builds a document from the given 1-based pages, in the given order.
func (p *Processor) ExtractPages(in []byte, pages []int) ([]byte, error) {
	return p.collect("extracting pages", in, pages)
}

// Organize reorders the document. order lists 1-based pages and may omit
// pages to drop them.
func (p *Processor) Organize(in []byte, order []int) ([]byte, error) {
	return p.collect("organizing pages", in, order)
}

// collect validates pages against the document and copies them in order.
func (p *Processor) collect(op string, in []byte, pages []int) ([]byte, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("%s: %w: no pages selected", op, ErrInvalidPageSelection)
	}
	n, err := p.PageCount(in)
	if err != nil {
		return nil, err
	}
	for _, page := range pages {
		if page < 1 || page > n {
			return nil, fmt.Errorf("%s: %w: page %d out of range 1-%d", op, ErrInvalidPageSelection, page, n)
		}
	}

	sel := toSelection(pages)
	return p.run(op, in, p.config(), func(rs io.ReadSeeker, w io.Writer, conf *model.Configuration) error {
		return api.Collect(rs, w, sel, conf)
	})
}

// Rotate sets the rotation of every page to degrees clockwise, a multiple
// of 90 (negative values count counter-clockwise). The angle is absolute:
// pages already rotated end up at degrees, and 0 restores upright pages.
func (p *Processor) Rotate(in []byte, degrees int) ([]byte, error) {
	if degrees%90 != 0 {
		return nil, fmt.Errorf("rotating: %w: got %d", ErrInvalidRotation, degrees)
	}
	target := normalizeRotation(degrees)

	current, err := p.rotations(in)
	if err != nil {
		return nil, err
	}

	// pdfcpu rotates relative to the inherited angle, so pages are grouped
	// by the turn they still need.
	byDelta := make(map[int][]int)
	for i, rot := range current {
		if delta := normalizeRotation(target - rot); delta != 0 {
			byDelta[delta] = append(byDelta[delta], i+1)
		}
	}

	if len(byDelta) == 0 {
		return p.run("rotating", in, p.config(), api.Optimize)
	}
	out := in
	for _, delta := range []int{90, 180, 270} {
		pages, ok := byDelta[delta]
		if !ok {
			continue
		}
		sel := toSelection(pages)
		out, err = p.run("rotating", out, p.config(), func(rs io.ReadSeeker, w io.Writer, conf *model.Configuration) error {
			return api.Rotate(rs, w, delta, sel, conf)
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// rotations returns the effective rotation of every page in [0, 360).
func (p *Processor) rotations(in []byte) ([]int, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("rotating: %w", ErrNoInput)
	}
	ctx, err := api.ReadContext(bytes.NewReader(in), p.config())
	if err != nil {
		return nil, classify("rotating", err, false)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, classify("rotating", err, false)
	}

	out := make([]int, ctx.PageCount)
	for i := range out {
		_, _, inherited, err := ctx.PageDict(i+1, false)
		if err != nil {
			return nil, classify("rotating", err, false)
		}
		if inherited != nil {
			out[i] = normalizeRotation(inherited.Rotate)
		}
	}
	return out, nil
}

func normalizeRotation(degrees int) int {
	return ((degrees % 360) + 360) % 360
}

// Compress re-saves the document losslessly: object streams, deduplicated
// resources and removed unused objects.
func (p *Processor) Compress(in []byte) ([]byte, error) {
	return p.run("compressing", in, p.config(), api.Optimize)
}

// ImagesToPDF builds a document with one page per PNG or JPEG image. Each
// page is the image size with one pixel per point.
func (p *Processor) ImagesToPDF(images [][]byte) ([]byte, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("converting images: %w", ErrNoInput)
	}
	out, err := compose.ImagePages(p.newDocument, images)
	if err != nil {
		return nil, fmt.Errorf("converting images: %w", err)
	}
	return out, nil
}
