package pdfops

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// PageSize is a page size in points.
type PageSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Info summarizes a document.
type Info struct {
	Pages    int        `json:"pages"`
	Sizes    []PageSize `json:"sizes"`
	Version  string     `json:"version,omitempty"`
	Title    string     `json:"title,omitempty"`
	Producer string     `json:"producer,omitempty"`
	Bytes    int        `json:"bytes"`
}

// Info reads page count, page sizes and metadata.
func (p *Processor) Info(in []byte) (*Info, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("reading info: %w", ErrNoInput)
	}

	ctx, err := api.ReadContext(bytes.NewReader(in), p.config())
	if err != nil {
		return nil, classify("reading info", err, false)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, classify("reading info", err, false)
	}

	dims, err := api.PageDims(bytes.NewReader(in), p.config())
	if err != nil {
		return nil, classify("reading page sizes", err, false)
	}

	info := &Info{
		Pages: ctx.PageCount,
		Sizes: make([]PageSize, len(dims)),
		Bytes: len(in),
	}
	// Metadata is only populated by validation and is optional.
	if err := api.ValidateContext(ctx); err == nil {
		info.Title = ctx.Title
		info.Producer = ctx.Producer
	}
	if ctx.HeaderVersion != nil {
		info.Version = ctx.HeaderVersion.String()
	}
	for i, d := range dims {
		info.Sizes[i] = PageSize{Width: d.Width, Height: d.Height}
	}
	return info, nil
}
