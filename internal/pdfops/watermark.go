package pdfops

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Watermark defaults.
const (
	DefaultWatermarkFontSize = 48
	DefaultWatermarkOpacity  = 0.3
	DefaultWatermarkRotation = -45
	DefaultWatermarkColor    = "#808080"
	watermarkFont            = "Helvetica-Bold"
)

// WatermarkOptions describes a text watermark centered on every page.
// Zero values take the defaults.
type WatermarkOptions struct {
	Text     string
	FontSize int     // points
	Opacity  float64 // 0 < opacity <= 1
	Rotation int     // degrees, counter-clockwise
	Color    string  // #RRGGBB
}

// withDefaults fills zero fields.
func (o WatermarkOptions) withDefaults() WatermarkOptions {
	if o.FontSize == 0 {
		o.FontSize = DefaultWatermarkFontSize
	}
	if o.Opacity == 0 {
		o.Opacity = DefaultWatermarkOpacity
	}
	if o.Rotation == 0 {
		o.Rotation = DefaultWatermarkRotation
	}
	if o.Color == "" {
		o.Color = DefaultWatermarkColor
	}
	return o
}

// Validate checks the options after defaults are applied.
func (o WatermarkOptions) Validate() error {
	if strings.TrimSpace(o.Text) == "" {
		return ErrEmptyWatermark
	}
	if o.FontSize < 0 || o.FontSize > 500 {
		return fmt.Errorf("%w: font size %d out of range 1-500", ErrInvalidWatermark, o.FontSize)
	}
	if o.Opacity < 0 || o.Opacity > 1 {
		return fmt.Errorf("%w: opacity %.2f out of range 0-1", ErrInvalidWatermark, o.Opacity)
	}
	if o.Rotation < -180 || o.Rotation > 180 {
		return fmt.Errorf("%w: rotation %d out of range -180..180", ErrInvalidWatermark, o.Rotation)
	}
	if o.Color != "" && (len(o.Color) != 7 || o.Color[0] != '#') {
		return fmt.Errorf("%w: color %q is not #RRGGBB", ErrInvalidWatermark, o.Color)
	}
	return nil
}

// description renders the options in pdfcpu's watermark syntax.
func (o WatermarkOptions) description() string {
	return fmt.Sprintf("fontname:%s, points:%d, rotation:%d, opacity:%.2f, fillcolor:%s, scalefactor:1 abs",
		watermarkFont, o.FontSize, o.Rotation, o.Opacity, o.Color)
}

// Watermark stamps the text, centered, on top of every page.
func (p *Processor) Watermark(in []byte, opts WatermarkOptions) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("watermarking: %w", err)
	}
	opts = opts.withDefaults()

	wm, err := api.TextWatermark(opts.Text, opts.description(), true, false, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("watermarking: %w: %v", ErrInvalidWatermark, err)
	}

	return p.run("watermarking", in, p.config(), func(rs io.ReadSeeker, w io.Writer, conf *model.Configuration) error {
		return api.AddWatermarks(rs, w, nil, wm, conf)
	})
}
