package pdfdesk

import (
	"time"

	"github.com/alnah/go-pdfdesk/internal/compose"
	"github.com/alnah/go-pdfdesk/internal/render"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout      time.Duration
	scale        float64
	style        string
	assetPath    string
	settle       render.Settle
	maxTileWidth int
	observer     func(State)
}

// defaultTimeout bounds one Convert call when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the per-conversion timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("pdfdesk: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithScale sets the device scale factor used for capture (default 2).
// NewConverter rejects values outside (0, 4] with ErrInvalidScale.
func WithScale(scale float64) Option {
	return func(c *Converter) {
		c.cfg.scale = scale
	}
}

// WithStyle selects the base style by name (default DefaultStyle).
// Non-default styles are layered on top of DefaultStyle.
func WithStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.style = name
	}
}

// WithSettle configures how long to wait for the layout to stop changing.
// Zero fields keep their defaults.
func WithSettle(interval time.Duration, stable int, timeout time.Duration) Option {
	return func(c *Converter) {
		c.cfg.settle = render.Settle{Interval: interval, Stable: stable, Timeout: timeout}
	}
}

// WithMaxTileWidth downscales captured tiles wider than px pixels before
// embedding them. Zero keeps the full capture resolution.
func WithMaxTileWidth(px int) Option {
	return func(c *Converter) {
		c.cfg.maxTileWidth = px
	}
}

// WithStateObserver registers fn to receive every pipeline state transition.
// fn is called synchronously from Convert and must be safe for concurrent
// use if the converter is shared.
func WithStateObserver(fn func(State)) Option {
	return func(c *Converter) {
		c.cfg.observer = fn
	}
}

// WithSurfaceFactory sets the render surface provider.
// The converter does not close a factory it did not create.
func WithSurfaceFactory(f render.SurfaceFactory) Option {
	return func(c *Converter) {
		c.surfaces = f
	}
}

// WithDocumentFactory sets the output document provider (default gofpdf).
func WithDocumentFactory(f compose.DocumentFactory) Option {
	return func(c *Converter) {
		c.composer.NewDocument = f
	}
}

// WithAssetLoader sets a custom asset loader.
// Takes precedence over WithAssetPath.
func WithAssetLoader(l AssetLoader) Option {
	return func(c *Converter) {
		c.loader = l
	}
}

// WithAssetPath loads styles and templates from path, falling back to the
// embedded assets.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}
