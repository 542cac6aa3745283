package pdfdesk

import (
	"context"
	"fmt"

	"github.com/alnah/go-pdfdesk/internal/assets"
	"github.com/alnah/go-pdfdesk/internal/compose"
	"github.com/alnah/go-pdfdesk/internal/pagination"
	"github.com/alnah/go-pdfdesk/internal/pipeline"
	"github.com/alnah/go-pdfdesk/internal/render"
)

// MaxScale is the largest accepted capture scale.
const MaxScale = 4.0

// Converter runs the HTML to PDF pipeline.
// Create with NewConverter, use Convert for conversion, and Close when done.
// Convert is safe for concurrent use: every call renders in its own surface.
type Converter struct {
	cfg          converterConfig
	loader       AssetLoader
	surfaces     render.SurfaceFactory
	ownsSurfaces bool
	composer     *compose.Composer
	markdown     pipeline.HTMLConverter
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithStyle, WithScale).
// The headless browser is started on the first conversion, not here.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout: defaultTimeout,
			scale:   render.DefaultScale,
			style:   DefaultStyle,
			settle:  render.DefaultSettle(),
		},
		composer: compose.NewComposer(),
		markdown: pipeline.NewGoldmarkConverter(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.scale <= 0 || c.cfg.scale > MaxScale {
		return nil, fmt.Errorf("%w: %g (must be in (0, %g])", ErrInvalidScale, c.cfg.scale, MaxScale)
	}
	if c.cfg.style == "" {
		c.cfg.style = DefaultStyle
	}
	c.composer.MaxTileWidth = c.cfg.maxTileWidth

	if c.loader == nil {
		loader, err := NewAssetLoader(c.cfg.assetPath)
		if err != nil {
			return nil, err
		}
		c.loader = loader
	}

	// Fail fast on unknown styles rather than on every Convert.
	if _, err := c.loader.LoadStyle(c.cfg.style); err != nil {
		return nil, fmt.Errorf("loading style %q: %w", c.cfg.style, err)
	}

	if c.surfaces == nil {
		c.surfaces = render.NewBrowserFactory(render.BrowserConfigFromEnv(nil))
		c.ownsSurfaces = true
	}

	return c, nil
}

// Convert renders input in an isolated surface, captures it, cuts the
// capture into pages and returns the composed PDF.
//
// Input errors are returned as is. Pipeline failures are *ConversionError
// values matching ErrRenderEnvironment, ErrRasterization or ErrComposition,
// and the underlying cause (including context errors).
// Internal panics are recovered and reported as a failure of the current state.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	spec, err := input.PageSpec()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	parts, err := c.prepare(ctx, input)
	if err != nil {
		return nil, err
	}

	t := &tracker{observe: c.cfg.observer}
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = t.fail(fmt.Errorf("internal error: %v", r))
		}
	}()

	// Sandboxing
	t.enter(StateSandboxing)
	vp := render.Viewport{Width: spec.WidthPx, Height: spec.HeightPx}
	doc, err := render.BuildDocument(c.loader, render.DocumentInput{
		Body:     parts.Body,
		CSS:      parts.CSS,
		Title:    parts.Title,
		Style:    c.cfg.style,
		Viewport: vp,
	})
	if err != nil {
		return nil, t.fail(fmt.Errorf("building document: %w", err))
	}

	surface, err := c.surfaces.NewSurface(ctx, vp)
	if err != nil {
		return nil, t.fail(err)
	}
	defer surface.Close()

	if err := surface.SetDocument(ctx, doc); err != nil {
		return nil, t.fail(err)
	}
	if _, err := render.WaitStable(ctx, surface, c.cfg.settle); err != nil {
		return nil, t.fail(err)
	}

	// Rasterizing
	t.enter(StateRasterizing)
	raster, err := render.Rasterize(ctx, surface, c.cfg.scale)
	if err != nil {
		return nil, t.fail(err)
	}

	// Paginating
	t.enter(StatePaginating)
	bounds := raster.Bounds()
	limit, err := pagination.PageLimit(spec.Width, spec.Height, bounds.Dx())
	if err != nil {
		return nil, t.fail(err)
	}
	tiles, err := pagination.Paginate(bounds.Dx(), bounds.Dy(), limit, input.Mode)
	if err != nil {
		return nil, t.fail(err)
	}

	// Composing
	t.enter(StateComposing)
	pdf, pages, err := c.composer.Compose(ctx, spec, raster, tiles, input.Mode, compose.Metadata{Title: parts.Title})
	if err != nil {
		return nil, t.fail(err)
	}

	t.enter(StateDone)
	return &Result{
		PDF:          pdf,
		Pages:        pages,
		Page:         spec,
		Tiles:        tiles,
		RasterWidth:  bounds.Dx(),
		RasterHeight: bounds.Dy(),
		HTML:         []byte(doc),
	}, nil
}

// prepare turns the input into the body, styles and title of the sandbox
// document: Markdown conversion, document splitting and image inlining.
func (c *Converter) prepare(ctx context.Context, input Input) (pipeline.Parts, error) {
	content := input.HTML
	if content == "" && input.Markdown != "" {
		var err error
		content, err = pipeline.MarkdownToHTML(ctx, c.markdown, input.Markdown)
		if err != nil {
			return pipeline.Parts{}, fmt.Errorf("converting Markdown: %w", err)
		}
	}

	content, err := pipeline.InlineImages(content, input.SourceDir)
	if err != nil {
		return pipeline.Parts{}, fmt.Errorf("inlining images: %w", err)
	}

	parts, err := pipeline.SplitDocument(content)
	if err != nil {
		return pipeline.Parts{}, fmt.Errorf("parsing HTML: %w", err)
	}

	if input.CSS != "" {
		if parts.CSS != "" {
			parts.CSS += "\n"
		}
		parts.CSS += input.CSS
	}
	parts.CSS = pipeline.SanitizeCSS(parts.CSS)
	if input.Title != "" {
		parts.Title = input.Title
	}
	return parts, nil
}

// Close releases the browser if the converter started it.
func (c *Converter) Close() error {
	if c.ownsSurfaces && c.surfaces != nil {
		return c.surfaces.Close()
	}
	return nil
}

// Compile-time interface implementation checks.
var (
	_ render.SurfaceFactory = (*render.BrowserFactory)(nil)
	_ assets.AssetLoader    = (*assets.AssetResolver)(nil)
)
