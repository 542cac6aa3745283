package render

import "context"

// Viewport is the surface size in CSS pixels.
type Viewport struct {
	Width  int
	Height int
}

// Size is a measured content size in CSS pixels.
type Size struct {
	Width  int
	Height int
}

// Rect is a capture region in CSS pixels.
type Rect struct {
	X, Y, Width, Height int
}

// Surface is one isolated rendering context.
// A Surface is used by a single request and must be closed by its owner.
type Surface interface {
	// SetDocument replaces the surface content with a complete HTML document
	// and waits for it to load.
	SetDocument(ctx context.Context, html string) error

	// Measure returns the full scroll size of the root element.
	Measure(ctx context.Context) (Size, error)

	// Screenshot captures clip as PNG at the given device scale factor.
	// The clip may extend beyond the viewport.
	Screenshot(ctx context.Context, clip Rect, scale float64) ([]byte, error)

	// Close releases the surface. It is safe to call more than once.
	Close() error
}

// SurfaceFactory creates surfaces. Implementations must be safe for
// concurrent use.
type SurfaceFactory interface {
	NewSurface(ctx context.Context, vp Viewport) (Surface, error)
	Close() error
}
