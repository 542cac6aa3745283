package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
)

// DefaultScale is the device scale factor used for capture.
const DefaultScale = 2.0

// Rasterize measures the full content of the surface and captures it as one
// image at the given scale. The result is Width*scale by Height*scale pixels.
func Rasterize(ctx context.Context, s Surface, scale float64) (image.Image, error) {
	if scale <= 0 {
		scale = DefaultScale
	}

	size, err := s.Measure(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: measuring content: %w", ErrCapture, err)
	}
	if size.Width <= 0 || size.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyContent, size.Width, size.Height)
	}

	data, err := s.Screenshot(ctx, Rect{Width: size.Width, Height: size.Height}, scale)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCapture, err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding PNG: %v", ErrCapture, err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("%w: captured %dx%d image", ErrEmptyContent, b.Dx(), b.Dy())
	}
	return img, nil
}
