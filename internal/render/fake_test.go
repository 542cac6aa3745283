package render

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"sync"
)

// fakeSurface implements Surface with scripted measurements.
type fakeSurface struct {
	mu sync.Mutex

	sizes      []Size // returned in order; the last one repeats
	measureErr error
	shot       []byte
	shotErr    error

	measures  int
	lastClip  Rect
	lastScale float64
	document  string
	closed    int
}

func (f *fakeSurface) SetDocument(ctx context.Context, html string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.document = html
	return nil
}

func (f *fakeSurface) Measure(ctx context.Context) (Size, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.measureErr != nil {
		return Size{}, f.measureErr
	}
	i := min(f.measures, len(f.sizes)-1)
	f.measures++
	return f.sizes[i], nil
}

func (f *fakeSurface) Screenshot(ctx context.Context, clip Rect, scale float64) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastClip = clip
	f.lastScale = scale
	return f.shot, f.shotErr
}

func (f *fakeSurface) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
	return nil
}

// pngOf encodes a white w x h image.
func pngOf(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}
