package pdfdesk

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-pdfdesk/internal/compose"
	"github.com/alnah/go-pdfdesk/internal/paper"
	"github.com/alnah/go-pdfdesk/internal/render"
)

// ---------------------------------------------------------------------------
// Fake surfaces
// ---------------------------------------------------------------------------

// fakeFactory hands out fakeSurfaces and counts the live ones.
type fakeFactory struct {
	mu sync.Mutex

	size        *render.Size // content size; nil means the viewport size
	grow        int          // added to the height on every measurement
	newErr      error
	docErr      error
	shotErr     error
	panicOnShot bool

	created   int
	live      int
	closed    bool
	viewports []render.Viewport
	documents []string
}

func (f *fakeFactory) NewSurface(ctx context.Context, vp render.Viewport) (render.Surface, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.newErr != nil {
		return nil, fmt.Errorf("%w: %v", render.ErrSurfaceCreate, f.newErr)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.created++
	f.live++
	f.viewports = append(f.viewports, vp)

	size := render.Size{Width: vp.Width, Height: vp.Height}
	if f.size != nil {
		size = *f.size
	}
	return &fakeSurface{factory: f, size: size}, nil
}

func (f *fakeFactory) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeFactory) liveSurfaces() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.live
}

func (f *fakeFactory) lastDocument() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.documents) == 0 {
		return ""
	}
	return f.documents[len(f.documents)-1]
}

type fakeSurface struct {
	factory *fakeFactory
	size    render.Size
	once    sync.Once
}

func (s *fakeSurface) SetDocument(ctx context.Context, html string) error {
	if s.factory.docErr != nil {
		return fmt.Errorf("%w: %v", render.ErrDocumentLoad, s.factory.docErr)
	}
	s.factory.mu.Lock()
	defer s.factory.mu.Unlock()
	s.factory.documents = append(s.factory.documents, html)
	return nil
}

func (s *fakeSurface) Measure(ctx context.Context) (render.Size, error) {
	if err := ctx.Err(); err != nil {
		return render.Size{}, err
	}
	s.size.Height += s.factory.grow
	return s.size, nil
}

func (s *fakeSurface) Screenshot(ctx context.Context, clip render.Rect, scale float64) ([]byte, error) {
	if s.factory.panicOnShot {
		panic("capture exploded")
	}
	if s.factory.shotErr != nil {
		return nil, s.factory.shotErr
	}
	w := int(float64(clip.Width) * scale)
	h := int(float64(clip.Height) * scale)
	return pngOf(w, h), nil
}

func (s *fakeSurface) Close() error {
	s.once.Do(func() {
		s.factory.mu.Lock()
		s.factory.live--
		s.factory.mu.Unlock()
	})
	return nil
}

func pngOf(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: uint8(y), G: 255, B: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// ---------------------------------------------------------------------------
// Fake documents
// ---------------------------------------------------------------------------

// failingDocument accepts pages and fails to serialize.
type failingDocument struct{ pages int }

func (d *failingDocument) AddPage()                 { d.pages++ }
func (d *failingDocument) AddPageSize(w, h float64) { d.pages++ }
func (d *failingDocument) AddImage(string, []byte, string, float64, float64, float64, float64) error {
	return nil
}
func (d *failingDocument) SetTitle(string)        {}
func (d *failingDocument) PageCount() int         { return d.pages }
func (d *failingDocument) Bytes() ([]byte, error) { return nil, errors.New("disk full") }

func newFailingDocument(paper.Spec) compose.Document { return &failingDocument{} }

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// fastSettle keeps layout waits short in tests.
func fastSettle() Option {
	return WithSettle(time.Millisecond, 2, 200*time.Millisecond)
}

func newTestConverter(f *fakeFactory, opts ...Option) (*Converter, error) {
	base := []Option{WithSurfaceFactory(f), WithScale(1), fastSettle()}
	return NewConverter(append(base, opts...)...)
}

func sizeOf(w, h int) *render.Size {
	return &render.Size{Width: w, Height: h}
}

func writeFile(t *testing.T, dir, name string, data []byte) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o600); err != nil {
		t.Fatal(err)
	}
}
