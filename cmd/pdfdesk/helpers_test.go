package main

// Notes:
// - Test infrastructure shared by the cmd tests: fake converters and pools,
//   an in-memory Environment, and real PDFs built with the Toolkit.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	pdfdesk "github.com/alnah/go-pdfdesk"
)

// ---------------------------------------------------------------------------
// Fakes - Converter and Pool
// ---------------------------------------------------------------------------

// fakeConverter records inputs and returns a fixed result.
type fakeConverter struct {
	mu     sync.Mutex
	inputs []pdfdesk.Input
	err    error
	closed bool
}

func (f *fakeConverter) Convert(_ context.Context, in pdfdesk.Input) (*pdfdesk.Result, error) {
	f.mu.Lock()
	f.inputs = append(f.inputs, in)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return &pdfdesk.Result{
		PDF:   []byte("%PDF-1.4 fake"),
		Pages: 2,
		HTML:  []byte("<html><body>rendered</body></html>"),
	}, nil
}

func (f *fakeConverter) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConverter) received() []pdfdesk.Input {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]pdfdesk.Input(nil), f.inputs...)
}

// fakePool hands out a shared fakeConverter.
type fakePool struct {
	conv       *fakeConverter
	size       int
	acquireErr error
	opts       []pdfdesk.Option
	closed     bool
}

func (p *fakePool) Acquire(context.Context) (Converter, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	return p.conv, nil
}

func (p *fakePool) Release(Converter) {}

func (p *fakePool) Size() int { return p.size }

func (p *fakePool) Close() error {
	p.closed = true
	return nil
}

// ---------------------------------------------------------------------------
// testEnv - In-memory Environment
// ---------------------------------------------------------------------------

// testEnv bundles an Environment with its captured output.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	vars   map[string]string
	pool   *fakePool
	conv   *fakeConverter
}

// newTestEnv returns an Environment with buffered I/O, an empty process
// environment, a real Toolkit and a fake converter pool.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		vars:   map[string]string{},
		conv:   &fakeConverter{},
	}
	te.pool = &fakePool{conv: te.conv}

	te.Environment = &Environment{
		Stdin:  strings.NewReader(""),
		Stdout: te.stdout,
		Stderr: te.stderr,
		Getenv: func(k string) string { return te.vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(te.vars))
			for k, v := range te.vars {
				out = append(out, k+"="+v)
			}
			return out
		},
		Toolkit: pdfdesk.NewToolkit(),
		NewPool: func(size int, opts ...pdfdesk.Option) Pool {
			te.pool.size = size
			te.pool.opts = opts
			return te.pool
		},
		NewConverter: func(...pdfdesk.Option) (Converter, error) {
			return te.conv, nil
		},
	}
	return te
}

// ---------------------------------------------------------------------------
// Fixtures - Real documents
// ---------------------------------------------------------------------------

// pngImage encodes a solid w x h PNG.
func pngImage(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding png: %v", err)
	}
	return buf.Bytes()
}

// writePDF writes a PDF with one page per width (each 20pt tall) and
// returns its path.
func writePDF(t *testing.T, dir, name string, widths ...int) string {
	t.Helper()

	images := make([][]byte, len(widths))
	for i, w := range widths {
		images[i] = pngImage(t, w, 20)
	}
	doc, err := pdfdesk.NewToolkit().ImagesToPDF(images)
	if err != nil {
		t.Fatalf("building pdf: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		t.Fatalf("writing pdf: %v", err)
	}
	return path
}

// widthsOf returns the page widths of the PDF at path.
func widthsOf(t *testing.T, path string) []int {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	info, err := pdfdesk.NewToolkit().Info(data)
	if err != nil {
		t.Fatalf("reading info of %s: %v", path, err)
	}
	widths := make([]int, len(info.Sizes))
	for i, s := range info.Sizes {
		widths[i] = int(s.Width + 0.5)
	}
	return widths
}

// writeFile writes content under dir and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// equalInts reports whether a and b hold the same values.
func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

var errFake = errors.New("fake failure")
