package pdfops

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/stretchr/testify/require"
)

// pngImage encodes a solid w x h PNG.
func pngImage(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 220, B: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// samplePDF builds a document whose page i has width widths[i] and height
// 100, so pages can be told apart by size.
func samplePDF(t *testing.T, widths ...int) []byte {
	t.Helper()
	images := make([][]byte, len(widths))
	for i, w := range widths {
		images[i] = pngImage(t, w, 100)
	}
	pdf, err := New().ImagesToPDF(images)
	require.NoError(t, err)
	return pdf
}

// pageWidths returns the rounded width of every page.
func pageWidths(t *testing.T, pdf []byte) []int {
	t.Helper()
	info, err := New().Info(pdf)
	require.NoError(t, err)
	out := make([]int, len(info.Sizes))
	for i, s := range info.Sizes {
		out[i] = int(s.Width + 0.5)
	}
	return out
}

// pageRotations returns the effective rotation of every page in [0, 360).
func pageRotations(t *testing.T, pdf []byte) []int {
	t.Helper()
	ctx, err := api.ReadContext(bytes.NewReader(pdf), model.NewDefaultConfiguration())
	require.NoError(t, err)
	require.NoError(t, ctx.EnsurePageCount())

	out := make([]int, ctx.PageCount)
	for i := range out {
		_, _, inherited, err := ctx.PageDict(i+1, false)
		require.NoError(t, err)
		out[i] = ((inherited.Rotate % 360) + 360) % 360
	}
	return out
}
