// Package pagination slices one tall raster into page-sized tiles.
//
// The raster is assumed to be scaled to fill the page width, so the page
// height expressed in raster pixels is the paper aspect ratio applied to the
// raster width. Tiles cover the raster top to bottom with no gaps and no
// overlap: the sum of tile heights always equals the raster height.
package pagination

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// ErrInvalidGeometry indicates a non-positive raster height, width, or page limit.
var ErrInvalidGeometry = errors.New("invalid raster geometry")

// Mode selects how a raster taller than one page is laid out.
type Mode string

const (
	// ModeSlice cuts the raster into ceil(H/L) page-height slices.
	ModeSlice Mode = "slice"

	// ModeFitPage keeps the raster as a single tile scaled down to fit one page.
	ModeFitPage Mode = "fit-page"
)

// Valid reports whether m is a known mode. The empty mode is valid and means ModeSlice.
func (m Mode) Valid() bool {
	switch m {
	case "", ModeSlice, ModeFitPage:
		return true
	}
	return false
}

// Tile is one page-sized vertical region of the source raster.
// Number is the 1-based page number the tile lands on.
type Tile struct {
	Number       int
	SourceY      int
	SourceHeight int
	PixelWidth   int
	PixelHeight  int
}

// Rect returns the tile's region in raster coordinates.
func (t Tile) Rect() image.Rectangle {
	return image.Rect(0, t.SourceY, t.PixelWidth, t.SourceY+t.SourceHeight)
}

// PageLimit returns the page height in raster pixels for a raster of the
// given width scaled to fill a page of pageWidth x pageHeight (any unit).
// The result is rounded to match the pixel page sizes, so a sandbox body of
// exactly one page height (1123px on A4) still fits on one page.
func PageLimit(pageWidth, pageHeight float64, rasterWidth int) (int, error) {
	if pageWidth <= 0 || pageHeight <= 0 || rasterWidth <= 0 {
		return 0, fmt.Errorf("%w: page %.2fx%.2f, raster width %d", ErrInvalidGeometry, pageWidth, pageHeight, rasterWidth)
	}
	limit := int(math.Round(pageHeight * float64(rasterWidth) / pageWidth))
	if limit < 1 {
		limit = 1
	}
	return limit, nil
}

// Paginate computes the tiles covering rows [0, height) of a raster of the
// given width with at most limit rows per tile.
func Paginate(width, height, limit int, mode Mode) ([]Tile, error) {
	if width <= 0 || height <= 0 || limit <= 0 {
		return nil, fmt.Errorf("%w: raster %dx%d, page limit %d", ErrInvalidGeometry, width, height, limit)
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("unknown pagination mode %q", mode)
	}

	if height <= limit || mode == ModeFitPage {
		return []Tile{newTile(1, 0, height, width)}, nil
	}

	count := (height + limit - 1) / limit
	tiles := make([]Tile, 0, count)
	for y := 0; y < height; y += limit {
		h := min(limit, height-y)
		tiles = append(tiles, newTile(len(tiles)+1, y, h, width))
	}
	return tiles, nil
}

func newTile(number, y, h, w int) Tile {
	return Tile{
		Number:       number,
		SourceY:      y,
		SourceHeight: h,
		PixelWidth:   w,
		PixelHeight:  h,
	}
}

// subImager is implemented by every concrete image type in the standard library.
type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// Crop returns the region of img covered by the tile, rebased so that the
// returned image's bounds start at the tile's offset within img.
// Falls back to a copy when img does not support SubImage.
func Crop(img image.Image, t Tile) (image.Image, error) {
	b := img.Bounds()
	r := t.Rect().Add(b.Min)
	if !r.In(b) {
		return nil, fmt.Errorf("%w: tile %d %v outside raster %v", ErrInvalidGeometry, t.Number, r, b)
	}
	if si, ok := img.(subImager); ok {
		return si.SubImage(r), nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			dst.Set(x, y, img.At(r.Min.X+x, r.Min.Y+y))
		}
	}
	return dst, nil
}

// TotalHeight returns the sum of tile source heights.
func TotalHeight(tiles []Tile) int {
	total := 0
	for _, t := range tiles {
		total += t.SourceHeight
	}
	return total
}
