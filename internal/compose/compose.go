// Package compose assembles page-sized raster tiles into a PDF document.
//
// Each tile becomes one page. In slice mode the tile is scaled to fill the
// page width and placed at the top-left corner; the height follows from the
// tile aspect ratio, so the last (shorter) tile underflows the page. In
// fit-page mode the single tile is scaled down to fit inside the page and
// centered horizontally.
package compose

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	xdraw "golang.org/x/image/draw"

	"github.com/alnah/go-pdfdesk/internal/pagination"
	"github.com/alnah/go-pdfdesk/internal/paper"
)

// ErrUnreadableTile indicates a tile's pixel region could not be extracted or encoded.
var ErrUnreadableTile = errors.New("unreadable tile image data")

// Metadata holds optional document information.
type Metadata struct {
	Title string
}

// Placement is the position and size of a tile on its page, in page units.
type Placement struct {
	X, Y, W, H float64
}

// Composer turns tiles into document pages.
type Composer struct {
	// NewDocument creates the output document. Defaults to NewFPDFDocument.
	NewDocument DocumentFactory

	// MaxTileWidth downscales tiles wider than this many pixels before
	// embedding. Zero keeps the raster resolution.
	MaxTileWidth int
}

// NewComposer creates a Composer backed by gofpdf.
func NewComposer() *Composer {
	return &Composer{NewDocument: NewFPDFDocument}
}

// Compose builds the document: one page per tile, in tile order.
func (c *Composer) Compose(ctx context.Context, spec paper.Spec, raster image.Image, tiles []pagination.Tile, mode pagination.Mode, meta Metadata) ([]byte, int, error) {
	if len(tiles) == 0 {
		return nil, 0, fmt.Errorf("%w: no tiles", ErrUnreadableTile)
	}

	newDoc := c.NewDocument
	if newDoc == nil {
		newDoc = NewFPDFDocument
	}
	doc := newDoc(spec)
	if meta.Title != "" {
		doc.SetTitle(meta.Title)
	}

	for _, tile := range tiles {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		data, err := c.encodeTile(raster, tile)
		if err != nil {
			return nil, 0, err
		}

		p := Place(spec, tile, mode)
		doc.AddPage()
		name := fmt.Sprintf("tile-%d", tile.Number)
		if err := doc.AddImage(name, data, ImagePNG, p.X, p.Y, p.W, p.H); err != nil {
			return nil, 0, fmt.Errorf("page %d: %w", tile.Number, err)
		}
	}

	out, err := doc.Bytes()
	if err != nil {
		return nil, 0, err
	}
	return out, doc.PageCount(), nil
}

// Place computes where a tile lands on its page.
func Place(spec paper.Spec, tile pagination.Tile, mode pagination.Mode) Placement {
	pw, ph := float64(tile.PixelWidth), float64(tile.PixelHeight)
	if pw <= 0 || ph <= 0 {
		return Placement{}
	}

	if mode == pagination.ModeFitPage {
		scale := min(spec.Width/pw, spec.Height/ph)
		w, h := pw*scale, ph*scale
		return Placement{X: (spec.Width - w) / 2, Y: 0, W: w, H: h}
	}

	return Placement{X: 0, Y: 0, W: spec.Width, H: ph * spec.Width / pw}
}

// encodeTile crops the tile from the raster and encodes it as 8-bit PNG.
func (c *Composer) encodeTile(raster image.Image, tile pagination.Tile) ([]byte, error) {
	part, err := pagination.Crop(raster, tile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableTile, err)
	}

	part = normalize(part)
	if c.MaxTileWidth > 0 && part.Bounds().Dx() > c.MaxTileWidth {
		part = downscale(part, c.MaxTileWidth)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, part); err != nil {
		return nil, fmt.Errorf("%w: tile %d: %v", ErrUnreadableTile, tile.Number, err)
	}
	return buf.Bytes(), nil
}

// normalize converts images to 8-bit RGBA; PDF writers reject 16-bit PNG.
func normalize(img image.Image) image.Image {
	switch img.(type) {
	case *image.RGBA, *image.NRGBA:
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// downscale resizes img to the given width, keeping the aspect ratio.
func downscale(img image.Image, width int) image.Image {
	b := img.Bounds()
	height := max(1, b.Dy()*width/b.Dx())
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
