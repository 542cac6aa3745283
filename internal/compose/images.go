package compose

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG for DecodeConfig
	_ "image/png"  // register PNG for DecodeConfig

	"github.com/alnah/go-pdfdesk/internal/paper"
)

// ErrUnsupportedImage indicates an image that is neither PNG nor JPEG.
var ErrUnsupportedImage = errors.New("unsupported image format (PNG or JPEG required)")

// ImagePages builds a PDF with one page per image. Each page is exactly the
// image size with one pixel mapped to one point, and the image fills it.
func ImagePages(newDoc DocumentFactory, images [][]byte) ([]byte, error) {
	if len(images) == 0 {
		return nil, errors.New("no images to convert")
	}
	if newDoc == nil {
		newDoc = NewFPDFDocument
	}

	var doc Document
	for i, data := range images {
		cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: image %d: %v", ErrUnsupportedImage, i+1, err)
		}

		var imageType string
		switch format {
		case "png":
			imageType = ImagePNG
		case "jpeg":
			imageType = ImageJPEG
		default:
			return nil, fmt.Errorf("%w: image %d is %s", ErrUnsupportedImage, i+1, format)
		}

		w, h := float64(cfg.Width), float64(cfg.Height)
		if doc == nil {
			doc = newDoc(paper.Spec{Unit: paper.UnitPoint, Width: w, Height: h})
		}
		doc.AddPageSize(w, h)
		if err := doc.AddImage(fmt.Sprintf("image-%d", i+1), data, imageType, 0, 0, w, h); err != nil {
			return nil, fmt.Errorf("image %d: %w", i+1, err)
		}
	}

	return doc.Bytes()
}
