// Package paper describes the supported paper formats in both physical units
// and CSS pixels at 96 DPI.
package paper

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for paper lookups.
var (
	ErrInvalidFormat      = errors.New("invalid paper format")
	ErrInvalidOrientation = errors.New("invalid orientation")
)

// Format names a paper size.
type Format string

// Supported formats.
const (
	A4     Format = "a4"
	Letter Format = "letter"
)

// Orientation names a page orientation.
type Orientation string

// Supported orientations.
const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// Physical units used by Spec.
const (
	UnitMillimeter = "mm"
	UnitInch       = "in"
	UnitPoint      = "pt"
)

// Spec is the geometry of one page for a format and orientation.
// Width and Height are in Unit; WidthPx and HeightPx are CSS pixels.
type Spec struct {
	Format      Format
	Orientation Orientation
	Unit        string
	Width       float64
	Height      float64
	WidthPx     int
	HeightPx    int
}

// portrait dimensions, swapped for landscape.
var portraitSpecs = map[Format]Spec{
	A4: {
		Format:   A4,
		Unit:     UnitMillimeter,
		Width:    210,
		Height:   297,
		WidthPx:  794,
		HeightPx: 1123,
	},
	Letter: {
		Format:   Letter,
		Unit:     UnitInch,
		Width:    8.5,
		Height:   11,
		WidthPx:  816,
		HeightPx: 1056,
	},
}

// Lookup returns the page geometry for a format and orientation.
// Empty values default to A4 and portrait.
func Lookup(f Format, o Orientation) (Spec, error) {
	f, err := ParseFormat(string(f))
	if err != nil {
		return Spec{}, err
	}
	o, err = ParseOrientation(string(o))
	if err != nil {
		return Spec{}, err
	}

	s := portraitSpecs[f]
	s.Orientation = o
	if o == Landscape {
		s.Width, s.Height = s.Height, s.Width
		s.WidthPx, s.HeightPx = s.HeightPx, s.WidthPx
	}
	return s, nil
}

// ParseFormat normalizes a format name (case-insensitive). Empty means A4.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", A4:
		return A4, nil
	case Letter:
		return Letter, nil
	}
	return "", fmt.Errorf("%w: %q (must be a4 or letter)", ErrInvalidFormat, s)
}

// ParseOrientation normalizes an orientation name (case-insensitive). Empty means portrait.
func ParseOrientation(s string) (Orientation, error) {
	switch Orientation(strings.ToLower(strings.TrimSpace(s))) {
	case "", Portrait:
		return Portrait, nil
	case Landscape:
		return Landscape, nil
	}
	return "", fmt.Errorf("%w: %q (must be portrait or landscape)", ErrInvalidOrientation, s)
}

// SizeName returns the paper name understood by PDF writers ("A4", "Letter").
func (s Spec) SizeName() string {
	if s.Format == Letter {
		return "Letter"
	}
	return "A4"
}

// Landscape reports whether the page is wider than tall.
func (s Spec) Landscape() bool {
	return s.Orientation == Landscape
}

// String renders e.g. "a4 portrait (210x297mm)".
func (s Spec) String() string {
	return fmt.Sprintf("%s %s (%gx%g%s)", s.Format, s.Orientation, s.Width, s.Height, s.Unit)
}
