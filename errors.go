package pdfdesk

import (
	"errors"
	"fmt"

	"github.com/alnah/go-pdfdesk/internal/assets"
	"github.com/alnah/go-pdfdesk/internal/paper"
	"github.com/alnah/go-pdfdesk/internal/pipeline"
)

// Failure kinds of the HTML to PDF pipeline. Every Convert error past input
// validation is a *ConversionError whose Kind is one of these.
var (
	// ErrRenderEnvironment indicates the render sandbox could not be created,
	// loaded, or settled.
	ErrRenderEnvironment = errors.New("render environment unavailable")

	// ErrRasterization indicates the rendered content could not be captured
	// or has no usable geometry.
	ErrRasterization = errors.New("rasterization failed")

	// ErrComposition indicates the output document could not be assembled.
	ErrComposition = errors.New("PDF composition failed")
)

// Input and configuration validation errors.
var (
	ErrInvalidPaperFormat = paper.ErrInvalidFormat
	ErrInvalidOrientation = paper.ErrInvalidOrientation
	ErrInvalidMode        = errors.New("invalid pagination mode")
	ErrInvalidScale       = errors.New("invalid capture scale")
	ErrConflictingInput   = errors.New("input has both HTML and Markdown")
	ErrHTMLConversion     = pipeline.ErrHTMLConversion

	// Asset loading errors.
	ErrStyleNotFound    = assets.ErrStyleNotFound
	ErrInvalidAssetPath = errors.New("invalid asset path")
)

// ConversionError reports the pipeline state a conversion failed in.
type ConversionError struct {
	State State // state that was active when the failure happened
	Kind  error // ErrRenderEnvironment, ErrRasterization or ErrComposition
	Err   error // underlying cause
}

func (e *ConversionError) Error() string {
	if e.Kind == nil {
		return fmt.Sprintf("converting HTML: %s: %v", e.State, e.Err)
	}
	return fmt.Sprintf("converting HTML: %s: %v: %v", e.State, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *ConversionError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// kindOf maps the failing state to its error kind.
func kindOf(s State) error {
	switch s {
	case StateSandboxing:
		return ErrRenderEnvironment
	case StateRasterizing, StatePaginating:
		return ErrRasterization
	case StateComposing:
		return ErrComposition
	}
	return nil
}
