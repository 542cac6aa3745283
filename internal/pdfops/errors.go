package pdfops

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-pdfdesk/internal/compose"
)

// Sentinel errors for PDF operations.
var (
	// ErrNoInput indicates no document or image was given.
	ErrNoInput = errors.New("no input")

	// ErrInvalidRotation indicates an angle that is not a multiple of 90.
	ErrInvalidRotation = errors.New("rotation must be a multiple of 90 degrees")

	// ErrInvalidPageSelection indicates a malformed or out-of-range page selection.
	ErrInvalidPageSelection = errors.New("invalid page selection")

	// ErrEmptyWatermark indicates an empty watermark text.
	ErrEmptyWatermark = errors.New("watermark text is empty")

	// ErrInvalidWatermark indicates out-of-range watermark options.
	ErrInvalidWatermark = errors.New("invalid watermark options")

	// ErrEmptyPassword indicates an empty password.
	ErrEmptyPassword = errors.New("password is empty")

	// ErrWrongPassword indicates the password does not open the document.
	ErrWrongPassword = errors.New("incorrect password")

	// ErrEncrypted indicates the document needs a password for this operation.
	ErrEncrypted = errors.New("document is encrypted")

	// ErrNotEncrypted indicates Unlock was called on an unencrypted document.
	ErrNotEncrypted = errors.New("document is not encrypted")

	// ErrUnsupportedImage indicates an image that is neither PNG nor JPEG.
	ErrUnsupportedImage = compose.ErrUnsupportedImage

	// ErrProcessing indicates pdfcpu could not read or write the document.
	ErrProcessing = errors.New("PDF processing failed")
)

// classify maps a pdfcpu error onto the package sentinels.
// pdfcpu reports these conditions only through its messages.
func classify(op string, err error, withPassword bool) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "not encrypted"):
		return fmt.Errorf("%s: %w", op, ErrNotEncrypted)
	case strings.Contains(msg, "password") && withPassword:
		return fmt.Errorf("%s: %w", op, ErrWrongPassword)
	case strings.Contains(msg, "password") || strings.Contains(msg, "encrypted"):
		return fmt.Errorf("%s: %w", op, ErrEncrypted)
	}
	return fmt.Errorf("%s: %w: %v", op, ErrProcessing, err)
}
