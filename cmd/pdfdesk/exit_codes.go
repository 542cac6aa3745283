package main

import (
	"errors"
	"os"

	pdfdesk "github.com/alnah/go-pdfdesk"
	"github.com/alnah/go-pdfdesk/internal/config"
)

// Exit codes for the pdfdesk CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/render environment errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, pdfdesk.ErrRenderEnvironment) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, pdfdesk.ErrInvalidPaperFormat) ||
		errors.Is(err, pdfdesk.ErrInvalidOrientation) ||
		errors.Is(err, pdfdesk.ErrInvalidMode) ||
		errors.Is(err, pdfdesk.ErrInvalidScale) ||
		errors.Is(err, pdfdesk.ErrConflictingInput) ||
		errors.Is(err, pdfdesk.ErrStyleNotFound) ||
		errors.Is(err, pdfdesk.ErrInvalidAssetPath) ||
		errors.Is(err, pdfdesk.ErrInvalidRotation) ||
		errors.Is(err, pdfdesk.ErrInvalidPageSelection) ||
		errors.Is(err, pdfdesk.ErrEmptyWatermark) ||
		errors.Is(err, pdfdesk.ErrInvalidWatermark) ||
		errors.Is(err, pdfdesk.ErrEmptyPassword) ||
		errors.Is(err, pdfdesk.ErrWrongPassword) ||
		errors.Is(err, pdfdesk.ErrEncrypted) ||
		errors.Is(err, pdfdesk.ErrNotEncrypted) ||
		errors.Is(err, pdfdesk.ErrUnsupportedImage) ||
		errors.Is(err, ErrUnsupportedExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrMissingArgument) ||
		errors.Is(err, ErrOutputNotDir) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
