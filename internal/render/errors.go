package render

import "errors"

// Sentinel errors for rendering.
var (
	// ErrBrowserLaunch indicates the headless browser could not be started or reached.
	ErrBrowserLaunch = errors.New("failed to launch browser")

	// ErrSurfaceCreate indicates an isolated context or page could not be opened.
	ErrSurfaceCreate = errors.New("failed to create render surface")

	// ErrDocumentLoad indicates the document could not be loaded into the surface.
	ErrDocumentLoad = errors.New("failed to load document")

	// ErrLayoutUnstable indicates the content size kept changing until the settle timeout.
	ErrLayoutUnstable = errors.New("layout did not stabilize")

	// ErrEmptyContent indicates the rendered content has zero width or height.
	ErrEmptyContent = errors.New("rendered content is empty")

	// ErrCapture indicates the screenshot could not be taken or decoded.
	ErrCapture = errors.New("failed to capture content")

	// ErrFactoryClosed indicates NewSurface was called after Close.
	ErrFactoryClosed = errors.New("surface factory is closed")
)
