// Package pdfdesk converts HTML to paginated PDF by rendering it in an
// isolated headless Chrome surface, capturing the result as one tall
// bitmap, and cutting that bitmap into page-sized images.
//
// # Quick Start
//
// Create a converter, convert HTML, and close when done:
//
//	conv, err := pdfdesk.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, pdfdesk.Input{
//	    HTML:   "<h1>Hello</h1><p>World</p>",
//	    Format: pdfdesk.FormatA4,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.pdf", result.PDF, 0644)
//
// # Conversion Pipeline
//
// Each Convert call moves through these states:
//
//  1. Sandboxing: the HTML is wrapped in a document exactly one page wide
//     and loaded into a fresh incognito browser context; the converter
//     waits until the layout stops changing
//  2. Rasterizing: the full content is captured at 2x device scale
//  3. Paginating: the capture is cut into page-height tiles
//  4. Composing: each tile becomes one PDF page (gofpdf)
//
// Failures are reported as *ConversionError, which matches one of
// ErrRenderEnvironment, ErrRasterization or ErrComposition with errors.Is.
// Use WithStateObserver to follow the transitions.
//
// Content taller than a page is sliced across pages (ModeSlice). Text and
// images that straddle a page boundary are cut; Input.Mode = ModeFitPage
// scales everything onto a single page instead.
//
// # Inputs
//
// Input.HTML may be a fragment or a full document; a full document's title
// and <style> blocks are kept. Input.Markdown is converted with goldmark
// (GFM, footnotes, syntax highlighting) when HTML is empty. Relative image
// paths resolve against Input.SourceDir and are embedded as data URIs.
//
// # Parallel Processing
//
// Convert is safe for concurrent use. For batch conversion with one browser
// per worker, use ConverterPool:
//
//	pool := pdfdesk.NewConverterPool(pdfdesk.ResolvePoolSize(0))
//	defer pool.Close()
//
//	conv, err := pool.Acquire(ctx)
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
//	result, err := conv.Convert(ctx, input)
//
// # PDF Toolkit
//
// Toolkit merges, splits, extracts, reorders, rotates, watermarks,
// compresses, encrypts and decrypts existing PDF documents with pdfcpu, and
// builds documents from PNG or JPEG images.
//
// # Browser Requirements
//
// Rendering requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package pdfdesk
