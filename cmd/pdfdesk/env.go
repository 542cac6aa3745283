package main

import (
	"io"
	"os"

	pdfdesk "github.com/alnah/go-pdfdesk"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, the process environment and the conversion backends.
type Environment struct {
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	Environ func() []string
	Toolkit *pdfdesk.Toolkit

	// NewPool creates the converter pool for the html command.
	NewPool func(size int, opts ...pdfdesk.Option) Pool

	// NewConverter creates the single converter used by the mcp command.
	NewConverter func(opts ...pdfdesk.Option) (Converter, error)
}

// DefaultEnv returns the production environment backed by headless Chrome.
func DefaultEnv() *Environment {
	return &Environment{
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
		Toolkit: pdfdesk.NewToolkit(),
		NewPool: newConverterPool,
		NewConverter: func(opts ...pdfdesk.Option) (Converter, error) {
			return pdfdesk.NewConverter(opts...)
		},
	}
}
