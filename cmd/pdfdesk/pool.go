package main

import (
	"context"
	"fmt"

	pdfdesk "github.com/alnah/go-pdfdesk"
)

// Converter is the conversion interface the CLI depends on.
type Converter interface {
	Convert(ctx context.Context, input pdfdesk.Input) (*pdfdesk.Result, error)
	Close() error
}

// Compile-time interface implementation check.
var _ Converter = (*pdfdesk.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire(ctx context.Context) (Converter, error)
	Release(Converter)
	Size() int
	Close() error
}

// poolAdapter exposes a *pdfdesk.ConverterPool as a Pool.
type poolAdapter struct {
	pool *pdfdesk.ConverterPool
}

// Compile-time check that poolAdapter implements Pool.
var _ Pool = (*poolAdapter)(nil)

// newConverterPool creates a pool of browser-backed converters.
func newConverterPool(size int, opts ...pdfdesk.Option) Pool {
	return &poolAdapter{pool: pdfdesk.NewConverterPool(size, opts...)}
}

func (a *poolAdapter) Acquire(ctx context.Context) (Converter, error) {
	conv, err := a.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// Release returns a converter obtained from Acquire.
// Passing any other Converter is a programming error and panics.
func (a *poolAdapter) Release(c Converter) {
	conv, ok := c.(*pdfdesk.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", c))
	}
	a.pool.Release(conv)
}

func (a *poolAdapter) Size() int {
	return a.pool.Size()
}

func (a *poolAdapter) Close() error {
	return a.pool.Close()
}
