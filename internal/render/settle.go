package render

import (
	"context"
	"fmt"
	"time"
)

// Settle defaults.
const (
	DefaultSettleInterval = 50 * time.Millisecond
	DefaultSettleStable   = 3
	DefaultSettleTimeout  = 5 * time.Second
)

// Settle configures WaitStable.
type Settle struct {
	Interval time.Duration // delay between measurements
	Stable   int           // identical consecutive measurements required
	Timeout  time.Duration // upper bound on the whole wait
}

// DefaultSettle returns the default settle configuration.
func DefaultSettle() Settle {
	return Settle{
		Interval: DefaultSettleInterval,
		Stable:   DefaultSettleStable,
		Timeout:  DefaultSettleTimeout,
	}
}

// withDefaults fills zero fields.
func (s Settle) withDefaults() Settle {
	if s.Interval <= 0 {
		s.Interval = DefaultSettleInterval
	}
	if s.Stable <= 0 {
		s.Stable = DefaultSettleStable
	}
	if s.Timeout <= 0 {
		s.Timeout = DefaultSettleTimeout
	}
	return s
}

// WaitStable polls the surface until its content size has been identical for
// cfg.Stable consecutive measurements, and returns that size.
// Returns ErrLayoutUnstable if cfg.Timeout elapses first.
func WaitStable(ctx context.Context, s Surface, cfg Settle) (Size, error) {
	cfg = cfg.withDefaults()

	deadline := time.NewTimer(cfg.Timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	var last Size
	seen := 0
	for {
		size, err := s.Measure(ctx)
		if err != nil {
			return Size{}, fmt.Errorf("measuring layout: %w", err)
		}

		if seen > 0 && size == last {
			seen++
		} else {
			last, seen = size, 1
		}
		if seen >= cfg.Stable {
			return last, nil
		}

		select {
		case <-ctx.Done():
			return Size{}, ctx.Err()
		case <-deadline.C:
			return last, fmt.Errorf("%w after %v (last %dx%d)", ErrLayoutUnstable, cfg.Timeout, last.Width, last.Height)
		case <-ticker.C:
		}
	}
}
