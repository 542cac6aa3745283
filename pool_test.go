package pdfdesk

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"testing"
	"time"
)

// Compile-time interface check.
var _ interface {
	Acquire(context.Context) (*Converter, error)
	Release(*Converter)
	Size() int
	Close() error
} = (*ConverterPool)(nil)

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	gomaxprocs := runtime.GOMAXPROCS(0)

	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{
			name:    "explicit takes priority",
			workers: 4,
			want:    4,
		},
		{
			name:    "explicit=1 for sequential",
			workers: 1,
			want:    1,
		},
		{
			name:    "explicit at max",
			workers: MaxPoolSize,
			want:    MaxPoolSize,
		},
		{
			name:    "explicit above max is capped",
			workers: 20,
			want:    MaxPoolSize,
		},
		{
			name:    "zero uses auto calculation",
			workers: 0,
			want:    min(max(gomaxprocs/cpuDivisor, MinPoolSize), MaxPoolSize),
		},
		{
			name:    "negative uses auto calculation",
			workers: -3,
			want:    min(max(gomaxprocs/cpuDivisor, MinPoolSize), MaxPoolSize),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ResolvePoolSize(tt.workers)
			if got != tt.want {
				t.Errorf("ResolvePoolSize(%d) = %d, want %d", tt.workers, got, tt.want)
			}
		})
	}
}

func TestNewConverterPool_MinimumSize(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, -1} {
		pool := NewConverterPool(n)
		if pool.Size() != 1 {
			t.Errorf("NewConverterPool(%d).Size() = %d, want 1", n, pool.Size())
		}
	}
}

func TestConverterPool_LazyCreation(t *testing.T) {
	t.Parallel()

	f := &fakeFactory{}
	pool := NewConverterPool(2, WithSurfaceFactory(f), WithScale(1), fastSettle())
	defer pool.Close()

	if len(pool.converters) != 0 {
		t.Fatalf("pool created %d converters before Acquire", len(pool.converters))
	}

	conv, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() unexpected error: %v", err)
	}
	if len(pool.converters) != 1 {
		t.Errorf("converters = %d after first Acquire, want 1", len(pool.converters))
	}

	res, err := conv.Convert(context.Background(), Input{HTML: "<p>pooled</p>"})
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}
	if res.Pages != 1 {
		t.Errorf("Pages = %d, want 1", res.Pages)
	}
	pool.Release(conv)

	again, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if again != conv {
		t.Error("Acquire() after Release should reuse the released converter")
	}
	pool.Release(again)
}

func TestConverterPool_BlocksWhenExhausted(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(1, WithSurfaceFactory(&fakeFactory{}))
	defer pool.Close()

	conv, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := pool.Acquire(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Acquire() on exhausted pool error = %v, want DeadlineExceeded", err)
	}

	got := make(chan *Converter, 1)
	go func() {
		c, err := pool.Acquire(context.Background())
		if err == nil {
			got <- c
		}
	}()
	pool.Release(conv)

	select {
	case c := <-got:
		if c != conv {
			t.Error("waiter received a different converter")
		}
	case <-time.After(time.Second):
		t.Fatal("waiter was not unblocked by Release")
	}
}

func TestConverterPool_CreationError(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(1, WithSurfaceFactory(&fakeFactory{}), WithScale(-1))
	defer pool.Close()

	if _, err := pool.Acquire(context.Background()); !errors.Is(err, ErrInvalidScale) {
		t.Fatalf("Acquire() error = %v, want ErrInvalidScale", err)
	}
	// The failed slot is returned, so the next attempt creates again.
	if _, err := pool.Acquire(context.Background()); !errors.Is(err, ErrInvalidScale) {
		t.Errorf("second Acquire() error = %v, want ErrInvalidScale", err)
	}
}

func TestConverterPool_Close(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(2, WithSurfaceFactory(&fakeFactory{}))
	conv, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if err := pool.Close(); err != nil {
		t.Fatalf("Close() unexpected error: %v", err)
	}
	if err := pool.Close(); err != nil {
		t.Errorf("second Close() unexpected error: %v", err)
	}

	// Release after Close must not panic on the closed channel.
	pool.Release(conv)

	if _, err := pool.Acquire(context.Background()); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Acquire() after Close error = %v, want ErrPoolClosed", err)
	}
}

func TestConverterPool_Concurrent(t *testing.T) {
	t.Parallel()

	f := &fakeFactory{}
	pool := NewConverterPool(3, WithSurfaceFactory(f), WithScale(1), fastSettle())
	defer pool.Close()

	const jobs = 12
	var wg sync.WaitGroup
	errs := make(chan error, jobs)
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conv, err := pool.Acquire(context.Background())
			if err != nil {
				errs <- err
				return
			}
			defer pool.Release(conv)
			if _, err := conv.Convert(context.Background(), Input{HTML: "<p>x</p>"}); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
	pool.mu.Lock()
	created := len(pool.converters)
	pool.mu.Unlock()
	if created > pool.Size() {
		t.Errorf("created %d converters, capacity %d", created, pool.Size())
	}
}
