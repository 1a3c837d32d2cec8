package models

import (
	"context"
	"sync"
)

// Result is the outcome of an asynchronous work.
type Result[T any] struct {
	Data T
	Err  error
}

// Future is a value resolved once by an asynchronous work.
type Future[T any] struct {
	mu       sync.Mutex
	done     chan struct{}
	value    T
	resolved bool
	stop     func()
}

// NewFuture returns an unresolved future. stop is called by Stop and may be nil.
func NewFuture[T any](stop func()) *Future[T] {
	return &Future[T]{
		done: make(chan struct{}),
		stop: stop,
	}
}

// Resolve sets the value of the future. Only the first call has effect.
func (f *Future[T]) Resolve(value T) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.resolved {
		return
	}
	f.value = value
	f.resolved = true
	close(f.done)
}

// IsResolved reports whether the value is available.
func (f *Future[T]) IsResolved() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resolved
}

// Poll returns the value and true if the future is resolved.
func (f *Future[T]) Poll() (T, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value, f.resolved
}

// Done is closed when the future is resolved.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the future is resolved or ctx is done.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		v, _ := f.Poll()
		return v, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Stop asks the work behind the future to stop.
func (f *Future[T]) Stop() {
	if f.stop != nil {
		f.stop()
	}
}
