package app

import (
	"context"
	"sync"

	appErrors "onthisday/internal/errors"
)

// Future is the pending result of a pipeline started with Go.
type Future[T any] struct {
	done   chan struct{}
	cancel context.CancelFunc
	once   sync.Once
	value  T
	err    error
}

// Go runs fn on a new goroutine with a context derived from ctx. Canceling
// ctx or calling Cancel aborts fn at its next blocking point.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	ctx, cancel := context.WithCancel(ctx)
	f := &Future[T]{done: make(chan struct{}), cancel: cancel}
	go func() {
		defer close(f.done)
		defer cancel()
		f.value, f.err = fn(ctx)
	}()
	return f
}

func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

func (f *Future[T]) Cancel() {
	f.once.Do(f.cancel)
}

// Wait blocks until the pipeline finishes or ctx ends. Ending ctx does not
// cancel the pipeline itself.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, appErrors.Wrap(appErrors.Canceled, "wait", "", ctx.Err())
	}
}
