package assets

import "context"

// Future is the pending result of a background load. Exactly one of value or err is
// meaningful once Done is closed.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Go runs fn in its own goroutine and returns a future for its result.
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.val, f.err = fn(ctx)
	}()
	return f
}

// Resolved returns an already completed future.
func Resolved[T any](val T, err error) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), val: val, err: err}
	close(f.done)
	return f
}

// Done is closed when the load has finished.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Poll returns the result without blocking. ok is false while the load is still running.
func (f *Future[T]) Poll() (val T, ok bool, err error) {
	select {
	case <-f.done:
		return f.val, true, f.err
	default:
		var zero T
		return zero, false, nil
	}
}

// Wait blocks until the load finishes or ctx is done.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
