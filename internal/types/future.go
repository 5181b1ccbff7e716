package types

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrFutureTimeout is returned by GetWithTimeout when the result is not ready in time.
// The future stays pending and can be read again later.
var ErrFutureTimeout = errors.New("future: result not ready before timeout")

// Future is the caller-facing handle to the outcome of one submitted task.
//
// A Future is written exactly once, by the worker that executed its task, and can be
// read any number of times from any number of goroutines. Every read after completion
// observes the same value and error.
//
// Type parameters:
//   - R: The type of the value produced by the task
type Future[R any] struct {
	id    int64
	done  chan struct{}
	once  sync.Once
	value R
	err   error
}

// NewFuture creates an empty, pending future for the task with the given id.
func NewFuture[R any](id int64) *Future[R] {
	return &Future[R]{
		id:   id,
		done: make(chan struct{}),
	}
}

// ID returns the identifier of the task this future belongs to.
func (f *Future[R]) ID() int64 {
	return f.id
}

// complete stores the outcome and releases every waiting reader.
// Only the first call has an effect; it reports whether this call was that one.
func (f *Future[R]) complete(value R, err error) bool {
	completed := false
	f.once.Do(func() {
		f.value = value
		f.err = err
		close(f.done)
		completed = true
	})
	return completed
}

// Get blocks until the task has finished and returns its value and error.
// If the task failed, the error is the one returned (or panicked) by the task.
//
// Example:
//
//	value, err := future.Get()
//	if err != nil {
//	    return err
//	}
func (f *Future[R]) Get() (R, error) {
	<-f.done
	return f.value, f.err
}

// GetWithContext waits for the result or for ctx to be done, whichever comes first.
// When ctx ends first, the zero value and ctx.Err() are returned and the future
// remains pending.
func (f *Future[R]) GetWithContext(ctx context.Context) (R, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}

// GetWithTimeout waits up to timeout for the result. A non-positive timeout waits forever.
// On timeout it returns ErrFutureTimeout without consuming the result.
func (f *Future[R]) GetWithTimeout(timeout time.Duration) (R, error) {
	if timeout <= 0 {
		return f.Get()
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.value, f.err
	case <-timer.C:
		var zero R
		return zero, ErrFutureTimeout
	}
}

// TryGet returns the result without blocking. The boolean reports whether
// the result was ready; when it is false the value and error are zero.
func (f *Future[R]) TryGet() (R, bool, error) {
	select {
	case <-f.done:
		return f.value, true, f.err
	default:
		var zero R
		return zero, false, nil
	}
}

// IsReady reports whether the task has finished.
func (f *Future[R]) IsReady() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Done returns a channel that is closed once the result is available.
// It is meant for use in select statements alongside other channels.
func (f *Future[R]) Done() <-chan struct{} {
	return f.done
}
