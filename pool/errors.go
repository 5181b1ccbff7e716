package pool

import (
	"errors"

	"github.com/utkarsh5026/threadpool/internal/types"
)

var (
	// ErrInvalidThreadCount is returned by New when the thread count is not positive.
	ErrInvalidThreadCount = errors.New("thread count must be positive")

	// ErrAlreadyStarted is returned by Start on a pool that is running.
	ErrAlreadyStarted = errors.New("pool already started")

	// ErrNotStarted is returned by Shutdown on a pool that was never started.
	ErrNotStarted = errors.New("pool not started")

	// ErrPoolShutdown is returned when submitting to, or starting, a pool that has been shut down.
	ErrPoolShutdown = errors.New("pool shut down")

	// ErrAlreadyShutdown is returned by a second Shutdown call.
	ErrAlreadyShutdown = errors.New("pool already shut down")

	// ErrShutdownTimeout is returned when workers are still draining after the shutdown timeout.
	ErrShutdownTimeout = errors.New("error in shutting down: timeout reached")

	// ErrNilTask is returned when a nil function is submitted.
	ErrNilTask = errors.New("nil task function")

	// ErrFutureTimeout is returned by Future.GetWithTimeout when the result is not ready in time.
	ErrFutureTimeout = types.ErrFutureTimeout
)
