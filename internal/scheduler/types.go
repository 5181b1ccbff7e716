package scheduler

import (
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Config holds everything a worker needs besides its queue.
// A single Config is shared, read-only, by all workers of a pool.
type Config struct {
	// Logger receives worker lifecycle and task failure events. Must not be nil.
	Logger *zap.Logger

	// Optional token bucket rate limiter applied before each task (may be nil).
	RateLimiter *rate.Limiter

	// If true, each worker keeps a dedicated OS thread for its whole life.
	LockOSThread bool

	// Hook called right before a task runs, with the task id.
	BeforeTaskStart func(id int64)

	// Hook called right after a task ran, with the task id and its error (nil on success).
	OnTaskEnd func(id int64, err error)
}

// Counters are the pool-wide execution counters updated by workers.
type Counters struct {
	Active    atomic.Int64 // tasks currently executing
	Completed atomic.Int64 // tasks finished, successfully or not
	Failed    atomic.Int64 // tasks finished with an error or a panic
}

// State is the position of a worker in its loop.
type State int32

const (
	// StateIdle: created, or finished a task and about to look for the next one.
	StateIdle State = iota
	// StateRunnable: checking the queue for work, possibly suspended on it.
	StateRunnable
	// StateExecuting: running a dequeued task, queue lock released.
	StateExecuting
	// StateTerminated: the queue is closed and drained; the worker has exited.
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunnable:
		return "runnable"
	case StateExecuting:
		return "executing"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}
