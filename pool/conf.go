package pool

import (
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Option is a functional option for configuring a ThreadPool.
type Option func(*config)

type config struct {
	logger          *zap.Logger
	rateLimiter     *rate.Limiter
	lockOSThread    bool
	beforeTaskStart func(id int64)
	onTaskEnd       func(id int64, err error)
}

func defaultConfig() *config {
	return &config{
		logger: zap.NewNop(),
	}
}

// WithLogger sets the logger used for pool and worker events.
// If not specified, the pool logs nothing.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithRateLimit sets a rate limiter for controlling task throughput.
// tasksPerSecond specifies the maximum number of tasks started per second across all workers.
// burst specifies the maximum number of tasks that can start in a burst.
// Workers wait for a token after dequeuing a task and before running it.
// If not specified, no rate limiting is applied.
//
// Example:
//
//	WithRateLimit(10, 5) // Allow 10 tasks/sec with burst of 5
func WithRateLimit(tasksPerSecond float64, burst int) Option {
	return func(cfg *config) {
		if tasksPerSecond > 0 && burst > 0 {
			cfg.rateLimiter = rate.NewLimiter(rate.Limit(tasksPerSecond), burst)
		}
	}
}

// WithLockOSThread gives every worker its own OS thread for its whole life.
// Useful when tasks rely on thread-local state such as cgo libraries.
func WithLockOSThread() Option {
	return func(cfg *config) {
		cfg.lockOSThread = true
	}
}

// WithBeforeTaskStart registers a hook called by the worker right before a task runs.
// The hook receives the task id, which matches Future.ID.
// A panic in the hook is recovered and logged; the task still runs.
func WithBeforeTaskStart(fn func(id int64)) Option {
	return func(cfg *config) {
		cfg.beforeTaskStart = fn
	}
}

// WithOnTaskEnd registers a hook called by the worker right after a task ran,
// with the task id and the error it produced (nil on success).
// The task's Future is resolved only after the hook returns, so a caller of
// Future.Get observes its effects. A panic in the hook is recovered and logged.
func WithOnTaskEnd(fn func(id int64, err error)) Option {
	return func(cfg *config) {
		cfg.onTaskEnd = fn
	}
}
