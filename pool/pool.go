package pool

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/utkarsh5026/threadpool/internal/queue"
	"github.com/utkarsh5026/threadpool/internal/scheduler"
	"github.com/utkarsh5026/threadpool/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type lifecycle int

const (
	stateNew lifecycle = iota
	stateRunning
	stateShutdown
)

// ThreadPool is a fixed-size pool of workers consuming one shared FIFO queue.
// Work is handed in with Submit (or Submit1, Submit2, Go) and each submission
// returns a Future for its outcome.
//
// A ThreadPool goes through three states exactly once each: created by New,
// running after Start, and shut down after Shutdown. Shutdown drains the queue:
// every task accepted before it was called runs before Shutdown returns.
type ThreadPool struct {
	threadCount int
	conf        *scheduler.Config
	queue       *queue.Queue[*types.Task]
	counters    scheduler.Counters
	nextID      atomic.Int64
	submitted   atomic.Int64
	log         *zap.Logger

	mu    sync.Mutex
	state lifecycle
	done  chan struct{} // Closed when all workers have exited
}

// New creates a pool with threadCount workers. Workers are not started until Start.
//
// Parameters:
//   - threadCount: Number of workers; must be positive
//   - opts: Variadic set of Option for logging, rate limiting, hooks, etc.
//
// Returns:
//   - *ThreadPool: An unstarted pool
//   - error: ErrInvalidThreadCount if threadCount <= 0
//
// Example:
//
//	p, err := pool.New(4, pool.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	if err := p.Start(); err != nil {
//	    return err
//	}
//	defer p.Shutdown()
func New(threadCount int, opts ...Option) (*ThreadPool, error) {
	if threadCount <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidThreadCount, threadCount)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	log := cfg.logger.Named("threadpool")
	return &ThreadPool{
		threadCount: threadCount,
		conf: &scheduler.Config{
			Logger:          log,
			RateLimiter:     cfg.rateLimiter,
			LockOSThread:    cfg.lockOSThread,
			BeforeTaskStart: cfg.beforeTaskStart,
			OnTaskEnd:       cfg.onTaskEnd,
		},
		queue: queue.New[*types.Task](),
		log:   log,
		done:  make(chan struct{}),
	}, nil
}

// Start launches the workers. Tasks submitted before Start begin running now.
//
// Returns:
//   - error: ErrAlreadyStarted if the pool is running, ErrPoolShutdown if it was shut down
func (p *ThreadPool) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case stateRunning:
		return ErrAlreadyStarted
	case stateShutdown:
		return ErrPoolShutdown
	}

	var g errgroup.Group
	for i := range p.threadCount {
		g.Go(scheduler.NewWorker(i, p.queue, p.conf, &p.counters).Run)
	}

	go func() {
		_ = g.Wait()
		close(p.done)
	}()

	p.state = stateRunning
	p.log.Info("thread pool started", zap.Int("threads", p.threadCount))
	return nil
}

// Shutdown stops accepting new work, lets the workers finish every queued task,
// and blocks until all workers have exited. The pool cannot be restarted.
//
// Returns:
//   - error: ErrNotStarted if Start was never called, ErrAlreadyShutdown on a second call
//
// Example:
//
//	p.Start()
//	defer p.Shutdown()
func (p *ThreadPool) Shutdown() error {
	return p.ShutdownWithTimeout(0)
}

// ShutdownWithTimeout is Shutdown with an upper bound on how long the caller waits.
// If workers are still draining after timeout, ErrShutdownTimeout is returned; the
// workers keep draining in the background and Done is closed once they exit.
// A non-positive timeout waits forever.
func (p *ThreadPool) ShutdownWithTimeout(timeout time.Duration) error {
	p.mu.Lock()
	switch p.state {
	case stateNew:
		p.mu.Unlock()
		return ErrNotStarted
	case stateShutdown:
		p.mu.Unlock()
		return ErrAlreadyShutdown
	}
	p.state = stateShutdown
	p.mu.Unlock()

	p.log.Info("thread pool shutting down", zap.Int("queued", p.queue.Len()))

	// Workers drain what is left and exit once Pop reports the queue empty.
	p.queue.Close()

	if err := waitUntil(p.done, timeout); err != nil {
		p.log.Warn("thread pool shutdown timed out", zap.Duration("timeout", timeout))
		return err
	}

	p.log.Info("thread pool stopped",
		zap.Int64("completed", p.counters.Completed.Load()),
		zap.Int64("failed", p.counters.Failed.Load()),
	)
	return nil
}

// Done returns a channel closed once every worker has exited after shutdown.
func (p *ThreadPool) Done() <-chan struct{} {
	return p.done
}

// ThreadCount returns the number of workers the pool was created with.
func (p *ThreadPool) ThreadCount() int {
	return p.threadCount
}

// Running reports whether the pool has been started and not yet shut down.
func (p *ThreadPool) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state == stateRunning
}

// Stats returns a snapshot of the pool's counters. The fields are read
// independently; under load only Failed <= Completed <= Submitted is guaranteed.
func (p *ThreadPool) Stats() Stats {
	// Completed is read before Submitted so Completed <= Submitted always holds.
	failed := p.counters.Failed.Load()
	completed := p.counters.Completed.Load()
	return Stats{
		Threads:   p.threadCount,
		Queued:    p.queue.Len(),
		Active:    p.counters.Active.Load(),
		Submitted: p.submitted.Load(),
		Completed: completed,
		Failed:    failed,
		Running:   p.Running(),
	}
}

// enqueue pushes a bound task, translating a closed queue into ErrPoolShutdown.
// The submitted counter moves first so Stats never shows more completed than submitted.
func (p *ThreadPool) enqueue(t *types.Task) error {
	p.submitted.Add(1)
	if err := p.queue.Push(t); err != nil {
		p.submitted.Add(-1)
		return ErrPoolShutdown
	}
	return nil
}
