package scheduler

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/utkarsh5026/threadpool/internal/osthread"
	"github.com/utkarsh5026/threadpool/internal/queue"
	"github.com/utkarsh5026/threadpool/internal/types"
	"go.uber.org/zap"
)

// Worker runs the pool's execution loop on one goroutine: wait for work,
// dequeue, execute, repeat, until the queue is closed and drained.
type Worker struct {
	id       int
	queue    *queue.Queue[*types.Task]
	conf     *Config
	counters *Counters
	state    atomic.Int32
	log      *zap.Logger
}

// NewWorker creates the worker with the given slot id. It does not start it.
func NewWorker(id int, q *queue.Queue[*types.Task], conf *Config, counters *Counters) *Worker {
	return &Worker{
		id:       id,
		queue:    q,
		conf:     conf,
		counters: counters,
		log:      conf.Logger.With(zap.Int("worker", id)),
	}
}

// State returns the worker's current loop state.
func (w *Worker) State() State {
	return State(w.state.Load())
}

// Run is the worker loop. It returns only after the queue has been closed and
// no task is left in it. A failing or panicking task never stops the loop.
// The error result exists to fit errgroup and is always nil.
func (w *Worker) Run() error {
	log := w.log
	if w.conf.LockOSThread {
		tid, release := osthread.Bind()
		defer release()
		log = log.With(zap.Int("tid", tid))
	}

	log.Debug("worker started")
	defer log.Debug("worker stopped")

	for {
		w.state.Store(int32(StateRunnable))
		task, ok := w.queue.Pop()
		if !ok {
			w.state.Store(int32(StateTerminated))
			return nil
		}
		w.execute(log, task)
		w.state.Store(int32(StateIdle))
	}
}

// execute runs one dequeued task with rate limiting, hooks and counters.
// The queue lock is not held here. The task's future is resolved last, after
// the end hook and the counters, and is resolved even if a hook panics.
func (w *Worker) execute(log *zap.Logger, t *types.Task) {
	defer t.Complete()

	if w.conf.RateLimiter != nil {
		if err := w.conf.RateLimiter.Wait(context.Background()); err != nil {
			log.Warn("rate limiter wait failed, running task anyway", zap.Int64("task", t.ID), zap.Error(err))
		}
	}

	w.state.Store(int32(StateExecuting))
	w.counters.Active.Add(1)

	if w.conf.BeforeTaskStart != nil {
		runHook(log, "before-task-start", t.ID, func() { w.conf.BeforeTaskStart(t.ID) })
	}

	err := t.Run()

	if w.conf.OnTaskEnd != nil {
		runHook(log, "on-task-end", t.ID, func() { w.conf.OnTaskEnd(t.ID, err) })
	}

	w.counters.Active.Add(-1)
	w.counters.Completed.Add(1)

	if err == nil {
		return
	}

	w.counters.Failed.Add(1)

	var pe *types.PanicError
	if errors.As(err, &pe) {
		log.Warn("task panicked",
			zap.Int64("task", t.ID),
			zap.Any("panic", pe.Value),
			zap.ByteString("stack", pe.Stack),
		)
		return
	}
	log.Debug("task failed", zap.Int64("task", t.ID), zap.Error(err))
}

// runHook calls a user hook and logs a panic instead of letting it escape the worker.
func runHook(log *zap.Logger, name string, id int64, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("hook panicked",
				zap.String("hook", name),
				zap.Int64("task", id),
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
		}
	}()
	fn()
}
