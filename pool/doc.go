// Package pool provides a fixed-size thread pool: a set of long-lived workers
// that consume one shared FIFO queue of tasks and report each task's outcome
// through a Future handed back to the submitter.
//
// The primary type is ThreadPool. Its size is fixed at construction, its
// workers are launched by Start, and Shutdown stops intake, drains the queue
// and waits for every worker to exit.
//
// # Basic Usage
//
//	p, err := pool.New(4)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := p.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Shutdown()
//
//	future, err := pool.Submit2(p, func(a, b int) (int, error) {
//	    return a * b, nil
//	}, 3, 4)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	product, err := future.Get() // 12, nil
//
// # Submission
//
// Go methods cannot carry type parameters, so submission is done with
// package-level functions:
//
//   - Submit(p, fn): fn takes no arguments and returns (R, error)
//   - Submit1(p, fn, a) and Submit2(p, fn, a, b): bind arguments first
//   - Go(p, fn): fn returns only an error
//
// Submission never waits for a worker. It fails with ErrPoolShutdown once
// Shutdown has been called. Tasks submitted before Start wait in the queue.
//
// # Ordering
//
// Tasks leave the queue in submission order. With more than one worker they
// run concurrently, so completion order is not guaranteed. At most
// ThreadCount tasks execute at any moment.
//
// # Futures
//
// A Future is completed exactly once by the worker that ran its task:
//
//	value, err := future.Get()                        // block
//	value, err = future.GetWithContext(ctx)           // block until ctx ends
//	value, err = future.GetWithTimeout(time.Second)   // ErrFutureTimeout if not ready
//	value, ok, err := future.TryGet()                 // never blocks
//	<-future.Done()                                   // for select
//
// Reading a future repeatedly returns the same value and error and never
// runs the task again.
//
// # Error Handling
//
// Misuse is reported synchronously: New rejects a non-positive size, Start
// on a running pool returns ErrAlreadyStarted, Shutdown before Start returns
// ErrNotStarted, a second Shutdown returns ErrAlreadyShutdown.
//
// Task failures are deferred: an error returned by a task, or a panic
// converted to *PanicError, is delivered only through that task's Future.
// A failing task never stops its worker, and nothing is retried.
//
// # Configuration Options
//
//   - WithLogger(l): zap logger for lifecycle and failure events (default: no-op)
//   - WithRateLimit(perSecond, burst): cap the rate at which tasks start
//   - WithLockOSThread(): dedicate one OS thread to each worker
//   - WithBeforeTaskStart(fn), WithOnTaskEnd(fn): per-task hooks
package pool
