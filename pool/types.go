package pool

import "github.com/utkarsh5026/threadpool/internal/types"

// Future is the handle returned by every submission. It becomes ready once a
// worker has executed the task and exposes the value or the failure.
//
// Type parameters:
//   - R: The type of value the submitted function returns
type Future[R any] = types.Future[R]

// PanicError is the error a Future reports when its task panicked.
// Value holds what was passed to panic and Stack the worker's stack trace.
type PanicError = types.PanicError

// Stats is a point-in-time snapshot of a pool's activity.
type Stats struct {
	Threads   int   // configured worker count
	Queued    int   // tasks waiting in the queue
	Active    int64 // tasks currently executing
	Submitted int64 // tasks accepted by Submit since creation
	Completed int64 // tasks finished, successfully or not
	Failed    int64 // tasks finished with an error or a panic
	Running   bool  // started and not yet shut down
}
