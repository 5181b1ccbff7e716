package types

import (
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
)

// ErrTaskAlreadyRun is returned by Task.Run when the task has been executed before.
var ErrTaskAlreadyRun = errors.New("task already executed")

// Task is a zero-argument unit of work queued in the pool.
// It is produced by binding a callable to its Future with NewTask.
//
// Executing a task is two steps: Run calls the function and records its outcome,
// Complete publishes that outcome to the Future. The worker finishes its own
// bookkeeping in between, so a caller woken by the Future sees it done.
type Task struct {
	ID       int64
	ran      atomic.Bool
	run      func() error
	complete func()
}

// NewTask binds fn to a new pending Future. Running the task calls fn once and
// converts a panic into a *PanicError; Complete then resolves the future.
//
// Type parameters:
//   - R: The type of value fn produces
func NewTask[R any](id int64, fn func() (R, error)) (*Task, *Future[R]) {
	future := NewFuture[R](id)

	var (
		value R
		err   error
	)
	task := &Task{
		ID: id,
		run: func() error {
			value, err = callWithRecovery(fn)
			return err
		},
		complete: func() {
			future.complete(value, err)
		},
	}
	return task, future
}

// Run executes the task and returns the error it produced, if any.
// The future is not resolved until Complete is called.
// A task runs at most once; later calls return ErrTaskAlreadyRun.
func (t *Task) Run() error {
	if !t.ran.CompareAndSwap(false, true) {
		return ErrTaskAlreadyRun
	}
	return t.run()
}

// Complete resolves the task's future with the outcome recorded by Run.
// It has no effect before Run or after the first call.
func (t *Task) Complete() {
	if t.ran.Load() {
		t.complete()
	}
}

// PanicError is the error a Future reports when its task panicked.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task panic: %v", e.Value)
}

// Unwrap exposes the panic value when the task panicked with an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// callWithRecovery runs fn and turns a panic into a *PanicError with a stack trace,
// so a misbehaving task can never take its worker down.
func callWithRecovery[R any](fn func() (R, error)) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			err = &PanicError{Value: r, Stack: buf[:n]}
		}
	}()

	return fn()
}
