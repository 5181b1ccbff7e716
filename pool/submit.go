package pool

import "github.com/utkarsh5026/threadpool/internal/types"

// Submit queues fn for execution on p and returns a Future for its outcome.
// It never waits for a worker and is safe to call from many goroutines at once.
//
// Type parameters:
//   - R: The type of value fn returns
//
// Parameters:
//   - p: The pool to run fn on
//   - fn: The function to run; a panic inside it is reported as a *PanicError
//
// Returns:
//   - *Future[R]: Handle for the result
//   - error: ErrPoolShutdown after Shutdown, ErrNilTask if fn is nil
//
// Example:
//
//	future, err := pool.Submit(p, func() (string, error) {
//	    return fetch(url)
//	})
//	if err != nil {
//	    return err
//	}
//	body, err := future.Get()
func Submit[R any](p *ThreadPool, fn func() (R, error)) (*Future[R], error) {
	if fn == nil {
		return nil, ErrNilTask
	}

	task, future := types.NewTask(p.nextID.Add(1), fn)
	if err := p.enqueue(task); err != nil {
		return nil, err
	}
	return future, nil
}

// Submit1 binds fn to its argument and submits it.
//
// Example:
//
//	future, _ := pool.Submit1(p, strconv.Atoi, "42")
func Submit1[A, R any](p *ThreadPool, fn func(A) (R, error), a A) (*Future[R], error) {
	if fn == nil {
		return nil, ErrNilTask
	}
	return Submit(p, func() (R, error) {
		return fn(a)
	})
}

// Submit2 binds fn to its two arguments and submits it.
//
// Example:
//
//	mul := func(a, b int) (int, error) { return a * b, nil }
//	future, _ := pool.Submit2(p, mul, 3, 4)
//	product, _ := future.Get() // 12
func Submit2[A, B, R any](p *ThreadPool, fn func(A, B) (R, error), a A, b B) (*Future[R], error) {
	if fn == nil {
		return nil, ErrNilTask
	}
	return Submit(p, func() (R, error) {
		return fn(a, b)
	})
}

// Go submits a function that produces no value. The returned Future only carries its error.
func Go(p *ThreadPool, fn func() error) (*Future[struct{}], error) {
	if fn == nil {
		return nil, ErrNilTask
	}
	return Submit(p, func() (struct{}, error) {
		return struct{}{}, fn()
	})
}
