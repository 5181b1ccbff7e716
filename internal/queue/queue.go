package queue

import (
	"errors"
	"sync"

	"github.com/eapache/queue"
)

// ErrClosed is returned by Push once Close has been called.
var ErrClosed = errors.New("queue is closed")

// Queue is an unbounded, blocking, multi-producer multi-consumer FIFO.
//
// Type parameters:
//   - T: The element type
type Queue[T any] struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  *queue.Queue
	closed bool
}

// New creates an empty, open queue.
func New[T any]() *Queue[T] {
	q := &Queue[T]{
		items: queue.New(),
	}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends item at the tail and wakes one waiting consumer.
// It never blocks beyond acquiring the lock and fails with ErrClosed after Close.
func (q *Queue[T]) Push(item T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrClosed
	}

	q.items.Add(item)
	q.cond.Signal()
	return nil
}

// Pop removes and returns the head of the queue. While the queue is empty and
// open the caller is suspended. Once the queue is closed, Pop keeps returning
// the remaining items and reports false only when nothing is left.
func (q *Queue[T]) Pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.items.Length() == 0 && !q.closed {
		q.cond.Wait()
	}

	if q.items.Length() == 0 {
		var zero T
		return zero, false
	}

	item, _ := q.items.Remove().(T)
	return item, true
}

// Close stops the queue from accepting new items and wakes every waiting consumer
// so each can observe the closed state. Items already queued remain poppable.
// It reports false if the queue was already closed.
func (q *Queue[T]) Close() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}

	q.closed = true
	q.cond.Broadcast()
	return true
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Length()
}
