// Package queue provides the pool's shared FIFO of pending tasks.
//
// The queue, its closed flag and the condition variable idle workers sleep on
// form a single aggregate guarded by one mutex. Every read or write of the
// buffer happens with that mutex held, and a consumer only releases it while
// suspended in sync.Cond.Wait, re-checking "empty and still open" in a loop.
// This rules out the lost wake-up that occurs when emptiness is tested
// without the lock and the wait is entered afterwards.
package queue
