package pool

import (
	"errors"
	"testing"
)

// newStartedPool creates and starts a pool and registers a shutdown on test cleanup.
func newStartedPool(t *testing.T, threads int, opts ...Option) *ThreadPool {
	t.Helper()

	p, err := New(threads, opts...)
	if err != nil {
		t.Fatalf("New(%d) failed: %v", threads, err)
	}
	if err := p.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	t.Cleanup(func() {
		if err := p.Shutdown(); err != nil && !errors.Is(err, ErrAlreadyShutdown) {
			t.Errorf("cleanup shutdown failed: %v", err)
		}
	})
	return p
}

// poolSizes are the worker counts the behavioural tests run against.
var poolSizes = []int{1, 2, 4, 8}
