package pool

import (
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestErrors_PanicCarriesStack(t *testing.T) {
	p := newStartedPool(t, 1)

	future, _ := Submit(p, func() (int, error) {
		var m map[string]int
		m["x"] = 1 // nil map write
		return 0, nil
	})

	_, err := future.Get()
	var pe *PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PanicError, got %v", err)
	}
	if len(pe.Stack) == 0 {
		t.Error("expected a captured stack trace")
	}
	if !strings.Contains(err.Error(), "task panic") {
		t.Errorf("unexpected error text: %q", err.Error())
	}
}

func TestErrors_PanicWithErrorUnwraps(t *testing.T) {
	p := newStartedPool(t, 1)
	sentinel := errors.New("sentinel")

	future, _ := Go(p, func() error { panic(sentinel) })

	if _, err := future.Get(); !errors.Is(err, sentinel) {
		t.Errorf("expected errors.Is to reach the panic value, got %v", err)
	}
}

func TestErrors_NilTask(t *testing.T) {
	p := newStartedPool(t, 1)

	tests := []struct {
		name   string
		submit func() error
	}{
		{"Submit", func() error { _, err := Submit[int](p, nil); return err }},
		{"Submit1", func() error { _, err := Submit1[int, int](p, nil, 1); return err }},
		{"Submit2", func() error { _, err := Submit2[int, int, int](p, nil, 1, 2); return err }},
		{"Go", func() error { _, err := Go(p, nil); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.submit(); !errors.Is(err, ErrNilTask) {
				t.Errorf("expected ErrNilTask, got %v", err)
			}
		})
	}
}

func TestErrors_FutureTimeout(t *testing.T) {
	p := newStartedPool(t, 1)
	release := make(chan struct{})
	defer close(release)

	future, _ := Go(p, func() error {
		<-release
		return nil
	})

	if _, err := future.GetWithTimeout(10 * time.Millisecond); !errors.Is(err, ErrFutureTimeout) {
		t.Errorf("expected ErrFutureTimeout, got %v", err)
	}
}

func TestErrors_FailuresAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p := newStartedPool(t, 2, WithLogger(zap.New(core)))

	_, _ = Go(p, func() error { return errors.New("plain failure") })
	_, _ = Go(p, func() error { panic("kaboom") })

	if err := p.Shutdown(); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}

	if n := logs.FilterMessage("task panicked").Len(); n != 1 {
		t.Errorf("expected 1 panic log entry, got %d", n)
	}
	if n := logs.FilterMessage("task failed").Len(); n != 1 {
		t.Errorf("expected 1 failure log entry, got %d", n)
	}
	if n := logs.FilterMessage("thread pool started").Len(); n != 1 {
		t.Errorf("expected a start log entry, got %d", n)
	}
	for _, e := range logs.FilterMessage("thread pool stopped").All() {
		if e.LoggerName != "threadpool" {
			t.Errorf("expected logger name threadpool, got %q", e.LoggerName)
		}
	}

	if s := p.Stats(); s.Failed != 2 || s.Completed != 2 {
		t.Errorf("expected 2 completed and 2 failed, got %+v", s)
	}
}
