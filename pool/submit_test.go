package pool_test

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/utkarsh5026/threadpool/pool"
)

func TestSubmit_Variants(t *testing.T) {
	p, err := pool.New(2)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := p.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer p.Shutdown()

	t.Run("Submit", func(t *testing.T) {
		f, err := pool.Submit(p, func() (string, error) { return "hello", nil })
		if err != nil {
			t.Fatal(err)
		}
		if v, _ := f.Get(); v != "hello" {
			t.Errorf("expected hello, got %q", v)
		}
	})

	t.Run("Submit1", func(t *testing.T) {
		f, err := pool.Submit1(p, strconv.Atoi, "42")
		if err != nil {
			t.Fatal(err)
		}
		if v, err := f.Get(); err != nil || v != 42 {
			t.Errorf("expected (42, nil), got (%v, %v)", v, err)
		}
	})

	t.Run("Submit1 error", func(t *testing.T) {
		f, _ := pool.Submit1(p, strconv.Atoi, "not a number")
		if _, err := f.Get(); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("Submit2", func(t *testing.T) {
		join := func(s string, n int) (string, error) { return fmt.Sprintf("%s-%d", s, n), nil }
		f, err := pool.Submit2(p, join, "task", 7)
		if err != nil {
			t.Fatal(err)
		}
		if v, _ := f.Get(); v != "task-7" {
			t.Errorf("expected task-7, got %q", v)
		}
	})

	t.Run("Go", func(t *testing.T) {
		ran := false
		f, err := pool.Go(p, func() error { ran = true; return nil })
		if err != nil {
			t.Fatal(err)
		}
		if _, err := f.Get(); err != nil || !ran {
			t.Errorf("expected task to run cleanly, ran=%v err=%v", ran, err)
		}
	})
}

func TestSubmit_IDsAreUnique(t *testing.T) {
	p, _ := pool.New(4)
	_ = p.Start()
	defer p.Shutdown()

	seen := map[int64]bool{}
	for range 100 {
		f, err := pool.Go(p, func() error { return nil })
		if err != nil {
			t.Fatal(err)
		}
		if seen[f.ID()] {
			t.Fatalf("duplicate future id %d", f.ID())
		}
		seen[f.ID()] = true
	}
}

func ExampleSubmit2() {
	p, _ := pool.New(2)
	_ = p.Start()
	defer p.Shutdown()

	mul := func(a, b int) (int, error) { return a * b, nil }
	future, _ := pool.Submit2(p, mul, 3, 4)

	product, _ := future.Get()
	fmt.Println(product)
	// Output: 12
}
