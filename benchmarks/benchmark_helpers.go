package benchmarks

import (
	"testing"
	"time"

	"github.com/utkarsh5026/threadpool/pool"
)

// poolSizes are the worker counts every scaling benchmark runs against.
var poolSizes = []int{1, 2, 4, 8, 16}

// startPool creates and starts a pool, failing the benchmark on error.
func startPool(b *testing.B, threads int, opts ...pool.Option) *pool.ThreadPool {
	b.Helper()

	p, err := pool.New(threads, opts...)
	if err != nil {
		b.Fatalf("New(%d): %v", threads, err)
	}
	if err := p.Start(); err != nil {
		b.Fatalf("Start: %v", err)
	}
	return p
}

// cpuBoundWork simulates a CPU-intensive operation.
func cpuBoundWork(iterations, seed int) (int, error) {
	result := 0
	for i := range iterations {
		result += i * seed
	}
	return result, nil
}

// ioBoundWork simulates an I/O operation with a delay.
func ioBoundWork(delay time.Duration) func() (int, error) {
	return func() (int, error) {
		time.Sleep(delay)
		return 1, nil
	}
}

// runBatch submits n tasks built by mk and waits for all of them.
func runBatch(b *testing.B, p *pool.ThreadPool, n int, mk func(i int) func() (int, error)) {
	b.Helper()

	futures := make([]*pool.Future[int], n)
	for i := range n {
		f, err := pool.Submit(p, mk(i))
		if err != nil {
			b.Fatalf("Submit: %v", err)
		}
		futures[i] = f
	}
	for _, f := range futures {
		if _, err := f.Get(); err != nil {
			b.Fatalf("task failed: %v", err)
		}
	}
}

// reportThroughput records tasks/sec for the timed section.
func reportThroughput(b *testing.B, tasksPerOp int) {
	b.ReportMetric(float64(tasksPerOp*b.N)/b.Elapsed().Seconds(), "tasks/s")
}
