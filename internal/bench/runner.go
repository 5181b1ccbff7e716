package bench

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/utkarsh5026/threadpool/pool"
	"go.uber.org/zap"
)

// ErrInjectedFailure is the error returned by tasks selected by Config.FailEvery.
var ErrInjectedFailure = errors.New("injected task failure")

// Runner executes a Config against fresh pools, one per thread count.
type Runner struct {
	conf   Config
	log    *zap.Logger
	onTask func()
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the logger handed to every pool the runner creates.
func WithLogger(log *zap.Logger) RunnerOption {
	return func(r *Runner) {
		if log != nil {
			r.log = log
		}
	}
}

// WithProgress registers fn to be called once after each task finishes,
// from the worker that ran it.
func WithProgress(fn func()) RunnerOption {
	return func(r *Runner) {
		r.onTask = fn
	}
}

// NewRunner validates conf and returns a Runner for it.
func NewRunner(conf Config, opts ...RunnerOption) (*Runner, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	r := &Runner{conf: conf, log: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// TotalTasks is the number of tasks the runner will submit across all pool sizes.
func (r *Runner) TotalTasks() int {
	return r.conf.Tasks * len(r.conf.Threads)
}

// Run executes the workload on each configured pool size in order.
// Cancelling ctx stops the run between pool sizes and cuts task work short.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		Config:    r.conf,
		Results:   make([]Result, 0, len(r.conf.Threads)),
	}
	log := r.log.With(zap.String("run_id", report.RunID))

	for _, threads := range r.conf.Threads {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res, err := r.runOne(ctx, log, threads)
		if err != nil {
			return nil, fmt.Errorf("run with %d threads: %w", threads, err)
		}

		log.Debug("pool size finished",
			zap.Int("threads", threads),
			zap.Duration("total", res.TotalTime),
			zap.Int("failed", res.Failed),
		)
		report.Results = append(report.Results, res)
	}

	rank(report.Results)
	return report, nil
}

func (r *Runner) runOne(ctx context.Context, log *zap.Logger, threads int) (Result, error) {
	opts := []pool.Option{pool.WithLogger(log)}
	if r.onTask != nil {
		opts = append(opts, pool.WithOnTaskEnd(func(int64, error) { r.onTask() }))
	}

	p, err := pool.New(threads, opts...)
	if err != nil {
		return Result{}, err
	}

	latencies := make([]time.Duration, r.conf.Tasks)
	futures := make([]*pool.Future[struct{}], r.conf.Tasks)

	start := time.Now()
	if err := p.Start(); err != nil {
		return Result{}, err
	}

	for i := range r.conf.Tasks {
		submitted := time.Now()
		futures[i], err = pool.Go(p, func() error {
			if r.conf.Work > 0 {
				sleep(ctx, r.conf.Work)
			}
			latencies[i] = time.Since(submitted)

			if r.conf.FailEvery > 0 && (i+1)%r.conf.FailEvery == 0 {
				return ErrInjectedFailure
			}
			return nil
		})
		if err != nil {
			_ = p.Shutdown()
			return Result{}, err
		}
	}

	if err := p.Shutdown(); err != nil {
		return Result{}, err
	}
	total := time.Since(start)

	res := Result{Threads: threads, TotalTime: total}
	for _, f := range futures {
		if _, err := f.Get(); err != nil {
			res.Failed++
			continue
		}
		res.Completed++
	}

	if total > 0 {
		res.Throughput = float64(r.conf.Tasks) / total.Seconds()
	}
	res.AvgLatency, res.P50Latency, res.P95Latency, res.P99Latency = summarize(latencies)
	return res, nil
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
