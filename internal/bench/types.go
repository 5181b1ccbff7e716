package bench

import (
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
)

var (
	// ErrInvalidConfig is returned by Run when the Config cannot describe a workload.
	ErrInvalidConfig = errors.New("invalid benchmark config")
)

// Config describes one benchmark run.
type Config struct {
	Threads   []int         `yaml:"threads"`    // Pool sizes to run, in order
	Tasks     int           `yaml:"tasks"`      // Tasks submitted to each pool
	Work      time.Duration `yaml:"work"`       // How long each task sleeps
	FailEvery int           `yaml:"fail_every"` // Every n-th task returns an error; 0 disables
}

// Validate reports whether c can be run.
func (c Config) Validate() error {
	if len(c.Threads) == 0 {
		return fmt.Errorf("%w: no thread counts", ErrInvalidConfig)
	}
	for _, n := range c.Threads {
		if n <= 0 {
			return fmt.Errorf("%w: thread count must be positive, got %d", ErrInvalidConfig, n)
		}
	}
	if c.Tasks <= 0 {
		return fmt.Errorf("%w: task count must be positive, got %d", ErrInvalidConfig, c.Tasks)
	}
	if c.Work < 0 {
		return fmt.Errorf("%w: work must not be negative, got %v", ErrInvalidConfig, c.Work)
	}
	if c.FailEvery < 0 {
		return fmt.Errorf("%w: fail-every must not be negative, got %d", ErrInvalidConfig, c.FailEvery)
	}
	return nil
}

// Result captures the outcome of running the workload on a single pool size.
type Result struct {
	Threads    int
	Rank       int
	TotalTime  time.Duration
	Throughput float64 // Tasks per second
	Completed  int
	Failed     int

	AvgLatency time.Duration
	P50Latency time.Duration
	P95Latency time.Duration
	P99Latency time.Duration
}

// Report is the full outcome of a Run.
type Report struct {
	RunID     string
	StartedAt time.Time
	Config    Config
	Results   []Result
}

var (
	Bold   = color.New(color.Bold)
	Green  = color.New(color.FgGreen)
	Red    = color.New(color.FgRed)
	Yellow = color.New(color.FgYellow)
)
