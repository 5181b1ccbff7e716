package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	"unicode"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/utkarsh5026/threadpool/internal/bench"
)

func newRunCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the synthetic workload on every requested pool size",
		Example: `  threadpool-bench run --threads 1,2,4,8 --tasks 10000 --work 100us
  THREADPOOL_BENCH_FAIL_EVERY=10 threadpool-bench run --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBench(cmd.Context(), v)
		},
	}

	flags := cmd.Flags()
	flags.IntSlice("threads", []int{1, 2, 4, 8}, "Pool sizes to benchmark")
	flags.Int("tasks", 10_000, "Tasks submitted to each pool")
	flags.Duration("work", 0, "Time each task spends working")
	flags.Int("fail-every", 0, "Make every n-th task fail (0 disables)")
	flags.String("format", "table", "Output format: table or yaml")
	flags.Bool("progress", true, "Show a progress bar on stderr")

	bindFlags(v, flags, "threads", "tasks", "work", "fail-every", "format", "progress")
	return cmd
}

// bindFlags exposes the named flags through v so env and file values apply to them.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, names ...string) {
	for _, name := range names {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}
}

func runBench(ctx context.Context, v *viper.Viper) error {
	logger, err := newLogger(v.GetString("log-level"))
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)
	defer func() { _ = logger.Sync() }()

	format := v.GetString("format")
	if format != "table" && format != "yaml" {
		return fmt.Errorf("unknown format %q: must be table or yaml", format)
	}

	threads, err := threadCounts(v)
	if err != nil {
		return err
	}

	conf := bench.Config{
		Threads:   threads,
		Tasks:     v.GetInt("tasks"),
		Work:      v.GetDuration("work"),
		FailEvery: v.GetInt("fail-every"),
	}

	opts := []bench.RunnerOption{bench.WithLogger(zap.L())}

	var bar *progressbar.ProgressBar
	if v.GetBool("progress") {
		bar = newProgressBar(conf.Tasks * len(conf.Threads))
		opts = append(opts, bench.WithProgress(func() { _ = bar.Add(1) }))
	}

	runner, err := bench.NewRunner(conf, opts...)
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	zap.S().Named("bench").Infow("starting benchmark",
		"threads", conf.Threads, "tasks", conf.Tasks, "work", conf.Work)

	report, err := runner.Run(ctx)
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return err
	}

	if format == "yaml" {
		return bench.RenderYAML(os.Stdout, report)
	}
	return bench.RenderTable(os.Stdout, report)
}

// threadCounts reads --threads from whichever layer set it. Config files yield
// lists; environment variables arrive as one string such as "1,2,4" or "[1 2]".
func threadCounts(v *viper.Viper) ([]int, error) {
	raw := v.Get("threads")
	if s, ok := raw.(string); ok {
		raw = strings.FieldsFunc(strings.Trim(s, "[]"), func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})
	}

	threads, err := cast.ToIntSliceE(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid threads value %v: %w", v.Get("threads"), err)
	}
	return threads, nil
}

func newProgressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Running tasks"),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionEnableColorCodes(true),
	)
}
