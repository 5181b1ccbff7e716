package bench_test

import (
	"bytes"
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/yaml.v3"

	"github.com/utkarsh5026/threadpool/internal/bench"
)

var _ = Describe("Config", func() {
	DescribeTable("Validate",
		func(conf bench.Config, valid bool) {
			err := conf.Validate()
			if valid {
				Expect(err).NotTo(HaveOccurred())
			} else {
				Expect(err).To(MatchError(bench.ErrInvalidConfig))
			}
		},
		Entry("valid", bench.Config{Threads: []int{1, 2}, Tasks: 10}, true),
		Entry("no threads", bench.Config{Tasks: 10}, false),
		Entry("zero thread count", bench.Config{Threads: []int{0}, Tasks: 10}, false),
		Entry("no tasks", bench.Config{Threads: []int{1}}, false),
		Entry("negative work", bench.Config{Threads: []int{1}, Tasks: 1, Work: -time.Second}, false),
		Entry("negative fail-every", bench.Config{Threads: []int{1}, Tasks: 1, FailEvery: -1}, false),
	)
})

var _ = Describe("Runner", func() {
	var conf bench.Config

	BeforeEach(func() {
		conf = bench.Config{
			Threads:   []int{1, 4},
			Tasks:     20,
			Work:      time.Millisecond,
			FailEvery: 5,
		}
	})

	It("should reject an invalid config", func() {
		_, err := bench.NewRunner(bench.Config{})
		Expect(err).To(MatchError(bench.ErrInvalidConfig))
	})

	It("should run every pool size and count injected failures", func() {
		var progressed atomic.Int64
		r, err := bench.NewRunner(conf, bench.WithProgress(func() { progressed.Add(1) }))
		Expect(err).NotTo(HaveOccurred())
		Expect(r.TotalTasks()).To(Equal(40))

		report, err := r.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())

		_, err = uuid.Parse(report.RunID)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Config).To(Equal(conf))
		Expect(report.Results).To(HaveLen(2))

		ranks := []int{}
		for i, res := range report.Results {
			Expect(res.Threads).To(Equal(conf.Threads[i]))
			Expect(res.Completed).To(Equal(16))
			Expect(res.Failed).To(Equal(4))
			Expect(res.Throughput).To(BeNumerically(">", 0))
			Expect(res.P50Latency).To(BeNumerically(">=", time.Millisecond))
			Expect(res.P99Latency).To(BeNumerically(">=", res.P50Latency))
			ranks = append(ranks, res.Rank)
		}
		Expect(ranks).To(ConsistOf(1, 2))
		Expect(progressed.Load()).To(Equal(int64(40)))
	})

	It("should log through the given logger", func() {
		core, logs := observer.New(zapcore.DebugLevel)
		r, err := bench.NewRunner(conf, bench.WithLogger(zap.New(core)))
		Expect(err).NotTo(HaveOccurred())

		_, err = r.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())

		Expect(logs.FilterMessage("pool size finished").Len()).To(Equal(2))
		Expect(logs.FilterMessage("thread pool started").Len()).To(Equal(2))
		Expect(logs.FilterMessage("task failed").Len()).To(Equal(8))
	})

	It("should stop when the context is cancelled", func() {
		r, err := bench.NewRunner(conf)
		Expect(err).NotTo(HaveOccurred())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err = r.Run(ctx)
		Expect(err).To(MatchError(context.Canceled))
	})
})

var _ = Describe("Rendering", func() {
	var report *bench.Report

	BeforeEach(func() {
		report = &bench.Report{
			RunID:     uuid.NewString(),
			StartedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
			Config:    bench.Config{Threads: []int{2, 1}, Tasks: 1000, Work: time.Millisecond, FailEvery: 10},
			Results: []bench.Result{
				{Threads: 2, Rank: 1, TotalTime: 500 * time.Millisecond, Throughput: 2000, Completed: 900, Failed: 100, P50Latency: 2 * time.Millisecond},
				{Threads: 1, Rank: 2, TotalTime: time.Second, Throughput: 1000, Completed: 900, Failed: 100, P50Latency: 4 * time.Millisecond},
			},
		}
	})

	It("should render both tables", func() {
		var buf bytes.Buffer
		Expect(bench.RenderTable(&buf, report)).To(Succeed())

		out := buf.String()
		Expect(out).To(ContainSubstring("THROUGHPUT BY POOL SIZE"))
		Expect(out).To(ContainSubstring("LATENCY BY POOL SIZE"))
		Expect(out).To(ContainSubstring("2.00x slower"))
		Expect(out).To(ContainSubstring("Fastest: 2 threads"))
		Expect(out).To(ContainSubstring("200 tasks failed"))
	})

	It("should handle an empty report", func() {
		var buf bytes.Buffer
		Expect(bench.RenderTable(&buf, &bench.Report{})).To(Succeed())
		Expect(buf.String()).To(ContainSubstring("No results"))
	})

	It("should render YAML with readable durations", func() {
		var buf bytes.Buffer
		Expect(bench.RenderYAML(&buf, report)).To(Succeed())

		var doc struct {
			RunID  string `yaml:"run_id"`
			Config struct {
				Work      string `yaml:"work"`
				FailEvery int    `yaml:"fail_every"`
			} `yaml:"config"`
			Results []struct {
				Threads    int    `yaml:"threads"`
				Rank       int    `yaml:"rank"`
				TotalTime  string `yaml:"total_time"`
				P50Latency string `yaml:"p50_latency"`
			} `yaml:"results"`
		}
		Expect(yaml.Unmarshal(buf.Bytes(), &doc)).To(Succeed())

		Expect(doc.RunID).To(Equal(report.RunID))
		Expect(doc.Config.Work).To(Equal("1ms"))
		Expect(doc.Config.FailEvery).To(Equal(10))
		Expect(doc.Results).To(HaveLen(2))
		Expect(doc.Results[0].TotalTime).To(Equal("500ms"))
		Expect(doc.Results[1].P50Latency).To(Equal("4ms"))
	})
})

var _ = Describe("Formatting", func() {
	DescribeTable("FormatNumber",
		func(n int, want string) {
			Expect(bench.FormatNumber(n)).To(Equal(want))
		},
		Entry("small", 7, "7"),
		Entry("thousands", 1234, "1,234"),
		Entry("millions", 1234567, "1,234,567"),
		Entry("negative", -9876, "-9,876"),
	)

	DescribeTable("FormatLatency",
		func(d time.Duration, want string) {
			Expect(bench.FormatLatency(d)).To(Equal(want))
		},
		Entry("zero", time.Duration(0), "0"),
		Entry("nanoseconds", 500*time.Nanosecond, "500ns"),
		Entry("microseconds", 1500*time.Nanosecond, "1.5µs"),
		Entry("milliseconds", 2500*time.Microsecond, "2.50ms"),
		Entry("seconds", 1500*time.Millisecond, "1.50s"),
	)
})
