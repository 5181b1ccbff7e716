package bench

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// RenderTable writes the report as two tables: throughput and latency.
func RenderTable(w io.Writer, rep *Report) error {
	if len(rep.Results) == 0 {
		colorPrintLn(w, Red, "No results to render")
		return nil
	}

	results := byRank(rep.Results)
	fastest := results[0].TotalTime

	printSectionHeader(w, "THROUGHPUT BY POOL SIZE",
		fmt.Sprintf("run %s: %s tasks per pool, %v of work each",
			rep.RunID, FormatNumber(rep.Config.Tasks), rep.Config.Work))

	throughput := tablewriter.NewWriter(w)
	throughput.Header("Rank", "Threads", "Total Time", "Tasks/sec", "Completed", "Failed", "vs Fastest")
	for _, r := range results {
		_ = throughput.Append(
			rankLabel(r.Rank),
			strconv.Itoa(r.Threads),
			r.TotalTime.Round(time.Millisecond).String(),
			FormatNumber(int(r.Throughput)),
			FormatNumber(r.Completed),
			FormatNumber(r.Failed),
			vsFastest(r.TotalTime, fastest, r.Rank),
		)
	}
	if err := throughput.Render(); err != nil {
		return fmt.Errorf("render throughput table: %w", err)
	}

	printSectionHeader(w, "LATENCY BY POOL SIZE",
		"Time from submission to task completion (lower is better)")

	latency := tablewriter.NewWriter(w)
	latency.Header("Rank", "Threads", "Avg", "P50", "P95", "P99")
	for _, r := range results {
		_ = latency.Append(
			rankLabel(r.Rank),
			strconv.Itoa(r.Threads),
			FormatLatency(r.AvgLatency),
			FormatLatency(r.P50Latency),
			FormatLatency(r.P95Latency),
			FormatLatency(r.P99Latency),
		)
	}
	if err := latency.Render(); err != nil {
		return fmt.Errorf("render latency table: %w", err)
	}

	fmt.Fprintln(w)
	colorPrintf(w, Green, "Fastest: %d threads in %v\n", results[0].Threads, fastest.Round(time.Millisecond))
	if failed := totalFailed(results); failed > 0 {
		colorPrintf(w, Yellow, "%s tasks failed on purpose (fail-every=%d)\n",
			FormatNumber(failed), rep.Config.FailEvery)
	}
	return nil
}

type yamlConfig struct {
	Threads   []int  `yaml:"threads"`
	Tasks     int    `yaml:"tasks"`
	Work      string `yaml:"work"`
	FailEvery int    `yaml:"fail_every"`
}

type yamlResult struct {
	Threads    int     `yaml:"threads"`
	Rank       int     `yaml:"rank"`
	TotalTime  string  `yaml:"total_time"`
	Throughput float64 `yaml:"tasks_per_sec"`
	Completed  int     `yaml:"completed"`
	Failed     int     `yaml:"failed"`
	AvgLatency string  `yaml:"avg_latency"`
	P50Latency string  `yaml:"p50_latency"`
	P95Latency string  `yaml:"p95_latency"`
	P99Latency string  `yaml:"p99_latency"`
}

type yamlReport struct {
	RunID     string       `yaml:"run_id"`
	StartedAt time.Time    `yaml:"started_at"`
	Config    yamlConfig   `yaml:"config"`
	Results   []yamlResult `yaml:"results"`
}

// RenderYAML writes the report as a YAML document with durations in Go notation.
func RenderYAML(w io.Writer, rep *Report) error {
	doc := yamlReport{
		RunID:     rep.RunID,
		StartedAt: rep.StartedAt,
		Config: yamlConfig{
			Threads:   rep.Config.Threads,
			Tasks:     rep.Config.Tasks,
			Work:      rep.Config.Work.String(),
			FailEvery: rep.Config.FailEvery,
		},
		Results: make([]yamlResult, 0, len(rep.Results)),
	}

	for _, r := range rep.Results {
		doc.Results = append(doc.Results, yamlResult{
			Threads:    r.Threads,
			Rank:       r.Rank,
			TotalTime:  r.TotalTime.String(),
			Throughput: r.Throughput,
			Completed:  r.Completed,
			Failed:     r.Failed,
			AvgLatency: r.AvgLatency.String(),
			P50Latency: r.P50Latency.String(),
			P95Latency: r.P95Latency.String(),
			P99Latency: r.P99Latency.String(),
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return enc.Close()
}

func byRank(results []Result) []Result {
	sorted := slices.Clone(results)
	slices.SortFunc(sorted, func(a, b Result) int { return a.Rank - b.Rank })
	return sorted
}

func totalFailed(results []Result) int {
	n := 0
	for _, r := range results {
		n += r.Failed
	}
	return n
}

func rankLabel(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("%d", rank)
	}
}

func vsFastest(d, fastest time.Duration, rank int) string {
	if rank == 1 || fastest == 0 {
		return "baseline"
	}
	return fmt.Sprintf("%.2fx slower", float64(d)/float64(fastest))
}

func printSectionHeader(w io.Writer, title string, descriptions ...string) {
	fmt.Fprintln(w)
	colorPrintLn(w, Bold, "═══════════════════════════════════════════════════════════")
	colorPrintLn(w, Bold, title)
	colorPrintLn(w, Bold, "═══════════════════════════════════════════════════════════")
	for _, desc := range descriptions {
		fmt.Fprintln(w, desc)
	}
	fmt.Fprintln(w)
}

func colorPrintLn(w io.Writer, c *color.Color, a ...any) {
	_, _ = c.Fprintln(w, a...)
}

func colorPrintf(w io.Writer, c *color.Color, format string, a ...any) {
	_, _ = c.Fprintf(w, format, a...)
}
