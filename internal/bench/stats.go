package bench

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// percentile returns the p-th percentile (0-100) of sorted latencies.
func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(float64(len(sorted)-1) * p / 100)
	return sorted[idx]
}

func summarize(latencies []time.Duration) (avg, p50, p95, p99 time.Duration) {
	if len(latencies) == 0 {
		return
	}

	sorted := slices.Clone(latencies)
	slices.Sort(sorted)

	var total time.Duration
	for _, l := range sorted {
		total += l
	}

	return total / time.Duration(len(sorted)),
		percentile(sorted, 50),
		percentile(sorted, 95),
		percentile(sorted, 99)
}

// rank orders results by total time; the fastest gets rank 1.
func rank(results []Result) {
	order := make([]int, len(results))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return int(results[a].TotalTime - results[b].TotalTime)
	})
	for r, i := range order {
		results[i].Rank = r + 1
	}
}

// FormatNumber renders n with thousands separators.
func FormatNumber(n int) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	s := fmt.Sprintf("%d", n)

	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			_, _ = b.WriteString(",")
		}
		_, _ = b.WriteRune(c)
	}
	return b.String()
}

// FormatLatency renders d in the largest unit that keeps it above one.
func FormatLatency(d time.Duration) string {
	if d == 0 {
		return "0"
	}

	ns := d.Nanoseconds()
	switch {
	case ns < 1_000:
		return fmt.Sprintf("%dns", ns)
	case ns < 1_000_000:
		return fmt.Sprintf("%.1fµs", float64(ns)/1e3)
	case ns < 1_000_000_000:
		return fmt.Sprintf("%.2fms", float64(ns)/1e6)
	default:
		return fmt.Sprintf("%.2fs", float64(ns)/1e9)
	}
}
