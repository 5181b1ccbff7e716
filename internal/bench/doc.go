// Package bench drives a thread pool through a synthetic workload and reports
// throughput, latency percentiles and failure counts for each pool size.
//
// A run is described by a Config: the pool sizes to try, how many tasks to
// submit to each pool, how long each task works, and how often a task fails
// on purpose. Run executes the sizes one after another and returns a Report,
// which can be rendered as colored tables with RenderTable or as YAML with
// RenderYAML.
package bench
