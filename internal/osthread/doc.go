// Package osthread dedicates an OS thread to the calling goroutine.
//
// Workers started with thread binding keep one kernel thread for their whole
// life, which matches the one-thread-per-slot model of a classic thread pool
// and gives log lines a stable thread id. No CPU pinning is performed.
package osthread
