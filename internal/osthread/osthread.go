package osthread

import "runtime"

// Bind wires the calling goroutine to its current OS thread and returns the
// thread id (0 where the platform does not expose one) together with a release
// function that must be deferred by the same goroutine.
func Bind() (tid int, release func()) {
	runtime.LockOSThread()
	return currentThreadID(), runtime.UnlockOSThread
}
