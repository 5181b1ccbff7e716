//go:build !linux

package osthread

func currentThreadID() int {
	return 0
}
