//go:build !windows
// +build !windows

package limits

import "golang.org/x/sys/unix"

// fileLimit returns the soft RLIMIT_NOFILE of the process
func fileLimit() (uint64, error) {
	var rlimit unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &rlimit); err != nil {
		return 0, err
	}
	if rlimit.Cur == unix.RLIM_INFINITY {
		return 0, nil
	}
	return uint64(rlimit.Cur), nil
}
