// Package limits keeps a sweep within the file descriptors the process may open.
//
// Every in-flight probe holds one socket, so the concurrency of a sweep is
// capped at the soft RLIMIT_NOFILE minus a reserve for stdio, logs and the
// output file. Platforms without the limit report 0 and are left unclamped.
package limits

import (
	"os"

	"github.com/shirou/gopsutil/v3/process"
)

// Reserve is the number of descriptors kept free for everything but probes
const Reserve = 32

// ClampConcurrency returns concurrency reduced to what fdLimit allows.
// A zero fdLimit means unknown and leaves concurrency unchanged.
// The result is never below 1.
func ClampConcurrency(concurrency int, fdLimit uint64) int {
	if fdLimit == 0 {
		return concurrency
	}
	available := 1
	if fdLimit > Reserve+1 {
		available = int(fdLimit - Reserve)
	}
	if concurrency > available {
		return available
	}
	return concurrency
}

// FileLimit returns the soft descriptor limit of the process, or 0 when it is
// unlimited or unknown
func FileLimit() uint64 {
	limit, err := fileLimit()
	if err != nil {
		return 0
	}
	return limit
}

// OpenFDs returns the number of file descriptors currently open by the process
func OpenFDs() (int32, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0, err
	}
	return proc.NumFDs()
}
