package sweep

import (
	"net/netip"
	"slices"
	"time"
)

// Result holds the outcome of a completed scan
type Result struct {
	// ID identifies the scan in logs and structured output
	ID string
	// Port is the port every candidate was probed on
	Port uint16
	// Reachable lists responding addresses in the order their probes resolved.
	// The order is not stable between runs.
	Reachable []netip.Addr
	// Probed is the number of candidates that produced an outcome
	Probed   int
	Duration time.Duration
}

// Empty reports whether no address was reachable
func (r *Result) Empty() bool {
	return len(r.Reachable) == 0
}

// Sorted returns a copy of the reachable addresses in ascending address order
func (r *Result) Sorted() []netip.Addr {
	sorted := slices.Clone(r.Reachable)
	slices.SortFunc(sorted, func(a, b netip.Addr) int {
		return a.Compare(b)
	})
	return sorted
}
