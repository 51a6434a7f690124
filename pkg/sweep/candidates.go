package sweep

import (
	"iter"
	"net/netip"
	"strconv"
	"strings"
)

// Candidates expands pattern into the addresses of a sweep, in ascending
// order of the substituted value. Values whose substitution does not parse
// as an address are dropped.
func Candidates(pattern string, maxOctet int) iter.Seq[netip.Addr] {
	if maxOctet > MaxCandidates {
		maxOctet = MaxCandidates
	}
	return func(yield func(netip.Addr) bool) {
		for n := 1; n <= maxOctet; n++ {
			addr, ok := substitute(pattern, n)
			if !ok {
				continue
			}
			if !yield(addr) {
				return
			}
		}
	}
}

// substitute replaces the first placeholder of pattern with n and parses the result
func substitute(pattern string, n int) (netip.Addr, bool) {
	raw := strings.Replace(pattern, Placeholder, strconv.Itoa(n), 1)
	addr, err := netip.ParseAddr(raw)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr, true
}
