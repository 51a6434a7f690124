//go:build windows

package limits

// fileLimit reports no limit, windows sockets are not bound by a descriptor table size
func fileLimit() (uint64, error) {
	return 0, nil
}
