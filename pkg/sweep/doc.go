// Package sweep provides a library for discovering hosts that answer HTTP on a
// given port across a last-octet address sweep.
//
// A sweep is performed by:
//   - Expanding an address template (e.g. "10.0.0.{}") into candidate addresses
//     by substituting 1..254 for the placeholder
//   - Probing every candidate with a single HTTP GET, bounded by an adaptive
//     waitgroup sized to the configured concurrency
//   - Collecting the addresses that answered with a 2xx status before their
//     per-probe timeout
//
// Example usage:
//
//	cfg := sweep.DefaultConfig()
//	cfg.Port = 8096
//	scanner, err := sweep.New(cfg, nil)
//	if err != nil {
//		return err
//	}
//	result, err := scanner.Scan(ctx)
//
// Ordering:
//   - Candidates are generated in ascending order
//   - Reachable addresses are collected in completion order, which differs
//     between runs; use Result.Sorted for a stable listing
//
// Limitations:
//   - Only the first placeholder is substituted, other octets stay fixed
//   - No retries: a probe that times out counts the same as a refused one
package sweep
