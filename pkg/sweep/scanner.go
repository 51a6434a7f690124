package sweep

import (
	"context"
	"fmt"
	"net/netip"
	"time"

	"github.com/projectdiscovery/gologger"
	syncutil "github.com/projectdiscovery/utils/sync"
	"github.com/rs/xid"
)

// Option customizes a Scanner
type Option func(*Scanner)

// WithOnResult registers a callback invoked for every outcome as soon as it
// resolves. Calls are serialized.
func WithOnResult(fn func(Outcome)) Option {
	return func(s *Scanner) {
		s.onResult = fn
	}
}

// Scanner drives the candidates of a Config through a bounded pool of probes
type Scanner struct {
	config   Config
	prober   Prober
	onResult func(Outcome)
}

// New creates a scanner for config. A nil prober uses an HTTPProber with the
// default probe client.
func New(config Config, prober Prober, opts ...Option) (*Scanner, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if prober == nil {
		prober = NewHTTPProber(nil)
	}

	s := &Scanner{
		config: config,
		prober: prober,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Config returns the configuration of the scanner
func (s *Scanner) Config() Config {
	return s.config
}

// Scan probes every candidate once, with at most EffectiveConcurrency probes
// in flight, and returns once all of them resolved.
//
// If ctx is cancelled no further candidates are admitted, in-flight probes are
// cancelled, and the partial result is returned together with ctx.Err().
func (s *Scanner) Scan(ctx context.Context) (*Result, error) {
	concurrency := s.config.EffectiveConcurrency()

	awg, err := syncutil.New(syncutil.WithSize(concurrency))
	if err != nil {
		return nil, fmt.Errorf("failed to create adaptive waitgroup: %w", err)
	}

	result := &Result{
		ID:   xid.New().String(),
		Port: s.config.Port,
	}
	start := time.Now()

	gologger.Verbose().Msgf("[%s] sweeping %s on port %d (concurrency %d, timeout %s)",
		result.ID, s.config.Pattern, s.config.Port, concurrency, s.config.Timeout)

	// only the collector goroutine touches result until collected is closed
	outcomes := make(chan Outcome, concurrency)
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for outcome := range outcomes {
			result.Probed++
			if outcome.Reachable {
				result.Reachable = append(result.Reachable, outcome.Addr)
			}
			if s.onResult != nil {
				s.onResult(outcome)
			}
		}
	}()

	var scanErr error
	for addr := range Candidates(s.config.Pattern, s.config.MaxOctet) {
		if err := ctx.Err(); err != nil {
			scanErr = err
			break
		}

		awg.Add()
		// the slot may have been freed by a probe cancelled along with ctx
		if err := ctx.Err(); err != nil {
			awg.Done()
			scanErr = err
			break
		}
		go func(addr netip.Addr) {
			defer awg.Done()
			outcomes <- s.probe(ctx, addr)
		}(addr)
	}

	awg.Wait()
	close(outcomes)
	<-collected

	result.Duration = time.Since(start)
	gologger.Verbose().Msgf("[%s] sweep finished in %s: %d probed, %d reachable",
		result.ID, result.Duration, result.Probed, len(result.Reachable))

	return result, scanErr
}

// probe runs the prober for addr, turning a panic into an unreachable outcome
func (s *Scanner) probe(ctx context.Context, addr netip.Addr) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			gologger.Debug().Msgf("probe of %s failed: %v", addr, r)
			outcome = Outcome{Addr: addr}
		}
	}()

	outcome = s.prober.Probe(ctx, addr, s.config.Port, s.config.Timeout)
	outcome.Addr = addr
	return outcome
}
