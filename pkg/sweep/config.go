package sweep

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// Placeholder is the token replaced by the last-octet value in a pattern
	Placeholder = "{}"
	// MaxCandidates is the upper bound on candidates a single sweep produces
	MaxCandidates = 254

	DefaultPattern = "10.0.0.{}"
	DefaultPort    = 80
	DefaultTimeout = time.Second
)

// ErrInvalidConfig is returned when a Config cannot be used for a scan
var ErrInvalidConfig = errors.New("invalid sweep config")

// Config is the immutable input of a scan
type Config struct {
	// Pattern is the address template holding the placeholder
	Pattern string
	// Port is the target TCP port of every probe
	Port uint16
	// Concurrency is the maximum number of in-flight probes.
	// Zero means one slot per possible candidate.
	Concurrency int
	// Timeout is the wall-clock limit of a single probe
	Timeout time.Duration
	// MaxOctet is the highest value substituted into the pattern (1..254)
	MaxOctet int
}

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() Config {
	return Config{
		Pattern:  DefaultPattern,
		Port:     DefaultPort,
		Timeout:  DefaultTimeout,
		MaxOctet: MaxCandidates,
	}
}

// Validate reports configuration errors before any probing starts
func (c Config) Validate() error {
	if !strings.Contains(c.Pattern, Placeholder) {
		return fmt.Errorf("%w: pattern %q has no %s placeholder", ErrInvalidConfig, c.Pattern, Placeholder)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("%w: concurrency must not be negative (got %d)", ErrInvalidConfig, c.Concurrency)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive (got %s)", ErrInvalidConfig, c.Timeout)
	}
	if c.MaxOctet < 1 || c.MaxOctet > MaxCandidates {
		return fmt.Errorf("%w: max octet must be within 1-%d (got %d)", ErrInvalidConfig, MaxCandidates, c.MaxOctet)
	}
	return nil
}

// EffectiveConcurrency returns the admission limit used by a scan
func (c Config) EffectiveConcurrency() int {
	if c.Concurrency <= 0 || c.Concurrency > c.MaxOctet {
		return c.MaxOctet
	}
	return c.Concurrency
}
