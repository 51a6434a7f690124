package sweep

import (
	"context"
	"io"
	"net/http"
	"net/netip"
	"time"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/hostsweep/pkg/client"
)

// maxDrainBytes bounds how much of a response body is read before closing it
const maxDrainBytes = 4 << 10

// Outcome is the result of probing a single candidate
type Outcome struct {
	Addr      netip.Addr
	Reachable bool
}

// Prober performs one liveness check against addr:port.
// Implementations must resolve within timeout and never panic on network errors;
// every failure is reported as an unreachable Outcome.
type Prober interface {
	Probe(ctx context.Context, addr netip.Addr, port uint16, timeout time.Duration) Outcome
}

// ProbeFunc adapts a plain function to the Prober interface
type ProbeFunc func(ctx context.Context, addr netip.Addr, port uint16, timeout time.Duration) Outcome

// Probe calls f
func (f ProbeFunc) Probe(ctx context.Context, addr netip.Addr, port uint16, timeout time.Duration) Outcome {
	return f(ctx, addr, port, timeout)
}

// HTTPProber checks liveness with a single GET http://addr:port/
type HTTPProber struct {
	client *http.Client
}

// NewHTTPProber creates a prober on top of httpClient.
// A nil client falls back to client.CreateProbeClient.
func NewHTTPProber(httpClient *http.Client) *HTTPProber {
	if httpClient == nil {
		httpClient = client.CreateProbeClient(nil)
	}
	return &HTTPProber{client: httpClient}
}

// Probe issues the request and reports the address reachable if and only if a
// 2xx response arrived before timeout
func (p *HTTPProber) Probe(ctx context.Context, addr netip.Addr, port uint16, timeout time.Duration) Outcome {
	outcome := Outcome{Addr: addr}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	target := ProbeURL(addr, port)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		gologger.Debug().Msgf("could not build request for %s: %v", target, err)
		return outcome
	}

	resp, err := p.client.Do(req)
	if err != nil {
		gologger.Debug().Msgf("%s unreachable: %v", target, err)
		return outcome
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		gologger.Debug().Msgf("%s answered with status %d", target, resp.StatusCode)
		return outcome
	}

	outcome.Reachable = true
	return outcome
}

// ProbeURL returns the url requested for addr:port, bracketing IPv6 addresses
func ProbeURL(addr netip.Addr, port uint16) string {
	return "http://" + netip.AddrPortFrom(addr, port).String() + "/"
}
