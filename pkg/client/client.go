package client

import (
	"context"
	"net"
	"net/http"
)

// DialContextFunc opens the connection for a probe request
type DialContextFunc func(ctx context.Context, network, address string) (net.Conn, error)

// CreateProbeClient returns the http client shared by all probes of a sweep.
// Keep-alives are disabled so every probe owns its connection and nothing
// stays open once the probe resolves. Proxies from the environment are ignored.
// A nil dial uses a plain dialer without TCP keep-alive.
func CreateProbeClient(dial DialContextFunc) *http.Client {
	if dial == nil {
		dialer := &net.Dialer{
			KeepAlive: -1,
		}
		dial = dialer.DialContext
	}

	transport := &http.Transport{
		Proxy:              nil,
		DialContext:        dial,
		DisableKeepAlives:  true,
		DisableCompression: true,
	}

	return &http.Client{
		Transport: transport,
	}
}
