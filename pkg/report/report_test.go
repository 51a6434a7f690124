package report

import (
	"bytes"
	"context"
	"net/netip"
	"strings"
	"testing"
	"time"

	"github.com/projectdiscovery/hostsweep/pkg/sweep"
	"github.com/tidwall/gjson"
)

func resultOf(port uint16, addrs ...string) *sweep.Result {
	res := &sweep.Result{ID: "cq8h2k3d0000000000a0", Port: port}
	for _, a := range addrs {
		res.Reachable = append(res.Reachable, netip.MustParseAddr(a))
	}
	return res
}

func TestWriteText(t *testing.T) {
	tests := []struct {
		name    string
		result  *sweep.Result
		options Options
		want    string
	}{
		{
			name:    "two reachable hosts",
			result:  resultOf(80, "10.0.0.77", "10.0.0.5"),
			options: Options{NoColor: true},
			want:    "Reachable IPs (on port 80):\n  http://10.0.0.77\n  http://10.0.0.5\n",
		},
		{
			name:    "sorted output",
			result:  resultOf(80, "10.0.0.77", "10.0.0.5"),
			options: Options{NoColor: true, Sort: true},
			want:    "Reachable IPs (on port 80):\n  http://10.0.0.5\n  http://10.0.0.77\n",
		},
		{
			name:    "nothing reachable",
			result:  resultOf(8096),
			options: Options{NoColor: true},
			want:    "No reachable IPs!\n",
		},
		{
			name:    "ipv6 host",
			result:  resultOf(8080, "fe80::1"),
			options: Options{NoColor: true},
			want:    "Reachable IPs (on port 8080):\n  http://fe80::1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := New(&buf, tt.options).Write(tt.result); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("Write() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteTextColor(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, Options{}).Write(resultOf(80, "10.0.0.5")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "Reachable IPs (on port 80):\n") {
		t.Errorf("header must stay uncoloured, got %q", out)
	}
	if !strings.Contains(out, "\x1b[") {
		t.Errorf("expected ANSI colour codes in %q", out)
	}
	if !strings.Contains(out, "http://10.0.0.5") {
		t.Errorf("missing url in %q", out)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	res := resultOf(8096, "192.168.1.20", "192.168.1.3")
	if err := New(&buf, Options{JSON: true, Sort: true}).Write(res); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), buf.String())
	}

	first := gjson.Parse(lines[0])
	if got := first.Get("ip").String(); got != "192.168.1.3" {
		t.Errorf("ip = %s, want 192.168.1.3", got)
	}
	if got := first.Get("port").Int(); got != 8096 {
		t.Errorf("port = %d, want 8096", got)
	}
	if got := first.Get("url").String(); got != "http://192.168.1.3:8096/" {
		t.Errorf("url = %s", got)
	}
	if got := first.Get("scan_id").String(); got != res.ID {
		t.Errorf("scan_id = %s, want %s", got, res.ID)
	}
	if got := gjson.Get(lines[1], "ip").String(); got != "192.168.1.20" {
		t.Errorf("second ip = %s, want 192.168.1.20", got)
	}
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, Options{JSON: true}).Write(resultOf(80)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output for an empty result, got %q", buf.String())
	}
}

func TestScanAndReport(t *testing.T) {
	tests := []struct {
		name      string
		port      uint16
		reachable []string
		wantLines []string
	}{
		{
			name:      "two responders",
			port:      80,
			reachable: []string{"10.0.0.5", "10.0.0.77"},
			wantLines: []string{"Reachable IPs (on port 80):", "  http://10.0.0.5", "  http://10.0.0.77"},
		},
		{
			name:      "no responders",
			port:      8096,
			wantLines: []string{"No reachable IPs!"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up := make(map[netip.Addr]bool)
			for _, a := range tt.reachable {
				up[netip.MustParseAddr(a)] = true
			}
			prober := sweep.ProbeFunc(func(ctx context.Context, addr netip.Addr, port uint16, timeout time.Duration) sweep.Outcome {
				return sweep.Outcome{Addr: addr, Reachable: up[addr] && port == tt.port}
			})

			cfg := sweep.DefaultConfig()
			cfg.Port = tt.port
			scanner, err := sweep.New(cfg, prober)
			if err != nil {
				t.Fatalf("sweep.New() error = %v", err)
			}
			res, err := scanner.Scan(context.Background())
			if err != nil {
				t.Fatalf("Scan() error = %v", err)
			}

			var buf bytes.Buffer
			if err := New(&buf, Options{NoColor: true, Sort: true}).Write(res); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
			if strings.Join(lines, "|") != strings.Join(tt.wantLines, "|") {
				t.Errorf("output = %q, want %q", lines, tt.wantLines)
			}
		})
	}
}
