package report

import (
	"encoding/json"
	"fmt"
	"io"
	"net/netip"

	"github.com/logrusorgru/aurora/v4"
	"github.com/projectdiscovery/hostsweep/pkg/sweep"
)

// Options controls how a Reporter renders a result
type Options struct {
	// JSON writes one JSON object per reachable address instead of text
	JSON bool
	// Sort lists addresses by address instead of completion order
	Sort bool
	// NoColor disables ANSI colouring of text output
	NoColor bool
}

// Entry is the JSON representation of a reachable address
type Entry struct {
	IP     string `json:"ip"`
	Port   uint16 `json:"port"`
	URL    string `json:"url"`
	ScanID string `json:"scan_id,omitempty"`
}

// Reporter writes scan results for humans or machines
type Reporter struct {
	w       io.Writer
	options Options
	au      *aurora.Aurora
}

// New creates a reporter writing to w
func New(w io.Writer, options Options) *Reporter {
	return &Reporter{
		w:       w,
		options: options,
		au:      aurora.New(aurora.WithColors(!options.NoColor)),
	}
}

// Write renders res. An empty result is reported, not treated as an error.
func (r *Reporter) Write(res *sweep.Result) error {
	addrs := res.Reachable
	if r.options.Sort {
		addrs = res.Sorted()
	}

	if r.options.JSON {
		return r.writeJSON(res, addrs)
	}
	return r.writeText(res.Port, addrs)
}

func (r *Reporter) writeText(port uint16, addrs []netip.Addr) error {
	if len(addrs) == 0 {
		_, err := fmt.Fprintln(r.w, "No reachable IPs!")
		return err
	}

	if _, err := fmt.Fprintf(r.w, "Reachable IPs (on port %d):\n", port); err != nil {
		return err
	}
	for _, addr := range addrs {
		if _, err := fmt.Fprintf(r.w, "  %s\n", r.au.Green("http://"+addr.String())); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reporter) writeJSON(res *sweep.Result, addrs []netip.Addr) error {
	enc := json.NewEncoder(r.w)
	for _, addr := range addrs {
		entry := Entry{
			IP:     addr.String(),
			Port:   res.Port,
			URL:    sweep.ProbeURL(addr, res.Port),
			ScanID: res.ID,
		}
		if err := enc.Encode(entry); err != nil {
			return fmt.Errorf("could not encode %s: %w", addr, err)
		}
	}
	return nil
}
