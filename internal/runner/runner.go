package runner

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/hostsweep/pkg/limits"
	"github.com/projectdiscovery/hostsweep/pkg/report"
	"github.com/projectdiscovery/hostsweep/pkg/sweep"
	errorutil "github.com/projectdiscovery/utils/errors"
)

// Runner contains the internal logic of the program
type Runner struct {
	options  *Options
	scanner  *sweep.Scanner
	reporter *report.Reporter
	output   *os.File
}

// NewRunner instance
func NewRunner(options *Options) (*Runner, error) {
	return newRunner(options, os.Stdout, nil)
}

func newRunner(options *Options, stdout io.Writer, prober sweep.Prober) (*Runner, error) {
	cfg, err := options.ScanConfig()
	if err != nil {
		return nil, errorutil.NewWithErr(err).Msgf("invalid scan options")
	}

	concurrency := cfg.EffectiveConcurrency()
	if clamped := limits.ClampConcurrency(concurrency, limits.FileLimit()); clamped < concurrency {
		gologger.Warning().Msgf("lowering concurrency from %d to %d to stay within the open file limit", concurrency, clamped)
		cfg.Concurrency = clamped
	}

	r := &Runner{options: options}

	r.scanner, err = sweep.New(cfg, prober, sweep.WithOnResult(r.onResult))
	if err != nil {
		return nil, errorutil.NewWithErr(err).Msgf("could not create scanner")
	}

	noColor := options.NoColor
	if f, ok := stdout.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		noColor = true
	}

	w := stdout
	if options.Output != "" {
		r.output, err = os.Create(options.Output)
		if err != nil {
			return nil, errorutil.NewWithErr(err).Msgf("could not create output file %s", options.Output)
		}
		w = io.MultiWriter(stdout, r.output)
		noColor = true
	}

	r.reporter = report.New(w, report.Options{
		JSON:    options.JSON,
		Sort:    options.Sort,
		NoColor: noColor,
	})
	return r, nil
}

// Run the instance
func (r *Runner) Run(ctx context.Context) error {
	if r.options.Verbose {
		r.logOpenFDs("before sweep")
	}

	result, err := r.scanner.Scan(ctx)
	switch {
	case errors.Is(err, context.Canceled):
		gologger.Warning().Msgf("sweep interrupted after %d probes, reporting partial results", result.Probed)
	case err != nil:
		return errorutil.NewWithErr(err).Msgf("sweep failed")
	}

	if r.options.Verbose {
		r.logOpenFDs("after sweep")
	}

	if err := r.reporter.Write(result); err != nil {
		return errorutil.NewWithErr(err).Msgf("could not write report")
	}
	return nil
}

// Close the runner instance
func (r *Runner) Close() {
	if r.output != nil {
		_ = r.output.Close()
	}
}

func (r *Runner) onResult(outcome sweep.Outcome) {
	if outcome.Reachable {
		gologger.Verbose().Msgf("%s is reachable", sweep.ProbeURL(outcome.Addr, r.scanner.Config().Port))
	}
}

func (r *Runner) logOpenFDs(stage string) {
	n, err := limits.OpenFDs()
	if err != nil {
		gologger.Debug().Msgf("could not count open file descriptors: %v", err)
		return
	}
	gologger.Verbose().Msgf("open file descriptors %s: %d", stage, n)
}
