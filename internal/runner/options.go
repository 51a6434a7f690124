package runner

import (
	"os"
	"strings"
	"time"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/formatter"
	"github.com/projectdiscovery/gologger/levels"
	"github.com/projectdiscovery/hostsweep/pkg/sweep"
	errorutil "github.com/projectdiscovery/utils/errors"
	fileutil "github.com/projectdiscovery/utils/file"
)

// Options contains the configuration options for a sweep
type Options struct {
	ConfigFile string

	IPPattern   string
	Port        int
	Concurrency int
	Timeout     time.Duration

	JSON   bool
	Sort   bool
	Output string

	Verbose bool
	Silent  bool
	NoColor bool
	Version bool
}

// ParseOptions parses the command line flags provided by a user
func ParseOptions() *Options {
	options := &Options{}
	flagSet := goflags.NewFlagSet()

	flagSet.SetDescription(`hostsweep finds hosts answering HTTP on a port across a last-octet address sweep`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&options.IPPattern, "ip-pattern", "i", sweep.DefaultPattern, "address pattern, {} is replaced by 1-254"),
		flagSet.IntVarP(&options.Port, "port", "p", sweep.DefaultPort, "port to probe"),
	)

	flagSet.CreateGroup("scan", "Scan",
		flagSet.IntVarP(&options.Concurrency, "concurrency", "c", 0, "maximum number of probes in flight (0 = one per candidate)"),
		flagSet.DurationVarP(&options.Timeout, "timeout", "t", sweep.DefaultTimeout, "timeout of a single probe"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&options.Output, "output", "o", "", "file to write the report to"),
		flagSet.BoolVarP(&options.JSON, "json", "j", false, "write reachable hosts as json lines"),
		flagSet.BoolVar(&options.Sort, "sort", false, "sort reachable hosts by address"),
		flagSet.BoolVarP(&options.NoColor, "no-color", "nc", false, "disable output content coloring (ANSI escape codes)"),
	)

	flagSet.CreateGroup("config", "Config",
		flagSet.StringVar(&options.ConfigFile, "config", "", "cli flag configuration file"),
	)

	flagSet.CreateGroup("debug", "Debug",
		flagSet.BoolVarP(&options.Verbose, "verbose", "v", false, "show verbose output"),
		flagSet.BoolVar(&options.Silent, "silent", false, "show only results in output"),
		flagSet.BoolVar(&options.Version, "version", false, "show version of the project"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("%s\n", err)
	}

	if options.ConfigFile != "" {
		if !fileutil.FileExists(options.ConfigFile) {
			gologger.Fatal().Msgf("config file %s does not exist", options.ConfigFile)
		}
		if err := flagSet.MergeConfigFile(options.ConfigFile); err != nil {
			gologger.Fatal().Msgf("could not read config: %s\n", err)
		}
	}

	options.configureOutput()

	if !options.Silent {
		showBanner()
	}

	if options.Version {
		gologger.Info().Msgf("Current Version: %s\n", version)
		os.Exit(0)
	}

	if err := options.validate(); err != nil {
		gologger.Fatal().Msgf("Program exiting: %s\n", err)
	}

	return options
}

// configureOutput configures the output on the screen
func (options *Options) configureOutput() {
	// If the user desires verbose output, show verbose output
	if options.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	if options.NoColor {
		gologger.DefaultLogger.SetFormatter(formatter.NewCLI(true))
	}
	if options.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	}
}

// validate checks the user supplied values before any probe is sent
func (options *Options) validate() error {
	if count := strings.Count(options.IPPattern, sweep.Placeholder); count != 1 {
		return errorutil.New("ip pattern %q must contain exactly one %s placeholder (found %d)", options.IPPattern, sweep.Placeholder, count)
	}
	if options.Port < 1 || options.Port > 65535 {
		return errorutil.New("port must be within 1-65535 (got %d)", options.Port)
	}
	if options.Concurrency < 0 {
		return errorutil.New("concurrency must not be negative (got %d)", options.Concurrency)
	}
	if options.Timeout <= 0 {
		return errorutil.New("timeout must be positive (got %s)", options.Timeout)
	}
	if options.Verbose && options.Silent {
		return errorutil.New("verbose and silent can't be used together")
	}
	return nil
}

// ScanConfig converts the options into the configuration of a sweep
func (options *Options) ScanConfig() (sweep.Config, error) {
	if err := options.validate(); err != nil {
		return sweep.Config{}, err
	}

	cfg := sweep.DefaultConfig()
	cfg.Pattern = options.IPPattern
	cfg.Port = uint16(options.Port)
	cfg.Concurrency = options.Concurrency
	cfg.Timeout = options.Timeout
	return cfg, cfg.Validate()
}
