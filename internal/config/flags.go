package config

import (
	"errors"
	"flag"
	"io"
	"strings"
	"time"

	"github.com/stigoleg/dizzymouse/internal/ui"
	"github.com/stigoleg/dizzymouse/internal/util"
)

const (
	// DefaultInterval is used when no valid interval argument is given.
	DefaultInterval = 55 * time.Second

	// MaxInterval is the exclusive upper bound for the interval argument.
	MaxInterval = time.Hour
)

type Config struct {
	Interval    time.Duration
	ShowVersion bool
	ShowHelp    bool
	Debug       bool
}

// ResolveInterval turns the positional arguments into the repeat interval.
// Invalid input is reported on out and replaced by DefaultInterval.
func ResolveInterval(args []string, out io.Writer) time.Duration {
	if len(args) != 1 {
		return DefaultInterval
	}

	n, d, err := util.ParseSeconds(args[0])
	if err != nil {
		ui.Warn(out, "The parameter %s is invalid. Using %d seconds instead.", args[0], int(DefaultInterval.Seconds()))
		return DefaultInterval
	}

	switch {
	case d >= MaxInterval:
		ui.Warn(out, "The frequency of %d is longer than one hour. Using %d seconds instead.", n, int(DefaultInterval.Seconds()))
		return DefaultInterval
	case d <= 0:
		ui.Warn(out, "The frequency of %d is not positive. Using %d seconds instead.", n, int(DefaultInterval.Seconds()))
		return DefaultInterval
	}

	return d
}

// Parse reads flags and the optional interval argument. It never fails on
// interval input: known flags are taken out wherever they appear and the
// rest is handed to ResolveInterval, so "--debug -5" keeps debug on and
// reports the negative interval.
func Parse(args []string, out io.Writer) *Config {
	cfg := &Config{}

	flags := flag.NewFlagSet("dizzymouse", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	flags.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")
	flags.BoolVar(&cfg.Debug, "debug", false, "Write diagnostics to debug.log")

	known, positional := splitArgs(flags, args)
	if err := flags.Parse(known); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			cfg.ShowHelp = true
			cfg.Interval = DefaultInterval
			return cfg
		}
		// A known flag with a bad value, e.g. --debug=maybe.
		ui.Warn(out, "Ignoring flags: %v", err)
		cfg.ShowVersion = false
		cfg.Debug = false
	}

	cfg.Interval = ResolveInterval(positional, out)
	return cfg
}

// splitArgs separates flags defined on fs (plus -h and -help) from
// everything else. Arguments after "--" are always positional.
func splitArgs(fs *flag.FlagSet, args []string) (known, positional []string) {
	for i, arg := range args {
		if arg == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		if isKnownFlag(fs, arg) {
			known = append(known, arg)
			continue
		}
		positional = append(positional, arg)
	}
	return known, positional
}

func isKnownFlag(fs *flag.FlagSet, arg string) bool {
	if !strings.HasPrefix(arg, "-") {
		return false
	}
	name := strings.TrimPrefix(strings.TrimPrefix(arg, "-"), "-")
	name, _, _ = strings.Cut(name, "=")
	if name == "h" || name == "help" {
		return true
	}
	return name != "" && fs.Lookup(name) != nil
}
