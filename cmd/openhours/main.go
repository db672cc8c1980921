// openhours evaluates weekly opening-hours expressions from the command
// line.
//
// The expression comes from --schedule, from a named entry of the config
// file (--name), or from the config's default schedule. Every command
// evaluates it at --at, or now when --at is omitted:
//
//	openhours match -s "mo-fr 09:00-17:00"
//	openhours when -n bakery --for 45m --at "2026-10-19 08:00"
//
// Exit status: 0 on success, 1 when match finds the schedule closed (or
// next finds it never opens), 2 when when finds no fit, 3 on malformed
// expressions, 64 on usage errors.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/prasrvenkat/openhours"
	"github.com/prasrvenkat/openhours/internal/config"
	"github.com/prasrvenkat/openhours/internal/logger"
)

const (
	exitClosed    = 1
	exitNoFit     = 2
	exitMalformed = 3
	exitUsage     = 64
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr, time.Now); err != nil {
		var coder interface{ ExitCode() int }
		if errors.As(err, &coder) {
			if msg := err.Error(); msg != "" {
				fmt.Fprintf(os.Stderr, "error: %s\n", msg)
			}
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// exitError carries a process exit status. A nil err exits silently.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func (e *exitError) ExitCode() int { return e.code }

func usageError(format string, args ...any) error {
	return &exitError{code: exitUsage, err: fmt.Errorf(format, args...)}
}

// command is one subcommand of the tool.
type command struct {
	summary string
	// flags registers command-specific flags.
	flags func(fs *pflag.FlagSet, opts *options)
	run   func(env *environment) error
}

var commands = map[string]command{
	"check": {
		summary: "parse the expression and print its canonical form",
		run:     runCheck,
	},
	"show": {
		summary: "list the merged open intervals of the week",
		run:     runShow,
	},
	"match": {
		summary: "print whether the schedule is open at --at",
		run:     runMatch,
	},
	"next": {
		summary: "print the next opening or closing after --at",
		run:     runNext,
	},
	"when": {
		summary: "print the earliest start of an activity lasting --for",
		flags: func(fs *pflag.FlagSet, opts *options) {
			fs.DurationVar(&opts.duration, "for", time.Hour, "length of the activity")
		},
		run: runWhen,
	},
	"transitions": {
		summary: "list upcoming openings and closings",
		flags: func(fs *pflag.FlagSet, opts *options) {
			fs.IntVar(&opts.count, "count", 5, "number of transitions to print")
		},
		run: runTransitions,
	},
}

// options holds the parsed flag values.
type options struct {
	configPath string
	name       string
	at         string
	json       bool
	duration   time.Duration
	count      int
}

// environment is everything a command needs to run.
type environment struct {
	schedule *openhours.Schedule
	expr     string
	at       time.Time
	opts     options
	out      *printer
	log      *zap.Logger
}

func run(args []string, stdout, stderr io.Writer, now func() time.Time) error {
	if len(args) == 0 {
		printUsage(stderr)
		return &exitError{code: exitUsage}
	}
	name := args[0]
	if name == "help" || name == "-h" || name == "--help" {
		printUsage(stdout)
		return nil
	}
	cmd, ok := commands[name]
	if !ok {
		printUsage(stderr)
		return usageError("unknown command %q", name)
	}

	var opts options
	flagSet := pflag.NewFlagSet("openhours "+name, pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	flagSet.StringP("schedule", "s", "", "opening-hours expression, e.g. \"mo-fr 09:00-17:00\"")
	flagSet.StringVarP(&opts.name, "name", "n", "", "name of a schedule from the config file")
	flagSet.StringVar(&opts.at, "at", "", "instant to evaluate at (RFC 3339 or \"2006-01-02 15:04[:05]\"), default now")
	flagSet.BoolVar(&opts.json, "json", false, "print JSON instead of text")
	flagSet.String("log-level", "", "log level: debug, info, warn or error")
	flagSet.String("timezone", "", "IANA time zone for --at and output, default local")
	if cmd.flags != nil {
		cmd.flags(flagSet, &opts)
	}

	if err := flagSet.Parse(args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return &exitError{code: exitUsage, err: err}
	}
	if flagSet.NArg() > 0 {
		return usageError("unexpected argument: %s", flagSet.Arg(0))
	}
	if flagSet.Changed("schedule") && opts.name != "" {
		return usageError("--schedule and --name are mutually exclusive")
	}

	cfg, err := config.Load(opts.configPath, flagSet)
	if err != nil {
		return err
	}
	log, err := logger.NewZapLogger(cfg.LogLevel, cfg.Env)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	expr, err := cfg.Resolve(opts.name)
	if err != nil {
		return &exitError{code: exitUsage, err: err}
	}
	schedule, err := openhours.ParseSchedule(expr)
	if err != nil {
		log.Warn("malformed schedule", zap.String("schedule", expr), zap.Error(err))
		var oerr *openhours.Error
		if errors.As(err, &oerr) {
			fmt.Fprintln(stderr, oerr.DisplayRich())
			return &exitError{code: exitMalformed}
		}
		return &exitError{code: exitMalformed, err: err}
	}

	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("loading time zone: %w", err)
	}
	at := now().In(loc)
	if opts.at != "" {
		at, err = parseAt(opts.at, loc)
		if err != nil {
			return &exitError{code: exitUsage, err: err}
		}
	}

	log.Debug("evaluating schedule",
		zap.String("command", name),
		zap.String("schedule", expr),
		zap.String("canonical", schedule.String()),
		zap.Time("at", at),
	)

	return cmd.run(&environment{
		schedule: schedule,
		expr:     expr,
		at:       at,
		opts:     opts,
		out:      &printer{w: stdout, json: opts.json},
		log:      log,
	})
}

var atLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// parseAt reads an RFC 3339 instant, or a wall-clock time in loc.
func parseAt(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range atLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse --at %q: want RFC 3339 or \"2006-01-02 15:04[:05]\"", s)
}

func printUsage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(w, "Usage: openhours <command> [flags]\n\nCommands:\n")
	for _, name := range names {
		fmt.Fprintf(w, "  %-12s %s\n", name, commands[name].summary)
	}
	fmt.Fprintf(w, "\nRun 'openhours <command> --help' for the flags of a command.\n")
}
