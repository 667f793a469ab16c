// Package main is the entry point for the gapedit terminal editor.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/dshills/gapedit/internal/app"
	"github.com/dshills/gapedit/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

type flags struct {
	configs   []string
	overrides []string
	script    string
	logFile   string
	logLevel  string
	readOnly  bool
}

func run() int {
	f, ok := parseFlags()
	if !ok {
		return 2
	}

	logger, closeLog, err := newLogger(f.logFile, f.logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := app.Options{
		ConfigFiles: f.configs,
		Overrides:   f.overrides,
		ReadOnly:    f.readOnly,
		Watch:       true,
		Logger:      logger,
	}
	if pflag.NArg() > 0 {
		opts.File = pflag.Arg(0)
	}

	application, err := app.New(ctx, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	if f.script != "" {
		if err := application.RunScript(ctx, f.script, os.Stderr); err != nil {
			fmt.Fprintf(os.Stderr, "Error: script %s: %v\n", f.script, err)
			return 1
		}
	}

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(term); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	if err := application.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() (flags, bool) {
	var f flags
	var showVersion bool

	pflag.StringSliceVarP(&f.configs, "config", "c", nil, "Configuration file (TOML or YAML); may be repeated")
	pflag.StringArrayVar(&f.overrides, "set", nil, "Override a setting, e.g. --set editor.tabWidth=8; may be repeated")
	pflag.StringVar(&f.script, "script", "", "Lua script to run against the buffer before the editor starts")
	pflag.StringVar(&f.logFile, "log-file", "", "Write logs to this file; logging is off when empty")
	pflag.StringVar(&f.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pflag.BoolVarP(&f.readOnly, "readonly", "R", false, "Open the file read-only")
	pflag.BoolVarP(&showVersion, "version", "v", false, "Show version information")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "gapedit - a gap buffer text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: gapedit [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys: Ctrl-S save, Ctrl-Q quit, Ctrl-Z undo, Ctrl-Y redo\n")
	}
	pflag.Parse()

	if showVersion {
		fmt.Printf("gapedit %s (commit %s, built %s)\n", version, commit, date)
		os.Exit(0)
	}
	if pflag.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "Error: at most one file may be given\n")
		pflag.Usage()
		return f, false
	}
	return f, true
}

// newLogger opens the log file. The terminal belongs to the editor, so
// logs never go to stderr.
func newLogger(path, level string) (*slog.Logger, func(), error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q", level)
	}
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	// Several sessions may append to one file.
	logger := slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: lvl})).
		With("session", uuid.NewString())
	return logger, func() { _ = file.Close() }, nil
}
