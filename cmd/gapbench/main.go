// Package main is the entry point for gapbench, which measures the gap
// buffer against a plain slice on reproducible edit workloads.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"
	"github.com/tidwall/sjson"
	"golang.org/x/term"

	"github.com/dshills/gapedit/internal/app"
	"github.com/dshills/gapedit/internal/bench"
	"github.com/dshills/gapedit/internal/config"
	"github.com/dshills/gapedit/internal/engine"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configs   = pflag.StringSliceP("config", "c", nil, "Configuration file (TOML or YAML); may be repeated")
		overrides = pflag.StringArray("set", nil, "Override a setting, e.g. --set bench.operations=50000")
		workloads = pflag.StringSliceP("workload", "w", nil, "Workloads to run (typing, clustered, scattered); all when empty")
		script    = pflag.String("script", "", "Run this Lua script against an empty buffer instead of the workloads")
		format    = pflag.String("format", "auto", "Output format: auto, table or json")
		verbose   = pflag.BoolP("verbose", "V", false, "Log progress to stderr")
	)
	pflag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	settings, err := loadSettings(ctx, *configs, *overrides)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	asTable, err := tableOutput(*format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	if *script != "" {
		if err := runScript(ctx, *script, settings, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	selected, err := selectWorkloads(bench.Workloads(settings.Bench), *workloads)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	var results []bench.Result
	for _, w := range selected {
		logger.Info("running workload", "name", w.Name, "operations", w.Operations, "seed", w.Seed)
		res, err := bench.Run(ctx, w, settings.Buffer)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		logger.Info("workload done", "name", w.Name, "gap", res.Gap, "slice", res.Slice)
		results = append(results, res)
	}

	if asTable {
		err = writeTable(os.Stdout, results)
	} else {
		err = writeJSON(os.Stdout, settings, results)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func loadSettings(ctx context.Context, files, overrides []string) (config.Settings, error) {
	var opts []config.Option
	for _, f := range files {
		opts = append(opts, config.WithFile(f))
	}
	c := config.New(opts...)
	if err := c.Load(ctx); err != nil {
		return config.Settings{}, err
	}
	for _, o := range overrides {
		if err := c.SetString(o); err != nil {
			return config.Settings{}, err
		}
	}
	return c.Settings()
}

// tableOutput resolves the output format; auto picks a table when stdout
// is a terminal.
func tableOutput(format string) (bool, error) {
	switch format {
	case "auto":
		return term.IsTerminal(int(os.Stdout.Fd())), nil
	case "table":
		return true, nil
	case "json":
		return false, nil
	}
	return false, fmt.Errorf("unknown format %q", format)
}

func selectWorkloads(all []bench.Workload, names []string) ([]bench.Workload, error) {
	if len(names) == 0 {
		return all, nil
	}
	var out []bench.Workload
	for _, name := range names {
		found := false
		for _, w := range all {
			if strings.EqualFold(w.Name, name) {
				out = append(out, w)
				found = true
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown workload %q", name)
		}
	}
	return out, nil
}

func writeTable(w io.Writer, results []bench.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "workload\tops\tfinal len\tgap\tslice\tspeedup\t")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\t%.1fx\t\n",
			r.Workload, r.Operations, r.FinalLen,
			r.Gap.Round(time.Microsecond), r.Slice.Round(time.Microsecond), r.Speedup())
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, s config.Settings, results []bench.Result) error {
	doc := []byte(`{}`)
	var err error
	set := func(path string, v any) {
		if err == nil {
			doc, err = sjson.SetBytes(doc, path, v)
		}
	}

	set("settings.growIncrement", s.Buffer.GrowIncrement)
	set("settings.pooled", s.Buffer.Pooled)
	set("settings.seed", s.Bench.Seed)
	set("settings.locality", s.Bench.Locality)
	set("results", []any{})
	for i, r := range results {
		p := fmt.Sprintf("results.%d.", i)
		set(p+"workload", r.Workload)
		set(p+"operations", r.Operations)
		set(p+"finalLen", r.FinalLen)
		set(p+"gapNanos", r.Gap.Nanoseconds())
		set(p+"sliceNanos", r.Slice.Nanoseconds())
		set(p+"speedup", r.Speedup())
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", doc)
	return err
}

// runScript runs a Lua script against an empty engine and reports what it
// left behind.
func runScript(ctx context.Context, path string, s config.Settings, logger *slog.Logger) error {
	e := engine.New(app.EngineOptions(s, "")...)
	st, err := app.NewScriptState(s.Script, e, os.Stdout)
	if err != nil {
		return err
	}
	defer st.Close()

	start := time.Now()
	if err := st.DoFile(ctx, path); err != nil {
		return fmt.Errorf("script %s: %w", path, err)
	}
	stats := e.Stats()
	logger.Info("script done",
		"path", path,
		"elapsed", time.Since(start),
		"runes", e.Len(),
		"lines", e.LineCount(),
		"undo", e.UndoCount(),
		"gapStart", stats.GapStart,
		"gapLen", stats.GapLen)
	fmt.Fprintf(os.Stderr, "%s: %d runes, %d lines in %s\n", path, e.Len(), e.LineCount(), time.Since(start).Round(time.Microsecond))
	return nil
}
