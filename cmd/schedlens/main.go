package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/schedlens/schedlens/internal/config"
	"github.com/schedlens/schedlens/internal/live"
	"github.com/schedlens/schedlens/internal/metrics"
	"github.com/schedlens/schedlens/internal/report"
	"github.com/schedlens/schedlens/internal/trace"
)

const usageText = `Usage: schedlens [flags] <execution-file>

Computes throughput and the average waiting, turnaround and response times
from a scheduling simulator execution table.

Flags:
  -config string   path to YAML config file
  -format string   output format: text | json | prom
  -details         include the per-process breakdown table
  -watch           recompute whenever the trace file changes
  -listen string   serve /metrics, /api/metrics and /ws/stream on this
                   address while watching (implies -watch)
  -v               enable debug logging
`

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	format := flag.String("format", "", "output format: text | json | prom")
	details := flag.Bool("details", false, "include the per-process breakdown table")
	watch := flag.Bool("watch", false, "recompute whenever the trace file changes")
	listen := flag.String("listen", "", "HTTP address for live metrics (implies -watch)")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usageText) }
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	// stdout carries the report; logs go to stderr.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if flag.NArg() != 1 {
		flag.Usage()
		return // wrong argument count is not fatal
	}
	tracePath := flag.Arg(0)

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			slog.Error("failed to load config", "err", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// Flags override the config file.
	if *format != "" {
		cfg.Report.Format = *format
	}
	if *details {
		cfg.Report.Details = true
	}
	if *watch {
		cfg.Watch.Enabled = true
	}
	if *listen != "" {
		cfg.Watch.Listen = *listen
		cfg.Watch.Enabled = true
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	if !cfg.Watch.Enabled {
		os.Exit(runOnce(tracePath, cfg))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := runWatch(ctx, tracePath, cfg)
	cancel()
	os.Exit(code)
}

// runOnce parses the trace, computes the metrics and renders them once.
// Returns the process exit code.
func runOnce(path string, cfg *config.Config) int {
	transitions, err := trace.ParseFile(path, trace.Options{Strict: cfg.Trace.Strict})
	if err != nil {
		slog.Error("failed to parse trace", "path", path, "err", err)
		return 1
	}
	if len(transitions) == 0 {
		fmt.Println("No valid transitions found in file - check format.")
		return 0
	}

	res, err := metrics.Compute(transitions)
	if err != nil {
		if errors.Is(err, metrics.ErrNoCompletedProcesses) {
			slog.Error("no process reached TERMINATED - file may be empty or malformed", "path", path)
		} else {
			slog.Error("failed to compute metrics", "err", err)
		}
		return 1
	}

	if err := render(os.Stdout, path, res, cfg); err != nil {
		slog.Error("failed to render report", "err", err)
		return 1
	}
	return 0
}

// runWatch recomputes on every change to the trace file and, when
// configured, serves the latest result over HTTP. Errors in individual
// recomputations are logged, not fatal — the file is being rewritten
// underneath us and the next write usually repairs it.
func runWatch(ctx context.Context, path string, cfg *config.Config) int {
	latest := live.NewLatest()
	hub := live.NewHub(latest)

	recompute := func() {
		transitions, err := trace.ParseFile(path, trace.Options{Strict: cfg.Trace.Strict})
		if err != nil {
			slog.Error("failed to parse trace", "path", path, "err", err)
			return
		}
		if len(transitions) == 0 {
			slog.Warn("no valid transitions in file", "path", path)
			return
		}
		res, err := metrics.Compute(transitions)
		if err != nil {
			slog.Error("failed to compute metrics", "path", path, "err", err)
			return
		}
		latest.Set(path, res)
		hub.Publish()
		if err := render(os.Stdout, path, res, cfg); err != nil {
			slog.Error("failed to render report", "err", err)
		}
	}

	recompute()

	if cfg.Watch.Listen != "" {
		srv := live.NewServer(cfg.Watch.Listen, latest, hub)
		go func() {
			if err := srv.Run(ctx); err != nil {
				slog.Error("live: http server stopped", "err", err)
			}
		}()
	}

	if err := live.Watch(ctx, path, cfg.Watch.Debounce, recompute); err != nil {
		slog.Error("watcher stopped", "err", err)
		return 1
	}
	return 0
}

// render writes res to w in the configured format.
func render(w io.Writer, name string, res *metrics.Result, cfg *config.Config) error {
	switch cfg.Report.Format {
	case config.FormatJSON:
		return report.RenderJSON(w, name, res)
	case config.FormatProm:
		return report.RenderProm(w, res)
	default:
		if err := report.Render(w, name, res); err != nil {
			return err
		}
		if cfg.Report.Details {
			report.RenderDetails(w, res)
		}
		return nil
	}
}
