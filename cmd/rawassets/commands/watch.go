package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/rawassets/internal/build"
	derrors "git.home.luguber.info/inful/rawassets/internal/foundation/errors"
	"git.home.luguber.info/inful/rawassets/internal/metrics"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	MetricsListen string        `name:"metrics-listen" help:"Serve Prometheus metrics on this address (overrides metrics.listen)"`
	Debounce      time.Duration `help:"Quiet period before a rebuild starts" default:"200ms"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if w.MetricsListen != "" {
		cfg.Metrics.Listen = w.MetricsListen
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	reg := prom.NewRegistry()
	svc := build.NewBuildService().
		WithLogger(slog.Default()).
		WithRecorder(metrics.NewPrometheusRecorder(reg))

	if cfg.Metrics.Listen != "" {
		_, stop, err := serveMetrics(ctx, cfg.Metrics.Listen, reg)
		if err != nil {
			return err
		}
		defer stop()
	}

	out := g.out()
	watcher := build.NewWatcher(svc, build.BuildRequest{Config: cfg, WorkingDir: projectDir(root)}, cfg.ResolvedWatchDirs()).
		WithLogger(slog.Default()).
		WithDebounce(w.Debounce).
		OnBuild(func(res *build.BuildResult, err error) { printWatchBuild(out, res, err) })

	_, _ = fmt.Fprintln(out, "Watching for changes (Ctrl+C to stop)")
	return watcher.Run(ctx)
}

func printWatchBuild(out io.Writer, res *build.BuildResult, err error) {
	if err != nil {
		_, _ = fmt.Fprintf(out, "Build failed: %v\n", err)
		return
	}
	_, _ = fmt.Fprintf(out, "Rebuilt %d file(s) in %s\n", len(res.OutputFiles), res.Duration.Round(time.Millisecond))
}

// serveMetrics binds addr up front so a busy port fails the command instead
// of surfacing later from a goroutine. It returns the bound address and a func
// that shuts the server down.
func serveMetrics(ctx context.Context, addr string, reg *prom.Registry) (string, func(), error) {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return "", nil, derrors.RuntimeError("failed to bind metrics listener").
			WithCause(err).
			WithContext("addr", addr).
			Build()
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", "error", err)
		}
	}()
	bound := ln.Addr().String()
	slog.Info("Metrics endpoint listening", "addr", bound)

	return bound, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("Metrics server shutdown failed", "error", err)
		}
	}, nil
}
