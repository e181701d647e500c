package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/rawassets/internal/build"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Outdir string `short:"o" help:"Override build.outdir"`
	DryRun bool   `name:"dry-run" help:"Bundle without writing output files"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if b.Outdir != "" {
		cfg.Build.Outdir = b.Outdir
		slog.Info("Output directory overridden via CLI flag", "outdir", b.Outdir)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	svc := build.NewBuildService().WithLogger(slog.Default())
	res, err := svc.Run(ctx, build.BuildRequest{
		Config:     cfg,
		WorkingDir: projectDir(root),
		DryRun:     b.DryRun,
	})
	if err != nil {
		return err
	}
	printBuildResult(g.out(), res, b.DryRun)
	return nil
}

func printBuildResult(out io.Writer, res *build.BuildResult, dryRun bool) {
	verb := "Wrote"
	if dryRun {
		verb = "Bundled (dry run)"
	}
	_, _ = fmt.Fprintf(out, "%s %d file(s) in %s\n", verb, len(res.OutputFiles), res.Duration.Round(time.Millisecond))
	for _, path := range res.OutputFiles {
		if dryRun {
			_, _ = fmt.Fprintf(out, "  %s (%d bytes)\n", path, len(res.Contents[path]))
			continue
		}
		_, _ = fmt.Fprintf(out, "  %s\n", path)
	}
	for _, w := range res.Warnings {
		_, _ = fmt.Fprintf(out, "warning: %s\n", w)
	}
}
