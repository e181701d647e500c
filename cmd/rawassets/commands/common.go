package commands

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/rawassets/internal/config"
)

// Global carries state shared by every subcommand.
type Global struct {
	// Out receives user-facing command output. Logs go to stderr.
	Out io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"rawassets.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Init      InitCmd      `cmd:"" help:"Initialize a new configuration file"`
	Transform TransformCmd `cmd:"" help:"Run the raw-asset transform on a single module id"`
	Build     BuildCmd     `cmd:"" help:"Bundle the configured entry points with assets inlined"`
	Watch     WatchCmd     `cmd:"" help:"Rebuild the bundle whenever sources or assets change"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := config.LogLevelInfo
	if c.Verbose {
		level = config.LogLevelDebug
	}
	slog.SetDefault(newLogger(level, config.LogFormatText, os.Stderr))
	return nil
}

func newLogger(level config.LogLevel, format config.LogFormat, w io.Writer) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogLevelDebug:
		lvl = slog.LevelDebug
	case config.LogLevelWarn:
		lvl = slog.LevelWarn
	case config.LogLevelError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// loadConfig loads the root configuration and applies its logging section.
// --verbose keeps debug logging regardless of the file.
func loadConfig(root *CLI) (*config.Config, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, err
	}
	if !root.Verbose {
		slog.SetDefault(newLogger(cfg.Logging.Level, cfg.Logging.Format, os.Stderr))
	}
	return cfg, nil
}

// projectDir is the directory relative entry points and outdir resolve against.
func projectDir(root *CLI) string {
	return filepath.Dir(root.Config)
}
