package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/rawassets/cmd/rawassets/commands"
	"git.home.luguber.info/inful/rawassets/internal/foundation/errors"
	"git.home.luguber.info/inful/rawassets/internal/version"
)

func main() {
	cli := &commands.CLI{}
	global := &commands.Global{Out: os.Stdout}

	ctx := kong.Parse(cli,
		kong.Name("rawassets"),
		kong.Description("Inline raw binary assets (fonts and friends) into JavaScript bundles"),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	if err := ctx.Run(global, cli); err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
