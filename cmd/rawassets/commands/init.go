package commands

import (
	"fmt"
	"io"

	"git.home.luguber.info/inful/rawassets/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	return RunInit(g.out(), root.Config, i.Force)
}

func RunInit(out io.Writer, configPath string, force bool) error {
	_, _ = fmt.Fprintf(out, "Writing configuration to %s\n", configPath)
	if err := config.Init(configPath, force); err != nil {
		_, _ = fmt.Fprintln(out, "Initialization failed")
		return err
	}
	_, _ = fmt.Fprintln(out, "initialized successfully")
	return nil
}
