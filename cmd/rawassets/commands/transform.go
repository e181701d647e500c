package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/rawassets/internal/config"
	"git.home.luguber.info/inful/rawassets/internal/plugin"
	"git.home.luguber.info/inful/rawassets/internal/rawasset"
)

// TransformCmd implements the 'transform' command.
type TransformCmd struct {
	ID   string   `arg:"" name:"id" help:"Module id (file path) to transform"`
	Ext  []string `short:"e" name:"ext" help:"Allow-listed extension, repeatable (overrides config)"`
	JSON bool     `name:"json" help:"Print the result as {\"code\",\"map\"} JSON"`
}

func (t *TransformCmd) Run(g *Global, root *CLI) error {
	exts, err := t.extensions(root)
	if err != nil {
		return err
	}
	res, err := rawasset.NewTransformer(exts, rawasset.WithLogger(slog.Default())).Transform(nil, t.ID)
	if err != nil {
		return err
	}
	return printResult(g.out(), t.ID, res, t.JSON)
}

// extensions picks the allow-list: --ext flags, then the config file when it
// exists, then the built-in default.
func (t *TransformCmd) extensions(root *CLI) (rawasset.Extensions, error) {
	if len(t.Ext) > 0 {
		return rawasset.NewExtensions(t.Ext)
	}
	if _, err := os.Stat(root.Config); err == nil {
		cfg, err := loadConfig(root)
		if err != nil {
			return rawasset.Extensions{}, err
		}
		return rawasset.NewExtensions(cfg.Assets.Extensions)
	}
	return rawasset.NewExtensions(config.Default().Assets.Extensions)
}

func printResult(out io.Writer, id string, res plugin.Result, asJSON bool) error {
	tr, ok := plugin.IsTransformed(res)
	if asJSON {
		if !ok {
			_, err := fmt.Fprintln(out, "null")
			return err
		}
		return json.NewEncoder(out).Encode(tr)
	}
	if !ok {
		_, err := fmt.Fprintf(out, "%s: no transform (extension not allow-listed)\n", id)
		return err
	}
	_, err := fmt.Fprintln(out, tr.Code)
	return err
}
