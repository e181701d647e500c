package config

import (
	"strings"

	"git.home.luguber.info/inful/rawassets/internal/foundation/errors"
)

// Validate checks the configuration after defaults have been applied.
func (c *Config) Validate() error {
	for i, ext := range c.Assets.Extensions {
		if len(ext) < 2 || !strings.HasPrefix(ext, ".") {
			return errors.ConfigError("asset extensions must start with '.'").
				WithContext("extension", ext).
				WithContext("index", i).
				Build()
		}
	}
	if _, ok := outputFormats.lookup(string(c.Build.Format)); !ok {
		return errors.ConfigError("unsupported build format").
			WithContext("format", string(c.Build.Format)).
			WithContext("valid", strings.Join(outputFormats.validKeys(), ",")).
			Build()
	}
	if strings.TrimSpace(c.Build.Outdir) == "" {
		return errors.ConfigError("build outdir is required").Build()
	}
	return nil
}

// ValidateForBuild additionally requires at least one entry point.
func (c *Config) ValidateForBuild() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if len(c.Build.EntryPoints) == 0 {
		return errors.ConfigError("build.entry_points must list at least one file").Build()
	}
	return nil
}
