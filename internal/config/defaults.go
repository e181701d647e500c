package config

import "slices"

// ApplyDefaults fills zero-valued settings. Explicit values are kept.
func (c *Config) ApplyDefaults() {
	if len(c.Assets.Extensions) == 0 {
		c.Assets.Extensions = []string{".ttf"}
	}
	if c.Build.Outdir == "" {
		c.Build.Outdir = "dist"
	}
	c.Build.Format = NormalizeOutputFormat(string(c.Build.Format))
	c.Logging.Level = NormalizeLogLevel(string(c.Logging.Level))
	c.Logging.Format = NormalizeLogFormat(string(c.Logging.Format))
	c.Build.EntryPoints = slices.DeleteFunc(c.Build.EntryPoints, func(s string) bool { return s == "" })
}
