package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/rawassets/internal/foundation/errors"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "rawassets.yaml"

// Config represents the application configuration.
type Config struct {
	Assets  AssetsConfig  `yaml:"assets"`
	Build   BuildConfig   `yaml:"build"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics,omitempty"`
}

// AssetsConfig selects which module requests are inlined as byte buffers.
type AssetsConfig struct {
	Extensions []string `yaml:"extensions"`
}

// BuildConfig describes the bundle produced by the build and watch commands.
type BuildConfig struct {
	EntryPoints []string     `yaml:"entry_points"`
	Outdir      string       `yaml:"outdir"`
	Format      OutputFormat `yaml:"format"`
	Minify      bool         `yaml:"minify"`
	Sourcemap   bool         `yaml:"sourcemap"`
	External    []string     `yaml:"external,omitempty"`
	WatchDirs   []string     `yaml:"watch_dirs,omitempty"` // Defaults to the entry points' directories
}

// LoggingConfig represents logger settings.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig controls the Prometheus endpoint exposed in watch mode.
type MetricsConfig struct {
	Listen string `yaml:"listen,omitempty"` // e.g. ":9464"; empty disables the endpoint
}

// Load loads configuration from the specified file, expanding ${VAR}
// references against the environment (after .env files are applied), then
// applies defaults and validates the result.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		fmt.Fprintf(os.Stderr, "Note: .env file not found or couldn't be loaded: %v\n", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigError("configuration file not found").
				WithContext("path", configPath).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			Fatal().
			WithContext("path", configPath).
			Build()
	}

	return Parse([]byte(os.ExpandEnv(string(data))))
}

// Parse decodes YAML configuration, applies defaults and validates it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").Fatal().Build()
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ResolvedWatchDirs returns the directories watched for changes.
func (c *Config) ResolvedWatchDirs() []string {
	if len(c.Build.WatchDirs) > 0 {
		return c.Build.WatchDirs
	}
	seen := make(map[string]struct{}, len(c.Build.EntryPoints))
	dirs := make([]string, 0, len(c.Build.EntryPoints))
	for _, entry := range c.Build.EntryPoints {
		dir := filepath.Dir(entry)
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	return dirs
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	example := Default()
	example.Build.EntryPoints = []string{"src/main.js"}
	example.Assets.Extensions = []string{".ttf", ".otf"}

	data, err := yaml.Marshal(example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}
