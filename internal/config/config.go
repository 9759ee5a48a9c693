// Package config loads mappages settings from an optional YAML file, the
// environment and command line overrides.
package config

import (
	"errors"
	"fmt"
	"os"

	ferrors "git.home.luguber.info/inful/mappages/internal/foundation/errors"
	"git.home.luguber.info/inful/mappages/internal/mappage"
	"git.home.luguber.info/inful/mappages/internal/render"
	"gopkg.in/yaml.v3"
)

// Defaults used when neither the config file nor flags name a value.
const (
	DefaultConfigFile  = "mappages.yaml"
	DefaultCatalogPath = "triplea_maps.yaml"
	DefaultOutputDir   = "_maps"
)

// Config represents the application configuration.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Page    PageConfig    `yaml:"page"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// InputConfig describes the map catalog.
type InputConfig struct {
	Path string `yaml:"path"`
	// TolerateParseErrors logs a malformed catalog and ends the run
	// successfully without writing any page.
	TolerateParseErrors bool `yaml:"tolerate_parse_errors"`
}

// OutputConfig describes where and how pages are written.
type OutputConfig struct {
	Directory   string          `yaml:"directory"`
	CreateDir   bool            `yaml:"create_dir"`
	OnDuplicate DuplicatePolicy `yaml:"on_duplicate"`
	BodyFormat  render.Format   `yaml:"body_format"`
	Fingerprint bool            `yaml:"fingerprint"`
}

// PageConfig tunes derived page fields.
type PageConfig struct {
	// TitleSuffix is appended to the map name. nil means mappage.DefaultTitleSuffix,
	// an explicit empty string disables the suffix.
	TitleSuffix *string `yaml:"title_suffix"`
}

// MetricsConfig configures the Prometheus textfile written after each run.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// Overrides carries command line and environment values. Empty fields keep
// the configured value.
type Overrides struct {
	Input       string
	Output      string
	OnDuplicate string
	MetricsFile string
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the configuration file at path. A missing file yields the
// defaults unless required is set.
func Load(path string, required bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return Default(), nil
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read config file").
			Fatal().
			WithContext(ferrors.ContextPath, path).
			Build()
	}

	cfg, err := Parse(data)
	if err != nil {
		if _, ok := ferrors.AsClassified(err); ok {
			return nil, err
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "invalid config file").
			Fatal().
			WithContext(ferrors.ContextPath, path).
			Build()
	}
	return cfg, nil
}

// Parse decodes configuration YAML, expanding ${VAR} references from the
// environment first, then applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Apply merges o into the configuration and validates the result.
func (c *Config) Apply(o Overrides) error {
	if o.Input != "" {
		c.Input.Path = o.Input
	}
	if o.Output != "" {
		c.Output.Directory = o.Output
	}
	if o.OnDuplicate != "" {
		c.Output.OnDuplicate = DuplicatePolicy(o.OnDuplicate)
	}
	if o.MetricsFile != "" {
		c.Metrics.Textfile = o.MetricsFile
	}
	return c.Validate()
}

// Validate normalizes enum fields in place and reports invalid values as
// config errors.
func (c *Config) Validate() error {
	policy, err := NormalizeDuplicatePolicy(string(c.Output.OnDuplicate))
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "invalid output.on_duplicate").Fatal().Build()
	}
	c.Output.OnDuplicate = policy

	format, err := NormalizeBodyFormat(string(c.Output.BodyFormat))
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "invalid output.body_format").Fatal().Build()
	}
	c.Output.BodyFormat = format

	if c.Input.Path == "" {
		return ferrors.ConfigError("input.path must not be empty").Build()
	}
	if c.Output.Directory == "" {
		return ferrors.ConfigError("output.directory must not be empty").Build()
	}
	return nil
}

// TitleSuffix returns the effective title suffix.
func (c *Config) TitleSuffix() string {
	if c.Page.TitleSuffix == nil {
		return mappage.DefaultTitleSuffix
	}
	return *c.Page.TitleSuffix
}

func (c *Config) applyDefaults() {
	if c.Input.Path == "" {
		c.Input.Path = DefaultCatalogPath
	}
	if c.Output.Directory == "" {
		c.Output.Directory = DefaultOutputDir
	}
	if c.Output.OnDuplicate == "" {
		c.Output.OnDuplicate = DuplicateOverwrite
	}
	if c.Output.BodyFormat == "" {
		c.Output.BodyFormat = render.FormatText
	}
}
