// Package config loads the optional essready configuration file and applies
// command-line overrides on top of it.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/esstools/essready/internal/errors"
	"github.com/esstools/essready/internal/healthcheck"
)

// Config is the file-backed configuration for a readiness run. Every field
// has a working default so the tool runs without any file present.
type Config struct {
	// Inventory is the path to a YAML inventory file. Empty means discovery
	// must come from another provider.
	Inventory string `yaml:"inventory"`

	// Probe carries the health-check client settings.
	Probe ProbeConfig `yaml:"probe"`

	// MinimumVersion is the lowest product version the upgrade supports.
	MinimumVersion string `yaml:"minimum_version"`

	// Format selects the report output format (text, json or yaml).
	Format string `yaml:"format"`
}

// ProbeConfig mirrors the health-check client settings in file form.
// Numeric fields are pointers so an explicit zero in the file is
// distinguishable from the field being absent.
type ProbeConfig struct {
	Protocol          string `yaml:"protocol"`
	Port              *int   `yaml:"port"`
	TimeoutSeconds    *int   `yaml:"timeout_seconds"`
	MaxRetries        *int   `yaml:"max_retries"`
	RetryDelaySeconds *int   `yaml:"retry_delay_seconds"`
}

// Default returns the configuration used when no file is present. Probe
// fields stay unset; ProbeSettings resolves them against the caller's base.
func Default() *Config {
	return &Config{
		MinimumVersion: "5.0.0.0",
		Format:         "text",
	}
}

// Load reads a configuration file and merges it over the defaults. A missing
// path returns the defaults; a named file that does not exist is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewFileNotFoundError(path)
		}
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed,
			fmt.Sprintf("failed to read config file: %s", path), err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewFileUnmarshalError(path, "yaml", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the probe client cannot work with.
func (c *Config) Validate() error {
	switch c.Probe.Protocol {
	case "", "http", "https":
	default:
		return errors.New(errors.ErrCodeConfigInvalid,
			fmt.Sprintf("unsupported protocol %q (use http or https)", c.Probe.Protocol))
	}
	if p := c.Probe.Port; p != nil && (*p < 0 || *p > 65535) {
		return errors.New(errors.ErrCodeConfigInvalid,
			fmt.Sprintf("port %d out of range", *p))
	}
	if t := c.Probe.TimeoutSeconds; t != nil && *t <= 0 {
		return errors.New(errors.ErrCodeConfigInvalid, "timeout must be positive")
	}
	if r := c.Probe.MaxRetries; r != nil && *r < 0 {
		return errors.New(errors.ErrCodeConfigInvalid, "max retries must not be negative")
	}
	if d := c.Probe.RetryDelaySeconds; d != nil && *d < 0 {
		return errors.New(errors.ErrCodeConfigInvalid, "retry delay must not be negative")
	}
	switch c.Format {
	case "", "text", "json", "yaml":
	default:
		return errors.New(errors.ErrCodeConfigInvalid,
			fmt.Sprintf("unknown format %q (supported: text, json, yaml)", c.Format))
	}
	return nil
}

// ProbeSettings lays the file values over the given base settings. The base
// carries the mode-specific defaults (single probe or batch sweep); only
// fields the file actually sets are overridden, so an explicit zero wins.
func (c *Config) ProbeSettings(base healthcheck.Config) healthcheck.Config {
	probe := base
	if c.Probe.Protocol != "" {
		probe.Protocol = c.Probe.Protocol
	}
	if c.Probe.Port != nil {
		probe.Port = *c.Probe.Port
	}
	if c.Probe.TimeoutSeconds != nil {
		probe.TimeoutSeconds = *c.Probe.TimeoutSeconds
	}
	if c.Probe.MaxRetries != nil {
		probe.MaxRetries = *c.Probe.MaxRetries
	}
	if c.Probe.RetryDelaySeconds != nil {
		probe.RetryDelaySeconds = *c.Probe.RetryDelaySeconds
	}
	return probe
}
