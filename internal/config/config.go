// Package config loads driver settings for the bandratio command from a YAML
// file and BANDRATIO_* environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/cwbudde/algo-bandratio/measure/bandratio"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding file values.
const (
	EnvMinMicron    = "BANDRATIO_MIN_MICRON"
	EnvMaxMicron    = "BANDRATIO_MAX_MICRON"
	EnvFeatureStart = "BANDRATIO_FEATURE_START"
	EnvDataDir      = "BANDRATIO_DATA_DIR"
)

// Window is the full-band wavelength window in microns.
type Window struct {
	MinMicron float64 `yaml:"min_micron"`
	MaxMicron float64 `yaml:"max_micron"`
}

// Config holds the driver settings.
type Config struct {
	Window             Window  `yaml:"window"`
	FeatureStartMicron float64 `yaml:"feature_start_micron"`
	DataDir            string  `yaml:"data_dir,omitempty"`
	PlotDir            string  `yaml:"plot_dir,omitempty"`
	Report             string  `yaml:"report,omitempty"`
	Database           string  `yaml:"database,omitempty"`
}

// Default returns the driver defaults, matching bandratio.DefaultConfig.
func Default() Config {
	def := bandratio.DefaultConfig()

	return Config{
		Window: Window{
			MinMicron: def.MinMicron,
			MaxMicron: def.MaxMicron,
		},
		FeatureStartMicron: def.FeatureStartMicron,
	}
}

// Load reads filename on top of the defaults and applies environment
// overrides. An empty filename skips the file. Keys missing from the file
// keep their defaults.
func Load(filename string) (Config, error) {
	cfg := Default()

	if filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil {
			return Config{}, err
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", filename, err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ApplyEnv overrides fields from the environment. lookup has the signature of
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	floats := []struct {
		key string
		dst *float64
	}{
		{EnvMinMicron, &c.Window.MinMicron},
		{EnvMaxMicron, &c.Window.MaxMicron},
		{EnvFeatureStart, &c.FeatureStartMicron},
	}

	for _, f := range floats {
		v, ok := lookup(f.key)
		if !ok || v == "" {
			continue
		}

		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: %s: %w", f.key, err)
		}

		*f.dst = x
	}

	if v, ok := lookup(EnvDataDir); ok && v != "" {
		c.DataDir = v
	}

	return nil
}

// Calculator returns the calculator configuration.
func (c Config) Calculator() bandratio.Config {
	return bandratio.Config{
		MinMicron:          c.Window.MinMicron,
		MaxMicron:          c.Window.MaxMicron,
		FeatureStartMicron: c.FeatureStartMicron,
	}
}

// Options returns the calculator settings as functional options.
func (c Config) Options() []bandratio.Option {
	return []bandratio.Option{
		bandratio.WithWindow(c.Window.MinMicron, c.Window.MaxMicron),
		bandratio.WithFeatureStart(c.FeatureStartMicron),
	}
}

// Validate checks the calculator part of the configuration.
func (c Config) Validate() error {
	return c.Calculator().Validate()
}

// Write stores c as YAML.
func Write(filename string, c Config) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0o644)
}
