package bandratio

import (
	"fmt"
	"math"
)

// Default wavelength window and feature start, in microns.
const (
	DefaultMinMicron          = 1.4
	DefaultMaxMicron          = 1.69
	DefaultFeatureStartMicron = 1.626
)

// Config holds the wavelength constants of a measurement. It is a plain
// value; a Calculator keeps its own copy.
type Config struct {
	// MinMicron is the inclusive lower bound of the analysis window.
	MinMicron float64
	// MaxMicron is the exclusive upper bound of the analysis window.
	MaxMicron float64
	// FeatureStartMicron is the nominal start of the narrow feature. It is a
	// lookup key for the boundary search, not a cutoff.
	FeatureStartMicron float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the window 1.4–1.69 µm with the feature at 1.626 µm.
func DefaultConfig() Config {
	return Config{
		MinMicron:          DefaultMinMicron,
		MaxMicron:          DefaultMaxMicron,
		FeatureStartMicron: DefaultFeatureStartMicron,
	}
}

// WithWindow sets the analysis window [lo, hi).
func WithWindow(lo, hi float64) Option {
	return func(cfg *Config) {
		cfg.MinMicron = lo
		cfg.MaxMicron = hi
	}
}

// WithFeatureStart sets the nominal feature start wavelength.
func WithFeatureStart(micron float64) Option {
	return func(cfg *Config) {
		cfg.FeatureStartMicron = micron
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// Validate reports whether cfg describes a usable window.
func (c Config) Validate() error {
	for _, v := range []float64{c.MinMicron, c.MaxMicron, c.FeatureStartMicron} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite wavelength %v", ErrInvalidConfig, v)
		}
	}

	if c.MinMicron >= c.MaxMicron {
		return fmt.Errorf("%w: window [%v, %v) is empty", ErrInvalidConfig, c.MinMicron, c.MaxMicron)
	}

	return nil
}
