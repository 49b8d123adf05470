package bandratio

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-bandratio/spectrum"
)

// Result holds one object's measurement together with the tables it was
// derived from, for plotting and reporting.
type Result struct {
	Object       string
	Ratio        float64
	FullArea     float64
	FeatureArea  float64
	FeatureIndex int // index in FullBand where Feature begins
	FullBand     *spectrum.Table
	Feature      *spectrum.Table
}

// Calculator measures band ratios under one immutable Config. It holds no
// other state and is safe for concurrent use.
type Calculator struct {
	cfg Config
}

// NewCalculator creates a calculator from the default config and opts.
func NewCalculator(opts ...Option) (*Calculator, error) {
	return FromConfig(ApplyOptions(opts...))
}

// FromConfig creates a calculator for cfg.
func FromConfig(cfg Config) (*Calculator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Calculator{cfg: cfg}, nil
}

// FindRatio is a one-shot measurement of raw samples.
func FindRatio(samples []spectrum.Sample, opts ...Option) (float64, error) {
	calc, err := NewCalculator(opts...)
	if err != nil {
		return 0, err
	}

	res, err := calc.Compute(spectrum.Object{Samples: samples})
	if err != nil {
		return 0, err
	}

	return res.Ratio, nil
}

// Config returns the calculator's configuration.
func (c *Calculator) Config() Config {
	return c.cfg
}

// ProcessSpectrum windows and sorts raw samples and attaches the full-band
// continuum.
func (c *Calculator) ProcessSpectrum(samples []spectrum.Sample) (*spectrum.Table, error) {
	band, err := spectrum.Window(samples, c.cfg.MinMicron, c.cfg.MaxMicron)
	if err != nil {
		return nil, &Error{Stage: StageWindow, Err: err}
	}

	band, err = band.FitContinuum()
	if err != nil {
		return nil, &Error{Stage: StageContinuum, Err: err}
	}

	return band, nil
}

// FeatureBand extracts the feature sub-band from a processed band and fits
// its own continuum. The result is a suffix of band.
func (c *Calculator) FeatureBand(band *spectrum.Table) (*spectrum.Table, error) {
	feature, _, err := c.featureBand(band)
	return feature, err
}

func (c *Calculator) featureBand(band *spectrum.Table) (*spectrum.Table, int, error) {
	idx, err := FeatureStart(band.Wavelengths(), c.cfg.FeatureStartMicron)
	if err != nil {
		return nil, -1, &Error{Stage: StageFeature, Err: err}
	}

	feature, err := band.Suffix(idx).FitContinuum()
	if err != nil {
		return nil, -1, &Error{Stage: StageFeature, Err: err}
	}

	return feature, idx, nil
}

// Compute measures the feature-to-band area ratio of obj. Any failure is
// returned as a *Error naming obj.ID and the failing stage; no partial
// result is returned.
func (c *Calculator) Compute(obj spectrum.Object) (Result, error) {
	res, err := c.compute(obj.Samples)
	if err != nil {
		var be *Error
		if errors.As(err, &be) {
			be.Object = obj.ID
		}

		return Result{}, err
	}

	res.Object = obj.ID

	return res, nil
}

func (c *Calculator) compute(samples []spectrum.Sample) (Result, error) {
	band, err := c.ProcessSpectrum(samples)
	if err != nil {
		return Result{}, err
	}

	feature, idx, err := c.featureBand(band)
	if err != nil {
		return Result{}, err
	}

	fullArea, err := Area(band)
	if err != nil {
		return Result{}, &Error{Stage: StageArea, Err: err}
	}

	featureArea, err := Area(feature)
	if err != nil {
		return Result{}, &Error{Stage: StageArea, Err: err}
	}

	if fullArea == 0 || !isFinite(fullArea) {
		return Result{}, &Error{Stage: StageRatio, Err: ErrUndefinedRatio}
	}

	ratio := featureArea / fullArea
	if !isFinite(ratio) {
		return Result{}, &Error{Stage: StageRatio, Err: ErrUndefinedRatio}
	}

	return Result{
		Ratio:        ratio,
		FullArea:     fullArea,
		FeatureArea:  featureArea,
		FeatureIndex: idx,
		FullBand:     band,
		Feature:      feature,
	}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
