// Package report turns band-ratio results into flat records and writes them
// as YAML reports or Parquet tables.
package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cwbudde/algo-bandratio/measure/bandratio"
	"github.com/parquet-go/parquet-go"
	"gonum.org/v1/gonum/floats"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for report paths with an unsupported extension.
var ErrUnknownFormat = errors.New("report: unknown format (want .yaml, .yml or .parquet)")

// Record is one object's outcome. Failed objects carry Error and zero
// measurements.
type Record struct {
	Object         string    `yaml:"object" parquet:"object"`
	Ratio          float64   `yaml:"ratio" parquet:"ratio"`
	FullArea       float64   `yaml:"full_area" parquet:"full_area"`
	FeatureArea    float64   `yaml:"feature_area" parquet:"feature_area"`
	FeatureStart   float64   `yaml:"feature_start_micron" parquet:"feature_start_micron"`
	FullSamples    int64     `yaml:"full_samples" parquet:"full_samples"`
	FeatureSamples int64     `yaml:"feature_samples" parquet:"feature_samples"`
	MaxDepth       float64   `yaml:"max_depth" parquet:"max_depth"`
	Stage          string    `yaml:"stage,omitempty" parquet:"stage,optional"`
	Error          string    `yaml:"error,omitempty" parquet:"error,optional"`
	ComputedAt     time.Time `yaml:"computed_at" parquet:"computed_at"`
}

// OK reports whether the record holds a measurement.
func (r Record) OK() bool {
	return r.Error == ""
}

// Config mirrors the calculator settings a report was produced with.
type Config struct {
	MinMicron          float64 `yaml:"min_micron"`
	MaxMicron          float64 `yaml:"max_micron"`
	FeatureStartMicron float64 `yaml:"feature_start_micron"`
	DataDir            string  `yaml:"data_dir,omitempty"`
	Timestamp          string  `yaml:"timestamp"`
}

// Report is the YAML document written for a run.
type Report struct {
	Config  Config   `yaml:"config"`
	Results []Record `yaml:"results"`
}

// NewReport starts a report for cfg.
func NewReport(cfg bandratio.Config, dataDir string, now time.Time) Report {
	return Report{
		Config: Config{
			MinMicron:          cfg.MinMicron,
			MaxMicron:          cfg.MaxMicron,
			FeatureStartMicron: cfg.FeatureStartMicron,
			DataDir:            dataDir,
			Timestamp:          now.UTC().Format(time.RFC3339),
		},
	}
}

// FromResult flattens a successful measurement.
func FromResult(res bandratio.Result, now time.Time) Record {
	rec := Record{
		Object:      res.Object,
		Ratio:       res.Ratio,
		FullArea:    res.FullArea,
		FeatureArea: res.FeatureArea,
		ComputedAt:  now.UTC(),
	}

	if res.FullBand != nil {
		rec.FullSamples = int64(res.FullBand.Len())
		if depth, err := res.FullBand.Depth(); err == nil && len(depth) > 0 {
			rec.MaxDepth = floats.Max(depth)
		}
	}

	if res.Feature != nil && res.Feature.Len() > 0 {
		rec.FeatureSamples = int64(res.Feature.Len())
		rec.FeatureStart = res.Feature.At(0).Wavelength
	}

	return rec
}

// Failed records a measurement error for object.
func Failed(object string, err error, now time.Time) Record {
	rec := Record{Object: object, Error: err.Error(), ComputedAt: now.UTC()}
	if stage, ok := bandratio.StageOf(err); ok {
		rec.Stage = string(stage)
	}

	return rec
}

// Write stores rep at path, choosing the format from the extension.
func Write(path string, rep Report) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return WriteYAML(path, rep)
	case ".parquet":
		return WriteParquet(path, rep.Results)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// WriteYAML writes rep as a YAML document, creating parent directories.
func WriteYAML(path string, rep Report) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	data, err := yaml.Marshal(rep)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}

// ReadYAML loads a report written by WriteYAML.
func ReadYAML(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("failed to read report: %w", err)
	}

	var rep Report
	if err := yaml.Unmarshal(data, &rep); err != nil {
		return Report{}, fmt.Errorf("failed to parse report: %w", err)
	}

	return rep, nil
}

// WriteParquet writes records as a Parquet file, one row per object.
func WriteParquet(path string, records []Record) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	if err := parquet.WriteFile(path, records); err != nil {
		return fmt.Errorf("failed to write parquet: %w", err)
	}

	return nil
}

// ReadParquet loads records written by WriteParquet.
func ReadParquet(path string) ([]Record, error) {
	records, err := parquet.ReadFile[Record](path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet: %w", err)
	}

	return records, nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	return nil
}
