package spectrum

import (
	"cmp"
	"errors"
	"slices"

	"github.com/cwbudde/algo-bandratio/stats/linefit"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by table construction.
var (
	ErrEmptyWindow = errors.New("spectrum: no samples inside the wavelength window")
	ErrNoBaseline  = errors.New("spectrum: table has no continuum baseline")
)

// Sample is one measured point: wavelength in microns and dimensionless
// reflectance.
type Sample struct {
	Wavelength  float64
	Reflectance float64
}

// Object is the raw spectrum of one observed body.
type Object struct {
	ID      string
	Samples []Sample
}

// Table is an ordered, immutable spectrum. Samples are ascending by
// wavelength, ties broken by reflectance. When a continuum is attached,
// baseline holds exactly one value per sample.
type Table struct {
	wavelength  []float64
	reflectance []float64
	baseline    []float64
	line        linefit.Line
}

// Window keeps the samples with lo <= wavelength < hi and sorts them by
// (wavelength, reflectance). The sort is stable, so identical pairs keep
// their input order. An empty result yields ErrEmptyWindow.
func Window(samples []Sample, lo, hi float64) (*Table, error) {
	kept := make([]Sample, 0, len(samples))

	for _, s := range samples {
		if s.Wavelength >= lo && s.Wavelength < hi {
			kept = append(kept, s)
		}
	}

	if len(kept) == 0 {
		return nil, ErrEmptyWindow
	}

	return fromSorted(sortSamples(kept)), nil
}

// FromSamples builds a table from all samples, sorted as in Window.
func FromSamples(samples []Sample) *Table {
	return fromSorted(sortSamples(slices.Clone(samples)))
}

func sortSamples(samples []Sample) []Sample {
	slices.SortStableFunc(samples, func(a, b Sample) int {
		if c := cmp.Compare(a.Wavelength, b.Wavelength); c != 0 {
			return c
		}

		return cmp.Compare(a.Reflectance, b.Reflectance)
	})

	return samples
}

func fromSorted(samples []Sample) *Table {
	t := &Table{
		wavelength:  make([]float64, len(samples)),
		reflectance: make([]float64, len(samples)),
	}

	for i, s := range samples {
		t.wavelength[i] = s.Wavelength
		t.reflectance[i] = s.Reflectance
	}

	return t
}

// Len returns the number of samples.
func (t *Table) Len() int {
	return len(t.wavelength)
}

// At returns sample i.
func (t *Table) At(i int) Sample {
	return Sample{Wavelength: t.wavelength[i], Reflectance: t.reflectance[i]}
}

// Samples returns the ordered samples.
func (t *Table) Samples() []Sample {
	out := make([]Sample, t.Len())
	for i := range out {
		out[i] = t.At(i)
	}

	return out
}

// Wavelengths returns a copy of the wavelength column.
func (t *Table) Wavelengths() []float64 {
	return slices.Clone(t.wavelength)
}

// Reflectances returns a copy of the reflectance column.
func (t *Table) Reflectances() []float64 {
	return slices.Clone(t.reflectance)
}

// Baseline returns a copy of the continuum column, or nil when no continuum
// has been fitted.
func (t *Table) Baseline() []float64 {
	return slices.Clone(t.baseline)
}

// HasBaseline reports whether a continuum is attached.
func (t *Table) HasBaseline() bool {
	return t.baseline != nil
}

// Continuum returns the fitted line and whether one is attached.
func (t *Table) Continuum() (linefit.Line, bool) {
	return t.line, t.HasBaseline()
}

// FitContinuum returns a copy of t whose baseline is the chord between its
// first and last samples. A table whose endpoints share a wavelength yields
// linefit.ErrDegenerate.
func (t *Table) FitContinuum() (*Table, error) {
	line, err := linefit.Through(t.wavelength, t.reflectance)
	if err != nil {
		return nil, err
	}

	return &Table{
		wavelength:  t.wavelength,
		reflectance: t.reflectance,
		baseline:    line.Eval(nil, t.wavelength),
		line:        line,
	}, nil
}

// Suffix returns samples [i, Len()) as a new table without a baseline; the
// parent's continuum does not describe the sub-range.
func (t *Table) Suffix(i int) *Table {
	return &Table{
		wavelength:  t.wavelength[i:],
		reflectance: t.reflectance[i:],
	}
}

// Depth returns baseline − reflectance per sample: the band depth below the
// continuum, positive inside an absorption.
func (t *Table) Depth() ([]float64, error) {
	if !t.HasBaseline() {
		return nil, ErrNoBaseline
	}

	depth := make([]float64, t.Len())
	vecmath.ScaleBlock(depth, t.reflectance, -1)
	vecmath.AddBlockInPlace(depth, t.baseline)

	return depth, nil
}
