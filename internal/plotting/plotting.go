// Package plotting renders band-ratio measurements for visual inspection:
// the samples, their continuum and the area between them, for the full band
// and the feature.
package plotting

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"slices"

	"github.com/cwbudde/algo-bandratio/measure/bandratio"
	"github.com/cwbudde/algo-bandratio/spectrum"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Default figure size.
const (
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 5 * vg.Inch
)

var (
	// FullBandColor is used for the full band.
	FullBandColor = color.RGBA{R: 128, G: 0, B: 128, A: 255}
	// FeatureColor is used for the feature sub-band.
	FeatureColor = color.RGBA{R: 0, G: 128, B: 0, A: 255}
)

// fillAlpha is the opacity of the shaded area.
const fillAlpha = 0.25

// ErrNoTables is returned for a result without processed tables.
var ErrNoTables = errors.New("plotting: result has no processed tables")

// New builds the figure for res. The title carries the object id and the
// ratio to three significant figures.
func New(res bandratio.Result) (*plot.Plot, error) {
	if res.FullBand == nil || res.Feature == nil {
		return nil, ErrNoTables
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s: ratio=%.3g", res.Object, res.Ratio)
	p.X.Label.Text = "Wavelength [microns]"
	p.Y.Label.Text = "Relative Reflectance"

	if err := addTable(p, res.FullBand, FullBandColor); err != nil {
		return nil, fmt.Errorf("full band: %w", err)
	}

	if err := addTable(p, res.Feature, FeatureColor); err != nil {
		return nil, fmt.Errorf("feature: %w", err)
	}

	return p, nil
}

// Save renders res to path. The image format follows the extension
// (.png, .svg, .pdf, ...); parent directories are created.
func Save(path string, res bandratio.Result) error {
	p, err := New(res)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create plot directory: %w", err)
	}

	if err := p.Save(DefaultWidth, DefaultHeight, path); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}

	return nil
}

func addTable(p *plot.Plot, t *spectrum.Table, c color.RGBA) error {
	if !t.HasBaseline() {
		return spectrum.ErrNoBaseline
	}

	wl := t.Wavelengths()
	refl := t.Reflectances()
	base := t.Baseline()

	fill, err := plotter.NewPolygon(Outline(wl, base, refl))
	if err != nil {
		return err
	}

	fill.Color = withAlpha(c, fillAlpha)
	fill.LineStyle.Width = 0

	points, err := plotter.NewScatter(xys(wl, refl))
	if err != nil {
		return err
	}

	points.GlyphStyle.Color = c

	line, err := plotter.NewLine(xys(wl, base))
	if err != nil {
		return err
	}

	line.LineStyle.Color = c

	p.Add(fill, line, points)

	return nil
}

// Outline returns the closed outline between the baseline and the curve:
// the baseline left to right, then the curve right to left.
func Outline(wl, baseline, refl []float64) plotter.XYs {
	out := make(plotter.XYs, 0, 2*len(wl))

	for i := range wl {
		out = append(out, plotter.XY{X: wl[i], Y: baseline[i]})
	}

	rev := slices.Clone(wl)
	slices.Reverse(rev)
	reflRev := slices.Clone(refl)
	slices.Reverse(reflRev)

	for i := range rev {
		out = append(out, plotter.XY{X: rev[i], Y: reflRev[i]})
	}

	return out
}

func xys(x, y []float64) plotter.XYs {
	out := make(plotter.XYs, len(x))
	for i := range x {
		out[i] = plotter.XY{X: x[i], Y: y[i]}
	}

	return out
}

func withAlpha(c color.RGBA, alpha float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(alpha * 255)}
}
