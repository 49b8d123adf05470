package bandratio

import (
	"github.com/cwbudde/algo-bandratio/spectrum"
	"github.com/cwbudde/algo-bandratio/stats/trapz"
)

// Area returns the signed area between the continuum and the reflectance
// curve of t: ∫baseline dλ − ∫reflectance dλ, both by the trapezoidal rule
// on the table's own wavelength spacing. Positive values mean the curve lies
// below its continuum on balance.
func Area(t *spectrum.Table) (float64, error) {
	if !t.HasBaseline() {
		return 0, ErrNoBaseline
	}

	return trapz.Between(t.Wavelengths(), t.Baseline(), t.Reflectances())
}
