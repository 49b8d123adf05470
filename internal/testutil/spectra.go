package testutil

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-bandratio/spectrum"
	"github.com/cwbudde/algo-vecmath"
)

// Grid returns n wavelengths evenly spaced over [lo, hi].
func Grid(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + step*float64(i)
	}
	return out
}

// Continuum returns samples on a straight line refl = slope*λ + intercept.
func Continuum(wavelengths []float64, slope, intercept float64) []spectrum.Sample {
	out := make([]spectrum.Sample, len(wavelengths))
	for i, wl := range wavelengths {
		out[i] = spectrum.Sample{Wavelength: wl, Reflectance: slope*wl + intercept}
	}
	return out
}

// GaussianDip subtracts a Gaussian absorption of the given depth, center and
// width (all in microns except depth) from the reflectance of samples.
func GaussianDip(samples []spectrum.Sample, center, width, depth float64) []spectrum.Sample {
	out := make([]spectrum.Sample, len(samples))
	for i, s := range samples {
		z := (s.Wavelength - center) / width
		out[i] = spectrum.Sample{
			Wavelength:  s.Wavelength,
			Reflectance: s.Reflectance - depth*math.Exp(-0.5*z*z),
		}
	}
	return out
}

// IcyBody returns a deterministic spectrum with a broad 1.5 µm band and a
// narrow 1.65 µm feature on a reddened continuum, sampled every 0.005 µm
// from 1.2 to 2.0 µm.
func IcyBody() []spectrum.Sample {
	s := Continuum(Grid(1.2, 2.0, 161), 0.15, 0.8)
	s = GaussianDip(s, 1.52, 0.06, 0.25)
	s = GaussianDip(s, 1.655, 0.012, 0.08)
	return s
}

// Shuffled returns a copy of samples in a reproducible random order.
func Shuffled(seed int64, samples []spectrum.Sample) []spectrum.Sample {
	out := append([]spectrum.Sample(nil), samples...)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// ScaleReflectance returns a copy of samples with every reflectance
// multiplied by k.
func ScaleReflectance(samples []spectrum.Sample, k float64) []spectrum.Sample {
	refl := make([]float64, len(samples))
	for i, s := range samples {
		refl[i] = s.Reflectance
	}
	if len(refl) > 0 {
		vecmath.ScaleBlockInPlace(refl, k)
	}
	out := make([]spectrum.Sample, len(samples))
	for i, s := range samples {
		out[i] = spectrum.Sample{Wavelength: s.Wavelength, Reflectance: refl[i]}
	}
	return out
}
