// Package bandratio measures the 1.65 µm absorption feature of reflectance
// spectra relative to the broad band that contains it.
//
// The measurement follows a fixed sequence per object:
//
//   - window the raw samples to [MinMicron, MaxMicron) and sort them
//   - fit the continuum as the chord between the first and last sample
//   - locate the feature start (last exact match of FeatureStartMicron,
//     otherwise the last sample below it) and re-fit a chord over the
//     suffix from there
//   - integrate baseline minus reflectance (trapezoidal rule) over both
//     the full band and the feature
//   - divide the feature area by the full-band area
//
// # Usage
//
//	calc, err := bandratio.NewCalculator() // 1.4–1.69 µm, feature at 1.626 µm
//	res, err := calc.Compute(spectrum.Object{ID: "2002tx300", Samples: samples})
//	fmt.Printf("%s: ratio=%.3g\n", res.Object, res.Ratio)
//
// Failures are typed: every error returned by Compute is a *Error that names
// the object and the failing stage and wraps one of the package sentinels.
package bandratio
