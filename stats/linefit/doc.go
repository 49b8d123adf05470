// Package linefit provides the straight-line continuum used by band-area
// measurements.
//
// A continuum here is the chord between the first and last point of a band,
// not a regression over the interior points:
//
//	line, err := linefit.Through(wavelengths, reflectances)
//	baseline := line.Eval(nil, wavelengths)
//
// Interior points never influence the fitted line.
package linefit
