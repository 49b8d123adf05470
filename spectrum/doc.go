// Package spectrum holds tabulated reflectance spectra.
//
// Raw measurements are [Sample] values; one observed body is an [Object].
// [Window] restricts samples to a half-open wavelength interval and orders
// them, producing an immutable [Table]. A Table optionally carries a
// continuum baseline column computed from one straight line:
//
//	band, err := spectrum.Window(obj.Samples, 1.4, 1.69)
//	band, err = band.FitContinuum()
//	feature := band.Suffix(i) // baseline dropped, fit again as needed
//
// Accessors return copies, so a Table can be shared freely once built.
package spectrum
