package bandratio

import "sort"

// FeatureStart returns the index at which the feature sub-band begins in an
// ascending wavelength column.
//
// The last sample exactly at start wins when one exists, so duplicate
// wavelengths resolve to the later row. Otherwise the last sample strictly
// below start is used, provided the band continues past start. A band with
// nothing below start, or that ends before start, has no feature and yields
// ErrNoFeatureBoundary.
func FeatureStart(wavelengths []float64, start float64) (int, error) {
	n := len(wavelengths)

	// First index with λ >= start, then first with λ > start.
	lo := sort.SearchFloat64s(wavelengths, start)
	hi := lo + sort.Search(n-lo, func(i int) bool { return wavelengths[lo+i] > start })

	switch {
	case hi > lo:
		return hi - 1, nil
	case lo == 0, lo == n:
		return -1, ErrNoFeatureBoundary
	default:
		return lo - 1, nil
	}
}
