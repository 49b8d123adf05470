// Package trapz integrates sampled curves with the trapezoidal rule over
// non-uniformly spaced abscissae.
package trapz

import (
	"errors"
	"sort"

	"gonum.org/v1/gonum/integrate"
)

// Errors returned by integration.
var (
	ErrInsufficientSamples = errors.New("trapz: need at least two distinct abscissae")
	ErrLengthMismatch      = errors.New("trapz: abscissa and ordinate lengths differ")
	ErrUnsorted            = errors.New("trapz: abscissae must be non-decreasing")
)

// Integrate returns the trapezoidal integral of f over x.
//
// x must be non-decreasing and contain at least two distinct values.
// Repeated abscissae are allowed and contribute zero-width panels.
func Integrate(x, f []float64) (float64, error) {
	if err := validate(x, f); err != nil {
		return 0, err
	}

	return integrate.Trapezoidal(x, f), nil
}

// Between returns ∫upper dx − ∫lower dx, both integrated over the same x.
// The sign is positive where lower lies below upper on balance.
func Between(x, upper, lower []float64) (float64, error) {
	if err := validate(x, upper); err != nil {
		return 0, err
	}

	if len(lower) != len(x) {
		return 0, ErrLengthMismatch
	}

	return integrate.Trapezoidal(x, upper) - integrate.Trapezoidal(x, lower), nil
}

func validate(x, f []float64) error {
	if len(x) != len(f) {
		return ErrLengthMismatch
	}

	if len(x) < 2 {
		return ErrInsufficientSamples
	}

	if !sort.Float64sAreSorted(x) {
		return ErrUnsorted
	}

	// Sorted, so distinct values exist iff the endpoints differ.
	if x[0] == x[len(x)-1] {
		return ErrInsufficientSamples
	}

	return nil
}
