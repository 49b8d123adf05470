package linefit

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/stat"
)

// Errors returned by line fitting.
var (
	ErrDegenerate     = errors.New("linefit: endpoints share the same abscissa")
	ErrEmpty          = errors.New("linefit: no points to fit")
	ErrLengthMismatch = errors.New("linefit: x and y lengths differ")
)

// Line is y = Slope*x + Intercept.
type Line struct {
	Slope     float64
	Intercept float64
}

// Chord returns the line through (x0, y0) and (x1, y1).
//
// The fit is delegated to an ordinary least-squares regression over exactly
// the two points, which reproduces the chord. Equal abscissae make the slope
// undefined and yield ErrDegenerate instead of NaN or Inf coefficients.
func Chord(x0, y0, x1, y1 float64) (Line, error) {
	if x0 == x1 {
		return Line{}, ErrDegenerate
	}

	intercept, slope := stat.LinearRegression([]float64{x0, x1}, []float64{y0, y1}, nil, false)
	if !isFinite(slope) || !isFinite(intercept) {
		return Line{}, ErrDegenerate
	}

	return Line{Slope: slope, Intercept: intercept}, nil
}

// Through returns the chord between the first and last points of x/y.
// x is expected in ascending order; only its endpoints are used.
func Through(x, y []float64) (Line, error) {
	if len(x) != len(y) {
		return Line{}, ErrLengthMismatch
	}

	if len(x) == 0 {
		return Line{}, ErrEmpty
	}

	last := len(x) - 1

	return Chord(x[0], y[0], x[last], y[last])
}

// At evaluates the line at x.
func (l Line) At(x float64) float64 {
	return l.Slope*x + l.Intercept
}

// Eval evaluates the line at every element of x and stores the result in dst.
// dst is allocated when it is too short; the (possibly new) slice is returned.
func (l Line) Eval(dst, x []float64) []float64 {
	if cap(dst) < len(x) {
		dst = make([]float64, len(x))
	}

	dst = dst[:len(x)]
	if len(x) == 0 {
		return dst
	}

	vecmath.ScaleBlock(dst, x, l.Slope)

	for i := range dst {
		dst[i] += l.Intercept
	}

	return dst
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
