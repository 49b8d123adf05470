package bandratio

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-bandratio/spectrum"
	"github.com/cwbudde/algo-bandratio/stats/linefit"
	"github.com/cwbudde/algo-bandratio/stats/trapz"
)

// Errors returned by band-ratio measurement. The window, continuum, area and
// baseline sentinels are the ones of the underlying packages, so errors.Is
// matches either name.
var (
	ErrEmptyWindow         = spectrum.ErrEmptyWindow
	ErrDegenerateBaseline  = linefit.ErrDegenerate
	ErrInsufficientSamples = trapz.ErrInsufficientSamples
	ErrNoBaseline          = spectrum.ErrNoBaseline
	ErrNoFeatureBoundary   = errors.New("bandratio: no feature start boundary inside the band")
	ErrUndefinedRatio      = errors.New("bandratio: full-band area is zero or non-finite")
	ErrInvalidConfig       = errors.New("bandratio: invalid configuration")
)

// Stage names the pipeline step that failed.
type Stage string

// Pipeline stages, in execution order.
const (
	StageWindow    Stage = "window"
	StageContinuum Stage = "continuum"
	StageFeature   Stage = "feature"
	StageArea      Stage = "area"
	StageRatio     Stage = "ratio"
)

// Error reports a failed measurement for one object.
type Error struct {
	Object string
	Stage  Stage
	Err    error
}

func (e *Error) Error() string {
	if e.Object == "" {
		return fmt.Sprintf("bandratio: %s: %v", e.Stage, e.Err)
	}

	return fmt.Sprintf("bandratio: %s: %s: %v", e.Object, e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StageOf returns the failing stage recorded in err, if any.
func StageOf(err error) (Stage, bool) {
	var be *Error
	if errors.As(err, &be) {
		return be.Stage, true
	}

	return "", false
}
