// Package parameterizer samples spline segments at a variable resolution chosen by a geometric
// error policy.
package parameterizer

import (
	"go.viam.com/wayfinder/spline"
)

// Parameterizer is an error policy deciding whether a step along a spline is too coarse.
type Parameterizer interface {
	// ShouldSubdivide returns true if the span [tCurr, tCurr+tStep] of s should be halved before
	// it is accepted.
	ShouldSubdivide(s spline.Spline, tCurr, tStep float64) (bool, error)
}
