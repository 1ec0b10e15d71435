package parameterizer

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.viam.com/wayfinder/spatialmath"
	"go.viam.com/wayfinder/spline"
)

// Jaci bounds each step by the arc length it covers and the change in curvature across it.
type Jaci struct {
	MaxDS float64 `json:"max_ds"`
	MaxDC float64 `json:"max_dc"`
}

// NewJaci returns a Jaci policy with the given arc length and curvature delta bounds.
func NewJaci(maxDS, maxDC float64) *Jaci {
	return &Jaci{MaxDS: maxDS, MaxDC: maxDC}
}

// ShouldSubdivide estimates the arc through the start, middle and end of the step.
func (j *Jaci) ShouldSubdivide(s spline.Spline, tCurr, tStep float64) (bool, error) {
	p0 := s.Position(tCurr)
	pMid := s.Position(tCurr + tStep/2)
	p1 := s.Position(tCurr + tStep)

	k0, err := s.Curvature(tCurr)
	if err != nil {
		return false, errors.Wrapf(err, "curvature at t=%v", tCurr)
	}
	k1, err := s.Curvature(tCurr + tStep)
	if err != nil {
		return false, errors.Wrapf(err, "curvature at t=%v", tCurr+tStep)
	}

	return math.Abs(k1-k0) > j.MaxDC || ArcLength(p0, pMid, p1) > j.MaxDS, nil
}

// Validate ensures all parts of the config are valid.
func (j *Jaci) Validate(path string) error {
	return validateBounds(path, []string{"max_ds", "max_dc"}, []float64{j.MaxDS, j.MaxDC})
}

// ArcLength estimates the length of the circular arc through start, mid and end. The centre
// is the intersection of the perpendicular bisectors; collinear points fall back to the straight
// distance between start and end.
//
// The end angle is atan2(d1.y, d0.x): the end offset's y against the start offset's x. For
// offsets mirrored about the centre the two angles coincide and the estimate is zero.
func ArcLength(start, mid, end r2.Point) float64 {
	coeff := spatialmath.NewMat2(start.Sub(end).Mul(2), start.Sub(mid).Mul(2))
	inv, ok := coeff.Inverse()
	if !ok {
		return spatialmath.Norm(end.Sub(start))
	}

	startNorm2 := spatialmath.Norm2(start)
	rvec := r2.Point{X: startNorm2 - spatialmath.Norm2(end), Y: startNorm2 - spatialmath.Norm2(mid)}
	centerOffset := inv.MulVec(rvec).Mul(-1)
	d0 := centerOffset.Add(start)
	d1 := centerOffset.Add(end)

	radius := spatialmath.Norm(d0)
	a0 := math.Atan2(d0.Y, d0.X)
	a1 := math.Atan2(d1.Y, d0.X)
	return math.Abs(a1-a0) * radius
}
