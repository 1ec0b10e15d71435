package parameterizer

import (
	"math"

	"github.com/pkg/errors"

	"go.viam.com/wayfinder/spatialmath"
	"go.viam.com/wayfinder/spline"
)

// Cheesy bounds each step by the twist between the poses at its two ends.
type Cheesy struct {
	MaxDX     float64 `json:"max_dx"`
	MaxDY     float64 `json:"max_dy"`
	MaxDTheta float64 `json:"max_dtheta"`
}

// NewCheesy returns a Cheesy policy with the given bounds on the twist components.
func NewCheesy(maxDX, maxDY, maxDTheta float64) *Cheesy {
	return &Cheesy{MaxDX: maxDX, MaxDY: maxDY, MaxDTheta: maxDTheta}
}

// ShouldSubdivide computes the pose of the end of the step in the frame of its start and
// compares the components of its logarithm against the bounds.
func (c *Cheesy) ShouldSubdivide(s spline.Spline, tCurr, tStep float64) (bool, error) {
	p0 := s.PointAt(tCurr)
	p1 := s.PointAt(tCurr + tStep)
	pose0, err := p0.Pose()
	if err != nil {
		return false, errors.Wrapf(err, "heading at t=%v", tCurr)
	}
	pose1, err := p1.Pose()
	if err != nil {
		return false, errors.Wrapf(err, "heading at t=%v", tCurr+tStep)
	}

	twist := spatialmath.PoseBetween(pose0, pose1).Log()
	return math.Abs(twist.DX) > c.MaxDX ||
		math.Abs(twist.DY) > c.MaxDY ||
		math.Abs(twist.DTheta) > c.MaxDTheta, nil
}

// Validate ensures all parts of the config are valid.
func (c *Cheesy) Validate(path string) error {
	return validateBounds(path, []string{"max_dx", "max_dy", "max_dtheta"}, []float64{c.MaxDX, c.MaxDY, c.MaxDTheta})
}
