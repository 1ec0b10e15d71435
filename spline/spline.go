// Package spline builds quintic Hermite segments from waypoints and evaluates their derivatives
// and curvature.
package spline

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.viam.com/wayfinder/spatialmath"
)

// Spline is a planar curve parameterized over t in [0, 1]. Behavior outside that domain is undefined.
type Spline interface {
	Position(t float64) r2.Point
	Velocity(t float64) r2.Point
	Acceleration(t float64) r2.Point
	Jerk(t float64) r2.Point

	// PointAt returns every derivative at t at once.
	PointAt(t float64) Point

	// Curvature returns the signed curvature at t.
	Curvature(t float64) (float64, error)

	// DCurvature returns the derivative of the curvature with respect to t.
	DCurvature(t float64) (float64, error)

	// IntegralDCurvatureDTSquared approximates the integral of DCurvature² over [0, 1].
	IntegralDCurvatureDTSquared(samples int) (float64, error)
}

// Point is a sample of a spline.
type Point struct {
	Position     r2.Point `json:"position"`
	Velocity     r2.Point `json:"velocity"`
	Acceleration r2.Point `json:"acceleration"`
	Jerk         r2.Point `json:"jerk"`

	// T is the parameter the point was sampled at and Segment the index of the spline it came
	// from, when sampled as part of a trajectory.
	T       float64 `json:"t"`
	Segment int     `json:"segment"`
}

// Heading returns the direction of travel at the point.
func (p Point) Heading() (spatialmath.Rotation2, error) {
	return spatialmath.NewRotation2FromVector(p.Velocity)
}

// Curvature returns the signed curvature at the point.
func (p Point) Curvature() (float64, error) {
	return curvature(p.Velocity, p.Acceleration)
}

// Pose returns the position and heading of the point.
func (p Point) Pose() (spatialmath.Pose2D, error) {
	heading, err := p.Heading()
	if err != nil {
		return spatialmath.Pose2D{}, err
	}
	return spatialmath.NewPose2D(p.Position, heading), nil
}

func curvature(vel, acc r2.Point) (float64, error) {
	norm := spatialmath.Norm(vel)
	if norm == 0 {
		return 0, errors.Wrap(spatialmath.ErrDegenerateGeometry, "curvature is undefined at zero velocity")
	}
	k := (vel.X*acc.Y - vel.Y*acc.X) / (norm * norm * norm)
	if math.IsNaN(k) || math.IsInf(k, 0) {
		return 0, errors.Wrapf(spatialmath.ErrDegenerateGeometry, "non-finite curvature for velocity %v", vel)
	}
	return k, nil
}

// dCurvature differentiates (vx·ay - vy·ax)/|v|³ with the quotient rule.
func dCurvature(vel, acc, jerk r2.Point) (float64, error) {
	norm2 := spatialmath.Norm2(vel)
	if norm2 == 0 {
		return 0, errors.Wrap(spatialmath.ErrDegenerateGeometry, "curvature rate is undefined at zero velocity")
	}
	norm := math.Sqrt(norm2)
	top := (vel.X*jerk.Y-jerk.X*vel.Y)*norm2 - 3*(vel.X*acc.Y-acc.X*vel.Y)*(vel.X*acc.X+vel.Y*acc.Y)
	dk := top / (norm * norm * norm * norm * norm)
	if math.IsNaN(dk) || math.IsInf(dk, 0) {
		return 0, errors.Wrapf(spatialmath.ErrDegenerateGeometry, "non-finite curvature rate for velocity %v", vel)
	}
	return dk, nil
}
