// Package spatialmath defines the planar vector, matrix and rigid transform primitives used to
// build and sample trajectories.
package spatialmath

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// ErrDegenerateGeometry is returned when a computation would divide by a zero-length vector,
// for example the heading of a zero velocity or the curvature of a stationary sample.
var ErrDegenerateGeometry = errors.New("degenerate geometry")

// Norm returns the euclidean length of v computed as sqrt(v·v).
func Norm(v r2.Point) float64 {
	return math.Sqrt(v.Dot(v))
}

// Norm2 returns the squared euclidean length of v.
func Norm2(v r2.Point) float64 {
	return v.Dot(v)
}

// Unit returns v scaled to unit length. A zero vector has no direction and yields ErrDegenerateGeometry.
func Unit(v r2.Point) (r2.Point, error) {
	n := Norm(v)
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return r2.Point{}, errors.Wrapf(ErrDegenerateGeometry, "cannot normalize vector %v", v)
	}
	return v.Mul(1 / n), nil
}

// R2AlmostEqual returns whether two vectors are within epsilon of one another in each component.
func R2AlmostEqual(a, b r2.Point, epsilon float64) bool {
	return math.Abs(a.X-b.X) <= epsilon && math.Abs(a.Y-b.Y) <= epsilon
}
