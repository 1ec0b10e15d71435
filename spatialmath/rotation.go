package spatialmath

import (
	"math"

	"github.com/golang/geo/r2"
)

// Rotation2 is a planar rotation stored as the unit vector (cos θ, sin θ).
type Rotation2 struct {
	Cos float64 `json:"cos"`
	Sin float64 `json:"sin"`
}

// NewZeroRotation2 returns the identity rotation.
func NewZeroRotation2() Rotation2 {
	return Rotation2{Cos: 1}
}

// NewRotation2 returns the rotation by rad radians.
func NewRotation2(rad float64) Rotation2 {
	sin, cos := math.Sincos(rad)
	return Rotation2{Cos: cos, Sin: sin}
}

// NewRotation2FromVector returns the rotation pointing along v. The magnitude of v is discarded.
func NewRotation2FromVector(v r2.Point) (Rotation2, error) {
	u, err := Unit(v)
	if err != nil {
		return Rotation2{}, err
	}
	return Rotation2{Cos: u.X, Sin: u.Y}, nil
}

// Radians returns the angle of the rotation in (-π, π].
func (r Rotation2) Radians() float64 {
	return math.Atan2(r.Sin, r.Cos)
}

// Inverse returns the opposite rotation.
func (r Rotation2) Inverse() Rotation2 {
	return Rotation2{Cos: r.Cos, Sin: -r.Sin}
}

// Compose returns the rotation r followed by other, computed as the complex product of the two.
func (r Rotation2) Compose(other Rotation2) Rotation2 {
	return Rotation2{
		Cos: r.Cos*other.Cos - r.Sin*other.Sin,
		Sin: r.Cos*other.Sin + r.Sin*other.Cos,
	}
}

// Rotate applies the rotation to p.
func (r Rotation2) Rotate(p r2.Point) r2.Point {
	return r2.Point{
		X: p.X*r.Cos - p.Y*r.Sin,
		Y: p.X*r.Sin + p.Y*r.Cos,
	}
}

// Vector returns the rotation as its (cos, sin) vector.
func (r Rotation2) Vector() r2.Point {
	return r2.Point{X: r.Cos, Y: r.Sin}
}
