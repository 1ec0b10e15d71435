package spatialmath

import (
	"github.com/golang/geo/r2"

	"go.viam.com/wayfinder/utils"
)

// Below this distance from 1, cos θ - 1 is treated as zero and the series expansion is used.
const poseLogEpsilon = 1e-9

// Pose2D is a rigid transform in the plane.
type Pose2D struct {
	Translation r2.Point  `json:"translation"`
	Rotation    Rotation2 `json:"rotation"`
}

// Twist is the local displacement produced by Pose2D.Log. DTheta is the angle of the rotation
// the linear part was expressed in, which is -θ/2 for a pose rotated by θ within (-π, π).
type Twist struct {
	DX     float64 `json:"dx"`
	DY     float64 `json:"dy"`
	DTheta float64 `json:"dtheta"`
}

// NewPose2D returns a pose from a translation and a rotation.
func NewPose2D(translation r2.Point, rotation Rotation2) Pose2D {
	return Pose2D{Translation: translation, Rotation: rotation}
}

// PoseBetween returns the pose of to expressed in the frame of from.
func PoseBetween(from, to Pose2D) Pose2D {
	inv := from.Rotation.Inverse()
	return Pose2D{
		Translation: inv.Rotate(to.Translation.Sub(from.Translation)),
		Rotation:    to.Rotation.Compose(inv),
	}
}

// Log returns the SE(2) logarithm of p.
func (p Pose2D) Log() Twist {
	dTheta := p.Rotation.Radians()
	halfDTheta := dTheta / 2
	cosMinusOne := p.Rotation.Cos - 1

	var halfThetaByTanHalfDTheta float64
	if utils.Float64AlmostEqual(p.Rotation.Cos, 1, poseLogEpsilon) {
		halfThetaByTanHalfDTheta = 1 - dTheta*dTheta/12
	} else {
		halfThetaByTanHalfDTheta = -(halfDTheta * p.Rotation.Sin) / cosMinusOne
	}

	// the pair is never zero: the series term is close to 1 whenever halfDTheta is close to 0
	rot, _ := NewRotation2FromVector(r2.Point{X: halfThetaByTanHalfDTheta, Y: -halfDTheta})
	linear := rot.Rotate(p.Translation)
	return Twist{DX: linear.X, DY: linear.Y, DTheta: rot.Radians()}
}
