package spline

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/wayfinder/spatialmath"
	"go.viam.com/wayfinder/utils"
	"go.viam.com/wayfinder/waypoint"
)

// tangentScale couples tangent magnitude to the chord so curvature stays proportionate to the
// distance between waypoints.
const tangentScale = 1.2

// hermiteBasis maps the boundary vectors [p0, v0, a0, p1, v1, a1] onto the monomial
// coefficients [t⁵, t⁴, t³, t², t, 1]. Row k is the quintic Hermite basis polynomial of boundary k.
var hermiteBasis = mat.NewDense(6, 6, []float64{
	-6, 15, -10, 0, 0, 1,
	-3, 8, -6, 0, 1, 0,
	-0.5, 1.5, -1.5, 0.5, 0, 0,
	6, -15, 10, 0, 0, 0,
	-3, 7, -4, 0, 0, 0,
	0.5, -1, 0.5, 0, 0, 0,
})

// Hermite is a quintic Hermite segment between two waypoints. It is immutable; a change to
// either waypoint requires building a new segment.
type Hermite struct {
	// one row per axis, monomial coefficients from t⁵ down to t⁰
	coeffs [2][6]float64
}

// NewHermite builds the segment running from start to end.
func NewHermite(start, end waypoint.Waypoint) (*Hermite, error) {
	chord := tangentScale * spatialmath.Norm(end.Position.Sub(start.Position))
	startTangent, err := spatialmath.Unit(start.Tangent)
	if err != nil {
		return nil, errors.Wrap(err, "start waypoint tangent")
	}
	endTangent, err := spatialmath.Unit(end.Tangent)
	if err != nil {
		return nil, errors.Wrap(err, "end waypoint tangent")
	}
	startTangent = startTangent.Mul(chord)
	endTangent = endTangent.Mul(chord)

	boundary := mat.NewDense(2, 6, []float64{
		start.Position.X, startTangent.X, start.Curvature.X, end.Position.X, endTangent.X, end.Curvature.X,
		start.Position.Y, startTangent.Y, start.Curvature.Y, end.Position.Y, endTangent.Y, end.Curvature.Y,
	})
	var coeffs mat.Dense
	coeffs.Mul(boundary, hermiteBasis)

	h := &Hermite{}
	mat.Row(h.coeffs[0][:], 0, &coeffs)
	mat.Row(h.coeffs[1][:], 1, &coeffs)
	return h, nil
}

// Hermites builds one segment per consecutive pair of waypoints. Fewer than two waypoints
// produce no segments.
func Hermites(wps []waypoint.Waypoint) ([]*Hermite, error) {
	if len(wps) < 2 {
		return nil, nil
	}
	segments := make([]*Hermite, 0, len(wps)-1)
	for i := 0; i+1 < len(wps); i++ {
		h, err := NewHermite(wps[i], wps[i+1])
		if err != nil {
			return nil, errors.Wrapf(err, "segment %d", i)
		}
		segments = append(segments, h)
	}
	return segments, nil
}

// Splines converts segments to the Spline interface.
func Splines(segments []*Hermite) []Spline {
	out := make([]Spline, 0, len(segments))
	for _, seg := range segments {
		out = append(out, seg)
	}
	return out
}

// Coefficients returns the x and y monomial coefficients, highest power first.
func (h *Hermite) Coefficients() [2][6]float64 {
	return h.coeffs
}

func (h *Hermite) eval(basis [6]float64) r2.Point {
	return r2.Point{
		X: floats.Dot(h.coeffs[0][:], basis[:]),
		Y: floats.Dot(h.coeffs[1][:], basis[:]),
	}
}

// Position returns the point on the segment at t.
func (h *Hermite) Position(t float64) r2.Point {
	return h.eval([6]float64{t * t * t * t * t, t * t * t * t, t * t * t, t * t, t, 1})
}

// Velocity returns the first derivative at t.
func (h *Hermite) Velocity(t float64) r2.Point {
	return h.eval([6]float64{5 * t * t * t * t, 4 * t * t * t, 3 * t * t, 2 * t, 1, 0})
}

// Acceleration returns the second derivative at t.
func (h *Hermite) Acceleration(t float64) r2.Point {
	return h.eval([6]float64{20 * t * t * t, 12 * t * t, 6 * t, 2, 0, 0})
}

// Jerk returns the third derivative at t.
func (h *Hermite) Jerk(t float64) r2.Point {
	return h.eval([6]float64{60 * t * t, 24 * t, 6, 0, 0, 0})
}

// PointAt samples the segment at t.
func (h *Hermite) PointAt(t float64) Point {
	return Point{
		Position:     h.Position(t),
		Velocity:     h.Velocity(t),
		Acceleration: h.Acceleration(t),
		Jerk:         h.Jerk(t),
		T:            t,
	}
}

// Curvature returns (vx·ay - vy·ax)/|v|³ at t.
func (h *Hermite) Curvature(t float64) (float64, error) {
	return curvature(h.Velocity(t), h.Acceleration(t))
}

// DCurvature returns the rate of change of curvature with respect to t.
func (h *Hermite) DCurvature(t float64) (float64, error) {
	return dCurvature(h.Velocity(t), h.Acceleration(t), h.Jerk(t))
}

// IntegralDCurvatureDTSquared is the smoothness cost of the segment. For each of samples equal
// subintervals it averages the squared curvature rate at both ends, and the sum is divided by
// samples.
func (h *Hermite) IntegralDCurvatureDTSquared(samples int) (float64, error) {
	if samples < 1 {
		return 0, errors.Errorf("integral needs at least one sample, got %d", samples)
	}
	sum := 0.
	for i := 0; i < samples; i++ {
		left, err := h.DCurvature(float64(i) / float64(samples))
		if err != nil {
			return 0, err
		}
		right, err := h.DCurvature(float64(i+1) / float64(samples))
		if err != nil {
			return 0, err
		}
		sum += (utils.Square(left) + utils.Square(right)) / 2
	}
	return sum / float64(samples), nil
}
