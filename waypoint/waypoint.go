// Package waypoint defines the user-facing control points a trajectory is built from.
package waypoint

import (
	"encoding/json"
	"fmt"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	goutils "go.viam.com/utils"

	"go.viam.com/wayfinder/spatialmath"
	"go.viam.com/wayfinder/utils"
)

// floatsPerWaypoint is the length of the flat (x, y, dx, dy, ddx, ddy) representation.
const floatsPerWaypoint = 6

// A Waypoint is a position the trajectory must pass through together with the heading it should
// have there and a second-derivative control vector. Only the direction of Tangent is used; its
// magnitude is rescaled against the distance to the neighbouring waypoint when a spline is built.
type Waypoint struct {
	Position  r2.Point
	Tangent   r2.Point
	Curvature r2.Point
}

// New returns a waypoint at (x, y) with tangent (dx, dy) and curvature vector (ddx, ddy).
func New(x, y, dx, dy, ddx, ddy float64) Waypoint {
	return Waypoint{
		Position:  r2.Point{X: x, Y: y},
		Tangent:   r2.Point{X: dx, Y: dy},
		Curvature: r2.Point{X: ddx, Y: ddy},
	}
}

// FromFloats parses waypoints from consecutive (x, y, dx, dy, ddx, ddy) sextuples.
func FromFloats(vals []float64) ([]Waypoint, error) {
	if len(vals)%floatsPerWaypoint != 0 {
		return nil, errors.Errorf("expected a multiple of %d values but got %d", floatsPerWaypoint, len(vals))
	}
	wps := make([]Waypoint, 0, len(vals)/floatsPerWaypoint)
	for i := 0; i < len(vals); i += floatsPerWaypoint {
		wps = append(wps, New(vals[i], vals[i+1], vals[i+2], vals[i+3], vals[i+4], vals[i+5]))
	}
	return wps, nil
}

// ToFloats flattens waypoints into (x, y, dx, dy, ddx, ddy) sextuples.
func ToFloats(wps []Waypoint) []float64 {
	vals := make([]float64, 0, len(wps)*floatsPerWaypoint)
	for _, wp := range wps {
		vals = append(vals, wp.Floats()...)
	}
	return vals
}

// Clone returns a copy of wps that may be modified without affecting the original.
func Clone(wps []Waypoint) []Waypoint {
	if wps == nil {
		return nil
	}
	return append(make([]Waypoint, 0, len(wps)), wps...)
}

// Floats returns the waypoint as a (x, y, dx, dy, ddx, ddy) sextuple.
func (wp Waypoint) Floats() []float64 {
	return []float64{wp.Position.X, wp.Position.Y, wp.Tangent.X, wp.Tangent.Y, wp.Curvature.X, wp.Curvature.Y}
}

// Validate ensures the waypoint can be used to build a spline.
func (wp Waypoint) Validate(path string) error {
	if !utils.AllFinite(wp.Floats()) {
		return goutils.NewConfigValidationError(path, errors.New("waypoint values must be finite"))
	}
	if wp.Tangent.X == 0 && wp.Tangent.Y == 0 {
		return goutils.NewConfigValidationError(path, errors.Wrap(spatialmath.ErrDegenerateGeometry, "tangent must be non-zero"))
	}
	return nil
}

func (wp Waypoint) String() string {
	return fmt.Sprintf("Waypoint{pos: %v, tangent: %v, curvature: %v}", wp.Position, wp.Tangent, wp.Curvature)
}

type waypointJSON struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	TangentX   float64 `json:"tangent_x"`
	TangentY   float64 `json:"tangent_y"`
	CurvatureX float64 `json:"curvature_x"`
	CurvatureY float64 `json:"curvature_y"`
}

// MarshalJSON encodes the waypoint as an object with one key per component.
func (wp Waypoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(waypointJSON{
		X:          wp.Position.X,
		Y:          wp.Position.Y,
		TangentX:   wp.Tangent.X,
		TangentY:   wp.Tangent.Y,
		CurvatureX: wp.Curvature.X,
		CurvatureY: wp.Curvature.Y,
	})
}

// UnmarshalJSON accepts either the object form produced by MarshalJSON or a bare
// [x, y, dx, dy, ddx, ddy] array.
func (wp *Waypoint) UnmarshalJSON(data []byte) error {
	var vals []float64
	if err := json.Unmarshal(data, &vals); err == nil {
		if len(vals) != floatsPerWaypoint {
			return errors.Errorf("waypoint array must have %d values, got %d", floatsPerWaypoint, len(vals))
		}
		*wp = New(vals[0], vals[1], vals[2], vals[3], vals[4], vals[5])
		return nil
	}

	var obj waypointJSON
	if err := json.Unmarshal(data, &obj); err != nil {
		return errors.Wrap(err, "failed to decode waypoint")
	}
	*wp = New(obj.X, obj.Y, obj.TangentX, obj.TangentY, obj.CurvatureX, obj.CurvatureY)
	return nil
}
