package smoothing

import (
	"github.com/pkg/errors"

	"go.viam.com/wayfinder/spline"
	"go.viam.com/wayfinder/utils"
	"go.viam.com/wayfinder/waypoint"
)

// Problem is the smoothness objective over the curvature vectors of the interior waypoints of a
// path. The first and last waypoints are never changed. Params are laid out as
// [wp1.curvature.x, wp1.curvature.y, wp2.curvature.x, ...].
type Problem struct {
	waypoints []waypoint.Waypoint
	eps       float64
	samples   int
	parallel  bool
}

// NewProblem returns the objective for wps. The waypoints are copied.
func NewProblem(wps []waypoint.Waypoint, opts Options) *Problem {
	return &Problem{
		waypoints: waypoint.Clone(wps),
		eps:       opts.Eps,
		samples:   opts.Samples,
		parallel:  opts.Parallel,
	}
}

// NumParams is the number of free parameters: two per interior waypoint.
func (p *Problem) NumParams() int {
	if len(p.waypoints) < 3 {
		return 0
	}
	return 2 * (len(p.waypoints) - 2)
}

// InitialParams returns the current curvature vectors of the interior waypoints.
func (p *Problem) InitialParams() []float64 {
	params := make([]float64, 0, p.NumParams())
	for i := 1; i < len(p.waypoints)-1; i++ {
		params = append(params, p.waypoints[i].Curvature.X, p.waypoints[i].Curvature.Y)
	}
	return params
}

// Apply returns a copy of the waypoints with params written into the interior curvatures.
func (p *Problem) Apply(params []float64) ([]waypoint.Waypoint, error) {
	if len(params) != p.NumParams() {
		return nil, errors.Errorf("expected %d params, got %d", p.NumParams(), len(params))
	}
	wps := waypoint.Clone(p.waypoints)
	for i := 0; i < len(params); i += 2 {
		wps[i/2+1].Curvature.X = params[i]
		wps[i/2+1].Curvature.Y = params[i+1]
	}
	return wps, nil
}

// Cost is the sum of the smoothness integrals of every segment of the path described by params.
func (p *Problem) Cost(params []float64) (float64, error) {
	wps, err := p.Apply(params)
	if err != nil {
		return 0, err
	}
	segments, err := spline.Hermites(wps)
	if err != nil {
		return 0, err
	}
	total := 0.
	for i, seg := range segments {
		integral, err := seg.IntegralDCurvatureDTSquared(p.samples)
		if err != nil {
			return 0, errors.Wrapf(err, "segment %d", i)
		}
		total += integral
	}
	return total, nil
}

// Gradient is the forward difference of Cost, perturbing one parameter at a time by eps.
func (p *Problem) Gradient(params []float64) ([]float64, error) {
	costRef, err := p.Cost(params)
	if err != nil {
		return nil, err
	}

	grad := make([]float64, len(params))
	partial := func(idx int) error {
		perturbed := make([]float64, len(params))
		copy(perturbed, params)
		perturbed[idx] += p.eps
		costFwd, err := p.Cost(perturbed)
		if err != nil {
			return errors.Wrapf(err, "param %d", idx)
		}
		grad[idx] = (costFwd - costRef) / p.eps
		return nil
	}

	if p.parallel {
		if err := utils.ParallelForEach(len(params), partial); err != nil {
			return nil, err
		}
		return grad, nil
	}
	for idx := range params {
		if err := partial(idx); err != nil {
			return nil, err
		}
	}
	return grad, nil
}
