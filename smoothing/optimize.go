// Package smoothing optimizes the curvature vectors of interior waypoints to minimize the rate of
// change of curvature along a path.
package smoothing

import (
	"context"

	"gonum.org/v1/gonum/floats"

	"go.viam.com/wayfinder/logging"
	"go.viam.com/wayfinder/waypoint"
)

// Optimize returns a copy of wps whose interior curvature vectors minimize the smoothness cost,
// along with the diagnostics of the run. Paths with fewer than three waypoints have nothing to
// optimize and are returned unchanged before opts is validated.
func Optimize(ctx context.Context, wps []waypoint.Waypoint, opts Options, logger logging.Logger) ([]waypoint.Waypoint, *Result, error) {
	if len(wps) < 3 {
		logger.Debugw("no interior waypoints to optimize", "waypoints", len(wps))
		return waypoint.Clone(wps), &Result{Params: []float64{}, Status: "NoInteriorWaypoints"}, nil
	}
	if err := opts.Validate(""); err != nil {
		return nil, nil, err
	}

	minimizer, err := NewMinimizer(opts.Backend, logger)
	if err != nil {
		return nil, nil, err
	}

	problem := NewProblem(wps, opts)
	res, err := minimizer.Minimize(ctx, problem.InitialParams(), problem.Cost, problem.Gradient, opts.MaxIters, opts.TargetCost)
	if err != nil {
		return nil, nil, err
	}
	out, err := problem.Apply(res.Params)
	if err != nil {
		return nil, nil, err
	}

	logger.Infow("optimized waypoints",
		"backend", opts.Backend,
		"initial_cost", res.InitialCost,
		"cost", res.Cost,
		"iterations", res.Iterations,
		"status", res.Status)
	if logger.GetLevel() == logging.DEBUG {
		if grad, err := problem.Gradient(res.Params); err == nil {
			logger.Debugw("final gradient", "norm", floats.Norm(grad, 2))
		}
	}
	return out, res, nil
}
