package smoothing

import (
	"context"
	"errors"
	"testing"

	"go.viam.com/test"

	"go.viam.com/wayfinder/logging"
	"go.viam.com/wayfinder/spatialmath"
	"go.viam.com/wayfinder/spline"
	"go.viam.com/wayfinder/waypoint"
)

func sCurve() []waypoint.Waypoint {
	return []waypoint.Waypoint{
		waypoint.New(0, 0, 1, 0, 0, 0),
		waypoint.New(5, 5, 0, 1, 0, 0),
		waypoint.New(10, 10, 1, 0, 0, 0),
		waypoint.New(15, 15, 0, 1, 0, 0),
	}
}

func TestOptions(t *testing.T) {
	test.That(t, DefaultOptions().Validate("optimizer"), test.ShouldBeNil)
	test.That(t, Options{}.WithDefaults(), test.ShouldResemble, DefaultOptions())

	custom := Options{Eps: 1e-5, Samples: 100}.WithDefaults()
	test.That(t, custom.Eps, test.ShouldEqual, 1e-5)
	test.That(t, custom.Samples, test.ShouldEqual, 100)
	test.That(t, custom.MaxIters, test.ShouldEqual, DefaultMaxIters)

	for _, tc := range []struct {
		opts Options
		msg  string
	}{
		{Options{Eps: 0, Samples: 10, MaxIters: 1}, "eps"},
		{Options{Eps: 1, Samples: 0, MaxIters: 1}, "samples"},
		{Options{Eps: 1, Samples: 10, MaxIters: 0}, "max_iters"},
		{Options{Eps: 1, Samples: 10, MaxIters: 1, TargetCost: -1}, "target_cost"},
		{Options{Eps: 1, Samples: 10, MaxIters: 1, Backend: "newton"}, "newton"},
	} {
		err := tc.opts.Validate("optimizer")
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, tc.msg)
	}
}

func TestProblemParams(t *testing.T) {
	wps := sCurve()
	wps[1].Curvature.X = 0.5
	wps[2].Curvature.Y = -0.25
	problem := NewProblem(wps, DefaultOptions())

	test.That(t, problem.NumParams(), test.ShouldEqual, 4)
	params := problem.InitialParams()
	test.That(t, params, test.ShouldResemble, []float64{0.5, 0, 0, -0.25})

	applied, err := problem.Apply([]float64{1, 2, 3, 4})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, applied[0], test.ShouldResemble, wps[0])
	test.That(t, applied[3], test.ShouldResemble, wps[3])
	test.That(t, applied[1].Curvature.X, test.ShouldEqual, 1.)
	test.That(t, applied[1].Curvature.Y, test.ShouldEqual, 2.)
	test.That(t, applied[2].Curvature.X, test.ShouldEqual, 3.)
	test.That(t, applied[2].Curvature.Y, test.ShouldEqual, 4.)
	// the problem keeps its own copy
	test.That(t, wps[1].Curvature.X, test.ShouldEqual, 0.5)

	_, err = problem.Apply([]float64{1})
	test.That(t, err, test.ShouldNotBeNil)
	_, err = problem.Cost([]float64{1, 2, 3})
	test.That(t, err, test.ShouldNotBeNil)

	test.That(t, NewProblem(wps[:2], DefaultOptions()).NumParams(), test.ShouldEqual, 0)
}

func TestCostIsSumOfSegmentIntegrals(t *testing.T) {
	opts := DefaultOptions()
	wps := sCurve()
	problem := NewProblem(wps, opts)

	segments, err := spline.Hermites(wps)
	test.That(t, err, test.ShouldBeNil)
	expected := 0.
	for _, seg := range segments {
		integral, err := seg.IntegralDCurvatureDTSquared(opts.Samples)
		test.That(t, err, test.ShouldBeNil)
		expected += integral
	}

	cost, err := problem.Cost(problem.InitialParams())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cost, test.ShouldEqual, expected)
	test.That(t, cost, test.ShouldBeGreaterThan, 0)
}

func TestGradientIsForwardDifference(t *testing.T) {
	opts := DefaultOptions()
	problem := NewProblem(sCurve(), opts)
	params := []float64{0.1, -0.2, 0.3, 0.05}

	grad, err := problem.Gradient(params)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, grad, test.ShouldHaveLength, len(params))

	ref, err := problem.Cost(params)
	test.That(t, err, test.ShouldBeNil)
	for i := range params {
		perturbed := append([]float64{}, params...)
		perturbed[i] += opts.Eps
		fwd, err := problem.Cost(perturbed)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, grad[i], test.ShouldEqual, (fwd-ref)/opts.Eps)
	}
}

func TestParallelGradientMatchesSequential(t *testing.T) {
	opts := DefaultOptions()
	params := []float64{0.1, -0.2, 0.3, 0.05}

	sequential, err := NewProblem(sCurve(), opts).Gradient(params)
	test.That(t, err, test.ShouldBeNil)

	opts.Parallel = true
	parallel, err := NewProblem(sCurve(), opts).Gradient(params)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, parallel, test.ShouldResemble, sequential)
}

func TestOptimizeFewWaypoints(t *testing.T) {
	logger := logging.NewTestLogger(t)
	for _, wps := range [][]waypoint.Waypoint{
		nil,
		{waypoint.New(0, 0, 1, 0, 0, 0)},
		{waypoint.New(0, 0, 10, 0, 0, 0), waypoint.New(10, 10, 0, 10, 0, 0)},
	} {
		out, res, err := Optimize(context.Background(), wps, DefaultOptions(), logger)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, out, test.ShouldHaveLength, len(wps))
		for i := range wps {
			test.That(t, out[i], test.ShouldResemble, wps[i])
		}
		test.That(t, res.Iterations, test.ShouldEqual, 0)
		test.That(t, res.Params, test.ShouldBeEmpty)
	}

	invalid := Options{Eps: -1}
	pair := []waypoint.Waypoint{waypoint.New(0, 0, 10, 0, 0, 0), waypoint.New(10, 10, 0, 10, 0, 0)}
	out, res, err := Optimize(context.Background(), pair, invalid, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldResemble, pair)
	test.That(t, res.Status, test.ShouldEqual, "NoInteriorWaypoints")

	_, _, err = Optimize(context.Background(), sCurve(), invalid, logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "eps")
}

func TestOptimizeSCurve(t *testing.T) {
	for _, backend := range []string{GradientDescentBackend, LBFGSBackend} {
		t.Run(backend, func(t *testing.T) {
			logger, logs := logging.NewObservedTestLogger(t)
			opts := DefaultOptions()
			opts.Backend = backend
			opts.MaxIters = 100
			opts.TargetCost = 0.001

			wps := sCurve()
			out, res, err := Optimize(context.Background(), wps, opts, logger)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, res.Cost, test.ShouldBeLessThanOrEqualTo, res.InitialCost)
			test.That(t, res.Iterations, test.ShouldBeLessThanOrEqualTo, opts.MaxIters)
			test.That(t, res.Params, test.ShouldHaveLength, 4)

			// the ends are fixed and only interior curvatures move
			test.That(t, out, test.ShouldHaveLength, len(wps))
			test.That(t, out[0], test.ShouldResemble, wps[0])
			test.That(t, out[3], test.ShouldResemble, wps[3])
			for i := 1; i < 3; i++ {
				test.That(t, out[i].Position, test.ShouldResemble, wps[i].Position)
				test.That(t, out[i].Tangent, test.ShouldResemble, wps[i].Tangent)
			}

			initial, err := NewProblem(wps, opts).Cost(NewProblem(wps, opts).InitialParams())
			test.That(t, err, test.ShouldBeNil)
			test.That(t, res.InitialCost, test.ShouldEqual, initial)
			final, err := NewProblem(out, opts).Cost(NewProblem(out, opts).InitialParams())
			test.That(t, err, test.ShouldBeNil)
			test.That(t, final, test.ShouldAlmostEqual, res.Cost, 1e-9)

			test.That(t, logs.FilterMessage("optimized waypoints").Len(), test.ShouldEqual, 1)
		})
	}
}

func TestOptimizeReachedTarget(t *testing.T) {
	opts := DefaultOptions()
	opts.TargetCost = 1e12

	wps := sCurve()
	out, res, err := Optimize(context.Background(), wps, opts, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, res.Iterations, test.ShouldEqual, 0)
	test.That(t, res.Cost, test.ShouldEqual, res.InitialCost)
	test.That(t, res.Status, test.ShouldEqual, "FunctionThreshold")
	for i := range wps {
		test.That(t, out[i], test.ShouldResemble, wps[i])
	}
}

func TestOptimizeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := Optimize(ctx, sCurve(), DefaultOptions(), logging.NewTestLogger(t))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, errors.Is(err, context.Canceled), test.ShouldBeTrue)
}

func TestOptimizeDegenerate(t *testing.T) {
	wps := sCurve()
	wps[2].Tangent.X = 0
	wps[2].Tangent.Y = 0
	_, _, err := Optimize(context.Background(), wps, DefaultOptions(), logging.NewTestLogger(t))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, errors.Is(err, spatialmath.ErrDegenerateGeometry), test.ShouldBeTrue)
}

func TestNewMinimizer(t *testing.T) {
	logger := logging.NewTestLogger(t)
	for _, backend := range []string{"", GradientDescentBackend, LBFGSBackend} {
		m, err := NewMinimizer(backend, logger)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, m, test.ShouldNotBeNil)
	}
	_, err := NewMinimizer("simplex", logger)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestMinimizeQuadratic(t *testing.T) {
	cost := func(x []float64) (float64, error) {
		return (x[0]-3)*(x[0]-3) + (x[1]+1)*(x[1]+1), nil
	}
	grad := func(x []float64) ([]float64, error) {
		return []float64{2 * (x[0] - 3), 2 * (x[1] + 1)}, nil
	}
	m, err := NewMinimizer(LBFGSBackend, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	res, err := m.Minimize(context.Background(), []float64{0, 0}, cost, grad, 100, 1e-8)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, res.InitialCost, test.ShouldEqual, 10.)
	test.That(t, res.Cost, test.ShouldBeLessThanOrEqualTo, 1e-8)
	test.That(t, res.Params[0], test.ShouldAlmostEqual, 3, 1e-3)
	test.That(t, res.Params[1], test.ShouldAlmostEqual, -1, 1e-3)
}
