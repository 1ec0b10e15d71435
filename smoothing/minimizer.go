package smoothing

import (
	"context"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/optimize"

	"go.viam.com/wayfinder/logging"
)

// CostFunc evaluates the objective at x.
type CostFunc func(x []float64) (float64, error)

// GradientFunc evaluates the gradient of the objective at x.
type GradientFunc func(x []float64) ([]float64, error)

// Result is the outcome of a minimization.
type Result struct {
	Params      []float64 `json:"params"`
	Cost        float64   `json:"cost"`
	InitialCost float64   `json:"initial_cost"`
	Iterations  int       `json:"iterations"`
	Status      string    `json:"status"`
}

// A Minimizer searches for the parameters minimizing cost, starting from x0. It stops after
// maxIters iterations or once the cost is at or below targetCost; neither is an error. The
// returned cost is never greater than the cost at x0.
type Minimizer interface {
	Minimize(ctx context.Context, x0 []float64, cost CostFunc, grad GradientFunc, maxIters int, targetCost float64) (*Result, error)
}

// NewMinimizer returns the minimizer for the named backend. The empty name selects gradient descent.
func NewMinimizer(backend string, logger logging.Logger) (Minimizer, error) {
	switch backend {
	case "", GradientDescentBackend:
		return &gonumMinimizer{
			name:   GradientDescentBackend,
			method: func() optimize.Method { return &optimize.GradientDescent{Linesearcher: &optimize.Backtracking{}} },
			logger: logger,
		}, nil
	case LBFGSBackend:
		return &gonumMinimizer{
			name:   LBFGSBackend,
			method: func() optimize.Method { return &optimize.LBFGS{} },
			logger: logger,
		}, nil
	case NloptBackend:
		return newNloptMinimizer(logger)
	default:
		return nil, errors.Errorf("unknown minimizer backend %q", backend)
	}
}

// evalState remembers the first failed evaluation so the run can be stopped and the error
// reported once the backend returns.
type evalState struct {
	err error
}

func (s *evalState) record(err error) {
	if s.err == nil {
		s.err = err
	}
}

// gonumMinimizer runs a gonum optimize method.
type gonumMinimizer struct {
	name   string
	method func() optimize.Method
	logger logging.Logger
}

func (m *gonumMinimizer) Minimize(
	ctx context.Context,
	x0 []float64,
	cost CostFunc,
	grad GradientFunc,
	maxIters int,
	targetCost float64,
) (*Result, error) {
	initialCost, done, err := start(ctx, x0, cost, targetCost)
	if done != nil || err != nil {
		return done, err
	}

	state := &evalState{}
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			c, err := cost(x)
			if err != nil {
				state.record(err)
				return math.Inf(1)
			}
			return c
		},
		Grad: func(dst, x []float64) {
			g, err := grad(x)
			if err != nil {
				state.record(err)
				for i := range dst {
					dst[i] = 0
				}
				return
			}
			copy(dst, g)
		},
	}
	settings := &optimize.Settings{
		MajorIterations: maxIters,
		Converger: &targetConverger{
			ctx:    ctx,
			target: targetCost,
			state:  state,
			inner:  &optimize.FunctionConverge{Absolute: 1e-10, Iterations: maxIters},
		},
	}

	result, err := optimize.Minimize(problem, x0, settings, m.method())
	if state.err != nil {
		return nil, state.err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil {
		if result == nil {
			return nil, errors.Wrapf(err, "%s failed", m.name)
		}
		m.logger.Warnw("minimizer stopped early, keeping best point", "backend", m.name, "status", result.Status.String(), "error", err)
	}

	return bestResult(x0, initialCost, result.X, result.F, result.Stats.MajorIterations, result.Status.String()), nil
}

// targetConverger stops a gonum run once the cost reaches the target, the context is done or an
// evaluation failed, and otherwise defers to inner.
type targetConverger struct {
	ctx    context.Context
	target float64
	state  *evalState
	inner  optimize.Converger
}

func (c *targetConverger) Init(dim int) {
	c.inner.Init(dim)
}

func (c *targetConverger) Converged(loc *optimize.Location) optimize.Status {
	switch {
	case c.state.err != nil:
		return optimize.Failure
	case c.ctx.Err() != nil:
		return optimize.RuntimeLimit
	case loc.F <= c.target:
		return optimize.FunctionThreshold
	default:
		return c.inner.Converged(loc)
	}
}

// start evaluates the initial cost. It returns a finished result when x0 already meets the
// target, and the context error when the run is canceled before it begins.
func start(ctx context.Context, x0 []float64, cost CostFunc, targetCost float64) (float64, *Result, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}
	initialCost, err := cost(x0)
	if err != nil {
		return 0, nil, err
	}
	if initialCost <= targetCost {
		return initialCost, bestResult(x0, initialCost, x0, initialCost, 0, optimize.FunctionThreshold.String()), nil
	}
	return initialCost, nil, nil
}

// bestResult falls back to x0 when the backend did not improve on it.
func bestResult(x0 []float64, initialCost float64, x []float64, cost float64, iterations int, status string) *Result {
	params := make([]float64, len(x0))
	if x != nil && len(x) == len(x0) && cost <= initialCost {
		copy(params, x)
	} else {
		copy(params, x0)
		cost = initialCost
	}
	return &Result{
		Params:      params,
		Cost:        cost,
		InitialCost: initialCost,
		Iterations:  iterations,
		Status:      status,
	}
}
