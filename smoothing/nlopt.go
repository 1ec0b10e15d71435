//go:build !windows && !no_cgo

package smoothing

import (
	"context"
	"math"

	"github.com/go-nlopt/nlopt"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/wayfinder/logging"
)

// nloptMinimizer runs nlopt's gradient based L-BFGS. nlopt has no notion of major iterations,
// so the iteration budget caps objective evaluations.
type nloptMinimizer struct {
	logger logging.Logger
}

func newNloptMinimizer(logger logging.Logger) (Minimizer, error) {
	return &nloptMinimizer{logger: logger}, nil
}

func (m *nloptMinimizer) Minimize(
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

	opt, err := nlopt.NewNLopt(nlopt.LD_LBFGS, uint(len(x0)))
	if err != nil {
		return nil, errors.Wrap(err, "nlopt creation error")
	}
	defer opt.Destroy()

	state := &evalState{}
	evaluations := 0
	// gradient is, under the hood, a C array that nlopt expects to be mutated in place. It is
	// empty when nlopt only needs the value.
	objective := func(x, gradient []float64) float64 {
		evaluations++
		if ctx.Err() != nil {
			if err := opt.ForceStop(); err != nil {
				m.logger.Debugw("forcestop error", "error", err)
			}
			return math.Inf(1)
		}
		c, err := cost(x)
		if err == nil && len(gradient) > 0 {
			var g []float64
			g, err = grad(x)
			copy(gradient, g)
		}
		if err != nil {
			state.record(err)
			if err := opt.ForceStop(); err != nil {
				m.logger.Debugw("forcestop error", "error", err)
			}
			return math.Inf(1)
		}
		return c
	}

	err = multierr.Combine(
		opt.SetMinObjective(objective),
		opt.SetMaxEval(maxIters),
		opt.SetStopVal(targetCost),
		opt.SetFtolAbs(1e-10),
	)
	if err != nil {
		return nil, errors.Wrap(err, "nlopt setup error")
	}

	x, minf, nloptErr := opt.Optimize(append([]float64{}, x0...))
	if state.err != nil {
		return nil, state.err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	status := "Success"
	if nloptErr != nil {
		status = nloptErr.Error()
		m.logger.Warnw("minimizer stopped early, keeping best point", "backend", NloptBackend, "error", nloptErr)
	}
	return bestResult(x0, initialCost, x, minf, evaluations, status), nil
}
