package smoothing

import (
	"math"

	"github.com/pkg/errors"
	goutils "go.viam.com/utils"
)

// The supported minimizer backends.
const (
	GradientDescentBackend = "gradient_descent"
	LBFGSBackend           = "lbfgs"
	NloptBackend           = "nlopt"
)

// Defaults used when the corresponding option is left at zero.
const (
	DefaultEps        = 1e-2
	DefaultSamples    = 10
	DefaultMaxIters   = 100
	DefaultTargetCost = 0.001
)

// Options configures the smoothing objective and the minimizer run against it.
type Options struct {
	// Eps is the forward difference step of the gradient.
	Eps float64 `json:"eps"`
	// Samples is the number of subintervals of every segment's smoothness integral.
	Samples    int     `json:"samples"`
	MaxIters   int     `json:"max_iters"`
	TargetCost float64 `json:"target_cost"`
	Backend    string  `json:"backend,omitempty"`
	// Parallel evaluates the perturbed costs of a gradient concurrently.
	Parallel bool `json:"parallel,omitempty"`
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Eps:        DefaultEps,
		Samples:    DefaultSamples,
		MaxIters:   DefaultMaxIters,
		TargetCost: DefaultTargetCost,
		Backend:    GradientDescentBackend,
	}
}

// WithDefaults returns a copy of o where every unset field takes its default.
func (o Options) WithDefaults() Options {
	if o.Eps == 0 {
		o.Eps = DefaultEps
	}
	if o.Samples == 0 {
		o.Samples = DefaultSamples
	}
	if o.MaxIters == 0 {
		o.MaxIters = DefaultMaxIters
	}
	if o.TargetCost == 0 {
		o.TargetCost = DefaultTargetCost
	}
	if o.Backend == "" {
		o.Backend = GradientDescentBackend
	}
	return o
}

// Validate ensures all parts of the options are valid.
func (o Options) Validate(path string) error {
	if !(o.Eps > 0) || math.IsInf(o.Eps, 1) {
		return goutils.NewConfigValidationError(path, errors.Errorf("eps must be a positive number, got %v", o.Eps))
	}
	if o.Samples < 1 {
		return goutils.NewConfigValidationError(path, errors.Errorf("samples must be at least 1, got %d", o.Samples))
	}
	if o.MaxIters < 1 {
		return goutils.NewConfigValidationError(path, errors.Errorf("max_iters must be at least 1, got %d", o.MaxIters))
	}
	if math.IsNaN(o.TargetCost) || o.TargetCost < 0 {
		return goutils.NewConfigValidationError(path, errors.Errorf("target_cost must be a non-negative number, got %v", o.TargetCost))
	}
	switch o.Backend {
	case "", GradientDescentBackend, LBFGSBackend, NloptBackend:
	default:
		return goutils.NewConfigValidationError(path, errors.Errorf("unknown backend %q", o.Backend))
	}
	return nil
}
