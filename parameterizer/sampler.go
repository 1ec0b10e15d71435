package parameterizer

import (
	"math"

	"github.com/pkg/errors"

	"go.viam.com/wayfinder/logging"
	"go.viam.com/wayfinder/spline"
)

// DefaultTEpsilon is the parameter distance under which a span is considered finished, and
// the step size below which a policy is no longer consulted.
const DefaultTEpsilon = 1e-3

// Sampler walks spline segments with an adaptive step, halving it while its policy reports the
// step too coarse and doubling it after every accepted step.
type Sampler struct {
	policy   Parameterizer
	tEpsilon float64
	logger   logging.Logger
}

// NewSampler returns a sampler driven by policy.
func NewSampler(policy Parameterizer, logger logging.Logger) *Sampler {
	return &Sampler{policy: policy, tEpsilon: DefaultTEpsilon, logger: logger}
}

// Parameterize samples every segment over [0, 1] in order, preceded by the start of the first
// segment. Later segments contribute no t=0 sample of their own; the shared boundary is whatever
// the previous segment emitted last.
func (s *Sampler) Parameterize(segments []spline.Spline) ([]spline.Point, error) {
	if len(segments) == 0 {
		return nil, nil
	}
	first := segments[0].PointAt(0)
	first.Segment = 0
	out := []spline.Point{first}

	var err error
	for idx, seg := range segments {
		before := len(out)
		out, err = s.Subdivide(idx, seg, 0, 1, out)
		if err != nil {
			return nil, errors.Wrapf(err, "segment %d", idx)
		}
		s.logger.Debugw("parameterized segment", "segment", idx, "samples", len(out)-before)
	}
	return out, nil
}

// Subdivide appends samples of seg between t0 (exclusive) and t1 to out and returns the extended
// slice. t1 may be less than t0 to walk the segment backwards.
func (s *Sampler) Subdivide(segIdx int, seg spline.Spline, t0, t1 float64, out []spline.Point) ([]spline.Point, error) {
	tCurr := t0
	tStep := t1 - t0
	subdivisions := 0

	for ((t0 < t1 && tCurr < t1) || (t0 > t1 && tCurr > t1)) && math.Abs(t1-tCurr) > s.tEpsilon {
		if math.Abs(tStep) > s.tEpsilon {
			subdivide, err := s.policy.ShouldSubdivide(seg, tCurr, tStep)
			if err != nil {
				return out, err
			}
			if subdivide {
				tStep /= 2
				subdivisions++
				continue
			}
		}

		tCurr += tStep
		if math.Abs(tStep) >= math.Abs(t1-tCurr)/2 {
			tStep = t1 - tCurr
		} else {
			tStep *= 2
		}

		pt := seg.PointAt(tCurr)
		pt.Segment = segIdx
		out = append(out, pt)
	}

	if subdivisions > 0 {
		s.logger.Debugw("subdivided segment", "segment", segIdx, "subdivisions", subdivisions)
	}
	return out, nil
}
