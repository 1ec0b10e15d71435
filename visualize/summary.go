package visualize

import (
	"fmt"
	"io"
	"math"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"

	"go.viam.com/wayfinder/spatialmath"
	"go.viam.com/wayfinder/spline"
)

// Summary describes the spacing and curvature of a sampled trajectory.
type Summary struct {
	Samples int `json:"samples"`

	MeanStep float64 `json:"mean_step"`
	MaxStep  float64 `json:"max_step"`

	MeanCurvature   float64 `json:"mean_curvature"`
	StdDevCurvature float64 `json:"stddev_curvature"`
	MaxAbsCurvature float64 `json:"max_abs_curvature"`
}

func (s Summary) String() string {
	return fmt.Sprintf("samples: %d, step mean/max: %.4g/%.4g, curvature mean/stddev/max|k|: %.4g/%.4g/%.4g",
		s.Samples, s.MeanStep, s.MaxStep, s.MeanCurvature, s.StdDevCurvature, s.MaxAbsCurvature)
}

func curvatures(points []spline.Point) ([]float64, error) {
	out := make([]float64, 0, len(points))
	for idx, pt := range points {
		k, err := pt.Curvature()
		if err != nil {
			return nil, errors.Wrapf(err, "sample %d", idx)
		}
		out = append(out, k)
	}
	return out, nil
}

// Summarize computes spacing and curvature statistics of points. Step statistics need at least
// two samples and are left at zero otherwise.
func Summarize(points []spline.Point) (Summary, error) {
	summary := Summary{Samples: len(points)}
	if len(points) == 0 {
		return summary, nil
	}

	if len(points) > 1 {
		steps := make(stats.Float64Data, 0, len(points)-1)
		for i := 1; i < len(points); i++ {
			steps = append(steps, spatialmath.Norm(points[i].Position.Sub(points[i-1].Position)))
		}
		var err error
		if summary.MeanStep, err = stats.Mean(steps); err != nil {
			return Summary{}, err
		}
		if summary.MaxStep, err = stats.Max(steps); err != nil {
			return Summary{}, err
		}
	}

	ks, err := curvatures(points)
	if err != nil {
		return Summary{}, err
	}
	absKs := make(stats.Float64Data, 0, len(ks))
	for _, k := range ks {
		absKs = append(absKs, math.Abs(k))
	}
	if summary.MeanCurvature, err = stats.Mean(ks); err != nil {
		return Summary{}, err
	}
	if summary.StdDevCurvature, err = stats.StandardDeviation(ks); err != nil {
		return Summary{}, err
	}
	if summary.MaxAbsCurvature, err = stats.Max(absKs); err != nil {
		return Summary{}, err
	}
	return summary, nil
}

// FprintCurvatureHistogram writes a text histogram of the curvature of points to w.
func FprintCurvatureHistogram(w io.Writer, points []spline.Point, bins int) error {
	if len(points) == 0 {
		return nil
	}
	if bins < 1 {
		return errors.Errorf("histogram needs at least one bin, got %d", bins)
	}
	ks, err := curvatures(points)
	if err != nil {
		return err
	}
	hist := histogram.Hist(bins, ks)
	return histogram.Fprint(w, hist, histogram.Linear(40))
}
