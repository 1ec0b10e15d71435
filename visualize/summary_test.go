package visualize

import (
	"bytes"
	"testing"

	"go.viam.com/test"

	"go.viam.com/wayfinder/spline"
	"go.viam.com/wayfinder/waypoint"
)

func TestSummarizeStraightLine(t *testing.T) {
	h, err := spline.NewHermite(waypoint.New(0, 0, 1, 0, 0, 0), waypoint.New(4, 0, 1, 0, 0, 0))
	test.That(t, err, test.ShouldBeNil)
	points := []spline.Point{h.PointAt(0), h.PointAt(0.5), h.PointAt(1)}

	summary, err := Summarize(points)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, summary.Samples, test.ShouldEqual, 3)
	test.That(t, summary.MeanStep, test.ShouldAlmostEqual, 2, 1e-9)
	test.That(t, summary.MaxStep, test.ShouldAlmostEqual, 2, 1e-9)
	test.That(t, summary.MaxAbsCurvature, test.ShouldEqual, 0.)
	test.That(t, summary.String(), test.ShouldContainSubstring, "samples: 3")
}

func TestSummarizeCurve(t *testing.T) {
	points, _ := samplePath(t)
	summary, err := Summarize(points)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, summary.Samples, test.ShouldEqual, len(points))
	test.That(t, summary.MaxStep, test.ShouldBeGreaterThanOrEqualTo, summary.MeanStep)
	test.That(t, summary.MaxAbsCurvature, test.ShouldBeGreaterThan, 0)

	empty, err := Summarize(nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, empty, test.ShouldResemble, Summary{})

	_, err = Summarize([]spline.Point{{}})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestFprintCurvatureHistogram(t *testing.T) {
	points, _ := samplePath(t)
	var buf bytes.Buffer
	test.That(t, FprintCurvatureHistogram(&buf, points, 5), test.ShouldBeNil)
	test.That(t, buf.Len(), test.ShouldBeGreaterThan, 0)

	test.That(t, FprintCurvatureHistogram(&buf, points, 0), test.ShouldNotBeNil)
}
