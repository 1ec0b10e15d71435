package visualize

import (
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"

	"go.viam.com/wayfinder/logging"
	"go.viam.com/wayfinder/parameterizer"
	"go.viam.com/wayfinder/spline"
	"go.viam.com/wayfinder/waypoint"
)

func samplePath(t *testing.T) ([]spline.Point, []waypoint.Waypoint) {
	t.Helper()
	wps := []waypoint.Waypoint{
		waypoint.New(0, 0, 10, 0, 0, 0),
		waypoint.New(10, 10, 0, 10, 0, 0),
	}
	hermites, err := spline.Hermites(wps)
	test.That(t, err, test.ShouldBeNil)
	points, err := parameterizer.NewSampler(parameterizer.NewCheesy(1, 1, 0.1), logging.NewTestLogger(t)).
		Parameterize(spline.Splines(hermites))
	test.That(t, err, test.ShouldBeNil)
	return points, wps
}

func TestSavePlots(t *testing.T) {
	points, wps := samplePath(t)
	dir := t.TempDir()

	files, err := SavePlots(dir, points, wps)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, files, test.ShouldResemble, []string{filepath.Join(dir, PathFile), filepath.Join(dir, CurvatureFile)})
	for _, file := range files {
		info, err := os.Stat(file)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, info.Size(), test.ShouldBeGreaterThan, 0)
	}
}

func TestPlotsWithoutSamples(t *testing.T) {
	p, err := PathPlot(nil, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, p.Title.Text, test.ShouldEqual, "Path")

	p, err = CurvaturePlot(nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, p.Title.Text, test.ShouldEqual, "Curvature")
}

func TestCurvaturePlotDegenerate(t *testing.T) {
	_, err := CurvaturePlot([]spline.Point{{}})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "sample 0")
}
