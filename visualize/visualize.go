// Package visualize renders sampled trajectories as PNG plots.
package visualize

import (
	"image/color"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"go.viam.com/wayfinder/spline"
	"go.viam.com/wayfinder/waypoint"
)

// File names written by SavePlots.
const (
	PathFile      = "path.png"
	CurvatureFile = "curvature.png"
)

var (
	pathColor     = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	waypointColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

// PathPlot plots the positions of the samples joined by a line, with the waypoints on top.
func PathPlot(points []spline.Point, wps []waypoint.Waypoint) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Path"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	pathPts := plotter.XYs(lo.Map(points, func(pt spline.Point, _ int) plotter.XY {
		return plotter.XY{X: pt.Position.X, Y: pt.Position.Y}
	}))
	if len(pathPts) > 0 {
		line, samples, err := plotter.NewLinePoints(pathPts)
		if err != nil {
			return nil, errors.Wrap(err, "path line")
		}
		line.Color = pathColor
		line.Width = vg.Points(1)
		samples.Color = pathColor
		samples.Radius = vg.Points(1.5)
		p.Add(line, samples)
		p.Legend.Add("samples", line, samples)
	}

	wpPts := plotter.XYs(lo.Map(wps, func(wp waypoint.Waypoint, _ int) plotter.XY {
		return plotter.XY{X: wp.Position.X, Y: wp.Position.Y}
	}))
	if len(wpPts) > 0 {
		scatter, err := plotter.NewScatter(wpPts)
		if err != nil {
			return nil, errors.Wrap(err, "waypoints")
		}
		scatter.Color = waypointColor
		scatter.Shape = draw.CrossGlyph{}
		scatter.Radius = vg.Points(4)
		p.Add(scatter)
		p.Legend.Add("waypoints", scatter)
	}

	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p, nil
}

// CurvaturePlot plots the signed curvature of every sample against its index.
func CurvaturePlot(points []spline.Point) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Curvature"
	p.X.Label.Text = "sample"
	p.Y.Label.Text = "curvature (1/unit)"

	curvPts := make(plotter.XYs, 0, len(points))
	for idx, pt := range points {
		k, err := pt.Curvature()
		if err != nil {
			return nil, errors.Wrapf(err, "sample %d", idx)
		}
		curvPts = append(curvPts, plotter.XY{X: float64(idx), Y: k})
	}
	if len(curvPts) > 0 {
		line, err := plotter.NewLine(curvPts)
		if err != nil {
			return nil, errors.Wrap(err, "curvature line")
		}
		line.Color = pathColor
		line.Width = vg.Points(1)
		p.Add(line)
	}
	p.Add(plotter.NewGrid())
	return p, nil
}

// SavePlots writes PathFile and CurvatureFile into dir and returns their paths.
func SavePlots(dir string, points []spline.Point, wps []waypoint.Waypoint) ([]string, error) {
	pathPlot, err := PathPlot(points, wps)
	if err != nil {
		return nil, err
	}
	curvPlot, err := CurvaturePlot(points)
	if err != nil {
		return nil, err
	}

	pathFile := filepath.Join(dir, PathFile)
	if err := pathPlot.Save(8*vg.Inch, 8*vg.Inch, pathFile); err != nil {
		return nil, errors.Wrap(err, "save path plot")
	}
	curvFile := filepath.Join(dir, CurvatureFile)
	if err := curvPlot.Save(10*vg.Inch, 4*vg.Inch, curvFile); err != nil {
		return nil, errors.Wrap(err, "save curvature plot")
	}
	return []string{pathFile, curvFile}, nil
}
