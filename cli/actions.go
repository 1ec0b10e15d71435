package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/wayfinder/config"
	"go.viam.com/wayfinder/logging"
	"go.viam.com/wayfinder/parameterizer"
	"go.viam.com/wayfinder/smoothing"
	"go.viam.com/wayfinder/spline"
	"go.viam.com/wayfinder/visualize"
	"go.viam.com/wayfinder/waypoint"
)

const (
	logFileMaxSizeMB  = 10
	logFileMaxBackups = 3
)

// job is a loaded config and the logger configured by it.
type job struct {
	cfg     *config.Config
	logger  logging.Logger
	logFile *logging.FileAppender
}

func loadJob(c *cli.Context) (*job, error) {
	j := &job{logger: logging.NewBlankLogger("wayfinder")}
	j.logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
	if path := c.String(flagLogFile); path != "" {
		j.logFile = logging.NewFileAppender(path, logFileMaxSizeMB, logFileMaxBackups)
		j.logger.AddAppender(j.logFile)
	}
	if c.Bool(flagDebug) {
		j.logger.SetLevel(logging.DEBUG)
	}

	cfg, err := config.Read(c.Context, c.String(flagConfig), j.logger)
	if err != nil {
		j.close()
		return nil, err
	}
	if !c.Bool(flagDebug) {
		j.logger.SetLevel(cfg.LogLevel)
	}
	j.cfg = cfg
	return j, nil
}

func (j *job) close() {
	if j.logFile != nil {
		//nolint:errcheck
		j.logFile.Close()
	}
}

// waypoints returns the job's waypoints, optimized first when asked to.
func (j *job) waypoints(c *cli.Context, optimize bool) ([]waypoint.Waypoint, *smoothing.Result, error) {
	if !optimize {
		return j.cfg.Waypoints, nil, nil
	}
	return smoothing.Optimize(c.Context, j.cfg.Waypoints, j.cfg.Optimizer, j.logger.Sublogger("smoothing"))
}

func (j *job) sample(wps []waypoint.Waypoint) ([]spline.Point, error) {
	policy, err := j.cfg.Parameterizer.Build()
	if err != nil {
		return nil, err
	}
	hermites, err := spline.Hermites(wps)
	if err != nil {
		return nil, err
	}
	return parameterizer.NewSampler(policy, j.logger.Sublogger("sampler")).Parameterize(spline.Splines(hermites))
}

// SampleAction samples the configured path.
func SampleAction(c *cli.Context) error {
	j, err := loadJob(c)
	if err != nil {
		return err
	}
	defer j.close()
	wps, _, err := j.waypoints(c, c.Bool(flagOptimize))
	if err != nil {
		return err
	}
	points, err := j.sample(wps)
	if err != nil {
		return err
	}
	if points == nil {
		points = []spline.Point{}
	}
	if err := writeJSON(c, points); err != nil {
		return err
	}
	printf(c.App.ErrWriter, "sampled %d points from %d segments", len(points), max(len(wps)-1, 0))

	summary, err := visualize.Summarize(points)
	if err != nil {
		return err
	}
	printf(c.App.ErrWriter, "%s", summary)
	if bins := c.Int(flagHistogram); bins > 0 {
		return visualize.FprintCurvatureHistogram(c.App.ErrWriter, points, bins)
	}
	return nil
}

// OptimizeAction optimizes the configured waypoints.
func OptimizeAction(c *cli.Context) error {
	j, err := loadJob(c)
	if err != nil {
		return err
	}
	defer j.close()
	wps, res, err := j.waypoints(c, true)
	if err != nil {
		return err
	}
	if err := writeJSON(c, wps); err != nil {
		return err
	}
	printf(c.App.ErrWriter, "%s", curvatureTable(j.cfg.Waypoints, wps))
	printf(c.App.ErrWriter, "initial cost: %g", res.InitialCost)
	printf(c.App.ErrWriter, "final cost: %g", res.Cost)
	printf(c.App.ErrWriter, "iterations: %d (%s)", res.Iterations, res.Status)
	return nil
}

// curvatureTable renders the curvature vector of every waypoint before and after optimization.
func curvatureTable(before, after []waypoint.Waypoint) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Position", "Curvature", "Optimized curvature"})
	for i, wp := range before {
		opt := wp.Curvature
		if i < len(after) {
			opt = after[i].Curvature
		}
		t.AppendRow(table.Row{
			i,
			fmt.Sprintf("X:%.3f, Y:%.3f", wp.Position.X, wp.Position.Y),
			fmt.Sprintf("X:%.4f, Y:%.4f", wp.Curvature.X, wp.Curvature.Y),
			fmt.Sprintf("X:%.4f, Y:%.4f", opt.X, opt.Y),
		})
	}
	return t.Render()
}

// PlotAction writes plots of the sampled path.
func PlotAction(c *cli.Context) error {
	j, err := loadJob(c)
	if err != nil {
		return err
	}
	defer j.close()
	wps, _, err := j.waypoints(c, c.Bool(flagOptimize))
	if err != nil {
		return err
	}
	points, err := j.sample(wps)
	if err != nil {
		return err
	}
	dir := c.String(flagOutputDir)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return errors.Wrapf(err, "could not create output directory %q", dir)
	}
	files, err := visualize.SavePlots(dir, points, wps)
	if err != nil {
		return err
	}
	for _, file := range files {
		printf(c.App.Writer, "wrote %s", file)
	}
	return nil
}

func writeJSON(c *cli.Context, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	out = append(out, '\n')
	if path := c.String(flagOutput); path != "" {
		return errors.Wrapf(os.WriteFile(path, out, 0o600), "could not write %q", path)
	}
	_, err = c.App.Writer.Write(out)
	return err
}

// printf prints a message with no prefix.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}
