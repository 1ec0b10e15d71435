// Package cli contains the wayfinder command line tool.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

const (
	// Flags.
	flagConfig    = "config"
	flagDebug     = "debug"
	flagOutput    = "output"
	flagOutputDir = "output-dir"
	flagOptimize  = "optimize"
	flagLogFile   = "log-file"
	flagHistogram = "histogram"
)

// NewApp returns the wayfinder app writing results to out and logs and diagnostics to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "wayfinder",
		Usage:           "sample and smooth waypoint trajectories",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     flagConfig,
				Aliases:  []string{"c"},
				Usage:    "load the job from `FILE`",
				Required: true,
			},
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
			&cli.StringFlag{
				Name:  flagLogFile,
				Usage: "also write logs to `FILE`, rotated every 10MB",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "sample",
				Usage:  "sample the path with the configured parameterizer and print the points as JSON",
				Action: SampleAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    flagOutput,
						Aliases: []string{"o"},
						Usage:   "write the points to `FILE` instead of stdout",
					},
					&cli.BoolFlag{
						Name:  flagOptimize,
						Usage: "optimize the waypoints before sampling",
					},
					&cli.IntFlag{
						Name:  flagHistogram,
						Usage: "print a curvature histogram with `N` bins",
					},
				},
			},
			{
				Name:   "optimize",
				Usage:  "optimize the interior waypoint curvatures and print the waypoints as JSON",
				Action: OptimizeAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    flagOutput,
						Aliases: []string{"o"},
						Usage:   "write the waypoints to `FILE` instead of stdout",
					},
				},
			},
			{
				Name:   "plot",
				Usage:  "plot the sampled path and its curvature as PNG files",
				Action: PlotAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  flagOutputDir,
						Usage: "write the plots into `DIR`",
						Value: ".",
					},
					&cli.BoolFlag{
						Name:  flagOptimize,
						Usage: "optimize the waypoints before sampling",
					},
				},
			},
		},
	}
}
