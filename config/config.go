// Package config defines the job file read by the wayfinder command line tool.
package config

import (
	"fmt"

	goutils "go.viam.com/utils"

	"go.viam.com/wayfinder/logging"
	"go.viam.com/wayfinder/parameterizer"
	"go.viam.com/wayfinder/smoothing"
	"go.viam.com/wayfinder/waypoint"
)

// Config describes a path and how it should be sampled and optimized.
type Config struct {
	ConfigFilePath string `json:"-"`

	Waypoints     []waypoint.Waypoint  `json:"waypoints"`
	Parameterizer parameterizer.Config `json:"parameterizer"`
	Optimizer     smoothing.Options    `json:"optimizer"`
	LogLevel      logging.Level        `json:"log_level"`
}

// DefaultParameterizer is the policy used when a job does not name one.
func DefaultParameterizer() parameterizer.Config {
	return parameterizer.Config{
		Type: parameterizer.CheesyType,
		Attributes: map[string]interface{}{
			"max_dx":     1.0,
			"max_dy":     1.0,
			"max_dtheta": 3.0,
		},
	}
}

// Ensure fills in defaults for every section left unset.
func (c *Config) Ensure() {
	if c.Parameterizer.Type == "" && len(c.Parameterizer.Attributes) == 0 {
		c.Parameterizer = DefaultParameterizer()
	}
	c.Optimizer = c.Optimizer.WithDefaults()
}

// Validate ensures all parts of the config are valid.
func (c *Config) Validate(path string) error {
	if len(c.Waypoints) == 0 {
		return goutils.NewConfigValidationFieldRequiredError(path, "waypoints")
	}
	for idx, wp := range c.Waypoints {
		if err := wp.Validate(joinPath(path, fmt.Sprintf("waypoints.%d", idx))); err != nil {
			return err
		}
	}
	if err := c.Parameterizer.Validate(joinPath(path, "parameterizer")); err != nil {
		return err
	}
	return c.Optimizer.Validate(joinPath(path, "optimizer"))
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
