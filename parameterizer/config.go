package parameterizer

import (
	"fmt"
	"math"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	goutils "go.viam.com/utils"
)

// the set of supported parameterizer types.
const (
	CheesyType = "cheesy"
	JaciType   = "jaci"
)

// Config selects an error policy by name and carries its bounds as free-form attributes, e.g.
// {"type": "jaci", "attributes": {"max_ds": 0.5, "max_dc": 0.1}}.
type Config struct {
	Type       string                 `json:"type"`
	Attributes map[string]interface{} `json:"attributes"`
}

// Validate ensures the config names a known policy with usable bounds.
func (c *Config) Validate(path string) error {
	if c.Type == "" {
		return goutils.NewConfigValidationFieldRequiredError(path, "type")
	}
	_, err := c.build(path)
	return err
}

// Build returns the configured policy.
func (c *Config) Build() (Parameterizer, error) {
	return c.build("")
}

func (c *Config) build(path string) (Parameterizer, error) {
	switch c.Type {
	case CheesyType:
		policy := &Cheesy{}
		if err := decodeAttributes(c.Attributes, policy); err != nil {
			return nil, goutils.NewConfigValidationError(path, err)
		}
		if err := policy.Validate(path); err != nil {
			return nil, err
		}
		return policy, nil
	case JaciType:
		policy := &Jaci{}
		if err := decodeAttributes(c.Attributes, policy); err != nil {
			return nil, goutils.NewConfigValidationError(path, err)
		}
		if err := policy.Validate(path); err != nil {
			return nil, err
		}
		return policy, nil
	default:
		return nil, goutils.NewConfigValidationError(path, errors.Errorf("unknown parameterizer type %q", c.Type))
	}
}

func decodeAttributes(attributes map[string]interface{}, target interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           target,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return errors.Wrap(decoder.Decode(attributes), "failed to decode parameterizer attributes")
}

func validateBounds(path string, names []string, vals []float64) error {
	for i, name := range names {
		v := vals[i]
		if math.IsNaN(v) || v < 0 {
			return goutils.NewConfigValidationError(path, errors.Errorf("%s must be a non-negative number, got %v", name, v))
		}
	}
	return nil
}

func (c Config) String() string {
	return fmt.Sprintf("%s%v", c.Type, c.Attributes)
}
