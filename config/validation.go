package config

import (
	"strings"

	"github.com/grovetools/bpschema/errors"
)

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Generation.Validate(); err != nil {
		return err
	}

	if strings.TrimSpace(c.Output.Indent) != "" {
		return errors.New(errors.ErrCodeConfigInvalid, "output.indent must contain only whitespace").
			WithDetail("indent", c.Output.Indent)
	}

	return nil
}

// Validate checks a generation configuration. Failures are configuration
// errors in the generation sense.
func (g Generation) Validate() error {
	if g.View == "" {
		return errors.New(errors.ErrCodeConfig, "generation.view cannot be empty")
	}

	if _, err := g.Fallback(); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfig, "invalid generation.fallback_definition")
	}

	return nil
}
