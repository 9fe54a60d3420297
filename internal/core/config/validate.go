package config

import (
	"fmt"

	"github.com/hay-kot/criterio"
)

// Validate performs structural validation of the configuration.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("im_path", c.IMPath, notEmpty),
		criterio.Run("timeout_seconds", c.TimeoutSeconds, nonNegative),
	)
}

func notEmpty(s string) error {
	if s == "" {
		return fmt.Errorf("value is required")
	}
	return nil
}

func nonNegative(n int) error {
	if n < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}
