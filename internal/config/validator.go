package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ValidateConfig validates configuration values and returns an error if any are invalid.
// This function should be called after viper has loaded the configuration.
func ValidateConfig() error {
	var errors []string

	if n := viper.GetInt("warmup_iterations"); n < 0 {
		errors = append(errors, fmt.Sprintf("warmup_iterations must not be negative, got: %d", n))
	}

	if n := viper.GetInt("timed_iterations"); n <= 0 {
		errors = append(errors, fmt.Sprintf("timed_iterations must be positive, got: %d", n))
	}

	if n := viper.GetInt("buffer_size"); n <= 0 {
		errors = append(errors, fmt.Sprintf("buffer_size must be positive, got: %d", n))
	}

	if n := viper.GetInt("core"); n < 0 {
		errors = append(errors, fmt.Sprintf("core must not be negative, got: %d", n))
	}

	if v := viper.GetFloat64("max_temp_c"); v <= 0 {
		errors = append(errors, fmt.Sprintf("max_temp_c must be positive, got: %g", v))
	}

	switch unit := viper.GetString("unit"); unit {
	case "cycles", "microseconds":
	default:
		errors = append(errors, fmt.Sprintf("unit must be cycles or microseconds, got: %q", unit))
	}

	if dir := viper.GetString("output_dir"); dir == "" {
		errors = append(errors, "output_dir must not be empty")
	}

	if len(errors) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(errors, "\n  - "))
	}
	return nil
}
