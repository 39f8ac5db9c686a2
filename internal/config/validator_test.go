package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name      string
		setup     func()
		wantError bool
		errMsg    string
	}{
		{
			name: "Valid Configuration",
			setup: func() {
				viper.Set("timed_iterations", 100)
				viper.Set("buffer_size", 4096)
				viper.Set("max_temp_c", 70.0)
				viper.Set("unit", "cycles")
				viper.Set("output_dir", "results")
			},
			wantError: false,
		},
		{
			name: "Negative Warmup",
			setup: func() {
				viper.Set("warmup_iterations", -1)
			},
			wantError: true,
			errMsg:    "warmup_iterations must not be negative",
		},
		{
			name: "Zero Timed Iterations",
			setup: func() {
				viper.Set("timed_iterations", 0)
			},
			wantError: true,
			errMsg:    "timed_iterations must be positive",
		},
		{
			name: "Negative Core",
			setup: func() {
				viper.Set("core", -2)
			},
			wantError: true,
			errMsg:    "core must not be negative",
		},
		{
			name: "Unknown Timing Unit",
			setup: func() {
				viper.Set("unit", "nanocenturies")
			},
			wantError: true,
			errMsg:    "unit must be cycles or microseconds",
		},
		{
			name: "Empty Output Directory",
			setup: func() {
				viper.Set("output_dir", "")
			},
			wantError: true,
			errMsg:    "output_dir must not be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			Load("")
			tt.setup()

			err := ValidateConfig()
			if tt.wantError {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.errMsg)
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Fatalf("expected error containing %q, got: %v", tt.errMsg, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
