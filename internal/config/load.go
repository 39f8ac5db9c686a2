package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load initializes the configuration from file and environment variables.
func Load(cfgFile string) {
	// explicit .env loading; a missing .env is fine
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("MBENCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// Set defaults
	viper.SetDefault("warmup_iterations", 1000)
	viper.SetDefault("timed_iterations", 1000)
	viper.SetDefault("buffer_size", 1<<20)
	viper.SetDefault("core", 0)
	viper.SetDefault("pin", true)
	viper.SetDefault("governor", true)
	viper.SetDefault("max_temp_c", 70.0)
	viper.SetDefault("unit", "cycles")
	viper.SetDefault("cache_miss", false)
	viper.SetDefault("output_dir", "results")
	viper.SetDefault("verbose", false)

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// Run carries the per-invocation benchmark settings resolved from
// flags, environment, and config file.
type Run struct {
	Warmup    int
	Timed     int
	BufSize   int
	Core      int
	Pin       bool
	Governor  bool
	MaxTempC  float64
	Unit      string
	CacheMiss bool
	OutputDir string
}

// CurrentRun snapshots the active viper state into a Run.
func CurrentRun() Run {
	return Run{
		Warmup:    viper.GetInt("warmup_iterations"),
		Timed:     viper.GetInt("timed_iterations"),
		BufSize:   viper.GetInt("buffer_size"),
		Core:      viper.GetInt("core"),
		Pin:       viper.GetBool("pin"),
		Governor:  viper.GetBool("governor"),
		MaxTempC:  viper.GetFloat64("max_temp_c"),
		Unit:      viper.GetString("unit"),
		CacheMiss: viper.GetBool("cache_miss"),
		OutputDir: viper.GetString("output_dir"),
	}
}
