package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mbench/internal/config"
	"mbench/internal/telemetry"
)

var exit = os.Exit

var (
	cfgFile string
	logFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mbench",
	Short: "Micro-benchmark harness with CPU isolation",
	Long: `mbench runs small workloads under controlled conditions: the executing
thread can be pinned to a core with the frequency governor forced to
performance mode, real-time priority, and all signals blocked. Timing
uses either the raw monotonic clock or the hardware cycle counter, with
optional L1 data cache miss sampling, and results are ranked against a
baseline run.`,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'mbench --help' for usage.")
		exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write logs to this file as JSON")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().Int("core", 0, "Core to pin benchmarks to")
	rootCmd.PersistentFlags().Float64("max-temp", 70.0, "Maximum safe CPU temperature in degrees C")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("core", rootCmd.PersistentFlags().Lookup("core"))
	viper.BindPFlag("max_temp_c", rootCmd.PersistentFlags().Lookup("max-temp"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	config.Load(cfgFile)
	telemetry.InitLogger(viper.GetBool("verbose"), logFile)
}
