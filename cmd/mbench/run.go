package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mbench/internal/bench"
	"mbench/internal/config"
	"mbench/internal/report"
)

var (
	runCSV     bool
	runDetails bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the built-in benchmark suite",
	Long: `Runs a set of buffer-fill workloads that produce identical output
through different access patterns. The forward fill is the baseline and
populates the ground truth; the other fills are validated against it
before entering the ranked comparison.`,
	RunE: runSuite,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runCSV, "csv", false, "Export raw samples as CSV files")
	runCmd.Flags().BoolVar(&runDetails, "details", true, "Print the per-benchmark detail view")
	runCmd.Flags().Int("warmup", 0, "Warmup iterations per benchmark (0 uses the configured default)")
	runCmd.Flags().Int("timed", 0, "Timed iterations per benchmark (0 uses the configured default)")
	runCmd.Flags().Bool("no-pin", false, "Skip core pinning and governor control")
	runCmd.Flags().Bool("cache-miss", false, "Sample L1 data cache misses per iteration")
	runCmd.Flags().String("unit", "", "Timing unit: cycles or microseconds")
}

func parseUnit(s string) (bench.Unit, error) {
	switch s {
	case "cycles":
		return bench.UnitCycles, nil
	case "microseconds":
		return bench.UnitMicroseconds, nil
	default:
		return 0, fmt.Errorf("unknown timing unit %q (want cycles or microseconds)", s)
	}
}

// fillForward writes a deterministic byte pattern front to back. This
// is the baseline and defines the ground truth.
func fillForward(buf []byte) func() {
	return func() {
		for i := range buf {
			buf[i] = byte(i*31 + 7)
		}
	}
}

// fillReverse writes the same pattern back to front.
func fillReverse(buf []byte) func() {
	return func() {
		for i := len(buf) - 1; i >= 0; i-- {
			buf[i] = byte(i*31 + 7)
		}
	}
}

// fillStrided writes the same pattern in eight interleaved passes,
// trading sequential locality for stride.
func fillStrided(buf []byte) func() {
	return func() {
		for s := 0; s < 8; s++ {
			for i := s; i < len(buf); i += 8 {
				buf[i] = byte(i*31 + 7)
			}
		}
	}
}

// sumLoop is a pure-compute workload with no output to validate.
func sumLoop() {
	var sum int
	for i := 0; i < 1000; i++ {
		sum += i
	}
	_ = sum
}

func buildSuite(cfg config.Run, opt bench.Options) *bench.Suite {
	baseBuf := make([]byte, cfg.BufSize)
	revBuf := make([]byte, cfg.BufSize)
	strideBuf := make([]byte, cfg.BufSize)

	s := bench.NewSuite()
	s.Add(bench.Spec{
		Name:     "forward fill",
		Warmup:   cfg.Warmup,
		Timed:    cfg.Timed,
		Baseline: true,
		BufSize:  cfg.BufSize,
		Output:   baseBuf,
	}, fillForward(baseBuf), opt)
	s.Add(bench.Spec{
		Name:     "reverse fill",
		Warmup:   cfg.Warmup,
		Timed:    cfg.Timed,
		Validate: true,
		BufSize:  cfg.BufSize,
		Output:   revBuf,
	}, fillReverse(revBuf), opt)
	s.Add(bench.Spec{
		Name:     "strided fill",
		Warmup:   cfg.Warmup,
		Timed:    cfg.Timed,
		Validate: true,
		BufSize:  cfg.BufSize,
		Output:   strideBuf,
	}, fillStrided(strideBuf), opt)
	s.Add(bench.Spec{
		Name:   "integer sum",
		Warmup: cfg.Warmup,
		Timed:  cfg.Timed,
	}, sumLoop, opt)
	return s
}

func runSuite(cmd *cobra.Command, args []string) error {
	cfg := config.CurrentRun()
	if err := config.ValidateConfig(); err != nil {
		return err
	}
	if n, _ := cmd.Flags().GetInt("warmup"); n > 0 {
		cfg.Warmup = n
	}
	if n, _ := cmd.Flags().GetInt("timed"); n > 0 {
		cfg.Timed = n
	}
	if noPin, _ := cmd.Flags().GetBool("no-pin"); noPin {
		cfg.Pin = false
		cfg.Governor = false
	}
	if cm, _ := cmd.Flags().GetBool("cache-miss"); cm {
		cfg.CacheMiss = true
	}
	if u, _ := cmd.Flags().GetString("unit"); u != "" {
		cfg.Unit = u
	}

	unit, err := parseUnit(cfg.Unit)
	if err != nil {
		return err
	}
	opt := bench.Options{
		Unit:      unit,
		CacheMiss: cfg.CacheMiss,
		Pin:       cfg.Pin,
		Core:      cfg.Core,
		Governor:  cfg.Governor,
		MaxTempC:  cfg.MaxTempC,
	}

	suite := buildSuite(cfg, opt)
	if err := suite.Run(); err != nil {
		return err
	}
	entries := suite.Entries()

	out := cmd.OutOrStdout()
	if runDetails {
		report.WriteDetails(out, entries)
		fmt.Fprintln(out)
	}
	if err := report.WriteSummary(out, entries); err != nil {
		return err
	}

	if runCSV {
		if err := bench.ExportAll(cfg.OutputDir, entries); err != nil {
			return fmt.Errorf("csv export: %w", err)
		}
		fmt.Fprintf(out, "\nRaw samples written to %s\n", cfg.OutputDir)
	}
	return nil
}
