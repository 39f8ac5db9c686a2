package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mbench/internal/sysinfo"
)

var (
	statusTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFF")).
				Background(lipgloss.Color("63")). // Purple
				Bold(true).
				Padding(0, 1)

	tempOKStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")) // Green

	tempWarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("226")) // Yellow

	tempHotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)

	unavailableStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")) // Gray
)

var sysinfoCmd = &cobra.Command{
	Use:   "sysinfo",
	Short: "Show CPU temperature, frequencies, load, and memory",
	Long: `Reads the telemetry sources consulted during benchmark runs and shows
their current values, so thermal or load problems are visible before
starting a long run.`,
	Run: func(cmd *cobra.Command, args []string) {
		printStatus(cmd, sysinfo.Snapshot(), viper.GetFloat64("max_temp_c"))
	},
}

func init() {
	rootCmd.AddCommand(sysinfoCmd)
}

func renderTemp(temp, maxSafe float64) string {
	if temp < 0 {
		return unavailableStyle.Render("unavailable")
	}
	s := fmt.Sprintf("%.1f C", temp)
	switch {
	case temp < maxSafe:
		return tempOKStyle.Render(s)
	case temp < maxSafe+10:
		return tempWarnStyle.Render(s + " (near limit)")
	default:
		return tempHotStyle.Render(s + " (throttling likely)")
	}
}

func printStatus(cmd *cobra.Command, st sysinfo.Status, maxSafe float64) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, statusTitleStyle.Render("System Status"))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  CPU temperature: %s\n", renderTemp(st.Temperature, maxSafe))
	fmt.Fprintf(out, "  Load average (1m): %.2f\n", st.LoadAverage)
	fmt.Fprintf(out, "  Memory in use: %d kB\n", st.MemoryKB)
	fmt.Fprintf(out, "  Online cores: %d\n", len(st.Frequencies))
	for core, mhz := range st.Frequencies {
		if mhz == 0 {
			fmt.Fprintf(out, "    core %d: %s\n", core, unavailableStyle.Render("frequency unavailable"))
			continue
		}
		fmt.Fprintf(out, "    core %d: %d MHz\n", core, mhz)
	}
}
