package isolate

import (
	"fmt"
	"os"
	"strings"
)

// cpufreqRoot is the sysfs cpufreq base directory.
// Tests point it at a fixture tree.
var cpufreqRoot = "/sys/devices/system/cpu"

func governorPath(core int) string {
	return fmt.Sprintf("%s/cpu%d/cpufreq/scaling_governor", cpufreqRoot, core)
}

// currentGovernor reads the active frequency governor of a core.
func currentGovernor(core int) (string, error) {
	raw, err := os.ReadFile(governorPath(core))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}

// setGovernor writes a governor name to a core's cpufreq interface.
// Needs root or equivalent sysfs write permission.
func setGovernor(core int, governor string) error {
	return os.WriteFile(governorPath(core), []byte(governor), 0o644)
}
