// Package sysinfo reads the host telemetry the isolation controller
// consults around a benchmark run: CPU temperature, per-core frequency,
// load average, memory in use and the online core count. All readers are
// thin wrappers over procfs/sysfs files; on any read error they return a
// neutral value instead of an error, because telemetry is advisory and
// must never abort a run.
package sysinfo

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// root is the filesystem prefix for procfs/sysfs reads.
// Tests point it at a fixture tree.
var root = "/"

// Temperature returns the CPU temperature of thermal zone 0 in degrees
// Celsius, or -1 if the thermal zone cannot be read.
func Temperature() float64 {
	raw, err := os.ReadFile(filepath.Join(root, "sys/class/thermal/thermal_zone0/temp"))
	if err != nil {
		return -1
	}
	milli, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		return -1
	}
	return float64(milli) / 1000
}

// Frequency returns the current frequency of the given core in MHz, or 0
// if the cpufreq interface cannot be read.
func Frequency(core int) uint64 {
	path := filepath.Join(root, fmt.Sprintf("sys/devices/system/cpu/cpu%d/cpufreq/scaling_cur_freq", core))
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	khz, err := strconv.ParseUint(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return 0
	}
	return khz / 1000
}

// LoadAverage returns the 1-minute load average, or 0 if /proc/loadavg
// cannot be read.
func LoadAverage() float64 {
	raw, err := os.ReadFile(filepath.Join(root, "proc/loadavg"))
	if err != nil {
		return 0
	}
	fields := strings.Fields(string(raw))
	if len(fields) == 0 {
		return 0
	}
	load, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0
	}
	return load
}

// MemoryInUse returns MemTotal minus MemAvailable in kB, or 0 if
// /proc/meminfo cannot be read.
func MemoryInUse() uint64 {
	f, err := os.Open(filepath.Join(root, "proc/meminfo"))
	if err != nil {
		return 0
	}
	defer f.Close()

	var total, available uint64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if _, err := fmt.Sscanf(line, "MemTotal: %d kB", &total); err == nil {
			continue
		}
		if _, err := fmt.Sscanf(line, "MemAvailable: %d kB", &available); err == nil {
			break
		}
	}
	if available > total {
		return 0
	}
	return total - available
}

// CoreCount returns the number of online cores counted from
// /proc/cpuinfo, or 0 if it cannot be read.
func CoreCount() int {
	f, err := os.Open(filepath.Join(root, "proc/cpuinfo"))
	if err != nil {
		return 0
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if strings.HasPrefix(scanner.Text(), "processor") {
			count++
		}
	}
	return count
}

// Status is one snapshot of the telemetry readings.
type Status struct {
	Temperature float64  // degrees Celsius, -1 when unreadable
	LoadAverage float64  // 1-minute
	MemoryKB    uint64   // in use
	Frequencies []uint64 // MHz, indexed by core
}

// Snapshot reads all telemetry sources at once.
func Snapshot() Status {
	cores := CoreCount()
	freqs := make([]uint64, cores)
	for i := range freqs {
		freqs[i] = Frequency(i)
	}
	return Status{
		Temperature: Temperature(),
		LoadAverage: LoadAverage(),
		MemoryKB:    MemoryInUse(),
		Frequencies: freqs,
	}
}
