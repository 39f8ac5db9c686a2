// Package counter implements the timing and hardware-event backends a
// measurement loop reads around each workload invocation: a monotonic
// wall clock, the architecture cycle counter, and a perf-event session
// for L1 data-cache references and misses.
package counter

import (
	"golang.org/x/sys/unix"
)

// NowMonotonic reads the raw monotonic clock. The raw clock is not
// subject to NTP adjustment, so two readings bracket a workload without
// clock slew in between.
func NowMonotonic() unix.Timespec {
	var ts unix.Timespec
	// CLOCK_MONOTONIC_RAW cannot fail with a valid timespec pointer.
	unix.ClockGettime(unix.CLOCK_MONOTONIC_RAW, &ts)
	return ts
}

// ElapsedMicros returns the elapsed time between two monotonic readings
// as whole microseconds.
func ElapsedMicros(start, end unix.Timespec) int64 {
	return (end.Sec-start.Sec)*1_000_000 + (end.Nsec-start.Nsec)/1_000
}

// Cycles reads the free-running architecture cycle counter. The read is
// bracketed by serializing barriers so the instruction stream cannot be
// reordered across it. On architectures without a supported counter this
// falls back to the monotonic clock in nanoseconds.
func Cycles() int64 {
	return readCycles()
}

// Overhead self-measures the cost of the cycle-counter read itself by
// taking two back-to-back readings with no work in between. Callers
// subtract the result from every raw sample. Measure it once per run,
// inside the isolation window, so it reflects run conditions.
func Overhead() int64 {
	start := readCycles()
	end := readCycles()
	return end - start
}
