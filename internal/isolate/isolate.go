// Package isolate puts the calling thread into a low-noise execution
// window for measurement: CPU pinning, real-time scheduling, signal
// blocking and an optional frequency-governor switch, with guaranteed
// restoration of the prior state on exit.
//
// Windows are not reentrant. Opening a second window on the same thread
// before closing the first is a precondition violation; the second
// window would capture the first window's altered state as "original".
package isolate

import (
	"log/slog"
	"runtime"

	"golang.org/x/sys/unix"

	"mbench/internal/sysinfo"
)

// Seams for tests; production code always goes through the kernel.
var (
	schedGetaffinity = unix.SchedGetaffinity
	schedSetaffinity = unix.SchedSetaffinity
	schedGetAttr     = unix.SchedGetAttr
	schedSetAttr     = unix.SchedSetAttr
	pthreadSigmask   = unix.PthreadSigmask
	snapshot         = sysinfo.Snapshot
)

// rtPriority is the SCHED_FIFO priority used during a window.
const rtPriority = 99

// Config controls what a window changes.
type Config struct {
	Pin      bool    // pin the thread to Core and elevate scheduling
	Core     int     // target core when Pin is set
	Governor bool    // hold Core's cpufreq governor at performance
	MaxTempC float64 // thermal warning threshold in degrees Celsius
}

// Window tracks which pieces of system state were captured and changed,
// so Exit can undo exactly those, in reverse, even after a partial
// Enter. Every step is best-effort: a denied operation is logged and the run
// continues with reduced noise suppression.
type Window struct {
	cfg Config

	savedAffinity unix.CPUSet
	savedSched    *unix.SchedAttr
	savedSignals  unix.Sigset_t
	savedGovernor string

	haveAffinity bool
	haveGovernor bool
	blocked      bool
	locked       bool
}

// Enter opens an isolation window on the calling thread. It always
// returns a usable Window; consult the logs for steps that were denied.
// The caller must call Exit on the same goroutine when the timed phase
// is over.
func Enter(cfg Config) *Window {
	w := &Window{cfg: cfg}

	// Affinity and scheduling are per OS thread; keep the goroutine on
	// this thread until Exit.
	runtime.LockOSThread()
	w.locked = true

	if cfg.Pin {
		if cfg.Governor {
			if prev, err := currentGovernor(cfg.Core); err == nil {
				w.savedGovernor = prev
				w.haveGovernor = true
			}
			if err := setGovernor(cfg.Core, "performance"); err != nil {
				slog.Warn("could not set performance governor", "core", cfg.Core, "error", err)
			} else {
				slog.Debug("governor set to performance", "core", cfg.Core)
				settle()
			}
		}

		if err := schedGetaffinity(0, &w.savedAffinity); err != nil {
			slog.Warn("could not read CPU affinity", "error", err)
		} else {
			w.haveAffinity = true
			var pinned unix.CPUSet
			pinned.Zero()
			pinned.Set(cfg.Core)
			if err := schedSetaffinity(0, &pinned); err != nil {
				slog.Warn("could not pin to core", "core", cfg.Core, "error", err)
			} else {
				slog.Debug("pinned to core", "core", cfg.Core)
			}
		}

		if attr, err := schedGetAttr(0, 0); err != nil {
			slog.Warn("could not read scheduling attributes", "error", err)
		} else {
			w.savedSched = attr
			rt := unix.SchedAttr{
				Size:     unix.SizeofSchedAttr,
				Policy:   unix.SCHED_FIFO,
				Priority: rtPriority,
			}
			if err := schedSetAttr(0, &rt, 0); err != nil {
				slog.Warn("could not elevate to SCHED_FIFO", "error", err)
			} else {
				slog.Debug("elevated to SCHED_FIFO", "priority", rtPriority)
			}
		}
	}

	var all unix.Sigset_t
	for i := range all.Val {
		all.Val[i] = ^uint64(0)
	}
	if err := pthreadSigmask(unix.SIG_BLOCK, &all, &w.savedSignals); err != nil {
		slog.Warn("could not block signals", "error", err)
	} else {
		w.blocked = true
	}

	w.statusReport("enter")
	return w
}

// Exit restores everything Enter changed, in reverse order. It runs all
// restoration steps even if some of them fail, and is safe after a
// partially failed Enter.
func (w *Window) Exit() {
	w.statusReport("exit")

	if w.blocked {
		if err := pthreadSigmask(unix.SIG_SETMASK, &w.savedSignals, nil); err != nil {
			slog.Warn("could not restore signal mask", "error", err)
		}
		w.blocked = false
	}

	if w.savedSched != nil {
		if err := schedSetAttr(0, w.savedSched, 0); err != nil {
			slog.Warn("could not restore scheduling attributes", "error", err)
		}
		w.savedSched = nil
	}

	if w.haveAffinity {
		if err := schedSetaffinity(0, &w.savedAffinity); err != nil {
			slog.Warn("could not restore CPU affinity", "error", err)
		}
		w.haveAffinity = false
	}

	if w.cfg.Pin && w.cfg.Governor {
		governor := w.savedGovernor
		if !w.haveGovernor || governor == "performance" {
			// Fall back to the common power-saving default when the
			// prior governor is unknown.
			governor = "ondemand"
		}
		if err := setGovernor(w.cfg.Core, governor); err != nil {
			slog.Warn("could not restore governor", "core", w.cfg.Core, "error", err)
		}
		w.haveGovernor = false
	}

	if w.locked {
		runtime.UnlockOSThread()
		w.locked = false
	}
}

// statusReport logs a full telemetry snapshot (temperature, per-core
// frequencies, load, memory) and warns when the CPU is at or above the
// configured maximum temperature. Advisory only; never aborts anything.
func (w *Window) statusReport(phase string) {
	st := snapshot()
	slog.Debug("system status", "phase", phase,
		"temp_c", st.Temperature, "load_1m", st.LoadAverage,
		"mem_kb", st.MemoryKB, "freq_mhz", st.Frequencies)
	switch {
	case st.Temperature < 0:
		slog.Debug("cpu temperature unavailable")
	case w.cfg.MaxTempC > 0 && st.Temperature >= w.cfg.MaxTempC:
		slog.Warn("cpu at or above safe temperature, samples may be skewed by throttling",
			"temp_c", st.Temperature, "max_c", w.cfg.MaxTempC)
	}
}

// settleSink keeps the settle loop from being optimized away.
var settleSink uint32

// settle busy-waits for a fixed iteration count to let a governor change
// take effect before timing starts.
func settle() {
	for i := uint32(0); i < 1<<15; i++ {
		settleSink += i
	}
}
