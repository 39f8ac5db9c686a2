package isolate

import (
	"log/slog"
	"runtime"

	"golang.org/x/sys/unix"
)

// StartPinned runs fn on a dedicated OS thread pinned to the given core
// and elevated to the same real-time priority a full isolation window
// uses. Pinning and elevation are best-effort; denial is logged and fn
// runs anyway. The returned channel is closed when fn returns. The
// harness does not manage the thread's lifecycle beyond that.
//
// This is a convenience for multi-threaded workloads that want their
// helper threads quiet too. It does not open an isolation window and
// does not touch signals or the governor.
func StartPinned(core int, fn func()) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		var set unix.CPUSet
		set.Zero()
		set.Set(core)
		if err := schedSetaffinity(0, &set); err != nil {
			slog.Warn("could not pin helper thread", "core", core, "error", err)
		}
		rt := unix.SchedAttr{
			Size:     unix.SizeofSchedAttr,
			Policy:   unix.SCHED_FIFO,
			Priority: rtPriority,
		}
		if err := schedSetAttr(0, &rt, 0); err != nil {
			slog.Warn("could not elevate helper thread", "core", core, "error", err)
		}
		fn()
	}()
	return done
}
