package bench

import (
	"log/slog"

	"mbench/internal/counter"
	"mbench/internal/isolate"
)

// Options selects the timing backend and isolation level for one run.
type Options struct {
	Unit      Unit // wall clock or cycle counter
	CacheMiss bool // record one L1d miss ratio per timed iteration
	Pin       bool // run inside a pinned isolation window
	Core      int  // target core when Pin is set
	Governor  bool // hold the core's governor at performance while pinned
	MaxTempC  float64
}

// cacheSession is the per-iteration hardware counter session.
type cacheSession interface {
	Stop() float64
}

// Seams for tests; production measurement always uses the hardware
// counters.
var (
	readCycles    = counter.Cycles
	cycleOverhead = counter.Overhead
	startL1Cache  = func() cacheSession {
		c := counter.StartL1Cache()
		return &c
	}
)

// Measure runs spec's warmup and timed iterations of workload and
// returns the populated Result. The timed loop records exactly one
// sample per iteration (plus one miss ratio when enabled); an iteration
// is never partially recorded.
//
// A workload that hangs blocks Measure indefinitely; there is no
// cancellation or timeout.
func Measure(spec *Spec, workload func(), opt Options) *Result {
	slog.Info("running benchmark", "name", spec.Name, "baseline", spec.Baseline,
		"warmup", spec.Warmup, "timed", spec.Timed, "unit", opt.Unit.String())

	w := isolate.Enter(isolate.Config{
		Pin:      opt.Pin,
		Core:     opt.Core,
		Governor: opt.Governor,
		MaxTempC: opt.MaxTempC,
	})
	defer w.Exit()

	// Calibrate the counter read cost once per run, inside the window,
	// so it reflects the same conditions as the samples it corrects.
	var overhead int64
	if opt.Unit == UnitCycles {
		overhead = cycleOverhead()
	}

	for i := 0; i < spec.Warmup; i++ {
		workload()
	}

	res := &Result{
		Unit:    opt.Unit,
		Samples: make([]int64, spec.Timed),
	}
	if opt.CacheMiss {
		res.CacheMissRates = make([]float64, spec.Timed)
	}

	for i := 0; i < spec.Timed; i++ {
		var session cacheSession
		if opt.CacheMiss {
			session = startL1Cache()
		}

		var sample int64
		if opt.Unit == UnitCycles {
			start := readCycles()
			workload()
			end := readCycles()
			// Overhead above the raw delta is pathological noise; the
			// negative sample is stored as-is for the caller to judge.
			sample = (end - start) - overhead
		} else {
			start := counter.NowMonotonic()
			workload()
			end := counter.NowMonotonic()
			sample = counter.ElapsedMicros(start, end)
		}

		if session != nil {
			res.CacheMissRates[i] = session.Stop()
		}
		res.Samples[i] = sample
	}

	slog.Info("collected samples", "name", spec.Name, "count", spec.Timed)
	return res
}
