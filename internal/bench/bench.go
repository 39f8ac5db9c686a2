// Package bench is the measurement core: it defines the benchmark Spec
// and Result model, runs the warmup/timed measurement loop inside an
// isolation window, validates run output against a baseline's ground
// truth, and exports raw samples as CSV.
//
// Execution is strictly sequential. Specs run one at a time in the
// order the caller added them; running benchmarks concurrently would
// defeat the CPU isolation the harness exists for.
package bench

import (
	"mbench/internal/stats"
)

// Unit tags a Result's timing samples. A Result never mixes units; the
// tag is fixed when the samples are captured.
type Unit int

const (
	// UnitMicroseconds marks wall-clock samples in whole microseconds.
	UnitMicroseconds Unit = iota
	// UnitCycles marks overhead-compensated cycle-counter samples.
	UnitCycles
)

// String returns the spelled-out unit name used in CSV headers.
func (u Unit) String() string {
	if u == UnitCycles {
		return "cycles"
	}
	return "microseconds"
}

// Short returns the compact unit label used in report listings.
func (u Unit) Short() string {
	if u == UnitCycles {
		return "cycles"
	}
	return "us"
}

// Validity is the tri-state outcome of output validation. The zero
// value means validation never ran, which reporting and export keep
// distinct from a failed validation.
type Validity int

const (
	NotValidated Validity = iota
	Valid
	Invalid
)

func (v Validity) String() string {
	switch v {
	case Valid:
		return "Yes"
	case Invalid:
		return "No"
	default:
		return "Not Validated"
	}
}

// Spec is the immutable per-run configuration of one benchmark.
type Spec struct {
	Name     string // display identifier, unique within a run
	Warmup   int    // unmeasured warmup iterations
	Timed    int    // measured iterations; one sample each
	Baseline bool   // at most one Spec per suite
	Validate bool   // compare output against the baseline's ground truth
	BufSize  int    // output buffer size in bytes

	// Output is an optional caller-owned output buffer. When nil the
	// suite allocates and owns a BufSize-byte buffer instead.
	Output []byte
}

// Result holds everything one Spec's run produced. It is owned by the
// run that filled it.
type Result struct {
	Unit    Unit
	Samples []int64 // len == Spec.Timed once populated

	// CacheMissRates is a parallel sequence of per-iteration L1d miss
	// percentages in [0,100]. Nil when cache sampling was off.
	CacheMissRates []float64

	Timing    stats.Summary[int64]
	CacheMiss stats.Summary[float64]

	Validity Validity
}

// ComputeStats fills the derived aggregates from the raw sequences.
// Safe to call on a Result with no samples; aggregates stay zero.
func (r *Result) ComputeStats() {
	r.Timing = stats.Summarize(r.Samples)
	if r.CacheMissRates != nil {
		r.CacheMiss = stats.Summarize(r.CacheMissRates)
	}
}
