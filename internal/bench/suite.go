package bench

import (
	"fmt"
	"log/slog"
)

// Entry pairs a Spec with its workload and run options. A completed
// Entry also carries the Result.
type Entry struct {
	Spec     *Spec
	Workload func()
	Options  Options
	Result   *Result

	output []byte // the run's output buffer (caller's or suite-owned)
}

// Suite is an explicit, ordered list of benchmarks that run one at a
// time. The baseline Spec owns the ground-truth buffer; later Specs
// that request validation compare their output against it, which is why
// the baseline must be added (and therefore run) before them.
type Suite struct {
	entries     []*Entry
	groundTruth []byte // snapshot of the baseline's output, nil until it ran
}

// NewSuite returns an empty suite.
func NewSuite() *Suite {
	return &Suite{}
}

// Add appends a benchmark to the suite. Order is execution order.
func (s *Suite) Add(spec Spec, workload func(), opt Options) {
	s.entries = append(s.entries, &Entry{
		Spec:     &spec,
		Workload: workload,
		Options:  opt,
	})
}

// Entries exposes the suite's entries for reporting and export.
func (s *Suite) Entries() []*Entry {
	return s.entries
}

// Run executes every entry in order, validates outputs where requested,
// and computes the aggregates for each Result. The returned error only
// reports configuration problems (more than one baseline); measurement
// itself is never aborted by a failed validation.
func (s *Suite) Run() error {
	baselines := 0
	for _, e := range s.entries {
		if e.Spec.Baseline {
			baselines++
		}
	}
	if baselines > 1 {
		return fmt.Errorf("suite has %d baseline benchmarks, want at most 1", baselines)
	}

	for _, e := range s.entries {
		s.runEntry(e)
	}

	for _, e := range s.entries {
		e.Result.ComputeStats()
	}
	return nil
}

func (s *Suite) runEntry(e *Entry) {
	spec := e.Spec
	e.output = spec.Output
	if e.output == nil && spec.BufSize > 0 {
		e.output = make([]byte, spec.BufSize)
	}

	e.Result = Measure(spec, e.Workload, e.Options)

	if spec.Baseline {
		// Snapshot, not alias: the output buffer is cleared below and
		// may be reused by the next entry.
		s.groundTruth = append([]byte(nil), e.output[:min(spec.BufSize, len(e.output))]...)
		slog.Debug("captured ground truth", "name", spec.Name, "bytes", len(s.groundTruth))
	} else if spec.Validate {
		if s.groundTruth == nil {
			slog.Warn("cannot validate before the baseline has run", "name", spec.Name)
		} else {
			e.Result.Validity = Validate(e.output, s.groundTruth, spec.BufSize)
			slog.Info("validated result", "name", spec.Name, "valid", e.Result.Validity.String())
		}
	}

	// Start the next entry from a clean buffer.
	clear(e.output)
}
