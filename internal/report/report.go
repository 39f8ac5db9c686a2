// Package report renders ranked comparisons and per-benchmark detail
// views over a set of completed runs. It consumes results assembled by
// the caller and carries no state of its own.
package report

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"mbench/internal/bench"
)

// ErrNoBaseline is returned when the run set contains no completed
// baseline entry, which makes relative figures undefined.
var ErrNoBaseline = errors.New("no baseline benchmark in run set")

// Ranked pairs an entry with its performance relative to the baseline.
// Relative is this entry's median timing divided by the baseline's, so
// values above 1 are slower than the baseline.
type Ranked struct {
	Entry    *bench.Entry
	Relative float64

	// HasRelative reports whether the relative figure is defined. It is
	// false for every entry when the baseline's median is 0, which
	// happens when all its wall-clock samples round down to zero.
	HasRelative bool
}

// TimesFaster reports how many times faster than the baseline this
// entry ran. Only meaningful when Relative is below 1.
func (r Ranked) TimesFaster() float64 {
	return 1 / r.Relative
}

func completed(e *bench.Entry) bool {
	return e.Result != nil && len(e.Result.Samples) > 0
}

// Rank orders completed entries worst-first by median timing and
// computes each entry's performance relative to the baseline. Entries
// without a computed result are skipped, and entries that requested
// validation but failed it are excluded from the summary.
func Rank(entries []*bench.Entry) ([]Ranked, error) {
	var baseline *bench.Entry
	for _, e := range entries {
		if !completed(e) || !e.Spec.Baseline {
			continue
		}
		if baseline != nil {
			return nil, fmt.Errorf("multiple baseline benchmarks: %q and %q", baseline.Spec.Name, e.Spec.Name)
		}
		baseline = e
	}
	if baseline == nil {
		return nil, ErrNoBaseline
	}

	baseMedian := baseline.Result.Timing.Median
	var ranked []Ranked
	for _, e := range entries {
		if !completed(e) {
			continue
		}
		if e.Spec.Validate && e.Result.Validity == bench.Invalid {
			continue
		}
		r := Ranked{Entry: e}
		if baseMedian > 0 {
			r.Relative = e.Result.Timing.Median / baseMedian
			r.HasRelative = true
		}
		ranked = append(ranked, r)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Entry.Result.Timing.Median > ranked[j].Entry.Result.Timing.Median
	})
	return ranked, nil
}

// WriteSummary renders the ranked comparison view. The baseline is
// flagged, slower entries show their slowdown factor, and faster
// entries additionally show the reciprocal speedup.
func WriteSummary(w io.Writer, entries []*bench.Entry) error {
	ranked, err := Rank(entries)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, titleStyle.Render("Comparative Summary"))
	fmt.Fprintln(w)
	for i, r := range ranked {
		med := r.Entry.Result.Timing.Median
		unit := r.Entry.Result.Unit.Short()
		line := fmt.Sprintf("%2d. %s  median %.2f %s  ", i+1, nameStyle.Render(r.Entry.Spec.Name), med, unit)
		switch {
		case r.Entry.Spec.Baseline && r.HasRelative:
			line += baselineStyle.Render("1.00x (baseline)")
		case r.Entry.Spec.Baseline:
			line += baselineStyle.Render("(baseline)")
		case !r.HasRelative:
			line += dimStyle.Render("relative n/a (baseline median is 0)")
		case r.Relative < 1.0:
			line += fasterStyle.Render(fmt.Sprintf("%.2fx (%.2fx faster)", r.Relative, r.TimesFaster()))
		default:
			line += slowerStyle.Render(fmt.Sprintf("%.2fx slower", r.Relative))
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

// WriteDetails renders the raw per-benchmark listing, including
// entries the summary excludes. Cache aggregates appear only when the
// run sampled cache misses.
func WriteDetails(w io.Writer, entries []*bench.Entry) {
	fmt.Fprintln(w, titleStyle.Render("Benchmark Details"))
	for _, e := range entries {
		fmt.Fprintln(w)
		fmt.Fprintln(w, nameStyle.Render(e.Spec.Name))
		if !completed(e) {
			fmt.Fprintln(w, dimStyle.Render("  no samples collected"))
			continue
		}
		res := e.Result
		fmt.Fprintf(w, "  iterations: %d warmup, %d timed\n", e.Spec.Warmup, e.Spec.Timed)
		fmt.Fprintf(w, "  timing (%s): mean %.2f, median %.2f, stddev %.2f, min %d, max %d\n",
			res.Unit, res.Timing.Mean, res.Timing.Median, res.Timing.StdDev, res.Timing.Min, res.Timing.Max)
		if len(res.CacheMissRates) > 0 {
			fmt.Fprintf(w, "  cache miss %%: mean %.2f, median %.2f, min %.2f, max %.2f\n",
				res.CacheMiss.Mean, res.CacheMiss.Median, res.CacheMiss.Min, res.CacheMiss.Max)
		}
		switch res.Validity {
		case bench.Invalid:
			fmt.Fprintf(w, "  validated: %s\n", invalidStyle.Render(res.Validity.String()))
		default:
			fmt.Fprintf(w, "  validated: %s\n", res.Validity)
		}
	}
}
