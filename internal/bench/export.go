package bench

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// ExportCSV writes one entry's raw samples to
// {dir}/benchmark_{name with spaces replaced by underscores}.csv.
// The file carries a comment header block, a column header line, and
// one data row per timed iteration.
func ExportCSV(dir string, e *Entry) error {
	name := strings.ReplaceAll(e.Spec.Name, " ", "_")
	path := filepath.Join(dir, "benchmark_"+name+".csv")
	if len(path) >= unix.PathMax {
		return fmt.Errorf("export path too long (%d bytes): %s", len(path), path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "# name: %s\n", e.Spec.Name)
	fmt.Fprintf(w, "# unit: %s\n", e.Result.Unit)
	fmt.Fprintf(w, "# validated: %s\n", e.Result.Validity)
	fmt.Fprintf(w, "# warmup_iterations: %d\n", e.Spec.Warmup)
	fmt.Fprintf(w, "# timed_iterations: %d\n", e.Spec.Timed)
	fmt.Fprintln(w, "timing,cache_miss_rate")

	for i, sample := range e.Result.Samples {
		var miss float64
		if e.Result.CacheMissRates != nil {
			miss = e.Result.CacheMissRates[i]
		}
		fmt.Fprintf(w, "%d,%.2f\n", sample, miss)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ExportAll writes a CSV per completed entry. A failing entry aborts
// only its own export; the rest still run, and all failures come back
// joined.
func ExportAll(dir string, entries []*Entry) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	var errs []error
	for _, e := range entries {
		if e.Result == nil {
			continue
		}
		if err := ExportCSV(dir, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
