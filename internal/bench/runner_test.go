package bench

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// scriptCycles installs a cycle counter that returns canned readings in
// order and a fixed overhead.
func scriptCycles(t *testing.T, overhead int64, readings ...int64) {
	t.Helper()
	origRead, origOverhead := readCycles, cycleOverhead
	t.Cleanup(func() {
		readCycles, cycleOverhead = origRead, origOverhead
	})
	i := 0
	readCycles = func() int64 {
		v := readings[i%len(readings)]
		i++
		return v
	}
	cycleOverhead = func() int64 { return overhead }
}

type fakeSession struct {
	ratio   float64
	stopped int
}

func (s *fakeSession) Stop() float64 {
	s.stopped++
	return s.ratio
}

func TestMeasureCycleOverheadCompensation(t *testing.T) {
	// Raw delta 50 with a calibrated overhead of 10 stores 40.
	scriptCycles(t, 10, 100, 150)

	spec := &Spec{Name: "overhead", Timed: 3}
	res := Measure(spec, func() {}, Options{Unit: UnitCycles})

	assert.Equal(t, UnitCycles, res.Unit)
	assert.Equal(t, []int64{40, 40, 40}, res.Samples)
	assert.Nil(t, res.CacheMissRates)
}

func TestMeasureNegativeSampleReportedAsIs(t *testing.T) {
	// Overhead above the raw delta is a data-quality problem, not an
	// error; the signed difference comes through untouched.
	scriptCycles(t, 60, 100, 150)

	res := Measure(&Spec{Name: "noisy", Timed: 2}, func() {}, Options{Unit: UnitCycles})
	assert.Equal(t, []int64{-10, -10}, res.Samples)
}

func TestMeasureWallClock(t *testing.T) {
	calls := 0
	spec := &Spec{Name: "wall", Warmup: 4, Timed: 5}
	res := Measure(spec, func() { calls++ }, Options{Unit: UnitMicroseconds})

	assert.Equal(t, 9, calls, "warmup plus timed invocations")
	assert.Equal(t, UnitMicroseconds, res.Unit)
	assert.Len(t, res.Samples, 5)
	for _, s := range res.Samples {
		assert.GreaterOrEqual(t, s, int64(0))
	}
}

func TestMeasureCacheMissSampling(t *testing.T) {
	scriptCycles(t, 0, 0, 10)

	sessions := []*fakeSession{}
	orig := startL1Cache
	t.Cleanup(func() { startL1Cache = orig })
	startL1Cache = func() cacheSession {
		s := &fakeSession{ratio: float64(len(sessions)) * 1.5}
		sessions = append(sessions, s)
		return s
	}

	res := Measure(&Spec{Name: "cache", Timed: 3}, func() {}, Options{
		Unit:      UnitCycles,
		CacheMiss: true,
	})

	assert.Equal(t, []float64{0, 1.5, 3}, res.CacheMissRates)
	assert.Len(t, sessions, 3, "one session per timed iteration")
	for _, s := range sessions {
		assert.Equal(t, 1, s.stopped, "every session stopped exactly once")
	}
}

func TestMeasureSampleCountInvariant(t *testing.T) {
	for _, timed := range []int{1, 2, 17} {
		res := Measure(&Spec{Name: "count", Timed: timed}, func() {}, Options{})
		assert.Len(t, res.Samples, timed)
	}
}

func TestUnitStrings(t *testing.T) {
	assert.Equal(t, "cycles", UnitCycles.String())
	assert.Equal(t, "microseconds", UnitMicroseconds.String())
	assert.Equal(t, "cycles", UnitCycles.Short())
	assert.Equal(t, "us", UnitMicroseconds.Short())
}

func TestValidityStrings(t *testing.T) {
	assert.Equal(t, "Yes", Valid.String())
	assert.Equal(t, "No", Invalid.String())
	assert.Equal(t, "Not Validated", NotValidated.String())
	assert.Equal(t, NotValidated, Validity(0), "zero value means never validated")
}
