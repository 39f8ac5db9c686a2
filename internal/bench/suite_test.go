package bench

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fill writes a deterministic pattern into buf.
func fill(buf []byte, seed byte) {
	for i := range buf {
		buf[i] = seed + byte(i)
	}
}

func TestSuiteValidation(t *testing.T) {
	const size = 64
	s := NewSuite()

	s.Add(Spec{Name: "baseline", Timed: 2, Baseline: true, BufSize: size}, nil, Options{})
	s.Add(Spec{Name: "same", Timed: 2, Validate: true, BufSize: size}, nil, Options{})
	s.Add(Spec{Name: "different", Timed: 2, Validate: true, BufSize: size}, nil, Options{})
	s.Add(Spec{Name: "unchecked", Timed: 2, BufSize: size}, nil, Options{})

	entries := s.Entries()
	entries[0].Workload = func() { fill(entries[0].output, 1) }
	entries[1].Workload = func() { fill(entries[1].output, 1) }
	entries[2].Workload = func() {
		fill(entries[2].output, 1)
		entries[2].output[size/2] ^= 0xff // single differing byte
	}
	entries[3].Workload = func() { fill(entries[3].output, 1) }

	require.NoError(t, s.Run())

	assert.Equal(t, NotValidated, entries[0].Result.Validity, "baseline is not validated against itself")
	assert.Equal(t, Valid, entries[1].Result.Validity)
	assert.Equal(t, Invalid, entries[2].Result.Validity)
	assert.Equal(t, NotValidated, entries[3].Result.Validity)
}

func TestSuiteValidationBeforeBaseline(t *testing.T) {
	s := NewSuite()
	s.Add(Spec{Name: "early", Timed: 1, Validate: true, BufSize: 8}, func() {}, Options{})
	s.Add(Spec{Name: "base", Timed: 1, Baseline: true, BufSize: 8}, func() {}, Options{})

	require.NoError(t, s.Run())

	// The ground truth did not exist yet, so the early entry stays
	// unvalidated rather than being marked invalid.
	assert.Equal(t, NotValidated, s.Entries()[0].Result.Validity)
}

func TestSuiteRejectsTwoBaselines(t *testing.T) {
	s := NewSuite()
	s.Add(Spec{Name: "a", Timed: 1, Baseline: true}, func() {}, Options{})
	s.Add(Spec{Name: "b", Timed: 1, Baseline: true}, func() {}, Options{})
	assert.Error(t, s.Run())
}

func TestSuiteClearsOutputBuffer(t *testing.T) {
	buf := make([]byte, 16)
	s := NewSuite()
	s.Add(Spec{Name: "writer", Timed: 1, BufSize: len(buf), Output: buf},
		func() { fill(buf, 7) }, Options{})

	require.NoError(t, s.Run())
	assert.Equal(t, make([]byte, 16), buf, "caller-supplied buffer cleared after the run")
}

func TestSuiteGroundTruthIsASnapshot(t *testing.T) {
	// Baseline and validator share one caller-owned buffer; validation
	// must compare against a copy of the baseline's output, not the
	// buffer itself.
	shared := make([]byte, 32)
	s := NewSuite()
	s.Add(Spec{Name: "base", Timed: 1, Baseline: true, BufSize: len(shared), Output: shared},
		func() { fill(shared, 3) }, Options{})
	s.Add(Spec{Name: "check", Timed: 1, Validate: true, BufSize: len(shared), Output: shared},
		func() { fill(shared, 3) }, Options{})

	require.NoError(t, s.Run())
	assert.Equal(t, Valid, s.Entries()[1].Result.Validity)
}

func TestSuiteComputesStats(t *testing.T) {
	s := NewSuite()
	s.Add(Spec{Name: "stats", Warmup: 1, Timed: 8}, func() {
		sink := 0
		for i := 0; i < 1000; i++ {
			sink += i
		}
		_ = sink
	}, Options{})

	require.NoError(t, s.Run())
	res := s.Entries()[0].Result
	assert.Len(t, res.Samples, 8)
	assert.GreaterOrEqual(t, res.Timing.Max, res.Timing.Min)
	assert.GreaterOrEqual(t, res.Timing.Mean, 0.0)
}

func TestValidate(t *testing.T) {
	a := []byte{1, 2, 3, 4}
	b := []byte{1, 2, 3, 4}
	assert.Equal(t, Valid, Validate(a, b, 4))

	b[3] = 9
	assert.Equal(t, Invalid, Validate(a, b, 4))
	assert.Equal(t, Valid, Validate(a, b, 3), "difference outside the compared range")

	assert.Equal(t, Invalid, Validate(a[:2], b, 4), "short buffer cannot match")
}
