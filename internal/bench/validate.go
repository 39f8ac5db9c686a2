package bench

import "bytes"

// Validate byte-compares the first size bytes of a run's output against
// the baseline's ground truth. Buffers shorter than size compare as
// Invalid: a missing byte is as wrong as a differing one.
func Validate(output, groundTruth []byte, size int) Validity {
	if len(output) < size || len(groundTruth) < size {
		return Invalid
	}
	if bytes.Equal(output[:size], groundTruth[:size]) {
		return Valid
	}
	return Invalid
}
