//go:build amd64

package counter

// readCycles reads the time-stamp counter with LFENCE barriers on both
// sides. Implemented in cycles_amd64.s.
//
//go:noescape
func readCycles() int64
