//go:build arm64

package counter

// readCycles reads the virtual counter register CNTVCT_EL0 between two
// ISB barriers. Implemented in cycles_arm64.s.
//
//go:noescape
func readCycles() int64
