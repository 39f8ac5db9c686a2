//go:build !arm64 && !amd64

package counter

// No cycle counter on this architecture; fall back to the monotonic
// clock so cycle-mode samples degrade to nanoseconds instead of failing.
func readCycles() int64 {
	ts := NowMonotonic()
	return ts.Sec*1_000_000_000 + ts.Nsec
}
