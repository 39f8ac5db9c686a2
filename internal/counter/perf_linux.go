//go:build linux

package counter

import (
	"encoding/binary"
	"log/slog"
	"unsafe"

	"golang.org/x/sys/unix"
)

// invalidFD is the sentinel for a perf session that could not be opened.
// Stop tolerates it and reports no data.
const invalidFD = -1

// CacheCounter is one perf-event session measuring L1 data-cache read
// accesses and read misses on the calling thread. Obtain it with
// StartL1Cache immediately before the timed section and call Stop
// immediately after.
type CacheCounter struct {
	refsFD int
	missFD int
}

// hwCacheConfig encodes a PERF_TYPE_HW_CACHE event config from its
// cache id, operation id and result id.
func hwCacheConfig(cache, op, result uint64) uint64 {
	return cache | op<<8 | result<<16
}

// StartL1Cache opens, resets and enables the two L1d counters for the
// calling thread. On failure the affected descriptors stay at the
// sentinel value and the miss ratio for this iteration degrades to "no
// counter data"; measurement itself is never aborted.
func StartL1Cache() CacheCounter {
	c := CacheCounter{refsFD: invalidFD, missFD: invalidFD}

	attr := unix.PerfEventAttr{
		Type: unix.PERF_TYPE_HW_CACHE,
		Size: uint32(unsafe.Sizeof(unix.PerfEventAttr{})),
		Bits: unix.PerfBitDisabled | unix.PerfBitExcludeKernel | unix.PerfBitExcludeHv,
	}

	attr.Config = hwCacheConfig(
		unix.PERF_COUNT_HW_CACHE_L1D,
		unix.PERF_COUNT_HW_CACHE_OP_READ,
		unix.PERF_COUNT_HW_CACHE_RESULT_ACCESS,
	)
	refsFD, err := unix.PerfEventOpen(&attr, 0, -1, -1, unix.PERF_FLAG_FD_CLOEXEC)
	if err != nil {
		slog.Debug("perf_event_open failed for L1d references", "error", err)
		return c
	}

	attr.Config = hwCacheConfig(
		unix.PERF_COUNT_HW_CACHE_L1D,
		unix.PERF_COUNT_HW_CACHE_OP_READ,
		unix.PERF_COUNT_HW_CACHE_RESULT_MISS,
	)
	missFD, err := unix.PerfEventOpen(&attr, 0, -1, -1, unix.PERF_FLAG_FD_CLOEXEC)
	if err != nil {
		slog.Debug("perf_event_open failed for L1d misses", "error", err)
		unix.Close(refsFD)
		return c
	}

	c.refsFD = refsFD
	c.missFD = missFD

	unix.IoctlSetInt(c.refsFD, unix.PERF_EVENT_IOC_RESET, 0)
	unix.IoctlSetInt(c.refsFD, unix.PERF_EVENT_IOC_ENABLE, 0)
	unix.IoctlSetInt(c.missFD, unix.PERF_EVENT_IOC_RESET, 0)
	unix.IoctlSetInt(c.missFD, unix.PERF_EVENT_IOC_ENABLE, 0)
	return c
}

// Stop disables and reads both counters, closes their descriptors, and
// returns the miss ratio for the timed section. Sentinel descriptors are
// a no-op, so Stop is always safe to call exactly once.
func (c *CacheCounter) Stop() float64 {
	refs := c.drain(&c.refsFD)
	misses := c.drain(&c.missFD)
	return MissRatio(refs, misses)
}

// drain disables, reads and closes a single counter descriptor,
// resetting it to the sentinel.
func (c *CacheCounter) drain(fd *int) uint64 {
	if *fd == invalidFD {
		return 0
	}
	unix.IoctlSetInt(*fd, unix.PERF_EVENT_IOC_DISABLE, 0)

	var buf [8]byte
	var value uint64
	if n, err := unix.Read(*fd, buf[:]); err == nil && n == len(buf) {
		value = binary.NativeEndian.Uint64(buf[:])
	}
	unix.Close(*fd)
	*fd = invalidFD
	return value
}

// MissRatio converts raw reference and miss counts into a percentage.
// With zero references it is defined as exactly 0, which doubles as the
// "no counter data" signal.
func MissRatio(refs, misses uint64) float64 {
	if refs == 0 {
		return 0
	}
	return 100 * float64(misses) / float64(refs)
}
