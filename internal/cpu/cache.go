// Package cpu detects CPU cache geometry used to pick sieve defaults.
//
// The segmented sieve performs best when one segment fits the L1 data cache,
// so the default sieve size is derived from the detected cache size rather
// than hard-coded.
package cpu

import "github.com/klauspost/cpuid/v2"

const (
	// Fallbacks for platforms where detection is unavailable.
	defaultL1DataCache = 32 * 1024
	defaultL2Cache     = 512 * 1024

	minSieveBytes = 1024
	maxSieveBytes = 4096 * 1024
)

// L1DataCache returns the detected L1 data cache size in bytes, or a
// conservative default when the platform does not report one.
func L1DataCache() int {
	if size := cpuid.CPU.Cache.L1D; size > 0 {
		return size
	}

	return defaultL1DataCache
}

// L2Cache returns the detected L2 cache size in bytes, or a conservative
// default when the platform does not report one.
func L2Cache() int {
	if size := cpuid.CPU.Cache.L2; size > 0 {
		return size
	}

	return defaultL2Cache
}

// DefaultSieveBytes returns the default segment size in bytes: the L1 data
// cache size rounded up to a power of two and clamped to [1 KB, 4096 KB].
func DefaultSieveBytes() int {
	size := L1DataCache()
	if size < minSieveBytes {
		size = minSieveBytes
	}
	if size > maxSieveBytes {
		size = maxSieveBytes
	}

	return int(nextPow2(uint64(size)))
}

func nextPow2(n uint64) uint64 {
	p := uint64(1)
	for p < n {
		p <<= 1
	}

	return p
}
