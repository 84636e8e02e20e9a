package erat

import (
	"encoding/binary"
	"math/bits"

	"github.com/arloliu/primeseg/internal/wheel"
)

// ForEachPrime decodes every set bit of a finished segment into its integer
// and invokes fn, in ascending order. The buffer is consumed as little-endian
// 64-bit words; trailing-zero extraction yields one bit per iteration.
func ForEachPrime(sieve []byte, byteCount int, low uint64, fn func(uint64)) {
	for i := 0; i < byteCount; i += 8 {
		word := binary.LittleEndian.Uint64(sieve[i:])
		base := low + uint64(i)*wheel.NumbersPerByte
		for word != 0 {
			k := bits.TrailingZeros64(word)
			word &= word - 1
			fn(base + uint64(wheel.BitValues[k]))
		}
	}
}

// CountBits returns the number of set bits in the first byteCount bytes of
// a finished segment.
func CountBits(sieve []byte, byteCount int) uint64 {
	count := 0
	for i := 0; i < byteCount; i += 8 {
		count += bits.OnesCount64(binary.LittleEndian.Uint64(sieve[i:]))
	}

	return uint64(count)
}
