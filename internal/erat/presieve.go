package erat

import "github.com/arloliu/primeseg/internal/wheel"

// preSievePrimes are the primes eligible for pre-sieving. 2, 3 and 5 are
// excluded by the wheel encoding itself.
var preSievePrimes = [6]uint32{7, 11, 13, 17, 19, 23}

// PreSieve holds a repeating bit pattern in which every multiple of the
// primes 7..limit is cleared. The pattern repeats every product(7..limit)
// bytes, so tiling it into a fresh segment replaces the cross-off work for
// the tiniest (and densest) sieving primes with a plain copy.
//
// Memory grows with the product of the pattern primes: limit 13 uses 1001
// bytes, limit 19 ~316 KB, limit 23 ~7 MB.
type PreSieve struct {
	limit   uint32
	primes  []uint32
	size    uint64
	pattern []byte
}

// NewPreSieve builds the pattern for primes up to limit, clamped to
// [13, 23].
func NewPreSieve(limit uint32) *PreSieve {
	if limit < 13 {
		limit = 13
	}
	if limit > 23 {
		limit = 23
	}

	p := &PreSieve{limit: limit, size: 1}
	for _, q := range preSievePrimes {
		if q <= limit {
			p.primes = append(p.primes, q)
			p.size *= uint64(q)
		}
	}

	p.pattern = make([]byte, p.size)
	for i := range p.pattern {
		p.pattern[i] = 0xff
	}
	// The pattern is aligned to absolute zero: byte i covers i*30 + {7..31}.
	// Crossing off starts at the prime itself, so the engine must restore
	// the bits of the pattern primes in the first segment.
	for _, q := range p.primes {
		for m := uint64(q); m <= 30*p.size+1; m += uint64(q) {
			if mask := wheel.BitMask[m%30]; mask != 0 {
				p.pattern[(m-7)/30] &^= mask
			}
		}
	}

	return p
}

// Limit returns the clamped pre-sieve prime limit.
func (p *PreSieve) Limit() uint32 { return p.limit }

// Primes returns the primes encoded into the pattern.
func (p *PreSieve) Primes() []uint32 { return p.primes }

// Apply tiles the pattern into sieve. low must be the 30-aligned base of the
// segment; the tile offset keeps the pattern aligned to absolute zero.
func (p *PreSieve) Apply(sieve []byte, low uint64) {
	off := (low / 30) % p.size
	n := copy(sieve, p.pattern[off:])
	for n < len(sieve) {
		n += copy(sieve[n:], p.pattern)
	}
}
