package erat

import "github.com/arloliu/primeseg/internal/wheel"

// sievingPrime tracks one sieving prime between segments: the next multiple
// as a byte index relative to the current segment, and the wheel state
// driving residue transitions.
type sievingPrime struct {
	prime         uint64
	multipleIndex uint64
	wheelIndex    int
}

// EratSmall crosses off multiples of sieving primes that strike a segment
// many times (one full wheel rotation covers exactly prime bytes, so primes
// up to the segment size hit every segment at least 8 times).
type EratSmall struct {
	stop   uint64
	primes []sievingPrime
}

func newEratSmall(stop uint64) *EratSmall {
	return &EratSmall{stop: stop}
}

func (e *EratSmall) add(prime, low uint64) {
	mi, wi, ok := wheel.FirstMultiple(prime, low, e.stop)
	if !ok {
		return
	}
	e.primes = append(e.primes, sievingPrime{prime, mi, wi})
}

// crossOff clears every multiple inside the segment and stores the next
// (multipleIndex, wheelIndex) pair relative to the following segment.
func (e *EratSmall) crossOff(sieve []byte) {
	size := uint64(len(sieve))
	for k := range e.primes {
		sp := &e.primes[k]
		mi := sp.multipleIndex
		if mi >= size {
			sp.multipleIndex = mi - size
			continue
		}
		prime := sp.prime
		div := prime / 30
		wi := sp.wheelIndex

		// Byte offsets and masks of the 8 hits in one wheel rotation,
		// starting from the current wheel phase. A full rotation advances
		// exactly prime bytes and returns to the same phase.
		var offs [8]uint64
		var masks [8]uint8
		off := uint64(0)
		w := wi
		for t := 0; t < 8; t++ {
			el := &wheel.Wheel30[w]
			offs[t] = off
			masks[t] = el.UnsetBit
			off += div*uint64(el.NextMultipleFactor) + uint64(el.Correct)
			w += el.Next
		}

		for mi+prime <= size {
			sieve[mi+offs[0]] &= masks[0]
			sieve[mi+offs[1]] &= masks[1]
			sieve[mi+offs[2]] &= masks[2]
			sieve[mi+offs[3]] &= masks[3]
			sieve[mi+offs[4]] &= masks[4]
			sieve[mi+offs[5]] &= masks[5]
			sieve[mi+offs[6]] &= masks[6]
			sieve[mi+offs[7]] &= masks[7]
			mi += prime
		}
		for mi < size {
			el := &wheel.Wheel30[wi]
			sieve[mi] &= el.UnsetBit
			mi += div*uint64(el.NextMultipleFactor) + uint64(el.Correct)
			wi += el.Next
		}

		sp.multipleIndex = mi - size
		sp.wheelIndex = wi
	}
}
