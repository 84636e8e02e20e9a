package erat

import "github.com/arloliu/primeseg/internal/wheel"

// EratMedium crosses off multiples of sieving primes that strike a segment
// only a small, bounded number of times. Each hit clears one bit and
// advances the multiple by one wheel step.
type EratMedium struct {
	stop   uint64
	primes []sievingPrime
}

func newEratMedium(stop uint64) *EratMedium {
	return &EratMedium{stop: stop}
}

func (e *EratMedium) add(prime, low uint64) {
	mi, wi, ok := wheel.FirstMultiple(prime, low, e.stop)
	if !ok {
		return
	}
	e.primes = append(e.primes, sievingPrime{prime, mi, wi})
}

func (e *EratMedium) crossOff(sieve []byte) {
	size := uint64(len(sieve))
	for k := range e.primes {
		sp := &e.primes[k]
		mi := sp.multipleIndex
		if mi >= size {
			sp.multipleIndex = mi - size
			continue
		}
		div := sp.prime / 30
		wi := sp.wheelIndex
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
