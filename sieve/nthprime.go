package sieve

import (
	"fmt"
	"math"

	"github.com/arloliu/primeseg/errs"
)

// NthPrime returns the nth prime (NthPrime(1) == 2).
func (ps *PrimeSieve) NthPrime(n uint64) (uint64, error) {
	return ps.NthPrimeFrom(n, 0)
}

// NthPrimeFrom returns the nth prime greater than start. It sieves
// intervals of doubling width until the nth prime is located, then scans
// the final interval with a callback. The receiver's flags and counts are
// clobbered like any other sieve call.
func (ps *PrimeSieve) NthPrimeFrom(n, start uint64) (uint64, error) {
	if n == 0 {
		return 0, errs.ErrInvalidNth
	}
	if start >= MaxStop {
		return 0, fmt.Errorf("%w: start %d", errs.ErrInvalidBound, start)
	}

	left := n
	low := start + 1
	width := nthPrimeWidth(n)
	for {
		high := low + width
		if high < low || high > MaxStop {
			high = MaxStop
		}
		count, err := ps.CountPrimes(low, high)
		if err != nil {
			return 0, err
		}
		if count >= left {
			var index, nth uint64
			err := ps.GeneratePrimes(low, high, func(p uint64) {
				index++
				if index == left {
					nth = p
				}
			})

			return nth, err
		}
		if high == MaxStop {
			return 0, fmt.Errorf("%w: nth prime beyond max stop", errs.ErrInvalidBound)
		}
		left -= count
		low = high + 1
		width *= 2
	}
}

// nthPrimeWidth estimates the interval width containing the nth prime,
// using p_n ~ n*(ln n + ln ln n).
func nthPrimeWidth(n uint64) uint64 {
	if n < 6 {
		return 16
	}
	fn := float64(n)
	est := fn * (math.Log(fn) + math.Log(math.Log(fn)))
	if est >= float64(1<<62) {
		return 1 << 62
	}

	return uint64(est) + 64
}
