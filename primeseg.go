// Package primeseg generates prime numbers and prime k-tuplets (twin primes
// through prime septuplets) within arbitrary 64-bit intervals using a
// segmented sieve of Eratosthenes with dense bit packing (30 numbers per
// byte) and cross-off strategies tuned to the magnitude of each sieving
// prime.
//
// # Core Features
//
//   - Counting, printing and callback-driven enumeration of primes and
//     prime k-tuplets within [start, stop], start, stop <= 2^64-1 - 10*(2^32-1)
//   - Pre-sieving of the smallest primes via a tiled bit pattern
//   - Cache-sized segments detected from the CPU's L1 data cache
//   - Parallel sieving over disjoint sub-intervals with identical results
//   - Compressed text/binary and SQLite persistence of prime lists (see
//     the store package)
//
// # Basic Usage
//
// Counting primes:
//
//	count, err := primeseg.CountPrimes(0, 1000000)
//	// count == 78498
//
// Enumerating primes in ascending order:
//
//	err := primeseg.GeneratePrimes(0, 100, func(p uint64) {
//	    fmt.Println(p)
//	})
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the sieve
// package, covering the most common use cases. For combined counts, custom
// segment sizes, status reporting or explicit worker counts, use the sieve
// package directly.
package primeseg

import (
	"encoding/binary"
	"io"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/primeseg/sieve"
)

// CountPrimes returns the count of primes within [start, stop].
//
// Example:
//
//	count, err := primeseg.CountPrimes(0, 100)
//	// count == 25
func CountPrimes(start, stop uint64) (uint64, error) {
	ps, err := sieve.New()
	if err != nil {
		return 0, err
	}

	return ps.CountPrimes(start, stop)
}

// CountTwins returns the count of twin primes (p, p+2) within
// [start, stop]. A twin is counted in the interval containing its smallest
// member, and only when both members lie within the interval.
func CountTwins(start, stop uint64) (uint64, error) {
	ps, err := sieve.New()
	if err != nil {
		return 0, err
	}

	return ps.CountTwins(start, stop)
}

// CountTriplets returns the count of prime triplets (p, p+2, p+6) and
// (p, p+4, p+6) within [start, stop].
func CountTriplets(start, stop uint64) (uint64, error) {
	ps, err := sieve.New()
	if err != nil {
		return 0, err
	}

	return ps.CountTriplets(start, stop)
}

// CountQuadruplets returns the count of prime quadruplets
// (p, p+2, p+6, p+8) within [start, stop].
func CountQuadruplets(start, stop uint64) (uint64, error) {
	ps, err := sieve.New()
	if err != nil {
		return 0, err
	}

	return ps.CountQuadruplets(start, stop)
}

// CountQuintuplets returns the count of prime quintuplets within
// [start, stop].
func CountQuintuplets(start, stop uint64) (uint64, error) {
	ps, err := sieve.New()
	if err != nil {
		return 0, err
	}

	return ps.CountQuintuplets(start, stop)
}

// CountSextuplets returns the count of prime sextuplets
// (p, p+4, p+6, p+10, p+12, p+16) within [start, stop].
func CountSextuplets(start, stop uint64) (uint64, error) {
	ps, err := sieve.New()
	if err != nil {
		return 0, err
	}

	return ps.CountSextuplets(start, stop)
}

// CountSeptuplets returns the count of prime septuplets within
// [start, stop].
func CountSeptuplets(start, stop uint64) (uint64, error) {
	ps, err := sieve.New()
	if err != nil {
		return 0, err
	}

	return ps.CountSeptuplets(start, stop)
}

// CountPrimesParallel counts the primes within [start, stop] using one
// sieve per CPU over disjoint sub-intervals. The result is identical to
// CountPrimes.
func CountPrimesParallel(start, stop uint64) (uint64, error) {
	pps, err := sieve.NewParallel()
	if err != nil {
		return 0, err
	}

	return pps.CountPrimes(start, stop)
}

// GeneratePrimes invokes fn once for every prime within [start, stop], in
// ascending order.
//
// Example:
//
//	var primes []uint64
//	err := primeseg.GeneratePrimes(0, 30, func(p uint64) {
//	    primes = append(primes, p)
//	})
//	// primes == [2 3 5 7 11 13 17 19 23 29]
func GeneratePrimes(start, stop uint64, fn func(uint64)) error {
	ps, err := sieve.New()
	if err != nil {
		return err
	}

	return ps.GeneratePrimes(start, stop, fn)
}

// PrintPrimes writes the primes within [start, stop] to w, one per line,
// in ascending order.
func PrintPrimes(w io.Writer, start, stop uint64) error {
	ps, err := sieve.New(sieve.WithOutput(w))
	if err != nil {
		return err
	}

	return ps.PrintPrimes(start, stop)
}

// NthPrime returns the nth prime: NthPrime(1) == 2, NthPrime(25) == 97.
func NthPrime(n uint64) (uint64, error) {
	ps, err := sieve.New()
	if err != nil {
		return 0, err
	}

	return ps.NthPrime(n)
}

// Checksum returns the xxHash64 digest of the ascending little-endian
// prime stream within [start, stop]. Identical intervals always produce
// identical digests, across runs and machines, which makes the checksum a
// cheap cross-verification of sieve results.
func Checksum(start, stop uint64) (uint64, error) {
	ps, err := sieve.New()
	if err != nil {
		return 0, err
	}

	digest := xxhash.New()
	var scratch [8]byte
	err = ps.GeneratePrimes(start, stop, func(p uint64) {
		binary.LittleEndian.PutUint64(scratch[:], p)
		digest.Write(scratch[:])
	})
	if err != nil {
		return 0, err
	}

	return digest.Sum64(), nil
}
