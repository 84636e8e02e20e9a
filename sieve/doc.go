// Package sieve provides the prime sieving drivers built on the segmented
// sieve of Eratosthenes engine.
//
// PrimeSieve counts, prints or enumerates primes and prime k-tuplets (twins
// through septuplets) within an arbitrary interval [start, stop] with
// start, stop <= 2^64-1 - 10*(2^32-1). ParallelPrimeSieve runs one engine per
// worker over disjoint sub-intervals and sums their counts.
//
// Counting primes within an interval:
//
//	ps, _ := sieve.New()
//	count, err := ps.CountPrimes(0, 1000000)
//
// Enumerating primes through a callback, in ascending order:
//
//	ps.GeneratePrimes(0, 100, func(p uint64) {
//	    fmt.Println(p)
//	})
//
// Combining several counts in one pass:
//
//	ps, _ := sieve.New(
//	    sieve.WithStart(0),
//	    sieve.WithStop(1000000),
//	    sieve.WithFlags(sieve.FlagCountPrimes|sieve.FlagCountTwins),
//	)
//	err := ps.Sieve()
//	primes, twins := ps.PrimeCount(), ps.TwinCount()
package sieve
