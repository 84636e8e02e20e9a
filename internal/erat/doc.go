// Package erat implements the segmented sieve of Eratosthenes engine.
//
// The engine owns one densely bit-packed segment buffer (30 numbers per
// byte, see internal/wheel) and processes the sieved interval segment by
// segment in ascending order. Multiples of sieving primes are crossed off by
// three tiers tuned to the ratio between prime magnitude and segment size:
//
//   - EratSmall: primes whose multiples strike a segment many times; the
//     inner loop clears one full wheel rotation (8 bits) per iteration.
//   - EratMedium: primes that strike a segment only a few times; one wheel
//     step per iteration with per-prime bookkeeping of the next multiple.
//   - EratBig: primes that strike at most once per segment; pending
//     cross-offs are kept in bucket pages on a cyclic list array keyed by
//     the segment that receives the next hit.
//
// Multiples of the smallest primes are not crossed off at all: a
// precomputed repeating pattern (PreSieve) is tiled into each new segment
// instead.
//
// After each finished segment the engine hands the buffer to an injected
// Consumer, which decodes set bits into primes, counts them, or feeds them
// into an outer engine as sieving primes.
package erat
