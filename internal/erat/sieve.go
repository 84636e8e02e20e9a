package erat

import (
	"fmt"
	"math"

	"github.com/arloliu/primeseg/errs"
	"github.com/arloliu/primeseg/internal/wheel"
)

// MaxStop is the largest sieving bound supported by the multiple index
// arithmetic of the cross-off tiers.
const MaxStop = math.MaxUint64 - 10*uint64(math.MaxUint32)

const (
	minSieveBytes = 1 * 1024
	maxSieveBytes = 4096 * 1024
)

// Consumer receives each finished segment. sieve holds the bit-packed
// candidates of [low+7, low+30*byteCount+1]; bits outside [start, stop] are
// cleared and bytes beyond byteCount are zero. Segments arrive in strictly
// ascending order, exactly once each.
type Consumer interface {
	ProcessSegment(sieve []byte, byteCount int, low uint64)
}

// Sieve is the segmented sieve of Eratosthenes engine. Feed it every
// sieving prime up to sqrt(stop) in ascending order via Sieve, then call
// Finish to process all segments.
type Sieve struct {
	start         uint64
	stop          uint64
	sqrtStop      uint64
	preSieveLimit uint32
	segmentLow    uint64
	firstLow      uint64
	sieveBytes    int
	sieve         []byte
	preSieve      *PreSieve
	small         *EratSmall
	medium        *EratMedium
	big           *EratBig
	limitSmall    uint64
	limitMedium   uint64
	consumer      Consumer
	finished      bool
}

// New creates an engine sieving [start, stop]. start is raised to 7 (the
// first wheel candidate; smaller primes are the driver's concern),
// sieveBytes is clamped to a power of two in [1 KB, 4096 KB] and
// preSieveLimit to [13, 23].
func New(start, stop uint64, sieveBytes int, preSieveLimit uint32, consumer Consumer) (*Sieve, error) {
	if stop > MaxStop {
		return nil, fmt.Errorf("%w: stop %d", errs.ErrInvalidBound, stop)
	}
	if stop < start {
		return nil, fmt.Errorf("%w: start %d, stop %d", errs.ErrInvalidInterval, start, stop)
	}
	if start < 7 {
		start = 7
	}
	if stop < start {
		return nil, fmt.Errorf("%w: stop must be >= 7", errs.ErrInvalidInterval)
	}

	if sieveBytes < minSieveBytes {
		sieveBytes = minSieveBytes
	}
	if sieveBytes > maxSieveBytes {
		sieveBytes = maxSieveBytes
	}
	sieveBytes = int(NextPow2(uint64(sieveBytes)))

	s := &Sieve{
		start:         start,
		stop:          stop,
		sqrtStop:      Isqrt(stop),
		sieveBytes:    sieveBytes,
		sieve:         make([]byte, sieveBytes),
		preSieve:      NewPreSieve(preSieveLimit),
		small:         newEratSmall(stop),
		medium:        newEratMedium(stop),
		limitSmall:    uint64(sieveBytes),
		limitMedium:   uint64(sieveBytes) * 5,
		consumer:      consumer,
	}
	s.preSieveLimit = s.preSieve.Limit()

	// Align the first segment so that start lies in its first byte.
	remainder := start % 30
	if remainder <= 6 {
		remainder += 30
	}
	s.segmentLow = start - remainder
	s.firstLow = s.segmentLow

	if s.sqrtStop > s.limitMedium {
		s.big = newEratBig(stop, sieveBytes, s.sqrtStop, s.firstLow)
	}

	return s, nil
}

// Start returns the (possibly raised) lower sieving bound.
func (s *Sieve) Start() uint64 { return s.start }

// Stop returns the upper sieving bound.
func (s *Sieve) Stop() uint64 { return s.stop }

// SqrtStop returns the integer square root of stop; every sieving prime up
// to this value must be passed to Sieve.
func (s *Sieve) SqrtStop() uint64 { return s.sqrtStop }

// PreSieveLimit returns the clamped pre-sieve prime limit.
func (s *Sieve) PreSieveLimit() uint32 { return s.preSieveLimit }

// SieveBytes returns the segment size in bytes.
func (s *Sieve) SieveBytes() int { return s.sieveBytes }

// Sieve accepts one sieving prime, in strictly ascending order, and routes
// it to the cross-off tier matching its magnitude. Every prime in
// (preSieveLimit, sqrt(stop)] must be passed before Finish.
func (s *Sieve) Sieve(prime uint64) {
	switch {
	case prime <= s.limitSmall:
		s.small.add(prime, s.segmentLow)
	case prime <= s.limitMedium:
		s.medium.add(prime, s.segmentLow)
	default:
		// big is only allocated when sqrt(stop) exceeds the medium limit; a
		// prime above sqrt(stop) has no multiple <= stop and can be dropped.
		if s.big != nil {
			s.big.add(prime, s.segmentLow)
		}
	}
}

// Finish processes every remaining segment up to stop. Idempotent after the
// first call.
func (s *Sieve) Finish() {
	if s.finished {
		return
	}
	s.finished = true

	width := 30 * uint64(s.sieveBytes)
	for s.segmentLow+width+1 < s.stop {
		s.sieveSegment(false)
	}
	s.sieveSegment(true)
}

// sieveSegment runs one segment through the pipeline: pre-sieve tiling,
// boundary trimming, the three cross-off tiers (smallest primes first, they
// have the densest hits), then the consumer hook.
func (s *Sieve) sieveSegment(last bool) {
	low := s.segmentLow
	s.preSieve.Apply(s.sieve, low)

	if low <= uint64(s.preSieveLimit) {
		// The pattern treats the pre-sieve primes themselves as composite;
		// restore their bits (all lie in the first byte).
		for _, p := range s.preSieve.Primes() {
			s.sieve[0] |= wheel.BitMask[p%30]
		}
	}

	if low == s.firstLow && s.start > low+7 {
		// Candidates below start all lie in the first byte (start-low <= 36).
		for k, r := range wheel.Residues {
			if low+uint64(r) < s.start {
				s.sieve[0] &^= 1 << k
			}
		}
	}

	byteCount := s.sieveBytes
	if last {
		if s.stop < low+7 {
			byteCount = 0
		} else {
			byteCount = int((s.stop-low-7)/30) + 1
			base := low + uint64(byteCount-1)*30
			for k, r := range wheel.Residues {
				if base+uint64(r) > s.stop {
					s.sieve[byteCount-1] &^= 1 << k
				}
			}
		}
		for i := byteCount; i < s.sieveBytes; i++ {
			s.sieve[i] = 0
		}
	}

	s.small.crossOff(s.sieve)
	s.medium.crossOff(s.sieve)
	if s.big != nil {
		s.big.crossOff(s.sieve)
	}

	s.consumer.ProcessSegment(s.sieve, byteCount, low)
	s.segmentLow += 30 * uint64(s.sieveBytes)
}
