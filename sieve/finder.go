package sieve

import (
	"strconv"

	"github.com/arloliu/primeseg/internal/erat"
	"github.com/arloliu/primeseg/internal/wheel"
)

// tupletMasks holds the residue-pattern bitmasks per tuple arity (twins
// first). A byte matching a mask contains one constellation: with residue 31
// stored alongside 29, every admissible pattern is byte-aligned.
var tupletMasks = [6][]uint8{
	{0x06, 0x18, 0xc0},       // twins: (11,13) (17,19) (29,31)
	{0x07, 0x0e, 0x1c, 0x38}, // triplets: (7,11,13) (11,13,17) (13,17,19) (17,19,23)
	{0x1e},                   // quadruplets: (11,13,17,19)
	{0x1f, 0x3e},             // quintuplets: (7..19) (11..23)
	{0x3f},                   // sextuplets: (7..23)
	{0xfe},                   // septuplets: (11..31)
}

// finder consumes the segments of the outer engine and dispatches on the
// driver's flags: counting, printing and callbacks.
type finder struct {
	ps     *PrimeSieve
	engine *erat.Sieve
}

func newFinder(ps *PrimeSieve) (*finder, error) {
	f := &finder{ps: ps}
	engine, err := erat.New(ps.start, ps.stop, ps.sieveBytes(), ps.preSieveLimit, f)
	if err != nil {
		return nil, err
	}
	f.engine = engine

	return f, nil
}

// needGenerator reports whether the finder requires sieving primes beyond
// the pre-sieve limit; below (limit+1)^2 every composite candidate already
// carries a pre-sieved factor.
func (f *finder) needGenerator() bool {
	return f.engine.SqrtStop() > uint64(f.engine.PreSieveLimit())
}

func (f *finder) finish() {
	f.engine.Finish()
}

// ProcessSegment implements erat.Consumer.
func (f *finder) ProcessSegment(sieve []byte, byteCount int, low uint64) {
	ps := f.ps

	if ps.testFlags(FlagCountPrimes) {
		ps.counts[0] += erat.CountBits(sieve, byteCount)
	}
	if ps.testFlags(countFlags &^ FlagCountPrimes) {
		for k := 1; k < countsSize; k++ {
			if !ps.testFlags(FlagCountPrimes << k) {
				continue
			}
			masks := tupletMasks[k-1]
			var n uint64
			for i := 0; i < byteCount; i++ {
				for _, m := range masks {
					if sieve[i]&m == m {
						n++
					}
				}
			}
			ps.counts[k] += n
		}
	}

	if ps.testFlags(printFlags) {
		f.printSegment(sieve, byteCount, low)
	}
	if ps.testFlags(callbackFlags) {
		f.callbackSegment(sieve, byteCount, low)
	}

	ps.status.add(uint64(byteCount) * wheel.NumbersPerByte)
}

// printSegment renders the segment's output into one buffer and emits it
// with a single write, so parallel workers interleave at segment
// granularity only.
func (f *finder) printSegment(sieve []byte, byteCount int, low uint64) {
	ps := f.ps
	var buf []byte

	if ps.testFlags(FlagPrintPrimes) {
		erat.ForEachPrime(sieve, byteCount, low, func(p uint64) {
			buf = strconv.AppendUint(buf, p, 10)
			buf = append(buf, '\n')
		})
	}
	for k := 1; k < countsSize; k++ {
		if !ps.testFlags(FlagPrintPrimes << k) {
			continue
		}
		masks := tupletMasks[k-1]
		for i := 0; i < byteCount; i++ {
			for _, m := range masks {
				if sieve[i]&m != m {
					continue
				}
				base := low + uint64(i)*wheel.NumbersPerByte
				buf = append(buf, '(')
				first := true
				for bit := 0; bit < 8; bit++ {
					if m&(1<<bit) == 0 {
						continue
					}
					if !first {
						buf = append(buf, ", "...)
					}
					first = false
					buf = strconv.AppendUint(buf, base+uint64(wheel.Residues[bit]), 10)
				}
				buf = append(buf, ")\n"...)
			}
		}
	}

	if len(buf) > 0 {
		ps.lockEmit()
		ps.out.Write(buf)
		ps.unlockEmit()
	}
}

// callbackSegment decodes every prime and invokes the configured callback
// variants. The whole segment runs under the emit lock so parallel callers
// observe at-most-one-at-a-time semantics.
func (f *finder) callbackSegment(sieve []byte, byteCount int, low uint64) {
	ps := f.ps
	ps.lockEmit()
	defer ps.unlockEmit()

	if ps.testFlags(flagCallback32) && ps.cb32 != nil {
		erat.ForEachPrime(sieve, byteCount, low, func(p uint64) {
			ps.cb32(uint32(p))
		})
	}
	if ps.testFlags(flagCallback32State) && ps.cb32State != nil {
		erat.ForEachPrime(sieve, byteCount, low, func(p uint64) {
			ps.cb32State(uint32(p), ps.cbState)
		})
	}
	if ps.testFlags(flagCallback64) && ps.cb64 != nil {
		erat.ForEachPrime(sieve, byteCount, low, ps.cb64)
	}
	if ps.testFlags(flagCallback64State) && ps.cb64State != nil {
		erat.ForEachPrime(sieve, byteCount, low, func(p uint64) {
			ps.cb64State(p, ps.cbState)
		})
	}
}
