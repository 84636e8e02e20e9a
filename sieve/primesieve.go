package sieve

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/arloliu/primeseg/errs"
	"github.com/arloliu/primeseg/internal/cpu"
	"github.com/arloliu/primeseg/internal/erat"
	"github.com/arloliu/primeseg/internal/options"
)

// MaxStop is the largest value accepted for start and stop.
const MaxStop = erat.MaxStop

// countsSize is the number of tracked arities: primes plus twins through
// septuplets.
const countsSize = 7

// PrimeSieve sieves primes and prime k-tuplets (twins through septuplets)
// within an arbitrary interval [start, stop] using a segmented sieve of
// Eratosthenes. It can count, print or hand each prime to a callback.
//
// A PrimeSieve is not safe for concurrent use; for parallel sieving over
// disjoint sub-intervals use ParallelPrimeSieve.
type PrimeSieve struct {
	start         uint64
	stop          uint64
	sieveSizeKB   int
	preSieveLimit uint32
	flags         uint32
	counts        [countsSize]uint64
	seconds       float64
	out           io.Writer
	status        *status

	cb32      func(uint32)
	cb32State func(uint32, any)
	cb64      func(uint64)
	cb64State func(uint64, any)
	cbState   any

	// Set on workers spawned by ParallelPrimeSieve: the emit mutex
	// serializes callback/print output across workers, and worker
	// suppresses the status lifecycle owned by the parent.
	emitMu *sync.Mutex
	worker bool
}

// New creates a PrimeSieve. Without options it counts primes over the
// interval [0, 0]; configure it with WithStart/WithStop/WithFlags or use the
// Count*/Print*/GeneratePrimes methods which set bounds and flags directly.
func New(opts ...Option) (*PrimeSieve, error) {
	ps := &PrimeSieve{
		flags:         FlagCountPrimes,
		sieveSizeKB:   cpu.DefaultSieveBytes() / 1024,
		preSieveLimit: 19,
		out:           os.Stdout,
		status:        &status{},
	}
	if err := options.Apply(ps, opts...); err != nil {
		return nil, err
	}

	return ps, nil
}

// Start returns the inclusive lower sieving bound.
func (ps *PrimeSieve) Start() uint64 { return ps.start }

// Stop returns the inclusive upper sieving bound.
func (ps *PrimeSieve) Stop() uint64 { return ps.stop }

// SieveSize returns the segment size in kilobytes.
func (ps *PrimeSieve) SieveSize() int { return ps.sieveSizeKB }

// PreSieveLimit returns the pre-sieve prime limit.
func (ps *PrimeSieve) PreSieveLimit() int { return int(ps.preSieveLimit) }

// Flags returns the public flags.
func (ps *PrimeSieve) Flags() uint32 { return ps.flags & (maxFlags - 1) &^ callbackFlags }

// Status returns the progress of Sieve in percent.
func (ps *PrimeSieve) Status() float64 { return ps.status.value() }

// Seconds returns the elapsed time of the last Sieve call in seconds.
func (ps *PrimeSieve) Seconds() float64 { return ps.seconds }

// SetStart sets the inclusive lower sieving bound.
func (ps *PrimeSieve) SetStart(start uint64) error {
	if start > MaxStop {
		return fmt.Errorf("%w: start %d", errs.ErrInvalidBound, start)
	}
	ps.start = start

	return nil
}

// SetStop sets the inclusive upper sieving bound.
func (ps *PrimeSieve) SetStop(stop uint64) error {
	if stop > MaxStop {
		return fmt.Errorf("%w: stop %d", errs.ErrInvalidBound, stop)
	}
	ps.stop = stop

	return nil
}

// SetSieveSize sets the segment size in kilobytes. The value is clamped to
// [1, 4096] and rounded up to the next power of two. Best performance is
// achieved when one segment fits the L1 data cache.
func (ps *PrimeSieve) SetSieveSize(kilobytes int) {
	if kilobytes < 1 {
		kilobytes = 1
	}
	if kilobytes > 4096 {
		kilobytes = 4096
	}
	ps.sieveSizeKB = int(erat.NextPow2(uint64(kilobytes)))
}

// SetPreSieveLimit sets the pre-sieve prime limit, clamped to [13, 23].
func (ps *PrimeSieve) SetPreSieveLimit(limit int) {
	if limit < 13 {
		limit = 13
	}
	if limit > 23 {
		limit = 23
	}
	ps.preSieveLimit = uint32(limit)
}

// SetFlags replaces the count/print flags.
func (ps *PrimeSieve) SetFlags(flags uint32) error {
	if flags >= maxFlags {
		return fmt.Errorf("%w: %#x", errs.ErrInvalidFlags, flags)
	}
	ps.flags = flags

	return nil
}

// AddFlags adds count/print flags to the current set.
func (ps *PrimeSieve) AddFlags(flags uint32) error {
	if flags >= maxFlags {
		return fmt.Errorf("%w: %#x", errs.ErrInvalidFlags, flags)
	}
	ps.flags |= flags

	return nil
}

// Count returns the count of primes (index 0) or prime k-tuplets (index
// k-1, k in 2..7) gathered by the last Sieve call.
func (ps *PrimeSieve) Count(index int) (uint64, error) {
	if index < 0 || index >= countsSize {
		return 0, fmt.Errorf("%w: %d", errs.ErrIndexOutOfRange, index)
	}

	return ps.counts[index], nil
}

// PrimeCount returns the prime count of the last Sieve call.
func (ps *PrimeSieve) PrimeCount() uint64 { return ps.counts[0] }

// TwinCount returns the twin prime count of the last Sieve call.
func (ps *PrimeSieve) TwinCount() uint64 { return ps.counts[1] }

// TripletCount returns the prime triplet count of the last Sieve call.
func (ps *PrimeSieve) TripletCount() uint64 { return ps.counts[2] }

// QuadrupletCount returns the prime quadruplet count of the last Sieve call.
func (ps *PrimeSieve) QuadrupletCount() uint64 { return ps.counts[3] }

// QuintupletCount returns the prime quintuplet count of the last Sieve call.
func (ps *PrimeSieve) QuintupletCount() uint64 { return ps.counts[4] }

// SextupletCount returns the prime sextuplet count of the last Sieve call.
func (ps *PrimeSieve) SextupletCount() uint64 { return ps.counts[5] }

// SeptupletCount returns the prime septuplet count of the last Sieve call.
func (ps *PrimeSieve) SeptupletCount() uint64 { return ps.counts[6] }

func (ps *PrimeSieve) sieveBytes() int {
	return ps.sieveSizeKB * 1024
}

func (ps *PrimeSieve) reset() {
	for i := range ps.counts {
		ps.counts[i] = 0
	}
	ps.seconds = 0
	if !ps.worker {
		ps.status.reset(ps.stop-ps.start+1, ps.testFlags(FlagPrintStatus), ps.out)
	}
}

func (ps *PrimeSieve) lockEmit() {
	if ps.emitMu != nil {
		ps.emitMu.Lock()
	}
}

func (ps *PrimeSieve) unlockEmit() {
	if ps.emitMu != nil {
		ps.emitMu.Unlock()
	}
}

// smallPrimeSeed describes one prime or tuplet below the wheel's valid
// range; the residue encoding begins at 7, so these are handled from a
// table.
type smallPrimeSeed struct {
	min   uint32
	max   uint32
	index int
	str   string
}

var smallPrimeSeeds = [8]smallPrimeSeed{
	{2, 2, 0, "2"},
	{3, 3, 0, "3"},
	{5, 5, 0, "5"},
	{3, 5, 1, "(3, 5)"},
	{5, 7, 1, "(5, 7)"},
	{5, 11, 2, "(5, 7, 11)"},
	{5, 13, 3, "(5, 7, 11, 13)"},
	{5, 17, 4, "(5, 7, 11, 13, 17)"},
}

func (ps *PrimeSieve) doSmallPrime(sp *smallPrimeSeed) {
	if ps.start > uint64(sp.min) || uint64(sp.max) > ps.stop {
		return
	}
	if sp.index == 0 && ps.testFlags(callbackFlags) {
		ps.lockEmit()
		if ps.testFlags(flagCallback32) && ps.cb32 != nil {
			ps.cb32(sp.min)
		}
		if ps.testFlags(flagCallback32State) && ps.cb32State != nil {
			ps.cb32State(sp.min, ps.cbState)
		}
		if ps.testFlags(flagCallback64) && ps.cb64 != nil {
			ps.cb64(uint64(sp.min))
		}
		if ps.testFlags(flagCallback64State) && ps.cb64State != nil {
			ps.cb64State(uint64(sp.min), ps.cbState)
		}
		ps.unlockEmit()
	}
	if ps.testFlags(FlagCountPrimes << sp.index) {
		ps.counts[sp.index]++
	}
	if ps.testFlags(FlagPrintPrimes << sp.index) {
		ps.lockEmit()
		fmt.Fprintln(ps.out, sp.str)
		ps.unlockEmit()
	}
}

// Sieve sieves the primes and prime k-tuplets within [start, stop]
// according to the current flags. Each call resets counts and status; no
// sieve state survives between calls.
func (ps *PrimeSieve) Sieve() error {
	if ps.stop < ps.start {
		return fmt.Errorf("%w: start %d, stop %d", errs.ErrInvalidInterval, ps.start, ps.stop)
	}
	begin := time.Now()
	ps.reset()

	// Primes and tuplets below the wheel range come from the seed table.
	if ps.start <= 5 {
		for i := range smallPrimeSeeds {
			ps.doSmallPrime(&smallPrimeSeeds[i])
		}
	}

	if ps.stop >= 7 {
		finder, err := newFinder(ps)
		if err != nil {
			return err
		}
		if finder.needGenerator() {
			gen, err := newGenerator(finder)
			if err != nil {
				return err
			}
			gen.bootstrap()
			gen.finish()
		}
		finder.finish()
	}

	if !ps.worker {
		ps.status.finish()
	}
	ps.seconds = time.Since(begin).Seconds()

	return nil
}

// SieveInterval sets the bounds and sieves.
func (ps *PrimeSieve) SieveInterval(start, stop uint64) error {
	if err := ps.SetStart(start); err != nil {
		return err
	}
	if err := ps.SetStop(stop); err != nil {
		return err
	}

	return ps.Sieve()
}

func (ps *PrimeSieve) countInterval(start, stop uint64, index int) (uint64, error) {
	if err := ps.SetFlags(FlagCountPrimes << index); err != nil {
		return 0, err
	}
	if err := ps.SieveInterval(start, stop); err != nil {
		return 0, err
	}

	return ps.counts[index], nil
}

func (ps *PrimeSieve) printInterval(start, stop uint64, index int) error {
	if err := ps.SetFlags(FlagPrintPrimes << index); err != nil {
		return err
	}

	return ps.SieveInterval(start, stop)
}

// CountPrimes counts the primes within [start, stop].
func (ps *PrimeSieve) CountPrimes(start, stop uint64) (uint64, error) {
	return ps.countInterval(start, stop, 0)
}

// CountTwins counts the twin primes within [start, stop].
func (ps *PrimeSieve) CountTwins(start, stop uint64) (uint64, error) {
	return ps.countInterval(start, stop, 1)
}

// CountTriplets counts the prime triplets within [start, stop].
func (ps *PrimeSieve) CountTriplets(start, stop uint64) (uint64, error) {
	return ps.countInterval(start, stop, 2)
}

// CountQuadruplets counts the prime quadruplets within [start, stop].
func (ps *PrimeSieve) CountQuadruplets(start, stop uint64) (uint64, error) {
	return ps.countInterval(start, stop, 3)
}

// CountQuintuplets counts the prime quintuplets within [start, stop].
func (ps *PrimeSieve) CountQuintuplets(start, stop uint64) (uint64, error) {
	return ps.countInterval(start, stop, 4)
}

// CountSextuplets counts the prime sextuplets within [start, stop].
func (ps *PrimeSieve) CountSextuplets(start, stop uint64) (uint64, error) {
	return ps.countInterval(start, stop, 5)
}

// CountSeptuplets counts the prime septuplets within [start, stop].
func (ps *PrimeSieve) CountSeptuplets(start, stop uint64) (uint64, error) {
	return ps.countInterval(start, stop, 6)
}

// PrintPrimes prints the primes within [start, stop] to the output writer,
// one per line, in ascending order.
func (ps *PrimeSieve) PrintPrimes(start, stop uint64) error {
	return ps.printInterval(start, stop, 0)
}

// PrintTwins prints the twin primes within [start, stop].
func (ps *PrimeSieve) PrintTwins(start, stop uint64) error {
	return ps.printInterval(start, stop, 1)
}

// PrintTriplets prints the prime triplets within [start, stop].
func (ps *PrimeSieve) PrintTriplets(start, stop uint64) error {
	return ps.printInterval(start, stop, 2)
}

// PrintQuadruplets prints the prime quadruplets within [start, stop].
func (ps *PrimeSieve) PrintQuadruplets(start, stop uint64) error {
	return ps.printInterval(start, stop, 3)
}

// PrintQuintuplets prints the prime quintuplets within [start, stop].
func (ps *PrimeSieve) PrintQuintuplets(start, stop uint64) error {
	return ps.printInterval(start, stop, 4)
}

// PrintSextuplets prints the prime sextuplets within [start, stop].
func (ps *PrimeSieve) PrintSextuplets(start, stop uint64) error {
	return ps.printInterval(start, stop, 5)
}

// PrintSeptuplets prints the prime septuplets within [start, stop].
func (ps *PrimeSieve) PrintSeptuplets(start, stop uint64) error {
	return ps.printInterval(start, stop, 6)
}

// GeneratePrimes invokes fn once for every prime within [start, stop], in
// ascending order. It resets the flags to the 64-bit callback and lowers the
// pre-sieve limit to 13 to speed up initialization.
func (ps *PrimeSieve) GeneratePrimes(start, stop uint64, fn func(uint64)) error {
	if fn == nil {
		return errs.ErrInvalidCallback
	}
	ps.cb64 = fn
	ps.flags = flagCallback64
	ps.SetPreSieveLimit(13)

	return ps.SieveInterval(start, stop)
}

// GeneratePrimesState is like GeneratePrimes but passes the opaque state
// value to every invocation. state must not be nil.
func (ps *PrimeSieve) GeneratePrimesState(start, stop uint64, fn func(uint64, any), state any) error {
	if fn == nil || state == nil {
		return errs.ErrInvalidCallback
	}
	ps.cb64State = fn
	ps.cbState = state
	ps.flags = flagCallback64State
	ps.SetPreSieveLimit(13)

	return ps.SieveInterval(start, stop)
}

// GeneratePrimes32 invokes fn once for every prime within [start, stop], in
// ascending order, as 32-bit values.
func (ps *PrimeSieve) GeneratePrimes32(start, stop uint32, fn func(uint32)) error {
	if fn == nil {
		return errs.ErrInvalidCallback
	}
	ps.cb32 = fn
	ps.flags = flagCallback32
	ps.SetPreSieveLimit(13)

	return ps.SieveInterval(uint64(start), uint64(stop))
}

// GeneratePrimes32State is like GeneratePrimes32 but passes the opaque
// state value to every invocation. state must not be nil.
func (ps *PrimeSieve) GeneratePrimes32State(start, stop uint32, fn func(uint32, any), state any) error {
	if fn == nil || state == nil {
		return errs.ErrInvalidCallback
	}
	ps.cb32State = fn
	ps.cbState = state
	ps.flags = flagCallback32State
	ps.SetPreSieveLimit(13)

	return ps.SieveInterval(uint64(start), uint64(stop))
}
