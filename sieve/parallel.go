package sieve

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/arloliu/primeseg/errs"
)

// minThreadInterval is the smallest sub-interval worth a worker of its own;
// below that the scheduling overhead dominates the sieving.
const minThreadInterval = 100000

// ParallelPrimeSieve partitions [start, stop] into disjoint sub-intervals
// and sieves them with one independent PrimeSieve per worker goroutine.
// Counts are summed after all workers complete; the result is identical to
// a serial sieve of the same interval.
//
// Callbacks and printed output are serialized with a mutex, one segment at
// a time, but their order across workers is unspecified. Use the embedded
// PrimeSieve's Print* methods when ascending output order matters.
type ParallelPrimeSieve struct {
	PrimeSieve
	numThreads int
}

// NewParallel creates a ParallelPrimeSieve. The worker count defaults to the
// number of CPUs, bounded by the interval size.
func NewParallel(opts ...Option) (*ParallelPrimeSieve, error) {
	ps, err := New(opts...)
	if err != nil {
		return nil, err
	}

	return &ParallelPrimeSieve{PrimeSieve: *ps}, nil
}

// SetNumThreads sets the worker count; 0 restores the automatic default.
func (pps *ParallelPrimeSieve) SetNumThreads(n int) {
	if n < 0 {
		n = 0
	}
	pps.numThreads = n
}

// NumThreads returns the worker count that Sieve would use for the current
// interval.
func (pps *ParallelPrimeSieve) NumThreads() int {
	return pps.idealNumThreads()
}

func (pps *ParallelPrimeSieve) idealNumThreads() int {
	if pps.stop < pps.start {
		return 1
	}
	interval := pps.stop - pps.start + 1
	limit := interval / minThreadInterval
	if limit < 1 {
		limit = 1
	}
	threads := uint64(pps.numThreads)
	if threads == 0 {
		threads = uint64(runtime.NumCPU())
	}
	if threads > limit {
		threads = limit
	}

	return int(threads)
}

type subInterval struct {
	start uint64
	stop  uint64
}

// partition splits [start, stop] into threads sub-intervals whose inner
// boundaries are congruent 1 (mod 30). A counted constellation never spans
// the gap between a 30k+1 stop and a 30k+2 start, so per-worker tuplet
// counts sum to the serial result.
func partition(start, stop uint64, threads int) []subInterval {
	chunk := (stop - start + 1) / uint64(threads)
	ranges := make([]subInterval, 0, threads)
	low := start
	for i := 0; i < threads; i++ {
		if i == threads-1 {
			ranges = append(ranges, subInterval{low, stop})
			break
		}
		high := low + chunk
		high = high - high%30 + 1
		if high >= stop {
			ranges = append(ranges, subInterval{low, stop})
			break
		}
		ranges = append(ranges, subInterval{low, high})
		low = high + 1
	}

	return ranges
}

func (pps *ParallelPrimeSieve) newWorker(start, stop uint64, emitMu *sync.Mutex) *PrimeSieve {
	return &PrimeSieve{
		start:         start,
		stop:          stop,
		sieveSizeKB:   pps.sieveSizeKB,
		preSieveLimit: pps.preSieveLimit,
		flags:         pps.flags,
		out:           pps.out,
		status:        pps.status,
		cb32:          pps.cb32,
		cb32State:     pps.cb32State,
		cb64:          pps.cb64,
		cb64State:     pps.cb64State,
		cbState:       pps.cbState,
		emitMu:        emitMu,
		worker:        true,
	}
}

// Sieve sieves [start, stop] with idealNumThreads workers and sums their
// counts. With a single worker it degrades to the serial sieve.
func (pps *ParallelPrimeSieve) Sieve() error {
	if pps.stop < pps.start {
		return fmt.Errorf("%w: start %d, stop %d", errs.ErrInvalidInterval, pps.start, pps.stop)
	}
	threads := pps.idealNumThreads()
	if threads == 1 {
		return pps.PrimeSieve.Sieve()
	}

	begin := time.Now()
	pps.reset()

	ranges := partition(pps.start, pps.stop, threads)
	emitMu := &sync.Mutex{}
	workers := make([]*PrimeSieve, len(ranges))
	workerErrs := make([]error, len(ranges))

	var wg sync.WaitGroup
	for i, r := range ranges {
		workers[i] = pps.newWorker(r.start, r.stop, emitMu)
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			workerErrs[i] = workers[i].Sieve()
		}(i)
	}
	wg.Wait()

	if err := errors.Join(workerErrs...); err != nil {
		return err
	}

	for _, w := range workers {
		for k := range pps.counts {
			pps.counts[k] += w.counts[k]
		}
	}
	pps.status.finish()
	pps.seconds = time.Since(begin).Seconds()

	return nil
}

// SieveInterval sets the bounds and sieves in parallel.
func (pps *ParallelPrimeSieve) SieveInterval(start, stop uint64) error {
	if err := pps.SetStart(start); err != nil {
		return err
	}
	if err := pps.SetStop(stop); err != nil {
		return err
	}

	return pps.Sieve()
}

func (pps *ParallelPrimeSieve) countInterval(start, stop uint64, index int) (uint64, error) {
	if err := pps.SetFlags(FlagCountPrimes << index); err != nil {
		return 0, err
	}
	if err := pps.SieveInterval(start, stop); err != nil {
		return 0, err
	}

	return pps.counts[index], nil
}

// GeneratePrimes invokes fn once for every prime within [start, stop],
// serialized so that at most one invocation runs at a time. Unlike the
// serial sieve, the order across workers is unspecified; within one
// worker's sub-interval primes arrive in ascending order.
func (pps *ParallelPrimeSieve) GeneratePrimes(start, stop uint64, fn func(uint64)) error {
	if fn == nil {
		return errs.ErrInvalidCallback
	}
	pps.cb64 = fn
	pps.flags = flagCallback64
	pps.SetPreSieveLimit(13)

	return pps.SieveInterval(start, stop)
}

// CountPrimes counts the primes within [start, stop] in parallel.
func (pps *ParallelPrimeSieve) CountPrimes(start, stop uint64) (uint64, error) {
	return pps.countInterval(start, stop, 0)
}

// CountTwins counts the twin primes within [start, stop] in parallel.
func (pps *ParallelPrimeSieve) CountTwins(start, stop uint64) (uint64, error) {
	return pps.countInterval(start, stop, 1)
}

// CountTriplets counts the prime triplets within [start, stop] in parallel.
func (pps *ParallelPrimeSieve) CountTriplets(start, stop uint64) (uint64, error) {
	return pps.countInterval(start, stop, 2)
}

// CountQuadruplets counts the prime quadruplets within [start, stop] in
// parallel.
func (pps *ParallelPrimeSieve) CountQuadruplets(start, stop uint64) (uint64, error) {
	return pps.countInterval(start, stop, 3)
}

// CountQuintuplets counts the prime quintuplets within [start, stop] in
// parallel.
func (pps *ParallelPrimeSieve) CountQuintuplets(start, stop uint64) (uint64, error) {
	return pps.countInterval(start, stop, 4)
}

// CountSextuplets counts the prime sextuplets within [start, stop] in
// parallel.
func (pps *ParallelPrimeSieve) CountSextuplets(start, stop uint64) (uint64, error) {
	return pps.countInterval(start, stop, 5)
}

// CountSeptuplets counts the prime septuplets within [start, stop] in
// parallel.
func (pps *ParallelPrimeSieve) CountSeptuplets(start, stop uint64) (uint64, error) {
	return pps.countInterval(start, stop, 6)
}
