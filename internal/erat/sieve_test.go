package erat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// simplePrimes returns all primes <= limit with a plain sieve; the oracle
// for engine results.
func simplePrimes(limit uint64) []uint64 {
	if limit < 2 {
		return nil
	}
	composite := make([]bool, limit+1)
	var primes []uint64
	for i := uint64(2); i <= limit; i++ {
		if composite[i] {
			continue
		}
		primes = append(primes, i)
		for j := i * i; j <= limit; j += i {
			composite[j] = true
		}
	}

	return primes
}

// rangePrimes returns all primes in [start, stop] with an offset sieve.
func rangePrimes(start, stop uint64) []uint64 {
	if stop < 2 {
		return nil
	}
	composite := make([]bool, stop-start+1)
	for _, p := range simplePrimes(Isqrt(stop)) {
		first := p * p
		if first < start {
			first = (start + p - 1) / p * p
		}
		for m := first; m <= stop; m += p {
			composite[m-start] = true
		}
	}
	var primes []uint64
	for i := range composite {
		n := start + uint64(i)
		if n >= 2 && !composite[i] {
			primes = append(primes, n)
		}
	}

	return primes
}

type collector struct {
	primes []uint64
}

func (c *collector) ProcessSegment(sieve []byte, byteCount int, low uint64) {
	ForEachPrime(sieve, byteCount, low, func(p uint64) {
		c.primes = append(c.primes, p)
	})
}

// runEngine sieves [start, stop] with the given segment size and pre-sieve
// limit, feeding sieving primes from the oracle, and returns the decoded
// primes.
func runEngine(t *testing.T, start, stop uint64, sieveBytes int, preSieveLimit uint32) []uint64 {
	t.Helper()
	c := &collector{}
	engine, err := New(start, stop, sieveBytes, preSieveLimit, c)
	require.NoError(t, err)
	for _, p := range simplePrimes(engine.SqrtStop()) {
		if p > uint64(engine.PreSieveLimit()) {
			engine.Sieve(p)
		}
	}
	engine.Finish()
	engine.Finish() // idempotent

	return c.primes
}

// oracle drops primes below 7: the engine's range starts at the first wheel
// candidate.
func oracleFrom7(start, stop uint64) []uint64 {
	if start < 7 {
		start = 7
	}
	if stop < start {
		return nil
	}

	return rangePrimes(start, stop)
}

func TestEngineSmallRanges(t *testing.T) {
	tests := []struct {
		name        string
		start, stop uint64
	}{
		{"from 7", 7, 10000},
		{"from 0", 0, 5000},
		{"single candidate", 7, 7},
		{"empty window", 8, 10},
		{"prime bounds", 11, 97},
		{"odd window", 12345, 54321},
		{"segment boundary stop", 7, 30719},
		{"segment boundary straddle", 30700, 30750},
		{"residue 1 stop", 7, 30721},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runEngine(t, tt.start, tt.stop, 1024, 19)
			require.Equal(t, oracleFrom7(tt.start, tt.stop), got)
		})
	}
}

// TestEngineMediumAndBigTiers uses a 1 KB segment so that sieving primes
// above 1024 exercise EratMedium and those above 5120 exercise EratBig.
func TestEngineMediumAndBigTiers(t *testing.T) {
	const stop = 27_000_000 // sqrt(stop) == 5196 > 5*1024
	got := runEngine(t, 26_000_000, stop, 1024, 19)
	require.Equal(t, oracleFrom7(26_000_000, stop), got)
}

func TestEngineHighWindow(t *testing.T) {
	const start, stop = 1_000_000_000, 1_000_100_000
	got := runEngine(t, start, stop, 32*1024, 19)
	want := oracleFrom7(start, stop)
	require.Equal(t, want, got)
	require.Len(t, got, 5592)
}

func TestEngineSieveSizeInvariance(t *testing.T) {
	want := runEngine(t, 0, 300000, 32*1024, 19)
	for _, kb := range []int{1, 2, 8, 256} {
		got := runEngine(t, 0, 300000, kb*1024, 19)
		require.Equal(t, want, got, "sieve size %d KB", kb)
	}
}

func TestEnginePreSieveInvariance(t *testing.T) {
	want := runEngine(t, 0, 300000, 8*1024, 13)
	for _, limit := range []uint32{17, 19, 23} {
		got := runEngine(t, 0, 300000, 8*1024, limit)
		require.Equal(t, want, got, "pre-sieve limit %d", limit)
	}
}

func TestEngineValidation(t *testing.T) {
	c := &collector{}
	_, err := New(100, 50, 1024, 19, c)
	require.Error(t, err)

	_, err = New(0, MaxStop+1, 1024, 19, c)
	require.Error(t, err)

	// clamping: odd segment size rounds up to a power of two
	engine, err := New(7, 1000, 3000, 19, c)
	require.NoError(t, err)
	require.Equal(t, 4096, engine.SieveBytes())
	require.Equal(t, uint32(19), engine.PreSieveLimit())
}

func TestIsqrt(t *testing.T) {
	tests := []struct {
		n    uint64
		want uint64
	}{
		{0, 0},
		{1, 1},
		{2, 1},
		{3, 1},
		{4, 2},
		{99, 9},
		{100, 10},
		{101, 10},
		{1 << 32, 1 << 16},
		{math.MaxUint32, 65535},
		{uint64(math.MaxUint32) * uint64(math.MaxUint32), math.MaxUint32},
		{math.MaxUint64, math.MaxUint32},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Isqrt(tt.n), "Isqrt(%d)", tt.n)
	}
}

func TestNextPow2(t *testing.T) {
	require.Equal(t, uint64(1), NextPow2(1))
	require.Equal(t, uint64(2), NextPow2(2))
	require.Equal(t, uint64(4), NextPow2(3))
	require.Equal(t, uint64(1024), NextPow2(1000))
	require.Equal(t, uint64(1024), NextPow2(1024))
}

func TestCountBits(t *testing.T) {
	sieve := make([]byte, 16)
	sieve[0] = 0xff
	sieve[9] = 0x81
	require.Equal(t, uint64(10), CountBits(sieve, 16))
	require.Equal(t, uint64(8), CountBits(sieve, 8))
}
