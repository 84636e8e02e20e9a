package sieve

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/primeseg/errs"
)

// ==============================================================================
// Helper Functions

func newTestSieve(t *testing.T, opts ...Option) *PrimeSieve {
	t.Helper()
	ps, err := New(opts...)
	require.NoError(t, err)

	return ps
}

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

// ==============================================================================
// Counting

func TestCountPrimes(t *testing.T) {
	tests := []struct {
		name        string
		start, stop uint64
		want        uint64
	}{
		{"0 to 100", 0, 100, 25},
		{"0 to 10", 0, 10, 4},
		{"2 alone", 2, 2, 1},
		{"3 to 5", 3, 5, 2},
		{"4 alone", 4, 4, 0},
		{"0 to 0", 0, 0, 0},
		{"1 to 1", 1, 1, 0},
		{"0 to 1000000", 0, 1000000, 78498},
		{"billion window", 1000000000, 1000100000, 5592},
	}
	ps := newTestSieve(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ps.CountPrimes(tt.start, tt.stop)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestCountStartZeroAndOneAgree(t *testing.T) {
	ps := newTestSieve(t)
	fromZero, err := ps.CountPrimes(0, 10000)
	require.NoError(t, err)
	fromOne, err := ps.CountPrimes(1, 10000)
	require.NoError(t, err)
	require.Equal(t, fromZero, fromOne)
}

func TestCountTuplets(t *testing.T) {
	ps := newTestSieve(t)

	twins, err := ps.CountTwins(0, 100)
	require.NoError(t, err)
	require.Equal(t, uint64(8), twins)

	triplets, err := ps.CountTriplets(0, 100)
	require.NoError(t, err)
	require.Equal(t, uint64(8), triplets)

	quadruplets, err := ps.CountQuadruplets(0, 100)
	require.NoError(t, err)
	require.Equal(t, uint64(2), quadruplets)

	quintuplets, err := ps.CountQuintuplets(0, 100)
	require.NoError(t, err)
	require.Equal(t, uint64(3), quintuplets)

	sextuplets, err := ps.CountSextuplets(0, 100)
	require.NoError(t, err)
	require.Equal(t, uint64(1), sextuplets)

	septuplets, err := ps.CountSeptuplets(0, 100)
	require.NoError(t, err)
	require.Equal(t, uint64(1), septuplets)
}

func TestCountTwinsMillion(t *testing.T) {
	ps := newTestSieve(t)
	twins, err := ps.CountTwins(0, 1000000)
	require.NoError(t, err)
	require.Equal(t, uint64(8169), twins)
}

func TestCountSextupletsTenThousand(t *testing.T) {
	// (7..23) and (97..113)
	ps := newTestSieve(t)
	sextuplets, err := ps.CountSextuplets(0, 10000)
	require.NoError(t, err)
	require.Equal(t, uint64(2), sextuplets)
}

func TestCombinedFlags(t *testing.T) {
	ps := newTestSieve(t,
		WithStart(0),
		WithStop(100),
		WithFlags(FlagCountPrimes|FlagCountTwins|FlagCountSeptuplets),
	)
	require.NoError(t, ps.Sieve())
	require.Equal(t, uint64(25), ps.PrimeCount())
	require.Equal(t, uint64(8), ps.TwinCount())
	require.Equal(t, uint64(1), ps.SeptupletCount())
	// arities without their flag stay zero
	require.Equal(t, uint64(0), ps.TripletCount())
}

func TestSplittingInvariance(t *testing.T) {
	ps := newTestSieve(t)
	total, err := ps.CountPrimes(0, 100000)
	require.NoError(t, err)
	for _, cut := range []uint64{1, 2, 9999, 50000, 65536, 99999} {
		left, err := ps.CountPrimes(0, cut)
		require.NoError(t, err)
		right, err := ps.CountPrimes(cut+1, 100000)
		require.NoError(t, err)
		require.Equal(t, total, left+right, "cut %d", cut)
	}

	// twins split between constellations
	twins, err := ps.CountTwins(0, 100)
	require.NoError(t, err)
	lo, err := ps.CountTwins(0, 50)
	require.NoError(t, err)
	hi, err := ps.CountTwins(51, 100)
	require.NoError(t, err)
	require.Equal(t, twins, lo+hi)
}

func TestSieveSizeInvariance(t *testing.T) {
	want := uint64(17984) // pi(200000)
	for _, kb := range []int{1, 4, 64, 512} {
		ps := newTestSieve(t, WithSieveSize(kb))
		got, err := ps.CountPrimes(0, 200000)
		require.NoError(t, err)
		require.Equal(t, want, got, "sieve size %d KB", kb)
	}
}

func TestPreSieveLimitInvariance(t *testing.T) {
	want := uint64(9592) // pi(100000)
	for _, limit := range []int{13, 17, 19, 23} {
		ps := newTestSieve(t, WithPreSieveLimit(limit))
		got, err := ps.CountPrimes(0, 100000)
		require.NoError(t, err)
		require.Equal(t, want, got, "pre-sieve limit %d", limit)
	}
}

func TestIdempotence(t *testing.T) {
	ps := newTestSieve(t, WithStart(0), WithStop(100000), WithFlags(FlagCountPrimes|FlagCountTwins))
	require.NoError(t, ps.Sieve())
	first := [2]uint64{ps.PrimeCount(), ps.TwinCount()}
	require.NoError(t, ps.Sieve())
	require.Equal(t, first, [2]uint64{ps.PrimeCount(), ps.TwinCount()})
}

// ==============================================================================
// Callbacks

func TestGeneratePrimesOrder(t *testing.T) {
	ps := newTestSieve(t)
	var got []uint64
	err := ps.GeneratePrimes(0, 30, func(p uint64) {
		got = append(got, p)
	})
	require.NoError(t, err)
	require.Equal(t, []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}, got)
}

func TestGeneratePrimesMatchesOracle(t *testing.T) {
	ps := newTestSieve(t)
	var got []uint64
	err := ps.GeneratePrimes(0, 100000, func(p uint64) {
		got = append(got, p)
	})
	require.NoError(t, err)
	require.Equal(t, simplePrimes(100000), got)
}

func TestGeneratePrimesHighWindow(t *testing.T) {
	ps := newTestSieve(t)
	var got []uint64
	err := ps.GeneratePrimes(999900000, 1000000000, func(p uint64) {
		got = append(got, p)
	})
	require.NoError(t, err)
	require.NotEmpty(t, got)
	// ascending, within bounds
	for i, p := range got {
		require.GreaterOrEqual(t, p, uint64(999900000))
		require.LessOrEqual(t, p, uint64(1000000000))
		if i > 0 {
			require.Greater(t, p, got[i-1])
		}
	}
	count, err := ps.CountPrimes(999900000, 1000000000)
	require.NoError(t, err)
	require.Equal(t, count, uint64(len(got)))
}

func TestGeneratePrimes32(t *testing.T) {
	ps := newTestSieve(t)
	var got []uint64
	err := ps.GeneratePrimes32(0, 100, func(p uint32) {
		got = append(got, uint64(p))
	})
	require.NoError(t, err)
	require.Equal(t, simplePrimes(100), got)
}

func TestGeneratePrimesState(t *testing.T) {
	ps := newTestSieve(t)
	var sink []uint64
	err := ps.GeneratePrimesState(0, 50, func(p uint64, state any) {
		s := state.(*[]uint64)
		*s = append(*s, p)
	}, &sink)
	require.NoError(t, err)
	require.Equal(t, simplePrimes(50), sink)

	var sink32 []uint64
	err = ps.GeneratePrimes32State(0, 50, func(p uint32, state any) {
		s := state.(*[]uint64)
		*s = append(*s, uint64(p))
	}, &sink32)
	require.NoError(t, err)
	require.Equal(t, simplePrimes(50), sink32)
}

func TestGeneratePrimesIdenticalSequences(t *testing.T) {
	ps := newTestSieve(t)
	run := func() []uint64 {
		var got []uint64
		err := ps.GeneratePrimes(0, 10000, func(p uint64) { got = append(got, p) })
		require.NoError(t, err)
		return got
	}
	require.Equal(t, run(), run())
}

// ==============================================================================
// Printing

func TestPrintPrimes(t *testing.T) {
	var buf bytes.Buffer
	ps := newTestSieve(t, WithOutput(&buf))
	require.NoError(t, ps.PrintPrimes(0, 30))
	require.Equal(t, "2\n3\n5\n7\n11\n13\n17\n19\n23\n29\n", buf.String())
}

// TestPrintPrimesTwoSegments prints an interval spanning exactly two 1 KB
// segments and verifies the concatenated ascending output.
func TestPrintPrimesTwoSegments(t *testing.T) {
	const stop = 30*1024*2 - 1
	var buf bytes.Buffer
	ps := newTestSieve(t, WithOutput(&buf), WithSieveSize(1))
	require.NoError(t, ps.PrintPrimes(0, stop))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	got := make([]uint64, len(lines))
	for i, line := range lines {
		p, err := strconv.ParseUint(line, 10, 64)
		require.NoError(t, err)
		got[i] = p
	}
	require.Equal(t, simplePrimes(stop), got)
}

func TestPrintTwins(t *testing.T) {
	var buf bytes.Buffer
	ps := newTestSieve(t, WithOutput(&buf))
	require.NoError(t, ps.PrintTwins(0, 100))
	want := "(3, 5)\n(5, 7)\n(11, 13)\n(17, 19)\n(29, 31)\n(41, 43)\n(59, 61)\n(71, 73)\n"
	require.Equal(t, want, buf.String())
}

func TestPrintSeptuplets(t *testing.T) {
	var buf bytes.Buffer
	ps := newTestSieve(t, WithOutput(&buf))
	require.NoError(t, ps.PrintSeptuplets(0, 100))
	require.Equal(t, "(11, 13, 17, 19, 23, 29, 31)\n", buf.String())
}

func TestPrintStatus(t *testing.T) {
	var buf bytes.Buffer
	ps := newTestSieve(t,
		WithStart(0),
		WithStop(1000000),
		WithOutput(&buf),
		WithFlags(FlagCountPrimes|FlagPrintStatus),
	)
	require.NoError(t, ps.Sieve())
	require.Contains(t, buf.String(), "100%")
	require.Equal(t, 100.0, ps.Status())
}

// ==============================================================================
// Configuration and errors

func TestSettersClamp(t *testing.T) {
	ps := newTestSieve(t)

	ps.SetSieveSize(0)
	require.Equal(t, 1, ps.SieveSize())
	ps.SetSieveSize(5000)
	require.Equal(t, 4096, ps.SieveSize())
	ps.SetSieveSize(100)
	require.Equal(t, 128, ps.SieveSize())

	ps.SetPreSieveLimit(2)
	require.Equal(t, 13, ps.PreSieveLimit())
	ps.SetPreSieveLimit(99)
	require.Equal(t, 23, ps.PreSieveLimit())
}

func TestInvalidArguments(t *testing.T) {
	ps := newTestSieve(t)

	require.NoError(t, ps.SetStop(MaxStop))
	err := ps.SetStop(MaxStop + 1)
	require.ErrorIs(t, err, errs.ErrInvalidBound)
	err = ps.SetStart(MaxStop + 1)
	require.ErrorIs(t, err, errs.ErrInvalidBound)

	err = ps.SetFlags(1 << 20)
	require.ErrorIs(t, err, errs.ErrInvalidFlags)
	err = ps.AddFlags(1 << 20)
	require.ErrorIs(t, err, errs.ErrInvalidFlags)

	_, err = ps.CountPrimes(100, 50)
	require.ErrorIs(t, err, errs.ErrInvalidInterval)

	err = ps.GeneratePrimes(0, 100, nil)
	require.ErrorIs(t, err, errs.ErrInvalidCallback)
	err = ps.GeneratePrimesState(0, 100, nil, &struct{}{})
	require.ErrorIs(t, err, errs.ErrInvalidCallback)
	err = ps.GeneratePrimesState(0, 100, func(uint64, any) {}, nil)
	require.ErrorIs(t, err, errs.ErrInvalidCallback)

	_, err = ps.Count(7)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
	_, err = ps.Count(-1)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
}

func TestCountIndexes(t *testing.T) {
	ps := newTestSieve(t)
	_, err := ps.CountTwins(0, 100)
	require.NoError(t, err)
	twins, err := ps.Count(1)
	require.NoError(t, err)
	require.Equal(t, uint64(8), twins)
}

func TestWithFlagsRejectsInvalid(t *testing.T) {
	_, err := New(WithFlags(1 << 20))
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrInvalidFlags))
}

// ==============================================================================
// NthPrime

func TestNthPrime(t *testing.T) {
	ps := newTestSieve(t)

	p, err := ps.NthPrime(1)
	require.NoError(t, err)
	require.Equal(t, uint64(2), p)

	p, err = ps.NthPrime(25)
	require.NoError(t, err)
	require.Equal(t, uint64(97), p)

	p, err = ps.NthPrime(10000)
	require.NoError(t, err)
	require.Equal(t, uint64(104729), p)

	_, err = ps.NthPrime(0)
	require.ErrorIs(t, err, errs.ErrInvalidNth)
}

func TestNthPrimeFrom(t *testing.T) {
	ps := newTestSieve(t)
	// first prime above 100 is 101
	p, err := ps.NthPrimeFrom(1, 100)
	require.NoError(t, err)
	require.Equal(t, uint64(101), p)

	p, err = ps.NthPrimeFrom(2, 7)
	require.NoError(t, err)
	require.Equal(t, uint64(13), p)
}
