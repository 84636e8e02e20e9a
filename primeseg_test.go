package primeseg

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCountPrimes(t *testing.T) {
	count, err := CountPrimes(0, 100)
	require.NoError(t, err)
	require.Equal(t, uint64(25), count)

	count, err = CountPrimes(0, 1000000)
	require.NoError(t, err)
	require.Equal(t, uint64(78498), count)
}

func TestCountTuplets(t *testing.T) {
	twins, err := CountTwins(0, 100)
	require.NoError(t, err)
	require.Equal(t, uint64(8), twins)

	septuplets, err := CountSeptuplets(0, 100)
	require.NoError(t, err)
	require.Equal(t, uint64(1), septuplets)
}

func TestCountPrimesParallel(t *testing.T) {
	serial, err := CountPrimes(0, 1000000)
	require.NoError(t, err)
	parallel, err := CountPrimesParallel(0, 1000000)
	require.NoError(t, err)
	require.Equal(t, serial, parallel)
}

func TestGeneratePrimes(t *testing.T) {
	var primes []uint64
	err := GeneratePrimes(0, 30, func(p uint64) {
		primes = append(primes, p)
	})
	require.NoError(t, err)
	require.Equal(t, []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}, primes)
}

func TestPrintPrimes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintPrimes(&buf, 0, 10))
	require.Equal(t, "2\n3\n5\n7\n", buf.String())
}

func TestNthPrime(t *testing.T) {
	p, err := NthPrime(25)
	require.NoError(t, err)
	require.Equal(t, uint64(97), p)
}

func TestChecksumDeterministic(t *testing.T) {
	first, err := Checksum(0, 100000)
	require.NoError(t, err)
	second, err := Checksum(0, 100000)
	require.NoError(t, err)
	require.Equal(t, first, second)

	// 97 is prime: [0, 96] holds one prime fewer than [0, 100]
	withNinetySeven, err := Checksum(0, 100)
	require.NoError(t, err)
	without, err := Checksum(0, 96)
	require.NoError(t, err)
	require.NotEqual(t, withNinetySeven, without)
}
