package sieve

import (
	"io"

	"github.com/arloliu/primeseg/internal/options"
)

// Option configures a PrimeSieve.
type Option = options.Option[*PrimeSieve]

// WithStart sets the inclusive lower sieving bound.
func WithStart(start uint64) Option {
	return options.New(func(ps *PrimeSieve) error {
		return ps.SetStart(start)
	})
}

// WithStop sets the inclusive upper sieving bound.
func WithStop(stop uint64) Option {
	return options.New(func(ps *PrimeSieve) error {
		return ps.SetStop(stop)
	})
}

// WithSieveSize sets the segment size in kilobytes, clamped to [1, 4096] and
// rounded up to the next power of two. The default is the size of the CPU's
// L1 data cache.
func WithSieveSize(kilobytes int) Option {
	return options.NoError(func(ps *PrimeSieve) {
		ps.SetSieveSize(kilobytes)
	})
}

// WithPreSieveLimit sets the pre-sieve prime limit, clamped to [13, 23].
// Higher limits sieve faster but spend more memory and start-up time on the
// pre-sieve pattern.
func WithPreSieveLimit(limit int) Option {
	return options.NoError(func(ps *PrimeSieve) {
		ps.SetPreSieveLimit(limit)
	})
}

// WithFlags sets the count/print flags.
func WithFlags(flags uint32) Option {
	return options.New(func(ps *PrimeSieve) error {
		return ps.SetFlags(flags)
	})
}

// WithOutput redirects printed primes, tuplets and status output. The
// default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return options.NoError(func(ps *PrimeSieve) {
		ps.out = w
	})
}
