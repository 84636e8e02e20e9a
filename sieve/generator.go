package sieve

import "github.com/arloliu/primeseg/internal/erat"

// generator sieves the interval (preSieveLimit, sqrt(stop)] and feeds every
// prime it finds into the finder's engine as a sieving prime. Its own
// sieving primes, up to stop^(1/4), come from a one-shot plain bit sieve
// small enough to stay in cache; the recursion is strictly two levels deep.
type generator struct {
	outer  *erat.Sieve
	engine *erat.Sieve
}

func newGenerator(f *finder) (*generator, error) {
	g := &generator{outer: f.engine}
	// The minimum pre-sieve limit keeps the generator's start-up cheap.
	engine, err := erat.New(
		uint64(f.engine.PreSieveLimit())+1,
		f.engine.SqrtStop(),
		f.engine.SieveBytes(),
		13,
		g,
	)
	if err != nil {
		return nil, err
	}
	g.engine = engine

	return g, nil
}

// ProcessSegment implements erat.Consumer: every decoded prime becomes a
// sieving prime of the outer engine, in ascending order.
func (g *generator) ProcessSegment(sieve []byte, byteCount int, low uint64) {
	erat.ForEachPrime(sieve, byteCount, low, g.outer.Sieve)
}

// bootstrap runs the plain odd-only bit sieve up to sqrt of the generator's
// stop and feeds the generator its own sieving primes.
func (g *generator) bootstrap() {
	n := g.engine.SqrtStop()
	isPrime := make([]uint32, n/32+1)
	for i := range isPrime {
		isPrime[i] = 0xAAAAAAAA // bits of odd numbers set
	}
	for i := uint64(3); i*i <= n; i += 2 {
		if isPrime[i>>5]&(uint32(1)<<(i&31)) != 0 {
			for j := i * i; j <= n; j += i * 2 {
				isPrime[j>>5] &^= uint32(1) << (j & 31)
			}
		}
	}
	for i := uint64(g.engine.PreSieveLimit()) + 1; i <= n; i++ {
		if isPrime[i>>5]&(uint32(1)<<(i&31)) != 0 {
			g.engine.Sieve(i)
		}
	}
}

func (g *generator) finish() {
	g.engine.Finish()
}
