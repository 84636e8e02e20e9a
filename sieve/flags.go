package sieve

// Public flags for use with SetFlags and AddFlags. Counting and printing
// flags can be combined with bitwise OR; the flag for arity k is the primes
// flag shifted left by k-1.
const (
	FlagCountPrimes      uint32 = 1 << 0
	FlagCountTwins       uint32 = 1 << 1
	FlagCountTriplets    uint32 = 1 << 2
	FlagCountQuadruplets uint32 = 1 << 3
	FlagCountQuintuplets uint32 = 1 << 4
	FlagCountSextuplets  uint32 = 1 << 5
	FlagCountSeptuplets  uint32 = 1 << 6
	FlagPrintPrimes      uint32 = 1 << 7
	FlagPrintTwins       uint32 = 1 << 8
	FlagPrintTriplets    uint32 = 1 << 9
	FlagPrintQuadruplets uint32 = 1 << 10
	FlagPrintQuintuplets uint32 = 1 << 11
	FlagPrintSextuplets  uint32 = 1 << 12
	FlagPrintSeptuplets  uint32 = 1 << 13
	FlagPrintStatus      uint32 = 1 << 14
)

// Internal callback flags, set by the GeneratePrimes methods.
const (
	flagCallback32      uint32 = 1 << 16
	flagCallback32State uint32 = 1 << 17
	flagCallback64      uint32 = 1 << 18
	flagCallback64State uint32 = 1 << 19
)

const (
	countFlags    = FlagCountPrimes | FlagCountTwins | FlagCountTriplets | FlagCountQuadruplets | FlagCountQuintuplets | FlagCountSextuplets | FlagCountSeptuplets
	printFlags    = FlagPrintPrimes | FlagPrintTwins | FlagPrintTriplets | FlagPrintQuadruplets | FlagPrintQuintuplets | FlagPrintSextuplets | FlagPrintSeptuplets
	callbackFlags = flagCallback32 | flagCallback32State | flagCallback64 | flagCallback64State

	// maxFlags bounds the flags field; anything above is rejected.
	maxFlags = 1 << 20
)

func (ps *PrimeSieve) testFlags(flags uint32) bool {
	return ps.flags&flags != 0
}
