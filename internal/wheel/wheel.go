// Package wheel implements the modulo-30 wheel used by the segmented sieve.
//
// One sieve byte encodes 30 consecutive integers by storing only the eight
// residues coprime to 30. Byte i of a sieve array starting at the 30-aligned
// base L holds the candidates L + i*30 + k with k = {7, 11, 13, 17, 19, 23,
// 29, 31}, one per bit. Note that 31 belongs to the next 30-block; keeping it
// in the same byte makes every counted prime constellation byte-aligned.
//
// The package also provides the cross-off tables that drive multiple
// enumeration for a sieving prime p: walking the cofactor q of the multiple
// m = p*q through the eight residue classes skips every multiple of 2, 3 and
// 5. The tables are generated at init time from the residue set rather than
// transcribed by hand.
package wheel

// NumbersPerByte is the number of integers covered by one sieve byte.
const NumbersPerByte = 30

// Residues are the eight residues coprime to 30 stored in one sieve byte,
// in bit order.
var Residues = [8]uint32{7, 11, 13, 17, 19, 23, 29, 31}

// BitValues maps a bit index within a little-endian 64-bit sieve word to the
// value offset of the encoded candidate: bit k corresponds to the integer
// base + (k/8)*30 + Residues[k%8].
var BitValues [64]uint32

// BitMask maps n % 30 to the bit mask of the candidate n within its sieve
// byte, or 0 if n is not coprime to 30. Residue 1 maps to bit 7: the value
// 30*i + 31 is stored in byte i, so a number with remainder 1 occupies the
// top bit of the preceding byte.
var BitMask [30]uint8

// Init describes how to reach the first wheel multiple of a sieving prime:
// for a cofactor with remainder r = q % 30, NextMultipleFactor is the
// distance to the next cofactor coprime to 30 and WheelIndex is the residue
// class of that cofactor.
type Init struct {
	NextMultipleFactor uint32
	WheelIndex         int
}

// Init30 is indexed by q % 30.
var Init30 [30]Init

// Element drives one cross-off step. For a sieving prime p = 30*P + s in
// residue class i whose current multiple has cofactor class j, the entry at
// index i*8+j gives:
//
//   - UnsetBit: the mask that clears the multiple's bit (applied with &)
//   - NextMultipleFactor: the cofactor gap g to the next wheel position
//   - Correct: the byte-index correction, so that the sieve index advances
//     by P*g + Correct
//   - Next: the wheel index delta (+1, or -7 wrapping back to class 0)
type Element struct {
	UnsetBit           uint8
	NextMultipleFactor uint32
	Correct            uint32
	Next               int
}

// Wheel30 holds the 8x8 cross-off elements, indexed by
// primeClass*8 + cofactorClass.
var Wheel30 [64]Element

// classOf maps p % 30 of a number coprime to 30 to its residue class index.
// Remainder 1 is the class of 31.
var classOf [30]int

func init() {
	for k := range BitValues {
		BitValues[k] = uint32(k>>3)*NumbersPerByte + Residues[k&7]
	}

	for i, r := range Residues {
		classOf[r%NumbersPerByte] = i
		BitMask[r%NumbersPerByte] = 1 << i
	}

	for r := 0; r < NumbersPerByte; r++ {
		d := 0
		for BitMask[(r+d)%NumbersPerByte] == 0 {
			d++
		}
		Init30[r] = Init{
			NextMultipleFactor: uint32(d),
			WheelIndex:         classOf[(r+d)%NumbersPerByte],
		}
	}

	for i, cp := range Residues {
		s := cp % NumbersPerByte
		for j, cq := range Residues {
			gap := Residues[(j+1)&7] - Residues[j]
			if j == 7 {
				gap = 37 - 31 // wrap: after 31 the next cofactor residue is 7 of the next block
			}
			u := (cp * cq) % NumbersPerByte
			// (m-7) mod 30 of the current multiple; +23 avoids underflow for u = 1.
			rem := (u + 23) % NumbersPerByte
			next := 1
			if j == 7 {
				next = -7
			}
			Wheel30[i*8+j] = Element{
				UnsetBit:           ^BitMask[u],
				NextMultipleFactor: gap,
				Correct:            (rem + s*gap) / NumbersPerByte,
				Next:               next,
			}
		}
	}
}

// ByteIndex returns the index of the sieve byte holding the candidate n
// relative to the 30-aligned base low. n must be coprime to 30 and
// >= low + 7.
func ByteIndex(n, low uint64) uint64 {
	return (n - low - 7) / NumbersPerByte
}

// FirstMultiple computes the first multiple of the sieving prime p that must
// be crossed off at or above the segment base low, as a byte index relative
// to low plus the combined wheel index. It reports false when that multiple
// exceeds stop, in which case p never strikes the sieved interval.
//
// low must be a multiple of 30 with low + 7 <= stop, and p <= sqrt(stop).
func FirstMultiple(p, low, stop uint64) (multipleIndex uint64, wheelIndex int, ok bool) {
	q := p
	m := p * p
	if m < low+7 {
		q = (low + 7 + p - 1) / p
		m = p * q
	}
	ini := Init30[q%NumbersPerByte]
	m += p * uint64(ini.NextMultipleFactor)
	if m > stop {
		return 0, 0, false
	}

	return ByteIndex(m, low), classOf[p%NumbersPerByte]*8 + ini.WheelIndex, true
}
