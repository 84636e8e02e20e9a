package erat

import (
	"math/bits"

	"github.com/arloliu/primeseg/internal/wheel"
)

const (
	// bucketSize entries per page: 8 bytes each, one page spans 2 KB.
	bucketSize = 256

	posBits = 26
	posMask = 1<<posBits - 1
)

// bigEntry is one pending cross-off: the wheel-reduced prime (p/30) and the
// packed pair of sieve index within the target segment and wheel index.
type bigEntry struct {
	prime uint32
	pos   uint32 // multipleIndex | wheelIndex<<posBits
}

// bucket is a fixed-size page of pending entries. Pages destined for the
// same segment are stacked into a singly linked list; emptied pages are
// recycled through a free list.
type bucket struct {
	next    *bucket
	count   int
	entries [bucketSize]bigEntry
}

// pendingEntry parks a cross-off whose target segment lies beyond the
// cyclic list window (a freshly added prime whose square is far ahead).
type pendingEntry struct {
	segment uint64
	entry   bigEntry
}

// EratBig crosses off multiples of sieving primes that strike at most once
// per segment and usually skip many segments entirely. lists[i] holds the
// bucket pages whose entries must be processed when the engine reaches the
// i-th segment after the current one; the array is used cyclically.
type EratBig struct {
	stop        uint64
	log2Bytes   uint
	moduloBytes uint64
	maxSegment  uint64
	lists       []*bucket
	listMask    uint64
	cur         int
	segment     uint64
	free        *bucket
	pending     []pendingEntry
	pendingHead int
}

// newEratBig sizes the cyclic list array so that the largest possible wheel
// step of any prime up to maxPrime stays inside the window. firstLow is the
// base of the engine's first segment; entries targeting a segment past the
// one containing stop are dropped instead of filed.
func newEratBig(stop uint64, sieveBytes int, maxPrime, firstLow uint64) *EratBig {
	log2 := uint(bits.TrailingZeros64(uint64(sieveBytes)))
	maxDelta := (maxPrime/30+1)*6 + 6
	size := NextPow2(maxDelta>>log2 + 2)

	return &EratBig{
		stop:        stop,
		log2Bytes:   log2,
		moduloBytes: uint64(sieveBytes) - 1,
		maxSegment:  (stop - firstLow) / (30 * uint64(sieveBytes)),
		lists:       make([]*bucket, size),
		listMask:    size - 1,
	}
}

func (e *EratBig) add(prime, low uint64) {
	mi, wi, ok := wheel.FirstMultiple(prime, low, e.stop)
	if !ok {
		return
	}
	entry := bigEntry{
		prime: uint32(prime / 30),
		pos:   uint32(mi&e.moduloBytes) | uint32(wi)<<posBits,
	}
	seg := mi >> e.log2Bytes
	if e.segment+seg > e.maxSegment {
		return
	}
	if seg < uint64(len(e.lists)) {
		e.push(int((uint64(e.cur)+seg)&e.listMask), entry)
	} else {
		// Sieving primes arrive in ascending order, so pending targets are
		// ascending as well and drain strictly from the front.
		e.pending = append(e.pending, pendingEntry{e.segment + seg, entry})
	}
}

func (e *EratBig) push(idx int, entry bigEntry) {
	b := e.lists[idx]
	if b == nil || b.count == bucketSize {
		nb := e.free
		if nb != nil {
			e.free = nb.next
		} else {
			nb = new(bucket)
		}
		nb.next = b
		nb.count = 0
		e.lists[idx] = nb
		b = nb
	}
	b.entries[b.count] = entry
	b.count++
}

// crossOff processes every entry due in the current segment, files each
// advanced entry under the segment that receives its next hit, recycles the
// emptied pages and rotates the list window.
func (e *EratBig) crossOff(sieve []byte) {
	for e.pendingHead < len(e.pending) {
		pe := e.pending[e.pendingHead]
		delta := pe.segment - e.segment
		if delta >= uint64(len(e.lists)) {
			break
		}
		e.push(int((uint64(e.cur)+delta)&e.listMask), pe.entry)
		e.pendingHead++
	}
	if e.pendingHead == len(e.pending) {
		e.pending = e.pending[:0]
		e.pendingHead = 0
	}

	size := uint64(len(sieve))
	list := e.lists[e.cur]
	e.lists[e.cur] = nil
	for list != nil {
		for i := 0; i < list.count; i++ {
			entry := list.entries[i]
			div := uint64(entry.prime)
			mi := uint64(entry.pos & posMask)
			wi := int(entry.pos >> posBits)
			for mi < size {
				el := &wheel.Wheel30[wi]
				sieve[mi] &= el.UnsetBit
				mi += div*uint64(el.NextMultipleFactor) + uint64(el.Correct)
				wi += el.Next
			}
			seg := mi >> e.log2Bytes
			if e.segment+seg > e.maxSegment {
				// next multiple exceeds stop, the entry is dropped
				continue
			}
			entry.pos = uint32(mi&e.moduloBytes) | uint32(wi)<<posBits
			e.push(int((uint64(e.cur)+seg)&e.listMask), entry)
		}
		next := list.next
		list.next = e.free
		list.count = 0
		e.free = list
		list = next
	}

	e.cur = int((uint64(e.cur) + 1) & e.listMask)
	e.segment++
}
