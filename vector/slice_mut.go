package vector

import (
	"fmt"

	"github.com/sseq/fp/limb"
	"github.com/sseq/fp/prime"
	"github.com/sseq/fp/simd"
)

// SliceMut is a mutable view of the entries [start, end) of a vector. No
// other view of the same entries may be used while a SliceMut is live.
type SliceMut struct {
	p     prime.ValidPrime
	limbs []limb.Limb
	start int
	end   int
}

// Prime returns the prime of the view.
func (s SliceMut) Prime() prime.ValidPrime {
	return s.p
}

// Len returns the number of entries of the view.
func (s SliceMut) Len() int {
	return s.end - s.start
}

// IsEmpty returns true if the view has no entries.
func (s SliceMut) IsEmpty() bool {
	return s.start == s.end
}

// AsSlice returns a read-only view of the same entries.
func (s SliceMut) AsSlice() Slice {
	return Slice(s)
}

// SliceMut returns the sub-view [start, end) of s, in offsets relative to s.
func (s SliceMut) SliceMut(start, end int) SliceMut {
	checkRange("SliceMut", start, end, s.Len())
	return SliceMut{p: s.p, limbs: s.limbs, start: s.start + start, end: s.start + end}
}

// Entry returns the i-th entry of the view.
func (s SliceMut) Entry(i int) uint32 {
	return s.AsSlice().Entry(i)
}

// SetEntry sets the i-th entry to value. value must be smaller than p,
// which is only checked in builds with the fpdebug tag.
func (s SliceMut) SetEntry(i int, value uint32) {
	checkIndex("SetEntry", i, s.Len())
	if debugChecks {
		checkResidue(s.p, i, value)
	}
	q, shift := limb.BitIndexPair(s.p, s.start+i)
	s.limbs[q] = (s.limbs[q] &^ (limb.BitMask(s.p) << shift)) | (limb.Limb(value) << shift)
}

// AddBasisElement adds value to the i-th entry.
func (s SliceMut) AddBasisElement(i int, value uint32) {
	checkIndex("AddBasisElement", i, s.Len())
	if s.p.Value() == 2 {
		q, shift := limb.BitIndexPair(s.p, s.start+i)
		s.limbs[q] ^= limb.Limb(value&1) << shift
		return
	}
	s.SetEntry(i, s.p.Sum(s.Entry(i), value%s.p.Value()))
}

// SetToZero sets every entry of the view to zero.
func (s SliceMut) SetToZero() {
	for i, mask := range limbMasks(s.p, s.start, s.end) {
		s.limbs[i] &^= mask
	}
}

// Scale multiplies every entry of the view by c.
func (s SliceMut) Scale(c uint32) {
	c %= s.p.Value()
	if c == 1 {
		return
	}
	for i, mask := range limbMasks(s.p, s.start, s.end) {
		l := s.limbs[i]
		s.limbs[i] = (l &^ mask) | (limb.Scale(s.p, l, c) & mask)
	}
}

// Assign copies the entries of other into the view.
func (s SliceMut) Assign(other Slice) {
	checkPrime("Assign", s.p, other.p)
	checkLen("Assign", s.Len(), other.Len())
	epl := limb.EntriesPerLimb(s.p)
	d := other.start - s.start
	if s.overlaps(other) && d != 0 {
		panic(fmt.Errorf("cannot Assign: %w", ErrAliasing))
	}
	for i, mask := range limbMasks(s.p, s.start, s.end) {
		s.limbs[i] = (s.limbs[i] &^ mask) | (shifted(s.p, other.limbs, i*epl+d) & mask)
	}
}

// Add sets the view to s + c*other. It panics if other does not have the
// same length, or if other overlaps the view.
func (s SliceMut) Add(other Slice, c uint32) {
	s.add(other, c, true)
}

func (s SliceMut) overlaps(other Slice) bool {
	return s.AsSlice().overlaps(other)
}

// add sets the view to s + c*other, reducing the result if reduce is true.
// It returns false if the call did not modify the view.
func (s SliceMut) add(other Slice, c uint32, reduce bool) bool {
	checkPrime("Add", s.p, other.p)
	checkLen("Add", s.Len(), other.Len())
	if s.overlaps(other) {
		panic(fmt.Errorf("cannot Add: %w: [%d, %d) and [%d, %d)", ErrAliasing, s.start, s.end, other.start, other.end))
	}

	p := s.p
	if c %= p.Value(); c == 0 || s.IsEmpty() {
		return false
	}

	d := other.start - s.start
	if p.Value() == 2 && d%limb.Bits == 0 {
		s.addXor(other, d/limb.Bits)
		return true
	}

	epl := limb.EntriesPerLimb(p)
	for i, mask := range limbMasks(p, s.start, s.end) {
		t := s.limbs[i]
		r := limb.Add(p, t, shifted(p, other.limbs, i*epl+d), c)
		if reduce {
			r = limb.Reduce(p, r)
		}
		s.limbs[i] = (t &^ mask) | (r & mask)
	}
	return true
}

// addXor is the p = 2 addition of a source whose entries sit at the same
// positions in their limbs as the target's, dq limbs apart. The limbs
// entirely covered by the view are handed to the dispatched XOR kernel.
func (s SliceMut) addXor(other Slice, dq int) {
	first, last := s.start/limb.Bits, (s.end-1)/limb.Bits
	if first == last {
		s.limbs[first] ^= other.limbs[first+dq] & limb.RangeMask(s.p, s.start-first*limb.Bits, s.end-first*limb.Bits)
		return
	}
	s.limbs[first] ^= other.limbs[first+dq] & limb.RangeMask(s.p, s.start-first*limb.Bits, limb.Bits)
	s.limbs[last] ^= other.limbs[last+dq] & limb.RangeMask(s.p, 0, s.end-last*limb.Bits)
	if last-first > 1 {
		simd.AddXor(s.limbs[first+1:last], other.limbs[first+1+dq:last+dq])
	}
}
