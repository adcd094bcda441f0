package vector

import (
	"fmt"
	"iter"

	"github.com/sseq/fp/limb"
	"github.com/sseq/fp/prime"
	"github.com/sseq/fp/utils"
	"github.com/sseq/fp/utils/structs"
)

// Slice is a read-only view of the entries [start, end) of a vector. It is
// only valid as long as the vector it was taken from is not modified through
// another path.
type Slice struct {
	p     prime.ValidPrime
	limbs []limb.Limb
	start int
	end   int
}

// Prime returns the prime of the view.
func (s Slice) Prime() prime.ValidPrime {
	return s.p
}

// Len returns the number of entries of the view.
func (s Slice) Len() int {
	return s.end - s.start
}

// IsEmpty returns true if the view has no entries.
func (s Slice) IsEmpty() bool {
	return s.start == s.end
}

// Slice returns the sub-view [start, end) of s, in offsets relative to s.
func (s Slice) Slice(start, end int) Slice {
	checkRange("Slice", start, end, s.Len())
	return Slice{p: s.p, limbs: s.limbs, start: s.start + start, end: s.start + end}
}

// Entry returns the i-th entry of the view.
func (s Slice) Entry(i int) uint32 {
	checkIndex("Entry", i, s.Len())
	return entry(s.p, s.limbs, s.start+i)
}

// IsZero returns true if every entry of the view is zero. An empty view is
// zero.
func (s Slice) IsZero() bool {
	for i, mask := range limbMasks(s.p, s.start, s.end) {
		if s.limbs[i]&mask != 0 {
			return false
		}
	}
	return true
}

// FirstNonzero returns the index and value of the first nonzero entry of
// the view.
func (s Slice) FirstNonzero() (idx int, value uint32, ok bool) {
	for i, x := range s.IterNonzero() {
		return i, x, true
	}
	return -1, 0, false
}

// Iter returns the sequence of (index, entry) pairs of the view.
func (s Slice) Iter() iter.Seq2[int, uint32] {
	return func(yield func(int, uint32) bool) {
		for i := 0; i < s.Len(); i++ {
			if !yield(i, entry(s.p, s.limbs, s.start+i)) {
				return
			}
		}
	}
}

// IterNonzero returns the sequence of (index, entry) pairs of the nonzero
// entries of the view, in increasing order. Zero limbs are skipped without
// unpacking them. The sequence can be iterated any number of times.
func (s Slice) IterNonzero() iter.Seq2[int, uint32] {
	return func(yield func(int, uint32) bool) {
		epl := limb.EntriesPerLimb(s.p)
		bl := s.p.BitLength()
		bitMask := limb.BitMask(s.p)
		for i, mask := range limbMasks(s.p, s.start, s.end) {
			for l := s.limbs[i] & mask; l != 0; {
				j := limb.FirstNonzero(s.p, l)
				if !yield(i*epl+j-s.start, limb.Entry(s.p, l, j)) {
					return
				}
				l &^= bitMask << (j * bl)
			}
		}
	}
}

// Density returns the fraction of nonzero entries of the view, or 0 for an
// empty view.
func (s Slice) Density() float64 {
	if s.IsEmpty() {
		return 0
	}
	var n int
	for i, mask := range limbMasks(s.p, s.start, s.end) {
		n += limb.CountNonzero(s.p, s.limbs[i]&mask)
	}
	return float64(n) / float64(s.Len())
}

// ToOwned returns a new vector holding the entries of the view.
func (s Slice) ToOwned() *Vector {
	v := New(s.p, s.Len())
	epl := limb.EntriesPerLimb(s.p)
	if s.start%epl == 0 {
		copy(v.limbs, s.limbs[s.start/epl:])
	} else {
		for i := range v.limbs {
			v.limbs[i] = shifted(s.p, s.limbs, s.start+i*epl)
		}
	}
	if n := len(v.limbs); n != 0 {
		v.limbs[n-1] &= limb.RangeMask(s.p, 0, v.len-(n-1)*epl)
	}
	return v
}

// Residues returns the entries of the view.
func (s Slice) Residues() structs.Vector[uint32] {
	r := make(structs.Vector[uint32], s.Len())
	for i, x := range s.Iter() {
		r[i] = x
	}
	return r
}

// Equal returns true if both views have the same prime and entries.
func (s Slice) Equal(other Slice) bool {
	if s.p != other.p || s.Len() != other.Len() {
		return false
	}
	epl := limb.EntriesPerLimb(s.p)
	d := other.start - s.start
	for i, mask := range limbMasks(s.p, s.start, s.end) {
		if (s.limbs[i]^shifted(s.p, other.limbs, i*epl+d))&mask != 0 {
			return false
		}
	}
	return true
}

// String returns the entries of the view formatted as [a, b, c].
func (s Slice) String() string {
	return formatEntries(s.Len(), s.Iter())
}

// overlaps returns true if the entries of s and other share memory.
func (s Slice) overlaps(other Slice) bool {
	if s.IsEmpty() || other.IsEmpty() || !utils.Alias1D(s.limbs, other.limbs) {
		return false
	}
	return s.start < other.end && other.start < s.end
}

func checkIndex(op string, i, n int) {
	if i < 0 || i >= n {
		panic(fmt.Errorf("cannot %s: %w: index %d, length %d", op, ErrIndexOutOfRange, i, n))
	}
}

func checkRange(op string, start, end, n int) {
	if start < 0 || start > end || end > n {
		panic(fmt.Errorf("cannot %s: %w: range [%d, %d), length %d", op, ErrIndexOutOfRange, start, end, n))
	}
}

func checkLen(op string, a, b int) {
	if a != b {
		panic(fmt.Errorf("cannot %s: %w: %d != %d", op, ErrLengthMismatch, a, b))
	}
}

func checkPrime(op string, a, b prime.ValidPrime) {
	if a != b {
		panic(fmt.Errorf("cannot %s: %w: %s != %s", op, ErrPrimeMismatch, a, b))
	}
}

func checkResidue(p prime.ValidPrime, i int, r uint32) {
	if r >= p.Value() {
		panic(fmt.Errorf("entry %d: %d is not reduced mod %s", i, r, p))
	}
}
