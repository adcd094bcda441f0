// Package vector implements bit-packed vectors over a prime field F_p and
// the borrowed views ([Slice], [SliceMut]) through which they are read and
// updated.
//
// Entries are packed by the limb package. Views address entries, not limbs:
// a view [start, end) need not be limb-aligned, and every operation between
// two views works for any pair of offsets.
package vector

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/sseq/fp/limb"
	"github.com/sseq/fp/prime"
	"github.com/sseq/fp/utils/structs"
)

var (
	// ErrLengthMismatch is the panic value of binary operations on operands
	// of different lengths.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrIndexOutOfRange is the panic value of accesses beyond the length of
	// a vector or view.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrAliasing is the panic value of a SliceMut operation whose source
	// overlaps its target.
	ErrAliasing = errors.New("source overlaps target")

	// ErrPrimeMismatch is the panic value of operations mixing primes.
	ErrPrimeMismatch = errors.New("prime mismatch")

	// ErrCorrupted is returned when decoding data that is not a valid
	// packed vector.
	ErrCorrupted = errors.New("corrupted vector data")
)

// Vector is an owned vector over F_p.
//
// A Vector is not safe for concurrent use: reads may reduce pending
// additions in place (see [Vector.AddUnreduced]).
type Vector struct {
	p       prime.ValidPrime
	len     int
	limbs   []limb.Limb
	pending int
}

// New returns the zero vector of F_p^dim.
func New(p prime.ValidPrime, dim int) *Vector {
	if dim < 0 {
		panic(fmt.Errorf("cannot New: %w: negative length %d", ErrIndexOutOfRange, dim))
	}
	return &Vector{
		p:     p,
		len:   dim,
		limbs: make([]limb.Limb, limb.Number(p, dim)),
	}
}

// FromResidues returns the vector with the given entries, which must be
// smaller than p.
func FromResidues(p prime.ValidPrime, residues []uint32) *Vector {
	if debugChecks {
		for i, r := range residues {
			checkResidue(p, i, r)
		}
	}
	return &Vector{
		p:     p,
		len:   len(residues),
		limbs: limb.Pack(p, residues),
	}
}

// Prime returns the prime of the vector.
func (v *Vector) Prime() prime.ValidPrime {
	return v.p
}

// Len returns the number of entries of the vector.
func (v *Vector) Len() int {
	return v.len
}

// IsEmpty returns true if the vector has no entries.
func (v *Vector) IsEmpty() bool {
	return v.len == 0
}

// Limbs returns the packed, reduced limbs backing the vector. Writes to the
// returned slice must keep every entry reduced and the unused bits zero.
func (v *Vector) Limbs() []limb.Limb {
	v.Reduce()
	return v.limbs
}

// CopyNew returns a deep copy of the vector.
func (v *Vector) CopyNew() *Vector {
	v.Reduce()
	w := New(v.p, v.len)
	copy(w.limbs, v.limbs)
	return w
}

// Slice returns a read-only view of the entries [start, end).
func (v *Vector) Slice(start, end int) Slice {
	v.Reduce()
	return v.AsSlice().Slice(start, end)
}

// SliceMut returns a mutable view of the entries [start, end).
func (v *Vector) SliceMut(start, end int) SliceMut {
	v.Reduce()
	return v.AsSliceMut().SliceMut(start, end)
}

// AsSlice returns a read-only view of the whole vector.
func (v *Vector) AsSlice() Slice {
	v.Reduce()
	return Slice{p: v.p, limbs: v.limbs, start: 0, end: v.len}
}

// AsSliceMut returns a mutable view of the whole vector.
func (v *Vector) AsSliceMut() SliceMut {
	v.Reduce()
	return SliceMut{p: v.p, limbs: v.limbs, start: 0, end: v.len}
}

// Entry returns the i-th entry.
func (v *Vector) Entry(i int) uint32 {
	return v.AsSlice().Entry(i)
}

// SetEntry sets the i-th entry to value, which must be smaller than p.
func (v *Vector) SetEntry(i int, value uint32) {
	v.AsSliceMut().SetEntry(i, value)
}

// AddBasisElement adds value to the i-th entry.
func (v *Vector) AddBasisElement(i int, value uint32) {
	v.AsSliceMut().AddBasisElement(i, value)
}

// SetToZero sets every entry to zero.
func (v *Vector) SetToZero() {
	clear(v.limbs)
	v.pending = 0
}

// Scale multiplies every entry by c.
func (v *Vector) Scale(c uint32) {
	v.AsSliceMut().Scale(c)
}

// Assign sets v to other, which must have the same length.
func (v *Vector) Assign(other Slice) {
	v.AsSliceMut().Assign(other)
}

// Add sets v = v + c*other.
func (v *Vector) Add(other Slice, c uint32) {
	v.AsSliceMut().Add(other, c)
}

// AddUnreduced sets v = v + c*other but leaves the entries of v unreduced,
// so that consecutive additions do not pay for a reduction each. At most
// limb.Headroom(p) additions are accumulated: the next call reduces v first.
// Every read of v, and [Vector.Reduce], reduces the pending additions.
func (v *Vector) AddUnreduced(other Slice, c uint32) {
	if v.pending >= limb.Headroom(v.p) {
		v.Reduce()
	}
	s := SliceMut{p: v.p, limbs: v.limbs, start: 0, end: v.len}
	if s.add(other, c, false) && v.p.Value() != 2 {
		v.pending++
	}
}

// Pending returns the number of additions accumulated since the last
// reduction.
func (v *Vector) Pending() int {
	return v.pending
}

// Reduce reduces every entry mod p. It is a no-op when no addition is
// pending.
func (v *Vector) Reduce() {
	if v.pending == 0 {
		return
	}
	for i, l := range v.limbs {
		v.limbs[i] = limb.Reduce(v.p, l)
	}
	v.pending = 0
}

// AddOffset sets v[i] += c*other[i] for every i >= offset.
func (v *Vector) AddOffset(other Slice, c uint32, offset int) {
	v.SliceMut(offset, v.len).Add(other.Slice(offset, other.Len()), c)
}

// AddTensor adds c times the tensor product of left and right to the
// entries of v starting at offset: entry offset + i*right.Len() + j
// receives c*left[i]*right[j].
func (v *Vector) AddTensor(offset int, c uint32, left, right Slice) {
	n := right.Len()
	c %= v.p.Value()
	for i, x := range left.IterNonzero() {
		v.SliceMut(offset+i*n, offset+(i+1)*n).Add(right, v.p.Product(c, x))
	}
}

// Extend grows v to dim entries, the new entries being zero.
func (v *Vector) Extend(dim int) {
	if dim < v.len {
		panic(fmt.Errorf("cannot Extend: %w: %d is smaller than the current length %d", ErrIndexOutOfRange, dim, v.len))
	}
	if n := limb.Number(v.p, dim); n > cap(v.limbs) {
		limbs := make([]limb.Limb, n)
		copy(limbs, v.limbs)
		v.limbs = limbs
	} else {
		old := len(v.limbs)
		v.limbs = v.limbs[:n]
		clear(v.limbs[old:])
	}
	v.len = dim
}

// IsZero returns true if every entry is zero.
func (v *Vector) IsZero() bool {
	return v.AsSlice().IsZero()
}

// FirstNonzero returns the index and value of the first nonzero entry.
func (v *Vector) FirstNonzero() (idx int, value uint32, ok bool) {
	return v.AsSlice().FirstNonzero()
}

// Iter returns the sequence of (index, entry) pairs.
func (v *Vector) Iter() iter.Seq2[int, uint32] {
	return v.AsSlice().Iter()
}

// IterNonzero returns the sequence of (index, entry) pairs of the nonzero
// entries.
func (v *Vector) IterNonzero() iter.Seq2[int, uint32] {
	return v.AsSlice().IterNonzero()
}

// Density returns the fraction of nonzero entries.
func (v *Vector) Density() float64 {
	return v.AsSlice().Density()
}

// Residues returns the entries of v.
func (v *Vector) Residues() structs.Vector[uint32] {
	return v.AsSlice().Residues()
}

// Equal returns true if both vectors have the same prime and entries.
func (v *Vector) Equal(other *Vector) bool {
	return v.AsSlice().Equal(other.AsSlice())
}

// String returns the entries of v formatted as [a, b, c].
func (v *Vector) String() string {
	return v.AsSlice().String()
}

func formatEntries(n int, entries iter.Seq2[int, uint32]) string {
	var sb strings.Builder
	sb.Grow(2 + 3*n)
	sb.WriteByte('[')
	for i, x := range entries {
		if i != 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%d", x)
	}
	sb.WriteByte(']')
	return sb.String()
}
