package matrix

import (
	"iter"

	"github.com/sseq/fp/prime"
	"github.com/sseq/fp/vector"
)

// Subquotient is a subquotient V/W of F_p^n, with W a subspace of V. It is
// stored as the subspace W and a subspace gens, complementary to W in V,
// whose basis vectors are reduced modulo W.
type Subquotient struct {
	gens     *Subspace
	quotient *Subspace
}

// NewSubquotient returns the zero subquotient of F_p^dim.
func NewSubquotient(p prime.ValidPrime, dim int) *Subquotient {
	return &Subquotient{
		gens:     NewSubspace(p, dim),
		quotient: NewSubspace(p, dim),
	}
}

// NewFullSubquotient returns F_p^dim as a subquotient of itself.
func NewFullSubquotient(p prime.ValidPrime, dim int) *Subquotient {
	return &Subquotient{
		gens:     EntireSpace(p, dim),
		quotient: NewSubspace(p, dim),
	}
}

// Prime returns the prime of the subquotient.
func (s *Subquotient) Prime() prime.ValidPrime {
	return s.gens.Prime()
}

// Ambient returns the dimension of the ambient space.
func (s *Subquotient) Ambient() int {
	return s.gens.Ambient()
}

// Dimension returns the dimension of V/W.
func (s *Subquotient) Dimension() int {
	return s.gens.Dimension()
}

// SubspaceDimension returns the dimension of V.
func (s *Subquotient) SubspaceDimension() int {
	return s.gens.Dimension() + s.quotient.Dimension()
}

// QuotientDimension returns the dimension of F_p^n/W.
func (s *Subquotient) QuotientDimension() int {
	return s.Ambient() - s.quotient.Dimension()
}

// Gens returns the sequence of the basis vectors of the complement of W
// in V.
func (s *Subquotient) Gens() iter.Seq[vector.Slice] {
	return s.gens.Basis()
}

// QuotientSpace returns W.
func (s *Subquotient) QuotientSpace() *Subspace {
	return s.quotient
}

// AddGen adds v to V.
func (s *Subquotient) AddGen(v vector.Slice) {
	w := v.ToOwned()
	s.quotient.Reduce(w.AsSliceMut())
	s.gens.AddVector(w.AsSlice())
}

// Quotient adds v to W, and therefore to V.
func (s *Subquotient) Quotient(v vector.Slice) {
	if !s.quotient.AddVector(v) {
		return
	}

	old := s.gens
	s.gens = NewSubspace(old.Prime(), old.Ambient())
	for g := range old.Basis() {
		s.AddGen(g)
	}
}

// Reduce reduces v modulo W, then writes it in the basis of the complement
// of W in V: it returns the coordinates and leaves in v the part of v
// outside of V, which is zero if v belongs to V.
func (s *Subquotient) Reduce(v vector.SliceMut) []uint32 {
	s.quotient.Reduce(v)

	p := s.Prime()
	coords := make([]uint32, s.gens.Dimension())
	for col, r := range s.gens.Pivots() {
		if r == NoPivot {
			continue
		}
		if e := v.Entry(col); e != 0 {
			coords[r] = e
			v.Add(s.gens.m.rows[r].AsSlice(), p.Negate(e))
		}
	}
	return coords
}

// ComplementPivots returns the sequence of the columns that are pivots of
// neither W nor the complement of W in V. The corresponding standard basis
// vectors span a complement of V.
func (s *Subquotient) ComplementPivots() iter.Seq[int] {
	return func(yield func(int) bool) {
		gens, quotient := s.gens.Pivots(), s.quotient.Pivots()
		for col := range gens {
			if gens[col] == NoPivot && quotient[col] == NoPivot {
				if !yield(col) {
					return
				}
			}
		}
	}
}

// SetToZero makes V and W the zero subspace.
func (s *Subquotient) SetToZero() {
	s.gens.SetToZero()
	s.quotient.SetToZero()
}
