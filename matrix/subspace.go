package matrix

import (
	"fmt"
	"iter"

	"github.com/sseq/fp/prime"
	"github.com/sseq/fp/vector"
)

// Subspace is a linear subspace of F_p^n, stored as the reduced row echelon
// basis of the subspace and its pivot table.
type Subspace struct {
	m *Matrix
}

// NewSubspace returns the zero subspace of F_p^dim.
func NewSubspace(p prime.ValidPrime, dim int) *Subspace {
	m := New(p, 0, dim)
	m.resetPivots()
	return &Subspace{m: m}
}

// EntireSpace returns F_p^dim as a subspace of itself.
func EntireSpace(p prime.ValidPrime, dim int) *Subspace {
	m := Identity(p, dim)
	m.resetPivots()
	for i := range m.pivots {
		m.pivots[i] = i
	}
	return &Subspace{m: m}
}

// SubspaceFromMatrix returns the subspace spanned by the rows of m. The rows
// of m are copied.
func SubspaceFromMatrix(m *Matrix) *Subspace {
	s := &Subspace{m: m.CopyNew()}
	s.reduce()
	return s
}

// reduce row reduces the basis and drops its zero rows.
func (s *Subspace) reduce() {
	rank := s.m.RowReduce()
	pivots := s.m.pivots
	s.m.Truncate(rank)
	s.m.pivots = pivots
}

// Prime returns the prime of the subspace.
func (s *Subspace) Prime() prime.ValidPrime {
	return s.m.p
}

// Ambient returns the dimension of the ambient space.
func (s *Subspace) Ambient() int {
	return s.m.columns
}

// Dimension returns the dimension of the subspace.
func (s *Subspace) Dimension() int {
	return len(s.m.rows)
}

// Pivots returns the pivot table of the basis. It must not be modified.
func (s *Subspace) Pivots() []int {
	return s.m.pivots
}

// Matrix returns a copy of the basis, one vector per row.
func (s *Subspace) Matrix() *Matrix {
	return s.m.CopyNew()
}

// Basis returns the sequence of the basis vectors, in increasing order of
// their pivot.
func (s *Subspace) Basis() iter.Seq[vector.Slice] {
	return func(yield func(vector.Slice) bool) {
		for _, row := range s.m.rows {
			if !yield(row.AsSlice()) {
				return
			}
		}
	}
}

func (s *Subspace) checkAmbient(op string, n int) {
	if n != s.m.columns {
		panic(fmt.Errorf("cannot %s: %w: vector of length %d in a space of dimension %d", op, ErrDimensionMismatch, n, s.m.columns))
	}
}

// AddVector adds v to the subspace and returns true if the dimension grew.
func (s *Subspace) AddVector(v vector.Slice) bool {
	s.checkAmbient("AddVector", v.Len())
	w := v.ToOwned()
	s.Reduce(w.AsSliceMut())
	if w.IsZero() {
		return false
	}
	s.m.rows = append(s.m.rows, w)
	s.reduce()
	return true
}

// AddVectors adds every vector of vs to the subspace and returns the
// increase in dimension.
func (s *Subspace) AddVectors(vs iter.Seq[vector.Slice]) int {
	dim := s.Dimension()
	for v := range vs {
		s.checkAmbient("AddVectors", v.Len())
		s.m.rows = append(s.m.rows, v.ToOwned())
	}
	s.reduce()
	return s.Dimension() - dim
}

// Reduce replaces v with the representative of its coset modulo the
// subspace whose entries at the pivot columns are zero.
func (s *Subspace) Reduce(v vector.SliceMut) {
	s.checkAmbient("Reduce", v.Len())
	p := s.m.p
	for col, r := range s.m.pivots {
		if r == NoPivot {
			continue
		}
		if e := v.Entry(col); e != 0 {
			v.Add(s.m.rows[r].AsSlice(), p.Negate(e))
		}
	}
}

// Contains returns true if v belongs to the subspace.
func (s *Subspace) Contains(v vector.Slice) bool {
	w := v.ToOwned()
	s.Reduce(w.AsSliceMut())
	return w.IsZero()
}

// ContainsSpace returns true if other is contained in the subspace.
func (s *Subspace) ContainsSpace(other *Subspace) bool {
	if other.Dimension() > s.Dimension() {
		return false
	}
	for v := range other.Basis() {
		if !s.Contains(v) {
			return false
		}
	}
	return true
}

// Sum returns the sum of both subspaces.
func (s *Subspace) Sum(other *Subspace) *Subspace {
	s.checkAmbient("Sum", other.Ambient())
	sum := &Subspace{m: s.m.CopyNew()}
	sum.AddVectors(other.Basis())
	return sum
}

// Equal returns true if both subspaces are equal. Reduced bases are unique,
// so the bases are compared.
func (s *Subspace) Equal(other *Subspace) bool {
	return s.m.Equal(other.m)
}

// SetToZero makes the subspace the zero subspace.
func (s *Subspace) SetToZero() {
	s.m.Truncate(0)
	s.m.resetPivots()
}

// SetToEntire makes the subspace the whole ambient space.
func (s *Subspace) SetToEntire() {
	*s = *EntireSpace(s.m.p, s.m.columns)
}

// AllVectors returns the sequence of the p^d vectors of the subspace, where
// d is its dimension. Every vector is newly allocated.
func (s *Subspace) AllVectors() iter.Seq[*vector.Vector] {
	return func(yield func(*vector.Vector) bool) {
		p := s.m.p
		coeffs := make([]uint32, s.Dimension())
		for {
			v := vector.New(p, s.m.columns)
			for i, c := range coeffs {
				v.Add(s.m.rows[i].AsSlice(), c)
			}
			if !yield(v) {
				return
			}

			// next coefficients, in lexicographic order
			i := len(coeffs) - 1
			for ; i >= 0; i-- {
				if coeffs[i]++; coeffs[i] < p.Value() {
					break
				}
				coeffs[i] = 0
			}
			if i < 0 {
				return
			}
		}
	}
}

// String returns the basis of the subspace, one vector per line.
func (s *Subspace) String() string {
	return s.m.String()
}
