package matrix

import (
	"github.com/sseq/fp/vector"
)

// AffineSubspace is the affine subspace offset + L of F_p^n. The offset is
// kept reduced modulo L, so that equal affine subspaces have equal offsets.
type AffineSubspace struct {
	offset *vector.Vector
	linear *Subspace
}

// NewAffineSubspace returns offset + linear. The offset is copied.
func NewAffineSubspace(offset vector.Slice, linear *Subspace) *AffineSubspace {
	o := offset.ToOwned()
	linear.Reduce(o.AsSliceMut())
	return &AffineSubspace{offset: o, linear: linear}
}

// Offset returns the canonical offset.
func (a *AffineSubspace) Offset() vector.Slice {
	return a.offset.AsSlice()
}

// LinearPart returns the linear subspace L.
func (a *AffineSubspace) LinearPart() *Subspace {
	return a.linear
}

// Sum returns the Minkowski sum of both affine subspaces.
func (a *AffineSubspace) Sum(other *AffineSubspace) *AffineSubspace {
	offset := a.offset.CopyNew()
	offset.Add(other.offset.AsSlice(), 1)
	return NewAffineSubspace(offset.AsSlice(), a.linear.Sum(other.linear))
}

// Contains returns true if v belongs to the affine subspace.
func (a *AffineSubspace) Contains(v vector.Slice) bool {
	w := v.ToOwned()
	w.Add(a.offset.AsSlice(), a.linear.Prime().Negate(1))
	return a.linear.Contains(w.AsSlice())
}

// ContainsSpace returns true if other is contained in the affine subspace.
func (a *AffineSubspace) ContainsSpace(other *AffineSubspace) bool {
	return a.linear.ContainsSpace(other.linear) && a.Contains(other.Offset())
}

// Equal returns true if both affine subspaces are equal.
func (a *AffineSubspace) Equal(other *AffineSubspace) bool {
	return a.linear.Equal(other.linear) && a.offset.Equal(other.offset)
}

// String returns the offset followed by the basis of the linear part.
func (a *AffineSubspace) String() string {
	return a.offset.String() + " + span\n" + a.linear.String()
}
