package matrix

import (
	"fmt"

	"github.com/sseq/fp/vector"
)

// Basis is an invertible square matrix together with its inverse, computed
// by row reducing [M | I].
type Basis struct {
	matrix   *Matrix
	inverse  *Matrix
	singular bool
}

// NewBasis copies m and computes its inverse. m must be square. If m is
// singular the basis is still returned, but has no inverse.
func NewBasis(m *Matrix) *Basis {
	n := m.Rows()
	if m.Columns() != n {
		panic(fmt.Errorf("cannot NewBasis: %w: %d x %d matrix is not square", ErrDimensionMismatch, n, m.Columns()))
	}

	aug := NewAugmentedMatrix(m.p, n, n, n)
	for i := range m.rows {
		aug.SegmentRow(i, 0, 0).Assign(m.Row(i))
	}
	aug.AddIdentity(1)
	aug.RowReduce()

	b := &Basis{matrix: m.CopyNew()}
	for i, r := range aug.pivots[:n] {
		if r != i {
			b.singular = true
			return b
		}
	}
	b.inverse = aug.Segment(1, 1)
	return b
}

// IsSingular returns true if the matrix is not invertible.
func (b *Basis) IsSingular() bool {
	return b.singular
}

// Matrix returns the matrix of the basis.
func (b *Basis) Matrix() *Matrix {
	return b.matrix
}

// Inverse returns the inverse matrix, or nil if the matrix is singular.
func (b *Basis) Inverse() *Matrix {
	return b.inverse
}

// Dimension returns the size of the matrix.
func (b *Basis) Dimension() int {
	return b.matrix.Rows()
}

// Apply sets result = result + c*input*M.
func (b *Basis) Apply(result vector.SliceMut, c uint32, input vector.Slice) {
	b.matrix.Apply(result, c, input)
}

// ApplyInverse sets result = result + c*input*M^-1. It panics if the matrix
// is singular.
func (b *Basis) ApplyInverse(result vector.SliceMut, c uint32, input vector.Slice) {
	if b.singular {
		panic(fmt.Errorf("cannot ApplyInverse: matrix is singular"))
	}
	b.inverse.Apply(result, c, input)
}
