package matrix

import (
	"fmt"

	"github.com/sseq/fp/prime"
	"github.com/sseq/fp/vector"
)

// AugmentedMatrix is a matrix whose columns are split into consecutive
// segments, such as [A | I], so that a single row reduction answers several
// questions about A.
//
// The Compute methods read a reduced matrix whose first segment holds a map
// A, one row per source basis vector, and whose last segment holds the
// identity of the source.
type AugmentedMatrix struct {
	*Matrix
	// starts[i] is the first column of segment i; starts[len(starts)-1] is
	// the number of columns.
	starts []int
}

// NewAugmentedMatrix returns the zero matrix with the given number of rows
// and one segment per width.
func NewAugmentedMatrix(p prime.ValidPrime, rows int, widths ...int) *AugmentedMatrix {
	starts := make([]int, len(widths)+1)
	for i, w := range widths {
		if w < 0 {
			panic(fmt.Errorf("cannot NewAugmentedMatrix: %w: negative width %d", ErrDimensionMismatch, w))
		}
		starts[i+1] = starts[i] + w
	}
	return &AugmentedMatrix{
		Matrix: New(p, rows, starts[len(widths)]),
		starts: starts,
	}
}

// Segments returns the number of segments.
func (a *AugmentedMatrix) Segments() int {
	return len(a.starts) - 1
}

// SegmentBounds returns the columns [start, end) spanned by the segments
// first to last, inclusive.
func (a *AugmentedMatrix) SegmentBounds(first, last int) (start, end int) {
	if first < 0 || first > last || last >= a.Segments() {
		panic(fmt.Errorf("cannot SegmentBounds: %w: segments [%d, %d] of %d", ErrDimensionMismatch, first, last, a.Segments()))
	}
	return a.starts[first], a.starts[last+1]
}

// SegmentRow returns a mutable view of the i-th row restricted to the
// segments first to last, and invalidates the pivot table.
func (a *AugmentedMatrix) SegmentRow(i, first, last int) vector.SliceMut {
	start, end := a.SegmentBounds(first, last)
	return a.RowMut(i).SliceMut(start, end)
}

// Segment returns a copy of the segments first to last.
func (a *AugmentedMatrix) Segment(first, last int) *Matrix {
	start, end := a.SegmentBounds(first, last)
	return a.rowRange(0, len(a.rows), start, end)
}

// rowRange returns a copy of the rows [rowStart, rowEnd) restricted to the
// columns [start, end).
func (a *AugmentedMatrix) rowRange(rowStart, rowEnd, start, end int) *Matrix {
	rows := make([]*vector.Vector, 0, rowEnd-rowStart)
	for _, row := range a.rows[rowStart:rowEnd] {
		rows = append(rows, row.Slice(start, end).ToOwned())
	}
	return FromVectors(a.p, end-start, rows)
}

// AddIdentity adds the identity to the given segment, which must be square
// and have no more columns than the matrix has rows.
func (a *AugmentedMatrix) AddIdentity(segment int) {
	start, end := a.SegmentBounds(segment, segment)
	if end-start > len(a.rows) {
		panic(fmt.Errorf("cannot AddIdentity: %w: segment of width %d, %d rows", ErrDimensionMismatch, end-start, len(a.rows)))
	}
	for i := 0; i < end-start; i++ {
		a.RowMut(i).AddBasisElement(start+i, 1)
	}
}

// ComputeImage returns the image of the map held by the first segment.
func (a *AugmentedMatrix) ComputeImage() *Subspace {
	a.mustBeReduced("ComputeImage")
	_, end := a.SegmentBounds(0, 0)
	rank := a.FindFirstRowInBlock(end)

	m := a.rowRange(0, rank, 0, end)
	m.pivots = append([]int{}, a.pivots[:end]...)
	return &Subspace{m: m}
}

// ComputeKernel returns the kernel of the map held by the first segment, as
// a subspace of its source, the last segment.
func (a *AugmentedMatrix) ComputeKernel() *Subspace {
	a.mustBeReduced("ComputeKernel")
	start, end := a.SegmentBounds(a.Segments()-1, a.Segments()-1)
	first := a.FindFirstRowInBlock(start)
	rank := a.FindFirstRowInBlock(end)

	m := a.rowRange(first, rank, start, end)
	m.pivots = make([]int, end-start)
	for i, r := range a.pivots[start:end] {
		if r == NoPivot {
			m.pivots[i] = NoPivot
		} else {
			m.pivots[i] = r - first
		}
	}
	return &Subspace{m: m}
}

// ComputeQuasiInverse returns a quasi-inverse of the map held by the first
// segment: the preimages, read in the last segment, of the basis of the
// image.
func (a *AugmentedMatrix) ComputeQuasiInverse() *QuasiInverse {
	a.mustBeReduced("ComputeQuasiInverse")
	_, end := a.SegmentBounds(0, 0)
	start, last := a.SegmentBounds(a.Segments()-1, a.Segments()-1)
	rank := a.FindFirstRowInBlock(end)

	return &QuasiInverse{
		pivots:   append([]int{}, a.pivots[:end]...),
		preimage: a.rowRange(0, rank, start, last),
	}
}
