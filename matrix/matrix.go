// Package matrix implements matrices over a prime field F_p, their row
// reduction, and the structures derived from a reduced matrix: subspaces,
// subquotients, quasi-inverses, affine subspaces and bases.
//
// Matrices act on the right: a vector x is mapped to x*M, the combination of
// the rows of M with coefficients x.
package matrix

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sseq/fp/limb"
	"github.com/sseq/fp/prime"
	"github.com/sseq/fp/vector"
)

var (
	// ErrDimensionMismatch is the panic value of operations on operands of
	// incompatible dimensions.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrCorrupted is returned when decoding data that is not a valid
	// serialized matrix.
	ErrCorrupted = errors.New("corrupted matrix data")
)

// NoPivot is the pivot table entry of a column without pivot.
const NoPivot = -1

// Matrix is a matrix over F_p stored as a list of packed rows.
//
// The pivot table is only valid after [Matrix.RowReduce]. Every method that
// can modify the rows invalidates it.
type Matrix struct {
	p       prime.ValidPrime
	columns int
	rows    []*vector.Vector
	pivots  []int
}

// New returns the zero matrix with the given number of rows and columns.
func New(p prime.ValidPrime, rows, columns int) *Matrix {
	m := &Matrix{p: p, columns: columns, rows: make([]*vector.Vector, rows)}
	for i := range m.rows {
		m.rows[i] = vector.New(p, columns)
	}
	return m
}

// Identity returns the identity matrix of size dim.
func Identity(p prime.ValidPrime, dim int) *Matrix {
	m := New(p, dim, dim)
	for i, row := range m.rows {
		row.SetEntry(i, 1)
	}
	return m
}

// FromRows returns the matrix with the given entries. Every row must have
// the given number of columns.
func FromRows(p prime.ValidPrime, rows [][]uint32, columns int) *Matrix {
	m := &Matrix{p: p, columns: columns, rows: make([]*vector.Vector, len(rows))}
	for i, r := range rows {
		if len(r) != columns {
			panic(fmt.Errorf("cannot FromRows: %w: row %d has %d entries, expected %d", ErrDimensionMismatch, i, len(r), columns))
		}
		m.rows[i] = vector.FromResidues(p, r)
	}
	return m
}

// FromVectors returns the matrix whose rows are the given vectors, which
// must all have the given length. The matrix takes ownership of the vectors.
func FromVectors(p prime.ValidPrime, columns int, rows []*vector.Vector) *Matrix {
	for i, r := range rows {
		if r.Len() != columns || r.Prime() != p {
			panic(fmt.Errorf("cannot FromVectors: %w: row %d is a vector of length %d mod %s, expected %d mod %s",
				ErrDimensionMismatch, i, r.Len(), r.Prime(), columns, p))
		}
	}
	return &Matrix{p: p, columns: columns, rows: rows}
}

// Prime returns the prime of the matrix.
func (m *Matrix) Prime() prime.ValidPrime {
	return m.p
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int {
	return len(m.rows)
}

// Columns returns the number of columns.
func (m *Matrix) Columns() int {
	return m.columns
}

// Row returns a read-only view of the i-th row.
func (m *Matrix) Row(i int) vector.Slice {
	return m.rows[i].AsSlice()
}

// RowMut returns a mutable view of the i-th row and invalidates the pivot
// table.
func (m *Matrix) RowMut(i int) vector.SliceMut {
	m.pivots = nil
	return m.rows[i].AsSliceMut()
}

// Entry returns the entry at row i and column j.
func (m *Matrix) Entry(i, j int) uint32 {
	return m.rows[i].Entry(j)
}

// SetEntry sets the entry at row i and column j and invalidates the pivot
// table.
func (m *Matrix) SetEntry(i, j int, value uint32) {
	m.pivots = nil
	m.rows[i].SetEntry(j, value)
}

// SwapRows exchanges the rows i and j and invalidates the pivot table.
func (m *Matrix) SwapRows(i, j int) {
	m.pivots = nil
	m.rows[i], m.rows[j] = m.rows[j], m.rows[i]
}

// AddRow appends a copy of row and invalidates the pivot table.
func (m *Matrix) AddRow(row vector.Slice) {
	m.checkRow("AddRow", row)
	m.pivots = nil
	m.rows = append(m.rows, row.ToOwned())
}

// SetRow overwrites the i-th row with row and invalidates the pivot table.
func (m *Matrix) SetRow(i int, row vector.Slice) {
	m.checkRow("SetRow", row)
	m.pivots = nil
	m.rows[i].Assign(row)
}

// Truncate drops the rows from index n onwards.
func (m *Matrix) Truncate(n int) {
	m.pivots = nil
	clear(m.rows[n:])
	m.rows = m.rows[:n]
}

func (m *Matrix) checkRow(op string, row vector.Slice) {
	if row.Len() != m.columns || row.Prime() != m.p {
		panic(fmt.Errorf("cannot %s: %w: row of length %d mod %s, expected %d mod %s",
			op, ErrDimensionMismatch, row.Len(), row.Prime(), m.columns, m.p))
	}
}

// Pivots returns the pivot table: for every column, the index of the row
// whose leading entry lies in that column, or NoPivot. It returns nil if the
// matrix has not been row reduced since its last modification.
func (m *Matrix) Pivots() []int {
	return m.pivots
}

// IsReduced returns true if the pivot table is valid.
func (m *Matrix) IsReduced() bool {
	return m.pivots != nil
}

// Rank returns the number of pivots of a reduced matrix.
func (m *Matrix) Rank() (rank int) {
	m.mustBeReduced("Rank")
	for _, r := range m.pivots {
		if r != NoPivot {
			rank++
		}
	}
	return
}

// FindFirstRowInBlock returns the index of the first row of a reduced matrix
// whose pivot lies in a column at or after col, or the rank if there is
// none. Rows with a pivot before col are exactly the rows before it.
func (m *Matrix) FindFirstRowInBlock(col int) int {
	m.mustBeReduced("FindFirstRowInBlock")
	for _, r := range m.pivots[col:] {
		if r != NoPivot {
			return r
		}
	}
	return m.Rank()
}

func (m *Matrix) mustBeReduced(op string) {
	if m.pivots == nil {
		panic(fmt.Errorf("cannot %s: matrix is not row reduced", op))
	}
}

// Density returns the fraction of nonzero entries.
func (m *Matrix) Density() float64 {
	if len(m.rows) == 0 || m.columns == 0 {
		return 0
	}
	var d float64
	for _, row := range m.rows {
		d += row.Density()
	}
	return d / float64(len(m.rows))
}

// CopyNew returns a deep copy of the matrix, pivot table included.
func (m *Matrix) CopyNew() *Matrix {
	c := &Matrix{p: m.p, columns: m.columns, rows: make([]*vector.Vector, len(m.rows))}
	for i, row := range m.rows {
		c.rows[i] = row.CopyNew()
	}
	if m.pivots != nil {
		c.pivots = append([]int{}, m.pivots...)
	}
	return c
}

// Apply sets result = result + c*input*M. input must have one entry per
// row and result one entry per column.
func (m *Matrix) Apply(result vector.SliceMut, c uint32, input vector.Slice) {
	if input.Len() != len(m.rows) || result.Len() != m.columns {
		panic(fmt.Errorf("cannot Apply: %w: %d x %d matrix, input of length %d, result of length %d",
			ErrDimensionMismatch, len(m.rows), m.columns, input.Len(), result.Len()))
	}
	c %= m.p.Value()
	for i, x := range input.IterNonzero() {
		result.Add(m.rows[i].AsSlice(), m.p.Product(c, x))
	}
}

// Mul returns the product M*other.
func (m *Matrix) Mul(other *Matrix) *Matrix {
	if m.columns != len(other.rows) || m.p != other.p {
		panic(fmt.Errorf("cannot Mul: %w: %d x %d times %d x %d",
			ErrDimensionMismatch, len(m.rows), m.columns, len(other.rows), other.columns))
	}

	if m.p.Value() == 2 {
		return m.mulBlocks(other)
	}

	r := New(m.p, len(m.rows), other.columns)
	for i, row := range m.rows {
		other.Apply(r.rows[i].AsSliceMut(), 1, row.AsSlice())
	}
	return r
}

// Transpose returns the transpose of the matrix.
func (m *Matrix) Transpose() *Matrix {
	if m.p.Value() == 2 {
		return m.transposeBlocks()
	}

	t := New(m.p, m.columns, len(m.rows))
	for i, row := range m.rows {
		for j, x := range row.IterNonzero() {
			t.rows[j].SetEntry(i, x)
		}
	}
	return t
}

// Equal returns true if both matrices have the same prime, dimensions and
// entries. Pivot tables are not compared.
func (m *Matrix) Equal(other *Matrix) bool {
	if m.p != other.p || m.columns != other.columns || len(m.rows) != len(other.rows) {
		return false
	}
	for i, row := range m.rows {
		if !row.Equal(other.rows[i]) {
			return false
		}
	}
	return true
}

// String returns the rows of the matrix, one per line.
func (m *Matrix) String() string {
	var sb strings.Builder
	for i, row := range m.rows {
		if i != 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(row.String())
	}
	return sb.String()
}

// limbs returns the packed limbs of the i-th row.
func (m *Matrix) limbs(i int) []limb.Limb {
	return m.rows[i].Limbs()
}
