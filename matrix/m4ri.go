package matrix

import (
	"math/bits"

	"github.com/sseq/fp/limb"
	"github.com/sseq/fp/simd"
	"github.com/sseq/fp/utils/structs"
)

// m4riTable is a batch of pivot rows of a matrix over F_2 and, once built,
// the table of their 2^k linear combinations.
type m4riTable struct {
	// rows are the indices of the pivot rows, which are consecutive.
	rows []int
	// columns are the pivot columns of rows, increasing.
	columns []int
	// firstLimb is the first limb in which a row of the batch can be nonzero.
	firstLimb int
	// width is the number of limbs of a combination.
	width int
	// data holds the combinations, the i-th one at data[i*width:(i+1)*width].
	data []uint64
}

// m4riPool recycles the combination buffers between reductions.
var m4riPool = structs.NewSyncPool(func() *[]uint64 {
	return new([]uint64)
})

func bit(limbs []limb.Limb, col int) uint64 {
	return (limbs[col/limb.Bits] >> (col % limb.Bits)) & 1
}

// index returns the combination of the batch rows that clears the batch
// columns from a row.
func (t *m4riTable) index(limbs []limb.Limb) (idx int) {
	for j, col := range t.columns {
		idx |= int(bit(limbs, col)) << j
	}
	return
}

// build fills the table with the combinations of the batch rows of m.
func (t *m4riTable) build(m *Matrix, buf *[]uint64) {
	t.firstLimb = t.columns[0] / limb.Bits
	t.width = len(m.limbs(t.rows[0])) - t.firstLimb

	size := (1 << len(t.rows)) * t.width
	if cap(*buf) < size {
		*buf = make([]uint64, size)
	}
	t.data = (*buf)[:size]
	clear(t.data[:t.width])

	for i := 1; i < 1<<len(t.rows); i++ {
		dst := t.data[i*t.width : (i+1)*t.width]
		copy(dst, t.data[(i&(i-1))*t.width:])
		simd.AddXor(dst, m.limbs(t.rows[bits.TrailingZeros(uint(i))])[t.firstLimb:])
	}
}

// reduce clears the batch columns from the row with the given limbs.
func (t *m4riTable) reduce(limbs []limb.Limb) {
	if idx := t.index(limbs); idx != 0 {
		simd.AddXor(limbs[t.firstLimb:], t.data[idx*t.width:(idx+1)*t.width])
	}
}

// rowReduceM4RI is the Gauss-Jordan elimination over F_2 where the pivot
// rows are gathered in batches of k and cleared from the rest of the matrix
// once per batch, through the table of their combinations.
//
// Rows outside of the batch are not updated while the batch is gathered, so
// the search for the next pivot looks at their entries as they would be
// after reduction by the current batch.
func (m *Matrix) rowReduceM4RI(k int) int {
	m.resetPivots()

	buf := m4riPool.Get()
	defer m4riPool.Put(buf)

	t := &m4riTable{
		rows:    make([]int, 0, k),
		columns: make([]int, 0, k),
	}

	pivot := 0
	col := 0
	for col < m.columns && pivot < len(m.rows) {
		t.rows, t.columns = t.rows[:0], t.columns[:0]

		for ; col < m.columns && len(t.columns) < k && pivot+len(t.rows) < len(m.rows); col++ {
			next := pivot + len(t.rows)

			found := -1
			for i := next; i < len(m.rows); i++ {
				if t.effectiveBit(m, m.limbs(i), col) == 1 {
					found = i
					break
				}
			}
			if found < 0 {
				continue
			}

			m.rows[next], m.rows[found] = m.rows[found], m.rows[next]
			limbs := m.limbs(next)

			// reduce the new pivot row by the batch
			for j, c := range t.columns {
				if bit(limbs, c) == 1 {
					simd.AddXor(limbs, m.limbs(t.rows[j]))
				}
			}

			// clear the new pivot column from the batch
			for _, r := range t.rows {
				if other := m.limbs(r); bit(other, col) == 1 {
					simd.AddXor(other, limbs)
				}
			}

			t.rows = append(t.rows, next)
			t.columns = append(t.columns, col)
		}

		if len(t.rows) == 0 {
			break
		}

		t.build(m, buf)
		for i := range m.rows {
			if i >= pivot && i < pivot+len(t.rows) {
				continue
			}
			t.reduce(m.limbs(i))
		}

		for j, c := range t.columns {
			m.pivots[c] = t.rows[j]
		}
		pivot += len(t.rows)
	}

	return pivot
}

// effectiveBit returns the entry at col of the row with the given limbs
// after reduction by the rows of the batch.
func (t *m4riTable) effectiveBit(m *Matrix, limbs []limb.Limb, col int) (b uint64) {
	b = bit(limbs, col)
	for j, c := range t.columns {
		if bit(limbs, c) == 1 {
			b ^= bit(m.limbs(t.rows[j]), col)
		}
	}
	return
}
