package matrix

import (
	"github.com/sseq/fp/limb"
	"github.com/sseq/fp/simd"
	"github.com/sseq/fp/utils"
)

// The p = 2 product and transpose work on 64x64 blocks: block (I, J) of a
// matrix holds the limb J of the rows 64I to 64I+63. Rows and columns past
// the end of the matrix read as zero.

func (m *Matrix) loadBlock(b *simd.Block, I, J int) {
	for i := range b {
		if row := I*simd.BlockSize + i; row < len(m.rows) {
			b[i] = m.limbs(row)[J]
		} else {
			b[i] = 0
		}
	}
}

func (m *Matrix) storeBlock(b *simd.Block, I, J int) {
	for i := range b {
		row := I*simd.BlockSize + i
		if row >= len(m.rows) {
			return
		}
		m.limbs(row)[J] = b[i]
	}
}

// mulBlocks is [Matrix.Mul] over F_2.
func (m *Matrix) mulBlocks(other *Matrix) *Matrix {
	r := New(m.p, len(m.rows), other.columns)

	rowBlocks := utils.CeilDiv(len(m.rows), simd.BlockSize)
	innerBlocks := limb.Number(m.p, m.columns)
	colBlocks := limb.Number(m.p, other.columns)

	var a, b, c simd.Block
	for I := range rowBlocks {
		for J := range colBlocks {
			c = simd.Block{}
			for K := range innerBlocks {
				m.loadBlock(&a, I, K)
				other.loadBlock(&b, K, J)
				simd.Gemm(&c, &a, &b)
			}
			r.storeBlock(&c, I, J)
		}
	}
	return r
}

// transposeBlocks is [Matrix.Transpose] over F_2.
func (m *Matrix) transposeBlocks() *Matrix {
	t := New(m.p, m.columns, len(m.rows))

	var b simd.Block
	for I := range utils.CeilDiv(len(m.rows), simd.BlockSize) {
		for J := range limb.Number(m.p, m.columns) {
			m.loadBlock(&b, I, J)
			b.Transpose()
			t.storeBlock(&b, J, I)
		}
	}
	return t
}
