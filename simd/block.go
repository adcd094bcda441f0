package simd

import (
	"math/bits"
)

// BlockSize is the number of rows and of columns of a [Block].
const BlockSize = 64

// Block is a 64x64 matrix over F_2. Row i is b[i] and its entry in column j
// is bit j of b[i].
type Block [BlockSize]uint64

// Transpose transposes the block in place.
//
// The block is split recursively into 2x2 sub-blocks of decreasing size, and
// the off-diagonal sub-blocks are exchanged with a masked swap at each
// level.
func (b *Block) Transpose() {
	j := 32
	m := uint64(0x00000000FFFFFFFF)
	for j != 0 {
		for k := 0; k < BlockSize; k++ {
			if k&j != 0 {
				continue
			}
			t := ((b[k] >> j) ^ b[k+j]) & m
			b[k] ^= t << j
			b[k+j] ^= t
		}
		j >>= 1
		m ^= m << j
	}
}

// Gemm sets c = c + a*b over F_2.
func Gemm(c, a, b *Block) {
	GemmLevel(current, c, a, b)
}

// GemmLevel is [Gemm] with an explicit level.
func GemmLevel(level Level, c, a, b *Block) {
	if level == LevelScalar {
		gemmScalar(c, a, b)
		return
	}
	var t gemmTable
	t.build(b)
	switch level.Lanes() {
	case 2:
		t.apply2(c, a)
	case 4:
		t.apply4(c, a)
	case 8:
		t.apply8(c, a)
	default:
		t.apply(c[:], a[:])
	}
}

func gemmScalar(c, a, b *Block) {
	for i := range a {
		x := a[i]
		var acc uint64
		for k := 0; k < BlockSize; k++ {
			acc ^= b[k] & -((x >> k) & 1)
		}
		c[i] ^= acc
	}
}

// gemmTable holds, for every byte position g of a row of a, the 256 sums of
// subsets of the rows 8g..8g+7 of b.
type gemmTable [8][256]uint64

func (t *gemmTable) build(b *Block) {
	for g := range t {
		row := b[8*g : 8*g+8]
		for v := 1; v < 256; v++ {
			t[g][v] = t[g][v&(v-1)] ^ row[bits.TrailingZeros8(uint8(v))]
		}
	}
}

func (t *gemmTable) row(x uint64) uint64 {
	return t[0][uint8(x)] ^
		t[1][uint8(x>>8)] ^
		t[2][uint8(x>>16)] ^
		t[3][uint8(x>>24)] ^
		t[4][uint8(x>>32)] ^
		t[5][uint8(x>>40)] ^
		t[6][uint8(x>>48)] ^
		t[7][uint8(x>>56)]
}

func (t *gemmTable) apply(c, a []uint64) {
	for i := range a {
		c[i] ^= t.row(a[i])
	}
}

func (t *gemmTable) apply2(c, a *Block) {
	for i := 0; i < BlockSize; i += 2 {
		x := (*[2]uint64)(c[i:])
		y := (*[2]uint64)(a[i:])
		x[0] ^= t.row(y[0])
		x[1] ^= t.row(y[1])
	}
}

func (t *gemmTable) apply4(c, a *Block) {
	for i := 0; i < BlockSize; i += 4 {
		x := (*[4]uint64)(c[i:])
		y := (*[4]uint64)(a[i:])
		x[0] ^= t.row(y[0])
		x[1] ^= t.row(y[1])
		x[2] ^= t.row(y[2])
		x[3] ^= t.row(y[3])
	}
}

func (t *gemmTable) apply8(c, a *Block) {
	for i := 0; i < BlockSize; i += 8 {
		x := (*[8]uint64)(c[i:])
		y := (*[8]uint64)(a[i:])
		x[0] ^= t.row(y[0])
		x[1] ^= t.row(y[1])
		x[2] ^= t.row(y[2])
		x[3] ^= t.row(y[3])
		x[4] ^= t.row(y[4])
		x[5] ^= t.row(y[5])
		x[6] ^= t.row(y[6])
		x[7] ^= t.row(y[7])
	}
}
