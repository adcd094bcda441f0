// Package limb implements the packing of field elements into machine words
// (limbs) and the word-level arithmetic the vector kernels are built on.
//
// An entry mod p occupies BitLength(p) bits and EntriesPerLimb(p) entries
// are stored per limb, least significant first. The bits of a limb above
// EntriesPerLimb(p)*BitLength(p) are always zero.
package limb

import (
	"math"
	"math/bits"

	"github.com/sseq/fp/prime"
)

// Limb is the storage unit of packed vectors.
type Limb = uint64

// Bits is the width of a [Limb].
const Bits = prime.LimbBits

// BitLength returns the number of bits per entry.
func BitLength(p prime.ValidPrime) int {
	return p.BitLength()
}

// EntriesPerLimb returns the number of entries stored in one limb.
func EntriesPerLimb(p prime.ValidPrime) int {
	return Bits / p.BitLength()
}

// Number returns the number of limbs needed to store dim entries.
func Number(p prime.ValidPrime, dim int) int {
	if dim == 0 {
		return 0
	}
	epl := EntriesPerLimb(p)
	return (dim + epl - 1) / epl
}

// BitMask returns the mask of a single entry.
func BitMask(p prime.ValidPrime) Limb {
	return (Limb(1) << p.BitLength()) - 1
}

// UsedMask returns the mask of the bits of a limb that hold entries.
func UsedMask(p prime.ValidPrime) Limb {
	return RangeMask(p, 0, EntriesPerLimb(p))
}

// RangeMask returns the mask of the entries [start, end) of a limb, with
// 0 <= start <= end <= EntriesPerLimb(p).
func RangeMask(p prime.ValidPrime, start, end int) Limb {
	bl := p.BitLength()
	return bitsMask(end*bl) &^ bitsMask(start*bl)
}

func bitsMask(n int) Limb {
	if n >= Bits {
		return math.MaxUint64
	}
	return (Limb(1) << n) - 1
}

// BottomBits returns a limb with the lowest bit of every entry set.
func BottomBits(p prime.ValidPrime) (b Limb) {
	bl := p.BitLength()
	for i := 0; i < EntriesPerLimb(p); i++ {
		b |= 1 << (i * bl)
	}
	return
}

// BitIndexPair returns the index of the limb holding entry idx and the bit
// offset of the entry in that limb.
func BitIndexPair(p prime.ValidPrime, idx int) (limbIdx, shift int) {
	epl := EntriesPerLimb(p)
	return idx / epl, (idx % epl) * p.BitLength()
}

// Entry returns the i-th entry of l.
func Entry(p prime.ValidPrime, l Limb, i int) uint32 {
	bl := p.BitLength()
	return uint32((l >> (i * bl)) & BitMask(p))
}

// Pack packs the residues, which must be smaller than p, into newly
// allocated limbs.
func Pack(p prime.ValidPrime, residues []uint32) (limbs []Limb) {
	limbs = make([]Limb, Number(p, len(residues)))
	PackInto(p, limbs, residues)
	return
}

// PackInto packs the residues into dst, overwriting the first
// Number(p, len(residues)) limbs.
func PackInto(p prime.ValidPrime, dst []Limb, residues []uint32) {
	bl := p.BitLength()
	epl := EntriesPerLimb(p)

	for i := range dst[:Number(p, len(residues))] {
		chunk := residues[i*epl : min((i+1)*epl, len(residues))]
		var l Limb
		for j, r := range chunk {
			l |= Limb(r) << (j * bl)
		}
		dst[i] = l
	}
}

// Unpack returns the first n entries stored in limbs.
func Unpack(p prime.ValidPrime, limbs []Limb, n int) (residues []uint32) {
	residues = make([]uint32, n)
	UnpackInto(p, residues, limbs)
	return
}

// UnpackInto fills dst with the first len(dst) entries stored in limbs.
func UnpackInto(p prime.ValidPrime, dst []uint32, limbs []Limb) {
	bl := p.BitLength()
	epl := EntriesPerLimb(p)
	mask := BitMask(p)

	for i := range dst {
		dst[i] = uint32((limbs[i/epl] >> ((i % epl) * bl)) & mask)
	}
}

// Add returns a + c*b computed entrywise without reduction, for p odd. For
// p = 2 it returns a ^ b if c is odd and a otherwise.
//
// For reduced a and b and c < p every entry of the result is at most
// p*(p-1), which fits in BitLength(p) bits.
func Add(p prime.ValidPrime, a, b Limb, c uint32) Limb {
	if p.Value() == 2 {
		return a ^ (b & -Limb(c&1))
	}
	return a + Limb(c)*b
}

// Scale returns c*a computed entrywise, reduced.
func Scale(p prime.ValidPrime, a Limb, c uint32) Limb {
	if p.Value() == 2 {
		return a & -Limb(c&1)
	}
	return Reduce(p, Limb(c)*a)
}

// Headroom returns the number of unreduced [Add] calls with coefficients
// smaller than p that a reduced limb can absorb before it must be reduced:
// after k such additions an entry is at most (p-1) + k(p-1)^2, which must
// stay below 2^BitLength(p). Headroom is math.MaxInt for p = 2, where
// addition is exact.
func Headroom(p prime.ValidPrime) int {
	if p.Value() == 2 {
		return math.MaxInt
	}
	top := (uint64(1) << p.BitLength()) - 1
	pm1 := p.Uint64() - 1
	return int((top - pm1) / (pm1 * pm1))
}

// Reduce reduces every entry of l mod p. The entries of l may take any
// value below 2^BitLength(p).
func Reduce(p prime.ValidPrime, l Limb) Limb {
	switch p.Value() {
	case 2:
		return l
	case 3:
		return reduce3(l)
	case 5:
		return reduce5(l)
	default:
		return reduceGeneric(p, l)
	}
}

const (
	// Lowest bit of each of the 21 3-bit entries.
	bottom3 Limb = 0x1249249249249249
	// Lowest bit of each of the 12 5-bit entries.
	bottom5 Limb = 0x0084210842108421
)

// reduce3 uses 4 = 1 mod 3: x = 4*x2 + r reduces to x2 + r in [0, 4], from
// which 3 is subtracted where the sum reaches 3.
func reduce3(l Limb) Limb {
	y := ((l >> 2) & bottom3) + (l & (bottom3 * 3))
	ge := ((y + bottom3) >> 2) & bottom3
	return y - ge*3
}

// reduce5 uses 16 = 1 and 4 = -1 mod 5: x = 16*x4 + 4*h + l reduces to
// x4 + l + 5 - h in [2, 9], from which 5 is subtracted where it reaches 5.
func reduce5(l Limb) Limb {
	m := ((l >> 4) & bottom5) + (l & (bottom5 * 3)) + bottom5*5 - ((l >> 2) & (bottom5 * 3))
	ge := ((m + bottom5*11) >> 4) & bottom5
	return m - ge*5
}

func reduceGeneric(p prime.ValidPrime, l Limb) (r Limb) {
	bl := p.BitLength()
	mask := BitMask(p)
	q := p.Uint64()
	for i := 0; i < EntriesPerLimb(p); i++ {
		shift := i * bl
		r |= (((l >> shift) & mask) % q) << shift
	}
	return
}

// IsReduced returns true if every entry of l is smaller than p.
func IsReduced(p prime.ValidPrime, l Limb) bool {
	if p.Value() == 2 {
		return true
	}
	bl := p.BitLength()
	mask := BitMask(p)
	q := p.Uint64()
	for i := 0; i < EntriesPerLimb(p); i++ {
		if (l>>(i*bl))&mask >= q {
			return false
		}
	}
	return true
}

// nonzeroBits returns a limb with the lowest bit of each nonzero entry of l
// set.
func nonzeroBits(p prime.ValidPrime, l Limb) Limb {
	if p.Value() == 2 {
		return l
	}
	bottom := BottomBits(p)
	var acc Limb
	for b := 0; b < p.BitLength(); b++ {
		acc |= (l >> b) & bottom
	}
	return acc
}

// CountNonzero returns the number of nonzero entries of l.
func CountNonzero(p prime.ValidPrime, l Limb) int {
	return bits.OnesCount64(nonzeroBits(p, l))
}

// FirstNonzero returns the index of the first nonzero entry of l, or -1 if
// l is zero.
func FirstNonzero(p prime.ValidPrime, l Limb) int {
	if l == 0 {
		return -1
	}
	return bits.TrailingZeros64(nonzeroBits(p, l)) / p.BitLength()
}
