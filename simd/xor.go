package simd

import (
	"fmt"
)

// ErrLengthMismatch is the panic value of kernels called on operands of
// different lengths.
var ErrLengthMismatch = fmt.Errorf("operands do not have the same length")

// AddXor sets dst[i] ^= src[i] for every i, which is the scaled addition of
// vectors over F_2 with coefficient 1. It panics if dst and src do not have
// the same length.
func AddXor(dst, src []uint64) {
	AddXorLevel(current, dst, src)
}

// AddXorLevel is [AddXor] with an explicit level, regardless of the level
// detected at startup.
func AddXorLevel(level Level, dst, src []uint64) {
	if len(dst) != len(src) {
		panic(fmt.Errorf("cannot AddXor: %w (%d != %d)", ErrLengthMismatch, len(dst), len(src)))
	}

	switch level.Lanes() {
	case 2:
		xor2(dst, src)
	case 4:
		xor4(dst, src)
	case 8:
		xor8(dst, src)
	default:
		xorScalar(dst, src)
	}
}

func xorScalar(dst, src []uint64) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}

func xor2(dst, src []uint64) {
	n := len(dst) &^ 1
	for j := 0; j < n; j += 2 {
		x := (*[2]uint64)(dst[j:])
		y := (*[2]uint64)(src[j:])
		x[0] ^= y[0]
		x[1] ^= y[1]
	}
	xorScalar(dst[n:], src[n:])
}

func xor4(dst, src []uint64) {
	n := len(dst) &^ 3
	for j := 0; j < n; j += 4 {
		x := (*[4]uint64)(dst[j:])
		y := (*[4]uint64)(src[j:])
		x[0] ^= y[0]
		x[1] ^= y[1]
		x[2] ^= y[2]
		x[3] ^= y[3]
	}
	xor2(dst[n:], src[n:])
}

func xor8(dst, src []uint64) {
	n := len(dst) &^ 7
	for j := 0; j < n; j += 8 {
		x := (*[8]uint64)(dst[j:])
		y := (*[8]uint64)(src[j:])
		x[0] ^= y[0]
		x[1] ^= y[1]
		x[2] ^= y[2]
		x[3] ^= y[3]
		x[4] ^= y[4]
		x[5] ^= y[5]
		x[6] ^= y[6]
		x[7] ^= y[7]
	}
	xor4(dst[n:], src[n:])
}
