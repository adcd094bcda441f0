// Package utils implements small generic helpers shared by the fp packages.
package utils

import (
	"golang.org/x/exp/constraints"
)

// CeilDiv returns ceil(a/b) for a >= 0 and b > 0.
func CeilDiv[T constraints.Integer](a, b T) T {
	return (a + b - 1) / b
}

// FloorMod returns a mod b in [0, b), also for negative a.
func FloorMod[T constraints.Signed](a, b T) T {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}

// FloorDiv returns floor(a/b), also for negative a.
func FloorDiv[T constraints.Signed](a, b T) T {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
