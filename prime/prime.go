// Package prime implements validated primes and arithmetic in the prime
// field F_p, together with the process-wide lookup tables built for them.
package prime

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrInvalidPrime is returned when a value is not a supported prime.
var ErrInvalidPrime = errors.New("invalid prime")

// LimbBits is the width of the machine word in which entries are packed.
const LimbBits = 64

// ValidPrime is a prime p that has been checked to be supported: p is prime,
// it belongs to the build's prime set and BitLength(p) < LimbBits.
// The zero value is not a valid prime.
type ValidPrime struct {
	p uint32
}

// New returns p as a [ValidPrime], or an error wrapping [ErrInvalidPrime].
func New(p uint32) (ValidPrime, error) {
	if !IsPrime(p) {
		return ValidPrime{}, fmt.Errorf("%w: %d is not prime", ErrInvalidPrime, p)
	}
	if BitLength(p) >= LimbBits {
		return ValidPrime{}, fmt.Errorf("%w: %d is too large for %d-bit limbs", ErrInvalidPrime, p, LimbBits)
	}
	if !supported(p) {
		return ValidPrime{}, fmt.Errorf("%w: %d is not in the supported prime set", ErrInvalidPrime, p)
	}
	return ValidPrime{p: p}, nil
}

// MustNew is like [New] but panics on error.
func MustNew(p uint32) ValidPrime {
	vp, err := New(p)
	if err != nil {
		panic(err)
	}
	return vp
}

// IsPrime reports whether x is prime, by trial division.
func IsPrime(x uint32) bool {
	if x < 2 {
		return false
	}
	if x < 4 {
		return true
	}
	if x&1 == 0 {
		return false
	}
	for d := uint64(3); d*d <= uint64(x); d += 2 {
		if uint64(x)%d == 0 {
			return false
		}
	}
	return true
}

// BitLength returns the number of bits used to store one entry mod p.
// It is 1 for p = 2 and otherwise the bit length of p*(p-1), which leaves
// room to compute a + c*b for reduced a, b, c without carrying into the
// neighbouring entry.
func BitLength(p uint32) int {
	if p == 2 {
		return 1
	}
	return bits.Len64(uint64(p) * uint64(p-1))
}

// Value returns p.
func (p ValidPrime) Value() uint32 {
	return p.p
}

// Uint64 returns p as an uint64.
func (p ValidPrime) Uint64() uint64 {
	return uint64(p.p)
}

// IsZero returns true for the zero value, which is not a prime.
func (p ValidPrime) IsZero() bool {
	return p.p == 0
}

// BitLength returns [BitLength] of p.
func (p ValidPrime) BitLength() int {
	return BitLength(p.p)
}

// String implements fmt.Stringer.
func (p ValidPrime) String() string {
	return fmt.Sprintf("%d", p.p)
}
