package prime

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

var testPrimes = []uint32{2, 3, 5, 7, 11, 13, 251, 257, 65521, 1000003}

func testString(opname string, p ValidPrime) string {
	return fmt.Sprintf("%s/p=%d", opname, p.Value())
}

func TestPrime(t *testing.T) {

	testNew(t)

	for _, q := range testPrimes {

		if !OddPrimes && q != 2 {
			continue
		}

		p := MustNew(q)

		testBitLength(p, t)
		testArith(p, t)
		testInverse(p, t)
		testPow(p, t)
		testBinomial(p, t)
	}
}

func testNew(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		for _, q := range []uint32{0, 1, 4, 9, 15, 65535} {
			_, err := New(q)
			require.ErrorIs(t, err, ErrInvalidPrime)
		}

		p, err := New(2)
		require.NoError(t, err)
		require.Equal(t, uint32(2), p.Value())

		if OddPrimes {
			p, err = New(3)
			require.NoError(t, err)
			require.Equal(t, uint32(3), p.Value())

			// 4294967291 is the largest 32-bit prime, p*(p-1) needs 64 bits.
			require.True(t, IsPrime(4294967291))
			_, err = New(4294967291)
			require.ErrorIs(t, err, ErrInvalidPrime)
		} else {
			_, err = New(3)
			require.ErrorIs(t, err, ErrInvalidPrime)
		}

		require.Panics(t, func() { MustNew(4) })
		require.True(t, ValidPrime{}.IsZero())
	})
}

func testBitLength(p ValidPrime, t *testing.T) {
	t.Run(testString("BitLength", p), func(t *testing.T) {
		switch p.Value() {
		case 2:
			require.Equal(t, 1, p.BitLength())
		case 3:
			require.Equal(t, 3, p.BitLength())
		case 5:
			require.Equal(t, 5, p.BitLength())
		case 7:
			require.Equal(t, 6, p.BitLength())
		}

		if p.Value() != 2 {
			max := p.Uint64() * (p.Uint64() - 1)
			require.Less(t, max, uint64(1)<<p.BitLength())
		}
	})
}

func testArith(p ValidPrime, t *testing.T) {
	t.Run(testString("Arith", p), func(t *testing.T) {
		q := p.Uint64()
		require.Equal(t, uint32(0), p.Reduce(q))
		require.Equal(t, uint32(1), p.Reduce(q*q+1))
		require.Equal(t, uint32(q-1), p.Reduce(math.MaxUint64-(math.MaxUint64%q)-1))
		require.Equal(t, q-1, CRed(2*q-1, q))
		require.Equal(t, p.Value()-1, p.Sum(p.Value()-1, 0))
		require.Equal(t, uint32(0), p.Sum(p.Value()-1, 1))
		require.Equal(t, uint32(1), p.Product(p.Value()-1, p.Value()-1))
	})
}

func testInverse(p ValidPrime, t *testing.T) {
	t.Run(testString("Inverse", p), func(t *testing.T) {
		n := p.Value()
		if n > 1024 {
			n = 1024
		}
		for a := uint32(1); a < n; a++ {
			require.Equal(t, uint32(1), p.Product(a, p.Inverse(a)), "a=%d", a)
		}
		require.Panics(t, func() { p.Inverse(0) })
		require.Panics(t, func() { p.Inverse(p.Value()) })
	})
}

func testPow(p ValidPrime, t *testing.T) {
	t.Run(testString("Pow", p), func(t *testing.T) {
		require.Equal(t, uint32(1), p.Pow(0, 0))
		require.Equal(t, uint32(0), p.Pow(0, 3))
		// Fermat
		for a := uint32(1); a < 16 && a < p.Value(); a++ {
			require.Equal(t, a, p.Pow(a, p.Uint64()))
		}
		require.Equal(t, p.Negate(1), p.Sum(p.Negate(1), 0))
		require.Equal(t, uint32(0), p.Sum(1, p.Negate(1)))
	})
}

func binomialNaive(n, k uint64) uint64 {
	if k > n {
		return 0
	}
	r := uint64(1)
	for i := uint64(0); i < k; i++ {
		r = r * (n - i) / (i + 1)
	}
	return r
}

func testBinomial(p ValidPrime, t *testing.T) {
	t.Run(testString("Binomial", p), func(t *testing.T) {
		for n := uint32(0); n < 30; n++ {
			for k := uint32(0); k <= n+1; k++ {
				want := uint32(binomialNaive(uint64(n), uint64(k)) % p.Uint64())
				require.Equal(t, want, p.Binomial(n, k), "n=%d k=%d", n, k)
			}
		}
	})
}

func TestTablesConcurrent(t *testing.T) {
	if !OddPrimes {
		t.Skip("odd primes disabled")
	}
	p := MustNew(13)
	done := make(chan uint32, 8)
	for i := 0; i < 8; i++ {
		go func() {
			done <- p.Inverse(5)
		}()
	}
	for i := 0; i < 8; i++ {
		require.Equal(t, uint32(8), <-done)
	}
}
