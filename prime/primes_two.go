//go:build fp2only

package prime

// OddPrimes is true when the build supports primes other than 2.
const OddPrimes = false

func supported(p uint32) bool {
	return p == 2
}
