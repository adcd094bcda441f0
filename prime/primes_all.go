//go:build !fp2only

package prime

// OddPrimes is true when the build supports primes other than 2.
const OddPrimes = true

func supported(p uint32) bool {
	return true
}
