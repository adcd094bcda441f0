package prime

// CRed returns a mod p for a < 2p, by one conditional subtraction.
func CRed(a, p uint64) uint64 {
	if a >= p {
		return a - p
	}
	return a
}

// Reduce returns a mod p for any a.
func (p ValidPrime) Reduce(a uint64) uint32 {
	return uint32(a % uint64(p.p))
}

// Sum returns a + b mod p for a, b < p.
func (p ValidPrime) Sum(a, b uint32) uint32 {
	return uint32(CRed(uint64(a)+uint64(b), uint64(p.p)))
}

// Product returns a * b mod p for a, b < p.
func (p ValidPrime) Product(a, b uint32) uint32 {
	return p.Reduce(uint64(a) * uint64(b))
}

// Negate returns -a mod p for a < p.
func (p ValidPrime) Negate(a uint32) uint32 {
	if a == 0 {
		return 0
	}
	return p.p - a
}

// Pow returns a^e mod p.
func (p ValidPrime) Pow(a uint32, e uint64) uint32 {
	q := uint64(p.p)
	base := uint64(a) % q
	r := uint64(1) % q
	for e > 0 {
		if e&1 == 1 {
			r = r * base % q
		}
		base = base * base % q
		e >>= 1
	}
	return uint32(r)
}

// Inverse returns the inverse of a mod p. a must be nonzero mod p.
// Small primes are served from a table built on first use.
func (p ValidPrime) Inverse(a uint32) uint32 {
	a %= p.p
	if a == 0 {
		panic("cannot Inverse: zero has no inverse")
	}
	if t := tablesFor(p); t != nil {
		return t.inverse[a]
	}
	return p.Pow(a, uint64(p.p)-2)
}

// Binomial returns (n choose k) mod p, computed with Lucas' theorem.
func (p ValidPrime) Binomial(n, k uint32) uint32 {
	if k > n {
		return 0
	}

	t := tablesFor(p)
	q := p.p
	r := uint32(1)

	for n > 0 || k > 0 {
		ni, ki := n%q, k%q
		if ki > ni {
			return 0
		}

		var b uint32
		if t != nil {
			b = t.binomial[ni][ki]
		} else {
			b = p.smallBinomial(ni, ki)
		}

		r = p.Product(r, b)
		n /= q
		k /= q
	}

	return r
}

// smallBinomial computes (n choose k) mod p for n < p as a product of
// fractions, which are invertible since every factor is below p.
func (p ValidPrime) smallBinomial(n, k uint32) uint32 {
	if k > n-k {
		k = n - k
	}
	num, den := uint32(1), uint32(1)
	for j := uint32(0); j < k; j++ {
		num = p.Product(num, n-j)
		den = p.Product(den, j+1)
	}
	return p.Product(num, p.Inverse(den))
}
