package prime

import (
	"sync"
)

// TableMaxPrime is the largest prime for which inverse and binomial tables
// are built. Larger primes compute these values on demand.
const TableMaxPrime = 251

type tables struct {
	once     sync.Once
	inverse  []uint32
	binomial [][]uint32
}

var registry sync.Map // uint32 -> *tables

// tablesFor returns the tables of p, building them on first use, or nil if
// p is above TableMaxPrime. The tables are read-only once built and shared
// by every caller.
func tablesFor(p ValidPrime) *tables {
	if p.p > TableMaxPrime {
		return nil
	}

	v, _ := registry.LoadOrStore(p.p, new(tables))
	t := v.(*tables)
	t.once.Do(func() {
		t.build(p)
	})
	return t
}

func (t *tables) build(p ValidPrime) {

	q := p.p

	t.inverse = make([]uint32, q)
	for a := uint32(1); a < q; a++ {
		t.inverse[a] = p.Pow(a, uint64(q)-2)
	}

	// Pascal's triangle mod p, rows 0..p-1.
	t.binomial = make([][]uint32, q)
	for n := uint32(0); n < q; n++ {
		t.binomial[n] = make([]uint32, q)
		t.binomial[n][0] = 1
		for k := uint32(1); k <= n; k++ {
			t.binomial[n][k] = p.Sum(t.binomial[n-1][k-1], t.binomial[n-1][k])
		}
	}
}
