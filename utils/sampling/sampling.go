// Package sampling implements the sampling of random residues mod p from a
// stream of random bytes.
package sampling

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/sseq/fp/prime"
)

// UniformSampler samples residues mod p uniformly by rejection, reading
// its randomness from a PRNG.
// A UniformSampler is not safe for concurrent use.
type UniformSampler struct {
	prng PRNG
	p    prime.ValidPrime
	mask uint64
	buf  [1024]byte
	off  int
}

// NewUniformSampler returns a new UniformSampler of residues mod p.
func NewUniformSampler(prng PRNG, p prime.ValidPrime) *UniformSampler {
	return &UniformSampler{
		prng: prng,
		p:    p,
		mask: 1<<bits.Len64(p.Uint64()-1) - 1,
		off:  1024,
	}
}

func (s *UniformSampler) uint64() uint64 {
	if s.off == len(s.buf) {
		if _, err := s.prng.Read(s.buf[:]); err != nil {
			// Sanity check, this error should not happen.
			panic(fmt.Errorf("sampling: cannot read from PRNG: %w", err))
		}
		s.off = 0
	}
	x := binary.LittleEndian.Uint64(s.buf[s.off:])
	s.off += 8
	return x
}

// Residue returns a uniform value in [0, p).
func (s *UniformSampler) Residue() uint32 {
	for {
		if x := s.uint64() & s.mask; x < s.p.Uint64() {
			return uint32(x)
		}
	}
}

// Float64 returns a uniform value in [0, 1).
func (s *UniformSampler) Float64() float64 {
	return float64(s.uint64()>>11) / (1 << 53)
}

// Read fills v with uniform residues.
func (s *UniformSampler) Read(v []uint32) {
	for i := range v {
		v[i] = s.Residue()
	}
}

// ReadSparse fills v with residues that are nonzero with probability
// density, and uniform among the nonzero residues when nonzero.
func (s *UniformSampler) ReadSparse(v []uint32, density float64) {
	for i := range v {
		if s.Float64() >= density {
			v[i] = 0
			continue
		}
		// uniform in [1, p)
		for v[i] = s.Residue(); v[i] == 0; v[i] = s.Residue() {
		}
	}
}
