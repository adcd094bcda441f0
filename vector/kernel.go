package vector

import (
	"iter"

	"github.com/sseq/fp/limb"
	"github.com/sseq/fp/prime"
	"github.com/sseq/fp/utils"
)

// entry returns the entry at the absolute index i of limbs.
func entry(p prime.ValidPrime, limbs []limb.Limb, i int) uint32 {
	q, shift := limb.BitIndexPair(p, i)
	return uint32((limbs[q] >> shift) & limb.BitMask(p))
}

func limbAt(limbs []limb.Limb, i int) limb.Limb {
	if i < 0 || i >= len(limbs) {
		return 0
	}
	return limbs[i]
}

// shifted returns the limb whose j-th entry is the entry at the absolute
// index a+j of limbs, for every j < EntriesPerLimb(p). a may be negative,
// and indices outside of limbs read as zero.
func shifted(p prime.ValidPrime, limbs []limb.Limb, a int) limb.Limb {
	epl := limb.EntriesPerLimb(p)
	bl := p.BitLength()
	q, r := utils.FloorDiv(a, epl), utils.FloorMod(a, epl)
	if r == 0 {
		return limbAt(limbs, q)
	}
	lo := limbAt(limbs, q) >> (r * bl)
	hi := limbAt(limbs, q+1) << ((epl - r) * bl)
	return (lo | hi) & limb.UsedMask(p)
}

// limbMasks returns, for every limb holding some of the absolute entries
// [start, end), the index of the limb and the mask of those entries in it.
func limbMasks(p prime.ValidPrime, start, end int) iter.Seq2[int, limb.Limb] {
	return func(yield func(int, limb.Limb) bool) {
		if start >= end {
			return
		}
		epl := limb.EntriesPerLimb(p)
		first, last := start/epl, (end-1)/epl
		used := limb.UsedMask(p)
		for i := first; i <= last; i++ {
			mask := used
			if i == first || i == last {
				mask = limb.RangeMask(p, max(start-i*epl, 0), min(end-i*epl, epl))
			}
			if !yield(i, mask) {
				return
			}
		}
	}
}
