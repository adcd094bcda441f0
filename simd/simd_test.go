package simd

import (
	"fmt"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

var prng = rand.New(rand.NewSource(0x51d))

func testString(opname string, level Level) string {
	return fmt.Sprintf("%s/level=%s", opname, level)
}

func randomLimbs(n int) (v []uint64) {
	v = make([]uint64, n)
	for i := range v {
		v[i] = prng.Uint64()
	}
	return
}

func randomBlock() (b *Block) {
	b = new(Block)
	copy(b[:], randomLimbs(BlockSize))
	return
}

func TestDispatch(t *testing.T) {
	t.Run("Supported", func(t *testing.T) {
		levels := Supported()
		require.Equal(t, LevelScalar, levels[0])
		for _, l := range levels {
			require.LessOrEqual(t, l, CurrentLevel())
		}
	})

	t.Run("String", func(t *testing.T) {
		require.Equal(t, "scalar", LevelScalar.String())
		require.Equal(t, "avx512", LevelAVX512.String())
		require.Equal(t, "unknown", Level(-1).String())
	})
}

func TestAddXor(t *testing.T) {
	for _, level := range AllLevels {
		t.Run(testString("AddXor", level), func(t *testing.T) {
			for _, n := range []int{0, 1, 2, 3, 7, 8, 9, 15, 16, 17, 63, 64, 65, 1000} {
				dst := randomLimbs(n)
				src := randomLimbs(n)

				want := make([]uint64, n)
				copy(want, dst)
				xorScalar(want, src)

				AddXorLevel(level, dst, src)
				require.Equal(t, want, dst, "n=%d", n)
			}
		})

		t.Run(testString("AddXor/Adversarial", level), func(t *testing.T) {
			for _, n := range []int{5, 13, 33, 65} {
				for name, src := range adversarialLimbs(n) {
					dst := randomLimbs(n)
					want := slices.Clone(dst)
					xorScalar(want, src)

					AddXorLevel(level, dst, src)
					require.Equal(t, want, dst, "%s/n=%d", name, n)

					// x ^ x = 0
					dst = slices.Clone(src)
					AddXorLevel(level, dst, src)
					require.Equal(t, make([]uint64, n), dst, "%s/n=%d", name, n)
				}
			}

			// single bits land in place
			dst := make([]uint64, 70)
			src := adversarialLimbs(70)["SingleBit"]
			AddXorLevel(level, dst, src)
			for i, x := range dst {
				require.Equal(t, uint64(1)<<(i%64), x)
			}

			// zero leaves dst unchanged
			dst = randomLimbs(70)
			want := slices.Clone(dst)
			AddXorLevel(level, dst, make([]uint64, 70))
			require.Equal(t, want, dst)
		})
	}

	t.Run("AddXor/LengthMismatch", func(t *testing.T) {
		require.Panics(t, func() { AddXor(make([]uint64, 3), make([]uint64, 4)) })
	})
}

func naiveTranspose(b *Block) (r *Block) {
	r = new(Block)
	for i := 0; i < BlockSize; i++ {
		for j := 0; j < BlockSize; j++ {
			r[j] |= ((b[i] >> j) & 1) << i
		}
	}
	return
}

// adversarialLimbs returns the sources that stress lane boundaries: all
// zeros, a single bit per limb and all ones.
func adversarialLimbs(n int) map[string][]uint64 {
	zero := make([]uint64, n)
	single := make([]uint64, n)
	ones := make([]uint64, n)
	for i := range n {
		single[i] = 1 << (i % 64)
		ones[i] = ^uint64(0)
	}
	return map[string][]uint64{"Zero": zero, "SingleBit": single, "AllOnes": ones}
}

func adversarialBlocks() map[string]*Block {
	blocks := map[string]*Block{}
	for name, limbs := range adversarialLimbs(BlockSize) {
		b := new(Block)
		copy(b[:], limbs)
		blocks[name] = b
	}
	return blocks
}

func TestTranspose(t *testing.T) {
	for i := 0; i < 16; i++ {
		b := randomBlock()
		want := naiveTranspose(b)
		got := *b
		got.Transpose()
		require.Equal(t, *want, got)

		got.Transpose()
		require.Equal(t, *b, got)
	}

	t.Run("Identity", func(t *testing.T) {
		var id Block
		for i := range id {
			id[i] = 1 << i
		}
		got := id
		got.Transpose()
		require.Equal(t, id, got)
	})
}

func TestGemm(t *testing.T) {
	for _, level := range AllLevels {
		t.Run(testString("Gemm", level), func(t *testing.T) {
			for i := 0; i < 8; i++ {
				a, b, c := randomBlock(), randomBlock(), randomBlock()

				want := *c
				gemmScalar(&want, a, b)

				GemmLevel(level, c, a, b)
				require.Equal(t, want, *c)
			}
		})

		t.Run(testString("Gemm/Adversarial", level), func(t *testing.T) {
			blocks := adversarialBlocks()
			for nameA, a := range blocks {
				for nameB, b := range blocks {
					c := randomBlock()
					want := *c
					gemmScalar(&want, a, b)

					GemmLevel(level, c, a, b)
					require.Equal(t, want, *c, "a=%s b=%s", nameA, nameB)
				}
			}

			// a zero factor leaves c unchanged
			c := randomBlock()
			want := *c
			GemmLevel(level, c, blocks["Zero"], randomBlock())
			GemmLevel(level, c, randomBlock(), blocks["Zero"])
			require.Equal(t, want, *c)

			// every row of ones*ones is the XOR of 64 rows of ones
			var r Block
			GemmLevel(level, &r, blocks["AllOnes"], blocks["AllOnes"])
			require.Equal(t, Block{}, r)

			// the single-bit block is the identity
			r = Block{}
			b := randomBlock()
			GemmLevel(level, &r, blocks["SingleBit"], b)
			require.Equal(t, *b, r)
		})

		t.Run(testString("Gemm/Identity", level), func(t *testing.T) {
			var id, c Block
			for i := range id {
				id[i] = 1 << i
			}
			b := randomBlock()
			GemmLevel(level, &c, &id, b)
			require.Equal(t, *b, c)

			// (I*b) + b = 0
			GemmLevel(level, &c, b, &id)
			require.Equal(t, Block{}, c)
		})
	}
}

func TestAsBytes(t *testing.T) {
	require.Nil(t, AsBytes(nil))
	limbs := randomLimbs(3)
	require.Len(t, AsBytes(limbs), 24)
}

func BenchmarkAddXor(b *testing.B) {
	for _, level := range AllLevels {
		dst, src := randomLimbs(1<<10), randomLimbs(1<<10)
		b.Run(testString("AddXor", level), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				AddXorLevel(level, dst, src)
			}
		})
	}
}

func BenchmarkGemm(b *testing.B) {
	for _, level := range AllLevels {
		a, m, c := randomBlock(), randomBlock(), randomBlock()
		b.Run(testString("Gemm", level), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				GemmLevel(level, c, a, m)
			}
		})
	}
}
