package sampling

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sseq/fp/prime"
)

var key = []byte{0x49, 0x0a, 0x42, 0x3d, 0x97, 0x9d, 0xc1, 0x07, 0xa1, 0xd7, 0xe9, 0x7b, 0x3b, 0xce, 0xa1, 0xdb,
	0x42, 0xf3, 0xa6, 0xd5, 0x75, 0xd2, 0x0c, 0x92, 0xb7, 0x35, 0xce, 0x0c, 0xee, 0x09, 0x7c, 0x98}

func TestPRNG(t *testing.T) {
	t.Run("KeyedPRNG", func(t *testing.T) {
		Ha, err := NewKeyedPRNG(key)
		require.NoError(t, err)
		Hb, err := NewKeyedPRNG(key)
		require.NoError(t, err)

		sum0 := make([]byte, 512)
		sum1 := make([]byte, 512)

		for i := 0; i < 128; i++ {
			_, err = Hb.Read(sum1)
			require.NoError(t, err)
		}

		Hb.Reset()

		_, err = Ha.Read(sum0)
		require.NoError(t, err)
		_, err = Hb.Read(sum1)
		require.NoError(t, err)

		require.Equal(t, sum0, sum1)
		require.Equal(t, key, Ha.Key())
	})

	t.Run("ThreadSafePRNG", func(t *testing.T) {
		prng, err := NewPRNG()
		require.NoError(t, err)
		sum := make([]byte, 64)
		n, err := prng.Read(sum)
		require.NoError(t, err)
		require.Equal(t, 64, n)
	})
}

func TestUniformSampler(t *testing.T) {
	for _, q := range []uint32{2, 3, 5, 7, 65521} {
		p, err := prime.New(q)
		if err != nil {
			// prime not part of this build
			continue
		}

		t.Run(p.String(), func(t *testing.T) {
			prng, err := NewKeyedPRNG(key)
			require.NoError(t, err)
			s := NewUniformSampler(prng, p)

			v := make([]uint32, 4096)
			s.Read(v)
			seen := map[uint32]bool{}
			for _, x := range v {
				require.Less(t, x, q)
				seen[x] = true
			}
			if q < 16 {
				require.Len(t, seen, int(q))
			}

			s.ReadSparse(v, 0)
			require.Equal(t, make([]uint32, len(v)), v)

			s.ReadSparse(v, 1)
			for _, x := range v {
				require.NotZero(t, x)
			}

			// reproducible from the key
			prng.Reset()
			a := NewUniformSampler(prng, p)
			prng2, err := NewKeyedPRNG(key)
			require.NoError(t, err)
			b := NewUniformSampler(prng2, p)
			for i := 0; i < 100; i++ {
				require.Equal(t, a.Residue(), b.Residue())
			}
		})
	}
}
