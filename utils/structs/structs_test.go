package structs

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestStructs(t *testing.T) {
	t.Run("Vector/W64/Serialization&Equatable", func(t *testing.T) {
		testVector[uint64](t)
	})

	t.Run("Vector/W32/Serialization&Equatable", func(t *testing.T) {
		testVector[uint32](t)
	})

	t.Run("Vector/W8/Serialization&Equatable", func(t *testing.T) {
		testVector[uint8](t)
	})

	t.Run("Vector/Empty", func(t *testing.T) {
		v := Vector[uint64]{}
		data, err := v.MarshalBinary()
		require.NoError(t, err)
		require.Len(t, data, 8)

		vNew := Vector[uint64]{1, 2}
		require.NoError(t, vNew.UnmarshalBinary(data))
		require.Len(t, vNew, 0)
	})

	t.Run("Vector/Truncated", func(t *testing.T) {
		v := Vector[uint32]{1, 2, 3}
		data, err := v.MarshalBinary()
		require.NoError(t, err)
		vNew := Vector[uint32]{}
		require.Error(t, vNew.UnmarshalBinary(data[:len(data)-1]))
	})

	t.Run("Vector/CorruptedLength", func(t *testing.T) {
		for _, size := range []uint64{1 << 40, MaxDecodeLen + 1, math.MaxUint64} {
			data := binary.LittleEndian.AppendUint64(nil, size)
			vNew := Vector[uint64]{1, 2}
			require.Error(t, vNew.UnmarshalBinary(data))
			require.Equal(t, Vector[uint64]{1, 2}, vNew)
		}

		data := binary.LittleEndian.AppendUint64(nil, 1<<40)
		require.ErrorIs(t, new(Vector[uint32]).UnmarshalBinary(data), ErrCorrupted)

		// a length within bounds but longer than the data
		data = binary.LittleEndian.AppendUint64(nil, MaxDecodeLen)
		data = binary.LittleEndian.AppendUint64(data, 7)
		require.ErrorIs(t, new(Vector[uint64]).UnmarshalBinary(data), io.ErrUnexpectedEOF)
	})

	t.Run("SyncPool", func(t *testing.T) {
		pool := NewSyncPool(func() *[]uint64 {
			buf := make([]uint64, 16)
			return &buf
		})
		buf := pool.Get()
		require.Len(t, *buf, 16)
		pool.Put(buf)
	})
}

func testVector[T Word](t *testing.T) {
	v := Vector[T](make([]T, 64))
	for i := range v {
		v[i] = T(i * 7)
	}
	data, err := v.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, data, v.BinarySize())

	vNew := Vector[T]{}
	require.NoError(t, vNew.UnmarshalBinary(data))
	require.True(t, cmp.Equal(v, vNew)) // also tests Equal

	// io.Writer that is not a buffer.Writer
	var w bytes.Buffer
	n, err := v.WriteTo(&w)
	require.NoError(t, err)
	require.Equal(t, int64(v.BinarySize()), n)
	require.Equal(t, data, w.Bytes())

	vCpy := v.CopyNew()
	vCpy[0]++
	require.False(t, v.Equal(vCpy))
}
