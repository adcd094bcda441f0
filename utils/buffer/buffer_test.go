package buffer

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodec(t *testing.T) {
	// small internal buffers force the slice codecs to flush and refill
	for _, size := range []int{16, 4096} {
		t.Run(fmt.Sprintf("RoundTrip/size=%d", size), func(t *testing.T) {
			u64 := make([]uint64, 37)
			for i := range u64 {
				u64[i] = uint64(i) * 0x9e3779b97f4a7c15
			}
			u32 := []uint32{0, 1, 1 << 31, 0xffffffff, 12345}
			u8 := []uint8("residues")

			var data bytes.Buffer
			w := bufio.NewWriterSize(&data, size)

			var n, inc int64
			var err error
			for _, f := range []func() (int64, error){
				func() (int64, error) { return WriteInt(w, len(u64)) },
				func() (int64, error) { return WriteUint64Slice(w, u64) },
				func() (int64, error) { return WriteUint32Slice(w, u32) },
				func() (int64, error) { return WriteUint8Slice(w, u8) },
				func() (int64, error) { return WriteUint32(w, 7) },
				func() (int64, error) { return WriteUint8(w, 3) },
			} {
				inc, err = f()
				require.NoError(t, err)
				n += inc
			}
			require.NoError(t, w.Flush())
			require.Equal(t, int64(data.Len()), n)
			require.Equal(t, 8+37*8+5*4+8+4+1, data.Len())

			r := bufio.NewReaderSize(bytes.NewReader(data.Bytes()), size)

			var length int
			_, err = ReadInt(r, &length)
			require.NoError(t, err)
			require.Equal(t, len(u64), length)

			got64 := make([]uint64, length)
			_, err = ReadUint64Slice(r, got64)
			require.NoError(t, err)
			require.Equal(t, u64, got64)

			got32 := make([]uint32, len(u32))
			_, err = ReadUint32Slice(r, got32)
			require.NoError(t, err)
			require.Equal(t, u32, got32)

			got8 := make([]uint8, len(u8))
			_, err = ReadUint8Slice(r, got8)
			require.NoError(t, err)
			require.Equal(t, u8, got8)

			var x32 uint32
			_, err = ReadUint32(r, &x32)
			require.NoError(t, err)
			require.Equal(t, uint32(7), x32)

			var x8 uint8
			_, err = ReadUint8(r, &x8)
			require.NoError(t, err)
			require.Equal(t, uint8(3), x8)
		})
	}

	t.Run("Truncated", func(t *testing.T) {
		b := NewBufferSize(24)
		_, err := WriteUint64Slice(b, []uint64{1, 2, 3})
		require.NoError(t, err)

		got := make([]uint64, 4)
		_, err = ReadUint64Slice(NewBuffer(b.Bytes()), got)
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)

		var x uint64
		_, err = ReadUint64(NewBuffer(b.Bytes()[:5]), &x)
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("ShortBuffer", func(t *testing.T) {
		b := NewBufferSize(12)
		_, err := WriteUint64Slice(b, []uint64{1, 2})
		require.Error(t, err)
	})

	t.Run("NegativeInt", func(t *testing.T) {
		_, err := WriteInt(NewBufferSize(8), -1)
		require.Error(t, err)
	})
}

func TestBuffer(t *testing.T) {
	b := NewBufferSize(6)
	require.Equal(t, 6, b.Available())

	n, err := b.Write([]byte{1, 2, 3, 4})
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, []byte{1, 2, 3, 4}, b.Bytes())
	require.Equal(t, 2, cap(b.AvailableBuffer()))

	_, err = b.Write([]byte{5, 6, 7})
	require.ErrorIs(t, err, ErrShortBuffer)
	require.Equal(t, 4, len(b.Bytes()))

	r := NewBuffer(b.Bytes())
	peek, err := r.Peek(2)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2}, peek)
	require.Equal(t, 4, r.Size())

	discarded, err := r.Discard(1)
	require.NoError(t, err)
	require.Equal(t, 1, discarded)

	p := make([]byte, 2)
	_, err = r.Read(p)
	require.NoError(t, err)
	require.Equal(t, []byte{2, 3}, p)

	peek, err = r.Peek(2)
	require.ErrorIs(t, err, io.EOF)
	require.Equal(t, []byte{4}, peek)

	discarded, err = r.Discard(2)
	require.ErrorIs(t, err, io.EOF)
	require.Equal(t, 1, discarded)
	require.Zero(t, r.Size())

	n, err = r.Read(p)
	require.ErrorIs(t, err, io.EOF)
	require.Zero(t, n)
}
