package buffer

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// word describes how a fixed-width unsigned integer is laid out on the wire.
type word[T uint8 | uint32 | uint64] struct {
	name string
	size int
	put  func(b []byte, v T)
	get  func(b []byte) T
}

var (
	w8 = word[uint8]{
		name: "Uint8",
		size: 1,
		put:  func(b []byte, v uint8) { b[0] = v },
		get:  func(b []byte) uint8 { return b[0] },
	}
	w32 = word[uint32]{
		name: "Uint32",
		size: 4,
		put:  binary.LittleEndian.PutUint32,
		get:  binary.LittleEndian.Uint32,
	}
	w64 = word[uint64]{
		name: "Uint64",
		size: 8,
		put:  binary.LittleEndian.PutUint64,
		get:  binary.LittleEndian.Uint64,
	}
)

// available returns the number of words that fit in the internal buffer of
// w, flushing it if it is full.
func (c word[T]) available(w Writer) (available int, err error) {
	if available = w.Available() / c.size; available != 0 {
		return
	}

	if err = w.Flush(); err != nil {
		return
	}

	if available = w.Available() / c.size; available == 0 {
		return 0, fmt.Errorf("cannot Write%s: available buffer/%d is zero even after flush", c.name, c.size)
	}

	return
}

func (c word[T]) write(w Writer, v T) (n int64, err error) {
	if _, err = c.available(w); err != nil {
		return
	}

	buf := w.AvailableBuffer()[:c.size]
	c.put(buf, v)
	nint, err := w.Write(buf)
	return int64(nint), err
}

// writeSlice encodes as many words as fit in the internal buffer of w,
// flushes, and repeats until v is exhausted.
func (c word[T]) writeSlice(w Writer, v []T) (n int64, err error) {
	for len(v) > 0 {
		var available int
		if available, err = c.available(w); err != nil {
			return
		}

		N := min(len(v), available)

		buf := w.AvailableBuffer()[:N*c.size]
		for i, j := 0, 0; i < N; i, j = i+1, j+c.size {
			c.put(buf[j:], v[i])
		}

		var inc int
		inc, err = w.Write(buf)
		n += int64(inc)
		if err != nil {
			return
		}

		v = v[N:]
	}

	return
}

func (c word[T]) read(r Reader, v *T) (n int, err error) {
	if v == nil {
		return 0, fmt.Errorf("cannot Read%s: destination is nil", c.name)
	}

	var bb [8]byte
	if n, err = io.ReadFull(r, bb[:c.size]); err != nil {
		return
	}

	*v = c.get(bb[:])
	return
}

// readSlice decodes the words currently buffered by r, discards them, and
// repeats until v is filled.
func (c word[T]) readSlice(r Reader, v []T) (n int, err error) {
	for len(v) > 0 {
		size := min(len(v)*c.size, r.Size())

		var slice []byte
		slice, err = r.Peek(size)

		N := len(slice) / c.size
		if N == 0 {
			if err == nil || err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return
		}

		for i, j := 0, 0; i < N; i, j = i+1, j+c.size {
			v[i] = c.get(slice[j:])
		}

		var inc int
		inc, err = r.Discard(N * c.size)
		n += inc
		if err != nil {
			return
		}

		v = v[N:]
	}

	return
}

// WriteUint8 writes a byte to w.
func WriteUint8(w Writer, v uint8) (n int64, err error) {
	return w8.write(w, v)
}

// WriteUint32 writes v to w in little-endian order.
func WriteUint32(w Writer, v uint32) (n int64, err error) {
	return w32.write(w, v)
}

// WriteUint64 writes v to w in little-endian order.
func WriteUint64(w Writer, v uint64) (n int64, err error) {
	return w64.write(w, v)
}

// WriteInt writes a non-negative int to w as a uint64.
func WriteInt(w Writer, v int) (n int64, err error) {
	if v < 0 {
		return 0, fmt.Errorf("cannot WriteInt: negative value %d", v)
	}
	return w64.write(w, uint64(v))
}

// WriteUint8Slice writes v to w.
func WriteUint8Slice(w Writer, v []uint8) (n int64, err error) {
	return w8.writeSlice(w, v)
}

// WriteUint32Slice writes v to w, each element in little-endian order.
func WriteUint32Slice(w Writer, v []uint32) (n int64, err error) {
	return w32.writeSlice(w, v)
}

// WriteUint64Slice writes v to w, each element in little-endian order.
func WriteUint64Slice(w Writer, v []uint64) (n int64, err error) {
	return w64.writeSlice(w, v)
}

// ReadUint8 reads a byte from r.
func ReadUint8(r Reader, v *uint8) (n int, err error) {
	return w8.read(r, v)
}

// ReadUint32 reads a little-endian uint32 from r.
func ReadUint32(r Reader, v *uint32) (n int, err error) {
	return w32.read(r, v)
}

// ReadUint64 reads a little-endian uint64 from r.
func ReadUint64(r Reader, v *uint64) (n int, err error) {
	return w64.read(r, v)
}

// ReadInt reads a uint64 from r and checks that it fits in an int.
func ReadInt(r Reader, v *int) (n int, err error) {
	if v == nil {
		return 0, fmt.Errorf("cannot ReadInt: destination is nil")
	}

	var u uint64
	if n, err = w64.read(r, &u); err != nil {
		return
	}

	if u > math.MaxInt {
		return n, fmt.Errorf("cannot ReadInt: value %d overflows int", u)
	}

	*v = int(u)
	return
}

// ReadUint8Slice fills v from r.
func ReadUint8Slice(r Reader, v []uint8) (n int, err error) {
	return w8.readSlice(r, v)
}

// ReadUint32Slice fills v from r.
func ReadUint32Slice(r Reader, v []uint32) (n int, err error) {
	return w32.readSlice(r, v)
}

// ReadUint64Slice fills v from r.
func ReadUint64Slice(r Reader, v []uint64) (n int, err error) {
	return w64.readSlice(r, v)
}
