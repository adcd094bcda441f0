package structs

import (
	"bufio"
	"fmt"
	"io"
	"slices"

	"github.com/sseq/fp/utils/buffer"
)

// Vector is a serializable slice of fixed-width words. Its binary form is
// the length as a uint64 followed by the components, all little-endian.
type Vector[T Word] []T

// CopyNew returns a deep copy of the object.
func (v Vector[T]) CopyNew() Vector[T] {
	return slices.Clone(v)
}

// BinarySize returns the serialized size of the object in bytes.
func (v Vector[T]) BinarySize() (size int) {
	var t T
	switch any(t).(type) {
	case uint8:
		return 8 + len(v)
	case uint32:
		return 8 + 4*len(v)
	default:
		return 8 + 8*len(v)
	}
}

// WriteTo writes the object on an io.Writer. It implements the io.WriterTo
// interface, and will write exactly object.BinarySize() bytes on w.
//
// Unless w implements buffer.Writer, it is wrapped into a bufio.Writer.
func (v Vector[T]) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:

		var inc int64
		if inc, err = buffer.WriteInt(w, len(v)); err != nil {
			return inc, fmt.Errorf("buffer.WriteInt: %w", err)
		}
		n += inc

		switch s := any([]T(v)).(type) {
		case []uint8:
			inc, err = buffer.WriteUint8Slice(w, s)
		case []uint32:
			inc, err = buffer.WriteUint32Slice(w, s)
		case []uint64:
			inc, err = buffer.WriteUint64Slice(w, s)
		}

		if err != nil {
			return n + inc, fmt.Errorf("cannot write components: %w", err)
		}

		return n + inc, w.Flush()

	default:
		return v.WriteTo(bufio.NewWriter(w))
	}
}

// ReadFrom reads the object from an io.Reader. It implements the
// io.ReaderFrom interface.
//
// Unless r implements buffer.Reader, it is wrapped into a bufio.Reader.
func (v *Vector[T]) ReadFrom(r io.Reader) (n int64, err error) {
	switch r := r.(type) {
	case buffer.Reader:

		var size, inc int
		if inc, err = buffer.ReadInt(r, &size); err != nil {
			return int64(inc), fmt.Errorf("buffer.ReadInt: %w", err)
		}
		n += int64(inc)

		if size < 0 || size > MaxDecodeLen {
			return n, fmt.Errorf("%w: vector of %d components", ErrCorrupted, size)
		}

		// components are allocated as they arrive
		decoded := make([]T, 0, min(size, readChunk))
		for len(decoded) < size {
			k := min(size-len(decoded), readChunk)
			decoded = slices.Grow(decoded, k)
			chunk := decoded[len(decoded) : len(decoded)+k]

			switch s := any(chunk).(type) {
			case []uint8:
				inc, err = buffer.ReadUint8Slice(r, s)
			case []uint32:
				inc, err = buffer.ReadUint32Slice(r, s)
			case []uint64:
				inc, err = buffer.ReadUint64Slice(r, s)
			}
			n += int64(inc)

			if err != nil {
				return n, fmt.Errorf("cannot read components: %w", err)
			}
			decoded = decoded[:len(decoded)+k]
		}

		*v = decoded
		return n, nil

	default:
		return v.ReadFrom(bufio.NewReader(r))
	}
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
func (v Vector[T]) MarshalBinary() (p []byte, err error) {
	buf := buffer.NewBufferSize(v.BinarySize())
	_, err = v.WriteTo(buf)
	return buf.Bytes(), err
}

// UnmarshalBinary decodes a slice of bytes generated by
// MarshalBinary or WriteTo on the object.
func (v *Vector[T]) UnmarshalBinary(p []byte) (err error) {
	_, err = v.ReadFrom(buffer.NewBuffer(p))
	return
}

// Equal performs a deep equal.
func (v Vector[T]) Equal(other Vector[T]) bool {
	return slices.Equal(v, other)
}
