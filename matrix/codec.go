package matrix

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/zeebo/blake3"

	"github.com/sseq/fp/limb"
	"github.com/sseq/fp/utils/buffer"
	"github.com/sseq/fp/vector"
)

// BinarySize returns the serialized size of the object in bytes.
func (m *Matrix) BinarySize() int {
	return 16 + 8*len(m.rows)*limb.Number(m.p, m.columns)
}

// WriteTo writes the object on an io.Writer: the number of rows and of
// columns as uint64, followed by the packed limbs of every row,
// little-endian. Neither the prime nor the pivot table are written.
// It implements the io.WriterTo interface, and will write exactly
// object.BinarySize() bytes on w.
//
// Unless w implements the buffer.Writer interface, it is wrapped into a
// bufio.Writer.
func (m *Matrix) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:

		var inc int64
		if inc, err = buffer.WriteInt(w, len(m.rows)); err != nil {
			return n + inc, fmt.Errorf("buffer.WriteInt: %w", err)
		}
		n += inc

		if inc, err = buffer.WriteInt(w, m.columns); err != nil {
			return n + inc, fmt.Errorf("buffer.WriteInt: %w", err)
		}
		n += inc

		for i := range m.rows {
			if inc, err = buffer.WriteUint64Slice(w, m.limbs(i)); err != nil {
				return n + inc, fmt.Errorf("buffer.WriteUint64Slice: %w", err)
			}
			n += inc
		}

		return n, w.Flush()

	default:
		return m.WriteTo(bufio.NewWriter(w))
	}
}

// ReadFrom reads on the object from an io.Reader. The receiver must have
// been created with the prime of the serialized matrix, for instance with
// New(p, 0, 0). It implements the io.ReaderFrom interface.
//
// Unless r implements the buffer.Reader interface, it is wrapped into a
// bufio.Reader.
func (m *Matrix) ReadFrom(r io.Reader) (n int64, err error) {
	if m.p.IsZero() {
		return 0, fmt.Errorf("cannot ReadFrom: receiver has no prime")
	}

	switch r := r.(type) {
	case buffer.Reader:

		var rows, columns, inc int
		if inc, err = buffer.ReadInt(r, &rows); err != nil {
			return n + int64(inc), fmt.Errorf("buffer.ReadInt: %w", err)
		}
		n += int64(inc)

		if inc, err = buffer.ReadInt(r, &columns); err != nil {
			return n + int64(inc), fmt.Errorf("buffer.ReadInt: %w", err)
		}
		n += int64(inc)

		if rows < 0 || columns < 0 || columns/limb.EntriesPerLimb(m.p) >= vector.MaxDecodeLimbs {
			return n, fmt.Errorf("%w: %d x %d matrix", ErrCorrupted, rows, columns)
		}
		// empty rows are charged one limb
		if nl := max(limb.Number(m.p, columns), 1); rows > vector.MaxDecodeLimbs/nl {
			return n, fmt.Errorf("%w: %d x %d matrix", ErrCorrupted, rows, columns)
		}

		var decoded []*vector.Vector
		for i := 0; i < rows; i++ {
			var row *vector.Vector
			row, inc, err = vector.ReadNew(r, m.p, columns)
			n += int64(inc)
			if errors.Is(err, vector.ErrCorrupted) {
				return n, fmt.Errorf("%w: row %d: %w", ErrCorrupted, i, err)
			} else if err != nil {
				return n, fmt.Errorf("vector.ReadNew: row %d: %w", i, err)
			}
			decoded = append(decoded, row)
		}

		m.rows = decoded
		m.columns = columns
		m.pivots = nil
		return n, nil

	default:
		return m.ReadFrom(bufio.NewReader(r))
	}
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
func (m *Matrix) MarshalBinary() (p []byte, err error) {
	buf := buffer.NewBufferSize(m.BinarySize())
	_, err = m.WriteTo(buf)
	return buf.Bytes(), err
}

// UnmarshalBinary decodes a slice of bytes generated by
// MarshalBinary or WriteTo on the object.
func (m *Matrix) UnmarshalBinary(p []byte) (err error) {
	_, err = m.ReadFrom(buffer.NewBuffer(p))
	return
}

// Digest returns the BLAKE3 hash of the dimensions and rows of the matrix.
// Like [vector.Vector.Digest], it depends on the host byte order.
func (m *Matrix) Digest() (digest [32]byte) {
	h := blake3.New()
	var header [16]byte
	binary.LittleEndian.PutUint64(header[:8], uint64(len(m.rows)))
	binary.LittleEndian.PutUint64(header[8:], uint64(m.columns))
	// blake3.Hasher.Write never returns an error
	_, _ = h.Write(header[:])
	for _, row := range m.rows {
		row.HashInto(h)
	}
	copy(digest[:], h.Sum(nil))
	return
}
