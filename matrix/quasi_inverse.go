package matrix

import (
	"bufio"
	"fmt"
	"io"

	"github.com/sseq/fp/prime"
	"github.com/sseq/fp/utils/buffer"
	"github.com/sseq/fp/utils/structs"
	"github.com/sseq/fp/vector"
)

// QuasiInverse is a right inverse of a linear map f, defined on its image.
// For a vector v of the image, Apply(v)*f = v.
//
// It stores the pivot table of the reduced basis of the image, or nil when
// the image is the whole target with its standard basis, and the preimages
// of the image basis vectors, one per row.
type QuasiInverse struct {
	pivots   []int
	preimage *Matrix
}

// NewQuasiInverse returns the quasi-inverse with the given image pivot table
// and preimage matrix. A nil pivot table stands for the whole target space.
func NewQuasiInverse(pivots []int, preimage *Matrix) *QuasiInverse {
	if err := checkImage(pivots, preimage.Rows()); err != nil {
		panic(fmt.Errorf("cannot NewQuasiInverse: %w", err))
	}
	return &QuasiInverse{pivots: pivots, preimage: preimage}
}

// checkImage returns an error unless pivots is the pivot table of a reduced
// basis with one vector per preimage: its k-th pivot, in column order, must
// be row k, and there must be rows pivots.
func checkImage(pivots []int, rows int) error {
	if pivots == nil {
		return nil
	}
	var rank int
	for col, r := range pivots {
		if r == NoPivot {
			continue
		}
		if r != rank {
			return fmt.Errorf("%w: column %d has pivot row %d, expected %d", ErrDimensionMismatch, col, r, rank)
		}
		rank++
	}
	if rank != rows {
		return fmt.Errorf("%w: image of dimension %d, %d preimages", ErrDimensionMismatch, rank, rows)
	}
	return nil
}

// Prime returns the prime of the quasi-inverse.
func (q *QuasiInverse) Prime() prime.ValidPrime {
	return q.preimage.p
}

// Image returns the pivot table of the image, or nil if the image is the
// whole target space.
func (q *QuasiInverse) Image() []int {
	return q.pivots
}

// Preimage returns the preimages of the image basis.
func (q *QuasiInverse) Preimage() *Matrix {
	return q.preimage
}

// SourceDimension returns the dimension of the source of the map.
func (q *QuasiInverse) SourceDimension() int {
	return q.preimage.columns
}

// TargetDimension returns the dimension of the target of the map.
func (q *QuasiInverse) TargetDimension() int {
	if q.pivots == nil {
		return q.preimage.Rows()
	}
	return len(q.pivots)
}

// Apply sets target = target + c*Q(input). The entries of input at columns
// that are not pivots of the image are ignored.
func (q *QuasiInverse) Apply(target vector.SliceMut, c uint32, input vector.Slice) {
	p := q.Prime()
	c %= p.Value()
	row := 0
	for i, x := range input.Iter() {
		if q.pivots != nil && (i >= len(q.pivots) || q.pivots[i] == NoPivot) {
			continue
		}
		if x != 0 {
			target.Add(q.preimage.Row(row), p.Product(c, x))
		}
		row++
	}
}

// BinarySize returns the serialized size of the object in bytes.
func (q *QuasiInverse) BinarySize() (size int) {
	size = 1
	if q.pivots != nil {
		size += structs.Vector[uint64](make([]uint64, len(q.pivots))).BinarySize()
	}
	return size + q.preimage.BinarySize()
}

// WriteTo writes the object on an io.Writer: a byte flagging the presence
// of the image, the image pivot table as a vector of uint64 where NoPivot
// is encoded as 2^64-1, and the preimage matrix.
// It implements the io.WriterTo interface.
func (q *QuasiInverse) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:

		var inc int64
		var flag uint8
		if q.pivots != nil {
			flag = 1
		}
		if inc, err = buffer.WriteUint8(w, flag); err != nil {
			return n + inc, fmt.Errorf("buffer.WriteUint8: %w", err)
		}
		n += inc

		if q.pivots != nil {
			pivots := make(structs.Vector[uint64], len(q.pivots))
			for i, r := range q.pivots {
				pivots[i] = uint64(int64(r))
			}
			if inc, err = pivots.WriteTo(w); err != nil {
				return n + inc, fmt.Errorf("structs.Vector[uint64].WriteTo: %w", err)
			}
			n += inc
		}

		if inc, err = q.preimage.WriteTo(w); err != nil {
			return n + inc, fmt.Errorf("matrix.Matrix.WriteTo: %w", err)
		}
		n += inc

		return n, w.Flush()

	default:
		return q.WriteTo(bufio.NewWriter(w))
	}
}

// ReadFrom reads on the object from an io.Reader. The receiver must hold a
// preimage matrix with the prime of the serialized quasi-inverse, for
// instance NewQuasiInverse(nil, New(p, 0, 0)).
// It implements the io.ReaderFrom interface.
func (q *QuasiInverse) ReadFrom(r io.Reader) (n int64, err error) {
	if q.preimage == nil {
		return 0, fmt.Errorf("cannot ReadFrom: receiver has no prime")
	}

	switch r := r.(type) {
	case buffer.Reader:

		var flag uint8
		var inc int
		if inc, err = buffer.ReadUint8(r, &flag); err != nil {
			return n + int64(inc), fmt.Errorf("buffer.ReadUint8: %w", err)
		}
		n += int64(inc)

		var pivots []int
		if flag == 1 {
			var encoded structs.Vector[uint64]
			var inc64 int64
			if inc64, err = encoded.ReadFrom(r); err != nil {
				return n + inc64, fmt.Errorf("structs.Vector[uint64].ReadFrom: %w", err)
			}
			n += inc64

			pivots = make([]int, len(encoded))
			for i, u := range encoded {
				pivots[i] = int(int64(u))
			}
		} else if flag != 0 {
			return n, fmt.Errorf("%w: invalid image flag %d", ErrCorrupted, flag)
		}

		preimage := New(q.preimage.p, 0, 0)
		var inc64 int64
		if inc64, err = preimage.ReadFrom(r); err != nil {
			return n + inc64, fmt.Errorf("matrix.Matrix.ReadFrom: %w", err)
		}
		n += inc64

		if err = checkImage(pivots, preimage.Rows()); err != nil {
			return n, fmt.Errorf("%w: %w", ErrCorrupted, err)
		}

		q.pivots, q.preimage = pivots, preimage
		return n, nil

	default:
		return q.ReadFrom(bufio.NewReader(r))
	}
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
func (q *QuasiInverse) MarshalBinary() (p []byte, err error) {
	buf := buffer.NewBufferSize(q.BinarySize())
	_, err = q.WriteTo(buf)
	return buf.Bytes(), err
}

// UnmarshalBinary decodes a slice of bytes generated by
// MarshalBinary or WriteTo on the object.
func (q *QuasiInverse) UnmarshalBinary(p []byte) (err error) {
	_, err = q.ReadFrom(buffer.NewBuffer(p))
	return
}
