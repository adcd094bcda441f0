package vector

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"slices"

	"github.com/zeebo/blake3"

	"github.com/sseq/fp/limb"
	"github.com/sseq/fp/prime"
	"github.com/sseq/fp/simd"
	"github.com/sseq/fp/utils/buffer"
)

// BinarySize returns the serialized size of the object in bytes.
func (v *Vector) BinarySize() int {
	return 8 + 8*len(v.limbs)
}

// WriteTo writes the object on an io.Writer: the length as a uint64
// followed by the packed limbs, little-endian. The prime is not written.
// It implements the io.WriterTo interface, and will write exactly
// object.BinarySize() bytes on w.
//
// Unless w implements the buffer.Writer interface, it is wrapped into a
// bufio.Writer.
func (v *Vector) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:

		var inc int64
		if inc, err = buffer.WriteInt(w, v.len); err != nil {
			return n + inc, fmt.Errorf("buffer.WriteInt: %w", err)
		}
		n += inc

		if inc, err = buffer.WriteUint64Slice(w, v.Limbs()); err != nil {
			return n + inc, fmt.Errorf("buffer.WriteUint64Slice: %w", err)
		}
		n += inc

		return n, w.Flush()

	default:
		return v.WriteTo(bufio.NewWriter(w))
	}
}

// ReadFrom reads on the object from an io.Reader. The receiver must have
// been created with the prime of the serialized vector, for instance with
// New(p, 0). It implements the io.ReaderFrom interface.
//
// Unless r implements the buffer.Reader interface, it is wrapped into a
// bufio.Reader.
func (v *Vector) ReadFrom(r io.Reader) (n int64, err error) {
	if v.p.IsZero() {
		return 0, fmt.Errorf("cannot ReadFrom: receiver has no prime")
	}

	switch r := r.(type) {
	case buffer.Reader:

		var dim, inc int
		if inc, err = buffer.ReadInt(r, &dim); err != nil {
			return int64(inc), fmt.Errorf("buffer.ReadInt: %w", err)
		}
		n += int64(inc)

		var w *Vector
		w, inc, err = ReadNew(r, v.p, dim)
		n += int64(inc)
		if err != nil {
			return n, err
		}

		v.len, v.limbs, v.pending = w.len, w.limbs, 0
		return n, nil

	default:
		return v.ReadFrom(bufio.NewReader(r))
	}
}

// MaxDecodeLimbs is the largest number of limbs a decoder accepts for a
// single vector or matrix.
const MaxDecodeLimbs = 1 << 26

// readChunk is the number of limbs allocated ahead of the data read.
const readChunk = 1 << 13

// ReadNew reads the packed limbs of a vector of length dim mod p, as written
// by WriteTo after the length, and validates them. Memory is allocated as
// the limbs arrive, so a corrupted length fails on the truncated stream
// instead of allocating it upfront.
func ReadNew(r buffer.Reader, p prime.ValidPrime, dim int) (v *Vector, n int, err error) {
	if dim < 0 || dim/limb.EntriesPerLimb(p) >= MaxDecodeLimbs {
		return nil, 0, fmt.Errorf("%w: vector length %d", ErrCorrupted, dim)
	}

	nl := limb.Number(p, dim)
	limbs := make([]limb.Limb, 0, min(nl, readChunk))
	for len(limbs) < nl {
		k := min(nl-len(limbs), readChunk)
		limbs = slices.Grow(limbs, k)

		var inc int
		inc, err = buffer.ReadUint64Slice(r, limbs[len(limbs):len(limbs)+k])
		n += inc
		if err != nil {
			return nil, n, fmt.Errorf("buffer.ReadUint64Slice: %w", err)
		}
		limbs = limbs[:len(limbs)+k]
	}

	v = &Vector{p: p, len: dim, limbs: limbs}
	if err = v.Validate(); err != nil {
		return nil, n, err
	}
	return v, n, nil
}

// Validate checks that every entry is reduced and that the bits past the
// last entry are zero.
func (v *Vector) Validate() error {
	for i, mask := range limbMasks(v.p, 0, v.len) {
		l := v.limbs[i]
		if l&^mask != 0 {
			return fmt.Errorf("%w: limb %d has bits set outside of the vector", ErrCorrupted, i)
		}
		if !limb.IsReduced(v.p, l) {
			return fmt.Errorf("%w: limb %d holds unreduced entries", ErrCorrupted, i)
		}
	}
	return nil
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
func (v *Vector) MarshalBinary() (p []byte, err error) {
	buf := buffer.NewBufferSize(v.BinarySize())
	_, err = v.WriteTo(buf)
	return buf.Bytes(), err
}

// UnmarshalBinary decodes a slice of bytes generated by
// MarshalBinary or WriteTo on the object.
func (v *Vector) UnmarshalBinary(p []byte) (err error) {
	_, err = v.ReadFrom(buffer.NewBuffer(p))
	return
}

// Digest returns the BLAKE3 hash of the prime, the length and the packed
// limbs of v. Limbs are hashed in host byte order, so digests are only
// comparable between hosts of the same endianness.
func (v *Vector) Digest() (digest [32]byte) {
	h := blake3.New()
	v.HashInto(h)
	copy(digest[:], h.Sum(nil))
	return
}

// HashInto writes the prime, the length and the packed limbs of v into h.
func (v *Vector) HashInto(h *blake3.Hasher) {
	var header [16]byte
	binary.LittleEndian.PutUint64(header[:8], v.p.Uint64())
	binary.LittleEndian.PutUint64(header[8:], uint64(v.len))
	// blake3.Hasher.Write never returns an error
	_, _ = h.Write(header[:])
	_, _ = h.Write(simd.AsBytes(v.Limbs()))
}

