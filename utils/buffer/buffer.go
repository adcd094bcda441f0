// Package buffer implements the little-endian wire format of limbs, residues
// and lengths. Encoders write straight into the free space of a Writer and
// decoders read straight from the buffered bytes of a Reader, so nothing is
// copied through intermediate slices.
package buffer

import (
	"errors"
	"fmt"
	"io"
)

// ErrShortBuffer is returned when a fixed-size Buffer cannot hold a write.
var ErrShortBuffer = errors.New("buffer too small")

// Writer is implemented by *bufio.Writer and *Buffer.
type Writer interface {
	io.Writer
	Flush() (err error)
	AvailableBuffer() []byte
	Available() int
}

// Reader is implemented by *bufio.Reader and *Buffer.
type Reader interface {
	io.Reader
	Size() int
	Peek(n int) ([]byte, error)
	Discard(n int) (discarded int, err error)
}

// Buffer is a Writer and Reader over a byte slice of fixed length, used by
// the MarshalBinary and UnmarshalBinary methods of the codecs. Writes fill
// the slice from its start; reads consume it from its start.
type Buffer struct {
	data []byte
	// written and read are the write and read offsets in data.
	written, read int
}

// NewBuffer returns a Buffer reading data. Writes overwrite data.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

// NewBufferSize returns an empty Buffer that can hold size bytes.
func NewBufferSize(size int) *Buffer {
	return &Buffer{data: make([]byte, size)}
}

// Write appends p, or fails without writing if p does not fit.
func (b *Buffer) Write(p []byte) (n int, err error) {
	if len(p) > b.Available() {
		return 0, fmt.Errorf("cannot Write: %w: %d bytes, %d available", ErrShortBuffer, len(p), b.Available())
	}
	n = copy(b.data[b.written:], p)
	b.written += n
	return
}

// Flush is a no-op: bytes are in place as soon as they are written.
func (b *Buffer) Flush() (err error) {
	return nil
}

// AvailableBuffer returns the free space of b as an empty slice to append
// to, valid until the next Write.
func (b *Buffer) AvailableBuffer() []byte {
	return b.data[b.written:b.written]
}

// Available returns the number of bytes that can still be written.
func (b *Buffer) Available() int {
	return len(b.data) - b.written
}

// Bytes returns the bytes written so far.
func (b *Buffer) Bytes() []byte {
	return b.data[:b.written]
}

// Read copies the unread bytes into p and returns io.EOF if they do not
// fill it.
func (b *Buffer) Read(p []byte) (n int, err error) {
	n = copy(p, b.data[b.read:])
	b.read += n
	if n < len(p) {
		err = io.EOF
	}
	return
}

// Size returns the number of unread bytes.
func (b *Buffer) Size() int {
	return len(b.data) - b.read
}

// Peek returns the next n unread bytes without consuming them, or all of
// them and io.EOF if fewer are left.
func (b *Buffer) Peek(n int) ([]byte, error) {
	if n > b.Size() {
		return b.data[b.read:], io.EOF
	}
	return b.data[b.read : b.read+n], nil
}

// Discard consumes the next n unread bytes, or all of them and io.EOF if
// fewer are left.
func (b *Buffer) Discard(n int) (discarded int, err error) {
	if n > b.Size() {
		discarded = b.Size()
		b.read = len(b.data)
		return discarded, io.EOF
	}
	b.read += n
	return n, nil
}
