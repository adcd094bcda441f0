// Package structs implements generic containers shared by the fp packages:
// serializable slices of fixed-width words and typed object pools.
package structs

import "errors"

// ErrCorrupted is returned when decoding a length that is out of range.
var ErrCorrupted = errors.New("corrupted data")

// MaxDecodeLen is the largest number of components a decoded [Vector] may
// have.
const MaxDecodeLen = 1 << 26

// readChunk is the number of components allocated ahead of the data read.
const readChunk = 1 << 13

// Word is the set of component types of a serializable [Vector].
type Word interface {
	uint8 | uint32 | uint64
}
