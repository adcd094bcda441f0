package simd

import (
	"github.com/alecthomas/unsafeslice"
)

// AsBytes returns the limbs as a byte slice sharing their memory, in host
// byte order. This is the only place where limb buffers are reinterpreted;
// the result must not outlive limbs nor be written to.
func AsBytes(limbs []uint64) []byte {
	if len(limbs) == 0 {
		return nil
	}
	return unsafeslice.ByteSliceFromUint64Slice(limbs)
}
