//go:build fpdebug

package vector

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDebugChecks(t *testing.T) {
	for _, p := range testPrimes() {
		t.Run(testString("SetEntry", p), func(t *testing.T) {
			v := New(p, 10)
			require.Panics(t, func() { v.SetEntry(3, p.Value()) })
			require.NotPanics(t, func() { v.SetEntry(3, p.Value()-1) })
		})

		t.Run(testString("FromResidues", p), func(t *testing.T) {
			require.Panics(t, func() { FromResidues(p, []uint32{0, p.Value()}) })
		})
	}
}
