//go:build fpdebug

package vector

// debugChecks enables the validation of entries written through SetEntry
// and FromResidues.
const debugChecks = true
