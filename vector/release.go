//go:build !fpdebug

package vector

const debugChecks = false
