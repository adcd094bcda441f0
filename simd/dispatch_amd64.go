//go:build amd64

package simd

import (
	"github.com/klauspost/cpuid/v2"
	"golang.org/x/sys/cpu"
)

// detect requires both cpuid and x/sys/cpu to agree, so that a level is only
// selected when the OS also saves the wider register state.
func detect() Level {
	switch {
	case cpuid.CPU.Supports(cpuid.AVX512F) && cpu.X86.HasAVX512F:
		return LevelAVX512
	case cpuid.CPU.Supports(cpuid.AVX2) && cpu.X86.HasAVX2:
		return LevelAVX2
	default:
		// SSE2 is baseline for amd64
		return LevelSSE2
	}
}

func archLevels() []Level {
	return []Level{LevelSSE2, LevelAVX2, LevelAVX512}
}
