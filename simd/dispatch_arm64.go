//go:build arm64

package simd

import (
	"golang.org/x/sys/cpu"
)

func detect() Level {
	if cpu.ARM64.HasASIMD {
		return LevelNEON
	}
	return LevelScalar
}

func archLevels() []Level {
	return []Level{LevelNEON}
}
