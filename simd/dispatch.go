// Package simd implements the word-parallel kernels of the fp packages and
// selects, once per process, the variant matching the widest vector
// registers of the CPU.
//
// Every variant is a pure Go kernel that processes as many limbs per step as
// a register of the corresponding width holds, with a scalar loop for the
// remainder. All variants produce bit-identical results to the scalar one.
package simd

import (
	"github.com/sseq/fp/config"
	"github.com/sseq/fp/utils/logging"
)

// Level represents a SIMD instruction set width.
type Level int

const (
	// LevelScalar indicates no SIMD, one limb at a time.
	LevelScalar Level = iota

	// LevelSSE2 indicates 128-bit registers (x86-64 baseline).
	LevelSSE2

	// LevelNEON indicates ARM 128-bit registers.
	LevelNEON

	// LevelAVX2 indicates 256-bit registers.
	LevelAVX2

	// LevelAVX512 indicates 512-bit registers.
	LevelAVX512
)

// AllLevels lists every level, in increasing width.
var AllLevels = []Level{LevelScalar, LevelSSE2, LevelNEON, LevelAVX2, LevelAVX512}

// String returns a human-readable name for the dispatch level.
func (l Level) String() string {
	switch l {
	case LevelScalar:
		return "scalar"
	case LevelSSE2:
		return "sse2"
	case LevelNEON:
		return "neon"
	case LevelAVX2:
		return "avx2"
	case LevelAVX512:
		return "avx512"
	default:
		return "unknown"
	}
}

// Lanes returns the number of limbs held by one register of the level.
func (l Level) Lanes() int {
	switch l {
	case LevelSSE2, LevelNEON:
		return 2
	case LevelAVX2:
		return 4
	case LevelAVX512:
		return 8
	default:
		return 1
	}
}

// current is the detected level for this runtime. It is set once by init and
// read-only afterwards.
var current Level

func init() {
	log := logging.Named("simd")
	if err := config.GlobalErr(); err != nil {
		log.Error(err, "ignoring the FP_* environment, using the default configuration")
	}

	if config.Global().NoSIMD {
		current = LevelScalar
	} else {
		current = detect()
	}
	log.V(1).Info("selected dispatch level", "level", current.String())
}

// CurrentLevel returns the level used by the dispatched kernels.
func CurrentLevel() Level {
	return current
}

// Supported returns the levels the CPU can run natively, including
// LevelScalar.
func Supported() (levels []Level) {
	levels = []Level{LevelScalar}
	for _, l := range archLevels() {
		if l <= current {
			levels = append(levels, l)
		}
	}
	return
}
