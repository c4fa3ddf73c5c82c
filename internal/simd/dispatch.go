// Package simd detects the SIMD capability of the host CPU and exposes the
// register geometry (width, lanes per element type) used by the register
// tile executor to size full-width tiles.
package simd

import "os"

// Level represents the SIMD instruction set selected for this runtime.
type Level int

const (
	// LevelScalar indicates no SIMD; tiles are sized for plain Go loops.
	LevelScalar Level = iota

	// LevelSSE2 indicates SSE2 (128-bit SIMD, x86-64 baseline).
	LevelSSE2

	// LevelAVX2 indicates AVX2 (256-bit SIMD).
	LevelAVX2

	// LevelAVX512 indicates AVX-512 (512-bit SIMD).
	LevelAVX512

	// LevelNEON indicates ARM NEON (128-bit SIMD).
	LevelNEON
)

// String returns a human-readable name for the level.
func (l Level) String() string {
	switch l {
	case LevelScalar:
		return "scalar"
	case LevelSSE2:
		return "sse2"
	case LevelAVX2:
		return "avx2"
	case LevelAVX512:
		return "avx512"
	case LevelNEON:
		return "neon"
	default:
		return "unknown"
	}
}

// currentLevel and currentWidth are set by init() in dispatch_*.go files.
var (
	currentLevel Level
	currentWidth int
)

// CurrentLevel returns the SIMD instruction set selected at startup.
func CurrentLevel() Level { return currentLevel }

// CurrentWidth returns the register width in bytes.
// For example: 16 for SSE2/NEON, 32 for AVX2, 64 for AVX-512.
func CurrentWidth() int { return currentWidth }

// Lanes returns the number of elements of the given byte size that fit in
// one register. Scalar mode still reports 16-byte vectors so tile geometry
// stays consistent across builds.
func Lanes(elemSize int) int {
	if elemSize <= 0 {
		return 1
	}
	n := currentWidth / elemSize
	if n < 1 {
		n = 1
	}
	return n
}

// NoSimdEnv checks if the STRIDE_NO_SIMD environment variable is set.
// When set, stride sizes tiles for scalar execution regardless of CPU
// capabilities. Useful for testing and debugging.
func NoSimdEnv() bool {
	return os.Getenv("STRIDE_NO_SIMD") != ""
}

func setScalarMode() {
	currentLevel = LevelScalar
	currentWidth = 16 // Use 16-byte vectors even in scalar mode for consistency.
}
