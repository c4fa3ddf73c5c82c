//go:build arm64

package simd

import "golang.org/x/sys/cpu"

func init() {
	if NoSimdEnv() {
		setScalarMode()
		return
	}

	// ARM64 (AArch64) always has NEON (ASIMD); it is part of the ARMv8-A
	// base architecture. The cpu package check is kept for consistency.
	if cpu.ARM64.HasASIMD {
		currentLevel = LevelNEON
		currentWidth = 16 // NEON is 128-bit.
	} else {
		setScalarMode()
	}
}
