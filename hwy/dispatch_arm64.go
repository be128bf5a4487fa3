//go:build arm64

package hwy

import "golang.org/x/sys/cpu"

func init() {
	// Check for HWY_NO_SIMD environment variable first
	if NoSimdEnv() {
		currentLevel = DispatchScalar
		currentWidth = 16
		currentName = "scalar"
		return
	}

	// ARM64 (AArch64) always has NEON (ASIMD) available.
	// It's part of the ARMv8-A base architecture.
	if cpu.ARM64.HasASIMD {
		currentLevel = DispatchNEON
		currentWidth = 16 // NEON is 128-bit (16 bytes)
		currentName = "neon"
	} else {
		// Fallback to scalar (should never happen on ARMv8+)
		currentLevel = DispatchScalar
		currentWidth = 16
		currentName = "scalar"
	}
}

func detectFeatureNames() []string {
	var names []string
	if cpu.ARM64.HasASIMD {
		names = append(names, "asimd")
	}
	if cpu.ARM64.HasFP {
		names = append(names, "fp")
	}
	if cpu.ARM64.HasSVE {
		names = append(names, "sve")
	}
	return names
}
