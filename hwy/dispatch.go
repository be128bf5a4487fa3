package hwy

import (
	"os"
	"strconv"
)

// DispatchLevel represents the SIMD instruction set detected at runtime.
type DispatchLevel int

const (
	// DispatchScalar indicates no SIMD, pure Go implementation.
	DispatchScalar DispatchLevel = iota

	// DispatchSSE2 indicates SSE2 instructions (x86-64 baseline).
	DispatchSSE2

	// DispatchAVX2 indicates AVX2 + FMA instructions (256-bit SIMD).
	DispatchAVX2

	// DispatchAVX512 indicates AVX-512F instructions (512-bit SIMD).
	DispatchAVX512

	// DispatchNEON indicates ARM NEON instructions (128-bit SIMD).
	DispatchNEON
)

// String returns a human-readable name for the dispatch level.
func (d DispatchLevel) String() string {
	switch d {
	case DispatchScalar:
		return "scalar"
	case DispatchSSE2:
		return "sse2"
	case DispatchAVX2:
		return "avx2"
	case DispatchAVX512:
		return "avx512"
	case DispatchNEON:
		return "neon"
	default:
		return "unknown"
	}
}

// currentLevel is the detected SIMD level for this runtime.
// Set by init() in dispatch_*.go files.
var currentLevel DispatchLevel

// currentWidth is the SIMD register width in bytes for the current level.
// Set by init() in dispatch_*.go files.
var currentWidth int

// currentName is the human-readable name of the current SIMD level.
// Set by init() in dispatch_*.go files.
var currentName string

// CurrentLevel returns the SIMD instruction set being used.
func CurrentLevel() DispatchLevel {
	return currentLevel
}

// CurrentWidth returns the SIMD register width in bytes.
// For example: 16 for SSE2/NEON, 32 for AVX2, 64 for AVX-512.
func CurrentWidth() int {
	return currentWidth
}

// CurrentName returns a human-readable name for the current SIMD target.
// For example: "avx2", "neon", "scalar".
func CurrentName() string {
	return currentName
}

// NoSimdEnv checks if the HWY_NO_SIMD environment variable is set.
// When set, dispatch reports the scalar level regardless of CPU capabilities,
// which in turn makes SupportsWidth reject anything wider than 128 bits.
// This is useful for testing and debugging.
func NoSimdEnv() bool {
	val := os.Getenv("HWY_NO_SIMD")
	if val == "" {
		return false
	}
	// Any non-empty value is considered true, but also parse as bool
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

// SupportsWidth reports whether vectors of the given width in bytes can be
// executed on this CPU. Widths of 128 bits and below are always supported:
// every target either has 128-bit registers or runs the portable lanes.
// Only 8, 16, 32 and 64 are valid widths.
func SupportsWidth(bytes int) bool {
	switch bytes {
	case 8, 16:
		return true
	case 32, 64:
		return bytes <= currentWidth
	default:
		return false
	}
}

// Features returns the CPU feature names relevant to dispatch, as reported
// by golang.org/x/sys/cpu.
func Features() []string {
	return detectFeatureNames()
}

// MaxLanes returns how many T fit in the current SIMD width, e.g. 4
// float64 lanes under AVX2.
func MaxLanes[T Lanes]() int {
	return lanesIn[T](currentWidth)
}
