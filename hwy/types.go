// Package hwy provides the runtime CPU dispatch and the float64 lane groups
// used by the DGEMM kernels.
//
// Dispatch detects the widest usable SIMD level once at init time (AVX-512,
// AVX2, SSE2, NEON or scalar) and exposes it through CurrentLevel and the
// SupportsWidth gate. Lane groups of 1, 2, 4 and 8 doubles are portable Go
// arrays whose API mirrors simd/archsimd, so kernels written against them can
// be rebound to hardware vectors on GOEXPERIMENT=simd builds.
//
// Basic usage:
//
//	import "github.com/ajroetker/go-dgemm/hwy"
//
//	if hwy.SupportsWidth(hwy.FixedTag256[float64]{}.Width()) {
//		acc := hwy.LoadF64x4Slice(c)
//		acc = hwy.LoadF64x4Slice(a).MulAdd(hwy.BroadcastF64x4(b), acc)
//		acc.StoreSlice(c)
//	}
package hwy

// Lanes is the element constraint of the tags and MaxLanes. The kernels
// only use float64; float32 keeps lane counts comparable in listings.
type Lanes interface {
	~float32 | ~float64
}
