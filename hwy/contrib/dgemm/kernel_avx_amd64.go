// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build amd64 && goexperiment.simd

package dgemm

import "simd/archsimd"

// broadcastTile_AVX2 is broadcastTile on archsimd.Float64x4 registers.
func broadcastTile_AVX2(t Tile, n, u int, a, b, c []float64) {
	const w = 4
	step := u * w
	var acc [MaxUnroll]archsimd.Float64x4

	i := t.I0
	for ; i+step <= t.I1; i += step {
		for j := t.J0; j < t.J1; j++ {
			cj := c[j*n+i : j*n+i+step]
			for g := range u {
				acc[g] = archsimd.LoadFloat64x4Slice(cj[g*w:])
			}
			for k := t.K0; k < t.K1; k++ {
				bkj := archsimd.BroadcastFloat64x4(b[k+j*n])
				ak := a[k*n+i : k*n+i+step]
				for g := range u {
					acc[g] = archsimd.LoadFloat64x4Slice(ak[g*w:]).MulAdd(bkj, acc[g])
				}
			}
			for g := range u {
				acc[g].StoreSlice(cj[g*w:])
			}
		}
	}

	for ; i+w <= t.I1; i += w {
		for j := t.J0; j < t.J1; j++ {
			cj := c[j*n+i : j*n+i+w]
			sum := archsimd.LoadFloat64x4Slice(cj)
			for k := t.K0; k < t.K1; k++ {
				sum = archsimd.LoadFloat64x4Slice(a[k*n+i:]).MulAdd(archsimd.BroadcastFloat64x4(b[k+j*n]), sum)
			}
			sum.StoreSlice(cj)
		}
	}

	if i < t.I1 {
		naiveTile(Tile{I0: i, I1: t.I1, J0: t.J0, J1: t.J1, K0: t.K0, K1: t.K1}, n, 1, a, b, c)
	}
}

// broadcastTile_AVX512 is broadcastTile on archsimd.Float64x8 registers.
func broadcastTile_AVX512(t Tile, n, u int, a, b, c []float64) {
	const w = 8
	step := u * w
	var acc [MaxUnroll]archsimd.Float64x8

	i := t.I0
	for ; i+step <= t.I1; i += step {
		for j := t.J0; j < t.J1; j++ {
			cj := c[j*n+i : j*n+i+step]
			for g := range u {
				acc[g] = archsimd.LoadFloat64x8Slice(cj[g*w:])
			}
			for k := t.K0; k < t.K1; k++ {
				bkj := archsimd.BroadcastFloat64x8(b[k+j*n])
				ak := a[k*n+i : k*n+i+step]
				for g := range u {
					acc[g] = archsimd.LoadFloat64x8Slice(ak[g*w:]).MulAdd(bkj, acc[g])
				}
			}
			for g := range u {
				acc[g].StoreSlice(cj[g*w:])
			}
		}
	}

	for ; i+w <= t.I1; i += w {
		for j := t.J0; j < t.J1; j++ {
			cj := c[j*n+i : j*n+i+w]
			sum := archsimd.LoadFloat64x8Slice(cj)
			for k := t.K0; k < t.K1; k++ {
				sum = archsimd.LoadFloat64x8Slice(a[k*n+i:]).MulAdd(archsimd.BroadcastFloat64x8(b[k+j*n]), sum)
			}
			sum.StoreSlice(cj)
		}
	}

	if i < t.I1 {
		naiveTile(Tile{I0: i, I1: t.I1, J0: t.J0, J1: t.J1, K0: t.K0, K1: t.K1}, n, 1, a, b, c)
	}
}
