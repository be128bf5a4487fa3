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

package dgemm

import "github.com/ajroetker/go-dgemm/hwy"

// Micro-kernels. Each accumulates the contribution of one Tile into C:
//
//	C[i,j] += Σ_{k in [K0,K1)} A[i,k]·B[k,j]   for i in [I0,I1), j in [J0,J1)
//
// All matrices are n×n column-major with leading dimension n. The dot
// kernel receives Aᵀ instead of A. Accumulation order differs between
// forms, so results agree only to rounding.

// tileKernel is a micro-kernel with its lane width and unroll bound.
type tileKernel func(t Tile, n int, a, b, c []float64)

// naiveTile is the reference triple loop with the k loop unrolled u-wide.
func naiveTile(t Tile, n, u int, a, b, c []float64) {
	for j := t.J0; j < t.J1; j++ {
		bj := b[j*n : (j+1)*n]
		cj := c[j*n : (j+1)*n]
		for i := t.I0; i < t.I1; i++ {
			sum := cj[i]
			k := t.K0
			for ; k+u <= t.K1; k += u {
				for kk := k; kk < k+u; kk++ {
					sum += a[i+kk*n] * bj[kk]
				}
			}
			for ; k < t.K1; k++ {
				sum += a[i+k*n] * bj[k]
			}
			cj[i] = sum
		}
	}
}

// dotTile computes each C[i,j] as a dot product of row i of A (column i of
// at) with column j of B. u accumulator groups cover u*w values of k per
// step, then single groups, then scalar k.
func dotTile[V hwy.ReducibleVector[V]](ls laneSet[V], t Tile, n, u int, at, b, c []float64) {
	w := ls.width
	step := u * w
	var acc [MaxUnroll]V
	var zero V
	for j := t.J0; j < t.J1; j++ {
		bj := b[j*n : (j+1)*n]
		for i := t.I0; i < t.I1; i++ {
			ai := at[i*n : (i+1)*n]
			for g := range u {
				acc[g] = zero
			}

			k := t.K0
			for ; k+step <= t.K1; k += step {
				for g := range u {
					off := k + g*w
					acc[g] = ls.load(ai[off:]).MulAdd(ls.load(bj[off:]), acc[g])
				}
			}
			for ; k+w <= t.K1; k += w {
				acc[0] = ls.load(ai[k:]).MulAdd(ls.load(bj[k:]), acc[0])
			}

			for g := 1; g < u; g++ {
				acc[0] = acc[0].Add(acc[g])
			}
			sum := acc[0].ReduceSum()
			for ; k < t.K1; k++ {
				sum += ai[k] * bj[k]
			}
			c[i+j*n] += sum
		}
	}
}

// broadcastTile walks C in row groups of u*w. For each column j it loads u
// accumulators from C, multiply-adds broadcast B[k,j] with u W-wide slices
// of A's column k for every k, and stores the accumulators back. Rows left
// over are done one group at a time, then as scalars.
func broadcastTile[V hwy.Float64Vector[V]](ls laneSet[V], t Tile, n, u int, a, b, c []float64) {
	w := ls.width
	step := u * w
	var acc [MaxUnroll]V

	i := t.I0
	for ; i+step <= t.I1; i += step {
		for j := t.J0; j < t.J1; j++ {
			cj := c[j*n+i : j*n+i+step]
			for g := range u {
				acc[g] = ls.load(cj[g*w:])
			}
			for k := t.K0; k < t.K1; k++ {
				bkj := ls.broadcast(b[k+j*n])
				ak := a[k*n+i : k*n+i+step]
				for g := range u {
					acc[g] = ls.load(ak[g*w:]).MulAdd(bkj, acc[g])
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
			sum := ls.load(cj)
			for k := t.K0; k < t.K1; k++ {
				sum = ls.load(a[k*n+i:]).MulAdd(ls.broadcast(b[k+j*n]), sum)
			}
			sum.StoreSlice(cj)
		}
	}

	if i < t.I1 {
		naiveTile(Tile{I0: i, I1: t.I1, J0: t.J0, J1: t.J1, K0: t.K0, K1: t.K1}, n, 1, a, b, c)
	}
}
