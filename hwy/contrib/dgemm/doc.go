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

// Package dgemm computes the dense double-precision product C += A*B for
// square matrices stored column-major, through a table of kernels that range
// from the naive triple loop to cache-blocked, multi-threaded vector code.
//
// Every kernel is one point in a small design space:
//
//   - form: naive (strided A), dot (A repacked as its transpose, dot
//     products along k), or broadcast (B[k,j] broadcast against W-wide
//     column slices of A)
//   - lane width W: 1, 2, 4 or 8 doubles (64 to 512 bits)
//   - unroll U: independent accumulator groups per step
//   - blocking: BlockSize tiles walked column block, row block, k block
//   - parallel: column blocks distributed over goroutines
//
// Non-conforming dimensions are padded with zeros up to a multiple of the
// kernel's factor and the leading N×N block of the result is copied back.
//
// Example usage:
//
//	// Element (i, j) lives at i + j*n.
//	a := []float64{1, 3, 2, 4} // [[1 2] [3 4]]
//	b := []float64{5, 7, 6, 8} // [[5 6] [7 8]]
//	c := make([]float64, 4)
//
//	if err := dgemm.Multiply("avx256_unroll_blocking_parallel", 2, a, b, c); err != nil {
//		return err
//	}
//	// c is [[19 22] [43 50]]
//
// The 256 and 512-bit broadcast kernels are refused with ErrUnsupportedWidth
// on CPUs that lack AVX2/AVX-512. Built with GOEXPERIMENT=simd on amd64 they
// run on simd/archsimd vectors, otherwise on the portable lane groups of
// package hwy.
package dgemm
