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

// transposeBlock is the tile side of the cache-blocked transpose.
const transposeBlock = 16

// Transpose returns the transpose of the n×n column-major matrix src:
// dst[i+j*n] = src[j+i*n].
func Transpose(src []float64, n int) []float64 {
	dst := make([]float64, n*n)
	TransposeInto(dst, src, n)
	return dst
}

// TransposeInto writes the transpose of src into dst. dst and src must not
// overlap.
func TransposeInto(dst, src []float64, n int) {
	transposeColumns(dst, src, n, 0, n)
}

// transposeColumns transposes source columns [j0, j1) into destination rows
// [j0, j1). Strips with disjoint column ranges write disjoint memory.
func transposeColumns(dst, src []float64, n, j0, j1 int) {
	for jb := j0; jb < j1; jb += transposeBlock {
		jEnd := min(jb+transposeBlock, j1)
		for ib := 0; ib < n; ib += transposeBlock {
			iEnd := min(ib+transposeBlock, n)
			for j := jb; j < jEnd; j++ {
				col := src[j*n:]
				for i := ib; i < iEnd; i++ {
					dst[j+i*n] = col[i]
				}
			}
		}
	}
}

// transpose allocates an aligned buffer and fills it with srcᵀ, splitting
// the source columns into strips across the pool.
func (r repacker) transpose(src []float64, n int) ([]float64, error) {
	size, ok := squareSize(n)
	if !ok {
		return nil, opErrorf("transpose", "", ErrAllocation, "%d×%d overflows", n, n)
	}
	dst, err := alignedFloat64s(size)
	if err != nil {
		return nil, err
	}
	err = r.strips(n, size, func(start, end int) {
		transposeColumns(dst, src, n, start, end)
	})
	if err != nil {
		return nil, &Error{Op: "transpose", Err: ErrWorkerPanic, Detail: err.Error()}
	}
	return dst, nil
}
