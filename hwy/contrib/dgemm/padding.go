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

import (
	"github.com/ajroetker/go-dgemm/hwy/contrib/workerpool"
)

// repacker runs the column copy passes (pad, unpad, transpose), on a worker
// pool when one is configured and the matrix is large enough.
type repacker struct {
	pool      *workerpool.Pool
	threshold int
}

func (r repacker) parallel(ops int) bool {
	return r.pool != nil && ops >= r.threshold
}

// columns runs fn over [0, n) split into one column range per worker. ops
// is the element count of the pass and decides whether it is worth going
// parallel.
func (r repacker) columns(n, ops int, fn func(start, end int)) error {
	if !r.parallel(ops) {
		fn(0, n)
		return nil
	}
	return r.pool.ParallelFor(n, fn)
}

// strips is columns with every range starting on a RepackColumnsPerStrip
// boundary, so the blocked transpose never splits a tile between workers.
func (r repacker) strips(n, ops int, fn func(start, end int)) error {
	if !r.parallel(ops) {
		fn(0, n)
		return nil
	}
	return r.pool.ParallelForBatched(n, RepackColumnsPerStrip, fn)
}

// paddedDim rounds n up to a multiple of factor.
func paddedDim(n, factor int) int {
	return (n + factor - 1) / factor * factor
}

// checkSquare reports ErrBufferSize unless len(buf) == n*n.
func checkSquare(op, name string, buf []float64, n int) error {
	size, ok := squareSize(n)
	if !ok {
		return opErrorf(op, "", ErrAllocation, "%d×%d overflows", n, n)
	}
	if len(buf) != size {
		return opErrorf(op, "", ErrBufferSize, "len(%s) = %d, want %d", name, len(buf), size)
	}
	return nil
}

// Pad copies the n×n column-major matrix src into the top-left corner of a
// zeroed np×np matrix, np being n rounded up to a multiple of factor. When
// n is already a multiple, src itself is returned.
func Pad(src []float64, n, factor int) ([]float64, int, error) {
	if n <= 0 || factor <= 0 {
		return nil, 0, opErrorf("pad", "", ErrInvalidDimension, "n = %d, factor = %d", n, factor)
	}
	if err := checkSquare("pad", "src", src, n); err != nil {
		return nil, 0, err
	}
	np := paddedDim(n, factor)
	dst, err := repacker{}.padTo(src, n, np)
	return dst, np, err
}

// padTo copies src into a zeroed np×np buffer, or returns src when np == n.
func (r repacker) padTo(src []float64, n, np int) ([]float64, error) {
	if np == n {
		return src, nil
	}
	size, ok := squareSize(np)
	if !ok {
		return nil, opErrorf("pad", "", ErrAllocation, "%d×%d overflows", np, np)
	}
	dst, err := alignedFloat64s(size)
	if err != nil {
		return nil, err
	}
	// dst is zeroed: rows n..np of each column and columns n..np stay zero.
	err = r.columns(n, size, func(start, end int) {
		for j := start; j < end; j++ {
			copy(dst[j*np:j*np+n], src[j*n:(j+1)*n])
		}
	})
	if err != nil {
		return nil, &Error{Op: "pad", Err: ErrWorkerPanic, Detail: err.Error()}
	}
	return dst, nil
}

// Unpad returns a fresh copy of the leading n×n block of an np×np matrix.
func Unpad(padded []float64, np, n int) ([]float64, error) {
	if err := checkUnpad(padded, np, n); err != nil {
		return nil, err
	}
	dst := make([]float64, n*n)
	copyLeading(dst, padded, np, n, 0, n)
	return dst, nil
}

// UnpadInto copies the leading n×n block of an np×np matrix into dst, which
// must hold exactly n*n values.
func UnpadInto(dst, padded []float64, np, n int) error {
	if err := checkUnpad(padded, np, n); err != nil {
		return err
	}
	if err := checkSquare("unpad", "dst", dst, n); err != nil {
		return err
	}
	copyLeading(dst, padded, np, n, 0, n)
	return nil
}

func checkUnpad(padded []float64, np, n int) error {
	if n <= 0 || np < n {
		return opErrorf("unpad", "", ErrInvalidDimension, "n = %d, padded = %d", n, np)
	}
	return checkSquare("unpad", "padded", padded, np)
}

// copyLeading copies columns [j0, j1) of the leading n×n block of padded
// into the n×n matrix dst.
func copyLeading(dst, padded []float64, np, n, j0, j1 int) {
	for j := j0; j < j1; j++ {
		copy(dst[j*n:(j+1)*n], padded[j*np:j*np+n])
	}
}

func (r repacker) unpadInto(dst, padded []float64, np, n int) error {
	if np == n && len(dst) > 0 && len(padded) > 0 && &dst[0] == &padded[0] {
		return nil
	}
	return r.columns(n, n*n, func(start, end int) {
		copyLeading(dst, padded, np, n, start, end)
	})
}
