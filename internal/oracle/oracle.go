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

// Package oracle computes reference products with gonum's BLAS, used to
// verify the kernels.
package oracle

import (
	"math"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
)

// Product returns A*B for n×n column-major a and b.
//
// gonum is row-major, and a column-major buffer read row-major is the
// transpose. Computing Bᵀ·Aᵀ = (A·B)ᵀ on the raw buffers therefore yields
// A·B in column-major order.
func Product(n int, a, b []float64) []float64 {
	c := make([]float64, n*n)
	general := func(data []float64) blas64.General {
		return blas64.General{Rows: n, Cols: n, Stride: n, Data: data}
	}
	blas64.Gemm(blas.NoTrans, blas.NoTrans, 1, general(b), general(a), 0, general(c))
	return c
}

// MaxRelativeError returns max |got-want| / max(|want|, 1) over all
// elements.
func MaxRelativeError(got, want []float64) float64 {
	var worst float64
	for i := range want {
		diff := math.Abs(got[i] - want[i])
		worst = max(worst, diff/max(math.Abs(want[i]), 1))
	}
	return worst
}
