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
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
)

var testSizes = []int{1, 2, 3, 4, 7, 8, 16, 17, 33, 64, 127}

// randomMatrix returns n*n values uniform in [-1, 1).
func randomMatrix(rng *rand.Rand, n int) []float64 {
	m := make([]float64, n*n)
	for i := range m {
		m[i] = 2*rng.Float64() - 1
	}
	return m
}

// reference returns c + a*b computed by gonum. A column-major buffer read
// row-major is the transpose, so Cᵀ = Bᵀ·Aᵀ gives C = A·B in column-major.
func reference(n int, a, b, c []float64) []float64 {
	want := append([]float64(nil), c...)
	general := func(data []float64) blas64.General {
		return blas64.General{Rows: n, Cols: n, Stride: n, Data: data}
	}
	blas64.Gemm(blas.NoTrans, blas.NoTrans, 1, general(b), general(a), 1, general(want))
	return want
}

// requireClose checks got against want element-wise with the bound
// 4·n·ε·(|A|·|B|)ᵢⱼ, which covers any summation order.
func requireClose(t *testing.T, n int, a, b, got, want []float64) {
	t.Helper()
	require.Len(t, got, n*n)
	for j := range n {
		for i := range n {
			var mag float64
			for k := range n {
				mag += math.Abs(a[i+k*n]) * math.Abs(b[k+j*n])
			}
			tol := 4*float64(n)*0x1p-52*mag + 1e-300
			idx := i + j*n
			require.InDeltaf(t, want[idx], got[idx], tol, "element (%d,%d)", i, j)
		}
	}
}

// allWidths lets every broadcast kernel run regardless of the host CPU.
func allWidths(int) bool { return true }

func newTestMultiplier(t *testing.T, cfg Config, opts ...Option) *Multiplier {
	t.Helper()
	m, err := New(cfg, append([]Option{WithWidthGate(allWidths)}, opts...)...)
	require.NoError(t, err)
	return m
}
