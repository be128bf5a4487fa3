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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatrix(t *testing.T) {
	for _, n := range []int{1, 3, 8, 100} {
		m, err := NewMatrix(n)
		require.NoError(t, err)
		assert.Equal(t, n, m.N)
		assert.Len(t, m.Data, n*n)
		assert.True(t, IsAligned(m.Data), "n=%d not %d-byte aligned", n, Alignment)
		for _, v := range m.Data {
			require.Zero(t, v)
		}
	}
}

func TestNewMatrixErrors(t *testing.T) {
	_, err := NewMatrix(0)
	require.ErrorIs(t, err, ErrInvalidDimension)

	_, err = NewMatrix(math.MaxInt / 2)
	require.ErrorIs(t, err, ErrAllocation)
}

func TestFromRows(t *testing.T) {
	m, err := FromRows([][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 4, 7, 2, 5, 8, 3, 6, 9}, m.Data)
	assert.Equal(t, 6.0, m.At(1, 2))

	m.Set(2, 0, -1)
	assert.Equal(t, -1.0, m.Data[2])
	assert.Equal(t, [][]float64{{1, 2, 3}, {4, 5, 6}, {-1, 8, 9}}, m.Rows())

	m.Zero()
	assert.Equal(t, make([]float64, 9), m.Data)

	_, err = FromRows([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, ErrInvalidDimension)
	_, err = FromRows(nil)
	require.ErrorIs(t, err, ErrInvalidDimension)
}

func TestIdentity(t *testing.T) {
	m, err := Identity(4)
	require.NoError(t, err)
	for i := range 4 {
		for j := range 4 {
			want := 0.0
			if i == j {
				want = 1
			}
			assert.Equal(t, want, m.At(i, j))
		}
	}
}

func TestSquareSize(t *testing.T) {
	size, ok := squareSize(1000)
	assert.True(t, ok)
	assert.Equal(t, 1_000_000, size)

	_, ok = squareSize(math.MaxInt / 4)
	assert.False(t, ok)
}
