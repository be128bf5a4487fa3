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

package matgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexFill(t *testing.T) {
	g, err := New(DefaultConfig())
	require.NoError(t, err)

	a := make([]float64, 9)
	b := make([]float64, 9)
	g.Fill(a, b)
	for idx := range a {
		assert.Equal(t, float64(idx), a[idx])
		assert.Equal(t, float64(idx), b[idx])
	}
}

func TestRandomFill(t *testing.T) {
	cfg := Config{Random: true, Range: 2.5, Seed: 42}
	g, err := New(cfg)
	require.NoError(t, err)

	a := make([]float64, 1000)
	b := make([]float64, 1000)
	g.Fill(a, b)
	for idx := range a {
		require.GreaterOrEqual(t, a[idx], 0.0)
		require.Less(t, a[idx], 2.5)
		require.GreaterOrEqual(t, b[idx], 0.0)
		require.Less(t, b[idx], 2.5)
	}
	assert.NotEqual(t, a, b)

	// Same seed, same stream.
	g2, err := New(cfg)
	require.NoError(t, err)
	a2 := make([]float64, 1000)
	b2 := make([]float64, 1000)
	g2.Fill(a2, b2)
	assert.Equal(t, a, a2)
	assert.Equal(t, b, b2)
}

func TestInvalidRange(t *testing.T) {
	for _, r := range []float64{0, -1} {
		_, err := New(Config{Random: true, Range: r})
		require.ErrorIs(t, err, ErrInvalidRange)
	}
	// Range is ignored for index fill.
	_, err := New(Config{Range: 0})
	require.NoError(t, err)
}
