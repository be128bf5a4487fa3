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

package main

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-dgemm/hwy"
	"github.com/ajroetker/go-dgemm/hwy/contrib/dgemm"
)

func TestParseKernels(t *testing.T) {
	got, err := parseKernels(" simple, transpose_unroll ,,simple")
	require.NoError(t, err)
	assert.Equal(t, []string{"simple", "transpose_unroll"}, got)

	got, err = parseKernels("simple,all")
	require.NoError(t, err)
	assert.Equal(t, dgemm.Kernels(), got)

	_, err = parseKernels("simple,avx1024,bogus")
	require.ErrorIs(t, err, errUsage)
	assert.Contains(t, err.Error(), `"avx1024,bogus"`)

	_, err = parseKernels(" , ")
	require.ErrorIs(t, err, errUsage)
}

func TestParseLoop(t *testing.T) {
	tests := []struct {
		in   string
		want loopRange
	}{
		{"", loopRange{1, 10, 1}},
		{"5", loopRange{5, 10, 1}},
		{"2:8", loopRange{2, 8, 1}},
		{"100:1000:100", loopRange{100, 1000, 100}},
		{"::3", loopRange{1, 10, 3}},
	}
	for _, tt := range tests {
		got, err := parseLoop(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"x", "1:2:3:4", "10:5", "0:5", "1:5:-1", "11"} {
		_, err := parseLoop(bad)
		require.ErrorIs(t, err, errUsage, bad)
	}
}

func TestLengths(t *testing.T) {
	got, err := lengths(64, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{64}, got)

	got, err = lengths(0, &loopRange{2, 8, 3})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 5, 8}, got)

	got, err = lengths(32, &loopRange{1, 3, 1})
	require.NoError(t, err)
	assert.Equal(t, []int{32, 32, 32}, got)

	_, err = lengths(0, nil)
	require.ErrorIs(t, err, errUsage)
	_, err = lengths(-4, nil)
	require.ErrorIs(t, err, errUsage)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRunCommand(t *testing.T) {
	out, err := execute(t, "run", "-d", "simple,transpose_unroll_blocking", "-l", "2", "-s", "--verify", "--header")
	require.NoError(t, err)

	// Index fill: A = B = [[0 2] [1 3]], so A·B = [[2 6] [3 11]].
	assert.Contains(t, out, "| 002.00 006.00 |\n| 003.00 011.00 |\n")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "Kernel,Length,Ms,Gflops,Max Rel Err", lines[0])

	var results []string
	for _, l := range lines {
		if strings.HasPrefix(l, "simple,") || strings.HasPrefix(l, "transpose_unroll_blocking,") {
			results = append(results, l)
		}
	}
	require.Len(t, results, 2)
	for _, r := range results {
		fields := strings.Split(r, ",")
		require.Len(t, fields, 5)
		assert.Equal(t, "2", fields[1])
		assert.Equal(t, "0", fields[4], "index fill is exact")
	}
}

func TestRunCommandLoop(t *testing.T) {
	out, err := execute(t, "run", "-d", "simd_manual_unroll", "-p", "3:5", "-r", "--seed", "7")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	for i, l := range lines {
		assert.True(t, strings.HasPrefix(l, "simd_manual_unroll,"+string(rune('3'+i))+","), l)
	}
}

func TestRunCommandErrors(t *testing.T) {
	_, err := execute(t, "run", "-l", "4")
	require.Error(t, err, "--dgemm is required")

	_, err = execute(t, "run", "-d", "simple")
	require.ErrorIs(t, err, errUsage)

	_, err = execute(t, "run", "-d", "simple", "-l", "4", "--block-size", "48")
	require.ErrorIs(t, err, dgemm.ErrInvalidConfig)

	_, err = execute(t, "run", "-d", "simple", "-l", "4", "-r", "--range", "0")
	require.Error(t, err)
}

func TestKernelsCommand(t *testing.T) {
	out, err := execute(t, "kernels")
	require.NoError(t, err)
	for _, name := range dgemm.Kernels() {
		assert.Contains(t, out, name+" ")
	}
	assert.Contains(t, out, "unroll,blocking,parallel")
	assert.Contains(t, out, "512bit")
	assert.Contains(t, out, "64bit")
}

func TestInfoCommand(t *testing.T) {
	out, err := execute(t, "info")
	require.NoError(t, err)
	assert.Contains(t, out, "=== Dispatch ===")
	assert.Contains(t, out, "Width:")
	assert.Contains(t, out, fmt.Sprintf("Float64 lanes: %d", hwy.MaxLanes[float64]()))
}
