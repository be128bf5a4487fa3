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

// laneSet binds a lane-group type to its constructors.
type laneSet[V any] struct {
	width     int
	load      func([]float64) V
	broadcast func(float64) V
}

var (
	lanesF64x1 = laneSet[hwy.F64x1]{1, hwy.LoadF64x1Slice, hwy.BroadcastF64x1}
	lanesF64x2 = laneSet[hwy.F64x2]{2, hwy.LoadF64x2Slice, hwy.BroadcastF64x2}
	lanesF64x4 = laneSet[hwy.F64x4]{4, hwy.LoadF64x4Slice, hwy.BroadcastF64x4}
	lanesF64x8 = laneSet[hwy.F64x8]{8, hwy.LoadF64x8Slice, hwy.BroadcastF64x8}
)

// kernelFunc is a micro-kernel before its unroll is bound.
type kernelFunc func(t Tile, n, u int, a, b, c []float64)

// dotKernels and broadcastKernels map a lane count to the micro-kernel of
// that width. z_lanes_amd64.go replaces entries with hardware versions when
// the CPU supports them.
var dotKernels = map[int]kernelFunc{
	1: func(t Tile, n, u int, a, b, c []float64) { dotTile(lanesF64x1, t, n, u, a, b, c) },
	2: func(t Tile, n, u int, a, b, c []float64) { dotTile(lanesF64x2, t, n, u, a, b, c) },
	4: func(t Tile, n, u int, a, b, c []float64) { dotTile(lanesF64x4, t, n, u, a, b, c) },
	8: func(t Tile, n, u int, a, b, c []float64) { dotTile(lanesF64x8, t, n, u, a, b, c) },
}

var broadcastKernels = map[int]kernelFunc{
	1: func(t Tile, n, u int, a, b, c []float64) { broadcastTile(lanesF64x1, t, n, u, a, b, c) },
	2: func(t Tile, n, u int, a, b, c []float64) { broadcastTile(lanesF64x2, t, n, u, a, b, c) },
	4: func(t Tile, n, u int, a, b, c []float64) { broadcastTile(lanesF64x4, t, n, u, a, b, c) },
	8: func(t Tile, n, u int, a, b, c []float64) { broadcastTile(lanesF64x8, t, n, u, a, b, c) },
}

// kernelFor returns the micro-kernel of d with unroll u bound.
func kernelFor(d Descriptor, u int) tileKernel {
	var fn kernelFunc
	switch d.Form {
	case FormDot:
		fn = dotKernels[d.Lanes()]
	case FormBroadcast:
		fn = broadcastKernels[d.Lanes()]
	default:
		fn = naiveTile
	}
	return func(t Tile, n int, a, b, c []float64) {
		fn(t, n, u, a, b, c)
	}
}
