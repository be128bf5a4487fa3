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

package hwy

import "math"

// Float64Vector is the method set shared by the portable lane groups and
// the archsimd Float64x4/Float64x8 types: multiply-add and store.
type Float64Vector[V any] interface {
	// MulAdd returns v*y + z lane-wise, fused.
	MulAdd(y, z V) V

	// StoreSlice writes all lanes to the front of dst.
	StoreSlice(dst []float64)
}

// ReducibleVector is a Float64Vector that can sum its lanes.
type ReducibleVector[V any] interface {
	Float64Vector[V]
	Add(y V) V
	ReduceSum() float64
}

// F64x1 is a single float64 lane. It lets the scalar kernels go through the
// same lane-group code as the vector ones.
type F64x1 [1]float64

// F64x2 is a 128-bit group of two float64 lanes.
type F64x2 [2]float64

// F64x4 is a 256-bit group of four float64 lanes.
type F64x4 [4]float64

// F64x8 is a 512-bit group of eight float64 lanes.
type F64x8 [8]float64

// LoadF64x1Slice loads the first lane of s. s must have at least 1 element.
func LoadF64x1Slice(s []float64) F64x1 { return F64x1(s[:1]) }

// LoadF64x2Slice loads the first 2 lanes of s.
func LoadF64x2Slice(s []float64) F64x2 { return F64x2(s[:2]) }

// LoadF64x4Slice loads the first 4 lanes of s.
func LoadF64x4Slice(s []float64) F64x4 { return F64x4(s[:4]) }

// LoadF64x8Slice loads the first 8 lanes of s.
func LoadF64x8Slice(s []float64) F64x8 { return F64x8(s[:8]) }

// BroadcastF64x1 returns a group with x in its lane.
func BroadcastF64x1(x float64) F64x1 { return F64x1{x} }

// BroadcastF64x2 returns a group with x in every lane.
func BroadcastF64x2(x float64) F64x2 { return F64x2{x, x} }

// BroadcastF64x4 returns a group with x in every lane.
func BroadcastF64x4(x float64) F64x4 { return F64x4{x, x, x, x} }

// BroadcastF64x8 returns a group with x in every lane.
func BroadcastF64x8(x float64) F64x8 { return F64x8{x, x, x, x, x, x, x, x} }

func (v F64x1) MulAdd(y, z F64x1) F64x1 {
	return F64x1{math.FMA(v[0], y[0], z[0])}
}

func (v F64x2) MulAdd(y, z F64x2) F64x2 {
	return F64x2{
		math.FMA(v[0], y[0], z[0]),
		math.FMA(v[1], y[1], z[1]),
	}
}

func (v F64x4) MulAdd(y, z F64x4) F64x4 {
	var r F64x4
	for i := range v {
		r[i] = math.FMA(v[i], y[i], z[i])
	}
	return r
}

func (v F64x8) MulAdd(y, z F64x8) F64x8 {
	var r F64x8
	for i := range v {
		r[i] = math.FMA(v[i], y[i], z[i])
	}
	return r
}

func (v F64x1) Add(y F64x1) F64x1 { return F64x1{v[0] + y[0]} }
func (v F64x2) Add(y F64x2) F64x2 { return F64x2{v[0] + y[0], v[1] + y[1]} }

func (v F64x4) Add(y F64x4) F64x4 {
	for i := range v {
		v[i] += y[i]
	}
	return v
}

func (v F64x8) Add(y F64x8) F64x8 {
	for i := range v {
		v[i] += y[i]
	}
	return v
}

func (v F64x1) StoreSlice(dst []float64) { dst[0] = v[0] }
func (v F64x2) StoreSlice(dst []float64) { copy(dst[:2], v[:]) }
func (v F64x4) StoreSlice(dst []float64) { copy(dst[:4], v[:]) }
func (v F64x8) StoreSlice(dst []float64) { copy(dst[:8], v[:]) }

func (v F64x1) ReduceSum() float64 { return v[0] }
func (v F64x2) ReduceSum() float64 { return v[0] + v[1] }

// ReduceSum adds the lanes pairwise, the way a horizontal add would.
func (v F64x4) ReduceSum() float64 {
	return (v[0] + v[2]) + (v[1] + v[3])
}

// ReduceSum adds the lanes as a tree of pairwise additions.
func (v F64x8) ReduceSum() float64 {
	return ((v[0] + v[4]) + (v[2] + v[6])) + ((v[1] + v[5]) + (v[3] + v[7]))
}
