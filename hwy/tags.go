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

import "unsafe"

// Tag names a vector width. Kernel descriptors carry one to say how wide
// their lane groups are; the width gate and the lane count derive from it.
type Tag interface {
	// Width is the vector width in bytes: 8, 16, 32 or 64.
	Width() int

	// Name is a short label for listings, e.g. "256bit".
	Name() string

	// MaxLanes is the number of elements that fit in one vector.
	MaxLanes() int
}

// lanesIn returns how many T fit in bytes.
func lanesIn[T Lanes](bytes int) int {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		return 0
	}
	return bytes / size
}

// ScalableTag follows the widest vector the running CPU supports, as
// chosen at init by the dispatcher.
type ScalableTag[T Lanes] struct{}

func (ScalableTag[T]) Width() int    { return currentWidth }
func (ScalableTag[T]) Name() string  { return currentName }
func (ScalableTag[T]) MaxLanes() int { return lanesIn[T](currentWidth) }

// FixedTag64 is one float64: the width of the scalar naive and transpose
// kernels.
type FixedTag64[T Lanes] struct{}

func (FixedTag64[T]) Width() int    { return 8 }
func (FixedTag64[T]) Name() string  { return "64bit" }
func (FixedTag64[T]) MaxLanes() int { return lanesIn[T](8) }

// FixedTag128 is an SSE2 or NEON register.
type FixedTag128[T Lanes] struct{}

func (FixedTag128[T]) Width() int    { return 16 }
func (FixedTag128[T]) Name() string  { return "128bit" }
func (FixedTag128[T]) MaxLanes() int { return lanesIn[T](16) }

// FixedTag256 is an AVX2 register.
type FixedTag256[T Lanes] struct{}

func (FixedTag256[T]) Width() int    { return 32 }
func (FixedTag256[T]) Name() string  { return "256bit" }
func (FixedTag256[T]) MaxLanes() int { return lanesIn[T](32) }

// FixedTag512 is an AVX-512 register.
type FixedTag512[T Lanes] struct{}

func (FixedTag512[T]) Width() int    { return 64 }
func (FixedTag512[T]) Name() string  { return "512bit" }
func (FixedTag512[T]) MaxLanes() int { return lanesIn[T](64) }
