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

//go:build amd64 && goexperiment.simd

// NOTE: This file is named "z_lanes_amd64.go" (starting with 'z') so its
// init() runs after the portable kernel tables in lanes.go are built.

package dgemm

import "github.com/ajroetker/go-dgemm/hwy"

func init() {
	level := hwy.CurrentLevel()

	if level >= hwy.DispatchAVX2 {
		broadcastKernels[4] = broadcastTile_AVX2
	}
	if level == hwy.DispatchAVX512 {
		broadcastKernels[8] = broadcastTile_AVX512
	}
}
