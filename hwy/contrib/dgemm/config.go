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

import "runtime"

const (
	// DefaultBlockSize is the tile side for blocked kernels.
	// 3 tiles of 64x64 float64 = 96KB, sized for L2 with room for C.
	// Must be a multiple of lanes*unroll for the widest blocked kernel.
	DefaultBlockSize = 64

	// DefaultUnroll is the number of accumulator groups kept live by the
	// unrolled kernels. 4 groups of 8 lanes fit the AVX-512 register file
	// with the broadcast operand to spare.
	DefaultUnroll = 4

	// MaxUnroll bounds the accumulator array of the micro-kernels.
	MaxUnroll = 16

	// MinRepackParallelOps is the n*n size below which padding and
	// transposition stay on the calling goroutine.
	MinRepackParallelOps = 64 * 64

	// RepackColumnsPerStrip is the number of source columns one transpose
	// task takes at a time. A multiple of the transpose tile.
	RepackColumnsPerStrip = 64
)

// Config holds the tuning knobs shared by every kernel of a Multiplier.
type Config struct {
	// BlockSize is the tile side used by the *_blocking kernels.
	BlockSize int

	// Unroll is the accumulator count of the *_unroll kernels. The base
	// kernels always use 1.
	Unroll int

	// Workers caps the goroutines of the *_parallel kernels. 0 means one
	// goroutine per column block.
	Workers int

	// RepackParallelThreshold is the n*n size from which repacking runs on
	// the worker pool, when one is configured.
	RepackParallelThreshold int
}

// DefaultConfig returns the configuration used by the package-level Multiply.
func DefaultConfig() Config {
	return Config{
		BlockSize:               DefaultBlockSize,
		Unroll:                  DefaultUnroll,
		Workers:                 runtime.GOMAXPROCS(0),
		RepackParallelThreshold: MinRepackParallelOps,
	}
}

// Validate checks that every blocked kernel in the table can tile with c:
// BlockSize must be a multiple of lanes*unroll, so each block holds whole
// vector groups.
func (c Config) Validate() error {
	if c.BlockSize <= 0 {
		return opErrorf("config", "", ErrInvalidConfig, "block size %d must be positive", c.BlockSize)
	}
	if c.Unroll <= 0 || c.Unroll > MaxUnroll {
		return opErrorf("config", "", ErrInvalidConfig, "unroll %d must be in [1, %d]", c.Unroll, MaxUnroll)
	}
	if c.Workers < 0 {
		return opErrorf("config", "", ErrInvalidConfig, "workers %d must not be negative", c.Workers)
	}
	if c.RepackParallelThreshold < 0 {
		return opErrorf("config", "", ErrInvalidConfig, "repack threshold %d must not be negative", c.RepackParallelThreshold)
	}
	for _, d := range variants {
		if !d.Blocked {
			continue
		}
		group := d.Lanes() * d.unroll(c)
		if c.BlockSize%group != 0 {
			return opErrorf("config", d.Name, ErrInvalidConfig,
				"block size %d is not a multiple of lanes*unroll = %d", c.BlockSize, group)
		}
	}
	return nil
}
