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

// Package matgen fills benchmark operands, either with their own linear
// index or with uniform random values.
package matgen

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// DefaultRange is the upper bound of random values, as in [0, 4).
const DefaultRange = 4.0

// ErrInvalidRange is returned for a non-positive random range.
var ErrInvalidRange = errors.New("matgen: range must be positive")

// Config selects how operands are filled.
type Config struct {
	// Random fills with uniform values in [0, Range). Otherwise element
	// idx of both operands is idx.
	Random bool
	Range  float64

	// Seed fixes the random stream. 0 draws a fresh seed per Generator.
	Seed uint64
}

// DefaultConfig returns index fill with the default random range.
func DefaultConfig() Config {
	return Config{Range: DefaultRange}
}

// Generator fills operand pairs. It is not safe for concurrent use.
type Generator struct {
	cfg Config
	rng *rand.Rand
}

// New returns a Generator for cfg.
func New(cfg Config) (*Generator, error) {
	if cfg.Random && !(cfg.Range > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, cfg.Range)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}, nil
}

// Fill writes both operands. a and b must have the same length.
func (g *Generator) Fill(a, b []float64) {
	if !g.cfg.Random {
		for idx := range a {
			a[idx] = float64(idx)
			b[idx] = float64(idx)
		}
		return
	}
	for idx := range a {
		a[idx] = g.cfg.Range * g.rng.Float64()
		b[idx] = g.cfg.Range * g.rng.Float64()
	}
}
