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
	"github.com/ajroetker/go-dgemm/hwy"
)

// Form selects the loop structure of a kernel.
type Form int

const (
	// FormNaive is the i-j-k triple loop reading A with stride n.
	FormNaive Form = iota

	// FormDot reads A through its transpose so both operands are contiguous
	// along k, and reduces lane-wise partial sums at the end of each dot.
	FormDot

	// FormBroadcast broadcasts B[k,j] and multiply-adds it into W-wide
	// slices of A's column k, accumulating straight into C's column j.
	FormBroadcast
)

func (f Form) String() string {
	switch f {
	case FormNaive:
		return "naive"
	case FormDot:
		return "dot"
	case FormBroadcast:
		return "broadcast"
	default:
		return "unknown"
	}
}

// Descriptor is one row of the kernel table.
type Descriptor struct {
	Name     string
	Form     Form
	Tag      hwy.Tag // Lane width
	Unrolled bool
	Blocked  bool
	Parallel bool
}

// Lanes returns the number of float64 lanes per vector group.
func (d Descriptor) Lanes() int {
	return d.Tag.MaxLanes()
}

// NeedsTranspose reports whether A is repacked as Aᵀ before the kernel runs.
func (d Descriptor) NeedsTranspose() bool {
	return d.Form == FormDot
}

// Gated reports whether the kernel's width must pass the CPU width gate.
// Only the broadcast kernels map onto hardware registers; the naive and dot
// kernels run on portable lanes everywhere.
func (d Descriptor) Gated() bool {
	return d.Form == FormBroadcast
}

func (d Descriptor) unroll(cfg Config) int {
	if d.Unrolled {
		return cfg.Unroll
	}
	return 1
}

// Factor returns the multiple the dimension is padded to. Blocked kernels
// need whole blocks; the broadcast kernels need whole lane groups.
func (d Descriptor) Factor(cfg Config) int {
	switch {
	case d.Blocked:
		return lcm(cfg.BlockSize, d.Lanes())
	case d.Form == FormBroadcast:
		return d.Lanes()
	default:
		return 1
	}
}

type family struct {
	name string
	form Form
	tag  hwy.Tag
}

var families = []family{
	{"simple", FormNaive, hwy.FixedTag64[float64]{}},
	{"transpose", FormDot, hwy.FixedTag64[float64]{}},
	{"simd_manual", FormDot, hwy.FixedTag256[float64]{}},
	{"simd128", FormBroadcast, hwy.FixedTag128[float64]{}},
	{"avx256", FormBroadcast, hwy.FixedTag256[float64]{}},
	{"avx512", FormBroadcast, hwy.FixedTag512[float64]{}},
}

// variants is the kernel table: each family with its unrolled, blocked and
// parallel refinements.
var variants = buildVariants()

var variantsByName = func() map[string]Descriptor {
	m := make(map[string]Descriptor, len(variants))
	for _, d := range variants {
		m[d.Name] = d
	}
	return m
}()

func buildVariants() []Descriptor {
	var out []Descriptor
	for _, f := range families {
		base := Descriptor{Name: f.name, Form: f.form, Tag: f.tag}
		unroll := base
		unroll.Name += "_unroll"
		unroll.Unrolled = true
		blocking := unroll
		blocking.Name += "_blocking"
		blocking.Blocked = true
		parallel := blocking
		parallel.Name += "_parallel"
		parallel.Parallel = true
		out = append(out, base, unroll, blocking, parallel)
	}
	return out
}

// Kernels returns the kernel names in table order.
func Kernels() []string {
	names := make([]string, len(variants))
	for i, d := range variants {
		names[i] = d.Name
	}
	return names
}

// Lookup returns the descriptor registered under name.
func Lookup(name string) (Descriptor, bool) {
	d, ok := variantsByName[name]
	return d, ok
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b int) int {
	return a / gcd(a, b) * b
}
