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
	"sync"

	"github.com/ajroetker/go-dgemm/hwy"
	"github.com/ajroetker/go-dgemm/hwy/contrib/workerpool"
	"k8s.io/klog/v2"
)

// Multiplier runs kernels from the table with one validated Config.
// It is safe for concurrent use: every call allocates its own scratch.
type Multiplier struct {
	cfg  Config
	pool *workerpool.Pool
	gate func(widthBytes int) bool
}

// Option configures a Multiplier.
type Option func(*Multiplier)

// WithPool runs padding and transposition on pool. The pool is not closed
// by the Multiplier.
func WithPool(pool *workerpool.Pool) Option {
	return func(m *Multiplier) { m.pool = pool }
}

// WithWidthGate replaces hwy.SupportsWidth as the check run before a
// broadcast kernel. Tests use it to exercise every width on any machine.
func WithWidthGate(gate func(widthBytes int) bool) Option {
	return func(m *Multiplier) { m.gate = gate }
}

// New validates cfg and returns a Multiplier. A block size that is not a
// multiple of lanes*unroll for some blocked kernel is rejected here rather
// than on the first call.
func New(cfg Config, opts ...Option) (*Multiplier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := &Multiplier{cfg: cfg, gate: hwy.SupportsWidth}
	for _, opt := range opts {
		opt(m)
	}
	klog.V(1).Infof("dgemm: dispatch=%s width=%d block=%d unroll=%d workers=%d",
		hwy.CurrentName(), hwy.CurrentWidth(), cfg.BlockSize, cfg.Unroll, cfg.Workers)
	return m, nil
}

// Config returns the configuration the Multiplier was built with.
func (m *Multiplier) Config() Config {
	return m.cfg
}

// Plan is the resolved execution of one kernel at one size.
type Plan struct {
	Kernel Descriptor
	N      int // Caller's dimension
	Padded int // Dimension the kernel runs at
	Block  int // Tile side; equals Padded for unblocked kernels
	Unroll int
	Lanes  int

	// Fallback is set when n is smaller than one accumulator group of a
	// broadcast kernel; the scalar loop runs on the caller's buffers.
	Fallback bool

	// Workers is the goroutine cap for parallel kernels, 0 otherwise.
	Workers int
}

// Plan resolves kernel at size n without touching any buffer.
func (m *Multiplier) Plan(kernel string, n int) (Plan, error) {
	if n <= 0 {
		return Plan{}, opErrorf("multiply", kernel, ErrInvalidDimension, "n = %d", n)
	}
	d, ok := Lookup(kernel)
	if !ok {
		return Plan{}, &Error{Op: "multiply", Kernel: kernel, Err: ErrUnknownKernel}
	}
	if d.Gated() && !m.gate(d.Tag.Width()) {
		return Plan{}, opErrorf("multiply", kernel, ErrUnsupportedWidth,
			"%d-bit lanes, cpu is %s", d.Tag.Width()*8, hwy.CurrentName())
	}

	p := Plan{
		Kernel: d,
		N:      n,
		Unroll: d.unroll(m.cfg),
		Lanes:  d.Lanes(),
	}
	if d.Form == FormBroadcast && n < p.Lanes*p.Unroll {
		p.Fallback = true
		p.Padded, p.Block = n, n
		return p, nil
	}

	p.Padded = paddedDim(n, d.Factor(m.cfg))
	p.Block = p.Padded
	if d.Blocked {
		p.Block = m.cfg.BlockSize
	}
	if d.Parallel {
		p.Workers = numBlocks(p.Padded, p.Block)
		if m.cfg.Workers > 0 {
			p.Workers = min(p.Workers, m.cfg.Workers)
		}
	}
	return p, nil
}

// Multiply accumulates A*B into C with the named kernel. a, b and c are n×n
// column-major; c must be zeroed by the caller for a plain product. Nothing
// is read or written before n, the kernel and the buffer lengths have been
// checked.
func (m *Multiplier) Multiply(kernel string, n int, a, b, c []float64) error {
	p, err := m.Plan(kernel, n)
	if err != nil {
		return err
	}
	size, ok := squareSize(n)
	if !ok {
		return opErrorf("multiply", kernel, ErrAllocation, "%d×%d overflows", n, n)
	}
	for _, buf := range []struct {
		name string
		data []float64
	}{{"a", a}, {"b", b}, {"c", c}} {
		if len(buf.data) != size {
			return opErrorf("multiply", kernel, ErrBufferSize, "len(%s) = %d, want %d", buf.name, len(buf.data), size)
		}
	}
	return m.run(p, a, b, c)
}

func (m *Multiplier) run(p Plan, a, b, c []float64) error {
	klog.V(2).Infof("dgemm: %s n=%d padded=%d block=%d unroll=%d lanes=%d fallback=%v workers=%d",
		p.Kernel.Name, p.N, p.Padded, p.Block, p.Unroll, p.Lanes, p.Fallback, p.Workers)

	if p.Fallback {
		scalar := func(t Tile, n int, a, b, c []float64) { naiveTile(t, n, 1, a, b, c) }
		return withKernel(p.Kernel.Name, runTiles(scalar, p.N, p.N, a, b, c))
	}

	r := repacker{pool: m.pool, threshold: m.cfg.RepackParallelThreshold}
	pa, err := r.padTo(a, p.N, p.Padded)
	if err != nil {
		return withKernel(p.Kernel.Name, err)
	}
	pb, err := r.padTo(b, p.N, p.Padded)
	if err != nil {
		return withKernel(p.Kernel.Name, err)
	}
	// C is accumulated into, so its current contents are carried over.
	pc, err := r.padTo(c, p.N, p.Padded)
	if err != nil {
		return withKernel(p.Kernel.Name, err)
	}
	if p.Kernel.NeedsTranspose() {
		if pa, err = r.transpose(pa, p.Padded); err != nil {
			return withKernel(p.Kernel.Name, err)
		}
	}

	kernel := kernelFor(p.Kernel, p.Unroll)
	if p.Kernel.Parallel {
		err = distribute(kernel, p.Padded, p.Block, p.Workers, pa, pb, pc)
	} else {
		err = runTiles(kernel, p.Padded, p.Block, pa, pb, pc)
	}
	if err != nil {
		return withKernel(p.Kernel.Name, err)
	}

	if p.Padded != p.N {
		if err := r.unpadInto(c, pc, p.Padded, p.N); err != nil {
			return &Error{Op: "unpad", Kernel: p.Kernel.Name, Err: ErrWorkerPanic, Detail: err.Error()}
		}
	}
	return nil
}

// withKernel tags an *Error from a helper with the kernel name.
func withKernel(kernel string, err error) error {
	if e, ok := err.(*Error); ok && e.Kernel == "" {
		e.Kernel = kernel
	}
	return err
}

var defaultMultiplier = sync.OnceValues(func() (*Multiplier, error) {
	return New(DefaultConfig())
})

// Multiply runs kernel with DefaultConfig. See (*Multiplier).Multiply.
func Multiply(kernel string, n int, a, b, c []float64) error {
	m, err := defaultMultiplier()
	if err != nil {
		return err
	}
	return m.Multiply(kernel, n, a, b, c)
}
