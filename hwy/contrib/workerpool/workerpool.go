// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent worker pool for the repacking
// passes of the DGEMM driver: padding operands to a conforming dimension,
// transposing A for the dot-product kernels and copying the result back out.
//
// A Pool holds no buffers. Every task writes a disjoint range of its
// destination, so one Pool can be shared by concurrent Multiply calls.
// A panic inside a task is caught on the worker and returned from the
// ParallelFor call that scheduled it.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	err := pool.ParallelFor(n, func(start, end int) {
//	    copyColumns(dst, src, start, end)
//	})
package workerpool

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrTaskPanic is wrapped by the error returned when a task panics.
var ErrTaskPanic = errors.New("workerpool: task panicked")

// Pool is a persistent worker pool that can be reused across many parallel
// operations. Workers are spawned once at creation and reused.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

// workItem is one range of a ParallelFor call.
type workItem struct {
	fn      func()
	barrier *batch
}

// batch joins the items of one ParallelFor call and keeps the first panic.
type batch struct {
	wg       sync.WaitGroup
	panicked atomic.Pointer[any]
}

func (b *batch) run(fn func()) {
	defer b.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			b.panicked.CompareAndSwap(nil, &r)
		}
	}()
	fn()
}

func (b *batch) wait() error {
	b.wg.Wait()
	if r := b.panicked.Load(); r != nil {
		return fmt.Errorf("%w: %v", ErrTaskPanic, *r)
	}
	return nil
}

// New creates a new worker pool with the specified number of workers.
// Workers are spawned immediately and persist until Close is called.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		// Buffer enough for all workers to have pending work
		workC: make(chan workItem, numWorkers*2),
	}

	for range numWorkers {
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.barrier.run(item.fn)
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the worker pool. All pending work will complete.
// Calling Close multiple times is safe.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// sequential runs fn(0, n) on the calling goroutine with the same panic
// reporting as the pooled path.
func sequential(n int, fn func(start, end int)) error {
	var b batch
	b.wg.Add(1)
	b.run(func() { fn(0, n) })
	return b.wait()
}

// ParallelFor executes fn over [0, n) split into one contiguous range per
// worker and blocks until all ranges complete.
//
// fn receives (start, end) indices where work should process [start, end).
func (p *Pool) ParallelFor(n int, fn func(start, end int)) error {
	if n <= 0 {
		return nil
	}

	// Fallback to sequential if pool is closed
	if p.closed.Load() {
		return sequential(n, fn)
	}

	workers := min(p.numWorkers, n)
	if workers == 1 {
		return sequential(n, fn)
	}

	chunkSize := (n + workers - 1) / workers

	b := &batch{}
	for i := range workers {
		start := i * chunkSize
		if start >= n {
			break
		}
		end := min(start+chunkSize, n)
		b.wg.Add(1)
		p.workC <- workItem{
			fn:      func() { fn(start, end) },
			barrier: b,
		}
	}

	return b.wait()
}

// ParallelForBatched executes fn over [0, n) in ranges of batchSize, handed
// out by atomic work stealing. Use it when ranges must stay aligned to a
// strip width, as the transpose passes require.
//
// fn receives (start, end) indices where work should process [start, end).
func (p *Pool) ParallelForBatched(n int, batchSize int, fn func(start, end int)) error {
	if n <= 0 {
		return nil
	}

	if batchSize <= 0 {
		batchSize = 1
	}

	if p.closed.Load() {
		return sequential(n, fn)
	}

	numBatches := (n + batchSize - 1) / batchSize
	workers := min(p.numWorkers, numBatches)
	if workers == 1 {
		return sequential(n, fn)
	}

	var nextBatch atomic.Int32
	b := &batch{}
	b.wg.Add(workers)

	for range workers {
		p.workC <- workItem{
			fn: func() {
				for {
					batch := int(nextBatch.Add(1)) - 1
					start := batch * batchSize
					if start >= n {
						return
					}
					fn(start, min(start+batchSize, n))
				}
			},
			barrier: b,
		}
	}

	return b.wait()
}
