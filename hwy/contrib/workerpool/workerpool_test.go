// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"errors"
	"runtime"
	"sync/atomic"
	"testing"
)

func TestNew(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	if pool.NumWorkers() != 4 {
		t.Errorf("NumWorkers() = %d, want 4", pool.NumWorkers())
	}
}

func TestNewDefault(t *testing.T) {
	pool := New(0)
	defer pool.Close()

	if pool.NumWorkers() != runtime.GOMAXPROCS(0) {
		t.Errorf("NumWorkers() = %d, want %d", pool.NumWorkers(), runtime.GOMAXPROCS(0))
	}
}

func TestParallelFor(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 100
	results := make([]int, n)

	err := pool.ParallelFor(n, func(start, end int) {
		for i := start; i < end; i++ {
			results[i] = i * 2
		}
	})
	if err != nil {
		t.Fatalf("ParallelFor: %v", err)
	}

	for i := 0; i < n; i++ {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func TestParallelForBatched(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 100
	results := make([]int, n)
	var misaligned atomic.Int32

	err := pool.ParallelForBatched(n, 16, func(start, end int) {
		if start%16 != 0 {
			misaligned.Add(1)
		}
		for i := start; i < end; i++ {
			results[i]++
		}
	})
	if err != nil {
		t.Fatalf("ParallelForBatched: %v", err)
	}
	if misaligned.Load() != 0 {
		t.Errorf("%d ranges did not start on a batch boundary", misaligned.Load())
	}

	for i := 0; i < n; i++ {
		if results[i] != 1 {
			t.Errorf("results[%d] = %d, want 1 (each index exactly once)", i, results[i])
		}
	}
}

func TestParallelForSmallN(t *testing.T) {
	pool := New(8)
	defer pool.Close()

	// Test with n smaller than workers
	n := 3
	var count atomic.Int32

	_ = pool.ParallelFor(n, func(start, end int) {
		count.Add(int32(end - start))
	})

	if count.Load() != int32(n) {
		t.Errorf("count = %d, want %d", count.Load(), n)
	}
}

func TestParallelForZeroN(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	var called bool
	_ = pool.ParallelFor(0, func(start, end int) {
		called = true
	})

	if called {
		t.Error("ParallelFor with n=0 should not call fn")
	}
}

func TestParallelForPanic(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	err := pool.ParallelFor(64, func(start, end int) {
		if start == 0 {
			panic("boom")
		}
	})
	if !errors.Is(err, ErrTaskPanic) {
		t.Fatalf("ParallelFor error = %v, want ErrTaskPanic", err)
	}

	// The pool must still be usable after a task panicked.
	var count atomic.Int32
	if err := pool.ParallelFor(64, func(start, end int) {
		count.Add(int32(end - start))
	}); err != nil {
		t.Fatalf("ParallelFor after panic: %v", err)
	}
	if count.Load() != 64 {
		t.Errorf("count = %d, want 64", count.Load())
	}
}

func TestSequentialPanic(t *testing.T) {
	pool := New(1)
	defer pool.Close()

	err := pool.ParallelForBatched(10, 4, func(start, end int) {
		panic("single worker")
	})
	if !errors.Is(err, ErrTaskPanic) {
		t.Errorf("ParallelForBatched error = %v, want ErrTaskPanic", err)
	}
}

func TestCloseMultipleTimes(t *testing.T) {
	pool := New(4)
	pool.Close()
	pool.Close() // Should not panic
}

func TestClosedPoolFallback(t *testing.T) {
	pool := New(4)
	pool.Close()

	n := 100
	results := make([]int, n)

	// Should still work (sequential fallback)
	err := pool.ParallelFor(n, func(start, end int) {
		for i := start; i < end; i++ {
			results[i] = i * 2
		}
	})
	if err != nil {
		t.Fatalf("ParallelFor on closed pool: %v", err)
	}

	for i := 0; i < n; i++ {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func BenchmarkParallelFor(b *testing.B) {
	pool := New(0) // Use GOMAXPROCS
	defer pool.Close()

	n := 1000

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = pool.ParallelFor(n, func(start, end int) {
			for j := start; j < end; j++ {
				_ = j * j
			}
		})
	}
}

func BenchmarkParallelForBatched(b *testing.B) {
	pool := New(0)
	defer pool.Close()

	n := 1000

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = pool.ParallelForBatched(n, 64, func(start, end int) {
			for j := start; j < end; j++ {
				_ = j * j
			}
		})
	}
}
