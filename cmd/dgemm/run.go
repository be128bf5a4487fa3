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

package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/ajroetker/go-dgemm/hwy/contrib/dgemm"
	"github.com/ajroetker/go-dgemm/hwy/contrib/workerpool"
	"github.com/ajroetker/go-dgemm/internal/matgen"
	"github.com/ajroetker/go-dgemm/internal/oracle"
	"github.com/ajroetker/go-dgemm/internal/report"
)

var errUsage = errors.New("invalid usage")

// loopRange is start:end:step, inclusive of end.
type loopRange struct {
	start, end, step int
}

var defaultLoop = loopRange{start: 1, end: 10, step: 1}

type runOptions struct {
	kernels      string
	length       int
	loop         string
	random       bool
	randRange    float64
	seed         uint64
	showResult   bool
	showMatrices bool
	header       bool
	verify       bool

	blockSize int
	unroll    int
	workers   int
}

func newRunCmd() *cobra.Command {
	cfg := dgemm.DefaultConfig()
	opts := runOptions{
		randRange: matgen.DefaultRange,
		blockSize: cfg.BlockSize,
		unroll:    cfg.Unroll,
		workers:   cfg.Workers,
	}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Time kernels and print name,length,ms,gflops per run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBenchmark(cmd.OutOrStdout(), opts, cmd.Flags().Changed("loop"))
		},
	}

	opts.addFlags(cmd.Flags())
	_ = cmd.MarkFlagRequired("dgemm")
	return cmd
}

func (o *runOptions) addFlags(f *pflag.FlagSet) {
	f.StringVarP(&o.kernels, "dgemm", "d", "", `comma separated kernel names, or "all"`)
	f.IntVarP(&o.length, "length", "l", 0, "matrix dimension")
	f.StringVarP(&o.loop, "loop", "p", "", "start:end:step; lengths to sweep, or repetitions when --length is set (default 1:10:1)")
	f.BoolVarP(&o.random, "random", "r", false, "fill with uniform random values instead of element indices")
	f.Float64Var(&o.randRange, "range", o.randRange, "upper bound of random values")
	f.Uint64Var(&o.seed, "seed", 0, "random seed, 0 for a fresh one")
	f.BoolVarP(&o.showResult, "show-result", "s", false, "print C after each kernel")
	f.BoolVarP(&o.showMatrices, "show-matrices", "m", false, "print A and B, and C after each kernel")
	f.BoolVar(&o.header, "header", false, "print a CSV header line first")
	f.BoolVar(&o.verify, "verify", false, "compare each result with gonum's dgemm and report the max relative error")
	f.IntVar(&o.blockSize, "block-size", o.blockSize, "tile side of the blocking kernels")
	f.IntVar(&o.unroll, "unroll", o.unroll, "accumulator groups of the unroll kernels")
	f.IntVar(&o.workers, "workers", o.workers, "goroutine cap of the parallel kernels, 0 for one per column block")
}

// parseKernels splits a comma separated kernel list, dropping blanks and
// duplicates. "all" selects the whole table.
func parseKernels(list string) ([]string, error) {
	names := lo.Uniq(lo.Filter(lo.Map(strings.Split(list, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	}), func(s string, _ int) bool {
		return s != ""
	}))
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no kernel given", errUsage)
	}
	if lo.Contains(names, "all") {
		return dgemm.Kernels(), nil
	}
	unknown := lo.Reject(names, func(s string, _ int) bool {
		_, ok := dgemm.Lookup(s)
		return ok
	})
	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w: invalid dgemm %q", errUsage, strings.Join(unknown, ","))
	}
	return names, nil
}

// parseLoop reads start[:end[:step]]. Omitted fields keep the defaults of
// 1:10:1.
func parseLoop(s string) (loopRange, error) {
	r := defaultLoop
	fields := strings.Split(s, ":")
	if len(fields) > 3 {
		return r, fmt.Errorf("%w: invalid loop %q", errUsage, s)
	}
	dst := []*int{&r.start, &r.end, &r.step}
	for i, field := range fields {
		if field == "" {
			continue
		}
		v, err := strconv.Atoi(field)
		if err != nil || v <= 0 {
			return r, fmt.Errorf("%w: invalid loop %q", errUsage, s)
		}
		*dst[i] = v
	}
	if r.start > r.end {
		return r, fmt.Errorf("%w: invalid loop %q: start is after end", errUsage, s)
	}
	return r, nil
}

// lengths expands the options into the sequence of matrix sizes to run.
// With a loop and a length, the length is repeated once per loop value;
// with a loop alone, each loop value is a length.
func lengths(length int, loop *loopRange) ([]int, error) {
	if length < 0 {
		return nil, fmt.Errorf("%w: length out of range", errUsage)
	}
	if loop == nil {
		if length == 0 {
			return nil, fmt.Errorf("%w: one of --length or --loop is required", errUsage)
		}
		return []int{length}, nil
	}
	var out []int
	for i := loop.start; i <= loop.end; i += loop.step {
		out = append(out, lo.Ternary(length > 0, length, i))
	}
	return out, nil
}

func runBenchmark(w io.Writer, opts runOptions, loopSet bool) error {
	kernels, err := parseKernels(opts.kernels)
	if err != nil {
		return err
	}
	var loop *loopRange
	if loopSet {
		r, err := parseLoop(opts.loop)
		if err != nil {
			return err
		}
		loop = &r
	}
	sizes, err := lengths(opts.length, loop)
	if err != nil {
		return err
	}

	pool := workerpool.New(0)
	defer pool.Close()

	m, err := dgemm.New(dgemm.Config{
		BlockSize:               opts.blockSize,
		Unroll:                  opts.unroll,
		Workers:                 opts.workers,
		RepackParallelThreshold: dgemm.MinRepackParallelOps,
	}, dgemm.WithPool(pool))
	if err != nil {
		return err
	}

	// Refuse the whole run up front if any kernel cannot execute here.
	for _, kernel := range kernels {
		if _, err := m.Plan(kernel, 1); err != nil {
			return err
		}
	}

	gen, err := matgen.New(matgen.Config{Random: opts.random, Range: opts.randRange, Seed: opts.seed})
	if err != nil {
		return err
	}

	if opts.header {
		if err := report.WriteHeader(w, opts.verify); err != nil {
			return err
		}
	}
	for _, n := range sizes {
		if err := runSize(w, m, gen, kernels, n, opts); err != nil {
			return err
		}
	}
	return nil
}

func runSize(w io.Writer, m *dgemm.Multiplier, gen *matgen.Generator, kernels []string, n int, opts runOptions) error {
	a, err := dgemm.NewMatrix(n)
	if err != nil {
		return err
	}
	b, err := dgemm.NewMatrix(n)
	if err != nil {
		return err
	}
	c, err := dgemm.NewMatrix(n)
	if err != nil {
		return err
	}
	gen.Fill(a.Data, b.Data)

	if opts.showMatrices {
		if err := report.WriteMatrix(w, n, a.Data); err != nil {
			return err
		}
		if err := report.WriteMatrix(w, n, b.Data); err != nil {
			return err
		}
	}

	var want []float64
	if opts.verify {
		want = oracle.Product(n, a.Data, b.Data)
	}

	for _, kernel := range kernels {
		c.Zero()
		start := time.Now()
		if err := m.Multiply(kernel, n, a.Data, b.Data, c.Data); err != nil {
			return err
		}
		res := report.Result{Kernel: kernel, N: n, Elapsed: time.Since(start)}
		klog.V(1).Infof("%s n=%d took %s", kernel, n, res.Elapsed)

		if opts.showResult || opts.showMatrices {
			if err := report.WriteMatrix(w, n, c.Data); err != nil {
				return err
			}
		}
		if opts.verify {
			res.Verified = true
			res.MaxRelErr = oracle.MaxRelativeError(c.Data, want)
		}
		if err := report.WriteResult(w, res); err != nil {
			return err
		}
	}
	return nil
}
