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
	"fmt"

	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

// distribute runs the column blocks of the cube concurrently. Each
// goroutine owns whole column blocks of C, so writes are disjoint and A and
// B are only read. workers caps the goroutines in flight; 0 means one per
// column block. It returns once every goroutine has finished.
func distribute(kernel tileKernel, n, block, workers int, a, b, c []float64) error {
	var g errgroup.Group
	if workers > 0 {
		g.SetLimit(workers)
	}
	for sj := range numBlocks(n, block) {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					klog.Warningf("dgemm: column block %d panicked: %v", sj, r)
					err = &Error{Op: "multiply", Err: ErrWorkerPanic,
						Detail: fmt.Sprintf("column block %d: %s", sj, panicDetail(r))}
				}
			}()
			columnBlock(kernel, n, block, sj, a, b, c)
			return nil
		})
	}
	return g.Wait()
}

func panicDetail(r any) string {
	if err, ok := r.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(r)
}
