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

// Tile is a half-open block of the iteration cube:
// rows [I0, I1) of C, columns [J0, J1) of C, and [K0, K1) of the inner
// dimension.
type Tile struct {
	I0, I1 int
	J0, J1 int
	K0, K1 int
}

// numBlocks returns the number of blocks of side block needed to cover n.
func numBlocks(n, block int) int {
	return (n + block - 1) / block
}

// columnBlock walks every tile of column block sj in row block, then k
// block order, and hands each to kernel. The k tiles of one (si, sj) pair
// run in sequence on the calling goroutine, so the += into C never races.
func columnBlock(kernel tileKernel, n, block, sj int, a, b, c []float64) {
	j0 := sj * block
	j1 := min(j0+block, n)
	for i0 := 0; i0 < n; i0 += block {
		i1 := min(i0+block, n)
		for k0 := 0; k0 < n; k0 += block {
			k1 := min(k0+block, n)
			kernel(Tile{I0: i0, I1: i1, J0: j0, J1: j1, K0: k0, K1: k1}, n, a, b, c)
		}
	}
}

// runTiles drives kernel over the whole n×n×n cube in column block, row
// block, k block order on the calling goroutine. An unblocked kernel passes
// block = n and gets a single tile.
func runTiles(kernel tileKernel, n, block int, a, b, c []float64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &Error{Op: "multiply", Err: ErrWorkerPanic, Detail: panicDetail(r)}
		}
	}()
	for sj := range numBlocks(n, block) {
		columnBlock(kernel, n, block, sj, a, b, c)
	}
	return nil
}
