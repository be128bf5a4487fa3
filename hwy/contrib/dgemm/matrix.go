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
	"math"
	"unsafe"
)

// Alignment is the byte alignment of buffers allocated by this package: the
// width of a 512-bit vector, which is also a cache line.
const Alignment = 64

// Matrix is an n×n float64 matrix stored column-major: element (i, j) is
// Data[i+j*N].
type Matrix struct {
	N    int
	Data []float64
}

// NewMatrix allocates a zeroed n×n matrix whose data is Alignment-aligned.
func NewMatrix(n int) (*Matrix, error) {
	if n <= 0 {
		return nil, opErrorf("alloc", "", ErrInvalidDimension, "n = %d", n)
	}
	size, ok := squareSize(n)
	if !ok {
		return nil, opErrorf("alloc", "", ErrAllocation, "%d×%d overflows", n, n)
	}
	data, err := alignedFloat64s(size)
	if err != nil {
		return nil, err
	}
	return &Matrix{N: n, Data: data}, nil
}

// FromRows builds a matrix from row-major nested slices. Every row must have
// len(rows) entries.
func FromRows(rows [][]float64) (*Matrix, error) {
	n := len(rows)
	m, err := NewMatrix(n)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != n {
			return nil, opErrorf("from rows", "", ErrInvalidDimension, "row %d has %d entries, want %d", i, len(row), n)
		}
		for j, v := range row {
			m.Data[i+j*n] = v
		}
	}
	return m, nil
}

// Identity returns the n×n identity matrix.
func Identity(n int) (*Matrix, error) {
	m, err := NewMatrix(n)
	if err != nil {
		return nil, err
	}
	for i := range n {
		m.Data[i+i*n] = 1
	}
	return m, nil
}

// At returns element (i, j).
func (m *Matrix) At(i, j int) float64 {
	return m.Data[i+j*m.N]
}

// Set stores v at element (i, j).
func (m *Matrix) Set(i, j int, v float64) {
	m.Data[i+j*m.N] = v
}

// Rows returns a row-major copy of the matrix.
func (m *Matrix) Rows() [][]float64 {
	rows := make([][]float64, m.N)
	for i := range rows {
		rows[i] = make([]float64, m.N)
		for j := range rows[i] {
			rows[i][j] = m.Data[i+j*m.N]
		}
	}
	return rows
}

// Zero clears the matrix, ready for the next C += A*B.
func (m *Matrix) Zero() {
	clear(m.Data)
}

// IsAligned reports whether s starts on an Alignment boundary.
func IsAligned(s []float64) bool {
	if len(s) == 0 {
		return true
	}
	return uintptr(unsafe.Pointer(&s[0]))%Alignment == 0
}

// squareSize returns n*n, or false if it overflows the addressable
// float64 count.
func squareSize(n int) (int, bool) {
	const maxElems = math.MaxInt / 8
	if n > 0 && n > maxElems/n {
		return 0, false
	}
	return n * n, true
}

// alignedFloat64s allocates size zeroed float64s starting on an Alignment
// boundary. An allocation the runtime refuses is reported as ErrAllocation.
func alignedFloat64s(size int) (s []float64, err error) {
	if size == 0 {
		return nil, nil
	}
	const pad = Alignment/8 - 1
	if size > math.MaxInt/8-pad {
		return nil, opErrorf("alloc", "", ErrAllocation, "%d elements", size)
	}
	defer func() {
		if r := recover(); r != nil {
			s = nil
			err = &Error{Op: "alloc", Err: ErrAllocation, Detail: fmt.Sprint(r)}
		}
	}()

	// Allocate extra space to allow for alignment. float64 slices are
	// already 8-byte aligned, so the offset is a whole number of elements.
	buf := make([]float64, size+pad)
	offset := 0
	if mod := uintptr(unsafe.Pointer(&buf[0])) % Alignment; mod != 0 {
		offset = int((Alignment - mod) / 8)
	}
	return buf[offset : offset+size : offset+size], nil
}
