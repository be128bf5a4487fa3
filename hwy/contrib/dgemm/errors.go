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
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidDimension is returned when n <= 0.
	ErrInvalidDimension = errors.New("dgemm: invalid dimension")

	// ErrBufferSize is returned when a buffer does not hold exactly n*n values.
	ErrBufferSize = errors.New("dgemm: buffer length is not n*n")

	// ErrUnknownKernel is returned for a kernel name that is not in the table.
	ErrUnknownKernel = errors.New("dgemm: unknown kernel")

	// ErrUnsupportedWidth is returned when the CPU cannot run the kernel's
	// lane width. The request is never downgraded to a narrower kernel.
	ErrUnsupportedWidth = errors.New("dgemm: vector width not supported by this CPU")

	// ErrInvalidConfig is returned by New for block or unroll settings the
	// kernels cannot tile with.
	ErrInvalidConfig = errors.New("dgemm: invalid configuration")

	// ErrAllocation is returned when scratch space cannot be allocated.
	ErrAllocation = errors.New("dgemm: scratch allocation failed")

	// ErrWorkerPanic is returned when a kernel panics while computing a tile.
	ErrWorkerPanic = errors.New("dgemm: worker panicked")
)

// Error records the operation and kernel that failed. Err is one of the
// package sentinels, so callers match with errors.Is.
type Error struct {
	Op     string // "multiply", "config", "pad", ...
	Kernel string // Kernel name, empty when not applicable
	Detail string
	Err    error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Op)
	if e.Kernel != "" {
		sb.WriteString("(")
		sb.WriteString(e.Kernel)
		sb.WriteString(")")
	}
	sb.WriteString(": ")
	sb.WriteString(e.Err.Error())
	if e.Detail != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Detail)
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func opErrorf(op, kernel string, err error, format string, args ...any) error {
	return &Error{Op: op, Kernel: kernel, Err: err, Detail: fmt.Sprintf(format, args...)}
}
