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

// Package report prints matrices and benchmark results in the harness's
// text formats.
package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// columns of a result line, in order.
var columns = []string{"kernel", "length", "ms", "gflops"}

// Result is one timed kernel run.
type Result struct {
	Kernel  string
	N       int
	Elapsed time.Duration

	// MaxRelErr is set when the run was verified against the oracle.
	MaxRelErr float64
	Verified  bool
}

// GFLOPS returns the rate of the 2n³ floating point operations of the run.
func (r Result) GFLOPS() float64 {
	seconds := r.Elapsed.Seconds()
	if seconds <= 0 {
		return 0
	}
	n := float64(r.N)
	return 2 * n * n * n / 1e9 / seconds
}

// Milliseconds returns the elapsed time in fractional milliseconds.
func (r Result) Milliseconds() float64 {
	return float64(r.Elapsed) / float64(time.Millisecond)
}

// WriteHeader writes the title-cased CSV header line.
func WriteHeader(w io.Writer, verified bool) error {
	title := cases.Title(language.English)
	names := make([]string, 0, len(columns)+1)
	for _, c := range columns {
		names = append(names, title.String(c))
	}
	if verified {
		names = append(names, title.String("max rel err"))
	}
	_, err := fmt.Fprintln(w, strings.Join(names, ","))
	return err
}

// WriteResult writes r as "kernel,length,ms,gflops", with the relative
// error appended when the run was verified.
func WriteResult(w io.Writer, r Result) error {
	var err error
	if r.Verified {
		_, err = fmt.Fprintf(w, "%s,%d,%.0f,%.2f,%.3g\n", r.Kernel, r.N, r.Milliseconds(), r.GFLOPS(), r.MaxRelErr)
	} else {
		_, err = fmt.Fprintf(w, "%s,%d,%.0f,%.2f\n", r.Kernel, r.N, r.Milliseconds(), r.GFLOPS())
	}
	return err
}

// WriteMatrix prints the n×n column-major matrix m row by row, preceded by a
// blank line:
//
//	| 000.00 002.00 |
//	| 001.00 003.00 |
func WriteMatrix(w io.Writer, n int, m []float64) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("\n")
	for i := range n {
		bw.WriteString("| ")
		for j := range n {
			fmt.Fprintf(bw, "%06.2f ", m[i+j*n])
		}
		bw.WriteString("|\n")
	}
	return bw.Flush()
}

// Section writes a title-cased section heading, as used by the info command.
func Section(w io.Writer, name string) error {
	_, err := fmt.Fprintf(w, "=== %s ===\n", cases.Title(language.English).String(name))
	return err
}
