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
	"fmt"
	"runtime"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/ajroetker/go-dgemm/hwy"
	"github.com/ajroetker/go-dgemm/hwy/contrib/dgemm"
	"github.com/ajroetker/go-dgemm/internal/report"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dgemm",
		Short:         "Benchmark square double-precision matrix multiplication kernels",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(), newKernelsCmd(), newInfoCmd())
	return root
}

func newKernelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kernels",
		Short: "List the kernel table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tFORM\tWIDTH\tLANES\tFLAGS\tSUPPORTED")
			for _, name := range dgemm.Kernels() {
				d, _ := dgemm.Lookup(name)
				flags := lo.Compact([]string{
					lo.Ternary(d.Unrolled, "unroll", ""),
					lo.Ternary(d.Blocked, "blocking", ""),
					lo.Ternary(d.Parallel, "parallel", ""),
				})
				supported := !d.Gated() || hwy.SupportsWidth(d.Tag.Width())
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%v\n", name, d.Form, d.Tag.Name(), d.Lanes(),
					lo.Ternary(len(flags) == 0, "-", strings.Join(flags, ",")), supported)
			}
			return tw.Flush()
		},
	}
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print the detected SIMD level and CPU features",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			if err := report.Section(w, "runtime"); err != nil {
				return err
			}
			fmt.Fprintf(w, "GOOS: %s\nGOARCH: %s\nNumCPU: %d\nGOMAXPROCS: %d\n\n",
				runtime.GOOS, runtime.GOARCH, runtime.NumCPU(), runtime.GOMAXPROCS(0))

			if err := report.Section(w, "dispatch"); err != nil {
				return err
			}
			tag := hwy.ScalableTag[float64]{}
			fmt.Fprintf(w, "Level: %s\nWidth: %d bytes\nFloat64 lanes: %d\nNoSimdEnv: %v\n\n",
				tag.Name(), tag.Width(), tag.MaxLanes(), hwy.NoSimdEnv())

			if err := report.Section(w, "cpu features"); err != nil {
				return err
			}
			fmt.Fprintln(w, lo.Ternary(len(hwy.Features()) == 0, "(none)", strings.Join(hwy.Features(), " ")))
			return nil
		},
	}
}
