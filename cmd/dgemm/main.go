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

// Command dgemm benchmarks the kernels of package dgemm.
//
// Usage:
//
//	dgemm run -d simple,avx256_unroll_blocking -l 1024
//	dgemm run -d all -p 128:1024:128 --verify
//	dgemm kernels
//	dgemm info
//
// Each run prints one CSV line per kernel: name,length,ms,gflops.
package main

import (
	"flag"
	"fmt"
	"os"

	"k8s.io/klog/v2"
)

func main() {
	klogFlags := flag.NewFlagSet("klog", flag.ExitOnError)
	klog.InitFlags(klogFlags)

	root := newRootCmd()
	root.PersistentFlags().AddGoFlagSet(klogFlags)

	err := root.Execute()
	klog.Flush()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
