// Copyright 2025 Florian Zenker (flo@znkr.io)
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

// difflens is a command-line front end for the textdiff package: it reads
// two files and prints their differences in unified format.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"difflens.dev/difflens"
	"difflens.dev/difflens/textdiff"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	fs := flag.NewFlagSet("difflens", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("format", "unified", "output format: unified")
	threshold := fs.Float64("threshold", 0.4, "similarity ratio, in [0, 1], above which adjacent deleted/inserted lines are shown as a single refined replacement")
	context := fs.Int("context", 3, "number of unchanged lines of context around each hunk")
	tokenSimilarity := fs.Bool("token-similarity", false, "score line similarity on tokens instead of characters")
	stats := fs.Bool("stats", false, "print elapsed time and throughput to stderr")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() != 2 {
		fmt.Fprintf(stderr, "usage: difflens [flags] file1 file2\n")
		return 2
	}
	if *format != "unified" {
		fmt.Fprintf(stderr, "error: unsupported --format %q, only \"unified\" is implemented\n", *format)
		return 2
	}
	if *threshold < 0 || *threshold > 1 {
		fmt.Fprintf(stderr, "error: --threshold must be in [0, 1], got %v\n", *threshold)
		return 2
	}
	if *context < 0 {
		fmt.Fprintf(stderr, "error: --context must be >= 0, got %v\n", *context)
		return 2
	}

	file1, file2 := fs.Arg(0), fs.Arg(1)
	old, err := os.ReadFile(file1)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	new, err := os.ReadFile(file2)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	opts := []textdiff.Option{
		textdiff.Threshold(*threshold),
		difflens.Context(*context),
	}
	if *tokenSimilarity {
		opts = append(opts, textdiff.TokenSimilarity())
	}

	start := time.Now()
	out := textdiff.UnifiedBytes(old, new, opts)
	elapsed := time.Since(start)

	if _, err := stdout.Write(out); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if *stats {
		lines := int64(len(old) + len(new))
		rate := float64(lines) / elapsed.Seconds() / 1e6
		fmt.Fprintf(stderr, "%v elapsed, %.2f MB/s\n", elapsed, rate)
	}
	return 0
}
