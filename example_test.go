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

package difflens_test

import (
	"fmt"
	"strings"

	"difflens.dev/difflens"
)

// Compare two logs line by line and render the difference as a pseudo-unified diff (similar to
// what diff -u would produce, though line-ending handling isn't spec-compliant unified diff).
func ExampleHunks_pseudoUnified() {
	old := `loading plugin registry
connecting to redis
connection established
running migrations
migrations complete
starting worker pool
worker pool ready

loading plugin registry
draining connections
exited cleanly`

	new := `acquiring leader lock
lock acquired, promoting to leader

loading plugin registry
connecting to redis
connection established
running migrations
migrations complete
starting worker pool
worker pool ready`

	oldLines := strings.Split(old, "\n")
	newLines := strings.Split(new, "\n")
	hunks := difflens.Hunks(oldLines, newLines)
	for _, h := range hunks {
		fmt.Printf("@@ -%d,%d +%d,%d @@\n", h.PosX+1, h.EndX-h.PosX, h.PosY+1, h.EndY-h.PosY)
		for _, edit := range h.Edits {
			switch edit.Op {
			case difflens.Match:
				fmt.Printf(" %s\n", edit.X)
			case difflens.Delete:
				fmt.Printf("-%s\n", edit.X)
			case difflens.Insert:
				fmt.Printf("+%s\n", edit.Y)
			default:
				panic("never reached")
			}
		}
	}
	// Output:
	// @@ -1,3 +1,6 @@
	// +acquiring leader lock
	// +lock acquired, promoting to leader
	// +
	//  loading plugin registry
	//  connecting to redis
	//  connection established
	// @@ -5,7 +8,3 @@
	//  migrations complete
	//  starting worker pool
	//  worker pool ready
	// -
	// -loading plugin registry
	// -draining connections
	// -exited cleanly
}

// Compare two strings rune by rune.
func ExampleEdits() {
	x := []rune("Hello, Friend")
	y := []rune("Hello, 朋友")
	edits := difflens.Edits(x, y)
	for _, edit := range edits {
		switch edit.Op {
		case difflens.Match:
			fmt.Printf("%s", string(edit.X))
		case difflens.Delete:
			fmt.Printf("-%s", string(edit.X))
		case difflens.Insert:
			fmt.Printf("+%s", string(edit.Y))
		default:
			panic("never reached")
		}
	}
	// Output:
	// Hello, -F-r-i-e-n-d+朋+友
}
