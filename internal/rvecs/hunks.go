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

package rvecs

import (
	"iter"

	"difflens.dev/difflens/internal/config"
)

// Hunk is a contiguous span of a comparison that a renderer presents as one unit: the edits it
// contains, plus up to cfg.Context matching elements of leading and trailing context.
type Hunk struct {
	OldStart, OldEnd int // half-open span into the old side
	NewStart, NewEnd int // half-open span into the new side
	Edits            int // count of edit-script entries (matches, deletions, insertions) in the span, context included
}

// Hunks groups the edits described by rx/ry into hunks, padding each run of edits with up to
// cfg.Context elements of context on either side and merging any hunks whose padding would
// otherwise overlap.
func Hunks(rx, ry []bool, cfg config.Config) iter.Seq[Hunk] {
	return func(yield func(Hunk) bool) {
		acc := hunkBuilder{context: cfg.Context, n: len(rx) - 1, m: len(ry) - 1, start: -1}
		for acc.s < acc.n || acc.t < acc.m {
			if rx[acc.s] || ry[acc.t] {
				acc.enterEdit()
				for acc.s < acc.n && rx[acc.s] {
					acc.s++
					acc.edits++
				}
				for acc.t < acc.m && ry[acc.t] {
					acc.t++
					acc.edits++
				}
			} else {
				for acc.s < acc.n && acc.t < acc.m && !rx[acc.s] && !ry[acc.t] {
					acc.s++
					acc.t++
					acc.matchRun++
					acc.edits++
				}
			}
			if acc.ready() {
				if !yield(acc.close()) {
					return
				}
			}
		}
	}
}

// hunkBuilder walks a pair of result vectors once, accumulating the current hunk-in-progress.
type hunkBuilder struct {
	context int
	n, m    int

	s, t int // current position in the old/new side

	start, startT int // start of the hunk-in-progress, or start < 0 if none is open
	edits         int // elements (context + edits) accumulated into the hunk-in-progress
	matchRun      int // length of the matching run seen since the last edit
}

// enterEdit is called on the first element of a run of edits. If no hunk is currently open it
// starts one, pulling in up to context matching elements that were already scanned as a leading
// context prefix; otherwise the run continues a hunk that context padding had kept open.
func (b *hunkBuilder) enterEdit() {
	b.matchRun = 0
	if b.start >= 0 {
		return
	}
	b.start = max(0, b.s-b.context)
	b.startT = max(0, b.t-b.context)
	b.edits = b.s - b.start
}

// ready reports whether the hunk-in-progress should be flushed: either the trailing context has
// run long enough that a new edit run would start a fresh hunk instead of merging with this one,
// or the walk has reached the end of both sides.
func (b *hunkBuilder) ready() bool {
	return b.start >= 0 && (b.matchRun > 2*b.context || (b.s == b.n && b.t == b.m))
}

// close finishes the hunk-in-progress, trimming back any trailing context beyond b.context
// elements, and reopens the builder for the next hunk.
func (b *hunkBuilder) close() Hunk {
	trim := min(0, b.context-b.matchRun)
	h := Hunk{
		OldStart: b.start, OldEnd: b.s + trim,
		NewStart: b.startT, NewEnd: b.t + trim,
		Edits: b.edits + trim,
	}
	b.start = -1
	return h
}
