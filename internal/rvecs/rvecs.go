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

// Package rvecs defines the result-vector representation that the comparison algorithms
// (internal/myers, internal/patience) and the hunk grouping in this package share before either one
// gets translated into a user-facing diff type.
//
// A result vector pair (rx, ry []bool) describes an edit script over two sequences of length n and
// m: rx has n+1 entries and ry has m+1, with rx[s] set iff the element at old-side position s is
// deleted and ry[t] set iff the element at new-side position t is inserted. The extra trailing
// entry on each side exists purely so that iteration never needs a bounds check when it reads one
// past the last real position.
package rvecs

// Alloc allocates a pair of result vectors sized for comparing sequences of length n and m. Both
// slices share one backing array, since callers that build rx/ry incrementally (see
// internal/myers, internal/patience) tend to fill both halves of the same comparison in the same
// pass.
func Alloc(n, m int) (rx, ry []bool) {
	backing := make([]bool, n+m+2)
	return backing[:n+1 : n+1], backing[n+1:]
}
