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

// Package difflens provides functions to efficiently compare two slices similar to the Unix diff
// command line tool.
//
// The generic entry points are [Hunks], which groups changes into contextual blocks, and [Edits],
// which returns every individual change, for any comparable (or custom-equality) slice type. On top
// of those, [Tokenize] and [DiffTokens] provide a word-level tokenizer and differ for source text,
// and [DiffLine] compares a single pair of lines at the token level. They compute the same kind of
// token-level diff as the inline refiner in [difflens.dev/difflens/textdiff] and are useful on their
// own for highlighting changes within a string.
//
// By default, the comparison functions try to find an optimal diff, but fall back to a good-enough
// diff for large inputs with many differences to bound the runtime. Use [Optimal] to disable this
// fallback.
//
// For a line-oriented diff of whole files with unified-format output, see
// [difflens.dev/difflens/textdiff].
package difflens
