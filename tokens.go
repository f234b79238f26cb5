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

package difflens

import "difflens.dev/difflens/internal/tokenize"

// Token is a single indivisible lexical unit produced by [Tokenize]: a maximal run of word
// characters (Unicode letters, digits and underscore) or a single non-word, non-whitespace
// codepoint.
type Token string

// Tokenize splits s into a sequence of Tokens. Whitespace between tokens is discarded and never
// produces a token of its own. The empty string yields a nil slice.
func Tokenize(s string) []Token {
	parts := tokenize.Split(s)
	if parts == nil {
		return nil
	}
	toks := make([]Token, len(parts))
	for i, p := range parts {
		toks[i] = Token(p)
	}
	return toks
}

// DiffTokens compares two token sequences and returns the shortest edit script that transforms a
// into b, with matches preferring Delete before Insert on a tie (see [Edits]).
func DiffTokens(a, b []Token, opts ...Option) []Edit[Token] {
	return Edits(a, b, opts...)
}

// DiffLine tokenizes both lines and returns their token-level edit script. It uses the same
// tokenizer and Myers engine as the inline refiner in [difflens.dev/difflens/textdiff], which
// computes the inline chunks of a refined Replace line this way, and is useful on its own to
// highlight a change within a string.
func DiffLine(a, b string, opts ...Option) []Edit[Token] {
	return DiffTokens(Tokenize(a), Tokenize(b), opts...)
}
