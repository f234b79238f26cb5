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

package myers

import (
	"crypto/sha256"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"difflens.dev/difflens/internal/config"
)

// script renders a result vector pair as a compact edit script: D for a deletion out of x, I for an
// insertion out of y, M for a position that matches on both sides. Tests below assert against these
// scripts rather than against the raw booleans, since they read like the diff output a user would
// actually see.
func script(rx, ry []bool, n, m int) string {
	var sb strings.Builder
	for s, t := 0, 0; s < n || t < m; {
		switch {
		case rx[s]:
			sb.WriteByte('D')
			s++
		case ry[t]:
			sb.WriteByte('I')
			t++
		default:
			sb.WriteByte('M')
			s, t = s+1, t+1
		}
	}
	return sb.String()
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name string
		old  []string
		new  []string
		want string
	}{
		{
			name: "unchanged paste",
			old:  []string{"func main() {", "\tfmt.Println(\"hi\")", "}"},
			new:  []string{"func main() {", "\tfmt.Println(\"hi\")", "}"},
			want: "MMM",
		},
		{
			name: "both sides empty",
		},
		{
			name: "pasted into empty doc",
			new:  []string{"line one", "line two", "line three"},
			want: "III",
		},
		{
			name: "everything removed",
			old:  []string{"line one", "line two", "line three"},
			want: "DDD",
		},
		{
			name: "renamed variable mid-block",
			old:  strings.Split("total := count\nreturn total", "\n"),
			new:  strings.Split("sum := count\nreturn sum", "\n"),
			want: "DDII",
		},
		{
			name: "import added after shared header",
			old:  []string{"package svc", "", "import \"fmt\""},
			new:  []string{"package svc", "", "import \"fmt\"", "import \"os\""},
			want: "MMMI",
		},
		{
			name: "leading log line replaced",
			old:  []string{"start", "working", "done"},
			new:  []string{"abort", "working", "done"},
			want: "DIMM",
		},
		{
			name: "diamond edit",
			old:  strings.Split("ABCABBA", ""),
			new:  strings.Split("CBABAC", ""),
			want: "DIMDMMDMI",
		},
		{
			name: "long common run with a swapped prefix/suffix",
			old:  strings.Split("xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaay", ""),
			new:  strings.Split("waaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaait", ""),
			want: "DIMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMMDII",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rx, ry := Diff(tt.old, tt.new, config.Default)
			if got := script(rx, ry, len(tt.old), len(tt.new)); got != tt.want {
				t.Errorf("Diff(...) = %q, want %q", got, tt.want)
			}

			eq := func(a, b string) bool { return a == b }
			rx, ry = DiffFunc(tt.old, tt.new, eq, config.Default)
			if got := script(rx, ry, len(tt.old), len(tt.new)); got != tt.want {
				t.Errorf("DiffFunc(...) = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestMiddleSnake checks middleSnake in isolation using a small annotation language: a string like
// "ab[cde]fg" names the string "abcdefg" together with the half-open range [2, 5). Each case gives
// an input range on both sides of the comparison (exactly one bracketed range per input string) and
// the two output ranges middleSnake is expected to carve out of it, following the same
// divide-and-conquer recursion the production code performs: the text between the two output ranges
// must match exactly on both sides, since that's the snake.
func TestMiddleSnake(t *testing.T) {
	tests := []struct {
		inOld, inNew   string
		wantOld, wantNew string
	}{
		//   inOld        inNew        wantOld       wantNew
		{"[NOPNOON]", "[PONONP]", "[NOP]NO[ON]", "[PO]NO[NP]"},
		{"[NOP]NOON", "[PO]NONP", "[N]O[P]NOON", "[P]O[]NONP"},
		{"NOPNO[ON]", "PONO[NP]", "NOPNO[O]N[]", "PONO[]N[P]"},
		{"[N]OPNOON", "[P]ONONP", "[][N]OPNOON", "[P][]ONONP"},
		{"NO[P]NOON", "PO[]NONP", "NO[P][]NOON", "PO[][]NONP"},

		{"[Sybevna]", "[Mraxre]", "[S][ybevna]", "[Mraxr][e]"},
		{"S[ybevna]", "[Mraxr]e", "S[ybe][vna]", "[Mr][axr]e"},
		{"S[ybe]vna", "[Mr]axre", "S[y][be]vna", "[Mr][]axre"},
		{"Sybe[vna]", "Mr[axr]e", "Sybe[vn]a[]", "Mr[]a[xr]e"},

		{"[nkkkkkkkko]", "[pkkkkkkkkq]", "[n]kkkkkkkk[o]", "[p]kkkkkkkk[q]"},
		{"[nkkkllkkko]", "[pkkkmmkkkq]", "[nkkk][llkkko]", "[pkkkmm][kkkq]"},
		{"[nkkk]llkkko", "[pkkkmm]kkkq", "[n]kkk[]llkkko", "[p]kkk[mm]kkkq"},
		{"nkkk[llkkko]", "pkkkmm[kkkq]", "nkkk[ll]kkk[o]", "pkkkmm[]kkk[q]"},

		// middleSnake skips the d=0 diagonal, which handles shared prefixes/suffixes; those are
		// trimmed before middleSnake ever runs, so this only checks that the trimmed boundaries
		// themselves are handled correctly.
		{"nopqrst[0]", "nopqrst[]", "nopqrst[0][]", "nopqrst[][]"},
		{"[0]nopqrst", "[]nopqrst", "[0][]nopqrst", "[][]nopqrst"},
		{"nopq[0]rst", "nopq[]rst", "nopq[0][]rst", "nopq[][]rst"},

		// Unbalanced ranges walk off one edge of the search grid before the other; these check that
		// edge is handled without over/underflowing the diagonal arrays.
		{"[nopqrstuvwxyzabcnefghimklm]", "[k]", "[nopqrstuvwxyz][abcnefghimklm]", "[][k]"},
		{"[nopqrstuvwxyzabcnefghimklm]", "[]", "[nopqrstuvwxyz][abcnefghimklm]", "[][]"},
		{"[k]", "[nopqrstuvwxyzabcnefghimklm]", "[][k]", "[nopqrstuvwxyz][abcnefghimklm]"},
		{"[]", "[nopqrstuvwxyzabcnefghimklm]", "[][]", "[nopqrstuvwxyz][abcnefghimklm]"},

		// Both sides empty is never passed to middleSnake in practice, so it's intentionally not
		// covered here.
	}

	eq := func(a, b byte) bool { return a == b }
	for _, tt := range tests {
		old, smin, smax := parseRange(tt.inOld)
		new, tmin, tmax := parseRange(tt.inNew)

		var bs bisector[byte]
		smin0, smax0, tmin0, tmax0 := bs.reset([]byte(old), []byte(new), eq)
		if smin < smin0 || smax > smax0 {
			t.Fatalf("invalid test case: s range [%v, %v) outside of trimmed range [%v, %v)", smin, smax, smin0, smax0)
		}
		if tmin < tmin0 || tmax > tmax0 {
			t.Fatalf("invalid test case: t range [%v, %v) outside of trimmed range [%v, %v)", tmin, tmax, tmin0, tmax0)
		}
		if smin == smax && tmin == tmax {
			t.Fatalf("invalid test case: both ranges are empty")
		}

		s0, s1, t0, t1, _, _ := bs.middleSnake(smin, smax, tmin, tmax, true, eq)
		gotOld := renderRange(old, smin, s0, s1, smax)
		gotNew := renderRange(new, tmin, t0, t1, tmax)
		if gotOld != tt.wantOld || gotNew != tt.wantNew {
			t.Errorf("middleSnake(%v, %v) = %v, %v, want %v, %v", tt.inOld, tt.inNew, gotOld, gotNew, tt.wantOld, tt.wantNew)
		}
		if old[s0:s1] != new[t0:t1] {
			t.Errorf("middleSnake(%v, %v) produced a non-matching snake: %v != %v", tt.inOld, tt.inNew, old[s0:s1], new[t0:t1])
		}
	}
}

func TestMiddleSnake_largeRandomInputs(t *testing.T) {
	eq := func(a, b int32) bool { return a == b }
	for i := range 20 {
		seed := sha256.Sum256(fmt.Append(nil, i))
		t.Run(fmt.Sprintf("seed=%x", seed), func(t *testing.T) {
			t.Parallel()
			rng := rand.New(rand.NewChaCha8(seed))
			old := make([]int32, 1<<16-rng.IntN(1<<10)) // must clear minSearchBudget to exercise the heuristic path
			for s := range old {
				old[s] = int32(rng.IntN(10))
			}
			new := make([]int32, 1<<16-rng.IntN(1<<10))
			for t := range new {
				new[t] = int32(rng.IntN(10))
			}

			var bs bisector[int32]
			smin, smax, tmin, tmax := bs.reset(old, new, eq)
			s0, s1, t0, t1, opt0, opt1 := bs.middleSnake(smin, smax, tmin, tmax, false, eq)
			if !slices.Equal(old[s0:s1], new[t0:t1]) {
				t.Errorf("iteration %d produced a non-matching snake [s0=%d, s1=%d, t0=%d, t1=%d, opt0=%v, opt1=%v]", i, s0, s1, t0, t1, opt0, opt1)
			}
		})
	}
}

func FuzzMiddleSnake(f *testing.F) {
	eq := func(a, b byte) bool { return a == b }
	f.Fuzz(func(t *testing.T, old, new []byte, optimal bool) {
		var bs bisector[byte]
		smin, smax, tmin, tmax := bs.reset(old, new, eq)
		if smin == smax && tmin == tmax {
			t.Skip("invalid input: both trimmed ranges are empty")
		}
		s0, s1, t0, t1, _, _ := bs.middleSnake(smin, smax, tmin, tmax, optimal, eq)
		if !slices.Equal(old[s0:s1], new[t0:t1]) {
			t.Errorf("found a non-matching snake: %q vs %q", old[s0:s1], new[t0:t1])
		}
	})
}

// parseRange extracts the string named by in and the half-open range marked by a single bracketed
// substring, e.g. "ab[cde]fg" -> ("abcdefg", 2, 5).
func parseRange(in string) (out string, lo, hi int) {
	var sb strings.Builder
	sb.Grow(len(in) - 2)

	lo, hi = math.MinInt, math.MaxInt
	removed := 0
	for i, c := range in {
		switch c {
		case '[':
			if lo != math.MinInt {
				panic("invalid range spec: " + in)
			}
			lo = i
			removed++
		case ']':
			if hi != math.MaxInt {
				panic("invalid range spec: " + in)
			}
			hi = i - removed
			removed++
		default:
			sb.WriteRune(c)
		}
	}
	if lo == math.MinInt || hi == math.MaxInt {
		panic("invalid range spec: " + in)
	}
	return sb.String(), lo, hi
}

// renderRange re-annotates in with two half-open ranges, [lo0, hi0) and [lo1, hi1), using the same
// bracket notation parseRange consumes.
func renderRange(in string, lo0, hi0, lo1, hi1 int) string {
	var sb strings.Builder
	sb.Grow(len(in) + 4)

	for i := min(lo0, 0); i < max(hi1+1, len(in)); i++ {
		if lo0 == i {
			sb.WriteRune('[')
		}
		if hi0 == i {
			sb.WriteRune(']')
		}
		if lo1 == i {
			sb.WriteRune('[')
		}
		if hi1 == i {
			sb.WriteRune(']')
		}
		if i >= 0 && i < len(in) {
			sb.WriteByte(in[i])
		}
	}
	return sb.String()
}
