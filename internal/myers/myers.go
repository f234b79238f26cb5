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
	"math"

	"difflens.dev/difflens/internal/config"
)

// minSearchBudget floors the TOO_EXPENSIVE heuristic's cost limit: below this many diagonals the
// heuristic never kicks in, so small inputs always get an optimal script.
const minSearchBudget = 4096

// trimMatchingEnds strips the common prefix and suffix shared by two sequences of length n and m,
// given a callback that reports whether element i of the first sequence equals element j of the
// second. The returned bounds describe the remaining, non-trivial middle section.
func trimMatchingEnds(n, m int, eq func(i, j int) bool) (smin, smax, tmin, tmax int) {
	smin, tmin = 0, 0
	smax, tmax = n, m
	for smin < smax && tmin < tmax && eq(smin, tmin) {
		smin++
		tmin++
	}
	for smax > smin && tmax > tmin && eq(smax-1, tmax-1) {
		smax--
		tmax--
	}
	return smin, smax, tmin, tmax
}

// allocResult allocates a pair of result vectors sized for sequences of length n and m. A single
// backing array is used for both so that the border element each slice needs for lookahead-free
// iteration is contiguous with the other.
func allocResult(n, m int) (rx, ry []bool) {
	r := make([]bool, n+m+2)
	return r[:n+1 : n+1], r[n+1:]
}

// fillTrivial handles the cases where one side of the comparison has already collapsed to nothing
// after affix-trimming: a pure deletion, a pure insertion, or no difference at all. It reports
// whether it handled the comparison, so the caller can skip the general search.
func fillTrivial(rx, ry []bool, smin, smax, tmin, tmax int) bool {
	switch {
	case smin != smax && tmin == tmax:
		for s := smin; s < smax; s++ {
			rx[s] = true
		}
	case smin == smax && tmin != tmax:
		for t := tmin; t < tmax; t++ {
			ry[t] = true
		}
	case smin == smax && tmin == tmax:
		// identical after trimming, nothing to do
	default:
		return false
	}
	return true
}

// Diff compares the contents of x and y and returns the changes necessary to convert from one to
// the other.
func Diff[T comparable](x, y []T, cfg config.Config) (rx, ry []bool) {
	smin, smax, tmin, tmax := trimMatchingEnds(len(x), len(y), func(i, j int) bool { return x[i] == y[j] })
	rx, ry = allocResult(len(x), len(y))
	if fillTrivial(rx, ry, smin, smax, tmin, tmax) {
		return rx, ry
	}

	// Before running the search, shrink the problem by pulling out every element that's unique to
	// just one side: those can never participate in a match, so they're always a deletion or an
	// insertion. Large diffs in practice tend to be mostly made up of such lines, so this pass
	// often reduces the search to a fraction of the original size.
	//
	// While scanning, elements that occur on both sides are also assigned a shared integer id, so
	// the search below can compare ids instead of arbitrary T values:
	//
	//  - walk x and give every element a provisional negative id
	//  - walk y and flip the sign of any id that also shows up there
	ids := make(map[T]int, smax-smin)
	for s := smin; s < smax; s++ {
		if ids[x[s]] == 0 {
			ids[x[s]] = -(len(ids) + 1)
		}
	}
	shared := 0
	for t := tmin; t < tmax; t++ {
		if id := ids[y[t]]; id < 0 {
			ids[y[t]] = -id
			shared++
		} else if id > 0 {
			shared++
		}
	}
	onlyX := 0
	for s := smin; s < smax; s++ {
		if ids[x[s]] > 0 {
			onlyX++
		}
	}

	// Build the compacted sequences of shared ids that the search will actually run on, plus the
	// index in the original x/y each compacted position came from, so results can be scattered
	// back into rx/ry afterwards. A positive id means the element is shared; anything else is a
	// deletion or insertion settled above without needing the search at all.
	buf := make([]int, 2*(onlyX+shared))
	var xc, yc, xat, yat []int
	xc, buf = buf[:0:onlyX], buf[onlyX:]
	yc, buf = buf[:0:shared], buf[shared:]
	xat, buf = buf[:0:onlyX], buf[onlyX:]
	yat, buf = buf[:0:shared], buf[shared:]
	if len(buf) != 0 && cap(buf) != 0 {
		panic("myers: compacted-id buffer slicing invariant violated")
	}
	for s := smin; s < smax; s++ {
		if id := ids[x[s]]; id > 0 {
			xat = append(xat, s)
			xc = append(xc, id)
		} else {
			rx[s] = true
		}
	}
	for t := tmin; t < tmax; t++ {
		if id := ids[y[t]]; id > 0 {
			yat = append(yat, t)
			yc = append(yc, id)
		} else {
			ry[t] = true
		}
	}

	eq := func(a, b int) bool { return a == b }
	bs := &bisector[int]{rx: rx, ry: ry, xat: xat, yat: yat}
	s0, s1, t0, t1 := bs.reset(xc, yc, eq)
	bs.reduce(s0, s1, t0, t1, cfg.Optimal, eq)

	return rx, ry
}

// DiffFunc compares the contents of x and y and returns the changes necessary to convert from one to
// the other.
//
// Note that this function has generally worse performance than [Diff] for diffs with many changes.
func DiffFunc[T any](x, y []T, eq func(a, b T) bool, cfg config.Config) (rx, ry []bool) {
	smin, smax, tmin, tmax := trimMatchingEnds(len(x), len(y), func(i, j int) bool { return eq(x[i], y[j]) })
	rx, ry = allocResult(len(x), len(y))
	if fillTrivial(rx, ry, smin, smax, tmin, tmax) {
		return rx, ry
	}

	bs := &bisector[T]{rx: rx, ry: ry}
	s0, s1, t0, t1 := bs.reset(x, y, eq)
	bs.reduce(s0, s1, t0, t1, cfg.Optimal, eq)
	return bs.rx, bs.ry
}

// bisector runs the divide-and-conquer search that underlies both [Diff] and [DiffFunc]: it
// repeatedly locates a middle snake (a run of matches at the center of an optimal path) and
// recurses into the two halves that snake splits the comparison into.
type bisector[T any] struct {
	// The two sequences being compared, after any shared prefix/suffix has been trimmed by reset.
	seqX, seqY []T

	// fwd and bwd hold the furthest-reaching endpoint of a d-path on each diagonal, for the
	// forward search (from the start) and backward search (from the end) respectively. Endpoints
	// are stored by their s-coordinate only, since t follows from t = s - k. mid is the offset that
	// maps a diagonal k in [-d, d] into a valid slice index.
	fwd, bwd []int
	mid      int

	// budget bounds how much work the search does before falling back to a good-enough split, per
	// the TOO_EXPENSIVE heuristic.
	budget int

	// xat and yat map a position in the (possibly compacted) sequences back to its index in the
	// caller's original rx/ry result vectors.
	xat, yat []int

	// rx, ry receive the final deletion/insertion flags.
	rx, ry []bool
}

// reset prepares the bisector for a search over x and y: it trims any shared prefix/suffix,
// allocates the diagonal arrays, and fills in defaults for any field the caller didn't already
// set (xat/yat default to the identity mapping, rx/ry default to freshly allocated vectors).
func (b *bisector[T]) reset(x, y []T, eq func(a, b T) bool) (smin, smax, tmin, tmax int) {
	smin, smax, tmin, tmax = trimMatchingEnds(len(x), len(y), func(i, j int) bool { return eq(x[i], y[j]) })

	span := (smax - smin) + (tmax - tmin)
	width := 2*span + 3    // the center diagonal plus one border on each side
	buf := make([]int, 2*width) // fwd and bwd share a single allocation

	b.seqX, b.seqY = x, y
	b.fwd = buf[:width]
	b.bwd = buf[width:]
	b.mid = span + 1 // +1 for the center diagonal

	// Bound the search budget by (approximately) the square root of the diagonal span, but never
	// below minSearchBudget — small inputs should always get an optimal script.
	budget := 1
	for i := span; i != 0; i >>= 2 {
		budget <<= 1
	}
	b.budget = max(minSearchBudget, budget)

	if b.xat == nil || b.yat == nil {
		identity := make([]int, max(len(x), len(y)))
		for i := range identity {
			identity[i] = i
		}
		b.xat = identity[:len(x)]
		b.yat = identity[:len(y)]
	}

	if b.rx == nil || b.ry == nil {
		b.rx, b.ry = allocResult(len(x), len(y))
	}
	return smin, smax, tmin, tmax
}

// reduce finds an optimal d-path from (smin, tmin) to (smax, tmax) and records it into rx/ry.
//
// Important: x[smin:smax] and y[tmin:tmax] must not have a common prefix or a common suffix.
func (b *bisector[T]) reduce(smin, smax, tmin, tmax int, optimal bool, eq func(x, y T) bool) {
	switch {
	case smin == smax:
		// Nothing left on the x side: every remaining y element is an insertion.
		for t := tmin; t < tmax; t++ {
			b.ry[b.yat[t]] = true
		}
	case tmin == tmax:
		// Nothing left on the y side: every remaining x element is a deletion.
		for s := smin; s < smax; s++ {
			b.rx[b.xat[s]] = true
		}
	default:
		// middleSnake splits the comparison into three pieces:
		//
		//   (1) a, possibly empty, rect (smin, tmin) to (s0, t0)
		//   (2) a, possibly empty, run of matches (s0, t0) to (s1, t1)
		//   (3) a, possibly empty, rect (s1, t1) to (smax, tmax)
		//
		// (1) and (3) are free of any shared prefix/suffix, so they can be recursed into directly.
		s0, s1, t0, t1, opt0, opt1 := b.middleSnake(smin, smax, tmin, tmax, optimal, eq)
		b.reduce(smin, s0, tmin, t0, opt0, eq)
		b.reduce(s1, smax, t1, tmax, opt1, eq)
	}
}

// middleSnake locates the endpoints of a, potentially empty, run of matches at the center of an
// optimal path from (smin, tmin) to (smax, tmax).
//
// Important: x[smin:smax] and y[tmin:tmax] must not have a common prefix or a common suffix, and
// they may not both be empty.
func (b *bisector[T]) middleSnake(smin, smax, tmin, tmax int, optimal bool, eq func(x, y T) bool) (s0, s1, t0, t1 int, opt0, opt1 bool) {
	n, m := smax-smin, tmax-tmin
	x, y := b.seqX, b.seqY
	fwd, bwd := b.fwd, b.bwd
	mid := b.mid

	// Bounds for k, the diagonal index. Since t = s - k, these follow from the corners of the box.
	kmin, kmax := smin-tmax, smax-tmin

	// Forward and backward searches are centered on different diagonals (the box's two corners),
	// which avoids having to translate k's between the two when checking for an overlap.
	ffoc, bfoc := smin-tmin, smax-tmax
	fmin, fmax := ffoc, ffoc
	bmin, bmax := bfoc, bfoc

	// The optimal path length has the same parity as n-m (a consequence of every non-diagonal edge
	// changing s-t by +/-1 while every diagonal edge leaves it unchanged). That tells us whether to
	// check for an overlap during the forward or the backward half of each round.
	oddPath := (n-m)%2 != 0

	// middleSnake is never called on an empty-vs-empty or prefix/suffix-trimmed box, so there's no
	// 0-length path; seed d=0's trivial result directly and start the search proper at d=1.
	fwd[mid+ffoc] = smin
	bwd[mid+bfoc] = smax
	for d := 1; ; d++ {
		// Forward half: extend the furthest-reaching path on each candidate diagonal by one
		// non-diagonal edge, then follow matches as far as they go.
		//
		// The diagonals actually worth searching are bounded by the edges of the box; outside
		// that the +/-2 stepping would walk off the grid, so fmin/fmax are clamped to kmin/kmax
		// and the one new diagonal at each end is seeded with a sentinel so the inner loop doesn't
		// need a special case for the box border.
		if fmin > kmin {
			fmin--
			fwd[mid+fmin-1] = math.MinInt
		} else {
			fmin++
		}
		if fmax < kmax {
			fmax++
			fwd[mid+fmax+1] = math.MinInt
		} else {
			fmax--
		}
		for k := fmin; k <= fmax; k += 2 {
			k0 := k + mid

			// The furthest-reaching d-path on diagonal k extends either the furthest-reaching
			// (d-1)-path on diagonal k-1 with a horizontal edge, or the one on diagonal k+1 with a
			// vertical edge — whichever reaches further. Ties favor the deletion (k-1) branch.
			var s int
			if fwd[k0-1] < fwd[k0+1] {
				s = fwd[k0+1]
			} else {
				s = fwd[k0-1] + 1
			}
			t := s - k

			snakeStart, snakeStartT := s, t
			for s < smax && t < tmax && eq(x[s], y[t]) {
				s++
				t++
			}
			fwd[k0] = s

			if oddPath && bmin <= k && k <= bmax && s >= bwd[k0] {
				return snakeStart, s, snakeStartT, t, true, true
			}
		}

		// Backward half: the mirror image of the forward half, searching from (smax, tmax).
		if bmin > kmin {
			bmin--
			bwd[mid+bmin-1] = math.MaxInt
		} else {
			bmin++
		}
		if bmax < kmax {
			bmax++
			bwd[mid+bmax+1] = math.MaxInt
		} else {
			bmax--
		}
		for k := bmin; k <= bmax; k += 2 {
			k0 := k + mid
			var s int
			if bwd[k0-1] < bwd[k0+1] {
				s = bwd[k0-1]
			} else {
				s = bwd[k0+1] - 1
			}
			t := s - k

			snakeEnd, snakeEndT := s, t
			for s > smin && t > tmin && eq(x[s-1], y[t-1]) {
				s--
				t--
			}
			bwd[k0] = s

			if !oddPath && fmin <= k && k <= fmax && s <= fwd[mid+k] {
				return s, snakeEnd, t, snakeEndT, true, true
			}
		}

		if optimal {
			continue
		}

		// TOO_EXPENSIVE heuristic: once the search has spent more than budget rounds without
		// finding an overlap, stop looking for an optimal split and instead pick the
		// furthest-reaching forward or backward path that covers the most ground, accepting a
		// possibly suboptimal (but much cheaper to find) split.
		if d >= b.budget {
			fbest, fbestk := math.MinInt, math.MinInt
			for k := fmin; k <= fmax; k += 2 {
				k0 := k + mid
				s := fwd[k0]
				t := s - k
				if smin <= s && s < smax && tmin <= t && t < tmax && fbest < s+t {
					fbest = s + t
					fbestk = k
				}
			}

			bbest, bbestk := math.MaxInt, math.MaxInt
			for k := bmin; k <= bmax; k += 2 {
				k0 := k + mid
				s := bwd[k0]
				t := s - k
				if smin <= s && s < smax && tmin <= t && t < tmax && s+t < bbest {
					bbest = s + t
					bbestk = k
				}
			}

			if (smax+tmax)-bbest < fbest-(smin+tmin) {
				k := fbestk
				k0 := k + mid
				s := fwd[k0]
				t := s - k

				// Reconstruct the snake leading to (s, t): by construction it's a single
				// non-diagonal edge from the previous diagonal, followed by a run of matches.
				var pk int
				if fwd[k0-1] < fwd[k0+1] {
					pk = k + 1
				} else {
					pk = k - 1
				}
				ps := fwd[pk+mid]
				pt := ps - pk
				run := min(s-ps, t-pt)
				return s - run, s, t - run, t, true, false
			} else {
				k := bbestk
				k0 := k + mid
				s := bwd[k0]
				t := s - k

				var pk int
				if bwd[k0-1] < bwd[k0+1] {
					pk = k - 1
				} else {
					pk = k + 1
				}
				ps := bwd[pk+mid]
				pt := ps - pk
				run := min(ps-s, pt-t)
				return s, s + run, t, t + run, false, true
			}
		}
	}
}
