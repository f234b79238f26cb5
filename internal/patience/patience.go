// Package patience implements the patience diff algorithm for line-level comparisons.
//
// Patience diff aligns two sequences of lines around "anchors": lines that occur exactly once on
// both sides. Anchors are chosen by taking the longest increasing subsequence (by new-side
// position) of the lines that occur once on each side, in old-side order, using a patience-sort
// (piles + back-pointers, O(n log n)). The chosen anchors split the problem into smaller interval
// pairs that are diffed recursively; an interval with no anchors falls back to line-level Myers
// (internal/myers). This tends to produce more intuitive diffs than plain Myers for source-like
// text, because it avoids aligning on incidental common lines (e.g. a lone "}" or blank line) deep
// inside unrelated regions.
//
// The result shape mirrors internal/myers.Diff: two boolean result vectors, rx and ry, with
// rx[s] set iff x[s] is deleted and ry[t] set iff y[t] is inserted.
package patience

import (
	"difflens.dev/difflens/internal/config"
	"difflens.dev/difflens/internal/myers"
	"difflens.dev/difflens/internal/rvecs"
)

// Diff compares the lines in x and y and returns result vectors describing the deletions from x
// and insertions into y needed to transform one into the other.
func Diff(x, y []string, cfg config.Config) (rx, ry []bool) {
	rx, ry = rvecs.Alloc(len(x), len(y))
	diffRange(x, y, 0, len(x), 0, len(y), rx, ry, cfg)
	return rx, ry
}

func diffRange(x, y []string, smin, smax, tmin, tmax int, rx, ry []bool, cfg config.Config) {
	// Peel common prefix and suffix; this both shrinks the anchor search and guarantees that any
	// anchors found below lie strictly inside a genuinely differing region.
	for smin < smax && tmin < tmax && x[smin] == y[tmin] {
		smin++
		tmin++
	}
	for smax > smin && tmax > tmin && x[smax-1] == y[tmax-1] {
		smax--
		tmax--
	}

	switch {
	case smin == smax && tmin == tmax:
		return
	case smin == smax:
		for t := tmin; t < tmax; t++ {
			ry[t] = true
		}
		return
	case tmin == tmax:
		for s := smin; s < smax; s++ {
			rx[s] = true
		}
		return
	}

	anchors := findAnchors(x[smin:smax], y[tmin:tmax], smin, tmin)
	if len(anchors) == 0 {
		fallbackMyers(x, y, smin, smax, tmin, tmax, rx, ry, cfg)
		return
	}

	chosen := longestIncreasing(anchors)

	ps, pt := smin, tmin
	for _, a := range chosen {
		diffRange(x, y, ps, a.x, pt, a.y, rx, ry, cfg)
		// The anchor line itself matches; rx[a.x] and ry[a.y] stay false.
		ps, pt = a.x+1, a.y+1
	}
	diffRange(x, y, ps, smax, pt, tmax, rx, ry, cfg)
}

func fallbackMyers(x, y []string, smin, smax, tmin, tmax int, rx, ry []bool, cfg config.Config) {
	eq := func(a, b string) bool { return a == b }
	mx, my := myers.DiffFunc(x[smin:smax], y[tmin:tmax], eq, cfg)
	for i, v := range mx {
		if v {
			rx[smin+i] = true
		}
	}
	for i, v := range my {
		if v {
			ry[tmin+i] = true
		}
	}
}

// anchor is a line that occurs exactly once in the old-side interval and exactly once in the
// new-side interval, at absolute positions x and y.
type anchor struct {
	x, y int
}

// findAnchors returns the anchors in xs/ys (relative slices, offset by xoff/yoff to produce
// absolute positions), in old-side order.
func findAnchors(xs, ys []string, xoff, yoff int) []anchor {
	xcount := make(map[string]int, len(xs))
	for _, s := range xs {
		xcount[s]++
	}
	ycount := make(map[string]int, len(ys))
	ypos := make(map[string]int, len(ys))
	for i, s := range ys {
		ycount[s]++
		ypos[s] = i
	}

	var anchors []anchor
	for i, s := range xs {
		if xcount[s] == 1 && ycount[s] == 1 {
			anchors = append(anchors, anchor{x: xoff + i, y: yoff + ypos[s]})
		}
	}
	return anchors
}

// longestIncreasing returns the longest strictly increasing (by y) subsequence of anchors, which
// are already in old-side (x) order. It uses the patience-sort formulation of LIS: O(n log n) with
// piles holding the index of the smallest-tail anchor for each subsequence length, and a
// back-pointer per anchor to reconstruct the chosen subsequence.
func longestIncreasing(anchors []anchor) []anchor {
	if len(anchors) == 0 {
		return nil
	}

	piles := make([]int, 0, len(anchors)) // piles[k] = index into anchors of the smallest tail of an increasing run of length k+1
	pred := make([]int, len(anchors))
	for i := range pred {
		pred[i] = -1
	}

	for i, a := range anchors {
		lo, hi := 0, len(piles)
		for lo < hi {
			mid := (lo + hi) / 2
			if anchors[piles[mid]].y < a.y {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if lo > 0 {
			pred[i] = piles[lo-1]
		}
		if lo == len(piles) {
			piles = append(piles, i)
		} else {
			piles[lo] = i
		}
	}

	seq := make([]anchor, len(piles))
	k := piles[len(piles)-1]
	for i := len(seq) - 1; i >= 0; i-- {
		seq[i] = anchors[k]
		k = pred[k]
	}
	return seq
}
