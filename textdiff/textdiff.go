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

// Package textdiff provides functions to compare text line by line, with
// patience-style alignment and inline token-level highlighting of replaced
// lines.
package textdiff

import (
	"fmt"
	"strings"

	"difflens.dev/difflens/internal/config"
	"difflens.dev/difflens/internal/patience"
	"difflens.dev/difflens/internal/refine"
	"difflens.dev/difflens/internal/rvecs"
	"difflens.dev/difflens/textdiff/color"
)

// LineDiffKind classifies a [DiffLine].
type LineDiffKind int

const (
	Equal LineDiffKind = iota
	Insert
	Delete
	Replace
)

//go:generate stringer -type=LineDiffKind

// InlineKind classifies an [InlineChunk] within a refined [Replace] line.
type InlineKind int

const (
	InlineEqual InlineKind = iota
	InlineInsert
	InlineDelete
)

//go:generate stringer -type=InlineKind

// InlineChunk is a contiguous run of text within a refined Replace line.
//
// Concatenating the Value of every non-Delete chunk reproduces the new
// line's tokens; concatenating every non-Insert chunk reproduces the old
// line's tokens. Whitespace between tokens is not represented.
type InlineChunk struct {
	Kind  InlineKind
	Value string
}

// DiffLine is one line in the rendered diff.
//
// OldLineNo and NewLineNo are 1-based line numbers, 0 when absent:
// OldLineNo is set iff Kind is Equal, Delete, or Replace; NewLineNo is set
// iff Kind is Equal, Insert, or Replace. Inline is only non-empty for a
// Replace line whose old and new content were similar enough to refine
// (see [difflens/textdiff.Threshold]).
type DiffLine struct {
	Kind       LineDiffKind
	OldLineNo  int
	NewLineNo  int
	OldContent string
	NewContent string
	Inline     []InlineChunk
}

// Range is an inclusive, 1-based line interval. When a hunk touches zero
// lines on one side, Start == End and denotes the line on that side that
// follows the insertion or deletion point (1 when the point is at the start).
type Range struct {
	Start, End int
}

// Hunk is a contiguous changed region plus its surrounding context.
type Hunk struct {
	OldRange, NewRange Range
	Lines              []DiffLine
}

// Stats carries metadata about how a Diff was computed.
type Stats struct {
	// Approximate is always false: Compute does not record whether the
	// D-cap heuristic made an underlying Myers search return a non-optimal
	// script.
	Approximate bool
}

// Diff is an ordered sequence of hunks, sorted by OldRange.Start, pairwise
// non-overlapping and separated by at least one line of unchanged context
// that belongs to neither hunk.
type Diff struct {
	Hunks []Hunk
	Stats Stats
}

// String renders the whole diff as a plain, uncolored unified-style dump:
// every hunk's header followed by its lines, blank-line separated.
//
// This is a convenience for callers that want a quick human-readable
// representation without going through [Unified]'s options.
func (d Diff) String() string {
	var b strings.Builder
	for i, h := range d.Hunks {
		if i > 0 {
			b.WriteByte('\n')
		}
		writeHunk(&b, h, color.Config{}, false, newlineInfo{})
	}
	return b.String()
}

// Compute compares the lines of x and y and returns the result as a
// [Diff].
//
// The following options are supported: [difflens.Context], [difflens.Optimal],
// [Threshold], [TokenSimilarity].
func Compute(x, y string, opts ...Option) Diff {
	cfg := config.FromOptions(opts, config.Context|config.Optimal|config.Threshold|config.Similarity)

	xlines := splitLines(x)
	ylines := splitLines(y)

	rx, ry := patience.Diff(xlines, ylines, cfg)

	var hunks []Hunk
	for rh := range rvecs.Hunks(rx, ry, cfg) {
		hunks = append(hunks, buildHunk(rh, rx, ry, xlines, ylines, cfg))
	}
	return Diff{Hunks: hunks}
}

// Unified compares the lines in x and y and returns the changes necessary
// to convert from one to the other in unified format.
//
// The following options are supported: [difflens.Context], [difflens.Optimal],
// [Threshold], [TokenSimilarity].
//
// Important: The output is not guaranteed to be stable and may change with
// minor version upgrades. DO NOT rely on the output being stable.
func Unified(x, y string, opts ...Option) string {
	return render(Compute(x, y, opts...), x, y, color.Config{})
}

// UnifiedBytes is the []byte counterpart of [Unified].
func UnifiedBytes(x, y []byte, opts []Option) []byte {
	return []byte(Unified(string(x), string(y), opts...))
}

// Render renders d in unified format using cc to color each part of the
// output. A zero [color.Config] produces the same output as [Unified].
//
// x and y must be the same strings d was computed from: they're used only
// to detect a missing trailing newline on the final line of either side.
func Render(d Diff, x, y string, cc color.Config) string {
	return render(d, x, y, cc)
}

func render(d Diff, x, y string, cc color.Config) string {
	if len(d.Hunks) == 0 {
		return ""
	}
	xLines, yLines := len(splitLines(x)), len(splitLines(y))
	xNoNL := x != "" && !strings.HasSuffix(x, "\n")
	yNoNL := y != "" && !strings.HasSuffix(y, "\n")

	nl := newlineInfo{xLines: xLines, yLines: yLines, xNoNL: xNoNL, yNoNL: yNoNL}

	var b strings.Builder
	for i, h := range d.Hunks {
		writeHunk(&b, h, cc, i == len(d.Hunks)-1, nl)
	}
	return b.String()
}

// newlineInfo lets the printer annotate, for the final hunk only, whichever
// physical old- or new-side line happens to be the true last line of x or y
// when that side's input didn't end in '\n'.
type newlineInfo struct {
	xLines, yLines int
	xNoNL, yNoNL   bool
}

func (nl newlineInfo) old(lineNo int) bool { return nl.xNoNL && lineNo == nl.xLines }
func (nl newlineInfo) new(lineNo int) bool { return nl.yNoNL && lineNo == nl.yLines }

func writeHunk(b *strings.Builder, h Hunk, cc color.Config, isLast bool, nl newlineInfo) {
	oldCount, newCount := 0, 0
	for _, l := range h.Lines {
		if l.OldLineNo != 0 {
			oldCount++
		}
		if l.NewLineNo != 0 {
			newCount++
		}
	}
	header := fmt.Sprintf("@@ -%d,%d +%d,%d @@\n", h.OldRange.Start, oldCount, h.NewRange.Start, newCount)
	if cc.HunkHeader != "" {
		b.WriteString(cc.HunkHeader)
		b.WriteString(header)
		b.WriteString(color.Reset)
	} else {
		b.WriteString(header)
	}
	for _, l := range h.Lines {
		if !isLast {
			writeLine(b, l, cc, false, false)
			continue
		}
		writeLine(b, l, cc, nl.old(l.OldLineNo), nl.new(l.NewLineNo))
	}
}

// writeLine prints one DiffLine. noNLOld/noNLNew request the "\ No newline
// at end of file" marker after the old-side/new-side text respectively;
// both are always false unless this is the final hunk.
func writeLine(b *strings.Builder, l DiffLine, cc color.Config, noNLOld, noNLNew bool) {
	marker := func() { b.WriteString("\\ No newline at end of file\n") }
	switch l.Kind {
	case Equal:
		colorLine(b, cc.Match, " ", l.OldContent)
		if noNLOld || noNLNew {
			marker()
		}
	case Delete:
		colorLine(b, cc.Delete, "-", l.OldContent)
		if noNLOld {
			marker()
		}
	case Insert:
		colorLine(b, cc.Insert, "+", l.NewContent)
		if noNLNew {
			marker()
		}
	case Replace:
		if len(l.Inline) == 0 {
			colorLine(b, cc.Delete, "-", l.OldContent)
			if noNLOld {
				marker()
			}
			colorLine(b, cc.Insert, "+", l.NewContent)
			if noNLNew {
				marker()
			}
			return
		}
		b.WriteString("~")
		for i, c := range l.Inline {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeInlineChunk(b, c, cc)
		}
		b.WriteByte('\n')
		if noNLOld || noNLNew {
			marker()
		}
	}
}

func colorLine(b *strings.Builder, code, prefix, content string) {
	if code != "" {
		b.WriteString(code)
	}
	b.WriteString(prefix)
	b.WriteString(content)
	if code != "" {
		b.WriteString(color.Reset)
	}
	b.WriteByte('\n')
}

func writeInlineChunk(b *strings.Builder, c InlineChunk, cc color.Config) {
	switch c.Kind {
	case InlineEqual:
		b.WriteString(c.Value)
	case InlineDelete:
		if cc.InlineDelete != "" {
			b.WriteString(cc.InlineDelete)
			b.WriteString(c.Value)
			b.WriteString(color.Reset)
		} else {
			fmt.Fprintf(b, "[-%s-]", c.Value)
		}
	case InlineInsert:
		if cc.InlineInsert != "" {
			b.WriteString(cc.InlineInsert)
			b.WriteString(c.Value)
			b.WriteString(color.Reset)
		} else {
			fmt.Fprintf(b, "{+%s+}", c.Value)
		}
	}
}

// splitLines splits s into lines that retain their trailing '\n' (except
// possibly the last line, when s doesn't end with one). Keeping the
// terminator as part of the comparison key is what makes a line with a
// missing trailing newline compare unequal to the same text with one, so
// the hunk builder can surface it.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i+1])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

// buildHunk converts one windowed result-vector range into a Hunk, fusing adjacent Delete/Insert
// runs into a refined Replace line where the two lines are similar enough.
func buildHunk(rh rvecs.Hunk, rx, ry []bool, xlines, ylines []string, cfg config.Config) Hunk {
	ops := collectOps(rx, ry, rh.OldStart, rh.OldEnd, rh.NewStart, rh.NewEnd)
	lines := buildLines(ops, xlines, ylines, cfg)

	oldRange := Range{Start: rh.OldStart + 1, End: rh.OldEnd}
	if rh.OldEnd == rh.OldStart {
		oldRange.End = oldRange.Start
	}
	newRange := Range{Start: rh.NewStart + 1, End: rh.NewEnd}
	if rh.NewEnd == rh.NewStart {
		newRange.End = newRange.Start
	}
	return Hunk{OldRange: oldRange, NewRange: newRange, Lines: lines}
}

// opKind tags a raw, line-level edit before Delete/Insert fusion.
type opKind int8

const (
	opEqual opKind = iota
	opDelete
	opInsert
)

type rawOp struct {
	kind opKind
	s, t int
}

// collectOps walks the result vectors over one hunk's old/new ranges,
// preferring Delete, then Insert, then Match at each position — the same
// convention [difflens.Hunks] uses at the root.
func collectOps(rx, ry []bool, s0, s1, t0, t1 int) []rawOp {
	var ops []rawOp
	for s, t := s0, t0; s < s1 || t < t1; {
		switch {
		case s < s1 && rx[s]:
			ops = append(ops, rawOp{opDelete, s, t})
			s++
		case t < t1 && ry[t]:
			ops = append(ops, rawOp{opInsert, s, t})
			t++
		default:
			ops = append(ops, rawOp{opEqual, s, t})
			s++
			t++
		}
	}
	return ops
}

func buildLines(ops []rawOp, xlines, ylines []string, cfg config.Config) []DiffLine {
	var lines []DiffLine
	for i := 0; i < len(ops); {
		switch ops[i].kind {
		case opEqual:
			op := ops[i]
			lines = append(lines, DiffLine{
				Kind:       Equal,
				OldLineNo:  op.s + 1,
				NewLineNo:  op.t + 1,
				OldContent: content(xlines[op.s]),
				NewContent: content(ylines[op.t]),
			})
			i++
		case opInsert:
			j := i
			for j < len(ops) && ops[j].kind == opInsert {
				j++
			}
			for _, op := range ops[i:j] {
				lines = append(lines, DiffLine{
					Kind:       Insert,
					NewLineNo:  op.t + 1,
					NewContent: content(ylines[op.t]),
				})
			}
			i = j
		case opDelete:
			j := i
			for j < len(ops) && ops[j].kind == opDelete {
				j++
			}
			k := j
			for k < len(ops) && ops[k].kind == opInsert {
				k++
			}
			lines = append(lines, fuse(ops[i:j], ops[j:k], xlines, ylines, cfg)...)
			i = k
		}
	}
	return lines
}

// fuse positionally pairs a run of Deletes with a run of Inserts (1st with
// 1st, 2nd with 2nd, …) up to the shorter run's length. Each pair is
// refined into a single Replace line when the inline refiner considers the
// two lines similar and actually different; surplus lines on either side
// are left as plain Delete/Insert.
func fuse(deletes, inserts []rawOp, xlines, ylines []string, cfg config.Config) []DiffLine {
	var lines []DiffLine
	n := min(len(deletes), len(inserts))
	for p := 0; p < n; p++ {
		d, ins := deletes[p], inserts[p]
		old, new := content(xlines[d.s]), content(ylines[ins.t])
		if old != new && refine.Similar(old, new, cfg) {
			lines = append(lines, DiffLine{
				Kind:       Replace,
				OldLineNo:  d.s + 1,
				NewLineNo:  ins.t + 1,
				OldContent: old,
				NewContent: new,
				Inline:     inlineChunks(old, new),
			})
			continue
		}
		lines = append(lines, DiffLine{Kind: Delete, OldLineNo: d.s + 1, OldContent: old})
		lines = append(lines, DiffLine{Kind: Insert, NewLineNo: ins.t + 1, NewContent: new})
	}
	for _, d := range deletes[n:] {
		lines = append(lines, DiffLine{Kind: Delete, OldLineNo: d.s + 1, OldContent: content(xlines[d.s])})
	}
	for _, ins := range inserts[n:] {
		lines = append(lines, DiffLine{Kind: Insert, NewLineNo: ins.t + 1, NewContent: content(ylines[ins.t])})
	}
	return lines
}

func inlineChunks(old, new string) []InlineChunk {
	chunks := refine.Chunks(old, new)
	out := make([]InlineChunk, len(chunks))
	for i, c := range chunks {
		var k InlineKind
		switch c.Kind {
		case refine.Delete:
			k = InlineDelete
		case refine.Insert:
			k = InlineInsert
		default:
			k = InlineEqual
		}
		out[i] = InlineChunk{Kind: k, Value: c.Value}
	}
	return out
}

// content strips the trailing newline retained by splitLines so DiffLine
// fields hold clean line content.
func content(line string) string {
	return strings.TrimSuffix(line, "\n")
}
