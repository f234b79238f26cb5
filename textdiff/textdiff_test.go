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

package textdiff

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"difflens.dev/difflens/textdiff/color"
)

func TestComputeScenarios(t *testing.T) {
	tests := []struct {
		name string
		x, y string
		want Diff
	}{
		{
			name: "s3-identity",
			x:    "a\nb\nc",
			y:    "a\nb\nc",
			want: Diff{},
		},
		{
			name: "s4-pure-insertion",
			x:    "a\nc",
			y:    "a\nb\nc",
			want: Diff{Hunks: []Hunk{
				{
					OldRange: Range{1, 2},
					NewRange: Range{1, 3},
					Lines: []DiffLine{
						{Kind: Equal, OldLineNo: 1, NewLineNo: 1, OldContent: "a", NewContent: "a"},
						{Kind: Insert, NewLineNo: 2, NewContent: "b"},
						{Kind: Equal, OldLineNo: 2, NewLineNo: 3, OldContent: "c", NewContent: "c"},
					},
				},
			}},
		},
		{
			name: "s5-pure-deletion",
			x:    "a\nb\nc",
			y:    "a\nc",
			want: Diff{Hunks: []Hunk{
				{
					OldRange: Range{1, 3},
					NewRange: Range{1, 2},
					Lines: []DiffLine{
						{Kind: Equal, OldLineNo: 1, NewLineNo: 1, OldContent: "a", NewContent: "a"},
						{Kind: Delete, OldLineNo: 2, OldContent: "b"},
						{Kind: Equal, OldLineNo: 3, NewLineNo: 2, OldContent: "c", NewContent: "c"},
					},
				},
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.x, tt.y)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Compute(%q, %q) differs [-want,+got]:\n%s", tt.x, tt.y, diff)
			}
		})
	}
}

func TestComputeS6DisjointContentRejectsRefinement(t *testing.T) {
	got := Compute("a\nb\nc", "x\ny\nz")
	if len(got.Hunks) != 1 {
		t.Fatalf("len(Hunks) = %d, want 1", len(got.Hunks))
	}
	var deletes, inserts, replaces int
	for _, l := range got.Hunks[0].Lines {
		switch l.Kind {
		case Delete:
			deletes++
		case Insert:
			inserts++
		case Replace:
			replaces++
		}
	}
	if deletes != 3 || inserts != 3 || replaces != 0 {
		t.Errorf("deletes=%d inserts=%d replaces=%d, want 3/3/0 (single-character pairs shouldn't meet the default threshold)", deletes, inserts, replaces)
	}
}

func TestComputeS2RefinesSingleCharReplace(t *testing.T) {
	got := Compute("result = f(x=1, y=2)", "result = f(x=1, y=3)")
	if len(got.Hunks) != 1 || len(got.Hunks[0].Lines) != 1 {
		t.Fatalf("got %+v, want a single hunk with a single refined Replace line", got)
	}
	l := got.Hunks[0].Lines[0]
	if l.Kind != Replace || len(l.Inline) == 0 {
		t.Fatalf("line = %+v, want a refined Replace", l)
	}
	want := []InlineChunk{
		{InlineEqual, "result=f(x=1,y="},
		{InlineDelete, "2"},
		{InlineInsert, "3"},
		{InlineEqual, ")"},
	}
	if diff := cmp.Diff(want, l.Inline); diff != "" {
		t.Errorf("Inline differs [-want,+got]:\n%s", diff)
	}
}

func TestUnifiedEdgeCases(t *testing.T) {
	tests := []struct {
		name string
		x, y string
		want string
	}{
		{
			name: "empty",
			x:    "",
			y:    "",
			want: "",
		},
		{
			name: "identical",
			x:    "first line\n",
			y:    "first line\n",
			want: "",
		},
		{
			name: "new-lines-only",
			x:    "\n",
			y:    "\n",
			want: "",
		},
		{
			name: "x-empty",
			x:    "",
			y:    "one-line\n",
			want: "@@ -1,0 +1,1 @@\n+one-line\n",
		},
		{
			name: "y-empty",
			x:    "one-line\n",
			y:    "",
			want: "@@ -1,1 +1,0 @@\n-one-line\n",
		},
		{
			name: "missing-newline-x",
			x:    "first line",
			y:    "first line\n",
			want: "@@ -1,1 +1,1 @@\n-first line\n\\ No newline at end of file\n+first line\n",
		},
		{
			name: "missing-newline-y",
			x:    "first line\n",
			y:    "first line",
			want: "@@ -1,1 +1,1 @@\n-first line\n+first line\n\\ No newline at end of file\n",
		},
		{
			name: "missing-newline-both",
			x:    "a\nsecond line",
			y:    "b\nsecond line",
			want: "@@ -1,2 +1,2 @@\n-a\n+b\n second line\n\\ No newline at end of file\n",
		},
		{
			name: "missing-newline-empty-x",
			x:    "",
			y:    "\n",
			want: "@@ -1,0 +1,1 @@\n+\n", // no missing newline note here
		},
		{
			name: "missing-newline-empty-y",
			x:    "\n",
			y:    "",
			want: "@@ -1,1 +1,0 @@\n-\n", // no missing newline note here
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Unified(tt.x, tt.y)
			if got != tt.want {
				t.Errorf("Unified(...) is different:\ngot:  %q\nwant: %q", got, tt.want)
			}
		})
	}
}

func TestRenderColor(t *testing.T) {
	cc := color.New(color.Deletes(31), color.Inserts(32))
	got := Render(Compute("a\nb\nc", "a\nx\nc"), "a\nb\nc", "a\nx\nc", cc)
	wantDelete := "\033[31m-b" + color.Reset + "\n"
	wantInsert := "\033[32m+x" + color.Reset + "\n"
	if !containsLine(got, wantDelete) {
		t.Errorf("Render(...) = %q, missing colored delete line %q", got, wantDelete)
	}
	if !containsLine(got, wantInsert) {
		t.Errorf("Render(...) = %q, missing colored insert line %q", got, wantInsert)
	}
}

func containsLine(haystack, needle string) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}

func TestDiffString(t *testing.T) {
	d := Compute("a\nb\nc", "a\nx\nc")
	got := d.String()
	want := "@@ -1,3 +1,3 @@\n a\n-b\n+x\n c\n"
	if got != want {
		t.Errorf("Diff.String() = %q, want %q", got, want)
	}
}
