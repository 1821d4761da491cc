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

package syntax

import (
	"strings"
	"testing"

	"znkr.io/syntaxdiff/source"
)

func info(start, end int) Info { return Info{Range: source.Range{Start: start, End: end}} }

func TestTermValidate(t *testing.T) {
	buf := source.From("foo(bar)\n")
	tests := []struct {
		name    string
		term    *Term
		wantErr string
	}{
		{
			name: "valid",
			term: NewIndexed(info(0, 9),
				NewLeaf(info(0, 3), "foo"),
				NewLeaf(info(4, 7), "bar"),
			),
		},
		{
			name: "valid-keyed",
			term: NewKeyed(info(0, 9),
				Field[*Term]{"name", NewLeaf(info(0, 3), "foo")},
				Field[*Term]{"arg", NewLeaf(info(4, 7), "bar")},
			),
		},
		{
			name:    "out-of-bounds",
			term:    NewLeaf(info(0, 12), "foo"),
			wantErr: "outside of",
		},
		{
			name: "overlapping-children",
			term: NewIndexed(info(0, 9),
				NewLeaf(info(0, 5), "foo(b"),
				NewLeaf(info(4, 7), "bar"),
			),
			wantErr: "term.1: range [4:7) outside of [5:9)",
		},
		{
			name: "child-outside-parent",
			term: NewFixed(info(4, 7),
				NewLeaf(info(0, 3), "foo"),
			),
			wantErr: "term.0: range [0:3) outside of [4:7)",
		},
		{
			name:    "leaf-with-children",
			term:    &Term{Kind: Leaf, Info: info(0, 3), Children: []*Term{NewLeaf(info(0, 3), "foo")}},
			wantErr: "leaf with 1 children",
		},
		{
			name:    "missing-keys",
			term:    &Term{Kind: Keyed, Info: info(0, 3), Children: []*Term{NewLeaf(info(0, 3), "foo")}},
			wantErr: "keyed node with 0 keys for 1 children",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.term.Validate(buf)
			switch {
			case tt.wantErr == "" && err != nil:
				t.Errorf("Validate() = %v, want nil", err)
			case tt.wantErr != "" && (err == nil || !strings.Contains(err.Error(), tt.wantErr)):
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestDiffValidate(t *testing.T) {
	left := source.From("a\nb\n")
	right := source.From("a\nc\nb\n")
	tests := []struct {
		name    string
		diff    *Diff
		wantErr string
	}{
		{
			name: "valid",
			diff: UnchangedIndexed(info(0, 4), info(0, 6),
				UnchangedLeaf(info(0, 2), info(0, 2), "a"),
				InsertTerm(NewLeaf(info(2, 4), "c")),
				UnchangedLeaf(info(2, 4), info(4, 6), "b"),
			),
		},
		{
			name: "insert-overlaps-sibling",
			diff: UnchangedIndexed(info(0, 4), info(0, 6),
				UnchangedLeaf(info(0, 2), info(0, 3), "a"),
				InsertTerm(NewLeaf(info(2, 4), "c")),
			),
			wantErr: "diff.1(after): range [2:4) outside of [3:6)",
		},
		{
			name:    "replace-without-after",
			diff:    &Diff{Op: Replace, Before: NewLeaf(info(0, 1), "a")},
			wantErr: "Replace requires Before and After",
		},
		{
			name: "unchanged-with-term",
			diff: &Diff{
				Op:     Unchanged,
				Kind:   Leaf,
				Left:   info(0, 1),
				Right:  info(0, 1),
				Before: NewLeaf(info(0, 1), "a"),
			},
			wantErr: "Unchanged must not have Before or After",
		},
		{
			name:    "right-out-of-bounds",
			diff:    UnchangedLeaf(info(0, 4), info(0, 7), "ab"),
			wantErr: "diff(right): range [0:7) outside of [0:6)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.diff.Validate(left, right)
			switch {
			case tt.wantErr == "" && err != nil:
				t.Errorf("Validate() = %v, want nil", err)
			case tt.wantErr != "" && (err == nil || !strings.Contains(err.Error(), tt.wantErr)):
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestRanges(t *testing.T) {
	leaf := NewLeaf(info(2, 4), "c")
	tests := []struct {
		name                string
		diff                *Diff
		wantLeft, wantRight source.Range
	}{
		{"unchanged", UnchangedLeaf(info(0, 2), info(1, 3), "a"), source.Range{Start: 0, End: 2}, source.Range{Start: 1, End: 3}},
		{"insert", InsertTerm(leaf), source.At(7), source.Range{Start: 2, End: 4}},
		{"delete", DeleteTerm(leaf), source.Range{Start: 2, End: 4}, source.At(9)},
		{"replace", ReplaceTerm(NewLeaf(info(0, 1), "a"), leaf), source.Range{Start: 0, End: 1}, source.Range{Start: 2, End: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, r := tt.diff.Ranges(7, 9)
			if l != tt.wantLeft || r != tt.wantRight {
				t.Errorf("Ranges(7, 9) = %v, %v, want %v, %v", l, r, tt.wantLeft, tt.wantRight)
			}
		})
	}
}

func TestNames(t *testing.T) {
	if got := Keyed.String(); got != "Keyed" {
		t.Errorf("Keyed.String() = %q", got)
	}
	if got := Replace.String(); got != "Replace" {
		t.Errorf("Replace.String() = %q", got)
	}
	if got := Op(9).String(); got != "Op(9)" {
		t.Errorf("Op(9).String() = %q", got)
	}
}
