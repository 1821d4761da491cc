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

// Package align splits syntax trees into lines and diffs into rows of lines that are aligned
// between both sides.
//
// Tree boundaries rarely coincide with line boundaries: a leaf can span several lines and a line
// can hold parts of several nodes. Splitting reconstructs, for every line, a node of the same
// shape as the original that only holds the fragments on that line. A line that does not end in a
// newline is open and is joined with whatever content follows it, even if that content belongs to
// a sibling or an ancestor's sibling. Every byte covered by the input is assigned to exactly one
// line.
package align

import (
	"znkr.io/syntaxdiff/source"
	"znkr.io/syntaxdiff/syntax"
)

// Fragment is a piece of a line.
type Fragment interface {
	// Extent returns the range covered by the fragment.
	Extent() source.Range
}

// Line is the content of one source line on one side, in source order. The empty line stands for
// "no content on this side".
type Line[F Fragment] []F

// IsEmpty reports whether l has no content.
func (l Line[F]) IsEmpty() bool { return len(l) == 0 }

// Range returns the range covered by l, or the zero range if l is empty.
func (l Line[F]) Range() source.Range {
	if len(l) == 0 {
		return source.Range{}
	}
	r := l[0].Extent()
	for _, f := range l[1:] {
		r = r.Union(f.Extent())
	}
	return r
}

// Text returns the text of l in buf.
func (l Line[F]) Text(buf source.Buffer) string {
	if len(l) == 0 {
		return ""
	}
	return buf.Slice(l.Range())
}

// Split is one side of a [syntax.Diff] restricted to a single line.
//
// For Op == Unchanged, Split mirrors an unchanged node (Kind, Children and Keys) with Info taken
// from this side. Otherwise, Term holds the part of the inserted, deleted, or replaced term on this
// line and Info and Kind mirror Term.
type Split struct {
	Op       syntax.Op
	Kind     syntax.Kind
	Info     syntax.Info
	Children []*Split
	Keys     []string
	Term     *syntax.Term
}

// Extent returns the range covered by s.
func (s *Split) Extent() source.Range { return s.Info.Range }

// HasChanges reports whether s or any of its descendants is inserted, deleted, or replaced.
func (s *Split) HasChanges() bool {
	if s.Op != syntax.Unchanged {
		return true
	}
	for _, c := range s.Children {
		if c.HasChanges() {
			return true
		}
	}
	return false
}

// Row pairs a line on the left side with a line on the right side.
type Row struct {
	Left, Right Line[*Split]
}

// HasChanges reports whether either side of r contains inserted, deleted, or replaced content.
func (r Row) HasChanges() bool {
	return hasChanges(r.Left) || hasChanges(r.Right)
}

func hasChanges(l Line[*Split]) bool {
	for _, s := range l {
		if s.HasChanges() {
			return true
		}
	}
	return false
}

// IsContext reports whether r shows the same unchanged text on both sides. Rows that are not
// context rows are change rows, this includes rows without edits whose sides differ textually,
// e.g. because a leaf compares equal after normalizing whitespace.
func (r Row) IsContext(left, right source.Buffer) bool {
	if r.Left.IsEmpty() || r.Right.IsEmpty() || r.HasChanges() {
		return false
	}
	return r.Left.Text(left) == r.Right.Text(right)
}

// Increment returns the number of lines r consumes on the left and right side.
func (r Row) Increment() (left, right int) {
	if !r.Left.IsEmpty() {
		left = 1
	}
	if !r.Right.IsEmpty() {
		right = 1
	}
	return left, right
}
