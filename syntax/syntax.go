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

// Package syntax defines the trees consumed by the alignment engine: a [Term] is a syntax tree over
// one source, a [Diff] describes how one term was transformed into another.
//
// Both trees share the same four shapes, described by [Kind]. Annotations (a range and a set of
// categories) are carried through alignment unchanged, they are never interpreted.
//
// Trees are immutable once built. They are usually produced by a parser and a structural diff
// algorithm outside of this module.
package syntax

import "znkr.io/syntaxdiff/source"

// Kind describes the shape of a node.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Kind,Op -output=names_string.go
type Kind int

const (
	Leaf    Kind = iota // A node without children
	Indexed             // An ordered list of children of any length
	Fixed               // An ordered list of children with a fixed arity
	Keyed               // An ordered mapping from keys to children
)

// Info annotates a node on one side of a diff.
type Info struct {
	Range      source.Range
	Categories []string
}

// Field is an entry of a keyed node.
type Field[N any] struct {
	Key  string
	Node N
}

// Term is a syntax tree over a single source.
type Term struct {
	Kind Kind
	Info Info

	// Value is the value of a leaf, usually the source text it covers.
	Value string

	// Children of an Indexed, Fixed, or Keyed node, in source order.
	Children []*Term

	// Keys of a Keyed node, Keys[i] is the key of Children[i].
	Keys []string
}

// Extent returns the range covered by t.
func (t *Term) Extent() source.Range { return t.Info.Range }

// NewLeaf returns a leaf term.
func NewLeaf(info Info, value string) *Term {
	return &Term{Kind: Leaf, Info: info, Value: value}
}

// NewIndexed returns a term with an ordered list of children.
func NewIndexed(info Info, children ...*Term) *Term {
	return &Term{Kind: Indexed, Info: info, Children: children}
}

// NewFixed returns a term with a fixed number of children.
func NewFixed(info Info, children ...*Term) *Term {
	return &Term{Kind: Fixed, Info: info, Children: children}
}

// NewKeyed returns a term with keyed children. The order of fields is preserved.
func NewKeyed(info Info, fields ...Field[*Term]) *Term {
	t := &Term{Kind: Keyed, Info: info}
	for _, f := range fields {
		t.Keys = append(t.Keys, f.Key)
		t.Children = append(t.Children, f.Node)
	}
	return t
}

// Op describes how a diff node relates its two sides.
type Op int

const (
	Unchanged Op = iota // Structurally unchanged, children may contain edits
	Insert              // A term that only exists on the right side
	Delete              // A term that only exists on the left side
	Replace             // A term on the left side replaced by a term on the right side
)

// Diff is a structural diff between two terms.
//
//   - For Unchanged, Kind, Left, Right, Value, Children and Keys describe a node that exists on
//     both sides. Children may be arbitrary diffs.
//   - For Insert, After holds the inserted term.
//   - For Delete, Before holds the deleted term.
//   - For Replace, Before and After hold the replaced and the replacing term.
type Diff struct {
	Op Op

	Kind        Kind
	Left, Right Info
	Value       string
	Children    []*Diff
	Keys        []string

	Before, After *Term
}

// UnchangedLeaf returns a leaf that is unchanged between both sides. The ranges may differ in
// length and even in the number of lines they span, e.g. for leaves that compare equal after
// normalizing whitespace.
func UnchangedLeaf(left, right Info, value string) *Diff {
	return &Diff{Op: Unchanged, Kind: Leaf, Left: left, Right: right, Value: value}
}

// UnchangedIndexed returns an unchanged node with an ordered list of children.
func UnchangedIndexed(left, right Info, children ...*Diff) *Diff {
	return &Diff{Op: Unchanged, Kind: Indexed, Left: left, Right: right, Children: children}
}

// UnchangedFixed returns an unchanged node with a fixed number of children.
func UnchangedFixed(left, right Info, children ...*Diff) *Diff {
	return &Diff{Op: Unchanged, Kind: Fixed, Left: left, Right: right, Children: children}
}

// UnchangedKeyed returns an unchanged node with keyed children. The order of fields is
// preserved.
func UnchangedKeyed(left, right Info, fields ...Field[*Diff]) *Diff {
	d := &Diff{Op: Unchanged, Kind: Keyed, Left: left, Right: right}
	for _, f := range fields {
		d.Keys = append(d.Keys, f.Key)
		d.Children = append(d.Children, f.Node)
	}
	return d
}

// InsertTerm returns a diff inserting t.
func InsertTerm(t *Term) *Diff { return &Diff{Op: Insert, After: t} }

// DeleteTerm returns a diff deleting t.
func DeleteTerm(t *Term) *Diff { return &Diff{Op: Delete, Before: t} }

// ReplaceTerm returns a diff replacing before with after.
func ReplaceTerm(before, after *Term) *Diff { return &Diff{Op: Replace, Before: before, After: after} }

// Ranges returns the ranges covered by d on the left and right side. A side that d doesn't exist
// on yields an empty range at the given offset for that side.
func (d *Diff) Ranges(left, right int) (source.Range, source.Range) {
	switch d.Op {
	case Unchanged:
		return d.Left.Range, d.Right.Range
	case Insert:
		return source.At(left), d.After.Info.Range
	case Delete:
		return d.Before.Info.Range, source.At(right)
	case Replace:
		return d.Before.Info.Range, d.After.Info.Range
	}
	panic("never reached")
}
