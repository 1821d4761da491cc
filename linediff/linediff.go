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

// Package linediff produces structural diffs for plain text.
//
// Text has no syntax tree to speak of, so the diffs produced here are shallow: a document is an
// [syntax.Indexed] node of lines. They are useful to lay out text diffs with the same machinery
// that lays out structural diffs, and to exercise that machinery in tests and tools.
package linediff

import (
	"github.com/sergi/go-diff/diffmatchpatch"
	"znkr.io/diff"
	"znkr.io/diff/textdiff"
	"znkr.io/syntaxdiff"
	"znkr.io/syntaxdiff/internal/config"
	"znkr.io/syntaxdiff/source"
	"znkr.io/syntaxdiff/syntax"
)

// Categories assigned to the nodes of a diff.
const (
	CategoryDocument = "document"
	CategoryLines    = "lines"
	CategoryLine     = "line"
	CategoryText     = "text"
)

// IndentHeuristic applies a heuristic to make diffs easier to read by improving the placement of
// edit boundaries. See [textdiff.IndentHeuristic].
func IndentHeuristic() syntaxdiff.Option {
	return func(cfg *config.Config) config.Flag {
		cfg.IndentHeuristic = true
		return config.IndentHeuristic
	}
}

// Words refines runs of replaced lines into runs of replaced characters, grouped at word
// boundaries where possible. Without it, a replaced run of lines is replaced as a whole.
func Words() syntaxdiff.Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Words = true
		return config.Words
	}
}

// Diff compares x and y line by line and returns the difference as a structural diff.
//
// The root of the diff is an unchanged [syntax.Indexed] node spanning x and y. Its children are
// unchanged leaves for matching lines and, for every run of differing lines, the deletion,
// insertion, or replacement of an [syntax.Indexed] term with one leaf per line. With [Words],
// a replaced run is an unchanged node whose children describe the change character by character
// instead.
//
// The following options are supported: [IndentHeuristic], [Words]
func Diff(x, y source.Buffer, opts ...syntaxdiff.Option) *syntax.Diff {
	cfg := config.FromOptions(opts, config.IndentHeuristic|config.Words)
	var dopts []diff.Option
	if cfg.IndentHeuristic {
		dopts = append(dopts, textdiff.IndentHeuristic())
	}

	b := builder{
		x:      x,
		y:      y,
		xlines: x.LineRanges(x.All()),
		ylines: y.LineRanges(y.All()),
		words:  cfg.Words,
	}
	for _, e := range textdiff.Edits(x.String(), y.String(), dopts...) {
		switch e.Op {
		case diff.Match:
			b.flush()
			rx, ry := b.xlines[b.s], b.ylines[b.t]
			b.children = append(b.children, syntax.UnchangedLeaf(lineInfo(rx), lineInfo(ry), y.Slice(ry)))
			b.s++
			b.t++
		case diff.Delete:
			b.dels = append(b.dels, syntax.NewLeaf(lineInfo(b.xlines[b.s]), x.Slice(b.xlines[b.s])))
			b.s++
		case diff.Insert:
			b.ins = append(b.ins, syntax.NewLeaf(lineInfo(b.ylines[b.t]), y.Slice(b.ylines[b.t])))
			b.t++
		}
	}
	b.flush()

	return syntax.UnchangedIndexed(
		syntax.Info{Range: x.All(), Categories: []string{CategoryDocument}},
		syntax.Info{Range: y.All(), Categories: []string{CategoryDocument}},
		b.children...,
	)
}

type builder struct {
	x, y           source.Buffer
	xlines, ylines []source.Range
	words          bool

	s, t      int            // current line in x and y
	dels, ins []*syntax.Term // pending run of deleted and inserted lines
	children  []*syntax.Diff
}

func (b *builder) flush() {
	var before, after *syntax.Term
	if len(b.dels) > 0 {
		before = syntax.NewIndexed(runInfo(b.dels), b.dels...)
	}
	if len(b.ins) > 0 {
		after = syntax.NewIndexed(runInfo(b.ins), b.ins...)
	}
	b.dels, b.ins = nil, nil

	switch {
	case before != nil && after != nil && b.words:
		b.children = append(b.children, b.refine(before.Info.Range, after.Info.Range))
	case before != nil && after != nil:
		b.children = append(b.children, syntax.ReplaceTerm(before, after))
	case before != nil:
		b.children = append(b.children, syntax.DeleteTerm(before))
	case after != nil:
		b.children = append(b.children, syntax.InsertTerm(after))
	}
}

// refine diffs the replaced text in rx and ry character by character.
func (b *builder) refine(rx, ry source.Range) *syntax.Diff {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(b.x.Slice(rx), b.y.Slice(ry), false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var children []*syntax.Diff
	s, t := rx.Start, ry.Start
	del, ins := source.At(s), source.At(t) // pending run of non-equal text
	flush := func() {
		text := func(buf source.Buffer, r source.Range) *syntax.Term {
			return syntax.NewLeaf(syntax.Info{Range: r, Categories: []string{CategoryText}}, buf.Slice(r))
		}
		switch {
		case !del.IsEmpty() && !ins.IsEmpty():
			children = append(children, syntax.ReplaceTerm(text(b.x, del), text(b.y, ins)))
		case !del.IsEmpty():
			children = append(children, syntax.DeleteTerm(text(b.x, del)))
		case !ins.IsEmpty():
			children = append(children, syntax.InsertTerm(text(b.y, ins)))
		}
		del, ins = source.At(s), source.At(t)
	}
	for _, d := range diffs {
		n := len(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			flush()
			rx, ry := source.Range{Start: s, End: s + n}, source.Range{Start: t, End: t + n}
			children = append(children, syntax.UnchangedLeaf(
				syntax.Info{Range: rx, Categories: []string{CategoryText}},
				syntax.Info{Range: ry, Categories: []string{CategoryText}},
				d.Text,
			))
			s += n
			t += n
			del, ins = source.At(s), source.At(t)
		case diffmatchpatch.DiffDelete:
			s += n
			del.End = s
		case diffmatchpatch.DiffInsert:
			t += n
			ins.End = t
		}
	}
	flush()

	return syntax.UnchangedIndexed(
		syntax.Info{Range: rx, Categories: []string{CategoryLines}},
		syntax.Info{Range: ry, Categories: []string{CategoryLines}},
		children...,
	)
}

func lineInfo(r source.Range) syntax.Info {
	return syntax.Info{Range: r, Categories: []string{CategoryLine}}
}

func runInfo(lines []*syntax.Term) syntax.Info {
	r := lines[0].Info.Range.Union(lines[len(lines)-1].Info.Range)
	return syntax.Info{Range: r, Categories: []string{CategoryLines}}
}
