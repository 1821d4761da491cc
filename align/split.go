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

package align

import (
	"fmt"
	"slices"

	"znkr.io/syntaxdiff/internal/config"
	"znkr.io/syntaxdiff/source"
	"znkr.io/syntaxdiff/syntax"
)

// SplitTerm splits t into the lines it covers in buf.
//
// Each line holds a single term of the same shape as t. Its children are the parts of t's
// children on that line and, as leaves without categories, the text between them.
//
// The following option is supported: [syntaxdiff.MaxDepth]
func SplitTerm(t *syntax.Term, buf source.Buffer, opts ...config.Option) ([]Line[*syntax.Term], source.Range) {
	cfg := config.FromOptions(opts, config.MaxDepth)
	s := splitter{maxDepth: cfg.MaxDepth}
	return s.term(t, buf), t.Info.Range
}

// SplitDiff splits d into rows of lines in left and right.
//
// Unchanged content is split on both sides and paired line by line. Inserted and deleted terms
// produce rows with an empty line on the other side. A replaced term is split on both sides
// independently and the shorter side is padded with empty lines.
//
// The following option is supported: [syntaxdiff.MaxDepth]
func SplitDiff(d *syntax.Diff, left, right source.Buffer, opts ...config.Option) ([]Row, source.Range, source.Range) {
	cfg := config.FromOptions(opts, config.MaxDepth)
	s := splitter{maxDepth: cfg.MaxDepth}
	pairs, rl, rr := s.diff(d, 0, 0, left, right)
	rows := make([]Row, len(pairs))
	for i, p := range pairs {
		rows[i] = Row(p)
	}
	return rows, rl, rr
}

type splitter struct {
	depth, maxDepth int
}

func (s *splitter) enter() {
	s.depth++
	if s.depth > s.maxDepth {
		panic(fmt.Sprintf("align: tree is nested deeper than %d levels", s.maxDepth))
	}
}

func (s *splitter) leave() { s.depth-- }

func (s *splitter) term(t *syntax.Term, buf source.Buffer) []Line[*syntax.Term] {
	s.enter()
	defer s.leave()

	if t.Kind == syntax.Leaf {
		ranges := buf.LineRanges(t.Info.Range)
		out := make([]Line[*syntax.Term], len(ranges))
		for i, r := range ranges {
			out[i] = Line[*syntax.Term]{leafTerm(t, r, buf)}
		}
		return out
	}

	ls := lines[item[*syntax.Term]]{buf: buf}
	gaps := func(r source.Range) {
		for _, r := range buf.LineRanges(r) {
			ls.add(Line[item[*syntax.Term]]{{frag: syntax.NewLeaf(syntax.Info{Range: r}, buf.Slice(r))}})
		}
	}
	pos := t.Info.Range.Start
	for i, c := range t.Children {
		gaps(source.Range{Start: pos, End: c.Info.Range.Start})
		key := keyAt(t.Keys, i)
		for _, l := range s.term(c, buf) {
			ls.add(tag(l, key))
		}
		pos = c.Info.Range.End
	}
	gaps(source.Range{Start: pos, End: t.Info.Range.End})

	out := make([]Line[*syntax.Term], len(ls.out))
	for i, l := range ls.out {
		out[i] = Line[*syntax.Term]{rebuild(l, t.Kind, func(r source.Range, children []*syntax.Term, keys []string) *syntax.Term {
			return &syntax.Term{
				Kind:     t.Kind,
				Info:     syntax.Info{Range: r, Categories: t.Info.Categories},
				Children: children,
				Keys:     keys,
			}
		})}
	}
	return out
}

// leafTerm returns the part of leaf t in r.
func leafTerm(t *syntax.Term, r source.Range, buf source.Buffer) *syntax.Term {
	if r == t.Info.Range {
		return t
	}
	return syntax.NewLeaf(syntax.Info{Range: r, Categories: t.Info.Categories}, buf.Slice(r))
}

func (s *splitter) diff(d *syntax.Diff, prevLeft, prevRight int, left, right source.Buffer) ([]pair[*Split], source.Range, source.Range) {
	s.enter()
	defer s.leave()

	rl, rr := d.Ranges(prevLeft, prevRight)
	switch d.Op {
	case syntax.Insert:
		return zip[*Split](nil, s.patch(d.Op, d.After, right)), rl, rr
	case syntax.Delete:
		return zip[*Split](s.patch(d.Op, d.Before, left), nil), rl, rr
	case syntax.Replace:
		return zip(s.patch(d.Op, d.Before, left), s.patch(d.Op, d.After, right)), rl, rr
	}

	if d.Kind == syntax.Leaf {
		return zip(unchangedLeaf(d.Left, left), unchangedLeaf(d.Right, right)), rl, rr
	}

	rs := rows[item[*Split]]{left: left, right: right, lastLeft: -1, lastRight: -1}
	gaps := func(gl, gr source.Range) {
		for _, p := range zip(gapLines(gl, left), gapLines(gr, right)) {
			rs.add(p)
		}
	}
	pl, pr := rl.Start, rr.Start
	for i, c := range d.Children {
		cl, cr := c.Ranges(pl, pr)
		gaps(source.Range{Start: pl, End: cl.Start}, source.Range{Start: pr, End: cr.Start})
		crows, cl, cr := s.diff(c, pl, pr, left, right)
		key := keyAt(d.Keys, i)
		for _, p := range crows {
			rs.add(pair[item[*Split]]{tag(p.Left, key), tag(p.Right, key)})
		}
		pl, pr = cl.End, cr.End
	}
	gaps(source.Range{Start: pl, End: rl.End}, source.Range{Start: pr, End: rr.End})

	out := make([]pair[*Split], len(rs.out))
	for i, p := range rs.out {
		out[i] = pair[*Split]{unchangedNode(d, d.Left, p.Left), unchangedNode(d, d.Right, p.Right)}
	}
	return out, rl, rr
}

// patch splits the changed term t and marks every line with op.
func (s *splitter) patch(op syntax.Op, t *syntax.Term, buf source.Buffer) []Line[*Split] {
	tlines := s.term(t, buf)
	out := make([]Line[*Split], len(tlines))
	for i, tl := range tlines {
		l := make(Line[*Split], len(tl))
		for j, t := range tl {
			l[j] = &Split{Op: op, Kind: t.Kind, Info: t.Info, Term: t}
		}
		out[i] = l
	}
	return out
}

func unchangedLeaf(info syntax.Info, buf source.Buffer) []Line[*Split] {
	ranges := buf.LineRanges(info.Range)
	out := make([]Line[*Split], len(ranges))
	for i, r := range ranges {
		out[i] = Line[*Split]{{
			Op:   syntax.Unchanged,
			Kind: syntax.Leaf,
			Info: syntax.Info{Range: r, Categories: info.Categories},
		}}
	}
	return out
}

// gapLines splits text between the children of a node into unchanged leaves without categories.
func gapLines(r source.Range, buf source.Buffer) []Line[item[*Split]] {
	ranges := buf.LineRanges(r)
	out := make([]Line[item[*Split]], len(ranges))
	for i, r := range ranges {
		out[i] = Line[item[*Split]]{{frag: &Split{
			Op:   syntax.Unchanged,
			Kind: syntax.Leaf,
			Info: syntax.Info{Range: r},
		}}}
	}
	return out
}

// unchangedNode reconstructs the unchanged container d on one side from the fragments in l.
func unchangedNode(d *syntax.Diff, info syntax.Info, l Line[item[*Split]]) Line[*Split] {
	if l.IsEmpty() {
		return nil
	}
	return Line[*Split]{rebuild(l, d.Kind, func(r source.Range, children []*Split, keys []string) *Split {
		return &Split{
			Op:       syntax.Unchanged,
			Kind:     d.Kind,
			Info:     syntax.Info{Range: r, Categories: info.Categories},
			Children: children,
			Keys:     keys,
		}
	})}
}

// item is a fragment tagged with the key of the child that produced it. Text between children has
// the empty key.
type item[F Fragment] struct {
	key  string
	frag F
}

func (it item[F]) Extent() source.Range { return it.frag.Extent() }

func tag[F Fragment](l Line[F], key string) Line[item[F]] {
	if l.IsEmpty() {
		return nil
	}
	out := make(Line[item[F]], len(l))
	for i, f := range l {
		out[i] = item[F]{key, f}
	}
	return out
}

func keyAt(keys []string, i int) string {
	if keys == nil {
		return ""
	}
	return keys[i]
}

// rebuild builds a container of the given kind from the fragments on a single line. Keys are only
// passed on for keyed containers, in line order.
func rebuild[F Fragment, N any](l Line[item[F]], kind syntax.Kind, build func(r source.Range, children []F, keys []string) N) N {
	children := make([]F, len(l))
	var keys []string
	if kind == syntax.Keyed {
		keys = make([]string, len(l))
	}
	for i, it := range l {
		children[i] = it.frag
		if keys != nil {
			keys[i] = it.key
		}
	}
	return build(l.Range(), children, keys)
}

// lines accumulates the lines of a single side, an open line absorbs the line that follows it.
type lines[F Fragment] struct {
	buf source.Buffer
	out []Line[F]
}

func (ls *lines[F]) add(l Line[F]) {
	if l.IsEmpty() {
		return
	}
	if n := len(ls.out); n > 0 && ls.buf.IsOpen(ls.out[n-1].Range()) {
		ls.out[n-1] = slices.Concat(ls.out[n-1], l)
		return
	}
	ls.out = append(ls.out, l)
}

type pair[F Fragment] struct {
	Left, Right Line[F]
}

func zip[F Fragment](left, right []Line[F]) []pair[F] {
	out := make([]pair[F], max(len(left), len(right)))
	for i := range out {
		if i < len(left) {
			out[i].Left = left[i]
		}
		if i < len(right) {
			out[i].Right = right[i]
		}
	}
	return out
}

// rows accumulates rows, joining lines with the open line on the same side independently for both
// sides. Content that can't be joined starts a new row.
type rows[F Fragment] struct {
	left, right source.Buffer
	out         []pair[F]

	// Index of the last row with content on the left and right side, -1 if there is none.
	lastLeft, lastRight int
}

func (rs *rows[F]) add(p pair[F]) {
	if !p.Left.IsEmpty() && rs.lastLeft >= 0 && rs.left.IsOpen(rs.out[rs.lastLeft].Left.Range()) {
		rs.out[rs.lastLeft].Left = slices.Concat(rs.out[rs.lastLeft].Left, p.Left)
		p.Left = nil
	}
	if !p.Right.IsEmpty() && rs.lastRight >= 0 && rs.right.IsOpen(rs.out[rs.lastRight].Right.Range()) {
		rs.out[rs.lastRight].Right = slices.Concat(rs.out[rs.lastRight].Right, p.Right)
		p.Right = nil
	}
	if p.Left.IsEmpty() && p.Right.IsEmpty() {
		return
	}
	rs.out = append(rs.out, p)
	if !p.Left.IsEmpty() {
		rs.lastLeft = len(rs.out) - 1
	}
	if !p.Right.IsEmpty() {
		rs.lastRight = len(rs.out) - 1
	}
}
