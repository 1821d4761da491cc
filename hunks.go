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

package syntaxdiff

import (
	"iter"
	"slices"

	"znkr.io/syntaxdiff/align"
	"znkr.io/syntaxdiff/internal/config"
	"znkr.io/syntaxdiff/source"
	"znkr.io/syntaxdiff/syntax"
)

// Change is a run of change rows together with the context rows immediately before it.
type Change struct {
	Context []align.Row // Context rows before the change.
	Rows    []align.Row // Change rows, each has inserted, deleted, or replaced content.
}

// Hunk describes a sequence of changes with surrounding context.
type Hunk struct {
	// Line number (1-based) of the first line of the hunk in left and right. Both are 0 for the
	// hunk that describes two empty files.
	LeftOffset, RightOffset int

	Changes  []Change    // Changes in this hunk, separated by their leading context.
	Trailing []align.Row // Context rows after the last change.
}

// Len returns the number of lines the hunk covers in left and right.
func (h Hunk) Len() (left, right int) {
	count := func(rows []align.Row) {
		for _, r := range rows {
			dl, dr := r.Increment()
			left += dl
			right += dr
		}
	}
	for _, c := range h.Changes {
		count(c.Context)
		count(c.Rows)
	}
	count(h.Trailing)
	return left, right
}

// Hunks aligns the diff d between left and right and groups the resulting rows into hunks.
//
// If left and right are both empty, the output is a single empty hunk. Otherwise, if there are no
// changes, the output has length zero.
//
// The following options are supported: [Context], [FullContext], [Partition], [MaxDepth]
func Hunks(d *syntax.Diff, left, right source.Buffer, opts ...Option) []Hunk {
	cfg := config.FromOptions(opts, config.Context|config.MaxDepth)
	if left.IsEmpty() && right.IsEmpty() {
		return []Hunk{{}}
	}
	rows, _, _ := align.SplitDiff(d, left, right, MaxDepth(cfg.MaxDepth))
	return hunks(rows, left, right, cfg)
}

// HunksFromRows groups rows produced by [align.SplitDiff] into hunks. See [Hunks] for details.
//
// The following options are supported: [Context], [FullContext], [Partition]
func HunksFromRows(rows []align.Row, left, right source.Buffer, opts ...Option) []Hunk {
	cfg := config.FromOptions(opts, config.Context)
	if left.IsEmpty() && right.IsEmpty() {
		return []Hunk{{}}
	}
	return hunks(rows, left, right, cfg)
}

func hunks(rows []align.Row, left, right source.Buffer, cfg config.Config) []Hunk {
	changed := make([]bool, len(rows))
	for i, r := range rows {
		changed[i] = !r.IsContext(left, right)
	}
	if cfg.Context == config.Partition {
		return slices.Collect(partition(rows, changed))
	}
	return slices.Collect(group(rows, changed, cfg.Context))
}

// partition splits rows into hunks that each hold one run of change rows. Every context row
// belongs to exactly one hunk: leading context of the first change, or trailing context of the
// change before it.
func partition(rows []align.Row, changed []bool) iter.Seq[Hunk] {
	return func(yield func(Hunk) bool) {
		n := len(rows)
		l, r := 1, 1 // line numbers of rows[i]
		for i := 0; i < n; {
			j := i
			for j < n && !changed[j] {
				j++
			}
			if j == n {
				return // no changes at all
			}
			e := j
			for e < n && changed[e] {
				e++
			}
			k := e
			for k < n && !changed[k] {
				k++
			}
			h := Hunk{
				LeftOffset:  l,
				RightOffset: r,
				Changes:     []Change{{Context: slices.Clip(rows[i:j]), Rows: slices.Clip(rows[j:e])}},
				Trailing:    slices.Clip(rows[e:k]),
			}
			dl, dr := h.Len()
			l, r = l+dl, r+dr
			if !yield(h) {
				return
			}
			i = k
		}
	}
}

// group finds all hunks in rows, changed[i] reports if rows[i] is a change row. With a negative
// context, all rows are part of a hunk.
func group(rows []align.Row, changed []bool, context int) iter.Seq[Hunk] {
	return func(yield func(Hunk) bool) {
		n := len(rows)
		l, r := 1, 1 // line numbers of rows[i]
		advance := func(rows []align.Row) {
			for _, row := range rows {
				dl, dr := row.Increment()
				l += dl
				r += dr
			}
		}
		next := func(k int) int {
			for k < n && !changed[k] {
				k++
			}
			return k
		}

		for i, j := 0, next(0); j < n; j = next(i) {
			// Skip context rows that are too far away from the change.
			start := i
			if context >= 0 {
				start = max(i, j-context)
			}
			advance(rows[i:start])

			h := Hunk{LeftOffset: l, RightOffset: r}
			for k := start; ; {
				e := j
				for e < n && changed[e] {
					e++
				}
				h.Changes = append(h.Changes, Change{
					Context: slices.Clip(rows[k:j]),
					Rows:    slices.Clip(rows[j:e]),
				})

				// Continue the hunk if the next change is close enough to share context.
				nj := next(e)
				if nj < n && (context < 0 || nj-e <= 2*context) {
					k, j = e, nj
					continue
				}

				end := nj
				if context >= 0 {
					end = min(nj, e+context)
				}
				h.Trailing = slices.Clip(rows[e:end])
				advance(rows[start:end])
				i = end
				break
			}
			if !yield(h) {
				return
			}
		}
	}
}
