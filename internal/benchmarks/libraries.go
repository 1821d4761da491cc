// Package benchmarks compares the line level pipeline of this module to other diff libraries.
package benchmarks

import (
	"bytes"
	"strings"

	udiff "github.com/aymanbagabas/go-udiff"
	godebug "github.com/kylelemons/godebug/diff"
	mb0 "github.com/mb0/diff"
	gointernal "github.com/rogpeppe/go-internal/diff"
	"github.com/sergi/go-diff/diffmatchpatch"
	"znkr.io/diff"
	"znkr.io/diff/textdiff"
	"znkr.io/syntaxdiff"
	"znkr.io/syntaxdiff/linediff"
	"znkr.io/syntaxdiff/patch"
	"znkr.io/syntaxdiff/source"
)

// Impl is a diff implementation that produces output close to unified format.
type Impl struct {
	Name string
	Diff func(x, y []byte) []byte
}

var Impls = []Impl{
	{
		Name: "syntaxdiff",
		Diff: func(x, y []byte) []byte { return body(x, y, linediff.IndentHeuristic()) },
	},
	{
		Name: "syntaxdiff-words",
		Diff: func(x, y []byte) []byte { return body(x, y, linediff.IndentHeuristic(), linediff.Words()) },
	},
	{
		Name: "znkr",
		Diff: func(x, y []byte) []byte {
			return textdiff.Unified(x, y, textdiff.IndentHeuristic())
		},
	},
	{
		Name: "znkr-minimal",
		Diff: func(x, y []byte) []byte {
			return textdiff.Unified(x, y, diff.Minimal())
		},
	},
	{
		Name: "go-internal",
		Diff: func(x, y []byte) []byte {
			return gointernal.Diff("x", x, "y", y)
		},
	},
	{
		Name: "udiff",
		Diff: func(x, y []byte) []byte {
			return []byte(udiff.Unified("x", "y", string(x), string(y)))
		},
	},
	{
		Name: "godebug",
		Diff: func(x, y []byte) []byte {
			// Not unified format, but every changed line has a '+' or '-' prefix.
			return []byte(godebug.Diff(string(x), string(y)))
		},
	},
	{
		Name: "diffmatchpatch",
		Diff: func(x, y []byte) []byte {
			dmp := diffmatchpatch.New()
			rx, ry, lines := dmp.DiffLinesToRunes(string(x), string(y))
			diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(rx, ry, false), lines)

			var w lineWriter
			for _, d := range diffs {
				switch d.Type {
				case diffmatchpatch.DiffInsert:
					w.text('+', d.Text)
				case diffmatchpatch.DiffDelete:
					w.text('-', d.Text)
				case diffmatchpatch.DiffEqual:
					w.text(' ', d.Text)
				}
			}
			return w.Bytes()
		},
	},
	{
		Name: "mb0",
		Diff: func(x, y []byte) []byte {
			d := mb0lines{
				x: bytes.SplitAfter(x, []byte("\n")),
				y: bytes.SplitAfter(y, []byte("\n")),
			}
			var w lineWriter
			a := 0
			for _, ch := range mb0.Diff(len(d.x), len(d.y), d) {
				w.lines(' ', d.x[a:ch.A])
				w.lines('-', d.x[ch.A:ch.A+ch.Del])
				w.lines('+', d.y[ch.B:ch.B+ch.Ins])
				a = ch.A + ch.Del
			}
			w.lines(' ', d.x[a:])
			return w.Bytes()
		},
	},
}

// body renders the hunks of a line diff of x and y without a header.
func body(x, y []byte, opts ...syntaxdiff.Option) []byte {
	bx, by := source.From(x), source.From(y)
	d := linediff.Diff(bx, by, opts...)
	return []byte(patch.Body(syntaxdiff.Hunks(d, bx, by), bx, by, patch.AlwaysHunkHeaders()))
}

// lineWriter writes lines with a one character prefix.
type lineWriter struct {
	bytes.Buffer
}

func (w *lineWriter) text(prefix byte, text string) {
	for line := range strings.Lines(text) {
		w.WriteByte(prefix)
		w.WriteString(line)
	}
}

func (w *lineWriter) lines(prefix byte, lines [][]byte) {
	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		w.WriteByte(prefix)
		w.Write(line)
	}
}

type mb0lines struct {
	x, y [][]byte
}

func (d mb0lines) Equal(i, j int) bool { return bytes.Equal(d.x[i], d.y[j]) }
