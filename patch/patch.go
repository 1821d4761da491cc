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

// Package patch renders aligned structural diffs as git style patches.
//
// A patch consists of a header block describing the file pair, followed by one or more hunks in
// unified format. Unlike a line diff, the changed lines of a hunk are derived from the rows that
// [syntaxdiff.Hunks] produces. All deleted lines of a change are written before all inserted lines.
package patch

import (
	"fmt"
	"io"
	"strings"

	"znkr.io/syntaxdiff"
	"znkr.io/syntaxdiff/align"
	"znkr.io/syntaxdiff/internal/config"
	"znkr.io/syntaxdiff/source"
	"znkr.io/syntaxdiff/syntax"
)

const (
	prefixMatch  = " "
	prefixDelete = "-"
	prefixInsert = "+"
)

const missingNewline = "\n\\ No newline at end of file\n"

const devNull = "/dev/null"

// Mode is a git file mode in octal notation. The empty mode means the file doesn't exist.
type Mode string

// Common file modes.
const (
	Regular    Mode = "100644"
	Executable Mode = "100755"
	Symlink    Mode = "120000"
)

// File describes one side of a file pair.
type File struct {
	Path   string        // Path relative to the repository root.
	ID     string        // Blob identity, usually an abbreviated object hash.
	Mode   Mode          // File mode, empty if the file doesn't exist on this side.
	Source source.Buffer // Content of the file.
}

func (f File) exists() bool { return f.Mode != "" }

// Header returns the header block for the file pair from and to.
func Header(from, to File) string {
	var b strings.Builder
	writeHeader(&b, from, to)
	return b.String()
}

func writeHeader(b *strings.Builder, from, to File) {
	fmt.Fprintf(b, "diff --git a/%s b/%s\n", from.Path, to.Path)
	switch {
	case !from.exists() && !to.exists():
		fmt.Fprintf(b, "index %s..%s\n", from.ID, to.ID)
	case !from.exists():
		fmt.Fprintf(b, "new file mode %s\n", to.Mode)
		fmt.Fprintf(b, "index %s..%s\n", from.ID, to.ID)
	case !to.exists():
		fmt.Fprintf(b, "old file mode %s\n", from.Mode)
		fmt.Fprintf(b, "index %s..%s\n", from.ID, to.ID)
	case from.Mode == to.Mode:
		fmt.Fprintf(b, "index %s..%s %s\n", from.ID, to.ID, from.Mode)
	default:
		fmt.Fprintf(b, "old mode %s\n", from.Mode)
		fmt.Fprintf(b, "new mode %s\n", to.Mode)
		fmt.Fprintf(b, "index %s..%s\n", from.ID, to.ID)
	}
	if from.exists() {
		fmt.Fprintf(b, "--- a/%s\n", from.Path)
	} else {
		b.WriteString("--- " + devNull + "\n")
	}
	if to.exists() {
		fmt.Fprintf(b, "+++ b/%s\n", to.Path)
	} else {
		b.WriteString("+++ " + devNull + "\n")
	}
}

// Unified aligns the diff d between from.Source and to.Source and returns it as a patch.
//
// If the sources are identical, the patch consists of the header block only.
//
// The following options are supported: [syntaxdiff.Context], [syntaxdiff.FullContext],
// [syntaxdiff.Partition], [syntaxdiff.MaxDepth], [AlwaysHunkHeaders]
func Unified(from, to File, d *syntax.Diff, opts ...syntaxdiff.Option) string {
	cfg := config.FromOptions(opts, config.Context|config.MaxDepth|config.AlwaysHunkHeaders)
	return unified(from, to, d, cfg)
}

// Write writes the patch for d to w. See [Unified] for details.
func Write(w io.Writer, from, to File, d *syntax.Diff, opts ...syntaxdiff.Option) error {
	if _, err := io.WriteString(w, Unified(from, to, d, opts...)); err != nil {
		return fmt.Errorf("writing patch for %s: %w", to.Path, err)
	}
	return nil
}

func unified(from, to File, d *syntax.Diff, cfg config.Config) string {
	hunks := syntaxdiff.Hunks(d, from.Source, to.Source, hunkOptions(cfg)...)

	var b strings.Builder
	writeHeader(&b, from, to)
	writeHunks(&b, hunks, from.Source, to.Source, cfg)
	return b.String()
}

// Body returns hunks in unified format, without a header block.
//
// Each hunk starts with an offset line, followed by the lines of the changes in the hunk. The
// offset line is omitted if one side of the hunk has no lines, unless [AlwaysHunkHeaders] is
// set.
//
// The following options are supported: [AlwaysHunkHeaders]
func Body(hunks []syntaxdiff.Hunk, left, right source.Buffer, opts ...syntaxdiff.Option) string {
	cfg := config.FromOptions(opts, config.AlwaysHunkHeaders)
	var b strings.Builder
	writeHunks(&b, hunks, left, right, cfg)
	return b.String()
}

func writeHunks(b *strings.Builder, hunks []syntaxdiff.Hunk, left, right source.Buffer, cfg config.Config) {
	for _, h := range hunks {
		ll, rl := h.Len()
		if cfg.AlwaysHunkHeaders || (ll > 0 && rl > 0) {
			// A side without lines is conventionally addressed by the line before the hunk.
			lo, ro := h.LeftOffset, h.RightOffset
			if ll == 0 && lo > 0 {
				lo--
			}
			if rl == 0 && ro > 0 {
				ro--
			}
			fmt.Fprintf(b, "@@ -%d,%d +%d,%d @@\n", lo, ll, ro, rl)
		}
		for _, c := range h.Changes {
			writeContext(b, c.Context, right)
			for _, r := range c.Rows {
				if !r.Left.IsEmpty() {
					writeLine(b, prefixDelete, r.Left.Range(), left)
				}
			}
			for _, r := range c.Rows {
				if !r.Right.IsEmpty() {
					writeLine(b, prefixInsert, r.Right.Range(), right)
				}
			}
		}
		writeContext(b, h.Trailing, right)
	}
}

func writeContext(b *strings.Builder, rows []align.Row, right source.Buffer) {
	for _, r := range rows {
		writeLine(b, prefixMatch, r.Right.Range(), right)
	}
}

// writeLine writes the line covering r in buf. A line that doesn't include its newline is
// terminated, only the open last line of buf gets the missing newline marker.
func writeLine(b *strings.Builder, prefix string, r source.Range, buf source.Buffer) {
	b.WriteString(prefix)
	b.WriteString(buf.Slice(r))
	switch {
	case !buf.IsOpen(r):
	case r.End == buf.Len():
		b.WriteString(missingNewline)
	default:
		b.WriteString("\n")
	}
}

func hunkOptions(cfg config.Config) []syntaxdiff.Option {
	var context syntaxdiff.Option
	switch cfg.Context {
	case config.AllContext:
		context = syntaxdiff.FullContext()
	case config.Partition:
		context = syntaxdiff.Partition()
	default:
		context = syntaxdiff.Context(cfg.Context)
	}
	return []syntaxdiff.Option{context, syntaxdiff.MaxDepth(cfg.MaxDepth)}
}
