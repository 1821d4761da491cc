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

// gitdiff renders patches for git using GIT_EXTERNAL_DIFF.
//
// git calls the external diff program with seven arguments per file pair:
//
//	path old-file old-hex old-mode new-file new-hex new-mode
//
// gitdiff accepts any number of these groups. Every pair is diffed line by line and rendered as a
// git style patch. Pairs that fail are logged and skipped, the remaining pairs are still written.
//
// Usage:
//
//	GIT_EXTERNAL_DIFF=gitdiff git diff
//	gitdiff [flags] path old-file old-hex old-mode new-file new-hex new-mode ...
//
// Defaults for all flags except -config can be set in a YAML file passed with -config, flags that
// are set explicitly take precedence.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/golang/glog"
	"znkr.io/syntaxdiff/linediff"
	"znkr.io/syntaxdiff/patch"
	"znkr.io/syntaxdiff/source"
)

var (
	configFile        = flag.String("config", "", "YAML file with default settings")
	contextLines      = flag.Int("context", defaults.Context, "number of context lines around a change")
	fullContext       = flag.Bool("full-context", defaults.FullContext, "render files completely")
	partition         = flag.Bool("partition", defaults.Partition, "keep all lines and start a new hunk after every run of unchanged lines")
	alwaysHunkHeaders = flag.Bool("always-hunk-headers", defaults.AlwaysHunkHeaders, "emit offset lines for hunks that only insert or delete")
	words             = flag.Bool("words", defaults.Words, "refine replaced lines word by word")
	indentHeuristic   = flag.Bool("indent-heuristic", defaults.IndentHeuristic, "shift changes to align with indentation")
	abbrev            = flag.Int("abbrev", defaults.Abbrev, "number of hex digits of blob ids")
)

func main() {
	flag.Parse()
	defer glog.Flush()

	s, err := loadSettings(*configFile)
	if err != nil {
		glog.Exitf("gitdiff: %v", err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "context":
			s.Context = *contextLines
		case "full-context":
			s.FullContext = *fullContext
		case "partition":
			s.Partition = *partition
		case "always-hunk-headers":
			s.AlwaysHunkHeaders = *alwaysHunkHeaders
		case "words":
			s.Words = *words
		case "indent-heuristic":
			s.IndentHeuristic = *indentHeuristic
		case "abbrev":
			s.Abbrev = *abbrev
		}
	})
	if err := s.validate(); err != nil {
		glog.Exitf("gitdiff: %v", err)
	}

	if err := run(context.Background(), s, flag.Args(), os.Stdout); err != nil {
		glog.Exitf("gitdiff: %v", err)
	}
}

func run(ctx context.Context, s settings, args []string, w io.Writer) error {
	entries, err := parseArgs(args)
	if err != nil {
		return err
	}

	pairs := make([]patch.Pair, 0, len(entries))
	for _, e := range entries {
		from, err := loadFile(e.path, e.oldFile, e.oldHex, e.oldMode, s.Abbrev)
		if err != nil {
			return err
		}
		to, err := loadFile(e.path, e.newFile, e.newHex, e.newMode, s.Abbrev)
		if err != nil {
			return err
		}
		d := linediff.Diff(from.Source, to.Source, s.lineOptions()...)
		pairs = append(pairs, patch.Pair{From: from, To: to, Diff: d})
	}

	glog.V(1).Infof("rendering %d file pairs", len(pairs))
	var failed int
	for i, r := range patch.RenderAll(ctx, pairs, s.patchOptions()...) {
		if r.Err != nil {
			glog.Errorf("%s: %v", entries[i].path, r.Err)
			failed++
			continue
		}
		if _, err := io.WriteString(w, r.Patch); err != nil {
			return fmt.Errorf("writing patch for %s: %w", entries[i].path, err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d file pairs failed", failed, len(pairs))
	}
	return nil
}

// entry is the description of a file pair git passes to an external diff program.
type entry struct {
	path                     string
	oldFile, oldHex, oldMode string
	newFile, newHex, newMode string
}

const argsPerEntry = 7

func parseArgs(args []string) ([]entry, error) {
	if len(args) == 0 || len(args)%argsPerEntry != 0 {
		return nil, fmt.Errorf("expected groups of %d args, got %d: %v", argsPerEntry, len(args), args)
	}
	var entries []entry
	for a := range slices.Chunk(args, argsPerEntry) {
		entries = append(entries, entry{
			path:    a[0],
			oldFile: a[1], oldHex: a[2], oldMode: a[3],
			newFile: a[4], newHex: a[5], newMode: a[6],
		})
	}
	return entries, nil
}

const devNull = "/dev/null"

// loadFile reads one side of a file pair. git uses /dev/null and the mode "." for a side where
// the file doesn't exist.
func loadFile(path, name, hex, mode string, abbrev int) (patch.File, error) {
	f := patch.File{Path: path, ID: abbreviate(hex, abbrev)}
	if name == devNull || mode == "." {
		return f, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return patch.File{}, fmt.Errorf("reading %s: %w", path, err)
	}
	f.Mode = patch.Mode(mode)
	f.Source = source.From(data)
	return f, nil
}

func abbreviate(hex string, n int) string {
	if hex == "." || hex == "" {
		return strings.Repeat("0", n)
	}
	if len(hex) > n {
		return hex[:n]
	}
	return hex
}
