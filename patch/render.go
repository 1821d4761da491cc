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

package patch

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"znkr.io/syntaxdiff"
	"znkr.io/syntaxdiff/internal/config"
	"znkr.io/syntaxdiff/syntax"
)

// Pair is a file pair together with the diff between the two files.
type Pair struct {
	From, To File
	Diff     *syntax.Diff
}

func (p Pair) path() string {
	if p.To.exists() {
		return p.To.Path
	}
	return p.From.Path
}

// Result is the outcome of rendering one [Pair].
type Result struct {
	Patch string
	Err   error
}

// RenderError reports a pair that could not be rendered, usually because its diff doesn't fit
// its sources.
type RenderError struct {
	Path  string
	Panic any // Value recovered from the panic.
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering patch for %s: %v", e.Path, e.Panic)
}

// Unwrap returns the recovered value if it is an error.
func (e *RenderError) Unwrap() error {
	err, _ := e.Panic.(error)
	return err
}

// RenderAll renders the patches for all pairs concurrently. The result for pairs[i] is stored in
// the i-th element of the returned slice.
//
// Every diff is validated before it is rendered. A pair that fails validation or rendering does not
// affect any other pair, its result holds the validation error or a *[RenderError].
// Pairs that haven't started when ctx is done are not rendered, their result holds ctx.Err().
//
// The following options are supported: [syntaxdiff.Context], [syntaxdiff.FullContext],
// [syntaxdiff.Partition], [syntaxdiff.MaxDepth], [AlwaysHunkHeaders], [Concurrency]
func RenderAll(ctx context.Context, pairs []Pair, opts ...syntaxdiff.Option) []Result {
	cfg := config.FromOptions(opts, config.Context|config.MaxDepth|config.AlwaysHunkHeaders|config.Concurrency)

	results := make([]Result, len(pairs))
	var g errgroup.Group
	g.SetLimit(cfg.Concurrency)
	for i, p := range pairs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Patch, results[i].Err = render(p, cfg)
			return nil
		})
	}
	// The goroutines never return an error, results and errors are stored per pair. The group
	// only limits concurrency and waits for completion.
	_ = g.Wait()
	return results
}

func render(p Pair, cfg config.Config) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &RenderError{Path: p.path(), Panic: r}
		}
	}()
	if err := p.Diff.Validate(p.From.Source, p.To.Source); err != nil {
		return "", fmt.Errorf("invalid diff for %s: %w", p.path(), err)
	}
	return unified(p.From, p.To, p.Diff, cfg), nil
}
