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

// Package syntaxdiff lays out structural diffs as text.
//
// A structural diff describes how one syntax tree was transformed into another (see
// [znkr.io/syntaxdiff/syntax]). This package and its subpackages don't compute such diffs, they
// align them with the lines of the two source files and group the result into hunks:
//
//   - [znkr.io/syntaxdiff/align] splits a diff into rows, pairs of lines on both sides.
//   - [Hunks] groups rows into hunks of changes with surrounding context.
//   - [znkr.io/syntaxdiff/patch] renders hunks as a unified diff with git style headers.
//
// A line based diff of plain text can be obtained from [znkr.io/syntaxdiff/linediff], it's useful
// to exercise the pipeline without a parser.
//
// Performance: Alignment and hunk grouping are linear in the size of the diff tree plus the length
// of both sources. All inputs are immutable, diffs for different files can be laid out in parallel.
package syntaxdiff
