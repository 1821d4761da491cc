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

package syntaxdiff_test

import (
	"fmt"

	"znkr.io/syntaxdiff"
	"znkr.io/syntaxdiff/linediff"
	"znkr.io/syntaxdiff/source"
)

func ExampleHunks() {
	x := source.From("one\ntwo\nthree\nfour\nfive\nsix\nseven\n")
	y := source.From("one\n2\nthree\nfour\nfive\nsix\n7\n")
	d := linediff.Diff(x, y)

	for _, context := range []int{1, 2} {
		fmt.Printf("Context(%d):\n", context)
		for _, h := range syntaxdiff.Hunks(d, x, y, syntaxdiff.Context(context)) {
			l, r := h.Len()
			fmt.Printf("  hunk at %d,%d with %d,%d lines and %d changes\n", h.LeftOffset, h.RightOffset, l, r, len(h.Changes))
		}
	}
	// Output:
	// Context(1):
	//   hunk at 1,1 with 3,3 lines and 1 changes
	//   hunk at 6,6 with 2,2 lines and 1 changes
	// Context(2):
	//   hunk at 1,1 with 7,7 lines and 2 changes
}
