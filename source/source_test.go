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

package source

import (
	"strings"
	"testing"
	"unsafe"

	"github.com/google/go-cmp/cmp"
)

func TestFromString(t *testing.T) {
	str := "my string"

	got := From(str)
	if unsafe.StringData(got.data) != unsafe.StringData(str) {
		t.Errorf("From(str) points to different memory")
	}
	if got.Len() != len(str) {
		t.Errorf("got.Len() = %v, want %v", got.Len(), len(str))
	}

	t.Run("allocs", func(t *testing.T) {
		allocs := testing.AllocsPerRun(10, func() {
			_ = From(str)
		})
		if allocs > 0 {
			t.Errorf("From[string](...) allocated %v times, want 0", allocs)
		}
	})
}

func TestFromBytes(t *testing.T) {
	bytes := []byte("my byte slice")

	got := From(bytes)
	if unsafe.StringData(got.data) != unsafe.SliceData(bytes) {
		t.Errorf("From(bytes) points to different memory")
	}
	if got.Len() != len(bytes) {
		t.Errorf("got.Len() = %v, want %v", got.Len(), len(bytes))
	}
}

func TestLineRanges(t *testing.T) {
	tests := []struct {
		name  string
		input string
		r     Range
		want  []Range
	}{
		{
			name:  "empty-buffer",
			input: "",
			r:     Range{0, 0},
			want:  []Range{},
		},
		{
			name:  "empty-range",
			input: "foo\nbar\n",
			r:     Range{4, 4},
			want:  []Range{},
		},
		{
			name:  "newline-only",
			input: "\n",
			r:     Range{0, 1},
			want:  []Range{{0, 1}},
		},
		{
			name:  "whole-buffer",
			input: "foo\nbar\nbaz\n",
			r:     Range{0, 12},
			want:  []Range{{0, 4}, {4, 8}, {8, 12}},
		},
		{
			name:  "missing-newline",
			input: "foo\nbar",
			r:     Range{0, 7},
			want:  []Range{{0, 4}, {4, 7}},
		},
		{
			name:  "clipped-start",
			input: "foo\nbar\n",
			r:     Range{2, 8},
			want:  []Range{{2, 4}, {4, 8}},
		},
		{
			name:  "clipped-end",
			input: "foo\nbar\n",
			r:     Range{0, 6},
			want:  []Range{{0, 4}, {4, 6}},
		},
		{
			name:  "within-line",
			input: "foo bar\n",
			r:     Range{1, 5},
			want:  []Range{{1, 5}},
		},
		{
			name:  "blank-lines",
			input: "\n\n\n",
			r:     Range{0, 3},
			want:  []Range{{0, 1}, {1, 2}, {2, 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := From(tt.input)
			got := b.LineRanges(tt.r)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("LineRanges(%v) result difference [-want, +got]:\n%s", tt.r, diff)
			}

			// The ranges must be contiguous and cover r exactly.
			var sb strings.Builder
			for _, r := range got {
				sb.WriteString(b.Slice(r))
			}
			if sb.String() != b.Slice(tt.r) {
				t.Errorf("LineRanges(%v) covers %q, want %q", tt.r, sb.String(), b.Slice(tt.r))
			}
		})
	}
}

func TestIsOpen(t *testing.T) {
	b := From("foo\nbar")
	tests := []struct {
		r    Range
		want bool
	}{
		{Range{0, 0}, true},
		{Range{0, 3}, true},
		{Range{0, 4}, false},
		{Range{4, 7}, true},
		{Range{3, 4}, false},
	}
	for _, tt := range tests {
		if got := b.IsOpen(tt.r); got != tt.want {
			t.Errorf("IsOpen(%v) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestUnion(t *testing.T) {
	tests := []struct {
		a, b, want Range
	}{
		{Range{0, 3}, Range{3, 5}, Range{0, 5}},
		{Range{3, 5}, Range{0, 3}, Range{0, 5}},
		{Range{1, 10}, Range{2, 4}, Range{1, 10}},
		{Range{4, 4}, Range{4, 6}, Range{4, 6}},
	}
	for _, tt := range tests {
		if got := tt.a.Union(tt.b); got != tt.want {
			t.Errorf("%v.Union(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestOutOfBounds(t *testing.T) {
	b := From("foo\n")
	tests := []struct {
		name string
		fn   func()
	}{
		{"slice-past-end", func() { b.Slice(Range{2, 5}) }},
		{"slice-negative", func() { b.Slice(Range{-1, 2}) }},
		{"slice-inverted", func() { b.Slice(Range{3, 2}) }},
		{"line-ranges", func() { b.LineRanges(Range{0, 9}) }},
		{"is-open", func() { b.IsOpen(Range{0, 9}) }},
		{"at", func() { b.At(4) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic")
				}
			}()
			tt.fn()
		})
	}
}
