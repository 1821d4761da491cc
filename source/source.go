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

// Package source provides immutable text buffers and the offset ranges that address them.
//
// Offsets are byte offsets. A [Range] is half-open and only meaningful together with the [Buffer]
// it was created for. All functions that take a range panic if the range lies outside the buffer;
// such a range is a bug in whatever produced it and is never clamped.
package source

import (
	"fmt"
	"strings"
	"unsafe"
)

// Buffer is an immutable view of the contents of one file.
type Buffer struct {
	data string
}

// From creates a buffer from a string or byte slice without copying it. The caller must not
// modify a byte slice after passing it to From.
func From[T string | []byte](in T) Buffer {
	switch in := any(in).(type) {
	case string:
		return Buffer{in}
	case []byte:
		return Buffer{unsafe.String(unsafe.SliceData(in), len(in))}
	}
	panic("never reached")
}

// Len returns the length of the buffer in bytes.
func (b Buffer) Len() int { return len(b.data) }

// IsEmpty reports whether the buffer has no content.
func (b Buffer) IsEmpty() bool { return len(b.data) == 0 }

// At returns the byte at offset i.
func (b Buffer) At(i int) byte {
	if i < 0 || i >= len(b.data) {
		panic(fmt.Sprintf("source: offset %d out of bounds for buffer of length %d", i, len(b.data)))
	}
	return b.data[i]
}

// All returns the range covering the whole buffer.
func (b Buffer) All() Range { return Range{0, len(b.data)} }

// String returns the contents of the buffer.
func (b Buffer) String() string { return b.data }

// Slice returns the text covered by r.
func (b Buffer) Slice(r Range) string {
	b.check(r)
	return b.data[r.Start:r.End]
}

// IsOpen reports whether r does not end a line, i.e. whether r is empty or the last byte in r is
// not a newline.
func (b Buffer) IsOpen(r Range) bool {
	b.check(r)
	return r.IsEmpty() || b.data[r.End-1] != '\n'
}

// LineRanges partitions r into the maximal sub-ranges that each lie within a single line of the
// buffer. Every sub-range but the last ends in a newline; the last one is open if r does not end a
// line. An empty range yields no sub-ranges.
func (b Buffer) LineRanges(r Range) []Range {
	b.check(r)
	s := b.data[r.Start:r.End]
	n := strings.Count(s, "\n")
	if len(s) > 0 && s[len(s)-1] != '\n' {
		n++
	}
	out := make([]Range, 0, n)
	for start := r.Start; start < r.End; {
		end := r.End
		if i := strings.IndexByte(b.data[start:r.End], '\n'); i >= 0 {
			end = start + i + 1
		}
		out = append(out, Range{start, end})
		start = end
	}
	return out
}

func (b Buffer) check(r Range) {
	if r.Start < 0 || r.End < r.Start || r.End > len(b.data) {
		panic(fmt.Sprintf("source: range %v out of bounds for buffer of length %d", r, len(b.data)))
	}
}

// Range is the half-open interval [Start, End) of byte offsets into a [Buffer].
type Range struct {
	Start, End int
}

// At returns the empty range at offset i.
func At(i int) Range { return Range{i, i} }

// Len returns the number of bytes covered by r.
func (r Range) Len() int { return r.End - r.Start }

// IsEmpty reports whether r covers no bytes.
func (r Range) IsEmpty() bool { return r.Start == r.End }

// Union returns the smallest range covering both r and o.
func (r Range) Union(o Range) Range {
	return Range{min(r.Start, o.Start), max(r.End, o.End)}
}

func (r Range) String() string { return fmt.Sprintf("[%d:%d)", r.Start, r.End) }
