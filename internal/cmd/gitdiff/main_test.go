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

package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	oldA := writeFile(t, dir, "old-a", "a\nb\n")
	newA := writeFile(t, dir, "new-a", "a\nc\nb\n")
	newB := writeFile(t, dir, "new-b", "b\n")

	args := []string{
		"a.txt", oldA, "1111111111", "100644", newA, "2222222222", "100644",
		"b.txt", "/dev/null", ".", ".", newB, "3333333333", "100755",
	}
	var out strings.Builder
	if err := run(context.Background(), defaults, args, &out); err != nil {
		t.Fatalf("run(...) failed: %v", err)
	}

	want := "diff --git a/a.txt b/a.txt\n" +
		"index 1111111..2222222 100644\n" +
		"--- a/a.txt\n" +
		"+++ b/a.txt\n" +
		"@@ -1,2 +1,3 @@\n" +
		" a\n" +
		"+c\n" +
		" b\n" +
		"diff --git a/b.txt b/b.txt\n" +
		"new file mode 100755\n" +
		"index 0000000..3333333\n" +
		"--- /dev/null\n" +
		"+++ b/b.txt\n" +
		"+b\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("run(...) output is different [-want,+got]:\n%s", diff)
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{
			name: "no-args",
		},
		{
			name: "incomplete",
			args: []string{"a.txt", "old", "1111111", "100644"},
		},
		{
			name: "missing-file",
			args: []string{"a.txt", "does-not-exist", "1111111", "100644", "/dev/null", ".", "."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			if err := run(context.Background(), defaults, tt.args, &out); err == nil {
				t.Errorf("run(...) succeeded, want error")
			}
		})
	}
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		want    settings
		wantErr bool
	}{
		{
			name:    "empty",
			content: "",
			want:    defaults,
		},
		{
			name:    "partial",
			content: "context: 5\nwords: true\n",
			want: settings{
				Context:         5,
				Words:           true,
				IndentHeuristic: true,
				Abbrev:          7,
			},
		},
		{
			name:    "all",
			content: "context: 1\nfull_context: true\npartition: true\nalways_hunk_headers: true\nwords: true\nindent_heuristic: false\nabbrev: 12\n",
			want: settings{
				Context:           1,
				FullContext:       true,
				Partition:         true,
				AlwaysHunkHeaders: true,
				Words:             true,
				IndentHeuristic:   false,
				Abbrev:            12,
			},
		},
		{
			name:    "unknown-key",
			content: "colour: always\n",
			wantErr: true,
		},
		{
			name:    "negative-context",
			content: "context: -1\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.name+".yaml", tt.content)
			got, err := loadSettings(path)
			if tt.wantErr {
				if err == nil {
					t.Errorf("loadSettings(...) succeeded, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("loadSettings(...) failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("loadSettings(...) result is different [-want,+got]:\n%s", diff)
			}
		})
	}

	if got, err := loadSettings(""); err != nil || got != defaults {
		t.Errorf("loadSettings(\"\") = %v, %v, want %v, nil", got, err, defaults)
	}
}

func TestAbbreviate(t *testing.T) {
	tests := []struct {
		hex  string
		want string
	}{
		{"0123456789abcdef", "0123456"},
		{"abc", "abc"},
		{".", "0000000"},
	}
	for _, tt := range tests {
		if got := abbreviate(tt.hex, 7); got != tt.want {
			t.Errorf("abbreviate(%q, 7) = %q, want %q", tt.hex, got, tt.want)
		}
	}
}
