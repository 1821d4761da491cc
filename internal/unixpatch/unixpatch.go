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

// Package unixpatch applies patches with the unix patch tool.
//
// This package is only for testing.
package unixpatch

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Patch applies the git style patch p to orig and returns the result. The paths in the header
// of p are ignored, the patch is always applied to orig.
func Patch(orig, p string) (string, error) {
	// patch(1) refuses a patch without hunks, there is nothing to apply in that case.
	if !hasHunks(p) {
		return orig, nil
	}

	dir, err := os.MkdirTemp("", "unixpatch-*")
	if err != nil {
		return "", fmt.Errorf("creating temporary directory: %v", err)
	}
	defer os.RemoveAll(dir)

	var (
		patchfile = filepath.Join(dir, "patch")
		origfile  = filepath.Join(dir, "orig")
		outfile   = filepath.Join(dir, "out")
	)
	if err := os.WriteFile(patchfile, []byte(p), 0o644); err != nil {
		return "", fmt.Errorf("writing patch file: %v", err)
	}
	if err := os.WriteFile(origfile, []byte(orig), 0o644); err != nil {
		return "", fmt.Errorf("writing orig file: %v", err)
	}

	cmd := exec.Command("patch", "--batch", "--unified", "--no-backup-if-mismatch", "-i", patchfile, "-o", outfile, origfile)
	var out bytes.Buffer
	cmd.Stdout, cmd.Stderr = &out, &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("running %s: %v\n%s", strings.Join(cmd.Args, " "), err, out.String())
	}

	result, err := os.ReadFile(outfile)
	if err != nil {
		return "", fmt.Errorf("reading patched file: %v", err)
	}
	return string(result), nil
}

func hasHunks(p string) bool {
	for line := range strings.Lines(p) {
		if strings.HasPrefix(line, "@@ ") {
			return true
		}
	}
	return false
}
