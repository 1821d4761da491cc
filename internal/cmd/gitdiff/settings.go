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
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
	"znkr.io/syntaxdiff"
	"znkr.io/syntaxdiff/linediff"
	"znkr.io/syntaxdiff/patch"
)

// settings holds the configuration of gitdiff. It can be read from a YAML file.
type settings struct {
	Context           int  `yaml:"context"`
	FullContext       bool `yaml:"full_context"`
	Partition         bool `yaml:"partition"`
	AlwaysHunkHeaders bool `yaml:"always_hunk_headers"`
	Words             bool `yaml:"words"`
	IndentHeuristic   bool `yaml:"indent_heuristic"`
	Abbrev            int  `yaml:"abbrev"`
}

var defaults = settings{
	Context:         3,
	IndentHeuristic: true,
	Abbrev:          7,
}

// loadSettings reads settings from the YAML file at path. Keys missing from the file keep their
// default value. An empty path returns the defaults.
func loadSettings(path string) (settings, error) {
	s := defaults
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return settings{}, fmt.Errorf("reading config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return settings{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := s.validate(); err != nil {
		return settings{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return s, nil
}

func (s settings) validate() error {
	if s.Context < 0 {
		return fmt.Errorf("context must not be negative, got %d", s.Context)
	}
	if s.Abbrev < 4 || s.Abbrev > 40 {
		return fmt.Errorf("abbrev must be between 4 and 40, got %d", s.Abbrev)
	}
	return nil
}

func (s settings) lineOptions() []syntaxdiff.Option {
	var opts []syntaxdiff.Option
	if s.IndentHeuristic {
		opts = append(opts, linediff.IndentHeuristic())
	}
	if s.Words {
		opts = append(opts, linediff.Words())
	}
	return opts
}

func (s settings) patchOptions() []syntaxdiff.Option {
	opts := []syntaxdiff.Option{syntaxdiff.Context(s.Context)}
	if s.FullContext {
		opts = append(opts, syntaxdiff.FullContext())
	}
	if s.Partition {
		opts = append(opts, syntaxdiff.Partition())
	}
	if s.AlwaysHunkHeaders {
		opts = append(opts, patch.AlwaysHunkHeaders())
	}
	return opts
}
