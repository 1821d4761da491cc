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

// Package config provides shared configuration mechanisms for packages this module.
//
// This package is an implementation detail, the configuration surface for users is provided via
// syntaxdiff.Option.
package config

import "runtime"

// Config collects all configurable parameters for the packages in this module.
type Config struct {
	// Context is the number of context rows to include as a prefix and postfix for hunks, or one
	// of AllContext and Partition.
	Context int

	// MaxDepth limits how deeply nested a diff or term may be before alignment gives up.
	MaxDepth int

	// If set, patch emits a hunk header even if one side of the hunk is empty.
	AlwaysHunkHeaders bool

	// Number of file pairs rendered concurrently by patch.RenderAll.
	Concurrency int

	// If set, linediff applies indent heuristics when matching lines.
	IndentHeuristic bool

	// If set, linediff refines replaced lines into word level edits.
	Words bool
}

// Special values for Config.Context.
const (
	AllContext = -1 // Keep all rows in a single hunk.
	Partition  = -2 // Split hunks at every run of context rows, keeping all rows.
)

// Default is the default configuration.
var Default = Config{
	Context:           3,
	MaxDepth:          10000,
	AlwaysHunkHeaders: false,
	Concurrency:       0, // runtime.GOMAXPROCS(0), resolved in FromOptions
	IndentHeuristic:   false,
	Words:             false,
}

// Flag describes a single config entry. This is used to detect if configurations are being set
// that are not supported by a function.
type Flag int

const (
	Context Flag = 1 << iota
	MaxDepth
	AlwaysHunkHeaders
	Concurrency
	IndentHeuristic
	Words
)

// Option is the mechanism used to expose the configuration to users.
type Option func(*Config) Flag

// FromOptions creates a configuration from a set of options.
func FromOptions(opts []Option, allowed Flag) Config {
	cfg := Default
	for _, opt := range opts {
		flag := opt(&cfg)
		if flag & ^allowed != 0 {
			panic("Option " + printFlag(flag) + " not allowed here")
		}
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = runtime.GOMAXPROCS(0)
	}
	if cfg.MaxDepth <= 0 {
		panic("MaxDepth must be positive")
	}
	return cfg
}

func printFlag(flag Flag) string {
	switch flag {
	case Context:
		return "syntaxdiff.Context"
	case MaxDepth:
		return "syntaxdiff.MaxDepth"
	case AlwaysHunkHeaders:
		return "patch.AlwaysHunkHeaders"
	case Concurrency:
		return "patch.Concurrency"
	case IndentHeuristic:
		return "linediff.IndentHeuristic"
	case Words:
		return "linediff.Words"
	default:
		panic("never reached")
	}
}
