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

package syntaxdiff

import "znkr.io/syntaxdiff/internal/config"

// Option configures the behavior of functions in this module.
type Option = config.Option

// Context sets the number of context rows to include before and after the changes in a hunk.
// Changes that are separated by at most twice that many context rows are combined into a single
// hunk. The default is 3.
func Context(n int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Context = max(0, n)
		return config.Context
	}
}

// FullContext keeps all context rows. All changes are then combined into a single hunk that
// spans both files completely.
func FullContext() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Context = config.AllContext
		return config.Context
	}
}

// Partition keeps all context rows and starts a new hunk after every run of context rows. Each
// hunk then holds a single change: the context rows before it, the changed rows, and the context
// rows up to the next change as trailing context. The hunks cover both files without gaps, the
// offset of a hunk plus its length is the offset of the next hunk.
//
// Context rows at the start of the files belong to the first hunk, context rows at the end to the
// last one. Without changes, there are no hunks.
func Partition() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Context = config.Partition
		return config.Context
	}
}

// MaxDepth sets how deeply trees may be nested before alignment gives up with a panic. The default
// is 10000.
func MaxDepth(n int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.MaxDepth = n
		return config.MaxDepth
	}
}
