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
	"znkr.io/syntaxdiff"
	"znkr.io/syntaxdiff/internal/config"
)

// AlwaysHunkHeaders emits the offset line of a hunk even if one side of the hunk has no lines.
// This is what patch(1) and git apply expect. By default, these offset lines are omitted.
func AlwaysHunkHeaders() syntaxdiff.Option {
	return func(cfg *config.Config) config.Flag {
		cfg.AlwaysHunkHeaders = true
		return config.AlwaysHunkHeaders
	}
}

// Concurrency limits the number of file pairs [RenderAll] renders at the same time. A value of
// zero or less uses runtime.GOMAXPROCS(0).
func Concurrency(n int) syntaxdiff.Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Concurrency = n
		return config.Concurrency
	}
}
