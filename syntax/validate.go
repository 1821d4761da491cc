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

package syntax

import (
	"fmt"

	"znkr.io/syntaxdiff/source"
)

// Validate checks that t is well formed for buf and returns an error describing the first
// violation: every range must lie within buf and within the range of its parent, children must be
// ordered and must not overlap, leaves have no children and keyed nodes have one key per child.
func (t *Term) Validate(buf source.Buffer) error {
	return validateTerm(t, buf.All(), "term")
}

func validateTerm(t *Term, outer source.Range, path string) error {
	if t == nil {
		return fmt.Errorf("%s: nil term", path)
	}
	if err := within(t.Info.Range, outer, path); err != nil {
		return err
	}
	if err := validateShape(t.Kind, len(t.Children), len(t.Keys), path); err != nil {
		return err
	}
	pos := t.Info.Range.Start
	for i, c := range t.Children {
		cpath := fmt.Sprintf("%s.%d", path, i)
		if err := validateTerm(c, source.Range{Start: pos, End: t.Info.Range.End}, cpath); err != nil {
			return err
		}
		pos = c.Info.Range.End
	}
	return nil
}

// Validate checks that d is well formed for the buffers left and right and returns an error
// describing the first violation. See [Term.Validate] for the rules, they apply to each side of d
// independently.
func (d *Diff) Validate(left, right source.Buffer) error {
	return validateDiff(d, left.All(), right.All(), "diff")
}

func validateDiff(d *Diff, outerL, outerR source.Range, path string) error {
	if d == nil {
		return fmt.Errorf("%s: nil diff", path)
	}
	switch d.Op {
	case Insert:
		if d.After == nil || d.Before != nil {
			return fmt.Errorf("%s: Insert requires After and no Before", path)
		}
		return validateTerm(d.After, outerR, path+"(after)")
	case Delete:
		if d.Before == nil || d.After != nil {
			return fmt.Errorf("%s: Delete requires Before and no After", path)
		}
		return validateTerm(d.Before, outerL, path+"(before)")
	case Replace:
		if d.Before == nil || d.After == nil {
			return fmt.Errorf("%s: Replace requires Before and After", path)
		}
		if err := validateTerm(d.Before, outerL, path+"(before)"); err != nil {
			return err
		}
		return validateTerm(d.After, outerR, path+"(after)")
	case Unchanged:
	default:
		return fmt.Errorf("%s: unknown op %v", path, d.Op)
	}

	if d.Before != nil || d.After != nil {
		return fmt.Errorf("%s: Unchanged must not have Before or After", path)
	}
	if err := within(d.Left.Range, outerL, path+"(left)"); err != nil {
		return err
	}
	if err := within(d.Right.Range, outerR, path+"(right)"); err != nil {
		return err
	}
	if err := validateShape(d.Kind, len(d.Children), len(d.Keys), path); err != nil {
		return err
	}
	pl, pr := d.Left.Range.Start, d.Right.Range.Start
	for i, c := range d.Children {
		cpath := fmt.Sprintf("%s.%d", path, i)
		innerL := source.Range{Start: pl, End: d.Left.Range.End}
		innerR := source.Range{Start: pr, End: d.Right.Range.End}
		if err := validateDiff(c, innerL, innerR, cpath); err != nil {
			return err
		}
		rl, rr := c.Ranges(pl, pr)
		pl, pr = rl.End, rr.End
	}
	return nil
}

func validateShape(kind Kind, children, keys int, path string) error {
	switch kind {
	case Leaf:
		if children > 0 {
			return fmt.Errorf("%s: leaf with %d children", path, children)
		}
	case Indexed, Fixed:
		if keys > 0 {
			return fmt.Errorf("%s: %v node with keys", path, kind)
		}
	case Keyed:
		if keys != children {
			return fmt.Errorf("%s: keyed node with %d keys for %d children", path, keys, children)
		}
	default:
		return fmt.Errorf("%s: unknown kind %v", path, kind)
	}
	return nil
}

func within(r, outer source.Range, path string) error {
	if r.Start > r.End {
		return fmt.Errorf("%s: inverted range %v", path, r)
	}
	if r.Start < outer.Start || r.End > outer.End {
		return fmt.Errorf("%s: range %v outside of %v", path, r, outer)
	}
	return nil
}
