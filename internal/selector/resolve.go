package selector

import (
	"fmt"
	"regexp"

	"github.com/hfwin/handsfree/internal/model"
)

// Ambiguity selects how resolution treats an index-less candidate that
// matches more than one element.
type Ambiguity int

const (
	// AmbiguityFirst resolves to the first match in depth-first order.
	AmbiguityFirst Ambiguity = iota
	// AmbiguityError fails resolution with an AmbiguousMatchError.
	AmbiguityError
)

// ParseAmbiguity converts a flag value to an Ambiguity policy.
func ParseAmbiguity(s string) (Ambiguity, error) {
	switch s {
	case "", "first":
		return AmbiguityFirst, nil
	case "error":
		return AmbiguityError, nil
	default:
		return AmbiguityFirst, fmt.Errorf("unknown ambiguity policy %q (use first or error)", s)
	}
}

// ResolveOptions tunes the resolution algorithm.
type ResolveOptions struct {
	Ambiguity Ambiguity
}

// Resolve finds the element described by an ordered candidate chain among
// the descendants of root. Candidates are tried strictly in order; an
// element matches a candidate only when every set property matches (full
// match, no partial credit). The first candidate with a full match wins;
// later candidates are never consulted once one succeeds.
//
// Within one candidate, matches accumulate in depth-first preorder. A set
// index picks the Nth match, clamped to the last one when fewer exist (an
// element that drifted up the sibling order still resolves). Without an
// index, multiple matches fall under the ambiguity policy.
//
// Resolve is pure: it touches only the supplied tree, so callers can test
// it against synthetic trees and retry it against fresh reads.
func Resolve(root *model.Element, targets []Target, opts ResolveOptions) (*model.Element, error) {
	if root == nil {
		return nil, &ElementNotFoundError{Targets: targets}
	}
	for i := range targets {
		t := &targets[i]
		ct, err := compileTarget(t)
		if err != nil {
			return nil, fmt.Errorf("target %d: %w", i, err)
		}

		matches := collectMatches(root, ct)
		if len(matches) == 0 {
			continue
		}

		if t.Index != nil {
			idx := *t.Index
			if idx < 0 {
				idx = 0
			}
			if idx >= len(matches) {
				idx = len(matches) - 1
			}
			return matches[idx], nil
		}

		if len(matches) > 1 && opts.Ambiguity == AmbiguityError {
			return nil, &AmbiguousMatchError{Target: *t, Count: len(matches)}
		}
		return matches[0], nil
	}
	return nil, &ElementNotFoundError{Targets: targets}
}

// compiledTarget carries a candidate with its name regex precompiled so the
// tree walk does not recompile per element.
type compiledTarget struct {
	t      *Target
	nameRe *regexp.Regexp
}

func compileTarget(t *Target) (compiledTarget, error) {
	ct := compiledTarget{t: t}
	if t.NameRegex != "" {
		re, err := regexp.Compile(t.NameRegex)
		if err != nil {
			return ct, fmt.Errorf("invalid name_regex %q: %w", t.NameRegex, err)
		}
		ct.nameRe = re
	}
	return ct, nil
}

func (ct compiledTarget) matches(el *model.Element) bool {
	if ct.t.AutoID != "" && el.AutoID != ct.t.AutoID {
		return false
	}
	if ct.t.ControlType != "" && el.ControlType != ct.t.ControlType {
		return false
	}
	if ct.t.Name != "" && el.Name != ct.t.Name {
		return false
	}
	if ct.nameRe != nil && !ct.nameRe.MatchString(el.Name) {
		return false
	}
	return true
}

// collectMatches gathers every descendant of root fully matching the
// candidate, in depth-first preorder. The order is the tie-break order
// index values refer to.
func collectMatches(root *model.Element, ct compiledTarget) []*model.Element {
	var matches []*model.Element
	model.Walk(root, func(el *model.Element) bool {
		if ct.matches(el) {
			matches = append(matches, el)
		}
		return true
	})
	return matches
}
