package selector

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks across package boundaries.
var (
	ErrWindowNotFound  = errors.New("window not found")
	ErrElementNotFound = errors.New("element not found")
	ErrAmbiguousMatch  = errors.New("ambiguous match")
)

// WindowNotFoundError reports that no top-level window satisfied a matcher.
type WindowNotFoundError struct {
	Matcher WindowMatcher
}

func (e *WindowNotFoundError) Error() string {
	return fmt.Sprintf("window not found: %s", e.Matcher.String())
}

func (e *WindowNotFoundError) Unwrap() error { return ErrWindowNotFound }

// ElementNotFoundError reports that every candidate in a selector's chain
// was tried and none fully matched.
type ElementNotFoundError struct {
	Targets []Target
}

func (e *ElementNotFoundError) Error() string {
	return fmt.Sprintf("element not found: exhausted %d candidate(s)", len(e.Targets))
}

func (e *ElementNotFoundError) Unwrap() error { return ErrElementNotFound }

// AmbiguousMatchError reports that a candidate without an index matched
// more than one element while the error policy was in effect.
type AmbiguousMatchError struct {
	Target Target
	Count  int
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("ambiguous match: candidate [%s] matched %d elements; add index or more properties", e.Target.String(), e.Count)
}

func (e *AmbiguousMatchError) Unwrap() error { return ErrAmbiguousMatch }
