// Package selector implements durable element selectors: a window matcher
// plus an ordered fallback chain of target candidates, and the resolution
// algorithm that turns one into a live element.
//
// Automation IDs are unstable across process restarts while names, control
// types, and sibling order are more durable. Recording therefore emits
// several candidates per element, ordered most-specific-first, and
// resolution walks the chain until one candidate fully matches.
package selector

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/hfwin/handsfree/internal/model"
)

// WindowMatcher selects a top-level window. At least one criterion must be
// set; all set criteria must hold. Exact title comparison is
// case-insensitive, title_regex is an uncompiled regular expression.
type WindowMatcher struct {
	Title      string `yaml:"title,omitempty"       json:"title,omitempty"`
	TitleRegex string `yaml:"title_regex,omitempty" json:"title_regex,omitempty"`
	ClassName  string `yaml:"class_name,omitempty"  json:"class_name,omitempty"`
}

// Validate checks that at least one criterion is set and that the title
// regex, if any, compiles.
func (m *WindowMatcher) Validate() error {
	if m.Title == "" && m.TitleRegex == "" && m.ClassName == "" {
		return fmt.Errorf("window matcher needs title, title_regex, or class_name")
	}
	if m.TitleRegex != "" {
		if _, err := regexp.Compile(m.TitleRegex); err != nil {
			return fmt.Errorf("invalid title_regex %q: %w", m.TitleRegex, err)
		}
	}
	return nil
}

// Matches reports whether the window satisfies every set criterion.
// An invalid regex matches nothing.
func (m *WindowMatcher) Matches(w model.Window) bool {
	if m.Title != "" && !strings.EqualFold(m.Title, w.Title) {
		return false
	}
	if m.TitleRegex != "" {
		re, err := regexp.Compile(m.TitleRegex)
		if err != nil || !re.MatchString(w.Title) {
			return false
		}
	}
	if m.ClassName != "" && m.ClassName != w.ClassName {
		return false
	}
	return true
}

// String renders the matcher for error messages.
func (m *WindowMatcher) String() string {
	var parts []string
	if m.Title != "" {
		parts = append(parts, fmt.Sprintf("title=%q", m.Title))
	}
	if m.TitleRegex != "" {
		parts = append(parts, fmt.Sprintf("title_regex=%q", m.TitleRegex))
	}
	if m.ClassName != "" {
		parts = append(parts, fmt.Sprintf("class_name=%q", m.ClassName))
	}
	if len(parts) == 0 {
		return "(empty)"
	}
	return strings.Join(parts, " ")
}

// Target is one candidate in a selector's fallback chain: a conjunction of
// the properties it sets, with unset properties acting as wildcards. Index
// picks the Nth element (depth-first order) among full matches.
type Target struct {
	AutoID      string `yaml:"auto_id,omitempty"      json:"auto_id,omitempty"`
	ControlType string `yaml:"control_type,omitempty" json:"control_type,omitempty"`
	Name        string `yaml:"name,omitempty"         json:"name,omitempty"`
	NameRegex   string `yaml:"name_regex,omitempty"   json:"name_regex,omitempty"`
	Index       *int   `yaml:"index,omitempty"        json:"index,omitempty"`
}

// Validate checks that the target constrains something and that the name
// regex, if any, compiles.
func (t *Target) Validate() error {
	if t.AutoID == "" && t.ControlType == "" && t.Name == "" && t.NameRegex == "" && t.Index == nil {
		return fmt.Errorf("target candidate sets no properties")
	}
	if t.NameRegex != "" {
		if _, err := regexp.Compile(t.NameRegex); err != nil {
			return fmt.Errorf("invalid name_regex %q: %w", t.NameRegex, err)
		}
	}
	return nil
}

// String renders the candidate for error messages.
func (t *Target) String() string {
	var parts []string
	if t.AutoID != "" {
		parts = append(parts, fmt.Sprintf("auto_id=%q", t.AutoID))
	}
	if t.ControlType != "" {
		parts = append(parts, fmt.Sprintf("control_type=%q", t.ControlType))
	}
	if t.Name != "" {
		parts = append(parts, fmt.Sprintf("name=%q", t.Name))
	}
	if t.NameRegex != "" {
		parts = append(parts, fmt.Sprintf("name_regex=%q", t.NameRegex))
	}
	if t.Index != nil {
		parts = append(parts, fmt.Sprintf("index=%d", *t.Index))
	}
	if len(parts) == 0 {
		return "(empty)"
	}
	return strings.Join(parts, " ")
}

// Selector pairs a window matcher with an ordered, non-empty candidate
// chain. Order encodes fallback priority: resolution tries candidates
// strictly in order and never merges partial matches across candidates.
type Selector struct {
	Window  WindowMatcher `yaml:"window"  json:"window"`
	Targets []Target      `yaml:"targets" json:"targets"`
}

// Validate checks the window matcher and every candidate.
func (s *Selector) Validate() error {
	if err := s.Window.Validate(); err != nil {
		return err
	}
	if len(s.Targets) == 0 {
		return fmt.Errorf("selector has no target candidates")
	}
	for i := range s.Targets {
		if err := s.Targets[i].Validate(); err != nil {
			return fmt.Errorf("target %d: %w", i, err)
		}
	}
	return nil
}

// String renders the selector compactly for step-failure diagnostics.
func (s *Selector) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "window[%s]", s.Window.String())
	for i := range s.Targets {
		fmt.Fprintf(&b, " target[%s]", s.Targets[i].String())
	}
	return b.String()
}

// ParseJSON decodes and validates a selector from its JSON form, the shape
// accepted by the resolve command and emitted by inspect.
func ParseJSON(data []byte) (*Selector, error) {
	var s Selector
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse selector: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("parse selector: %w", err)
	}
	return &s, nil
}
