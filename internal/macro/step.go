// Package macro defines recordable/replayable automation steps, their
// on-disk document format, and the engine that plays them back.
package macro

import (
	"fmt"
	"time"

	"github.com/hfwin/handsfree/internal/selector"
)

// Step action tags.
const (
	ActionFocus           = "focus"
	ActionClick           = "click"
	ActionType            = "type"
	ActionSleep           = "sleep"
	ActionKey             = "key"
	ActionScroll          = "scroll"
	ActionBrowserOpen     = "browser-open"
	ActionBrowserNavigate = "browser-navigate"
	ActionBrowserClick    = "browser-click"
	ActionBrowserType     = "browser-type"
)

// DefaultTimeoutSec is the per-step resolution budget when a step does not
// carry its own.
const DefaultTimeoutSec = 20

// Step is one recorded or hand-written macro action. A single struct with
// omitempty fields keeps documents human-editable and gives every action
// tag a stable field order on disk; only the fields appropriate to the tag
// are populated.
type Step struct {
	Action string `yaml:"action" json:"action"`

	// Desktop targeting. Click steps also record the capture-time cursor
	// position; replay uses it only when no selector is present.
	Selector *selector.Selector `yaml:"selector_candidates,omitempty" json:"selector_candidates,omitempty"`
	X        int                `yaml:"x,omitempty"                   json:"x,omitempty"`
	Y        int                `yaml:"y,omitempty"                   json:"y,omitempty"`

	// type / browser-type
	Text  string `yaml:"text,omitempty"  json:"text,omitempty"`
	Enter bool   `yaml:"enter,omitempty" json:"enter,omitempty"`

	// key
	Key string `yaml:"key,omitempty" json:"key,omitempty"`

	// sleep
	Seconds float64 `yaml:"seconds,omitempty" json:"seconds,omitempty"`

	// scroll
	Amount int `yaml:"amount,omitempty" json:"amount,omitempty"`

	// browser-*
	Browser string `yaml:"browser,omitempty" json:"browser,omitempty"`
	URL     string `yaml:"url,omitempty"     json:"url,omitempty"`
	CSS     string `yaml:"css,omitempty"     json:"css,omitempty"`

	// Timing. Timeout is the resolution budget in seconds; DelayBefore is
	// a recorded pause in milliseconds honored before the step runs.
	TimeoutSec  int `yaml:"timeout,omitempty"      json:"timeout,omitempty"`
	DelayBefore int `yaml:"delay_before,omitempty" json:"delay_before,omitempty"`
}

// Timeout returns the step's resolution budget.
func (s *Step) Timeout() time.Duration {
	if s.TimeoutSec > 0 {
		return time.Duration(s.TimeoutSec) * time.Second
	}
	return DefaultTimeoutSec * time.Second
}

// Validate checks that the step carries the arguments its action needs.
// Focus and key steps consume only the window half of their selector, so
// they may omit the candidate chain.
func (s *Step) Validate() error {
	windowOnly := false
	switch s.Action {
	case ActionFocus:
		if s.Selector == nil {
			return fmt.Errorf("focus needs selector_candidates")
		}
		windowOnly = true
	case ActionClick:
		if s.Selector == nil && s.X == 0 && s.Y == 0 {
			return fmt.Errorf("click needs selector_candidates or x/y coordinates")
		}
	case ActionType:
		if s.Text == "" && !s.Enter {
			return fmt.Errorf("type needs text or enter")
		}
	case ActionSleep:
		if s.Seconds <= 0 {
			return fmt.Errorf("sleep needs seconds > 0")
		}
	case ActionKey:
		if s.Key == "" {
			return fmt.Errorf("key needs a key combo")
		}
		windowOnly = true
	case ActionScroll:
		if s.Amount == 0 {
			return fmt.Errorf("scroll needs a non-zero amount")
		}
	case ActionBrowserOpen, ActionBrowserNavigate:
		if s.URL == "" {
			return fmt.Errorf("%s needs a url", s.Action)
		}
	case ActionBrowserClick:
		if s.CSS == "" && s.Text == "" {
			return fmt.Errorf("browser-click needs css or text")
		}
	case ActionBrowserType:
		if s.Text == "" {
			return fmt.Errorf("browser-type needs text")
		}
	case "":
		return fmt.Errorf("step has no action")
	default:
		return fmt.Errorf("unknown action %q", s.Action)
	}

	if s.Selector != nil {
		if windowOnly && len(s.Selector.Targets) == 0 {
			if err := s.Selector.Window.Validate(); err != nil {
				return fmt.Errorf("%s selector: %w", s.Action, err)
			}
			return nil
		}
		if err := s.Selector.Validate(); err != nil {
			return fmt.Errorf("%s selector: %w", s.Action, err)
		}
	}
	return nil
}

// ClickStep builds a recorded click on a captured element.
func ClickStep(sel *selector.Selector, x, y int) Step {
	return Step{
		Action:     ActionClick,
		Selector:   sel,
		X:          x,
		Y:          y,
		TimeoutSec: DefaultTimeoutSec,
	}
}

// TypeStep builds a recorded type step bound to the last captured element.
func TypeStep(sel *selector.Selector, text string, enter bool) Step {
	return Step{
		Action:     ActionType,
		Selector:   sel,
		Text:       text,
		Enter:      enter,
		TimeoutSec: DefaultTimeoutSec,
	}
}

// SleepStep builds a plain pause.
func SleepStep(seconds float64) Step {
	return Step{Action: ActionSleep, Seconds: seconds}
}
