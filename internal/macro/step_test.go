package macro

import (
	"testing"
	"time"

	"github.com/hfwin/handsfree/internal/selector"
)

func buttonSelector() *selector.Selector {
	return &selector.Selector{
		Window:  selector.WindowMatcher{Title: "Notepad"},
		Targets: []selector.Target{{AutoID: "btnSave", ControlType: "Button"}},
	}
}

func TestStepValidate(t *testing.T) {
	tests := []struct {
		name    string
		step    Step
		wantErr bool
	}{
		{"click with selector", ClickStep(buttonSelector(), 10, 20), false},
		{"click with coords only", Step{Action: ActionClick, X: 100, Y: 200}, false},
		{"click with nothing", Step{Action: ActionClick}, true},
		{"type with text", TypeStep(buttonSelector(), "hello", false), false},
		{"type enter only", Step{Action: ActionType, Enter: true}, false},
		{"type with nothing", Step{Action: ActionType}, true},
		{"sleep positive", SleepStep(1.5), false},
		{"sleep zero", Step{Action: ActionSleep}, true},
		{"focus without selector", Step{Action: ActionFocus}, true},
		{"focus window-only selector", Step{
			Action:   ActionFocus,
			Selector: &selector.Selector{Window: selector.WindowMatcher{Title: "Notepad"}},
		}, false},
		{"focus empty window matcher", Step{
			Action:   ActionFocus,
			Selector: &selector.Selector{},
		}, true},
		{"key without combo", Step{Action: ActionKey}, true},
		{"key with combo", Step{Action: ActionKey, Key: "ctrl+s"}, false},
		{"key with window-only selector", Step{
			Action:   ActionKey,
			Key:      "ctrl+s",
			Selector: &selector.Selector{Window: selector.WindowMatcher{TitleRegex: `Notepad$`}},
		}, false},
		{"scroll zero amount", Step{Action: ActionScroll, X: 5, Y: 5}, true},
		{"scroll", Step{Action: ActionScroll, X: 5, Y: 5, Amount: -3}, false},
		{"browser-open without url", Step{Action: ActionBrowserOpen}, true},
		{"browser-open", Step{Action: ActionBrowserOpen, URL: "https://example.com"}, false},
		{"browser-click without target", Step{Action: ActionBrowserClick}, true},
		{"browser-click by text", Step{Action: ActionBrowserClick, Text: "Sign in"}, false},
		{"browser-type", Step{Action: ActionBrowserType, CSS: "#q", Text: "go"}, false},
		{"empty action", Step{}, true},
		{"unknown action", Step{Action: "teleport"}, true},
		{"bad selector surfaces", Step{
			Action:   ActionClick,
			Selector: &selector.Selector{Window: selector.WindowMatcher{Title: "App"}},
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.step.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestStepTimeout(t *testing.T) {
	s := Step{Action: ActionClick, X: 1, Y: 1}
	if got := s.Timeout(); got != 20*time.Second {
		t.Errorf("default timeout = %v, want 20s", got)
	}
	s.TimeoutSec = 5
	if got := s.Timeout(); got != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", got)
	}
}

func TestBuilders(t *testing.T) {
	click := ClickStep(buttonSelector(), 40, 60)
	if click.Action != ActionClick || click.X != 40 || click.Y != 60 {
		t.Errorf("ClickStep = %+v", click)
	}
	if click.TimeoutSec != DefaultTimeoutSec {
		t.Errorf("ClickStep timeout = %d, want %d", click.TimeoutSec, DefaultTimeoutSec)
	}

	typ := TypeStep(buttonSelector(), "hello world", true)
	if typ.Action != ActionType || typ.Text != "hello world" || !typ.Enter {
		t.Errorf("TypeStep = %+v", typ)
	}

	sleep := SleepStep(2.5)
	if sleep.Action != ActionSleep || sleep.Seconds != 2.5 {
		t.Errorf("SleepStep = %+v", sleep)
	}
	if err := sleep.Validate(); err != nil {
		t.Errorf("SleepStep validate: %v", err)
	}
}
