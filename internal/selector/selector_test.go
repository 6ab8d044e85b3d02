package selector

import (
	"strings"
	"testing"

	"github.com/hfwin/handsfree/internal/model"
)

func TestWindowMatcher_Matches(t *testing.T) {
	w := model.Window{Title: "Untitled - Notepad", ClassName: "Notepad"}

	tests := []struct {
		name    string
		matcher WindowMatcher
		want    bool
	}{
		{"exact title", WindowMatcher{Title: "Untitled - Notepad"}, true},
		{"exact title case-insensitive", WindowMatcher{Title: "untitled - notepad"}, true},
		{"exact title mismatch", WindowMatcher{Title: "Notepad"}, false},
		{"regex", WindowMatcher{TitleRegex: `.*Notepad$`}, true},
		{"regex mismatch", WindowMatcher{TitleRegex: `^Word`}, false},
		{"class name", WindowMatcher{ClassName: "Notepad"}, true},
		{"class name mismatch", WindowMatcher{ClassName: "Chrome_WidgetWin_1"}, false},
		{"conjunction holds", WindowMatcher{TitleRegex: `Notepad`, ClassName: "Notepad"}, true},
		{"conjunction fails on one", WindowMatcher{TitleRegex: `Notepad`, ClassName: "Edit"}, false},
		{"invalid regex matches nothing", WindowMatcher{TitleRegex: `([`}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.matcher.Matches(w); got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWindowMatcher_Validate(t *testing.T) {
	if err := (&WindowMatcher{}).Validate(); err == nil {
		t.Error("expected error for matcher with no criteria")
	}
	if err := (&WindowMatcher{TitleRegex: `([`}).Validate(); err == nil {
		t.Error("expected error for invalid regex")
	}
	if err := (&WindowMatcher{Title: "Notepad"}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestTarget_Validate(t *testing.T) {
	idx := 0
	tests := []struct {
		name    string
		target  Target
		wantErr bool
	}{
		{"empty", Target{}, true},
		{"auto id only", Target{AutoID: "btnSave"}, false},
		{"index only", Target{Index: &idx}, false},
		{"bad name regex", Target{NameRegex: `([`}, true},
		{"good name regex", Target{NameRegex: `^Save`}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.target.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSelector_Validate(t *testing.T) {
	sel := Selector{Window: WindowMatcher{Title: "Notepad"}}
	if err := sel.Validate(); err == nil {
		t.Error("expected error for selector with no targets")
	}

	sel.Targets = []Target{{Name: "Save", ControlType: "Button"}}
	if err := sel.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseJSON(t *testing.T) {
	data := []byte(`{
		"window": {"title_regex": ".*Notepad"},
		"targets": [
			{"auto_id": "15", "control_type": "Edit"},
			{"control_type": "Edit", "index": 0}
		]
	}`)
	sel, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON returned error: %v", err)
	}
	if sel.Window.TitleRegex != ".*Notepad" {
		t.Errorf("window title_regex = %q, want %q", sel.Window.TitleRegex, ".*Notepad")
	}
	if len(sel.Targets) != 2 {
		t.Fatalf("parsed %d targets, want 2", len(sel.Targets))
	}
	if sel.Targets[0].AutoID != "15" {
		t.Errorf("target 0 auto_id = %q, want %q", sel.Targets[0].AutoID, "15")
	}
	if sel.Targets[1].Index == nil || *sel.Targets[1].Index != 0 {
		t.Error("target 1 index not preserved; zero is a valid index")
	}
}

func TestParseJSON_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed json", `{"window":`},
		{"no criteria", `{"window": {}, "targets": [{"name": "x"}]}`},
		{"no targets", `{"window": {"title": "x"}, "targets": []}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseJSON([]byte(tt.data)); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}

func TestSelector_String(t *testing.T) {
	idx := 2
	sel := Selector{
		Window:  WindowMatcher{Title: "Notepad"},
		Targets: []Target{{Name: "Save", ControlType: "Button"}, {ControlType: "Button", Index: &idx}},
	}
	got := sel.String()
	for _, want := range []string{`title="Notepad"`, `name="Save"`, "index=2"} {
		if !strings.Contains(got, want) {
			t.Errorf("String() = %q, missing %q", got, want)
		}
	}
}
