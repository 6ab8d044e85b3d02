package cmd

import (
	"testing"
)

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	want := []string{
		"windows", "focus", "tree", "controls",
		"click", "click-at", "type", "key", "scroll", "hover", "drag",
		"wait", "resolve", "inspect", "canvas-selector",
		"screenshot", "clipboard", "open", "start",
		"record", "capture", "run", "browser", "serve",
	}

	registered := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}

	for _, name := range want {
		if !registered[name] {
			t.Errorf("command %q not registered on root", name)
		}
	}
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	tests := []struct {
		name     string
		flagType string
	}{
		{"format", "string"},
		{"pretty", "bool"},
		{"log-level", "string"},
		{"log-format", "string"},
	}

	for _, tt := range tests {
		f := flags.Lookup(tt.name)
		if f == nil {
			t.Errorf("expected flag %q not found", tt.name)
			continue
		}
		if f.Value.Type() != tt.flagType {
			t.Errorf("flag %q: expected type %q, got %q", tt.name, tt.flagType, f.Value.Type())
		}
	}
}

func TestBrowserCommand_RegistersSubcommands(t *testing.T) {
	want := []string{"open", "navigate", "snapshot", "click", "type", "screenshot", "eval", "links"}

	registered := make(map[string]bool)
	for _, c := range browserCmd.Commands() {
		registered[c.Name()] = true
	}

	for _, name := range want {
		if !registered[name] {
			t.Errorf("browser subcommand %q not registered", name)
		}
	}
}

func TestClipboardCommand_RegistersSubcommands(t *testing.T) {
	want := []string{"read", "write", "grab"}

	registered := make(map[string]bool)
	for _, c := range clipboardCmd.Commands() {
		registered[c.Name()] = true
	}

	for _, name := range want {
		if !registered[name] {
			t.Errorf("clipboard subcommand %q not registered", name)
		}
	}
}
