package cmd

import (
	"testing"
)

func TestClickCommand_Flags(t *testing.T) {
	flags := clickCmd.Flags()

	tests := []struct {
		name     string
		flagType string
	}{
		{"title", "string"},
		{"title-regex", "string"},
		{"class-name", "string"},
		{"auto-id", "string"},
		{"control-type", "string"},
		{"name", "string"},
		{"name-regex", "string"},
		{"index", "int"},
		{"ambiguity", "string"},
		{"timeout", "float64"},
		{"method", "string"},
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

func TestWaitCommand_Flags(t *testing.T) {
	flags := waitCmd.Flags()

	tests := []struct {
		name     string
		flagType string
	}{
		{"title", "string"},
		{"gone", "bool"},
		{"timeout", "float64"},
		{"interval", "int"},
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

func TestServeCommand_Flags(t *testing.T) {
	flags := serveCmd.Flags()

	tests := []struct {
		name     string
		flagType string
	}{
		{"transport", "string"},
		{"port", "int"},
		{"cache-ttl", "int"},
		{"ambiguity", "string"},
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
