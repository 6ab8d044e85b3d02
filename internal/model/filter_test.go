package model

import "testing"

func TestFlatten_PathBreadcrumbs(t *testing.T) {
	root := testTree()
	flat := Flatten(root)

	if len(flat) != 4 {
		t.Fatalf("Flatten returned %d controls, want 4", len(flat))
	}

	tests := []struct {
		name string
		path string
	}{
		{"Toolbar", "Pane"},
		{"Save", "Pane > Button"},
		{"Open", "Pane > Button"},
		{"Name", "Edit"},
	}
	for i, tt := range tests {
		if flat[i].Name != tt.name {
			t.Errorf("flat[%d].Name = %q, want %q", i, flat[i].Name, tt.name)
		}
		if flat[i].Path != tt.path {
			t.Errorf("flat[%d].Path = %q, want %q", i, flat[i].Path, tt.path)
		}
	}
}

func TestFilterControls(t *testing.T) {
	controls := []FlatControl{
		{Name: "Save", ControlType: "Button"},
		{Name: "Open File", ControlType: "Button"},
		{Name: "Name", ControlType: "Edit"},
	}

	tests := []struct {
		name         string
		types        []string
		nameContains string
		want         int
	}{
		{"no filters", nil, "", 3},
		{"by type", []string{"Button"}, "", 2},
		{"by name substring", nil, "file", 1},
		{"type and name", []string{"Button"}, "save", 1},
		{"no match", []string{"Tree"}, "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterControls(controls, tt.types, tt.nameContains)
			if len(got) != tt.want {
				t.Errorf("FilterControls = %d controls, want %d", len(got), tt.want)
			}
		})
	}
}

func TestLargestCanvas(t *testing.T) {
	root := Element{
		ControlType: "Window",
		Children: []Element{
			{ControlType: "ToolBar", Rect: Rect{Right: 1000, Bottom: 40}},
			{ControlType: "Pane", Rect: Rect{Top: 40, Right: 200, Bottom: 800}},
			{ControlType: "Custom", Name: "canvas", Rect: Rect{Left: 200, Top: 40, Right: 1000, Bottom: 800}},
		},
	}
	got := LargestCanvas(&root)
	if got == nil {
		t.Fatal("expected a canvas, got nil")
	}
	if got.Name != "canvas" {
		t.Errorf("LargestCanvas picked %q (%s), want the large Custom pane", got.Name, got.ControlType)
	}
}

func TestLargestCanvas_None(t *testing.T) {
	root := Element{
		ControlType: "Window",
		Children:    []Element{{ControlType: "Button", Rect: Rect{Right: 100, Bottom: 30}}},
	}
	if got := LargestCanvas(&root); got != nil {
		t.Errorf("expected nil for a window without canvas surfaces, got %+v", got)
	}
}

func TestExpandControlTypes(t *testing.T) {
	got := ExpandControlTypes([]string{"interactive", "button", "Document"})
	seen := make(map[string]bool, len(got))
	for _, ct := range got {
		if seen[ct] {
			t.Errorf("duplicate control type %q in expansion", ct)
		}
		seen[ct] = true
	}
	// Group members present, normalized single type present
	for _, want := range []string{"Button", "Edit", "Document"} {
		if !seen[want] {
			t.Errorf("expected %q in expansion, got %v", want, got)
		}
	}
}

func TestNormalizeControlType(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"button", "Button"},
		{"BUTTON", "Button"},
		{" edit ", "Edit"},
		{"treeitem", "TreeItem"},
		{"FutureType", "FutureType"}, // unknown passes through
	}
	for _, tt := range tests {
		if got := NormalizeControlType(tt.input); got != tt.want {
			t.Errorf("NormalizeControlType(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
