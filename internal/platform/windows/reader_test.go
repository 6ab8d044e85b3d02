//go:build windows

package windows

import (
	"testing"

	"github.com/hfwin/handsfree/internal/model"
)

func sampleTree() model.Element {
	return model.Element{
		Name:        "Untitled - Notepad",
		ControlType: "Window",
		Rect:        model.Rect{Left: 0, Top: 0, Right: 800, Bottom: 600},
		Children: []model.Element{
			{
				Name:        "Toolbar",
				ControlType: "ToolBar",
				Rect:        model.Rect{Left: 0, Top: 0, Right: 800, Bottom: 40},
				Children: []model.Element{
					{Name: "New", ControlType: "Button", Rect: model.Rect{Left: 0, Top: 0, Right: 40, Bottom: 40}},
					{Name: "Save", ControlType: "Button", AutoID: "btnSave", Rect: model.Rect{Left: 40, Top: 0, Right: 80, Bottom: 40}},
				},
			},
			{
				Name:        "Save",
				ControlType: "Button",
				Rect:        model.Rect{Left: 700, Top: 560, Right: 800, Bottom: 600},
			},
		},
	}
}

func TestLocateBuildsAncestryPath(t *testing.T) {
	root := sampleTree()
	want := model.Element{
		Name:        "Save",
		ControlType: "Button",
		AutoID:      "btnSave",
		Rect:        model.Rect{Left: 40, Top: 0, Right: 80, Bottom: 40},
	}

	path, typeIndex, ok := locate(&root, want)
	if !ok {
		t.Fatal("locate() did not find the element")
	}
	if len(path) != 3 {
		t.Fatalf("len(path) = %d, want 3", len(path))
	}
	if path[0].Name != "Untitled - Notepad" || path[1].Name != "Toolbar" || path[2].Name != "Save" {
		t.Errorf("path = [%s, %s, %s], want [Untitled - Notepad, Toolbar, Save]",
			path[0].Name, path[1].Name, path[2].Name)
	}
	for i, p := range path {
		if p.Children != nil {
			t.Errorf("path[%d].Children populated; want stripped", i)
		}
	}
	// One Button ("New") precedes the match in depth-first order.
	if typeIndex != 1 {
		t.Errorf("typeIndex = %d, want 1", typeIndex)
	}
}

func TestLocateCountsOnlyEarlierSameTypeNodes(t *testing.T) {
	root := sampleTree()
	want := model.Element{
		Name:        "Save",
		ControlType: "Button",
		Rect:        model.Rect{Left: 700, Top: 560, Right: 800, Bottom: 600},
	}

	path, typeIndex, ok := locate(&root, want)
	if !ok {
		t.Fatal("locate() did not find the element")
	}
	if len(path) != 2 {
		t.Fatalf("len(path) = %d, want 2", len(path))
	}
	if typeIndex != 2 {
		t.Errorf("typeIndex = %d, want 2", typeIndex)
	}
}

func TestLocateMissesChangedElement(t *testing.T) {
	root := sampleTree()
	want := model.Element{
		Name:        "Save",
		ControlType: "Button",
		Rect:        model.Rect{Left: 1, Top: 2, Right: 3, Bottom: 4},
	}

	if _, _, ok := locate(&root, want); ok {
		t.Error("locate() matched an element whose rectangle moved")
	}
}

func TestControlTypeName(t *testing.T) {
	tests := []struct {
		id   int32
		want string
	}{
		{50000, "Button"},
		{50004, "Edit"},
		{50032, "Window"},
		{50040, "AppBar"},
		{12345, "Unknown(12345)"},
	}
	for _, tt := range tests {
		if got := controlTypeName(tt.id); got != tt.want {
			t.Errorf("controlTypeName(%d) = %q, want %q", tt.id, got, tt.want)
		}
	}
}
