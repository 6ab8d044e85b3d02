package selector

import (
	"testing"

	"github.com/hfwin/handsfree/internal/model"
)

func TestDerive_FullChain(t *testing.T) {
	path := []model.Element{
		{Name: "Save As", ControlType: "Window"},
		{ControlType: "Pane"},
		{Name: "Save", ControlType: "Button", AutoID: "btnSave"},
	}
	targets := Derive(path, 2)

	if len(targets) != 4 {
		t.Fatalf("derived %d candidates, want 4", len(targets))
	}

	// Most specific first: the full conjunction, then auto_id, then name,
	// then the structural fallback.
	if targets[0].AutoID != "btnSave" || targets[0].ControlType != "Button" || targets[0].Name != "Save" {
		t.Errorf("candidate 0 = %+v, want auto_id+control_type+name", targets[0])
	}
	if targets[1].AutoID != "btnSave" || targets[1].Name != "" {
		t.Errorf("candidate 1 = %+v, want auto_id+control_type only", targets[1])
	}
	if targets[2].Name != "Save" || targets[2].AutoID != "" {
		t.Errorf("candidate 2 = %+v, want name+control_type only", targets[2])
	}
	if targets[3].ControlType != "Button" || targets[3].Index == nil || *targets[3].Index != 2 {
		t.Errorf("candidate 3 = %+v, want control_type+index 2", targets[3])
	}
}

func TestDerive_NoAutoID(t *testing.T) {
	path := []model.Element{
		{ControlType: "Window"},
		{Name: "Cancel", ControlType: "Button"},
	}
	targets := Derive(path, 1)
	if len(targets) != 2 {
		t.Fatalf("derived %d candidates, want 2", len(targets))
	}
	if targets[0].Name != "Cancel" {
		t.Errorf("candidate 0 = %+v, want the name candidate first", targets[0])
	}
	if targets[1].Index == nil {
		t.Error("last candidate must be the structural fallback")
	}
}

func TestDerive_AnonymousElement(t *testing.T) {
	// No auto id, no name: only the structural fallback remains.
	path := []model.Element{
		{ControlType: "Window"},
		{ControlType: "Custom"},
	}
	targets := Derive(path, 0)
	if len(targets) != 1 {
		t.Fatalf("derived %d candidates, want 1", len(targets))
	}
	if targets[0].ControlType != "Custom" || targets[0].Index == nil || *targets[0].Index != 0 {
		t.Errorf("fallback candidate = %+v", targets[0])
	}
}

func TestDerive_EmptyPath(t *testing.T) {
	if targets := Derive(nil, 0); targets != nil {
		t.Errorf("expected nil for empty path, got %v", targets)
	}
}

func TestDerive_ChainResolvesOnFixture(t *testing.T) {
	// A derived chain must resolve back to the element it was derived
	// from, both before and after the auto id churns.
	root := dialogTree()
	path := []model.Element{*root, root.Children[1]} // Button "Save"
	targets := Derive(path, 0)

	el, err := Resolve(root, targets, ResolveOptions{})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if el.Name != "Save" {
		t.Errorf("resolved %q, want %q", el.Name, "Save")
	}

	// Simulate a restart: the auto id changed, the name candidate catches it.
	root.Children[1].AutoID = "btn_7f3a"
	el, err = Resolve(root, targets, ResolveOptions{})
	if err != nil {
		t.Fatalf("Resolve after id churn returned error: %v", err)
	}
	if el.Name != "Save" {
		t.Errorf("resolved %q after id churn, want %q", el.Name, "Save")
	}
}

func TestWindowFrom(t *testing.T) {
	m := WindowFrom(model.Window{Title: "Untitled - Notepad", ClassName: "Notepad"})
	if m.Title != "Untitled - Notepad" {
		t.Errorf("matcher title = %q, want the window title", m.Title)
	}
	if m.TitleRegex != "" || m.ClassName != "" {
		t.Errorf("derived matcher should use exact title only, got %+v", m)
	}
}

func TestForElement(t *testing.T) {
	w := model.Window{Title: "Paint"}
	path := []model.Element{
		{ControlType: "Window"},
		{Name: "Brushes", ControlType: "Button", AutoID: "brushBtn"},
	}
	sel := ForElement(w, path, 4)
	if sel.Window.Title != "Paint" {
		t.Errorf("selector window = %+v", sel.Window)
	}
	if err := sel.Validate(); err != nil {
		t.Errorf("derived selector failed validation: %v", err)
	}
	if len(sel.Targets) != 4 {
		t.Errorf("derived %d targets, want 4", len(sel.Targets))
	}
}

func TestForCanvas(t *testing.T) {
	w := model.Window{Title: "Paint"}
	root := &model.Element{
		ControlType: "Window",
		Children: []model.Element{
			{ControlType: "ToolBar", Rect: model.Rect{Right: 800, Bottom: 40}},
			{ControlType: "Pane", Rect: model.Rect{Top: 40, Right: 100, Bottom: 600}},
			{ControlType: "Pane", Name: "Canvas", Rect: model.Rect{Left: 100, Top: 40, Right: 800, Bottom: 600}},
		},
	}
	sel := ForCanvas(w, root)
	if sel == nil {
		t.Fatal("expected a canvas selector")
	}
	// The chain must resolve back to the canvas pane.
	el, err := Resolve(root, sel.Targets, ResolveOptions{})
	if err != nil {
		t.Fatalf("canvas selector failed to resolve: %v", err)
	}
	if el.Name != "Canvas" {
		t.Errorf("canvas selector resolved %q, want %q", el.Name, "Canvas")
	}
}

func TestForCanvas_NoSurface(t *testing.T) {
	root := &model.Element{
		ControlType: "Window",
		Children:    []model.Element{{ControlType: "Button"}},
	}
	if sel := ForCanvas(model.Window{Title: "x"}, root); sel != nil {
		t.Errorf("expected nil selector for a window without canvas surfaces, got %v", sel)
	}
}
