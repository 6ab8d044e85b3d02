package model

import "testing"

// testTree builds a small fixed tree:
//
//	Window
//	├── Pane "Toolbar"
//	│   ├── Button "Save" (auto_id=btnSave)
//	│   └── Button "Open"
//	└── Edit "Name" (auto_id=txtName)
func testTree() Element {
	return Element{
		Name:        "Main",
		ControlType: "Window",
		Children: []Element{
			{
				Name:        "Toolbar",
				ControlType: "Pane",
				Children: []Element{
					{Name: "Save", ControlType: "Button", AutoID: "btnSave"},
					{Name: "Open", ControlType: "Button"},
				},
			},
			{Name: "Name", ControlType: "Edit", AutoID: "txtName"},
		},
	}
}

func TestWalk_PreorderExcludesRoot(t *testing.T) {
	root := testTree()
	var visited []string
	Walk(&root, func(el *Element) bool {
		visited = append(visited, el.Name)
		return true
	})

	want := []string{"Toolbar", "Save", "Open", "Name"}
	if len(visited) != len(want) {
		t.Fatalf("visited %d nodes, want %d: %v", len(visited), len(want), visited)
	}
	for i, name := range want {
		if visited[i] != name {
			t.Errorf("visit order[%d] = %q, want %q", i, visited[i], name)
		}
	}
}

func TestWalk_StopsEarly(t *testing.T) {
	root := testTree()
	count := 0
	done := Walk(&root, func(el *Element) bool {
		count++
		return count < 2
	})
	if done {
		t.Error("expected Walk to report early stop")
	}
	if count != 2 {
		t.Errorf("visited %d nodes after stop, want 2", count)
	}
}

func TestCountNodes(t *testing.T) {
	root := testTree()
	if got := CountNodes(&root); got != 5 {
		t.Errorf("CountNodes = %d, want 5", got)
	}
}

func TestRect_Geometry(t *testing.T) {
	r := Rect{Left: 10, Top: 20, Right: 110, Bottom: 70}
	if r.Width() != 100 {
		t.Errorf("Width = %d, want 100", r.Width())
	}
	if r.Height() != 50 {
		t.Errorf("Height = %d, want 50", r.Height())
	}
	if r.Area() != 5000 {
		t.Errorf("Area = %d, want 5000", r.Area())
	}
	cx, cy := r.Center()
	if cx != 60 || cy != 45 {
		t.Errorf("Center = (%d, %d), want (60, 45)", cx, cy)
	}
}

func TestRect_Contains(t *testing.T) {
	r := Rect{Left: 0, Top: 0, Right: 10, Bottom: 10}
	tests := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{9, 9, true},
		{10, 10, false}, // right/bottom edges are exclusive
		{-1, 5, false},
		{5, 5, true},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRect_AreaDegenerate(t *testing.T) {
	r := Rect{Left: 10, Top: 10, Right: 5, Bottom: 20}
	if r.Area() != 0 {
		t.Errorf("Area of inverted rect = %d, want 0", r.Area())
	}
}

func TestSortWindowsFocusedFirst(t *testing.T) {
	windows := []Window{
		{Title: "Notepad", Focused: false},
		{Title: "Calculator", Focused: true},
		{Title: "Explorer", Focused: false},
	}
	SortWindowsFocusedFirst(windows)
	if !windows[0].Focused || windows[0].Title != "Calculator" {
		t.Errorf("expected focused window first, got %q", windows[0].Title)
	}
	if windows[1].Title != "Notepad" || windows[2].Title != "Explorer" {
		t.Error("expected non-focused windows to keep relative order")
	}
}

func TestSortWindowsFocusedFirst_Empty(t *testing.T) {
	// Should not panic
	SortWindowsFocusedFirst(nil)
}
