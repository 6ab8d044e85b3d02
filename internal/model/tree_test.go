package model

import "testing"

// deepTree builds a linear chain of the given depth below the root.
func deepTree(depth int) Element {
	el := Element{Name: "leaf", ControlType: "Text"}
	for i := depth - 1; i >= 1; i-- {
		el = Element{ControlType: "Pane", Children: []Element{el}}
	}
	return Element{Name: "root", ControlType: "Window", Children: []Element{el}}
}

func TestBuildTree_DepthCap(t *testing.T) {
	root := deepTree(6)
	tree := BuildTree(root, 2, 0)

	// Depth 2: root → child → grandchild, then truncated
	if len(tree.Children) != 1 {
		t.Fatalf("expected 1 child at depth 1, got %d", len(tree.Children))
	}
	child := tree.Children[0]
	if len(child.Children) != 1 {
		t.Fatalf("expected 1 child at depth 2, got %d", len(child.Children))
	}
	grandchild := child.Children[0]
	if !grandchild.Truncated {
		t.Error("expected node at max depth to be marked truncated")
	}
	if len(grandchild.Children) != 0 {
		t.Errorf("expected no children past max depth, got %d", len(grandchild.Children))
	}
}

func TestBuildTree_NodeBudget(t *testing.T) {
	root := Element{ControlType: "Window"}
	for i := 0; i < 10; i++ {
		root.Children = append(root.Children, Element{ControlType: "Button"})
	}

	tree := BuildTree(root, 5, 4)

	// Budget 4 = root + 3 children before the cap trips
	if len(tree.Children) != 3 {
		t.Errorf("expected 3 children under budget 4, got %d", len(tree.Children))
	}
	if !tree.Truncated {
		t.Error("expected parent to be marked truncated when budget runs out")
	}
}

func TestBuildTree_Defaults(t *testing.T) {
	root := deepTree(2)
	tree := BuildTree(root, 0, 0)
	if tree.Truncated {
		t.Error("shallow tree should not be truncated under default caps")
	}
	if tree.Name != "root" {
		t.Errorf("root name = %q, want %q", tree.Name, "root")
	}
}

func TestBuildTree_CopiesFields(t *testing.T) {
	root := Element{
		Name:        "Save",
		ControlType: "Button",
		AutoID:      "btnSave",
		ClassName:   "TButton",
		Rect:        Rect{Left: 1, Top: 2, Right: 3, Bottom: 4},
	}
	tree := BuildTree(root, 1, 0)
	if tree.Name != "Save" || tree.ControlType != "Button" || tree.AutoID != "btnSave" ||
		tree.ClassName != "TButton" || tree.Rect != root.Rect {
		t.Errorf("tree node fields not copied: %+v", tree)
	}
}
