package model

// Element is a node in a window's UI Automation element tree.
type Element struct {
	Name        string    `yaml:"name,omitempty"         json:"name,omitempty"`         // Visible label / accessible name
	ControlType string    `yaml:"control_type,omitempty" json:"control_type,omitempty"` // UIA control type name, e.g. "Button"
	AutoID      string    `yaml:"auto_id,omitempty"      json:"auto_id,omitempty"`      // Automation ID (unstable across runs)
	ClassName   string    `yaml:"class_name,omitempty"   json:"class_name,omitempty"`   // Win32 class name
	Rect        Rect      `yaml:"rect"                   json:"rect"`                   // Screen-space bounding box
	Focused     bool      `yaml:"focused,omitempty"      json:"focused,omitempty"`      // Has keyboard focus
	Enabled     *bool     `yaml:"enabled,omitempty"      json:"enabled,omitempty"`      // nil or true = enabled (omit); false = disabled (include)
	Children    []Element `yaml:"children,omitempty"     json:"children,omitempty"`

	// Handle is the backend's live reference to this element (a UIA runtime
	// handle). It is valid only for the lifetime of the tree read that
	// produced it and is never serialized.
	Handle uintptr `yaml:"-" json:"-"`
}

// Walk visits every descendant of root in depth-first preorder, excluding
// root itself. The visit stops early if fn returns false. Walk returns
// false if the traversal was stopped.
func Walk(root *Element, fn func(*Element) bool) bool {
	for i := range root.Children {
		c := &root.Children[i]
		if !fn(c) {
			return false
		}
		if !Walk(c, fn) {
			return false
		}
	}
	return true
}

// CountNodes returns the number of nodes in the tree rooted at el,
// including el itself.
func CountNodes(el *Element) int {
	n := 1
	for i := range el.Children {
		n += CountNodes(&el.Children[i])
	}
	return n
}
