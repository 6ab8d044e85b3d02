package model

// Window represents a top-level application window.
type Window struct {
	Title     string `yaml:"title"                json:"title"`
	ClassName string `yaml:"class_name,omitempty" json:"class_name,omitempty"`
	PID       int    `yaml:"pid,omitempty"        json:"pid,omitempty"`
	Focused   bool   `yaml:"focused,omitempty"    json:"focused,omitempty"`
	Rect      Rect   `yaml:"rect,omitempty"       json:"rect,omitempty"`

	// Handle is the native window handle (HWND). Never serialized.
	Handle uintptr `yaml:"-" json:"-"`
}

// SortWindowsFocusedFirst moves focused windows to the front, preserving
// relative order otherwise. Enumeration order is z-order, so the result
// keeps the "first match wins" contract intuitive for users.
func SortWindowsFocusedFirst(windows []Window) {
	var focused, rest []Window
	for _, w := range windows {
		if w.Focused {
			focused = append(focused, w)
		} else {
			rest = append(rest, w)
		}
	}
	copy(windows, focused)
	copy(windows[len(focused):], rest)
}
