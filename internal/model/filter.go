package model

import "strings"

// FlatControl is an element with a path breadcrumb instead of children.
type FlatControl struct {
	Name        string `yaml:"name,omitempty"         json:"name,omitempty"`
	ControlType string `yaml:"control_type,omitempty" json:"control_type,omitempty"`
	AutoID      string `yaml:"auto_id,omitempty"      json:"auto_id,omitempty"`
	ClassName   string `yaml:"class_name,omitempty"   json:"class_name,omitempty"`
	Rect        Rect   `yaml:"rect"                   json:"rect"`
	Path        string `yaml:"path,omitempty"         json:"path,omitempty"`
}

// Flatten converts an element tree into a flat descendant list. Each entry
// gets a path breadcrumb of control types joined with " > ", rooted at (but
// not including) root.
func Flatten(root Element) []FlatControl {
	var result []FlatControl
	for _, child := range root.Children {
		flattenRecursive(child, "", &result)
	}
	return result
}

func flattenRecursive(el Element, parentPath string, result *[]FlatControl) {
	currentPath := el.ControlType
	if parentPath != "" {
		currentPath = parentPath + " > " + el.ControlType
	}

	*result = append(*result, FlatControl{
		Name:        el.Name,
		ControlType: el.ControlType,
		AutoID:      el.AutoID,
		ClassName:   el.ClassName,
		Rect:        el.Rect,
		Path:        currentPath,
	})

	for _, child := range el.Children {
		flattenRecursive(child, currentPath, result)
	}
}

// FilterControls narrows a flat control list by control type and by a
// case-insensitive name substring. Empty filters pass everything through.
func FilterControls(controls []FlatControl, controlTypes []string, nameContains string) []FlatControl {
	if len(controlTypes) == 0 && nameContains == "" {
		return controls
	}

	typeSet := make(map[string]bool, len(controlTypes))
	for _, ct := range controlTypes {
		typeSet[ct] = true
	}
	nameLower := strings.ToLower(nameContains)

	var result []FlatControl
	for _, c := range controls {
		if len(typeSet) > 0 && !typeSet[c.ControlType] {
			continue
		}
		if nameLower != "" && !strings.Contains(strings.ToLower(c.Name), nameLower) {
			continue
		}
		result = append(result, c)
	}
	return result
}

// canvasTypes are the control types that host drawn content rather than
// discrete controls. Target pickers fall back to these surfaces.
var canvasTypes = map[string]bool{
	"Pane":     true,
	"Custom":   true,
	"Document": true,
}

// LargestCanvas returns the largest direct or nested canvas-like descendant
// of root (Pane, Custom, or Document) by screen area, or nil when the
// window has none. Editors and drawing apps expose their main surface this
// way without a useful name or automation id.
func LargestCanvas(root *Element) *Element {
	var best *Element
	bestArea := 0
	Walk(root, func(el *Element) bool {
		if canvasTypes[el.ControlType] {
			if area := el.Rect.Area(); area > bestArea {
				best, bestArea = el, area
			}
		}
		return true
	})
	return best
}
