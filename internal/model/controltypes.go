package model

import "strings"

// controlTypeNames are the canonical UI Automation control type names, as
// surfaced by the platform backend and accepted by targeting flags.
var controlTypeNames = []string{
	"AppBar", "Button", "Calendar", "CheckBox", "ComboBox", "Custom",
	"DataGrid", "DataItem", "Document", "Edit", "Group", "Header",
	"HeaderItem", "Hyperlink", "Image", "List", "ListItem", "Menu",
	"MenuBar", "MenuItem", "Pane", "ProgressBar", "RadioButton",
	"ScrollBar", "SemanticZoom", "Separator", "Slider", "Spinner",
	"SplitButton", "StatusBar", "Tab", "TabItem", "Table", "Text",
	"Thumb", "TitleBar", "ToolBar", "ToolTip", "Tree", "TreeItem",
	"Window",
}

// controlTypeLookup maps lowercase names back to canonical spelling.
var controlTypeLookup = func() map[string]string {
	m := make(map[string]string, len(controlTypeNames))
	for _, n := range controlTypeNames {
		m[strings.ToLower(n)] = n
	}
	return m
}()

// ControlTypeGroups maps group names to the concrete control types they
// expand to, for targeting flags like --profile interactive.
var ControlTypeGroups = map[string][]string{
	"interactive": {
		"Button", "CheckBox", "ComboBox", "Edit", "Hyperlink", "ListItem",
		"MenuItem", "RadioButton", "Slider", "Spinner", "SplitButton",
		"TabItem", "TreeItem",
	},
	"text": {"Text", "Edit", "Document"},
}

// NormalizeControlType converts a user-supplied control type to its
// canonical spelling ("button" → "Button"). Unknown names pass through
// unchanged so forward-compatible types still filter exactly.
func NormalizeControlType(s string) string {
	if canonical, ok := controlTypeLookup[strings.ToLower(strings.TrimSpace(s))]; ok {
		return canonical
	}
	return s
}

// ExpandControlTypes expands group names in the given list to their
// concrete control types and normalizes the rest. Duplicates are removed,
// order of first appearance is preserved.
func ExpandControlTypes(types []string) []string {
	seen := make(map[string]bool, len(types))
	var expanded []string
	for _, t := range types {
		if concrete, ok := ControlTypeGroups[strings.ToLower(t)]; ok {
			for _, c := range concrete {
				if !seen[c] {
					seen[c] = true
					expanded = append(expanded, c)
				}
			}
		} else if n := NormalizeControlType(t); !seen[n] {
			seen[n] = true
			expanded = append(expanded, n)
		}
	}
	return expanded
}
