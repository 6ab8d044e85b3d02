package platform

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hfwin/handsfree/internal/model"
)

// ErrUnsupportedAction is returned by ActionPerformer methods when an
// element does not implement the requested automation pattern.
var ErrUnsupportedAction = errors.New("element does not support this action")

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

func (b MouseButton) String() string {
	switch b {
	case MouseRight:
		return "right"
	case MouseMiddle:
		return "middle"
	default:
		return "left"
	}
}

// ParseMouseButton converts a string flag value to MouseButton.
func ParseMouseButton(s string) (MouseButton, error) {
	switch strings.ToLower(s) {
	case "", "left":
		return MouseLeft, nil
	case "right":
		return MouseRight, nil
	case "middle":
		return MouseMiddle, nil
	default:
		return MouseLeft, fmt.Errorf("unknown mouse button: %q (expected left, right, or middle)", s)
	}
}

// TreeOptions caps a tree read. Zero values mean no cap: resolution always
// reads full trees, dump commands pass limits.
type TreeOptions struct {
	MaxDepth int
	MaxNodes int
}

// PointHit describes the element found under a screen point.
type PointHit struct {
	// Window is the top-level window containing the element.
	Window model.Window

	// Path is the ancestry from the window's root element (first) down to
	// the hit element (last). Children are not populated.
	Path []model.Element

	// TypeIndex is the hit element's depth-first index among descendants
	// of the window root sharing its control type. It feeds the
	// structural fallback candidate of derived selectors.
	TypeIndex int
}

// Element returns the hit element itself, or nil for an empty path.
func (h *PointHit) Element() *model.Element {
	if h == nil || len(h.Path) == 0 {
		return nil
	}
	return &h.Path[len(h.Path)-1]
}

// PointerEvent is a pointer-button press observed by the global hooks.
type PointerEvent struct {
	X, Y   int
	Button MouseButton
	When   time.Time
}

// KeyEvent is a key press observed by the global hooks. Printable keys
// carry the typed rune; non-printables carry a normalized lowercase name
// ("enter", "backspace", "f9").
type KeyEvent struct {
	Rune rune
	Name string
	When time.Time
}

// Printable reports whether the event is a printable character.
func (e KeyEvent) Printable() bool { return e.Rune != 0 }
