package platform

import (
	"image"

	"github.com/hfwin/handsfree/internal/model"
)

// WindowManager enumerates and focuses top-level windows.
type WindowManager interface {
	// ListWindows returns visible top-level windows in z-order,
	// frontmost first.
	ListWindows() ([]model.Window, error)

	// FocusWindow brings the window to the foreground.
	FocusWindow(w model.Window) error

	// ActiveWindow returns the currently focused window.
	ActiveWindow() (model.Window, error)
}

// TreeReader reads a window's UI Automation element tree.
type TreeReader interface {
	// WindowTree returns the element tree rooted at the window. A zero
	// TreeOptions reads the full tree; dumps pass caps.
	WindowTree(w model.Window, opts TreeOptions) (*model.Element, error)
}

// PointReader maps screen points to elements.
type PointReader interface {
	// ElementFromPoint returns the element under a screen point together
	// with its window and ancestry.
	ElementFromPoint(x, y int) (*PointHit, error)

	// CursorPos returns the current pointer position.
	CursorPos() (x, y int, err error)
}

// ActionPerformer drives native UI Automation patterns on elements.
// Both methods return ErrUnsupportedAction when the element does not
// implement the pattern, so callers can fall back to synthesized input.
type ActionPerformer interface {
	Invoke(el *model.Element) error
	SetValue(el *model.Element, text string) error
}

// Inputter synthesizes mouse and keyboard input.
type Inputter interface {
	Click(x, y int, button MouseButton, count int) error
	MoveMouse(x, y int) error
	Drag(fromX, fromY, toX, toY int) error
	Scroll(x, y, amount int) error
	TypeText(text string, delayMs int) error
	SendKey(name string) error
	KeyCombo(keys []string) error
}

// Hooks captures global pointer and keyboard events. Callbacks run on the
// hook's own thread and must only post, never block.
type Hooks interface {
	// Start installs the hooks. Registration failure means event capture
	// is unavailable and the caller must not proceed.
	Start(onPointer func(PointerEvent), onKey func(KeyEvent)) error

	// Stop removes the hooks. No callbacks fire after Stop returns.
	Stop() error
}

// Screenshotter captures screen content.
type Screenshotter interface {
	CaptureScreen() (image.Image, error)
	CaptureWindow(w model.Window) (image.Image, error)
}

// Clipboard reads and writes system clipboard text.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}
