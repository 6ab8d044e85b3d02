//go:build windows

package windows

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/hfwin/handsfree/internal/model"
	"github.com/hfwin/handsfree/internal/platform"
)

// WindowManager implements platform.WindowManager over user32.
type WindowManager struct{}

// NewWindowManager creates the Windows window manager.
func NewWindowManager() *WindowManager {
	return &WindowManager{}
}

var enumWindowsCallback = windows.NewCallback(func(hwnd uintptr, lparam uintptr) uintptr {
	acc := (*windowAccumulator)(unsafe.Pointer(lparam))
	if isAppWindow(hwnd) {
		acc.windows = append(acc.windows, windowFromHWND(hwnd, acc.foreground))
	}
	return 1 // continue enumeration
})

type windowAccumulator struct {
	windows    []model.Window
	foreground uintptr
}

// ListWindows returns visible top-level application windows, frontmost
// first (EnumWindows yields them in z-order).
func (m *WindowManager) ListWindows() ([]model.Window, error) {
	acc := &windowAccumulator{foreground: foregroundWindow()}
	r, _, err := procEnumWindows.Call(enumWindowsCallback, uintptr(unsafe.Pointer(acc)))
	if r == 0 && len(acc.windows) == 0 {
		return nil, fmt.Errorf("enumerate windows: %w", err)
	}
	return acc.windows, nil
}

// FocusWindow restores the window if minimized and brings it to the
// foreground.
func (m *WindowManager) FocusWindow(w model.Window) error {
	if w.Handle == 0 {
		return fmt.Errorf("focus window %q: no native handle", w.Title)
	}
	if r, _, _ := procIsIconic.Call(w.Handle); r != 0 {
		procShowWindow.Call(w.Handle, swRestore)
	}
	if r, _, _ := procSetForegroundWindow.Call(w.Handle); r == 0 {
		return fmt.Errorf("focus window %q: foreground request refused", w.Title)
	}
	return nil
}

// ActiveWindow returns the currently focused window.
func (m *WindowManager) ActiveWindow() (model.Window, error) {
	hwnd := foregroundWindow()
	if hwnd == 0 {
		return model.Window{}, fmt.Errorf("no foreground window")
	}
	return windowFromHWND(hwnd, hwnd), nil
}

var _ platform.WindowManager = (*WindowManager)(nil)

func foregroundWindow() uintptr {
	r, _, _ := procGetForegroundWindow.Call()
	return r
}

// isAppWindow filters the enumeration down to what a user would call a
// window: visible, titled, unowned, and not a tool window.
func isAppWindow(hwnd uintptr) bool {
	if r, _, _ := procIsWindowVisible.Call(hwnd); r == 0 {
		return false
	}
	if r, _, _ := procGetWindowTextLengthW.Call(hwnd); r == 0 {
		return false
	}
	if r, _, _ := procGetWindow.Call(hwnd, gwOwner); r != 0 {
		return false
	}
	if style, _, _ := procGetWindowLongPtrW.Call(hwnd, gwlExstyle); style&wsExToolwindow != 0 {
		return false
	}
	return true
}

func windowFromHWND(hwnd, foreground uintptr) model.Window {
	var pid uint32
	procGetWindowThreadProcessID.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
	return model.Window{
		Title:     windowText(hwnd),
		ClassName: windowClass(hwnd),
		PID:       int(pid),
		Focused:   hwnd == foreground,
		Rect:      windowRect(hwnd),
		Handle:    hwnd,
	}
}

func windowText(hwnd uintptr) string {
	var buf [512]uint16
	n, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	return windows.UTF16ToString(buf[:n])
}

func windowClass(hwnd uintptr) string {
	var buf [256]uint16
	n, _, _ := procGetClassNameW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	return windows.UTF16ToString(buf[:n])
}

func windowRect(hwnd uintptr) model.Rect {
	var rc wRect
	procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&rc)))
	return model.Rect{
		Left:   int(rc.left),
		Top:    int(rc.top),
		Right:  int(rc.right),
		Bottom: int(rc.bottom),
	}
}
