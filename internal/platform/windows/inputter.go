//go:build windows

package windows

import (
	"fmt"
	"time"
	"unicode/utf16"
	"unsafe"

	"github.com/hfwin/handsfree/internal/platform"
)

// Inputter synthesizes mouse and keyboard input through SendInput.
type Inputter struct{}

// NewInputter creates the Windows input synthesizer.
func NewInputter() *Inputter {
	return &Inputter{}
}

var _ platform.Inputter = (*Inputter)(nil)

// Click moves the pointer to x,y and presses the button count times.
func (i *Inputter) Click(x, y int, button platform.MouseButton, count int) error {
	if err := i.MoveMouse(x, y); err != nil {
		return err
	}
	down, up, err := buttonFlags(button)
	if err != nil {
		return err
	}
	if count < 1 {
		count = 1
	}
	for n := 0; n < count; n++ {
		if err := sendMouse(0, 0, 0, down); err != nil {
			return err
		}
		if err := sendMouse(0, 0, 0, up); err != nil {
			return err
		}
	}
	return nil
}

// MoveMouse places the pointer at screen coordinates x,y.
func (i *Inputter) MoveMouse(x, y int) error {
	if r, _, err := procSetCursorPos.Call(uintptr(int32(x)), uintptr(int32(y))); r == 0 {
		return fmt.Errorf("move mouse to %d,%d: %w", x, y, err)
	}
	return nil
}

// Drag presses the left button at the start point, sweeps the pointer to
// the end point, and releases. Intermediate moves keep drop targets that
// track motion happy.
func (i *Inputter) Drag(fromX, fromY, toX, toY int) error {
	if err := i.MoveMouse(fromX, fromY); err != nil {
		return err
	}
	if err := sendMouse(0, 0, 0, mouseEventfLeftDown); err != nil {
		return err
	}
	const steps = 12
	for n := 1; n <= steps; n++ {
		x := fromX + (toX-fromX)*n/steps
		y := fromY + (toY-fromY)*n/steps
		if err := i.MoveMouse(x, y); err != nil {
			return err
		}
		time.Sleep(10 * time.Millisecond)
	}
	return sendMouse(0, 0, 0, mouseEventfLeftUp)
}

// Scroll turns the wheel at x,y. Positive amounts scroll up.
func (i *Inputter) Scroll(x, y, amount int) error {
	if err := i.MoveMouse(x, y); err != nil {
		return err
	}
	return sendMouse(0, 0, uint32(int32(amount*wheelDelta)), mouseEventfWheel)
}

// TypeText injects text as Unicode key events, pausing delayMs between
// characters. Unicode injection is layout-independent.
func (i *Inputter) TypeText(text string, delayMs int) error {
	units := utf16.Encode([]rune(text))
	for n, u := range units {
		if n > 0 && delayMs > 0 {
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
		}
		if err := sendUnicode(u, 0); err != nil {
			return err
		}
		if err := sendUnicode(u, keyEventfKeyUp); err != nil {
			return err
		}
	}
	return nil
}

// SendKey presses and releases a single named key.
func (i *Inputter) SendKey(name string) error {
	vk, ok := vkForName(name)
	if !ok {
		return fmt.Errorf("unknown key %q", name)
	}
	if err := sendKey(vk, 0); err != nil {
		return err
	}
	return sendKey(vk, keyEventfKeyUp)
}

// KeyCombo holds every key in the list down in order, then releases them
// in reverse, so "ctrl+shift+s" arrives as the shortcut it names.
func (i *Inputter) KeyCombo(keys []string) error {
	if len(keys) == 0 {
		return fmt.Errorf("empty key combination")
	}
	vks := make([]uint16, len(keys))
	for n, name := range keys {
		vk, ok := vkForName(name)
		if !ok {
			return fmt.Errorf("unknown key %q in combination", name)
		}
		vks[n] = vk
	}
	for _, vk := range vks {
		if err := sendKey(vk, 0); err != nil {
			return err
		}
	}
	for n := len(vks) - 1; n >= 0; n-- {
		if err := sendKey(vks[n], keyEventfKeyUp); err != nil {
			return err
		}
	}
	return nil
}

func buttonFlags(b platform.MouseButton) (down, up uint32, err error) {
	switch b {
	case platform.MouseLeft:
		return mouseEventfLeftDown, mouseEventfLeftUp, nil
	case platform.MouseRight:
		return mouseEventfRightDown, mouseEventfRightUp, nil
	case platform.MouseMiddle:
		return mouseEventfMiddleDown, mouseEventfMiddleUp, nil
	}
	return 0, 0, fmt.Errorf("unknown mouse button %d", b)
}

func sendMouse(dx, dy int32, data, flags uint32) error {
	in := mouseInput{
		typ:       inputMouse,
		dx:        dx,
		dy:        dy,
		mouseData: data,
		flags:     flags,
	}
	return sendInput(unsafe.Pointer(&in))
}

func sendKey(vk uint16, flags uint32) error {
	in := keyboardInput{
		typ:   inputKeyboard,
		vk:    vk,
		flags: flags,
	}
	return sendInput(unsafe.Pointer(&in))
}

func sendUnicode(unit uint16, flags uint32) error {
	in := keyboardInput{
		typ:   inputKeyboard,
		scan:  unit,
		flags: flags | keyEventfUnicode,
	}
	return sendInput(unsafe.Pointer(&in))
}

func sendInput(in unsafe.Pointer) error {
	const inputSize = unsafe.Sizeof(mouseInput{})
	if r, _, err := procSendInput.Call(1, uintptr(in), inputSize); r != 1 {
		return fmt.Errorf("send input: %w", err)
	}
	return nil
}
