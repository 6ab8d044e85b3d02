//go:build windows

package windows

import (
	"fmt"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/hfwin/handsfree/internal/platform"
)

// Clipboard reads and writes CF_UNICODETEXT.
type Clipboard struct{}

// NewClipboard creates the Windows clipboard accessor.
func NewClipboard() *Clipboard {
	return &Clipboard{}
}

var _ platform.Clipboard = (*Clipboard)(nil)

// openClipboard retries briefly; the clipboard is shared and another
// process may hold it open.
func openClipboard() error {
	for attempt := 0; attempt < 10; attempt++ {
		if r, _, _ := procOpenClipboard.Call(0); r != 0 {
			return nil
		}
		time.Sleep(10 * time.Millisecond)
	}
	return fmt.Errorf("clipboard is held open by another process")
}

// ReadText returns the clipboard's text. A clipboard without text reads
// as empty.
func (c *Clipboard) ReadText() (string, error) {
	if err := openClipboard(); err != nil {
		return "", err
	}
	defer procCloseClipboard.Call()

	h, _, _ := procGetClipboardData.Call(cfUnicodeText)
	if h == 0 {
		return "", nil
	}
	p, _, _ := procGlobalLock.Call(h)
	if p == 0 {
		return "", fmt.Errorf("lock clipboard memory")
	}
	defer procGlobalUnlock.Call(h)

	return windows.UTF16PtrToString((*uint16)(unsafe.Pointer(p))), nil
}

// WriteText replaces the clipboard contents with s.
func (c *Clipboard) WriteText(s string) error {
	u, err := windows.UTF16FromString(s)
	if err != nil {
		return fmt.Errorf("clipboard text: %w", err)
	}
	if err := openClipboard(); err != nil {
		return err
	}
	defer procCloseClipboard.Call()

	if r, _, errno := procEmptyClipboard.Call(); r == 0 {
		return fmt.Errorf("empty clipboard: %w", errno)
	}
	h, _, errno := procGlobalAlloc.Call(gmemMoveable, uintptr(len(u)*2))
	if h == 0 {
		return fmt.Errorf("allocate clipboard memory: %w", errno)
	}
	p, _, _ := procGlobalLock.Call(h)
	if p == 0 {
		procGlobalFree.Call(h)
		return fmt.Errorf("lock clipboard memory")
	}
	copy(unsafe.Slice((*uint16)(unsafe.Pointer(p)), len(u)), u)
	procGlobalUnlock.Call(h)

	if r, _, errno := procSetClipboardData.Call(cfUnicodeText, h); r == 0 {
		procGlobalFree.Call(h)
		return fmt.Errorf("set clipboard data: %w", errno)
	}
	// The system owns the memory once SetClipboardData succeeds.
	return nil
}
