//go:build windows

package windows

import (
	"fmt"
	"syscall"
	"unsafe"

	"github.com/go-ole/go-ole"

	"github.com/hfwin/handsfree/internal/model"
	"github.com/hfwin/handsfree/internal/platform"
)

// ActionPerformer drives UI Automation control patterns on elements the
// Reader handed out.
type ActionPerformer struct {
	reader *Reader
}

// NewActionPerformer creates a performer backed by the given reader's
// element registry.
func NewActionPerformer(reader *Reader) *ActionPerformer {
	return &ActionPerformer{reader: reader}
}

var _ platform.ActionPerformer = (*ActionPerformer)(nil)

// Invoke triggers the element's Invoke pattern, pressing it without
// moving the pointer. Elements without the pattern report
// platform.ErrUnsupportedAction so callers can fall back to a click.
func (a *ActionPerformer) Invoke(el *model.Element) error {
	p, err := a.reader.pattern(el.Handle, patternInvoke)
	if err != nil {
		return fmt.Errorf("invoke %q: %w", el.Name, err)
	}
	ip := (*iUIAutomationInvokePattern)(p)
	defer ip.Release()
	hr, _, _ := syscall.SyscallN(ip.vtbl.Invoke, uintptr(unsafe.Pointer(ip)))
	if hr != 0 {
		return fmt.Errorf("invoke %q: hr=%#x", el.Name, hr)
	}
	return nil
}

// SetValue replaces the element's text through the Value pattern.
func (a *ActionPerformer) SetValue(el *model.Element, text string) error {
	p, err := a.reader.pattern(el.Handle, patternValue)
	if err != nil {
		return fmt.Errorf("set value on %q: %w", el.Name, err)
	}
	vp := (*iUIAutomationValuePattern)(p)
	defer vp.Release()

	bstr := ole.SysAllocString(text)
	defer ole.SysFreeString(bstr)
	hr, _, _ := syscall.SyscallN(vp.vtbl.SetValue,
		uintptr(unsafe.Pointer(vp)), uintptr(unsafe.Pointer(bstr)))
	if hr != 0 {
		return fmt.Errorf("set value on %q: hr=%#x", el.Name, hr)
	}
	return nil
}
