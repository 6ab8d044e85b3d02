//go:build windows

package windows

import (
	"errors"
	"fmt"
	"sync"
	"syscall"
	"unsafe"

	"github.com/go-ole/go-ole"

	"github.com/hfwin/handsfree/internal/model"
	"github.com/hfwin/handsfree/internal/platform"
)

var (
	clsidCUIAutomation = ole.NewGUID("{ff48dba4-60ef-4201-aa87-54103eef594e}")
	iidIUIAutomation   = ole.NewGUID("{30cbe57d-d9d0-452a-ab13-7ac5ac4825ee}")
)

// UI Automation pattern identifiers.
const (
	patternInvoke = 10000
	patternValue  = 10002
)

// sFalse is the S_FALSE HRESULT CoInitializeEx returns when COM is
// already initialized; go-ole exports S_OK but not S_FALSE.
const sFalse = 0x00000001

// Vtable layouts mirror UIAutomationClient.h method order; only the
// slots this backend calls are reached, but every preceding slot must be
// declared so the offsets line up.

type iUIAutomationVtbl struct {
	ole.IUnknownVtbl
	CompareElements             uintptr
	CompareRuntimeIds           uintptr
	GetRootElement              uintptr
	ElementFromHandle           uintptr
	ElementFromPoint            uintptr
	GetFocusedElement           uintptr
	GetRootElementBuildCache    uintptr
	ElementFromHandleBuildCache uintptr
	ElementFromPointBuildCache  uintptr
	GetFocusedElementBuildCache uintptr
	CreateTreeWalker            uintptr
	ControlViewWalker           uintptr
	ContentViewWalker           uintptr
	RawViewWalker               uintptr
}

type iUIAutomation struct {
	vtbl *iUIAutomationVtbl
}

type iUIAutomationElementVtbl struct {
	ole.IUnknownVtbl
	SetFocus                    uintptr
	GetRuntimeId                uintptr
	FindFirst                   uintptr
	FindAll                     uintptr
	FindFirstBuildCache         uintptr
	FindAllBuildCache           uintptr
	BuildUpdatedCache           uintptr
	GetCurrentPropertyValue     uintptr
	GetCurrentPropertyValueEx   uintptr
	GetCachedPropertyValue      uintptr
	GetCachedPropertyValueEx    uintptr
	GetCurrentPatternAs         uintptr
	GetCachedPatternAs          uintptr
	GetCurrentPattern           uintptr
	GetCachedPattern            uintptr
	GetCachedParent             uintptr
	GetCachedChildren           uintptr
	CurrentProcessId            uintptr
	CurrentControlType          uintptr
	CurrentLocalizedControlType uintptr
	CurrentName                 uintptr
	CurrentAcceleratorKey       uintptr
	CurrentAccessKey            uintptr
	CurrentHasKeyboardFocus     uintptr
	CurrentIsKeyboardFocusable  uintptr
	CurrentIsEnabled            uintptr
	CurrentAutomationId         uintptr
	CurrentClassName            uintptr
	CurrentHelpText             uintptr
	CurrentCulture              uintptr
	CurrentIsControlElement     uintptr
	CurrentIsContentElement     uintptr
	CurrentIsPassword           uintptr
	CurrentNativeWindowHandle   uintptr
	CurrentItemType             uintptr
	CurrentIsOffscreen          uintptr
	CurrentOrientation          uintptr
	CurrentFrameworkId          uintptr
	CurrentIsRequiredForForm    uintptr
	CurrentItemStatus           uintptr
	CurrentBoundingRectangle    uintptr
}

type iUIAutomationElement struct {
	vtbl *iUIAutomationElementVtbl
}

type iUIAutomationTreeWalkerVtbl struct {
	ole.IUnknownVtbl
	GetParentElement          uintptr
	GetFirstChildElement      uintptr
	GetLastChildElement       uintptr
	GetNextSiblingElement     uintptr
	GetPreviousSiblingElement uintptr
	NormalizeElement          uintptr
}

type iUIAutomationTreeWalker struct {
	vtbl *iUIAutomationTreeWalkerVtbl
}

type iUIAutomationInvokePatternVtbl struct {
	ole.IUnknownVtbl
	Invoke uintptr
}

type iUIAutomationInvokePattern struct {
	vtbl *iUIAutomationInvokePatternVtbl
}

type iUIAutomationValuePatternVtbl struct {
	ole.IUnknownVtbl
	SetValue          uintptr
	CurrentValue      uintptr
	CurrentIsReadOnly uintptr
	CachedValue       uintptr
	CachedIsReadOnly  uintptr
}

type iUIAutomationValuePattern struct {
	vtbl *iUIAutomationValuePatternVtbl
}

func (e *iUIAutomationElement) Release() {
	if e != nil {
		syscall.SyscallN(e.vtbl.Release, uintptr(unsafe.Pointer(e)))
	}
}

func (p *iUIAutomationInvokePattern) Release() {
	if p != nil {
		syscall.SyscallN(p.vtbl.Release, uintptr(unsafe.Pointer(p)))
	}
}

func (p *iUIAutomationValuePattern) Release() {
	if p != nil {
		syscall.SyscallN(p.vtbl.Release, uintptr(unsafe.Pointer(p)))
	}
}

// Reader reads UI Automation element trees and hit-tests screen points.
// It implements platform.TreeReader and platform.PointReader. COM
// elements handed out through model.Element.Handle are tracked in a
// generation-stamped registry; handles stay valid until the next tree or
// point read, which releases the previous generation.
type Reader struct {
	mu     sync.Mutex
	auto   *iUIAutomation
	walker *iUIAutomationTreeWalker
	gen    uint32
	elems  []*iUIAutomationElement
}

// NewReader creates the UI Automation reader. COM is initialized lazily
// on first use.
func NewReader() *Reader {
	return &Reader{}
}

var (
	_ platform.TreeReader  = (*Reader)(nil)
	_ platform.PointReader = (*Reader)(nil)
)

func (r *Reader) ensure() error {
	if r.auto != nil {
		return nil
	}
	if err := ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED); err != nil {
		var oleErr *ole.OleError
		if !errors.As(err, &oleErr) || (oleErr.Code() != ole.S_OK && oleErr.Code() != sFalse) {
			return fmt.Errorf("initialize COM: %w", err)
		}
	}
	unk, err := ole.CreateInstance(clsidCUIAutomation, iidIUIAutomation)
	if err != nil {
		return fmt.Errorf("create UI Automation client: %w", err)
	}
	r.auto = (*iUIAutomation)(unsafe.Pointer(unk))

	var w *iUIAutomationTreeWalker
	hr, _, _ := syscall.SyscallN(r.auto.vtbl.RawViewWalker,
		uintptr(unsafe.Pointer(r.auto)), uintptr(unsafe.Pointer(&w)))
	if hr != 0 || w == nil {
		return fmt.Errorf("get raw view walker: hr=%#x", hr)
	}
	r.walker = w
	return nil
}

// register tracks a COM element and returns its handle. Handles encode
// the registry generation so reads from a previous generation are
// detected as stale.
func (r *Reader) register(el *iUIAutomationElement) uintptr {
	r.elems = append(r.elems, el)
	return uintptr(r.gen)<<32 | uintptr(len(r.elems))
}

func (r *Reader) lookup(h uintptr) (*iUIAutomationElement, error) {
	if uint32(h>>32) != r.gen {
		return nil, fmt.Errorf("element handle is stale; re-resolve the element")
	}
	idx := int(uint32(h))
	if idx < 1 || idx > len(r.elems) {
		return nil, fmt.Errorf("unknown element handle %d", idx)
	}
	return r.elems[idx-1], nil
}

// reset releases the previous generation of elements.
func (r *Reader) reset() {
	for _, el := range r.elems {
		el.Release()
	}
	r.elems = r.elems[:0]
	r.gen++
}

// WindowTree reads the element tree rooted at the window. Zero options
// read the full tree; dump commands pass depth/node caps.
func (r *Reader) WindowTree(w model.Window, opts platform.TreeOptions) (*model.Element, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensure(); err != nil {
		return nil, err
	}
	if w.Handle == 0 {
		return nil, fmt.Errorf("window %q has no native handle", w.Title)
	}
	r.reset()

	rootEl, err := r.elementFromHandle(w.Handle)
	if err != nil {
		return nil, err
	}
	budget := opts.MaxNodes
	if budget <= 0 {
		budget = -1
	}
	root := r.convert(rootEl, 0, opts.MaxDepth, &budget)
	return &root, nil
}

// ElementFromPoint hit-tests a screen point and reconstructs the hit
// element's ancestry and same-type index within its window's tree.
func (r *Reader) ElementFromPoint(x, y int) (*platform.PointHit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensure(); err != nil {
		return nil, err
	}
	r.reset()

	hwnd := topWindowAt(x, y)
	if hwnd == 0 {
		return nil, fmt.Errorf("no window at %d,%d", x, y)
	}
	win := windowFromHWND(hwnd, foregroundWindow())

	raw, err := r.elementAt(x, y)
	if err != nil {
		return nil, err
	}
	target := r.describe(raw)

	rootEl, err := r.elementFromHandle(hwnd)
	if err != nil {
		return nil, err
	}
	budget := -1
	root := r.convert(rootEl, 0, 0, &budget)

	if path, typeIndex, ok := locate(&root, target); ok {
		return &platform.PointHit{Window: win, Path: path, TypeIndex: typeIndex}, nil
	}
	// The hit element did not line up with the tree read (UI changed
	// between the two calls). Fall back to the element alone.
	target.Children = nil
	return &platform.PointHit{Window: win, Path: []model.Element{target}, TypeIndex: 0}, nil
}

// CursorPos returns the current pointer position.
func (r *Reader) CursorPos() (int, int, error) {
	var pt wPoint
	if ok, _, err := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt))); ok == 0 {
		return 0, 0, fmt.Errorf("cursor position: %w", err)
	}
	return int(pt.x), int(pt.y), nil
}

// pattern fetches a UI Automation pattern object from a tracked element.
// A missing pattern maps to platform.ErrUnsupportedAction so callers can
// fall back to synthesized input.
func (r *Reader) pattern(h uintptr, patternID int) (unsafe.Pointer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	el, err := r.lookup(h)
	if err != nil {
		return nil, err
	}
	var p unsafe.Pointer
	hr, _, _ := syscall.SyscallN(el.vtbl.GetCurrentPattern,
		uintptr(unsafe.Pointer(el)), uintptr(patternID), uintptr(unsafe.Pointer(&p)))
	if hr != 0 {
		return nil, fmt.Errorf("get pattern %d: hr=%#x", patternID, hr)
	}
	if p == nil {
		return nil, platform.ErrUnsupportedAction
	}
	return p, nil
}

func (r *Reader) elementFromHandle(hwnd uintptr) (*iUIAutomationElement, error) {
	var el *iUIAutomationElement
	hr, _, _ := syscall.SyscallN(r.auto.vtbl.ElementFromHandle,
		uintptr(unsafe.Pointer(r.auto)), hwnd, uintptr(unsafe.Pointer(&el)))
	if hr != 0 || el == nil {
		return nil, fmt.Errorf("element from window handle: hr=%#x", hr)
	}
	return el, nil
}

func (r *Reader) elementAt(x, y int) (*iUIAutomationElement, error) {
	// POINT is 8 bytes and passes by value in a single register slot.
	pt := uintptr(uint32(int32(x))) | uintptr(uint32(int32(y)))<<32
	var el *iUIAutomationElement
	hr, _, _ := syscall.SyscallN(r.auto.vtbl.ElementFromPoint,
		uintptr(unsafe.Pointer(r.auto)), pt, uintptr(unsafe.Pointer(&el)))
	if hr != 0 || el == nil {
		return nil, fmt.Errorf("no element at %d,%d: hr=%#x", x, y, hr)
	}
	return el, nil
}

// convert takes ownership of el, registers it, and recursively converts
// its children. budget counts remaining nodes; negative means unlimited.
func (r *Reader) convert(el *iUIAutomationElement, depth, maxDepth int, budget *int) model.Element {
	if *budget > 0 {
		*budget--
	}
	m := r.describe(el)
	if maxDepth > 0 && depth >= maxDepth {
		return m
	}
	for child := r.firstChild(el); child != nil; child = r.nextSibling(child) {
		if *budget == 0 {
			child.Release()
			break
		}
		m.Children = append(m.Children, r.convert(child, depth+1, maxDepth, budget))
	}
	return m
}

func (r *Reader) describe(el *iUIAutomationElement) model.Element {
	m := model.Element{
		Name:        el.name(),
		ControlType: controlTypeName(el.controlType()),
		AutoID:      el.autoID(),
		ClassName:   el.className(),
		Rect:        el.boundingRect(),
		Focused:     el.hasFocus(),
		Handle:      r.register(el),
	}
	if !el.isEnabled() {
		disabled := false
		m.Enabled = &disabled
	}
	return m
}

func (r *Reader) firstChild(el *iUIAutomationElement) *iUIAutomationElement {
	var child *iUIAutomationElement
	syscall.SyscallN(r.walker.vtbl.GetFirstChildElement,
		uintptr(unsafe.Pointer(r.walker)), uintptr(unsafe.Pointer(el)), uintptr(unsafe.Pointer(&child)))
	return child
}

func (r *Reader) nextSibling(el *iUIAutomationElement) *iUIAutomationElement {
	var sib *iUIAutomationElement
	syscall.SyscallN(r.walker.vtbl.GetNextSiblingElement,
		uintptr(unsafe.Pointer(r.walker)), uintptr(unsafe.Pointer(el)), uintptr(unsafe.Pointer(&sib)))
	return sib
}

// locate finds want's node inside root's descendants and returns the
// ancestry path (root first, subtree children stripped) plus the node's
// index among same-control-type descendants in depth-first order.
func locate(root *model.Element, want model.Element) ([]model.Element, int, bool) {
	var (
		stack   []*model.Element
		path    []model.Element
		typeIdx int
		count   int
	)
	var walk func(el *model.Element) bool
	walk = func(el *model.Element) bool {
		stack = append(stack, el)
		if el.ControlType == want.ControlType {
			if sameElement(el, &want) {
				typeIdx = count
				path = make([]model.Element, 0, len(stack)+1)
				path = append(path, stripped(root))
				for _, p := range stack {
					path = append(path, stripped(p))
				}
				return true
			}
			count++
		}
		for i := range el.Children {
			if walk(&el.Children[i]) {
				return true
			}
		}
		stack = stack[:len(stack)-1]
		return false
	}
	for i := range root.Children {
		if walk(&root.Children[i]) {
			return path, typeIdx, true
		}
	}
	return nil, 0, false
}

func sameElement(a, b *model.Element) bool {
	return a.Name == b.Name &&
		a.AutoID == b.AutoID &&
		a.ClassName == b.ClassName &&
		a.Rect == b.Rect
}

func stripped(el *model.Element) model.Element {
	c := *el
	c.Children = nil
	return c
}

func topWindowAt(x, y int) uintptr {
	pt := uintptr(uint32(int32(x))) | uintptr(uint32(int32(y)))<<32
	hwnd, _, _ := procWindowFromPoint.Call(pt)
	if hwnd == 0 {
		return 0
	}
	top, _, _ := procGetAncestor.Call(hwnd, gaRoot)
	if top == 0 {
		return hwnd
	}
	return top
}

// Element property accessors.

func (e *iUIAutomationElement) bstrProp(slot uintptr) string {
	var b *uint16
	hr, _, _ := syscall.SyscallN(slot, uintptr(unsafe.Pointer(e)), uintptr(unsafe.Pointer(&b)))
	if hr != 0 || b == nil {
		return ""
	}
	defer ole.SysFreeString((*int16)(unsafe.Pointer(b)))
	return ole.BstrToString(b)
}

func (e *iUIAutomationElement) boolProp(slot uintptr) bool {
	var v int32
	hr, _, _ := syscall.SyscallN(slot, uintptr(unsafe.Pointer(e)), uintptr(unsafe.Pointer(&v)))
	return hr == 0 && v != 0
}

func (e *iUIAutomationElement) name() string { return e.bstrProp(e.vtbl.CurrentName) }

func (e *iUIAutomationElement) autoID() string { return e.bstrProp(e.vtbl.CurrentAutomationId) }

func (e *iUIAutomationElement) className() string { return e.bstrProp(e.vtbl.CurrentClassName) }

func (e *iUIAutomationElement) controlType() int32 {
	var v int32
	syscall.SyscallN(e.vtbl.CurrentControlType, uintptr(unsafe.Pointer(e)), uintptr(unsafe.Pointer(&v)))
	return v
}

func (e *iUIAutomationElement) hasFocus() bool { return e.boolProp(e.vtbl.CurrentHasKeyboardFocus) }

func (e *iUIAutomationElement) isEnabled() bool { return e.boolProp(e.vtbl.CurrentIsEnabled) }

func (e *iUIAutomationElement) boundingRect() model.Rect {
	var rc wRect
	hr, _, _ := syscall.SyscallN(e.vtbl.CurrentBoundingRectangle,
		uintptr(unsafe.Pointer(e)), uintptr(unsafe.Pointer(&rc)))
	if hr != 0 {
		return model.Rect{}
	}
	return model.Rect{
		Left:   int(rc.left),
		Top:    int(rc.top),
		Right:  int(rc.right),
		Bottom: int(rc.bottom),
	}
}

// UI Automation control type ids, mapped to the canonical names the rest
// of the tool uses.
var controlTypeNames = map[int32]string{
	50000: "Button",
	50001: "Calendar",
	50002: "CheckBox",
	50003: "ComboBox",
	50004: "Edit",
	50005: "Hyperlink",
	50006: "Image",
	50007: "ListItem",
	50008: "List",
	50009: "Menu",
	50010: "MenuBar",
	50011: "MenuItem",
	50012: "ProgressBar",
	50013: "RadioButton",
	50014: "ScrollBar",
	50015: "Slider",
	50016: "Spinner",
	50017: "StatusBar",
	50018: "Tab",
	50019: "TabItem",
	50020: "Text",
	50021: "ToolBar",
	50022: "ToolTip",
	50023: "Tree",
	50024: "TreeItem",
	50025: "Custom",
	50026: "Group",
	50027: "Thumb",
	50028: "DataGrid",
	50029: "DataItem",
	50030: "Document",
	50031: "SplitButton",
	50032: "Window",
	50033: "Pane",
	50034: "Header",
	50035: "HeaderItem",
	50036: "Table",
	50037: "TitleBar",
	50038: "Separator",
	50039: "SemanticZoom",
	50040: "AppBar",
}

func controlTypeName(id int32) string {
	if name, ok := controlTypeNames[id]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", id)
}
