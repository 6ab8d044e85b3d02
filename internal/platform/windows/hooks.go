//go:build windows

package windows

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/hfwin/handsfree/internal/platform"
)

// HookSource captures global input through WH_KEYBOARD_LL and
// WH_MOUSE_LL hooks. Low-level hooks deliver events on the thread that
// installed them, so Start spins up a dedicated locked OS thread running
// a message pump and Stop shuts it down with WM_QUIT.
type HookSource struct{}

// NewHookSource creates the Windows hook source. Only one capture can
// run at a time; the hook installation itself is process-wide.
func NewHookSource() *HookSource {
	return &HookSource{}
}

var _ platform.Hooks = (*HookSource)(nil)

// hookShared is the process-wide hook installation. NewCallback
// registrations are never released, so the two hook procedures are
// created once and dispatch through this state.
var hookShared struct {
	mu        sync.Mutex
	running   bool
	onPointer func(platform.PointerEvent)
	onKey     func(platform.KeyEvent)
	threadID  uint32
	done      chan struct{}

	// modifier state, tracked from the key stream
	shift bool
	ctrl  bool
	alt   bool
	win   bool
}

var (
	hookProcOnce sync.Once
	keyboardProc uintptr
	mouseProc    uintptr
)

func ensureHookProcs() {
	hookProcOnce.Do(func() {
		keyboardProc = windows.NewCallback(lowLevelKeyboardProc)
		mouseProc = windows.NewCallback(lowLevelMouseProc)
	})
}

// Start installs both hooks and begins delivering events. The callbacks
// run on the hook thread and must only post.
func (h *HookSource) Start(onPointer func(platform.PointerEvent), onKey func(platform.KeyEvent)) error {
	hookShared.mu.Lock()
	if hookShared.running {
		hookShared.mu.Unlock()
		return fmt.Errorf("input hooks already installed")
	}
	ensureHookProcs()
	hookShared.onPointer = onPointer
	hookShared.onKey = onKey
	hookShared.shift, hookShared.ctrl, hookShared.alt, hookShared.win = false, false, false, false
	done := make(chan struct{})
	hookShared.done = done
	hookShared.mu.Unlock()

	ready := make(chan error, 1)
	go runHookPump(ready, done)
	if err := <-ready; err != nil {
		hookShared.mu.Lock()
		hookShared.onPointer = nil
		hookShared.onKey = nil
		hookShared.mu.Unlock()
		return err
	}

	hookShared.mu.Lock()
	hookShared.running = true
	hookShared.mu.Unlock()
	return nil
}

// Stop tears down the hooks. No callbacks fire after Stop returns.
func (h *HookSource) Stop() error {
	hookShared.mu.Lock()
	if !hookShared.running {
		hookShared.mu.Unlock()
		return nil
	}
	tid := hookShared.threadID
	done := hookShared.done
	hookShared.mu.Unlock()

	if r, _, err := procPostThreadMessageW.Call(uintptr(tid), wmQuit, 0, 0); r == 0 {
		return fmt.Errorf("stop input hooks: %w", err)
	}
	<-done

	hookShared.mu.Lock()
	hookShared.running = false
	hookShared.onPointer = nil
	hookShared.onKey = nil
	hookShared.mu.Unlock()
	return nil
}

// runHookPump installs the hooks on a locked OS thread and pumps
// messages until WM_QUIT. The hooks are removed before done closes, so
// a Stop that has seen done knows no callback is in flight.
func runHookPump(ready chan<- error, done chan struct{}) {
	defer close(done)
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	kb, _, err := procSetWindowsHookExW.Call(whKeyboardLL, keyboardProc, 0, 0)
	if kb == 0 {
		ready <- fmt.Errorf("install keyboard hook: %w", err)
		return
	}
	ms, _, err := procSetWindowsHookExW.Call(whMouseLL, mouseProc, 0, 0)
	if ms == 0 {
		procUnhookWindowsHookEx.Call(kb)
		ready <- fmt.Errorf("install mouse hook: %w", err)
		return
	}

	hookShared.mu.Lock()
	hookShared.threadID = windows.GetCurrentThreadId()
	hookShared.mu.Unlock()
	ready <- nil

	var msg wMsg
	for {
		r, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&msg)), 0, 0, 0)
		if int32(r) <= 0 { // WM_QUIT or failure
			break
		}
		// No windows live on this thread; the pump only exists so the
		// low-level hooks get serviced.
	}
	procUnhookWindowsHookEx.Call(kb)
	procUnhookWindowsHookEx.Call(ms)
}

func lowLevelKeyboardProc(code, wparam, lparam uintptr) uintptr {
	if int32(code) == 0 {
		info := (*kbdLLHook)(unsafe.Pointer(lparam))
		if info.flags&llkhfInjected == 0 {
			handleKeyMessage(uint32(wparam), info)
		}
	}
	r, _, _ := procCallNextHookEx.Call(0, code, wparam, lparam)
	return r
}

func lowLevelMouseProc(code, wparam, lparam uintptr) uintptr {
	if int32(code) == 0 {
		info := (*mouseLLHook)(unsafe.Pointer(lparam))
		if info.flags&llmhfInjected == 0 {
			handleMouseMessage(uint32(wparam), info)
		}
	}
	r, _, _ := procCallNextHookEx.Call(0, code, wparam, lparam)
	return r
}

func handleKeyMessage(msg uint32, info *kbdLLHook) {
	vk := uint16(info.vkCode)
	down := msg == wmKeyDown || msg == wmSysKeyDown

	hookShared.mu.Lock()
	switch vk {
	case vkShift, vkLShift, vkRShift:
		hookShared.shift = down
		hookShared.mu.Unlock()
		return
	case 0x11, 0xA2, 0xA3: // ctrl
		hookShared.ctrl = down
		hookShared.mu.Unlock()
		return
	case 0x12, 0xA4, 0xA5: // alt
		hookShared.alt = down
		hookShared.mu.Unlock()
		return
	case 0x5B, 0x5C: // win
		hookShared.win = down
		hookShared.mu.Unlock()
		return
	}
	if !down {
		hookShared.mu.Unlock()
		return
	}
	onKey := hookShared.onKey
	shift := hookShared.shift
	chorded := hookShared.ctrl || hookShared.alt || hookShared.win
	ctrl, alt, win := hookShared.ctrl, hookShared.alt, hookShared.win
	hookShared.mu.Unlock()

	if onKey == nil {
		return
	}
	ev := platform.KeyEvent{When: time.Now()}
	switch {
	case chorded:
		// A ctrl/alt/win chord is a shortcut, not text.
		ev.Name = chordName(vk, ctrl, alt, win, shift)
	default:
		if r, ok := runeForVK(vk, shift); ok {
			ev.Rune = r
		} else if name, ok := nameForVK(vk); ok {
			ev.Name = name
		} else {
			ev.Name = fmt.Sprintf("vk%d", vk)
		}
	}
	onKey(ev)
}

func handleMouseMessage(msg uint32, info *mouseLLHook) {
	var btn platform.MouseButton
	switch msg {
	case wmLButtonDown:
		btn = platform.MouseLeft
	case wmRButtonDown:
		btn = platform.MouseRight
	case wmMButtonDown:
		btn = platform.MouseMiddle
	default:
		return
	}

	hookShared.mu.Lock()
	onPointer := hookShared.onPointer
	hookShared.mu.Unlock()
	if onPointer == nil {
		return
	}
	onPointer(platform.PointerEvent{
		X:      int(info.pt.x),
		Y:      int(info.pt.y),
		Button: btn,
		When:   time.Now(),
	})
}

func chordName(vk uint16, ctrl, alt, win, shift bool) string {
	var parts []string
	if ctrl {
		parts = append(parts, "ctrl")
	}
	if alt {
		parts = append(parts, "alt")
	}
	if win {
		parts = append(parts, "win")
	}
	if shift {
		parts = append(parts, "shift")
	}
	if name, ok := nameForVK(vk); ok {
		parts = append(parts, name)
	} else if r, ok := runeForVK(vk, false); ok {
		parts = append(parts, string(r))
	} else {
		parts = append(parts, fmt.Sprintf("vk%d", vk))
	}
	return strings.Join(parts, "+")
}
