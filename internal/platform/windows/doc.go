//go:build windows

// Package windows provides the Windows platform backend: window
// enumeration and focus over user32, the element tree and action patterns
// over UI Automation COM, synthesized input via SendInput, global capture
// via low-level hooks, and GDI screen capture. No CGO is required; COM is
// driven through go-ole and raw vtable calls.
package windows
