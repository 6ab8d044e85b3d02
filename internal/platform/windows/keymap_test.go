//go:build windows

package windows

import "testing"

func TestVKForName(t *testing.T) {
	tests := []struct {
		name string
		vk   uint16
		ok   bool
	}{
		{"a", 0x41, true},
		{"Z", 0x5A, true},
		{"0", 0x30, true},
		{"9", 0x39, true},
		{"enter", 0x0D, true},
		{"Return", 0x0D, true},
		{"ctrl", 0x11, true},
		{"CONTROL", 0x11, true},
		{"esc", 0x1B, true},
		{"escape", 0x1B, true},
		{"win", 0x5B, true},
		{"super", 0x5B, true},
		{"del", 0x2E, true},
		{"f1", 0x70, true},
		{"f9", 0x78, true},
		{"f12", 0x7B, true},
		{"pgdn", 0x22, true},
		{" tab ", 0x09, true},
		{"bogus", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		vk, ok := vkForName(tt.name)
		if ok != tt.ok || vk != tt.vk {
			t.Errorf("vkForName(%q) = %#x, %v; want %#x, %v", tt.name, vk, ok, tt.vk, tt.ok)
		}
	}
}

func TestNameForVK(t *testing.T) {
	tests := []struct {
		vk   uint16
		name string
		ok   bool
	}{
		{0x0D, "enter", true},
		{0x08, "backspace", true},
		{0x78, "f9", true},
		{0x7B, "f12", true},
		{0xA0, "shift", true},
		{0xA3, "ctrl", true},
		{0x5C, "win", true},
		{0x41, "", false}, // letters are runes, not named keys
	}
	for _, tt := range tests {
		name, ok := nameForVK(tt.vk)
		if ok != tt.ok || name != tt.name {
			t.Errorf("nameForVK(%#x) = %q, %v; want %q, %v", tt.vk, name, ok, tt.name, tt.ok)
		}
	}
}

func TestRuneForVK(t *testing.T) {
	tests := []struct {
		vk    uint16
		shift bool
		r     rune
		ok    bool
	}{
		{0x41, false, 'a', true},
		{0x41, true, 'A', true},
		{0x39, false, '9', true},
		{0x32, true, '@', true},
		{0x30, true, ')', true},
		{0x20, false, ' ', true},
		{0x20, true, ' ', true},
		{0x65, false, '5', true}, // numpad
		{0xBC, false, ',', true},
		{0xBC, true, '<', true},
		{0xDE, false, '\'', true},
		{0xDE, true, '"', true},
		{0x70, false, 0, false}, // f1
		{0x0D, false, 0, false}, // enter
		{0x1B, true, 0, false},  // esc
	}
	for _, tt := range tests {
		r, ok := runeForVK(tt.vk, tt.shift)
		if ok != tt.ok || r != tt.r {
			t.Errorf("runeForVK(%#x, shift=%v) = %q, %v; want %q, %v",
				tt.vk, tt.shift, r, ok, tt.r, tt.ok)
		}
	}
}

func TestChordName(t *testing.T) {
	tests := []struct {
		vk                    uint16
		ctrl, alt, win, shift bool
		want                  string
	}{
		{0x53, true, false, false, false, "ctrl+s"},
		{0x53, true, false, false, true, "ctrl+shift+s"},
		{0x2E, true, true, false, false, "ctrl+alt+delete"},
		{0x44, false, false, true, false, "win+d"},
	}
	for _, tt := range tests {
		got := chordName(tt.vk, tt.ctrl, tt.alt, tt.win, tt.shift)
		if got != tt.want {
			t.Errorf("chordName(%#x) = %q, want %q", tt.vk, got, tt.want)
		}
	}
}
