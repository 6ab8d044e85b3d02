//go:build windows

package windows

import (
	"strconv"
	"strings"
)

// Virtual-key codes for named keys, including the alternate spellings
// key steps use ("ctrl+shift+s", "esc", "win+d").
var vkByName = map[string]uint16{
	"ctrl":        0x11,
	"control":     0x11,
	"alt":         0x12,
	"shift":       0x10,
	"win":         0x5B,
	"super":       0x5B,
	"meta":        0x5B,
	"enter":       0x0D,
	"return":      0x0D,
	"tab":         0x09,
	"esc":         0x1B,
	"escape":      0x1B,
	"space":       0x20,
	"backspace":   0x08,
	"delete":      0x2E,
	"del":         0x2E,
	"insert":      0x2D,
	"ins":         0x2D,
	"home":        0x24,
	"end":         0x23,
	"pageup":      0x21,
	"pgup":        0x21,
	"pagedown":    0x22,
	"pgdn":        0x22,
	"left":        0x25,
	"up":          0x26,
	"right":       0x27,
	"down":        0x28,
	"capslock":    0x14,
	"printscreen": 0x2C,
}

// nameByVK maps virtual-key codes back to the canonical spelling used in
// recorded macros. Left/right modifier variants collapse to one name.
var nameByVK = map[uint16]string{
	0x08: "backspace",
	0x09: "tab",
	0x0D: "enter",
	0x10: "shift",
	0x11: "ctrl",
	0x12: "alt",
	0x14: "capslock",
	0x1B: "esc",
	0x21: "pageup",
	0x22: "pagedown",
	0x23: "end",
	0x24: "home",
	0x25: "left",
	0x26: "up",
	0x27: "right",
	0x28: "down",
	0x2C: "printscreen",
	0x2D: "insert",
	0x2E: "delete",
	0x5B: "win",
	0x5C: "win",
	0xA0: "shift",
	0xA1: "shift",
	0xA2: "ctrl",
	0xA3: "ctrl",
	0xA4: "alt",
	0xA5: "alt",
}

func init() {
	for i := 1; i <= 12; i++ {
		vk := uint16(0x6F + i) // VK_F1 is 0x70
		vkByName["f"+strconv.Itoa(i)] = vk
		nameByVK[vk] = "f" + strconv.Itoa(i)
	}
}

// vkForName resolves a key name to its virtual-key code. Single letters
// and digits map directly; everything else goes through the name table.
func vkForName(name string) (uint16, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) == 1 {
		c := name[0]
		switch {
		case c >= 'a' && c <= 'z':
			return uint16(0x41 + c - 'a'), true
		case c >= '0' && c <= '9':
			return uint16(0x30 + c - '0'), true
		}
	}
	vk, ok := vkByName[name]
	return vk, ok
}

func nameForVK(vk uint16) (string, bool) {
	name, ok := nameByVK[vk]
	return name, ok
}

// US-layout OEM keys, unshifted and shifted.
var (
	oemBase = map[uint16]rune{
		0xBA: ';', 0xBB: '=', 0xBC: ',', 0xBD: '-', 0xBE: '.', 0xBF: '/',
		0xC0: '`', 0xDB: '[', 0xDC: '\\', 0xDD: ']', 0xDE: '\'',
	}
	oemShift = map[uint16]rune{
		0xBA: ':', 0xBB: '+', 0xBC: '<', 0xBD: '_', 0xBE: '>', 0xBF: '?',
		0xC0: '~', 0xDB: '{', 0xDC: '|', 0xDD: '}', 0xDE: '"',
	}
	digitShift = [10]rune{')', '!', '@', '#', '$', '%', '^', '&', '*', '('}
)

// runeForVK translates a printable key press to the character it would
// produce on a US layout under the given shift state.
func runeForVK(vk uint16, shift bool) (rune, bool) {
	switch {
	case vk >= 0x41 && vk <= 0x5A: // letters
		if shift {
			return rune('A' + vk - 0x41), true
		}
		return rune('a' + vk - 0x41), true
	case vk >= 0x30 && vk <= 0x39: // digit row
		if shift {
			return digitShift[vk-0x30], true
		}
		return rune('0' + vk - 0x30), true
	case vk >= 0x60 && vk <= 0x69: // numpad digits
		return rune('0' + vk - 0x60), true
	case vk == 0x20:
		return ' ', true
	case vk == 0x6A:
		return '*', true
	case vk == 0x6B:
		return '+', true
	case vk == 0x6D:
		return '-', true
	case vk == 0x6E:
		return '.', true
	case vk == 0x6F:
		return '/', true
	}
	if shift {
		if r, ok := oemShift[vk]; ok {
			return r, true
		}
		return 0, false
	}
	r, ok := oemBase[vk]
	return r, ok
}
