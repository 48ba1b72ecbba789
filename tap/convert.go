package tap

import "github.com/vcaesar/keycode"

// CoreGraphics event flag bits (CGEventFlags).
const (
	cgFlagShift     uint64 = 1 << 17
	cgFlagControl   uint64 = 1 << 18
	cgFlagAlternate uint64 = 1 << 19
	cgFlagCommand   uint64 = 1 << 20
)

// modifiersFromCGFlags converts CGEventFlags into Modifiers.
func modifiersFromCGFlags(flags uint64) Modifiers {
	var m Modifiers
	if flags&cgFlagCommand != 0 {
		m |= ModCommand
	}
	if flags&cgFlagAlternate != 0 {
		m |= ModOption
	}
	if flags&cgFlagControl != 0 {
		m |= ModControl
	}
	if flags&cgFlagShift != 0 {
		m |= ModShift
	}
	return m
}

// libuiohook modifier masks, as carried in gohook's Event.Mask.
const (
	uioMaskShiftL uint16 = 1 << 0
	uioMaskCtrlL  uint16 = 1 << 1
	uioMaskMetaL  uint16 = 1 << 2
	uioMaskAltL   uint16 = 1 << 3
	uioMaskShiftR uint16 = 1 << 4
	uioMaskCtrlR  uint16 = 1 << 5
	uioMaskMetaR  uint16 = 1 << 6
	uioMaskAltR   uint16 = 1 << 7
)

// modifiersFromUiohookMask converts a libuiohook mask into Modifiers.
// Meta is the command key on macOS and the super key elsewhere.
func modifiersFromUiohookMask(mask uint16) Modifiers {
	var m Modifiers
	if mask&(uioMaskMetaL|uioMaskMetaR) != 0 {
		m |= ModCommand
	}
	if mask&(uioMaskAltL|uioMaskAltR) != 0 {
		m |= ModOption
	}
	if mask&(uioMaskCtrlL|uioMaskCtrlR) != 0 {
		m |= ModControl
	}
	if mask&(uioMaskShiftL|uioMaskShiftR) != 0 {
		m |= ModShift
	}
	return m
}

// libuiohook virtual codes of the modifier keys themselves.
var uioModifierKeys = map[uint16]bool{
	0x002A: true, // shift left
	0x0036: true, // shift right
	0x001D: true, // control left
	0x0E1D: true, // control right
	0x0038: true, // alt left
	0x0E38: true, // alt right
	0x0E5B: true, // meta left
	0x0E5C: true, // meta right
}

// darwinCodes maps key names, as used by the vcaesar/keycode table, to
// macOS virtual key codes.
var darwinCodes = map[string]int64{
	"a": 0, "s": 1, "d": 2, "f": 3, "h": 4, "g": 5, "z": 6, "x": 7,
	"c": 8, "v": 9, "b": 11, "q": 12, "w": 13, "e": 14, "r": 15,
	"y": 16, "t": 17, "o": 31, "u": 32, "i": 34, "p": 35, "l": 37,
	"j": 38, "k": 40, "n": 45, "m": 46,
	"esc": 53, "escape": 53,
}

// uioToDarwin maps libuiohook virtual codes to macOS virtual key codes.
var uioToDarwin = buildUioToDarwin()

func buildUioToDarwin() map[uint16]int64 {
	m := make(map[uint16]int64, len(darwinCodes))
	for name, code := range darwinCodes {
		if vc, ok := keycode.Keycode[name]; ok {
			m[vc] = code
		}
	}
	return m
}

// darwinCodeFromUiohook converts a libuiohook virtual code.
func darwinCodeFromUiohook(vc uint16) int64 {
	if code, ok := uioToDarwin[vc]; ok {
		return code
	}
	return CodeUnknown
}
