package terminal

// Key represents a parsed input key
type Key uint16

const (
	KeyNone Key = iota
	KeyRune     // Printable character (check Event.Rune)

	// Control keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab
	KeyBackspace
	KeyDelete

	// Navigation
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert

	// Ctrl+letter (Ctrl+A = 0x01, Ctrl+Z = 0x1A)
	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlK
	KeyCtrlL
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ

	// Ctrl+special
	KeyCtrlSpace
	KeyCtrlBackslash
	KeyCtrlBracketRight
	KeyCtrlCaret
	KeyCtrlUnderscore
)

// Modifier flags
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << 0
	ModAlt   Modifier = 1 << 1
	ModCtrl  Modifier = 1 << 2
)

// ctrlKeys maps control bytes 0x00-0x1f to keys; entries left zero are KeyNone
var ctrlKeys = [0x20]Key{
	0x00: KeyCtrlSpace,
	0x01: KeyCtrlA,
	0x02: KeyCtrlB,
	0x03: KeyCtrlC,
	0x04: KeyCtrlD,
	0x05: KeyCtrlE,
	0x06: KeyCtrlF,
	0x07: KeyCtrlG,
	0x08: KeyBackspace, // Ctrl+H
	0x09: KeyTab,
	0x0a: KeyEnter, // LF
	0x0b: KeyCtrlK,
	0x0c: KeyCtrlL,
	0x0d: KeyEnter, // CR
	0x0e: KeyCtrlN,
	0x0f: KeyCtrlO,
	0x10: KeyCtrlP,
	0x11: KeyCtrlQ,
	0x12: KeyCtrlR,
	0x13: KeyCtrlS,
	0x14: KeyCtrlT,
	0x15: KeyCtrlU,
	0x16: KeyCtrlV,
	0x17: KeyCtrlW,
	0x18: KeyCtrlX,
	0x19: KeyCtrlY,
	0x1a: KeyCtrlZ,
	0x1b: KeyEscape,
	0x1c: KeyCtrlBackslash,
	0x1d: KeyCtrlBracketRight,
	0x1e: KeyCtrlCaret,
	0x1f: KeyCtrlUnderscore,
}

// csiKeys maps the parameter+final bytes after ESC [ to keys
// Modified variants (ESC [ 1 ; mod X) are resolved by csiModifier
var csiKeys = map[string]Key{
	"A":  KeyUp,
	"B":  KeyDown,
	"C":  KeyRight,
	"D":  KeyLeft,
	"H":  KeyHome,
	"F":  KeyEnd,
	"Z":  KeyBacktab,
	"1~": KeyHome,
	"2~": KeyInsert,
	"3~": KeyDelete,
	"4~": KeyEnd,
	"5~": KeyPageUp,
	"6~": KeyPageDown,
	"7~": KeyHome,
	"8~": KeyEnd,
}

// ss3Keys maps the byte after ESC O to keys (application cursor mode)
var ss3Keys = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
}

// csiModifier decodes an xterm modifier parameter (2=Shift ... 8=Shift+Alt+Ctrl)
func csiModifier(p byte) Modifier {
	if p < '2' || p > '8' {
		return ModNone
	}
	bits := p - '1'
	var m Modifier
	if bits&1 != 0 {
		m |= ModShift
	}
	if bits&2 != 0 {
		m |= ModAlt
	}
	if bits&4 != 0 {
		m |= ModCtrl
	}
	return m
}

// lookupCSI resolves a CSI body such as "A", "3~", "1;5C" or "5;2~"
func lookupCSI(body []byte) (Key, Modifier, bool) {
	if k, ok := csiKeys[string(body)]; ok {
		return k, ModNone, true
	}

	// xterm modified form: <n>;<mod><final>
	n := len(body)
	if n >= 4 && body[n-3] == ';' {
		mod := csiModifier(body[n-2])
		base := string(body[:n-3]) + string(body[n-1])
		if n == 4 && body[0] == '1' && body[n-1] != '~' {
			// ESC [ 1 ; mod A: the leading 1 is a placeholder
			base = string(body[n-1])
		}
		if k, ok := csiKeys[base]; ok {
			return k, mod, true
		}
	}
	return KeyNone, ModNone, false
}
