package key

import (
	"strings"
	"unicode"
)

// Code identifies a physical key by its DOM KeyboardEvent.code name,
// for example "KeyA", "Digit1", "Enter" or "MetaLeft".
type Code string

// CodeNone represents no key.
const CodeNone Code = ""

// Modifier keys
const (
	CodeAltLeft      Code = "AltLeft"
	CodeAltRight     Code = "AltRight"
	CodeControlLeft  Code = "ControlLeft"
	CodeControlRight Code = "ControlRight"
	CodeMetaLeft     Code = "MetaLeft"
	CodeMetaRight    Code = "MetaRight"
	CodeShiftLeft    Code = "ShiftLeft"
	CodeShiftRight   Code = "ShiftRight"
)

// Special keys
const (
	CodeEscape      Code = "Escape"
	CodeEnter       Code = "Enter"
	CodeTab         Code = "Tab"
	CodeBackspace   Code = "Backspace"
	CodeDelete      Code = "Delete"
	CodeInsert      Code = "Insert"
	CodeHome        Code = "Home"
	CodeEnd         Code = "End"
	CodePageUp      Code = "PageUp"
	CodePageDown    Code = "PageDown"
	CodeSpace       Code = "Space"
	CodePause       Code = "Pause"
	CodePrintScreen Code = "PrintScreen"
	CodeScrollLock  Code = "ScrollLock"
	CodeNumLock     Code = "NumLock"
	CodeCapsLock    Code = "CapsLock"

	// Arrow keys
	CodeArrowUp    Code = "ArrowUp"
	CodeArrowDown  Code = "ArrowDown"
	CodeArrowLeft  Code = "ArrowLeft"
	CodeArrowRight Code = "ArrowRight"
)

// String returns the code name.
func (c Code) String() string {
	return string(c)
}

// IsModifier returns true if the code names a modifier key.
func (c Code) IsModifier() bool {
	switch c {
	case CodeAltLeft, CodeAltRight,
		CodeControlLeft, CodeControlRight,
		CodeMetaLeft, CodeMetaRight,
		CodeShiftLeft, CodeShiftRight:
		return true
	}
	return false
}

// Modifier returns the modifier flag a modifier-key code sets.
// Returns ModNone for non-modifier codes.
func (c Code) Modifier() Modifier {
	switch c {
	case CodeAltLeft, CodeAltRight:
		return ModAlt
	case CodeControlLeft, CodeControlRight:
		return ModCtrl
	case CodeMetaLeft, CodeMetaRight:
		return ModMeta
	case CodeShiftLeft, CodeShiftRight:
		return ModShift
	}
	return ModNone
}

// FromRune returns the code of the key that types r on a US layout,
// and whether r needs Shift. Returns CodeNone for runes without a key.
func FromRune(r rune) (Code, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return Code("Key" + string(unicode.ToUpper(r))), false
	case r >= 'A' && r <= 'Z':
		return Code("Key" + string(r)), true
	case r >= '0' && r <= '9':
		return Code("Digit" + string(r)), false
	case r == ' ':
		return CodeSpace, false
	}
	if c, ok := punctuationCodes[r]; ok {
		return c.code, c.shift
	}
	return CodeNone, false
}

type runeCode struct {
	code  Code
	shift bool
}

// punctuationCodes maps US-layout punctuation to the key producing it.
var punctuationCodes = map[rune]runeCode{
	'-':  {"Minus", false},
	'_':  {"Minus", true},
	'=':  {"Equal", false},
	'+':  {"Equal", true},
	'[':  {"BracketLeft", false},
	'{':  {"BracketLeft", true},
	']':  {"BracketRight", false},
	'}':  {"BracketRight", true},
	'\\': {"Backslash", false},
	'|':  {"Backslash", true},
	';':  {"Semicolon", false},
	':':  {"Semicolon", true},
	'\'': {"Quote", false},
	'"':  {"Quote", true},
	',':  {"Comma", false},
	'<':  {"Comma", true},
	'.':  {"Period", false},
	'>':  {"Period", true},
	'/':  {"Slash", false},
	'?':  {"Slash", true},
	'`':  {"Backquote", false},
	'~':  {"Backquote", true},
	'!':  {"Digit1", true},
	'@':  {"Digit2", true},
	'#':  {"Digit3", true},
	'$':  {"Digit4", true},
	'%':  {"Digit5", true},
	'^':  {"Digit6", true},
	'&':  {"Digit7", true},
	'*':  {"Digit8", true},
	'(':  {"Digit9", true},
	')':  {"Digit0", true},
}

// codeNameMap maps lowercase aliases to codes for ParseCode.
var codeNameMap = map[string]Code{
	"esc":        CodeEscape,
	"escape":     CodeEscape,
	"enter":      CodeEnter,
	"return":     CodeEnter,
	"tab":        CodeTab,
	"backspace":  CodeBackspace,
	"delete":     CodeDelete,
	"del":        CodeDelete,
	"insert":     CodeInsert,
	"home":       CodeHome,
	"end":        CodeEnd,
	"pageup":     CodePageUp,
	"pagedown":   CodePageDown,
	"space":      CodeSpace,
	"up":         CodeArrowUp,
	"down":       CodeArrowDown,
	"left":       CodeArrowLeft,
	"right":      CodeArrowRight,
	"arrowup":    CodeArrowUp,
	"arrowdown":  CodeArrowDown,
	"arrowleft":  CodeArrowLeft,
	"arrowright": CodeArrowRight,
}

// ParseCode resolves a key name to a Code.
// DOM code names pass through unchanged; single letters and digits map to
// their Key/Digit codes and common aliases ("esc", "up") are resolved.
func ParseCode(name string) Code {
	name = strings.TrimSpace(name)
	if name == "" {
		return CodeNone
	}
	if c, ok := codeNameMap[strings.ToLower(name)]; ok {
		return c
	}
	if r := []rune(name); len(r) == 1 {
		if c, _ := FromRune(r[0]); c != CodeNone {
			return c
		}
	}
	return Code(name)
}
