package terminal

import (
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/hotkeys/internal/input/key"
	"github.com/dshills/hotkeys/internal/input/mouse"
)

// namedKeys maps tcell special keys to DOM codes. Keys that share a value
// with a control sequence (Tab and Ctrl+I, Enter and Ctrl+M) resolve to the
// named key.
var namedKeys = map[tcell.Key]key.Code{
	tcell.KeyEnter:      key.CodeEnter,
	tcell.KeyTab:        key.CodeTab,
	tcell.KeyBacktab:    key.CodeTab,
	tcell.KeyBackspace:  key.CodeBackspace,
	tcell.KeyBackspace2: key.CodeBackspace,
	tcell.KeyEscape:     key.CodeEscape,
	tcell.KeyDelete:     key.CodeDelete,
	tcell.KeyInsert:     key.CodeInsert,
	tcell.KeyHome:       key.CodeHome,
	tcell.KeyEnd:        key.CodeEnd,
	tcell.KeyPgUp:       key.CodePageUp,
	tcell.KeyPgDn:       key.CodePageDown,
	tcell.KeyUp:         key.CodeArrowUp,
	tcell.KeyDown:       key.CodeArrowDown,
	tcell.KeyLeft:       key.CodeArrowLeft,
	tcell.KeyRight:      key.CodeArrowRight,
	tcell.KeyPause:      key.CodePause,
	tcell.KeyPrint:      key.CodePrintScreen,
}

// convertKey translates a tcell key event into a DOM code and modifier
// flags. It reports false for keys with no DOM equivalent.
func convertKey(e *tcell.EventKey) (key.Code, key.Modifier, bool) {
	mods := convertMod(e.Modifiers())
	k := e.Key()

	if k == tcell.KeyRune {
		code, shift := key.FromRune(e.Rune())
		if code == key.CodeNone {
			return key.CodeNone, mods, false
		}
		if shift {
			mods = mods.With(key.ModShift)
		}
		return code, mods, true
	}

	if code, ok := namedKeys[k]; ok {
		if k == tcell.KeyBacktab {
			mods = mods.With(key.ModShift)
		}
		return code, mods, true
	}

	if k >= tcell.KeyF1 && k <= tcell.KeyF24 {
		return key.Code("F" + strconv.Itoa(int(k-tcell.KeyF1)+1)), mods, true
	}

	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		letter := rune('a' + int(k-tcell.KeyCtrlA))
		code, _ := key.FromRune(letter)
		return code, mods.With(key.ModCtrl), true
	}

	if k == tcell.KeyCtrlSpace {
		return key.CodeSpace, mods.With(key.ModCtrl), true
	}

	return key.CodeNone, mods, false
}

// convertMod converts a tcell modifier mask to modifier flags.
func convertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= key.ModMeta
	}
	return result
}

// pressEvents returns the key-down and key-up pair for one terminal press.
func pressEvents(code key.Code, mods key.Modifier) (key.Event, key.Event) {
	return key.NewDown(code, mods), key.NewUp(code, mods)
}

// mouseButtons maps tcell button bits to mouse buttons. Wheel bits have no
// entry and never produce presses.
var mouseButtons = [...]struct {
	mask   tcell.ButtonMask
	button mouse.Button
}{
	{tcell.ButtonPrimary, mouse.ButtonLeft},
	{tcell.ButtonMiddle, mouse.ButtonMiddle},
	{tcell.ButtonSecondary, mouse.ButtonRight},
}

// mouseEvents turns a tcell mouse report into mouse events. tcell reports
// the full button state each time, so presses and releases are derived
// from the difference with the previous state. A report without button
// transitions is a move.
func mouseEvents(prev, cur tcell.ButtonMask, x, y float64) []mouse.Event {
	var events []mouse.Event
	for _, b := range mouseButtons {
		was, is := prev&b.mask != 0, cur&b.mask != 0
		switch {
		case is && !was:
			events = append(events, mouse.NewButton(mouse.ActionPress, b.button, x, y))
		case was && !is:
			events = append(events, mouse.NewButton(mouse.ActionRelease, b.button, x, y))
		}
	}
	if len(events) == 0 {
		events = append(events, mouse.NewMove(x, y))
	}
	return events
}
