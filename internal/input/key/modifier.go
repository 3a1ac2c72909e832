package key

import "strings"

// Modifier holds the modifier flags reported with a key event.
// Repeat is not a key but travels with the other flags.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt Modifier = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModMeta indicates the Meta key (Cmd on macOS, Win on Windows).
	ModMeta

	// ModRepeat indicates an auto-repeated key-down.
	ModRepeat

	// ModShift indicates the Shift key.
	ModShift
)

// modifierOrder is the order modifier names appear in a normalized combo.
var modifierOrder = [...]struct {
	mod  Modifier
	name string
}{
	{ModAlt, "alt"},
	{ModCtrl, "ctrl"},
	{ModMeta, "meta"},
	{ModRepeat, "repeat"},
	{ModShift, "shift"},
}

// Flags builds a Modifier from the five boolean fields of a DOM key event.
func Flags(alt, ctrl, meta, shift, repeat bool) Modifier {
	var m Modifier
	if alt {
		m |= ModAlt
	}
	if ctrl {
		m |= ModCtrl
	}
	if meta {
		m |= ModMeta
	}
	if shift {
		m |= ModShift
	}
	if repeat {
		m |= ModRepeat
	}
	return m
}

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// IsRepeat returns true if the repeat flag is set.
func (m Modifier) IsRepeat() bool {
	return m.Has(ModRepeat)
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// Names returns the names of the set flags in normalized order.
func (m Modifier) Names() []string {
	var names []string
	for _, o := range modifierOrder {
		if m.Has(o.mod) {
			names = append(names, o.name)
		}
	}
	return names
}

// String returns the flags joined with "+", e.g. "alt+ctrl+shift".
func (m Modifier) String() string {
	return strings.Join(m.Names(), "+")
}

// modifierNameMap maps modifier names (lowercase) to Modifier values.
var modifierNameMap = map[string]Modifier{
	"alt":     ModAlt,
	"option":  ModAlt,
	"opt":     ModAlt,
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"meta":    ModMeta,
	"cmd":     ModMeta,
	"command": ModMeta,
	"win":     ModMeta,
	"super":   ModMeta,
	"repeat":  ModRepeat,
	"shift":   ModShift,
}

// ModifierFromName returns the Modifier for a given name (case-insensitive).
// Returns ModNone if the name is not recognized.
func ModifierFromName(name string) Modifier {
	if m, ok := modifierNameMap[strings.ToLower(strings.TrimSpace(name))]; ok {
		return m
	}
	return ModNone
}
