package key

import (
	"slices"
	"strings"
)

// Combo is a shortcut: a set of non-modifier keys plus modifier flags.
// Key order and duplicates are irrelevant.
type Combo struct {
	Keys []Code
	Mods Modifier
}

// NewCombo creates a combo from modifier flags and keys.
func NewCombo(mods Modifier, keys ...Code) Combo {
	return Combo{Keys: keys, Mods: mods}
}

// String returns the normalized form of the combo.
func (c Combo) String() string {
	return Normalize(c.Keys, c.Mods)
}

// IsEmpty returns true if the combo normalizes to nothing.
func (c Combo) IsEmpty() bool {
	return c.String() == ""
}

// Normalize canonicalizes keys and modifier flags into a lookup string.
//
// Modifier names come first in the fixed order alt, ctrl, meta, repeat,
// shift. Keys follow, sorted and de-duplicated. Both parts are joined with
// "+". A modifier-key code contributes its flag instead of a key name, so
// MetaLeft+KeyS and meta+KeyS are the same combo. The result is empty when
// both parts are empty.
func Normalize(keys []Code, mods Modifier) string {
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == CodeNone {
			continue
		}
		if k.IsModifier() {
			mods |= k.Modifier()
			continue
		}
		names = append(names, string(k))
	}
	slices.Sort(names)
	names = slices.Compact(names)

	return strings.Join(append(mods.Names(), names...), "+")
}
