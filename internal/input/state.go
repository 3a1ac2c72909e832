package input

import (
	"slices"

	"github.com/dshills/hotkeys/internal/input/key"
)

// Snapshot is an immutable copy of the keyboard state.
type Snapshot struct {
	// Pressed holds the currently pressed codes, sorted.
	Pressed []key.Code

	// Mods holds the modifier flags from the last key-down.
	Mods key.Modifier
}

// IsPressed reports whether code is in the pressed set.
func (s Snapshot) IsPressed(code key.Code) bool {
	_, found := slices.BinarySearch(s.Pressed, code)
	return found
}

// Combo returns the state as a shortcut combo.
func (s Snapshot) Combo() key.Combo {
	return key.Combo{Keys: s.Pressed, Mods: s.Mods}
}

// String returns the normalized combo for the state.
func (s Snapshot) String() string {
	return key.Normalize(s.Pressed, s.Mods)
}

// ChangeListener is notified after every keyboard state change.
type ChangeListener func(s Snapshot)
