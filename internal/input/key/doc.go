// Package key provides key identifiers, modifier flags and shortcut
// combinations for the input system.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Code: Identifies a physical key using DOM KeyboardEvent.code names
//   - Modifier: Flags for alt, ctrl, meta, repeat and shift
//   - Combo: A set of non-modifier codes plus modifier flags
//   - Event: A single key-down or key-up with its modifier flags
//   - Platform: The host platform, used to pick the command modifier
//
// # Normalization
//
// A Combo has exactly one string form. Modifier names come first in the
// fixed order alt, ctrl, meta, repeat, shift, followed by the sorted codes,
// all joined with "+":
//
//	Combo{Keys: []Code{"KeyB", "KeyA"}, Mods: ModShift | ModCtrl}.String()
//	// "ctrl+shift+KeyA+KeyB"
//
// Modifier-key codes such as ControlLeft or MetaLeft never appear in the
// key part. Modifier state is carried by the flags.
//
// # Parsing
//
// ParseCombo accepts the normalized form and a few aliases:
//
//	"ctrl+KeyS", "Cmd+Shift+KeyP", "alt+Digit1", "Escape"
package key
