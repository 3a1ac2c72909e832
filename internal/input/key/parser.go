package key

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// ParseCombo parses a combo specification like "ctrl+KeyS" or
// "Cmd+Shift+P".
//
// Segments are separated by "+". Segments naming a modifier (alt, option,
// ctrl, control, meta, cmd, command, super, win, repeat, shift) set flags;
// every other segment is resolved with ParseCode. Modifier-key codes such
// as "ControlLeft" set the matching flag.
func ParseCombo(spec string) (Combo, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Combo{}, ErrEmptySpec
	}

	var combo Combo
	for _, part := range strings.Split(spec, "+") {
		part = strings.TrimSpace(part)
		if part == "" {
			return Combo{}, fmt.Errorf("%w: empty segment in %q", ErrInvalidSpec, spec)
		}

		if mod := ModifierFromName(part); mod != ModNone {
			combo.Mods = combo.Mods.With(mod)
			continue
		}

		code := ParseCode(part)
		if code.IsModifier() {
			combo.Mods = combo.Mods.With(code.Modifier())
			continue
		}
		combo.Keys = append(combo.Keys, code)
	}

	return combo, nil
}

// MustParseCombo is like ParseCombo but panics on error.
// Intended for static shortcut tables.
func MustParseCombo(spec string) Combo {
	c, err := ParseCombo(spec)
	if err != nil {
		panic(fmt.Sprintf("key: MustParseCombo(%q): %v", spec, err))
	}
	return c
}
