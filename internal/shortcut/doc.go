// Package shortcut maps key combinations to callbacks.
//
// A Registry holds at most one callback per normalized combo (see
// key.Normalize). It is notified of every keyboard state change through
// StateChanged and runs the callback whose combo exactly matches the
// current pressed keys and modifier flags. There is no prefix or partial
// matching, so at most one callback runs per change.
//
// # Registration
//
// Set replaces an existing registration by default. KeepExisting turns a
// second registration into an ErrDuplicate error instead:
//
//	reg := shortcut.NewRegistry()
//	save := key.NewCombo(key.CommandModifier(platform), "KeyS")
//	if err := reg.Set(save, doSave, shortcut.KeepExisting()); err != nil {
//	    // errors.Is(err, shortcut.ErrDuplicate)
//	}
//
// # Wiring
//
//	kb := input.NewKeyboardTracker()
//	kb.OnChange(reg.StateChanged)
//
// Modifier flags are passed explicitly with each Combo; there is no
// pending selection carried between calls.
package shortcut
