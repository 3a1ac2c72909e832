package shortcut

import "errors"

// Errors returned by registry operations.
var (
	// ErrDuplicate indicates a combo is already registered and the caller
	// asked to keep the existing registration.
	ErrDuplicate = errors.New("duplicate shortcut")

	// ErrNilCallback indicates Set was called without a callback.
	ErrNilCallback = errors.New("nil shortcut callback")

	// ErrEmptyCombo indicates Set was called with a combo that has no keys
	// and no modifiers. No keyboard state matches it.
	ErrEmptyCombo = errors.New("empty shortcut combo")
)
