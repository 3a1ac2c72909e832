package key

import (
	"fmt"
	"time"
)

// EventType distinguishes key-down from key-up.
type EventType uint8

const (
	// EventDown is a key press, including auto-repeats.
	EventDown EventType = iota + 1
	// EventUp is a key release.
	EventUp
)

// String returns "keydown" or "keyup", matching the DOM event names.
func (t EventType) String() string {
	switch t {
	case EventDown:
		return "keydown"
	case EventUp:
		return "keyup"
	default:
		return fmt.Sprintf("EventType(%d)", t)
	}
}

// Event is a single low-level keyboard event.
type Event struct {
	// Type is EventDown or EventUp.
	Type EventType

	// Code identifies the physical key.
	Code Code

	// Mods holds the modifier flags reported with the event.
	Mods Modifier

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// NewDown creates a key-down event with the current timestamp.
func NewDown(code Code, mods Modifier) Event {
	return Event{Type: EventDown, Code: code, Mods: mods, Timestamp: time.Now()}
}

// NewUp creates a key-up event with the current timestamp.
func NewUp(code Code, mods Modifier) Event {
	return Event{Type: EventUp, Code: code, Mods: mods, Timestamp: time.Now()}
}

// IsRepeat returns true for auto-repeated key-down events.
func (e Event) IsRepeat() bool {
	return e.Type == EventDown && e.Mods.IsRepeat()
}

// String returns a compact form like "keydown ctrl+KeyS".
func (e Event) String() string {
	if e.Mods.IsEmpty() {
		return fmt.Sprintf("%s %s", e.Type, e.Code)
	}
	return fmt.Sprintf("%s %s+%s", e.Type, e.Mods, e.Code)
}
