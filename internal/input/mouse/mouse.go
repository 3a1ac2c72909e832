package mouse

import (
	"fmt"
	"time"

	"github.com/dshills/hotkeys/internal/input/key"
)

// Button represents a mouse button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft
	// ButtonMiddle is the middle mouse button (scroll wheel click).
	ButtonMiddle
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	default:
		return "none"
	}
}

// Action represents the type of mouse action.
type Action uint8

const (
	// ActionNone indicates no action.
	ActionNone Action = iota
	// ActionPress indicates a button press.
	ActionPress
	// ActionRelease indicates a button release.
	ActionRelease
	// ActionMove indicates pointer movement.
	ActionMove
)

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionPress:
		return "press"
	case ActionRelease:
		return "release"
	case ActionMove:
		return "move"
	default:
		return "none"
	}
}

// Position is a pointer location in client (viewport) coordinates.
type Position struct {
	X float64
	Y float64
}

// Equal returns true if two positions are equal.
func (p Position) Equal(other Position) bool {
	return p.X == other.X && p.Y == other.Y
}

// String returns "(x, y)".
func (p Position) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Event represents a mouse input event.
type Event struct {
	// Position is the client coordinates.
	Position Position

	// Button is the mouse button involved, if any.
	Button Button

	// Modifiers are any keyboard modifiers held during the event.
	Modifiers key.Modifier

	// Action is the type of mouse action.
	Action Action

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// NewMove creates a move event at x, y with the current timestamp.
func NewMove(x, y float64) Event {
	return Event{
		Position:  Position{X: x, Y: y},
		Action:    ActionMove,
		Timestamp: time.Now(),
	}
}

// NewButton creates a press or release event for b at x, y with the
// current timestamp.
func NewButton(action Action, b Button, x, y float64) Event {
	return Event{
		Position:  Position{X: x, Y: y},
		Button:    b,
		Action:    action,
		Timestamp: time.Now(),
	}
}
