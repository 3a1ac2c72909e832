package mouse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestButtonString(t *testing.T) {
	tests := []struct {
		button   Button
		expected string
	}{
		{ButtonNone, "none"},
		{ButtonLeft, "left"},
		{ButtonMiddle, "middle"},
		{ButtonRight, "right"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.button.String(); got != tt.expected {
				t.Errorf("Button.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "press", ActionPress.String())
	assert.Equal(t, "release", ActionRelease.String())
	assert.Equal(t, "move", ActionMove.String())
	assert.Equal(t, "none", ActionNone.String())
}

func TestPosition(t *testing.T) {
	p := Position{X: 10.5, Y: 20}
	assert.True(t, p.Equal(Position{X: 10.5, Y: 20}))
	assert.False(t, p.Equal(Position{X: 10, Y: 20}))
	assert.Equal(t, "(10.5, 20)", p.String())
}

func TestNewMove(t *testing.T) {
	ev := NewMove(3, 4)
	assert.Equal(t, ActionMove, ev.Action)
	assert.Equal(t, Position{X: 3, Y: 4}, ev.Position)
	assert.False(t, ev.Timestamp.IsZero())
}

func TestNewButton(t *testing.T) {
	ev := NewButton(ActionPress, ButtonRight, 1, 2)
	assert.Equal(t, ActionPress, ev.Action)
	assert.Equal(t, ButtonRight, ev.Button)
	assert.Equal(t, Position{X: 1, Y: 2}, ev.Position)
	assert.False(t, ev.Timestamp.IsZero())
}
