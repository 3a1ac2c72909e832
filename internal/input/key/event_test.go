package key

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEvents(t *testing.T) {
	down := NewDown("KeyA", ModCtrl)
	assert.Equal(t, EventDown, down.Type)
	assert.Equal(t, Code("KeyA"), down.Code)
	assert.False(t, down.Timestamp.IsZero())

	up := NewUp(CodeMetaLeft, ModNone)
	assert.Equal(t, EventUp, up.Type)
}

func TestEventIsRepeat(t *testing.T) {
	assert.True(t, NewDown("KeyA", ModRepeat).IsRepeat())
	assert.False(t, NewDown("KeyA", ModNone).IsRepeat())
	assert.False(t, NewUp("KeyA", ModRepeat).IsRepeat())
}

func TestEventString(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{NewDown("KeyA", ModNone), "keydown KeyA"},
		{NewDown("KeyS", ModCtrl|ModShift), "keydown ctrl+shift+KeyS"},
		{NewUp(CodeMetaLeft, ModMeta), "keyup meta+MetaLeft"},
		{Event{Type: 9, Code: "KeyA"}, "EventType(9) KeyA"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.event.String())
		})
	}
}
