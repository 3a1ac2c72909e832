package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/dshills/hotkeys/internal/input/key"
	"github.com/dshills/hotkeys/internal/input/mouse"
)

func TestDecodeKeyFrames(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantType key.EventType
		wantCode key.Code
		wantMods key.Modifier
	}{
		{
			name:     "keydown with flags",
			data:     `{"type":"keydown","code":"KeyS","ctrlKey":true,"shiftKey":true}`,
			wantType: key.EventDown,
			wantCode: "KeyS",
			wantMods: key.ModCtrl | key.ModShift,
		},
		{
			name:     "repeat",
			data:     `{"type":"keydown","code":"KeyA","metaKey":true,"repeat":true}`,
			wantType: key.EventDown,
			wantCode: "KeyA",
			wantMods: key.ModMeta | key.ModRepeat,
		},
		{
			name:     "keyup without flags",
			data:     `{"type":"keyup","code":"MetaLeft"}`,
			wantType: key.EventUp,
			wantCode: key.CodeMetaLeft,
			wantMods: key.ModNone,
		},
		{
			name:     "alt and unknown fields",
			data:     `{"type":"keydown","code":"F4","altKey":true,"key":"F4","location":0}`,
			wantType: key.EventDown,
			wantCode: "F4",
			wantMods: key.ModAlt,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := decodeFrame([]byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, f.key.Type)
			assert.Equal(t, tt.wantCode, f.key.Code)
			assert.Equal(t, tt.wantMods, f.key.Mods)
		})
	}
}

func TestDecodeMouseMove(t *testing.T) {
	f, err := decodeFrame([]byte(`{"type":"mousemove","clientX":120.5,"clientY":48,"shiftKey":true}`))
	require.NoError(t, err)

	assert.Equal(t, typeMouseMove, f.kind)
	assert.Equal(t, mouse.Position{X: 120.5, Y: 48}, f.move.Position)
	assert.Equal(t, mouse.ActionMove, f.move.Action)
	assert.Equal(t, key.ModShift, f.move.Modifiers)
}

func TestDecodeBlur(t *testing.T) {
	f, err := decodeFrame([]byte(`{"type":"blur"}`))
	require.NoError(t, err)
	assert.Equal(t, typeBlur, f.kind)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"invalid json", `{"type":`, ErrMalformedFrame},
		{"array", `["keydown"]`, ErrMalformedFrame},
		{"missing type", `{"code":"KeyA"}`, ErrMalformedFrame},
		{"numeric type", `{"type":1}`, ErrMalformedFrame},
		{"missing code", `{"type":"keydown"}`, ErrMalformedFrame},
		{"empty code", `{"type":"keyup","code":""}`, ErrMalformedFrame},
		{"missing coordinates", `{"type":"mousemove","clientX":1}`, ErrMalformedFrame},
		{"string coordinates", `{"type":"mousemove","clientX":"1","clientY":"2"}`, ErrMalformedFrame},
		{"unknown type", `{"type":"wheel"}`, ErrUnknownFrame},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeFrame([]byte(tt.data))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestEncodeFrames(t *testing.T) {
	out, err := encodeShortcut("ctrl+KeyS")
	require.NoError(t, err)
	assert.Equal(t, "shortcut", gjson.GetBytes(out, "type").String())
	assert.Equal(t, "ctrl+KeyS", gjson.GetBytes(out, "combo").String())

	out, err = encodeError(`bad "frame"`)
	require.NoError(t, err)
	assert.True(t, gjson.ValidBytes(out))
	assert.Equal(t, "error", gjson.GetBytes(out, "type").String())
	assert.Equal(t, `bad "frame"`, gjson.GetBytes(out, "message").String())
}
