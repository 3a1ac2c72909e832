// Package bridge accepts DOM input events from a webview over a local
// WebSocket and dispatches them to an input.Target.
//
// # Frame protocol
//
// Clients send JSON text frames mirroring the DOM event fields:
//
//	{"type":"keydown","code":"KeyS","ctrlKey":true,"repeat":false}
//	{"type":"keyup","code":"KeyS"}
//	{"type":"mousemove","clientX":120.5,"clientY":48}
//	{"type":"blur"}
//
// Missing boolean fields are false. The server replies to malformed
// frames with {"type":"error","message":"..."} and pushes
// {"type":"shortcut","combo":"ctrl+KeyS"} when Notify is called.
package bridge

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/hotkeys/internal/input/key"
	"github.com/dshills/hotkeys/internal/input/mouse"
)

// Frame types.
const (
	typeKeyDown   = "keydown"
	typeKeyUp     = "keyup"
	typeMouseMove = "mousemove"
	typeBlur      = "blur"
	typeError     = "error"
	typeShortcut  = "shortcut"
)

// Errors returned when decoding client frames.
var (
	// ErrMalformedFrame indicates a frame that is not a JSON object or lacks
	// a required field.
	ErrMalformedFrame = errors.New("malformed frame")

	// ErrUnknownFrame indicates a frame with an unsupported type.
	ErrUnknownFrame = errors.New("unknown frame type")
)

// frame is a decoded client frame. Exactly one of key or move is set
// for input frames; blur frames carry neither.
type frame struct {
	kind string
	key  key.Event
	move mouse.Event
}

// decodeFrame parses a client text frame.
func decodeFrame(data []byte) (frame, error) {
	if !gjson.ValidBytes(data) {
		return frame{}, fmt.Errorf("%w: invalid JSON", ErrMalformedFrame)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return frame{}, fmt.Errorf("%w: not an object", ErrMalformedFrame)
	}

	typ := root.Get("type")
	if typ.Type != gjson.String {
		return frame{}, fmt.Errorf("%w: missing type", ErrMalformedFrame)
	}

	f := frame{kind: typ.String()}
	switch f.kind {
	case typeKeyDown, typeKeyUp:
		code := root.Get("code")
		if code.Type != gjson.String || code.String() == "" {
			return frame{}, fmt.Errorf("%w: %s without code", ErrMalformedFrame, f.kind)
		}
		mods := key.Flags(
			root.Get("altKey").Bool(),
			root.Get("ctrlKey").Bool(),
			root.Get("metaKey").Bool(),
			root.Get("shiftKey").Bool(),
			root.Get("repeat").Bool(),
		)
		if f.kind == typeKeyDown {
			f.key = key.NewDown(key.Code(code.String()), mods)
		} else {
			f.key = key.NewUp(key.Code(code.String()), mods)
		}

	case typeMouseMove:
		x, y := root.Get("clientX"), root.Get("clientY")
		if x.Type != gjson.Number || y.Type != gjson.Number {
			return frame{}, fmt.Errorf("%w: mousemove without coordinates", ErrMalformedFrame)
		}
		f.move = mouse.NewMove(x.Float(), y.Float())
		f.move.Modifiers = key.Flags(
			root.Get("altKey").Bool(),
			root.Get("ctrlKey").Bool(),
			root.Get("metaKey").Bool(),
			root.Get("shiftKey").Bool(),
			false,
		)

	case typeBlur:

	default:
		return frame{}, fmt.Errorf("%w: %q", ErrUnknownFrame, f.kind)
	}
	return f, nil
}

// encodeShortcut builds a shortcut notification frame.
func encodeShortcut(combo string) ([]byte, error) {
	return encode(typeShortcut, "combo", combo)
}

// encodeError builds an error reply frame.
func encodeError(message string) ([]byte, error) {
	return encode(typeError, "message", message)
}

func encode(typ, field, value string) ([]byte, error) {
	out, err := sjson.SetBytes(nil, "type", typ)
	if err != nil {
		return nil, fmt.Errorf("encode %s frame: %w", typ, err)
	}
	out, err = sjson.SetBytes(out, field, value)
	if err != nil {
		return nil, fmt.Errorf("encode %s frame: %w", typ, err)
	}
	return out, nil
}
