package input

import (
	"sync"

	"github.com/dshills/hotkeys/internal/input/mouse"
)

// MouseTracker records the latest pointer position from move events.
type MouseTracker struct {
	mu       sync.RWMutex
	position mouse.Position
	seen     bool
}

// NewMouseTracker creates a tracker positioned at the origin.
func NewMouseTracker() *MouseTracker {
	return &MouseTracker{}
}

// Attach adds a mouse-move listener to t.
func (m *MouseTracker) Attach(t *Target) Detach {
	return Detach(t.OnMouseMove(m.handleMove))
}

// Position returns the last recorded position and whether any move has
// been seen since the tracker was created.
func (m *MouseTracker) Position() (mouse.Position, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.position, m.seen
}

func (m *MouseTracker) handleMove(ev mouse.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = ev.Position
	m.seen = true
}
