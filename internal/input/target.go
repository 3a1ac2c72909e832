package input

import (
	"sync"

	"github.com/dshills/hotkeys/internal/input/key"
	"github.com/dshills/hotkeys/internal/input/mouse"
)

// KeyListener receives keyboard events.
type KeyListener func(ev key.Event)

// MouseListener receives mouse events.
type MouseListener func(ev mouse.Event)

// Remove detaches a listener. Calling it more than once is a no-op.
type Remove func()

// Target delivers input events to registered listeners.
// It plays the role of a window's event target: sources call DispatchKey
// and DispatchMouse, trackers add listeners.
//
// Dispatches are serialized. Listeners may add or remove listeners while
// running but must not dispatch; doing so deadlocks.
type Target struct {
	// dispatchMu serializes delivery.
	dispatchMu sync.Mutex

	mu     sync.RWMutex
	nextID uint64
	down   map[uint64]KeyListener
	up     map[uint64]KeyListener
	move   map[uint64]MouseListener
	order  []uint64

	metrics *Metrics
}

// NewTarget creates an empty target.
func NewTarget() *Target {
	return &Target{
		down: make(map[uint64]KeyListener),
		up:   make(map[uint64]KeyListener),
		move: make(map[uint64]MouseListener),
	}
}

// SetMetrics enables event counting. Pass nil to disable.
func (t *Target) SetMetrics(m *Metrics) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.metrics = m
}

// OnKeyDown adds a key-down listener.
func (t *Target) OnKeyDown(fn KeyListener) Remove {
	return t.addKey(t.down, fn)
}

// OnKeyUp adds a key-up listener.
func (t *Target) OnKeyUp(fn KeyListener) Remove {
	return t.addKey(t.up, fn)
}

// OnMouseMove adds a mouse-move listener.
func (t *Target) OnMouseMove(fn MouseListener) Remove {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.allocLocked()
	t.move[id] = fn
	return t.remover(id)
}

func (t *Target) addKey(set map[uint64]KeyListener, fn KeyListener) Remove {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.allocLocked()
	set[id] = fn
	return t.remover(id)
}

// allocLocked reserves a listener id. Caller must hold the write lock.
func (t *Target) allocLocked() uint64 {
	t.nextID++
	t.order = append(t.order, t.nextID)
	return t.nextID
}

func (t *Target) remover(id uint64) Remove {
	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()

			delete(t.down, id)
			delete(t.up, id)
			delete(t.move, id)
			for i, v := range t.order {
				if v == id {
					t.order = append(t.order[:i], t.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Run calls fn while holding the target's dispatch lock, so fn never
// overlaps an event delivery. fn must not dispatch.
func (t *Target) Run(fn func()) {
	t.dispatchMu.Lock()
	defer t.dispatchMu.Unlock()
	fn()
}

// ListenerCount returns the number of attached listeners.
func (t *Target) ListenerCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.order)
}

// DispatchKey delivers a keyboard event to the listeners for its type,
// in the order they were added.
func (t *Target) DispatchKey(ev key.Event) {
	t.dispatchMu.Lock()
	defer t.dispatchMu.Unlock()

	t.mu.RLock()
	set := t.down
	if ev.Type == key.EventUp {
		set = t.up
	}
	listeners := make([]KeyListener, 0, len(set))
	for _, id := range t.order {
		if fn, ok := set[id]; ok {
			listeners = append(listeners, fn)
		}
	}
	m := t.metrics
	t.mu.RUnlock()

	m.recordKey(ev)
	for _, fn := range listeners {
		fn(ev)
	}
}

// DispatchMouse delivers a mouse event to the move listeners.
// Only ActionMove events reach them; presses and releases are counted
// and otherwise dropped.
func (t *Target) DispatchMouse(ev mouse.Event) {
	t.dispatchMu.Lock()
	defer t.dispatchMu.Unlock()

	t.mu.RLock()
	var listeners []MouseListener
	if ev.Action == mouse.ActionMove {
		listeners = make([]MouseListener, 0, len(t.move))
		for _, id := range t.order {
			if fn, ok := t.move[id]; ok {
				listeners = append(listeners, fn)
			}
		}
	}
	m := t.metrics
	t.mu.RUnlock()

	m.recordMouse(ev)
	for _, fn := range listeners {
		fn(ev)
	}
}
