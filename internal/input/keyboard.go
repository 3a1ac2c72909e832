package input

import (
	"slices"
	"sync"

	"github.com/dshills/hotkeys/internal/input/key"
)

// KeyboardTracker maintains the pressed-key set and modifier flags.
//
// Key-down adds the code and replaces the flags with those of the event.
// Key-up removes the code; releasing MetaLeft clears the whole set.
// Every change is followed by a call to each ChangeListener, in order.
type KeyboardTracker struct {
	mu      sync.Mutex
	pressed map[key.Code]struct{}
	mods    key.Modifier

	listenersMu sync.RWMutex
	nextID      uint64
	listeners   []changeEntry

	metrics *Metrics
}

type changeEntry struct {
	id uint64
	fn ChangeListener
}

// NewKeyboardTracker creates a tracker with no keys pressed.
func NewKeyboardTracker() *KeyboardTracker {
	return &KeyboardTracker{
		pressed: make(map[key.Code]struct{}),
	}
}

// SetMetrics enables reset counting. Pass nil to disable.
func (k *KeyboardTracker) SetMetrics(m *Metrics) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.metrics = m
}

// Attach adds key-down and key-up listeners to t.
// The returned Detach removes both.
func (k *KeyboardTracker) Attach(t *Target) Detach {
	return joinDetach(
		t.OnKeyDown(k.handleDown),
		t.OnKeyUp(k.handleUp),
	)
}

// OnChange registers a listener for state changes.
func (k *KeyboardTracker) OnChange(fn ChangeListener) Remove {
	k.listenersMu.Lock()
	defer k.listenersMu.Unlock()

	k.nextID++
	id := k.nextID
	k.listeners = append(k.listeners, changeEntry{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			k.listenersMu.Lock()
			defer k.listenersMu.Unlock()
			k.listeners = slices.DeleteFunc(k.listeners, func(e changeEntry) bool {
				return e.id == id
			})
		})
	}
}

// Snapshot returns a copy of the current state.
func (k *KeyboardTracker) Snapshot() Snapshot {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.snapshotLocked()
}

// Reset clears the pressed set and flags and notifies listeners.
// Sources call it when they lose focus and key-ups may be missed.
func (k *KeyboardTracker) Reset() {
	k.mu.Lock()
	clear(k.pressed)
	k.mods = key.ModNone
	k.metrics.recordReset()
	s := k.snapshotLocked()
	k.mu.Unlock()

	k.notify(s)
}

func (k *KeyboardTracker) handleDown(ev key.Event) {
	k.mu.Lock()
	if ev.Code != key.CodeNone {
		k.pressed[ev.Code] = struct{}{}
	}
	k.mods = ev.Mods
	s := k.snapshotLocked()
	k.mu.Unlock()

	k.notify(s)
}

func (k *KeyboardTracker) handleUp(ev key.Event) {
	k.mu.Lock()
	delete(k.pressed, ev.Code)
	if ev.Code == key.CodeMetaLeft {
		// Key-ups for keys released while Meta is held can be lost.
		clear(k.pressed)
		k.metrics.recordReset()
	}
	s := k.snapshotLocked()
	k.mu.Unlock()

	k.notify(s)
}

// snapshotLocked copies the state. Caller must hold k.mu.
func (k *KeyboardTracker) snapshotLocked() Snapshot {
	pressed := make([]key.Code, 0, len(k.pressed))
	for c := range k.pressed {
		pressed = append(pressed, c)
	}
	slices.Sort(pressed)
	return Snapshot{Pressed: pressed, Mods: k.mods}
}

func (k *KeyboardTracker) notify(s Snapshot) {
	k.listenersMu.RLock()
	listeners := make([]ChangeListener, len(k.listeners))
	for i, e := range k.listeners {
		listeners[i] = e.fn
	}
	k.listenersMu.RUnlock()

	for _, fn := range listeners {
		fn(s)
	}
}
