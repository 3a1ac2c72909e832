package shortcut

import (
	"fmt"
	"runtime/debug"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dshills/hotkeys/internal/input"
	"github.com/dshills/hotkeys/internal/input/key"
)

// Callback is invoked when its combo matches the keyboard state.
type Callback func()

// Registry maps normalized combos to callbacks.
// It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	callbacks map[string]Callback

	log     zerolog.Logger
	metrics *Metrics
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for trigger and panic reports.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Registry) {
		r.log = l
	}
}

// WithMetrics enables trigger metrics.
func WithMetrics(m *Metrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		callbacks: make(map[string]Callback),
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// setOptions holds per-call options for Set.
type setOptions struct {
	keepExisting bool
}

// SetOption configures a single Set call.
type SetOption func(*setOptions)

// KeepExisting makes Set fail with ErrDuplicate instead of replacing an
// existing registration.
func KeepExisting() SetOption {
	return func(o *setOptions) {
		o.keepExisting = true
	}
}

// Has returns true if a callback is registered for c.
func (r *Registry) Has(c key.Combo) bool {
	id := c.String()

	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.callbacks[id]
	return ok
}

// Set registers fn under c. By default any existing registration for the
// same combo is replaced; with KeepExisting the call fails instead.
func (r *Registry) Set(c key.Combo, fn Callback, opts ...SetOption) error {
	if c.IsEmpty() {
		return ErrEmptyCombo
	}
	if fn == nil {
		return fmt.Errorf("%w: %s", ErrNilCallback, c)
	}

	var o setOptions
	for _, opt := range opts {
		opt(&o)
	}

	id := c.String()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.callbacks[id]; exists {
		if o.keepExisting {
			return fmt.Errorf("%w: %q", ErrDuplicate, id)
		}
		delete(r.callbacks, id)
	}
	r.callbacks[id] = fn
	r.metrics.setRegistered(len(r.callbacks))

	r.log.Debug().Str("combo", id).Msg("shortcut registered")
	return nil
}

// Delete removes the registration for c if present.
func (r *Registry) Delete(c key.Combo) {
	id := c.String()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.callbacks[id]; !ok {
		return
	}
	delete(r.callbacks, id)
	r.metrics.forget(id)
	r.metrics.setRegistered(len(r.callbacks))

	r.log.Debug().Str("combo", id).Msg("shortcut deleted")
}

// Len returns the number of registered combos.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.callbacks)
}

// Combos returns the registered combos in normalized form, sorted.
func (r *Registry) Combos() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.callbacks))
	for id := range r.callbacks {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// StateChanged runs the callback registered for the snapshot's combo.
// Use it as an input.ChangeListener.
func (r *Registry) StateChanged(s input.Snapshot) {
	r.Trigger(s)
}

// Trigger runs the callback registered for the snapshot's combo, if any,
// and reports whether one ran. The callback runs without the registry
// lock held and may call Set or Delete. A panicking callback is
// recovered and logged.
func (r *Registry) Trigger(s input.Snapshot) bool {
	id := s.String()
	if id == "" {
		return false
	}

	r.mu.RLock()
	fn, ok := r.callbacks[id]
	r.mu.RUnlock()

	if !ok {
		r.metrics.miss()
		return false
	}

	r.metrics.trigger(id)
	r.log.Debug().Str("combo", id).Msg("shortcut triggered")
	r.invoke(id, fn)
	return true
}

func (r *Registry) invoke(id string, fn Callback) {
	defer func() {
		if rec := recover(); rec != nil {
			r.metrics.panicked()
			r.log.Error().
				Str("combo", id).
				Interface("panic", rec).
				Str("stack", string(debug.Stack())).
				Msg("shortcut callback panicked")
		}
	}()
	fn()
}
