package shortcut

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/hotkeys/internal/input"
	"github.com/dshills/hotkeys/internal/input/key"
)

func TestRegistrySetHasDelete(t *testing.T) {
	r := NewRegistry()
	combo := key.NewCombo(key.ModCtrl, "KeyS")

	assert.False(t, r.Has(combo))
	require.NoError(t, r.Set(combo, func() {}))
	assert.True(t, r.Has(combo))
	assert.Equal(t, 1, r.Len())

	r.Delete(combo)
	assert.False(t, r.Has(combo))
	assert.Equal(t, 0, r.Len())

	// Deleting an absent combo is a no-op.
	r.Delete(combo)
	r.Delete(key.NewCombo(key.ModAlt, "KeyQ"))
}

func TestRegistryHasIsOrderIndependent(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Set(key.NewCombo(key.ModCtrl|key.ModShift, "KeyB", "KeyA"), func() {}))

	assert.True(t, r.Has(key.NewCombo(key.ModShift|key.ModCtrl, "KeyA", "KeyB")))
	assert.False(t, r.Has(key.NewCombo(key.ModCtrl, "KeyA", "KeyB")))
	assert.False(t, r.Has(key.NewCombo(key.ModCtrl|key.ModShift, "KeyA")))
}

func TestRegistrySetDuplicate(t *testing.T) {
	r := NewRegistry()
	combo := key.NewCombo(key.ModCtrl, "KeyA", "KeyB")

	var fired []string
	require.NoError(t, r.Set(combo, func() { fired = append(fired, "cb1") }, KeepExisting()))

	err := r.Set(combo, func() { fired = append(fired, "cb2") }, KeepExisting())
	require.ErrorIs(t, err, ErrDuplicate)
	assert.Contains(t, err.Error(), "ctrl+KeyA+KeyB")

	r.Trigger(input.Snapshot{Pressed: []key.Code{"KeyA", "KeyB"}, Mods: key.ModCtrl})
	assert.Equal(t, []string{"cb1"}, fired)
}

func TestRegistrySetReplaces(t *testing.T) {
	r := NewRegistry()
	combo := key.NewCombo(key.ModCtrl, "KeyA", "KeyB")

	var fired []string
	require.NoError(t, r.Set(combo, func() { fired = append(fired, "cb1") }))
	require.NoError(t, r.Set(combo, func() { fired = append(fired, "cb2") }))
	assert.Equal(t, 1, r.Len())

	r.Trigger(input.Snapshot{Pressed: []key.Code{"KeyA", "KeyB"}, Mods: key.ModCtrl})
	assert.Equal(t, []string{"cb2"}, fired)
}

func TestRegistrySetNilCallback(t *testing.T) {
	r := NewRegistry()
	err := r.Set(key.NewCombo(key.ModCtrl, "KeyA"), nil)
	assert.ErrorIs(t, err, ErrNilCallback)
	assert.Equal(t, 0, r.Len())
}

func TestRegistrySetEmptyCombo(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	r := NewRegistry(WithMetrics(m))

	for _, c := range []key.Combo{{}, key.NewCombo(key.ModNone, key.CodeNone)} {
		assert.ErrorIs(t, r.Set(c, func() {}), ErrEmptyCombo)
		assert.False(t, r.Has(c))
	}
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Combos())
	assert.Equal(t, 0.0, testutil.ToFloat64(m.registered))
}

func TestRegistryModifierOnlyCombo(t *testing.T) {
	target, _, r := newPipeline(t)

	calls := 0
	require.NoError(t, r.Set(key.NewCombo(key.ModNone, key.CodeControlLeft), func() { calls++ }))
	assert.Equal(t, []string{"ctrl"}, r.Combos())

	target.DispatchKey(key.NewDown(key.CodeControlLeft, key.ModCtrl))
	assert.Equal(t, 1, calls)
}

func TestRegistryCombos(t *testing.T) {
	r := NewRegistry()
	for _, spec := range []string{"shift+KeyZ", "ctrl+KeyA", "alt+F4"} {
		require.NoError(t, r.Set(key.MustParseCombo(spec), func() {}))
	}
	assert.Equal(t, []string{"alt+F4", "ctrl+KeyA", "shift+KeyZ"}, r.Combos())
}

func TestRegistryTriggerExactMatchOnly(t *testing.T) {
	r := NewRegistry()

	var fired []string
	require.NoError(t, r.Set(key.MustParseCombo("ctrl+KeyA"), func() { fired = append(fired, "ctrl+A") }))
	require.NoError(t, r.Set(key.MustParseCombo("ctrl+KeyA+KeyB"), func() { fired = append(fired, "ctrl+A+B") }))

	tests := []struct {
		name  string
		state input.Snapshot
		want  bool
	}{
		{"superset", input.Snapshot{Pressed: []key.Code{"KeyA", "KeyB", "KeyC"}, Mods: key.ModCtrl}, false},
		{"missing modifier", input.Snapshot{Pressed: []key.Code{"KeyA"}}, false},
		{"extra modifier", input.Snapshot{Pressed: []key.Code{"KeyA"}, Mods: key.ModCtrl | key.ModShift}, false},
		{"repeat flag", input.Snapshot{Pressed: []key.Code{"KeyA"}, Mods: key.ModCtrl | key.ModRepeat}, false},
		{"empty", input.Snapshot{}, false},
		{"exact", input.Snapshot{Pressed: []key.Code{"ControlLeft", "KeyA"}, Mods: key.ModCtrl}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Trigger(tt.state))
		})
	}
	assert.Equal(t, []string{"ctrl+A"}, fired)
}

func TestRegistryCallbackMayMutateRegistry(t *testing.T) {
	r := NewRegistry()
	combo := key.MustParseCombo("ctrl+KeyD")

	calls := 0
	require.NoError(t, r.Set(combo, func() {
		calls++
		r.Delete(combo)
	}))

	state := input.Snapshot{Pressed: []key.Code{"KeyD"}, Mods: key.ModCtrl}
	assert.True(t, r.Trigger(state))
	assert.False(t, r.Trigger(state))
	assert.Equal(t, 1, calls)
}

func TestRegistryRecoversPanics(t *testing.T) {
	var buf bytes.Buffer
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	r := NewRegistry(WithLogger(zerolog.New(&buf)), WithMetrics(m))

	require.NoError(t, r.Set(key.MustParseCombo("ctrl+KeyP"), func() { panic("boom") }))

	assert.NotPanics(t, func() {
		r.Trigger(input.Snapshot{Pressed: []key.Code{"KeyP"}, Mods: key.ModCtrl})
	})
	assert.Contains(t, buf.String(), "shortcut callback panicked")
	assert.Contains(t, buf.String(), "boom")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.panics))
}

func TestRegistryMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	r := NewRegistry(WithMetrics(m))

	combo := key.MustParseCombo("ctrl+KeyS")
	require.NoError(t, r.Set(combo, func() {}))
	require.NoError(t, r.Set(key.MustParseCombo("ctrl+KeyO"), func() {}))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.registered))

	r.Trigger(input.Snapshot{Pressed: []key.Code{"KeyS"}, Mods: key.ModCtrl})
	r.Trigger(input.Snapshot{Pressed: []key.Code{"KeyX"}, Mods: key.ModCtrl})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.triggers.WithLabelValues("ctrl+KeyS")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.misses))

	r.Delete(combo)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.registered))
}

// The tests below drive the registry through a real tracker and target.

func newPipeline(t *testing.T) (*input.Target, *input.KeyboardTracker, *Registry) {
	t.Helper()
	target := input.NewTarget()
	kb := input.NewKeyboardTracker()
	r := NewRegistry()

	t.Cleanup(kb.Attach(target))
	t.Cleanup(kb.OnChange(r.StateChanged))
	return target, kb, r
}

func TestPipelineCtrlAB(t *testing.T) {
	target, _, r := newPipeline(t)

	calls := 0
	require.NoError(t, r.Set(key.NewCombo(key.ModCtrl, "KeyA", "KeyB"), func() { calls++ }))

	target.DispatchKey(key.NewDown("KeyA", key.ModCtrl))
	assert.Equal(t, 0, calls)
	target.DispatchKey(key.NewDown("KeyB", key.ModCtrl))
	assert.Equal(t, 1, calls)
}

func TestPipelineRealisticModifierSequence(t *testing.T) {
	target, _, r := newPipeline(t)

	calls := 0
	require.NoError(t, r.Set(key.NewCombo(key.CommandModifier(key.Mac), "KeyS"), func() { calls++ }))

	// The modifier key itself is reported as a key-down too.
	target.DispatchKey(key.NewDown(key.CodeMetaLeft, key.ModMeta))
	target.DispatchKey(key.NewDown("KeyS", key.ModMeta))
	// Auto-repeat carries the repeat flag and does not match.
	target.DispatchKey(key.NewDown("KeyS", key.ModMeta|key.ModRepeat))
	target.DispatchKey(key.NewUp(key.CodeMetaLeft, key.ModNone))

	assert.Equal(t, 1, calls)
}

func TestPipelineKeyUpCanTrigger(t *testing.T) {
	target, _, r := newPipeline(t)

	var fired []string
	require.NoError(t, r.Set(key.MustParseCombo("shift+KeyA"), func() { fired = append(fired, "shift+A") }))

	target.DispatchKey(key.NewDown("KeyA", key.ModShift))
	target.DispatchKey(key.NewDown("KeyB", key.ModShift))
	target.DispatchKey(key.NewUp("KeyB", key.ModShift))

	assert.Equal(t, []string{"shift+A", "shift+A"}, fired)
}

func TestPipelineMetaLeftReleaseClearsBeforeMatching(t *testing.T) {
	target, kb, r := newPipeline(t)

	calls := 0
	require.NoError(t, r.Set(key.MustParseCombo("meta+KeyA"), func() { calls++ }))

	target.DispatchKey(key.NewDown(key.CodeMetaLeft, key.ModMeta))
	target.DispatchKey(key.NewDown("KeyA", key.ModMeta))
	target.DispatchKey(key.NewDown("KeyB", key.ModMeta))
	target.DispatchKey(key.NewUp(key.CodeMetaLeft, key.ModMeta))

	assert.Equal(t, 1, calls)
	assert.Empty(t, kb.Snapshot().Pressed)
}

func TestPipelineCommandKeyCombo(t *testing.T) {
	for _, p := range []key.Platform{key.Mac, key.Windows, key.Linux} {
		t.Run(p.String(), func(t *testing.T) {
			target, _, r := newPipeline(t)

			calls := 0
			require.NoError(t, r.Set(key.NewCombo(key.ModNone, key.CommandKey(p), "KeyS"), func() { calls++ }))

			target.DispatchKey(key.NewDown("KeyS", key.ModNone))
			target.DispatchKey(key.NewUp("KeyS", key.ModNone))
			assert.Equal(t, 0, calls, "plain KeyS must not fire")

			mod := key.CommandModifier(p)
			target.DispatchKey(key.NewDown(key.CommandKey(p), mod))
			target.DispatchKey(key.NewDown("KeyS", mod))
			assert.Equal(t, 1, calls)
		})
	}
}
