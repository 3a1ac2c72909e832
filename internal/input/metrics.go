package input

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dshills/hotkeys/internal/input/key"
	"github.com/dshills/hotkeys/internal/input/mouse"
)

// Metrics counts input events passing through a Target.
// A nil *Metrics records nothing.
type Metrics struct {
	keyEvents   *prometheus.CounterVec
	mouseEvents *prometheus.CounterVec
	stateResets prometheus.Counter
}

// NewMetrics creates input metrics and registers them with reg.
// A nil reg leaves the collectors unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		keyEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hotkeys_input_key_events_total",
			Help: "Keyboard events dispatched, by event type.",
		}, []string{"type"}),
		mouseEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hotkeys_input_mouse_events_total",
			Help: "Mouse events dispatched, by action.",
		}, []string{"action"}),
		stateResets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hotkeys_input_state_resets_total",
			Help: "Times the pressed-key set was cleared by a MetaLeft release or a reset.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.keyEvents, m.mouseEvents, m.stateResets)
	}
	return m
}

func (m *Metrics) recordKey(ev key.Event) {
	if m == nil {
		return
	}
	m.keyEvents.WithLabelValues(ev.Type.String()).Inc()
}

func (m *Metrics) recordMouse(ev mouse.Event) {
	if m == nil {
		return
	}
	m.mouseEvents.WithLabelValues(ev.Action.String()).Inc()
}

func (m *Metrics) recordReset() {
	if m == nil {
		return
	}
	m.stateResets.Inc()
}
