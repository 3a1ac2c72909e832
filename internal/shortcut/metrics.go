package shortcut

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts shortcut activity. A nil *Metrics records nothing.
// The combo label only takes registered combos, so its cardinality is
// bounded by the registry size.
type Metrics struct {
	triggers   *prometheus.CounterVec
	misses     prometheus.Counter
	panics     prometheus.Counter
	registered prometheus.Gauge
}

// NewMetrics creates shortcut metrics and registers them with reg.
// A nil reg leaves the collectors unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		triggers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hotkeys_shortcut_triggers_total",
			Help: "Shortcut callbacks invoked, by normalized combo.",
		}, []string{"combo"}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hotkeys_shortcut_misses_total",
			Help: "Keyboard state changes that matched no shortcut.",
		}),
		panics: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hotkeys_shortcut_panics_total",
			Help: "Shortcut callbacks that panicked.",
		}),
		registered: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hotkeys_shortcut_registered",
			Help: "Number of registered shortcuts.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.triggers, m.misses, m.panics, m.registered)
	}
	return m
}

func (m *Metrics) trigger(combo string) {
	if m == nil {
		return
	}
	m.triggers.WithLabelValues(combo).Inc()
}

func (m *Metrics) miss() {
	if m == nil {
		return
	}
	m.misses.Inc()
}

func (m *Metrics) panicked() {
	if m == nil {
		return
	}
	m.panics.Inc()
}

func (m *Metrics) setRegistered(n int) {
	if m == nil {
		return
	}
	m.registered.Set(float64(n))
}

// forget drops the series of a deleted combo.
func (m *Metrics) forget(combo string) {
	if m == nil {
		return
	}
	m.triggers.DeleteLabelValues(combo)
}
