package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/aretw0/parley/pkg/domain"
)

// Metrics holds the engine's Prometheus collectors.
type Metrics struct {
	gatherer prometheus.Gatherer

	turnsTotal     *prometheus.CounterVec
	turnDuration   prometheus.Histogram
	slotFillsTotal prometheus.Counter
	activeSessions prometheus.Gauge
}

// NewMetrics registers the collectors on the given registerer
// (prometheus.DefaultRegisterer is the usual choice).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	gatherer, ok := reg.(prometheus.Gatherer)
	if !ok {
		gatherer = prometheus.DefaultGatherer
	}

	factory := promauto.With(reg)
	return &Metrics{
		gatherer: gatherer,
		turnsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "parley",
			Name:      "turns_total",
			Help:      "Processed dialogue turns by policy action.",
		}, []string{"action"}),
		turnDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "parley",
			Name:      "turn_duration_seconds",
			Help:      "Wall time spent processing one turn.",
			Buckets:   prometheus.DefBuckets,
		}),
		slotFillsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "parley",
			Name:      "slot_fills_total",
			Help:      "Slot values extracted from user input.",
		}),
		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "parley",
			Name:      "active_sessions",
			Help:      "Sessions currently known to the state store.",
		}),
	}
}

// Gatherer exposes the registry the collectors were registered on, for
// serving scrapes.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.gatherer
}

// Hooks returns lifecycle hooks that feed the collectors. They can be
// combined with other hooks by the caller.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTurnEnd: func(ctx context.Context, e *domain.TurnEvent) {
			m.turnsTotal.WithLabelValues(string(e.Action)).Inc()
		},
		OnSlotFill: func(ctx context.Context, e *domain.SlotEvent) {
			m.slotFillsTotal.Inc()
		},
	}
}

// ObserveTurnDuration records the latency of one processed turn.
func (m *Metrics) ObserveTurnDuration(d time.Duration) {
	m.turnDuration.Observe(d.Seconds())
}

// SetActiveSessions updates the session gauge.
func (m *Metrics) SetActiveSessions(n int) {
	m.activeSessions.Set(float64(n))
}
