// Package telemetry turns engine events into Prometheus metrics and
// structured logs.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"mad-wfc/pkg/wfc"
)

const namespace = "wfc"

var allKinds = []wfc.EventKind{
	wfc.EventStart,
	wfc.EventClear,
	wfc.EventObserve,
	wfc.EventBan,
	wfc.EventPropagationStep,
	wfc.EventStep,
	wfc.EventFail,
	wfc.EventFinish,
}

// Metrics counts engine events and run outcomes. It is a wfc.Observer and
// is safe to share between engines running on different goroutines.
type Metrics struct {
	// EventsTotal counts engine events by kind.
	EventsTotal *prometheus.CounterVec
	// RunsTotal counts finished runs by outcome.
	RunsTotal *prometheus.CounterVec
	// RunDuration observes wall time per run.
	RunDuration prometheus.Histogram
	// ActiveRuns is the number of runs in progress.
	ActiveRuns prometheus.Gauge

	events []prometheus.Counter
}

// NewMetrics registers the collectors with reg. A nil reg uses the default
// registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	m := &Metrics{
		EventsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "engine_events_total",
			Help:      "Engine events by kind",
		}, []string{"kind"}),
		RunsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Finished runs by outcome",
		}, []string{"outcome"}),
		RunDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of a complete run",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}),
		ActiveRuns: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_runs",
			Help:      "Runs currently in progress",
		}),
	}
	m.events = make([]prometheus.Counter, len(allKinds))
	for _, k := range allKinds {
		m.events[k] = m.EventsTotal.WithLabelValues(k.String())
	}
	return m
}

// OnEvent counts ev.
func (m *Metrics) OnEvent(ev wfc.Event) {
	if int(ev.Kind) < len(m.events) {
		m.events[ev.Kind].Inc()
	}
}

// Track marks a run as started and returns a function recording its outcome.
func (m *Metrics) Track() func(wfc.Outcome) {
	m.ActiveRuns.Inc()
	start := time.Now()
	return func(out wfc.Outcome) {
		m.ActiveRuns.Dec()
		m.RunDuration.Observe(time.Since(start).Seconds())
		m.RunsTotal.WithLabelValues(out.String()).Inc()
	}
}
