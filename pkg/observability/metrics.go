package observability

import (
	"time"

	"github.com/aretw0/switchboard/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records the outcome of toggle loads.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	loads    *prometheus.CounterVec
	toggles  prometheus.Gauge
	enabled  prometheus.Gauge
	duration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		loads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "switchboard_loads_total",
				Help: "Total number of toggle loads by result",
			},
			[]string{"result"},
		),
		toggles: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "switchboard_toggles",
			Help: "Number of toggles in the last successful load",
		}),
		enabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "switchboard_toggles_enabled",
			Help: "Number of toggles enabled at the time of the last successful load",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "switchboard_load_duration_seconds",
			Help:    "Duration of toggle loads, including reading the source",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
	}

	for _, c := range []prometheus.Collector{m.loads, m.toggles, m.enabled, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// ObserveLoad records one load. Gauges only move on success.
func (m *Metrics) ObserveLoad(toggles []*domain.Toggle, elapsed time.Duration, err error) {
	if m == nil {
		return
	}

	m.duration.Observe(elapsed.Seconds())

	if err != nil {
		m.loads.WithLabelValues("failure").Inc()
		return
	}
	m.loads.WithLabelValues("success").Inc()

	enabled := 0
	for _, t := range toggles {
		if t.IsEnabled() {
			enabled++
		}
	}
	m.toggles.Set(float64(len(toggles)))
	m.enabled.Set(float64(enabled))
}
