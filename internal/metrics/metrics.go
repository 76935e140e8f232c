// internal/metrics/metrics.go
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tamzrod/parkwatch/internal/occupancy"
	"github.com/tamzrod/parkwatch/internal/poller"
)

// Metrics exposes cycle outcomes as Prometheus series.
// It is a poller.Sink on its own registry.
type Metrics struct {
	reg *prometheus.Registry

	cycles          *prometheus.CounterVec
	cycleDuration   prometheus.Histogram
	channelFailures *prometheus.CounterVec
	actuatorActions *prometheus.CounterVec
	bayFree         *prometheus.GaugeVec
	zoneViolated    prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "parkwatch_cycles_total",
			Help: "Completed poll cycles by trigger.",
		}, []string{"trigger"}),
		cycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "parkwatch_cycle_duration_seconds",
			Help:    "Wall time of one poll cycle.",
			Buckets: prometheus.DefBuckets,
		}),
		channelFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "parkwatch_channel_failures_total",
			Help: "Failed channel reads by channel.",
		}, []string{"channel"}),
		actuatorActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "parkwatch_actuator_actions_total",
			Help: "Actuator decisions by action (issued, skipped, failed).",
		}, []string{"action"}),
		bayFree: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "parkwatch_bay_free",
			Help: "1 when the bay was free in the last cycle.",
		}, []string{"bay"}),
		zoneViolated: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "parkwatch_zone_violated",
			Help: "1 while the restricted zone is violated.",
		}),
	}

	m.reg.MustRegister(
		m.cycles,
		m.cycleDuration,
		m.channelFailures,
		m.actuatorActions,
		m.bayFree,
		m.zoneViolated,
	)

	return m
}

func (m *Metrics) Name() string { return "metrics" }

// Publish implements poller.Sink. It never fails.
func (m *Metrics) Publish(_ context.Context, r poller.Report) error {
	m.cycles.WithLabelValues(string(r.Trigger)).Inc()
	m.cycleDuration.Observe(r.Duration.Seconds())
	m.actuatorActions.WithLabelValues(string(r.Actuator.Action)).Inc()

	for _, rd := range r.Readings {
		if !rd.OK {
			m.channelFailures.WithLabelValues(rd.Channel).Inc()
		}
	}

	for _, b := range r.Bays {
		m.bayFree.WithLabelValues(b.ID).Set(boolGauge(b.State == occupancy.Free))
	}
	m.zoneViolated.Set(boolGauge(r.Zone.Violated))

	return nil
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
