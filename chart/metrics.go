package chart

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
)

// Metrics counts repaints. A nil *Metrics records nothing.
type Metrics struct {
	repaints  prometheus.Counter
	coalesces prometheus.Counter
	failures  prometheus.Counter
	duration  prometheus.Histogram
}

// NewMetrics creates the chart collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		repaints: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tradechart_repaints_total",
			Help: "number of full chart repaints",
		}),
		coalesces: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tradechart_coalesced_repaints_total",
			Help: "number of extra passes caused by changes made while painting",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tradechart_repaint_errors_total",
			Help: "number of repaints whose drawing context reported an error",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tradechart_repaint_duration_seconds",
			Help:    "time spent painting one frame",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}
	var err error
	for _, col := range []prometheus.Collector{m.repaints, m.coalesces, m.failures, m.duration} {
		err = multierr.Append(err, reg.Register(col))
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) repainted(d time.Duration, err error) {
	if m == nil {
		return
	}
	m.repaints.Inc()
	m.duration.Observe(d.Seconds())
	if err != nil {
		m.failures.Inc()
	}
}

func (m *Metrics) coalesced() {
	if m == nil {
		return
	}
	m.coalesces.Inc()
}
