// Package metrics exports a reactive system's fan-out as Prometheus metrics.
package metrics

import (
	"github.com/delaneyj/tether/bind"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector turns reactive system hooks into prometheus metrics.
type Collector struct {
	notifies      *prometheus.CounterVec
	updates       *prometheus.CounterVec
	depthExceeded prometheus.Counter
	fanout        prometheus.Histogram
}

// NewCollector registers the tether metrics on reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		notifies: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tether_notify_total",
				Help: "Notifications fired per property key",
			},
			[]string{"key"},
		),
		updates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tether_update_total",
				Help: "Watcher updates per watched path",
			},
			[]string{"path"},
		),
		depthExceeded: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "tether_notify_depth_exceeded_total",
				Help: "Writes whose notification was suppressed by the depth bound",
			},
		),
		fanout: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tether_notify_fanout",
				Help:    "Subscribers reached by a single notification",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
		),
	}

	for _, col := range []prometheus.Collector{c.notifies, c.updates, c.depthExceeded, c.fanout} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Hooks returns bind hooks that feed this collector.
func (c *Collector) Hooks() bind.Hooks {
	return bind.Hooks{
		OnNotify: func(key string, subscribers int) {
			c.notifies.WithLabelValues(key).Inc()
			c.fanout.Observe(float64(subscribers))
		},
		OnUpdate: func(path bind.Path, value any) {
			c.updates.WithLabelValues(path.String()).Inc()
		},
		OnDepthExceeded: func(key string, depth int) {
			c.depthExceeded.Inc()
		},
	}
}
