package kv

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	opGet    = "get"
	opSet    = "set"
	opRemove = "remove"
)

// Metrics holds the collectors Instrument reports to.
type Metrics struct {
	ops      *prometheus.CounterVec
	failures *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewMetrics creates the backend collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fleetcheck",
			Subsystem: "kv",
			Name:      "operations_total",
			Help:      "Key-value backend operations by driver and operation.",
		}, []string{"driver", "op"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fleetcheck",
			Subsystem: "kv",
			Name:      "failures_total",
			Help:      "Key-value backend operations that returned an error.",
		}, []string{"driver", "op"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fleetcheck",
			Subsystem: "kv",
			Name:      "operation_duration_seconds",
			Help:      "Key-value backend operation latency.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"driver", "op"}),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.ops, m.failures, m.latency} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

type instrumented struct {
	next    Backend
	driver  string
	metrics *Metrics
}

// Instrument wraps b so every call is counted and timed under the driver
// label.
func Instrument(b Backend, driver string, m *Metrics) Backend {
	return &instrumented{next: b, driver: driver, metrics: m}
}

func (i *instrumented) observe(op string, start time.Time, err error) {
	i.metrics.ops.WithLabelValues(i.driver, op).Inc()
	i.metrics.latency.WithLabelValues(i.driver, op).Observe(time.Since(start).Seconds())
	if err != nil {
		i.metrics.failures.WithLabelValues(i.driver, op).Inc()
	}
}

func (i *instrumented) Get(ctx context.Context, key string) (string, bool, error) {
	start := time.Now()
	v, ok, err := i.next.Get(ctx, key)
	i.observe(opGet, start, err)
	return v, ok, err
}

func (i *instrumented) Set(ctx context.Context, key, value string) error {
	start := time.Now()
	err := i.next.Set(ctx, key, value)
	i.observe(opSet, start, err)
	return err
}

func (i *instrumented) Remove(ctx context.Context, key string) error {
	start := time.Now()
	err := i.next.Remove(ctx, key)
	i.observe(opRemove, start, err)
	return err
}
