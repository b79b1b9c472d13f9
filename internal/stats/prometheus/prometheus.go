// Package prometheus provides a Prometheus-based stats collector.
package prometheus

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/absfs/objpack/internal/stats"
)

// RatioBuckets are histogram buckets for compression ratios (encoded/raw).
var RatioBuckets = []float64{0.01, 0.05, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.8, 1, 1.2}

// Collector implements stats.Collector using Prometheus metrics. Metrics
// are created and registered the first time they are used.
type Collector struct {
	registry prometheus.Registerer

	mu         sync.Mutex
	counters   map[string]prometheus.Counter
	gauges     map[string]prometheus.Gauge
	histograms map[string]prometheus.Histogram
	formats    map[string]*prometheus.CounterVec
}

var (
	_ stats.Collector      = (*Collector)(nil)
	_ stats.FormatRecorder = (*Collector)(nil)
)

// New creates a new Prometheus collector.
// If registry is nil, prometheus.DefaultRegisterer is used.
func New(registry prometheus.Registerer) *Collector {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	return &Collector{
		registry:   registry,
		counters:   make(map[string]prometheus.Counter),
		gauges:     make(map[string]prometheus.Gauge),
		histograms: make(map[string]prometheus.Histogram),
		formats:    make(map[string]*prometheus.CounterVec),
	}
}

func (c *Collector) IncCounter(name string, delta int64) {
	c.mu.Lock()
	counter := lookup(c.registry, c.counters, name, func() prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: name})
	})
	c.mu.Unlock()
	counter.Add(float64(delta))
}

func (c *Collector) SetGauge(name string, value int64) {
	c.mu.Lock()
	gauge := lookup(c.registry, c.gauges, name, func() prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: name})
	})
	c.mu.Unlock()
	gauge.Set(float64(value))
}

func (c *Collector) ObserveHistogram(name string, value float64) {
	c.mu.Lock()
	histogram := lookup(c.registry, c.histograms, name, func() prometheus.Histogram {
		buckets := prometheus.DefBuckets
		if name == stats.MetricRatio {
			buckets = RatioBuckets
		}
		return prometheus.NewHistogram(prometheus.HistogramOpts{Name: name, Help: name, Buckets: buckets})
	})
	c.mu.Unlock()
	histogram.Observe(value)
}

// RecordFormat counts one artifact under its format label.
func (c *Collector) RecordFormat(format string, raw, encoded int64) {
	c.mu.Lock()
	vec := lookup(c.registry, c.formats, stats.MetricFormatArtifacts, func() *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: stats.MetricFormatArtifacts,
			Help: "Artifacts written, by format.",
		}, []string{"format"})
	})
	c.mu.Unlock()
	vec.WithLabelValues(format).Inc()
}

// lookup returns the cached metric for name, creating and registering it
// on first use. If another collector registered the name already, the
// existing metric is reused. Callers hold c.mu.
func lookup[M prometheus.Collector](reg prometheus.Registerer, cache map[string]M, name string, create func() M) M {
	if m, ok := cache[name]; ok {
		return m
	}
	m := create()
	if err := reg.Register(m); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(M); ok {
				m = existing
			}
		}
		// Otherwise keep the unregistered metric: it still counts.
	}
	cache[name] = m
	return m
}
