// Package logger provides a stats collector that writes metrics to a zap
// logger at debug level and keeps running totals for a final summary.
package logger

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/absfs/objpack/internal/stats"
)

// Collector implements stats.Collector by logging metrics via zap.
// Counters are also accumulated so Summary can report totals, and written
// artifacts are tallied per format.
type Collector struct {
	logger *zap.Logger

	mu      sync.Mutex
	totals  map[string]int64
	formats map[string]int64
}

var (
	_ stats.Collector      = (*Collector)(nil)
	_ stats.FormatRecorder = (*Collector)(nil)
)

// New creates a new logger-based collector.
// If logger is nil, a no-op logger is used.
func New(logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{
		logger:  logger.Named("stats"),
		totals:  make(map[string]int64),
		formats: make(map[string]int64),
	}
}

func (c *Collector) IncCounter(name string, delta int64) {
	c.mu.Lock()
	c.totals[name] += delta
	total := c.totals[name]
	c.mu.Unlock()

	c.logger.Debug("counter",
		zap.String("metric", name),
		zap.Int64("delta", delta),
		zap.Int64("total", total),
	)
}

// SetGauge logs the gauge. Gauges are not part of the totals.
func (c *Collector) SetGauge(name string, value int64) {
	c.logger.Debug("gauge", zap.String("metric", name), zap.Int64("value", value))
}

// ObserveHistogram logs the observation. Compression ratios also carry the
// share of space saved.
func (c *Collector) ObserveHistogram(name string, value float64) {
	fields := []zap.Field{zap.String("metric", name), zap.Float64("value", value)}
	if name == stats.MetricRatio {
		fields = append(fields, zap.Float64("saved_percent", (1-value)*100))
	}
	c.logger.Debug("histogram", fields...)
}

// RecordFormat logs one written artifact and counts it under format.
func (c *Collector) RecordFormat(format string, raw, encoded int64) {
	c.mu.Lock()
	c.formats[format]++
	c.mu.Unlock()

	c.logger.Debug("artifact",
		zap.String("format", format),
		zap.Int64("raw_bytes", raw),
		zap.Int64("artifact_bytes", encoded),
	)
}

// Totals returns a copy of the accumulated counters.
func (c *Collector) Totals() map[string]int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int64, len(c.totals))
	for k, v := range c.totals {
		out[k] = v
	}
	return out
}

// Formats returns how many artifacts were written with each format.
func (c *Collector) Formats() map[string]int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int64, len(c.formats))
	for k, v := range c.formats {
		out[k] = v
	}
	return out
}

// Summary logs every counter total and the per-format tally at info level.
func (c *Collector) Summary() {
	c.mu.Lock()
	fields := make([]zap.Field, 0, len(c.totals)+len(c.formats))
	for _, name := range sortedKeys(c.totals) {
		fields = append(fields, zap.Int64(name, c.totals[name]))
	}
	for _, name := range sortedKeys(c.formats) {
		fields = append(fields, zap.Int64("format."+name, c.formats[name]))
	}
	c.mu.Unlock()

	c.logger.Info("summary", fields...)
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
