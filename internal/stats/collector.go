// Package stats provides a unified interface for collecting metrics.
package stats

// Metric names.
const (
	// Encode and decode metrics.
	MetricArtifactsWritten = "objpack_artifacts_written_total"
	MetricArtifactsRead    = "objpack_artifacts_read_total"
	MetricRawBytes         = "objpack_raw_bytes_total"
	MetricEncodedBytes     = "objpack_encoded_bytes_total"
	MetricProbes           = "objpack_probes_total"
	MetricRatio            = "objpack_compression_ratio"
	MetricFormatArtifacts  = "objpack_format_artifacts_total" // labeled by format

	// Client metrics.
	MetricSaves     = "objpack_saves_total"
	MetricLoads     = "objpack_loads_total"
	MetricMisses    = "objpack_misses_total"
	MetricLastSaved = "objpack_last_artifact_bytes"
)

// Collector defines the interface for collecting metrics.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64)
}

// FormatRecorder is implemented by collectors that break written artifacts
// down by format. Collectors without it only see the aggregate metrics.
type FormatRecorder interface {
	// RecordFormat reports one artifact written with format, from raw
	// input bytes to encoded artifact bytes.
	RecordFormat(format string, raw, encoded int64)
}
