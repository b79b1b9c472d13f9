package prometheus

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/absfs/objpack/internal/stats"
)

func gather(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	for _, f := range families {
		if f.GetName() == name {
			return f
		}
	}
	t.Fatalf("metric %s not found in registry", name)
	return nil
}

func TestNew_DefaultRegistry(t *testing.T) {
	c := New(nil)
	if c.registry == nil {
		t.Error("registry should not be nil")
	}
}

func TestCollector_IncCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.IncCounter(stats.MetricArtifactsWritten, 5)
	c.IncCounter(stats.MetricArtifactsWritten, 3)

	f := gather(t, reg, stats.MetricArtifactsWritten)
	if got := f.GetMetric()[0].GetCounter().GetValue(); got != 8 {
		t.Errorf("counter value = %v, want 8", got)
	}
}

func TestCollector_SetGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.SetGauge(stats.MetricLastSaved, 10)
	c.SetGauge(stats.MetricLastSaved, 42)

	f := gather(t, reg, stats.MetricLastSaved)
	if got := f.GetMetric()[0].GetGauge().GetValue(); got != 42 {
		t.Errorf("gauge value = %v, want 42", got)
	}
}

func TestCollector_ObserveHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.ObserveHistogram(stats.MetricRatio, 0.25)
	c.ObserveHistogram(stats.MetricRatio, 0.75)

	h := gather(t, reg, stats.MetricRatio).GetMetric()[0].GetHistogram()
	if h.GetSampleCount() != 2 {
		t.Errorf("sample count = %d, want 2", h.GetSampleCount())
	}
	if h.GetSampleSum() != 1.0 {
		t.Errorf("sample sum = %v, want 1.0", h.GetSampleSum())
	}
	if len(h.GetBucket()) != len(RatioBuckets) {
		t.Errorf("got %d buckets, want %d", len(h.GetBucket()), len(RatioBuckets))
	}
}

func TestCollector_SharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	a := New(reg)
	b := New(reg)

	a.IncCounter(stats.MetricSaves, 1)
	b.IncCounter(stats.MetricSaves, 2)

	f := gather(t, reg, stats.MetricSaves)
	if got := f.GetMetric()[0].GetCounter().GetValue(); got != 3 {
		t.Errorf("counter value = %v, want 3", got)
	}
}

func TestCollector_RecordFormat(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.RecordFormat("gzip", 100, 40)
	c.RecordFormat("xz+huffman", 100, 30)
	c.RecordFormat("gzip", 10, 12)

	got := make(map[string]float64)
	for _, m := range gather(t, reg, stats.MetricFormatArtifacts).GetMetric() {
		for _, l := range m.GetLabel() {
			if l.GetName() == "format" {
				got[l.GetValue()] = m.GetCounter().GetValue()
			}
		}
	}
	if got["gzip"] != 2 || got["xz+huffman"] != 1 || len(got) != 2 {
		t.Errorf("format counts = %v, want gzip:2 xz+huffman:1", got)
	}
}
