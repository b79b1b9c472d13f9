package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/absfs/objpack/internal/stats"
)

func TestCollector_LogsMetrics(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := New(zap.New(core))

	c.IncCounter("saves", 2)
	c.SetGauge("size", 42)
	c.ObserveHistogram("ratio", 0.5)

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("got %d log entries, want 3", len(entries))
	}
	wantMessages := []string{"counter", "gauge", "histogram"}
	for i, e := range entries {
		if e.Message != wantMessages[i] {
			t.Errorf("entry %d message = %q, want %q", i, e.Message, wantMessages[i])
		}
		if e.LoggerName != "stats" {
			t.Errorf("entry %d logger = %q, want %q", i, e.LoggerName, "stats")
		}
	}
	if got := entries[0].ContextMap()["metric"]; got != "saves" {
		t.Errorf("metric field = %v, want saves", got)
	}
}

func TestCollector_Totals(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := New(zap.New(core))

	c.IncCounter(stats.MetricRawBytes, 100)
	c.IncCounter(stats.MetricRawBytes, 50)
	c.SetGauge(stats.MetricLastSaved, 7)

	if got := c.Totals()[stats.MetricRawBytes]; got != 150 {
		t.Errorf("total = %d, want 150", got)
	}
	if _, ok := c.Totals()[stats.MetricLastSaved]; ok {
		t.Error("gauges must not be totalled")
	}
	if got := logs.All()[1].ContextMap()["total"]; got != int64(150) {
		t.Errorf("total field = %v, want 150", got)
	}
}

func TestCollector_RatioSavedPercent(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := New(zap.New(core))

	c.ObserveHistogram(stats.MetricRatio, 0.25)
	c.ObserveHistogram(stats.MetricProbes, 0.25)

	entries := logs.All()
	if got := entries[0].ContextMap()["saved_percent"]; got != 75.0 {
		t.Errorf("saved_percent = %v, want 75", got)
	}
	if _, ok := entries[1].ContextMap()["saved_percent"]; ok {
		t.Error("only compression ratios carry saved_percent")
	}
}

func TestCollector_RecordFormat(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := New(zap.New(core))

	c.RecordFormat("gzip", 100, 40)
	c.RecordFormat("bzip2+huffman", 100, 30)
	c.RecordFormat("gzip", 10, 12)

	formats := c.Formats()
	if formats["gzip"] != 2 || formats["bzip2+huffman"] != 1 {
		t.Errorf("Formats() = %v", formats)
	}
	if got := logs.FilterMessage("artifact").FilterField(zap.String("format", "gzip")).Len(); got != 2 {
		t.Errorf("got %d gzip artifact entries, want 2", got)
	}

	c.IncCounter(stats.MetricArtifactsWritten, 3)
	c.Summary()
	summary := logs.FilterMessage("summary").All()
	if len(summary) != 1 {
		t.Fatalf("got %d summary entries, want 1", len(summary))
	}
	fields := summary[0].ContextMap()
	if fields["format.gzip"] != int64(2) || fields[stats.MetricArtifactsWritten] != int64(3) {
		t.Errorf("summary fields = %v", fields)
	}
}

func TestNew_NilLogger(t *testing.T) {
	c := New(nil)
	// Must not panic.
	c.IncCounter("x", 1)
	c.RecordFormat("none", 1, 2)
	c.Summary()
}
