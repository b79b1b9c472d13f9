package objpack

import (
	"sync"
	"sync/atomic"

	"github.com/absfs/objpack/internal/stats"
)

// Stats holds encode and decode statistics. All counters are updated
// atomically and may be read while a Serializer is in use.
type Stats struct {
	ArtifactsWritten int64
	ArtifactsRead    int64
	ProbesRun        int64

	BytesRaw     int64 // raw bytes encoded
	BytesEncoded int64 // artifact bytes written, tag included
	BytesRead    int64 // artifact bytes read, tag included
	BytesDecoded int64 // raw bytes recovered

	FormatCounts sync.Map // map[Format]*atomic.Int64
}

// GetFormatCount returns the number of artifacts written with f.
func (s *Stats) GetFormatCount(f Format) int64 {
	if val, ok := s.FormatCounts.Load(f); ok {
		return val.(*atomic.Int64).Load()
	}
	return 0
}

// IncrementFormatCount increments the count for a specific format
func (s *Stats) IncrementFormatCount(f Format) {
	val, _ := s.FormatCounts.LoadOrStore(f, new(atomic.Int64))
	val.(*atomic.Int64).Add(1)
}

// TotalCompressionRatio returns encoded bytes over raw bytes for everything
// written.
func (s *Stats) TotalCompressionRatio() float64 {
	raw := atomic.LoadInt64(&s.BytesRaw)
	if raw == 0 {
		return 0
	}
	return float64(atomic.LoadInt64(&s.BytesEncoded)) / float64(raw)
}

// TotalDecompressionRatio returns artifact bytes read over raw bytes
// recovered.
func (s *Stats) TotalDecompressionRatio() float64 {
	decoded := atomic.LoadInt64(&s.BytesDecoded)
	if decoded == 0 {
		return 0
	}
	return float64(atomic.LoadInt64(&s.BytesRead)) / float64(decoded)
}

// snapshot returns a copy of the counters, format counts included.
func (s *Stats) snapshot() *Stats {
	out := &Stats{
		ArtifactsWritten: atomic.LoadInt64(&s.ArtifactsWritten),
		ArtifactsRead:    atomic.LoadInt64(&s.ArtifactsRead),
		ProbesRun:        atomic.LoadInt64(&s.ProbesRun),
		BytesRaw:         atomic.LoadInt64(&s.BytesRaw),
		BytesEncoded:     atomic.LoadInt64(&s.BytesEncoded),
		BytesRead:        atomic.LoadInt64(&s.BytesRead),
		BytesDecoded:     atomic.LoadInt64(&s.BytesDecoded),
	}
	s.FormatCounts.Range(func(k, v any) bool {
		n := new(atomic.Int64)
		n.Store(v.(*atomic.Int64).Load())
		out.FormatCounts.Store(k, n)
		return true
	})
	return out
}

func (s *Stats) reset() {
	atomic.StoreInt64(&s.ArtifactsWritten, 0)
	atomic.StoreInt64(&s.ArtifactsRead, 0)
	atomic.StoreInt64(&s.ProbesRun, 0)
	atomic.StoreInt64(&s.BytesRaw, 0)
	atomic.StoreInt64(&s.BytesEncoded, 0)
	atomic.StoreInt64(&s.BytesRead, 0)
	atomic.StoreInt64(&s.BytesDecoded, 0)
	s.FormatCounts.Range(func(k, _ any) bool {
		s.FormatCounts.Delete(k)
		return true
	})
}

// recordWrite updates the counters after an artifact was written and
// forwards them to the collector.
func (s *Stats) recordWrite(c stats.Collector, f Format, raw, encoded int64) {
	atomic.AddInt64(&s.ArtifactsWritten, 1)
	atomic.AddInt64(&s.BytesRaw, raw)
	atomic.AddInt64(&s.BytesEncoded, encoded)
	s.IncrementFormatCount(f)

	c.IncCounter(stats.MetricArtifactsWritten, 1)
	c.IncCounter(stats.MetricRawBytes, raw)
	c.IncCounter(stats.MetricEncodedBytes, encoded)
	if raw > 0 {
		c.ObserveHistogram(stats.MetricRatio, GetCompressionRatio(raw, encoded))
	}
	if fr, ok := c.(stats.FormatRecorder); ok {
		fr.RecordFormat(f.String(), raw, encoded)
	}
}

func (s *Stats) recordRead(c stats.Collector, read, decoded int64) {
	atomic.AddInt64(&s.ArtifactsRead, 1)
	atomic.AddInt64(&s.BytesRead, read)
	atomic.AddInt64(&s.BytesDecoded, decoded)
	c.IncCounter(stats.MetricArtifactsRead, 1)
}

func (s *Stats) recordProbes(c stats.Collector, n int) {
	atomic.AddInt64(&s.ProbesRun, int64(n))
	c.IncCounter(stats.MetricProbes, int64(n))
}
