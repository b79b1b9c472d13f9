package codec

import (
	"io"

	"github.com/pierrec/lz4/v4"
)

// Compile-time check that LZ4 implements Codec.
var _ Codec = LZ4{}

// LZ4 implements the LZ4 frame format.
type LZ4 struct {
	// Level is 1-9 for the high-compression modes; 0 uses the fast
	// compressor.
	Level int
}

var lz4Levels = [...]lz4.CompressionLevel{
	lz4.Fast, lz4.Level1, lz4.Level2, lz4.Level3, lz4.Level4,
	lz4.Level5, lz4.Level6, lz4.Level7, lz4.Level8, lz4.Level9,
}

// Writer wraps w to compress data with lz4.
func (c LZ4) Writer(w io.Writer) (io.WriteCloser, error) {
	zw := lz4.NewWriter(w)
	level := lz4.Fast
	if c.Level > 0 && c.Level < len(lz4Levels) {
		level = lz4Levels[c.Level]
	}
	// Single-goroutine compression.
	if err := zw.Apply(lz4.CompressionLevelOption(level), lz4.ConcurrencyOption(1)); err != nil {
		return nil, err
	}
	return zw, nil
}

// Reader wraps r to decompress lz4 frames.
func (LZ4) Reader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(r)), nil
}
