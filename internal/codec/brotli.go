package codec

import (
	"io"

	"github.com/andybalholm/brotli"
)

// Compile-time check that Brotli implements Codec.
var _ Codec = Brotli{}

// Brotli implements brotli compression.
type Brotli struct {
	// Level is 0-11; 0 selects the library default.
	Level int
}

// Writer wraps w to compress data with brotli.
func (c Brotli) Writer(w io.Writer) (io.WriteCloser, error) {
	level := c.Level
	if level == 0 {
		level = brotli.DefaultCompression
	}
	return brotli.NewWriterLevel(w, level), nil
}

// Reader wraps r to decompress brotli data.
func (Brotli) Reader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(brotli.NewReader(r)), nil
}
