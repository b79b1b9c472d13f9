package codec

import (
	"io"

	"github.com/klauspost/compress/gzip"
)

// Compile-time check that Gzip implements Codec.
var _ Codec = Gzip{}

// Gzip implements gzip compression.
type Gzip struct {
	// Level is 1-9; 0 selects the library default.
	Level int
}

// Writer wraps w to compress data with gzip.
func (c Gzip) Writer(w io.Writer) (io.WriteCloser, error) {
	level := c.Level
	if level == 0 {
		level = gzip.DefaultCompression
	}
	return gzip.NewWriterLevel(w, level)
}

// Reader wraps r to decompress gzip data. The gzip header is read
// immediately.
func (c Gzip) Reader(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}
