package codec

import (
	"io"

	"github.com/dsnet/compress/bzip2"
)

// Compile-time check that Bzip2 implements Codec.
var _ Codec = Bzip2{}

// Bzip2 implements bzip2 compression.
type Bzip2 struct {
	// Level is 1-9; 0 selects the library default.
	Level int
}

// Writer wraps w to compress data with bzip2.
func (c Bzip2) Writer(w io.Writer) (io.WriteCloser, error) {
	return bzip2.NewWriter(w, &bzip2.WriterConfig{Level: c.Level})
}

// Reader wraps r to decompress bzip2 data.
func (Bzip2) Reader(r io.Reader) (io.ReadCloser, error) {
	return bzip2.NewReader(r, nil)
}
