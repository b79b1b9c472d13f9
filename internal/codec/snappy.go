package codec

import (
	"io"

	"github.com/golang/snappy"
)

// Compile-time check that Snappy implements Codec.
var _ Codec = Snappy{}

// Snappy implements the framed snappy stream format. Snappy has no levels.
type Snappy struct{}

// Writer wraps w to compress data with snappy.
func (Snappy) Writer(w io.Writer) (io.WriteCloser, error) {
	return snappy.NewBufferedWriter(w), nil
}

// Reader wraps r to decompress framed snappy data.
func (Snappy) Reader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(snappy.NewReader(r)), nil
}
