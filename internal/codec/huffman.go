package codec

import (
	"io"

	"github.com/klauspost/compress/flate"
)

// Compile-time check that HuffmanOnly implements Codec.
var _ Codec = HuffmanOnly{}

// HuffmanOnly is raw DEFLATE restricted to Huffman coding, with no match
// search. It only removes symbol-frequency redundancy, which makes it useful
// as an entropy pass over another codec's output.
type HuffmanOnly struct{}

// Writer wraps w with a Huffman-only DEFLATE compressor.
func (HuffmanOnly) Writer(w io.Writer) (io.WriteCloser, error) {
	return flate.NewWriter(w, flate.HuffmanOnly)
}

// Reader wraps r with a DEFLATE decompressor.
func (HuffmanOnly) Reader(r io.Reader) (io.ReadCloser, error) {
	return flate.NewReader(r), nil
}
