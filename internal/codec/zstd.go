package codec

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// Compile-time check that Zstd implements Codec.
var _ Codec = Zstd{}

// Zstd implements zstd compression. Encoders and decoders run on the calling
// goroutine only.
type Zstd struct {
	// Level follows the zstd command line scale (1-22); 0 selects the
	// library default.
	Level int
}

// Writer wraps w to compress data with zstd.
func (c Zstd) Writer(w io.Writer) (io.WriteCloser, error) {
	opts := []zstd.EOption{
		zstd.WithEncoderConcurrency(1),
		// Empty input still produces a complete frame.
		zstd.WithZeroFrames(true),
	}
	if c.Level != 0 {
		opts = append(opts, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(c.Level)))
	}
	return zstd.NewWriter(w, opts...)
}

// Reader wraps r to decompress zstd data.
func (Zstd) Reader(r io.Reader) (io.ReadCloser, error) {
	decoder, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	return decoder.IOReadCloser(), nil
}
