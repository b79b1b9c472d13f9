package codec

import (
	"io"

	"github.com/ulikunitz/xz"
)

// Compile-time check that Xz implements Codec.
var _ Codec = Xz{}

// Xz implements xz (LZMA2) compression. xz has no compression levels.
type Xz struct{}

// Writer wraps w to compress data with xz.
func (Xz) Writer(w io.Writer) (io.WriteCloser, error) {
	return xz.NewWriter(w)
}

// Reader wraps r to decompress xz data. The stream header is read
// immediately.
func (Xz) Reader(r io.Reader) (io.ReadCloser, error) {
	xr, err := xz.NewReader(r)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(xr), nil
}
