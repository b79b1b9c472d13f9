package codec

import (
	"io"

	"github.com/absfs/objpack/rle"
)

// Compile-time check that RLE implements Codec.
var _ Codec = RLE{}

// RLE implements the run-length encoding from package rle.
type RLE struct {
	// Flush selects what an explicit flush does with a pending run.
	Flush rle.FlushPolicy
}

// Writer wraps w with a run-length encoder.
func (c RLE) Writer(w io.Writer) (io.WriteCloser, error) {
	return rle.NewWriter(w, rle.WithFlushPolicy(c.Flush)), nil
}

// Reader wraps r with a run-length decoder.
func (RLE) Reader(r io.Reader) (io.ReadCloser, error) {
	return rle.NewReader(r), nil
}
