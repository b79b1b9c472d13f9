// Package codec adapts compression libraries to a common pair of stream
// constructors.
//
// A Codec never closes the writer or reader it wraps. Closing the returned
// WriteCloser finishes the compressed stream (trailers, end marks, pending
// runs); the caller decides what happens to the destination afterwards.
package codec

import "io"

// Codec provides compression and decompression functionality.
type Codec interface {
	// Writer wraps w to compress data written to it.
	Writer(w io.Writer) (io.WriteCloser, error)
	// Reader wraps r to decompress data read from it.
	Reader(r io.Reader) (io.ReadCloser, error)
}

// nopWriteCloser hides the Close method of the wrapped writer.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// flushWriteCloser is a nopWriteCloser that forwards Flush.
type flushWriteCloser struct {
	io.Writer
	flush func() error
}

func (f flushWriteCloser) Flush() error { return f.flush() }

func (flushWriteCloser) Close() error { return nil }

// NopWriteCloser returns w with a Close method that does nothing. Flush is
// forwarded when w supports it.
func NopWriteCloser(w io.Writer) io.WriteCloser {
	if f, ok := w.(interface{ Flush() error }); ok {
		return flushWriteCloser{Writer: w, flush: f.Flush}
	}
	return nopWriteCloser{w}
}
