package rle

import (
	"bufio"
	"io"
)

// Reader expands run-length encoded pairs read from an underlying reader.
type Reader struct {
	src       io.ByteReader
	remaining int
	value     byte
	err       error
}

// NewReader returns a Reader decoding pairs from r. If r does not implement
// io.ByteReader it is buffered, so the Reader may consume input past the
// last pair it returns.
func NewReader(r io.Reader) *Reader {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{src: br}
}

// ReadByte returns the next decoded byte. It returns io.EOF only when the
// input ends on a pair boundary.
func (r *Reader) ReadByte() (byte, error) {
	if r.remaining == 0 {
		if err := r.nextPair(); err != nil {
			return 0, err
		}
	}
	r.remaining--
	return r.value, nil
}

// Read fills p with decoded bytes. A read that reaches the clean end of the
// stream after producing some bytes returns them with a nil error; the next
// call returns io.EOF.
func (r *Reader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if r.remaining == 0 {
			if err := r.nextPair(); err != nil {
				if err == io.EOF && n > 0 {
					return n, nil
				}
				return n, err
			}
		}
		run := min(r.remaining, len(p)-n)
		for i := 0; i < run; i++ {
			p[n+i] = r.value
		}
		n += run
		r.remaining -= run
	}
	return n, nil
}

// Close releases nothing; it exists so a Reader can sit in a decode chain.
func (r *Reader) Close() error {
	return nil
}

func (r *Reader) nextPair() error {
	if r.err != nil {
		return r.err
	}

	count, err := r.src.ReadByte()
	if err != nil {
		r.err = err
		return err
	}
	if count == 0 {
		r.err = ErrZeroCount
		return r.err
	}

	value, err := r.src.ReadByte()
	if err != nil {
		if err == io.EOF {
			err = &truncatedPairError{count: count}
		}
		r.err = err
		return err
	}

	r.remaining = int(count)
	r.value = value
	return nil
}
