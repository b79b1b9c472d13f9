package objpack

import "io"

// sizeProbe is a writer that counts bytes and keeps none of them.
type sizeProbe struct {
	n int64
}

func (p *sizeProbe) Write(b []byte) (int, error) {
	p.n += int64(len(b))
	return len(b), nil
}

// Count returns the number of bytes written so far.
func (p *sizeProbe) Count() int64 {
	return p.n
}

// countingWriter forwards writes to w and counts the bytes accepted.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// Flush forwards to w when it can flush.
func (c *countingWriter) Flush() error {
	if f, ok := c.w.(flusher); ok {
		return f.Flush()
	}
	return nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
