package rle

import "io"

// flusher is implemented by downstream writers that buffer output.
type flusher interface {
	Flush() error
}

// Option configures a Writer.
type Option func(*Writer)

// WithFlushPolicy sets what Flush does with the pending run.
func WithFlushPolicy(p FlushPolicy) Option {
	return func(w *Writer) {
		w.policy = p
	}
}

// Writer run-length encodes everything written to it.
//
// A Writer holds at most one pending run. Close must be called to emit it;
// Close does not close the underlying writer.
type Writer struct {
	w      io.Writer
	policy FlushPolicy

	last    byte
	pending int // 0 or 1-255

	out    []byte
	err    error
	closed bool
}

// NewWriter returns a Writer that writes encoded pairs to w.
func NewWriter(w io.Writer, opts ...Option) *Writer {
	rw := &Writer{w: w}
	for _, opt := range opts {
		opt(rw)
	}
	return rw
}

// Write encodes p. Completed runs are written to the underlying writer before
// Write returns; the trailing run stays pending.
func (w *Writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, ErrClosed
	}
	if w.err != nil {
		return 0, w.err
	}

	w.out = w.out[:0]
	for _, b := range p {
		if w.pending > 0 && b == w.last && w.pending < MaxRun {
			w.pending++
			continue
		}
		if w.pending > 0 {
			w.out = append(w.out, byte(w.pending), w.last)
		}
		w.last = b
		w.pending = 1
	}

	if len(w.out) > 0 {
		if _, err := w.w.Write(w.out); err != nil {
			w.err = err
			return 0, err
		}
	}
	return len(p), nil
}

// Flush makes buffered output visible downstream according to the flush
// policy, then flushes the underlying writer if it supports flushing.
func (w *Writer) Flush() error {
	if w.closed {
		return ErrClosed
	}
	if w.err != nil {
		return w.err
	}
	if w.policy == SplitRuns {
		if err := w.emitPending(); err != nil {
			return err
		}
	}
	return w.flushDownstream()
}

// Close emits the pending run and flushes the underlying writer. Calling
// Close more than once is a no-op.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if w.err != nil {
		return w.err
	}
	if err := w.emitPending(); err != nil {
		return err
	}
	return w.flushDownstream()
}

// Reset discards any pending run and error state and switches output to dst.
func (w *Writer) Reset(dst io.Writer) {
	w.w = dst
	w.pending = 0
	w.err = nil
	w.closed = false
}

func (w *Writer) emitPending() error {
	if w.pending == 0 {
		return nil
	}
	pair := [2]byte{byte(w.pending), w.last}
	w.pending = 0
	if _, err := w.w.Write(pair[:]); err != nil {
		w.err = err
		return err
	}
	return nil
}

func (w *Writer) flushDownstream() error {
	if f, ok := w.w.(flusher); ok {
		if err := f.Flush(); err != nil {
			w.err = err
			return err
		}
	}
	return nil
}
