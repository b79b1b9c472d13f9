package objpack

import (
	"fmt"
	"io"
)

// Encoder writes one artifact: the format's tag byte followed by the
// output of the format's codec chain.
type Encoder struct {
	format Format
	dst    io.Writer
	layers []io.WriteCloser // outermost first
	top    io.Writer
	closed bool
}

// NewEncoder writes f's tag to w and returns an Encoder whose writes pass
// through f's codec chain. An unregistered format fails before anything is
// written to w.
//
// Closing the Encoder finishes every codec layer but never closes w.
func NewEncoder(w io.Writer, f Format, opts ...ChainOption) (*Encoder, error) {
	tag, ok := TagOf(f)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnregisteredFormat, f)
	}
	codecs, err := newCodecs(f, newChainConfig(opts))
	if err != nil {
		return nil, err
	}

	if _, err := w.Write([]byte{tag}); err != nil {
		return nil, err
	}

	layers, err := openWriters(w, codecs)
	if err != nil {
		return nil, err
	}

	return &Encoder{
		format: f,
		dst:    w,
		layers: layers,
		top:    layers[len(layers)-1],
	}, nil
}

// Format returns the format being written.
func (e *Encoder) Format() Format {
	return e.format
}

// Write compresses p into the artifact.
func (e *Encoder) Write(p []byte) (int, error) {
	if e.closed {
		return 0, ErrClosed
	}
	return e.top.Write(p)
}

// Flush pushes buffered data through every layer and, if the destination
// supports it, flushes the destination too.
func (e *Encoder) Flush() error {
	if e.closed {
		return ErrClosed
	}
	if err := flushLayers(e.layers); err != nil {
		return err
	}
	if f, ok := e.dst.(flusher); ok {
		return f.Flush()
	}
	return nil
}

// Close finishes the primary codec and then the post-process layer. Every
// layer is closed even if an earlier one fails.
func (e *Encoder) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	return closeLayers(e.layers)
}

// Decoder reads one artifact, undoing the chain named by its tag byte.
type Decoder struct {
	format Format
	layers []io.ReadCloser // outermost first
	top    io.Reader
}

// NewDecoder reads exactly one tag byte from r and builds the matching
// decode chain. A source with no bytes at all yields ErrEmptyArtifact.
// An unknown tag yields ErrUnknownFormatTag without reading further.
//
// Codec errors are returned unchanged. Codecs that read a header up front
// (gzip) report a tag-only artifact as a bare io.EOF, so callers must not
// treat io.EOF from NewDecoder as a clean end of data.
//
// Closing the Decoder releases the codec layers but never closes r.
func NewDecoder(r io.Reader, opts ...ChainOption) (*Decoder, error) {
	f, err := readTag(r)
	if err != nil {
		return nil, err
	}
	codecs, err := newCodecs(f, newChainConfig(opts))
	if err != nil {
		return nil, err
	}

	layers, err := openReaders(r, codecs)
	if err != nil {
		return nil, err
	}

	return &Decoder{
		format: f,
		layers: layers,
		top:    layers[len(layers)-1],
	}, nil
}

// Format returns the format named by the artifact's tag.
func (d *Decoder) Format() Format {
	return d.format
}

// Read returns decompressed bytes.
func (d *Decoder) Read(p []byte) (int, error) {
	return d.top.Read(p)
}

// Close releases every decode layer.
func (d *Decoder) Close() error {
	return closeLayers(d.layers)
}

// readTag consumes exactly one byte from r and resolves it to a format.
func readTag(r io.Reader) (Format, error) {
	var tag [1]byte
	if _, err := io.ReadFull(r, tag[:]); err != nil {
		if err == io.EOF {
			return Format{}, ErrEmptyArtifact
		}
		return Format{}, err
	}

	f, ok := FormatOf(tag[0])
	if !ok {
		return Format{}, fmt.Errorf("%w: 0x%02x", ErrUnknownFormatTag, tag[0])
	}
	return f, nil
}
