package objpack

import (
	"io"

	"github.com/hashicorp/go-multierror"

	"github.com/absfs/objpack/internal/codec"
)

type flusher interface {
	Flush() error
}

// openWriters stacks the codecs' writers over dst, outermost first, and
// returns them in that order. On failure every layer already opened is
// closed.
func openWriters(dst io.Writer, codecs []codec.Codec) ([]io.WriteCloser, error) {
	layers := make([]io.WriteCloser, 0, len(codecs))
	for _, c := range codecs {
		wc, err := c.Writer(dst)
		if err != nil {
			closeLayers(layers)
			return nil, err
		}
		layers = append(layers, wc)
		dst = wc
	}
	return layers, nil
}

// openReaders is the decode-side mirror of openWriters.
func openReaders(src io.Reader, codecs []codec.Codec) ([]io.ReadCloser, error) {
	layers := make([]io.ReadCloser, 0, len(codecs))
	for _, c := range codecs {
		rc, err := c.Reader(src)
		if err != nil {
			closeLayers(layers)
			return nil, err
		}
		layers = append(layers, rc)
		src = rc
	}
	return layers, nil
}

// flushLayers flushes from the innermost layer outwards so buffered data
// reaches the destination.
func flushLayers(layers []io.WriteCloser) error {
	for i := len(layers) - 1; i >= 0; i-- {
		if f, ok := layers[i].(flusher); ok {
			if err := f.Flush(); err != nil {
				return err
			}
		}
	}
	return nil
}

// closeLayers closes every layer, innermost first, even after a failure.
// A single failure is returned as is; several are combined.
func closeLayers[T io.Closer](layers []T) error {
	var errs []error
	for i := len(layers) - 1; i >= 0; i-- {
		if err := layers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return multierror.Append(nil, errs...)
	}
}
