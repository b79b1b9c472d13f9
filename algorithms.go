package objpack

import (
	"fmt"

	"github.com/absfs/objpack/internal/codec"
	"github.com/absfs/objpack/rle"
)

// chainConfig holds per-chain codec settings.
type chainConfig struct {
	levels   map[CodecID]int
	rleFlush rle.FlushPolicy
}

// ChainOption configures the codecs of an encode or decode chain.
type ChainOption func(*chainConfig)

// WithLevel sets the compression level for one codec. Level 0 selects the
// codec's default. Levels are algorithm-specific:
//
//	gzip:   1-9 (default 6)
//	bzip2:  1-9 (default 6)
//	zstd:   1-22 (default 3)
//	lz4:    1-9 (default fast mode)
//	brotli: 0-11 (default 6)
//	xz, snappy, huffman, rle: ignored (no levels)
func WithLevel(id CodecID, level int) ChainOption {
	return func(c *chainConfig) {
		if c.levels == nil {
			c.levels = make(map[CodecID]int)
		}
		c.levels[id] = level
	}
}

// WithRLEFlushPolicy sets what an explicit Flush does with a pending RLE run.
func WithRLEFlushPolicy(p rle.FlushPolicy) ChainOption {
	return func(c *chainConfig) {
		c.rleFlush = p
	}
}

func newChainConfig(opts []ChainOption) *chainConfig {
	cfg := &chainConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// newCodec creates the codec for id with the chain's settings.
func newCodec(id CodecID, cfg *chainConfig) (codec.Codec, error) {
	level := cfg.levels[id]
	switch id {
	case CodecNone:
		return codec.None{}, nil
	case CodecGzip:
		return codec.Gzip{Level: level}, nil
	case CodecXz:
		return codec.Xz{}, nil
	case CodecBzip2:
		return codec.Bzip2{Level: level}, nil
	case CodecHuffmanOnly:
		return codec.HuffmanOnly{}, nil
	case CodecRLE:
		return codec.RLE{Flush: cfg.rleFlush}, nil
	case CodecZstd:
		return codec.Zstd{Level: level}, nil
	case CodecLZ4:
		return codec.LZ4{Level: level}, nil
	case CodecBrotli:
		return codec.Brotli{Level: level}, nil
	case CodecSnappy:
		return codec.Snappy{}, nil
	default:
		return nil, fmt.Errorf("objpack: no codec for %v", id)
	}
}

// newCodecs resolves every layer of f, outermost first, before any I/O.
func newCodecs(f Format, cfg *chainConfig) ([]codec.Codec, error) {
	ids := f.layers()
	codecs := make([]codec.Codec, 0, len(ids))
	for _, id := range ids {
		c, err := newCodec(id, cfg)
		if err != nil {
			return nil, err
		}
		codecs = append(codecs, c)
	}
	return codecs, nil
}
