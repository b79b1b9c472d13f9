package objpack

import (
	"errors"

	"github.com/absfs/objpack/rle"
)

var (
	// ErrEmptyArtifact is returned when an artifact has no bytes at all,
	// not even a tag.
	ErrEmptyArtifact = errors.New("objpack: empty artifact")

	// ErrUnknownFormatTag is returned when the first byte of an artifact
	// names no registered format.
	ErrUnknownFormatTag = errors.New("objpack: unknown format tag")

	// ErrUnregisteredFormat is returned when asked to write a codec and
	// post-process combination that has no tag.
	ErrUnregisteredFormat = errors.New("objpack: unregistered format")

	// ErrNoCandidates is returned by automatic selection with an empty
	// candidate list.
	ErrNoCandidates = errors.New("objpack: no candidate formats")

	// ErrNotEncodable wraps the transformer's error for a value it cannot
	// marshal. Nothing is written in that case.
	ErrNotEncodable = errors.New("objpack: value not encodable")

	// ErrNotFound is returned by a Client when no artifact is stored under
	// the key.
	ErrNotFound = errors.New("objpack: artifact not found")

	// ErrNoStore is returned by NewClient without a store.
	ErrNoStore = errors.New("objpack: no store provided")

	// ErrClosed is returned when using a closed Encoder or Client.
	ErrClosed = errors.New("objpack: closed")

	// ErrCorruptRLE matches every RLE corruption error, including a zero
	// run count and a run missing its value byte.
	ErrCorruptRLE = rle.ErrCorrupt
)

// Config holds encoding configuration
type Config struct {
	// Candidates probed in automatic mode, in tie-break order.
	// Default: DefaultCandidates(), every compressing format
	Candidates []Format

	// Compression level per codec (algorithm-specific, 0 = library default)
	// gzip: 1-9
	// bzip2: 1-9
	// zstd: 1-22
	// lz4: 1-9
	// brotli: 0-11
	// xz, snappy, huffman, rle: ignored (no levels)
	Levels map[CodecID]int

	// What an explicit Flush does with a pending RLE run (default: split)
	RLEFlush rle.FlushPolicy
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Candidates: DefaultCandidates(),
		Levels:     nil,
		RLEFlush:   rle.SplitRuns,
	}
}

// ChainOptions converts the config to the options used to build encode and
// decode chains.
func (c *Config) ChainOptions() []ChainOption {
	opts := make([]ChainOption, 0, len(c.Levels)+1)
	for id, level := range c.Levels {
		opts = append(opts, WithLevel(id, level))
	}
	opts = append(opts, WithRLEFlushPolicy(c.RLEFlush))
	return opts
}

// clone returns a deep copy so callers can keep mutating their Config.
func (c *Config) clone() *Config {
	out := &Config{
		Candidates: append([]Format(nil), c.Candidates...),
		RLEFlush:   c.RLEFlush,
	}
	if c.Levels != nil {
		out.Levels = make(map[CodecID]int, len(c.Levels))
		for id, level := range c.Levels {
			out.Levels[id] = level
		}
	}
	return out
}
