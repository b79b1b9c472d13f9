package objpack

import (
	"bytes"
	"io"
)

// Preset configurations for common use cases

// FastestConfig returns a configuration optimized for speed
func FastestConfig() *Config {
	return &Config{
		Candidates: []Format{FormatLZ4, FormatSnappy},
	}
}

// BestCompressionConfig returns a configuration optimized for maximum compression
// Probes every registered codec at its highest level; use for write-once/read-many data
func BestCompressionConfig() *Config {
	return &Config{
		Candidates: ExtendedCandidates(),
		Levels: map[CodecID]int{
			CodecGzip:   9,
			CodecBzip2:  9,
			CodecZstd:   19,
			CodecLZ4:    9,
			CodecBrotli: 11,
		},
	}
}

// CompatibleConfig returns a configuration limited to gzip, xz and bzip2,
// which standard command line tools can read once the tag byte is stripped
func CompatibleConfig() *Config {
	return &Config{
		Candidates: ClassicCandidates(),
		Levels:     map[CodecID]int{CodecGzip: 6},
	}
}

// EncodeBytes returns the artifact for raw in format f
func EncodeBytes(raw []byte, f Format, opts ...ChainOption) ([]byte, error) {
	var buf bytes.Buffer
	enc, err := NewEncoder(&buf, f, opts...)
	if err != nil {
		return nil, err
	}

	if _, err := enc.Write(raw); err != nil {
		enc.Close()
		return nil, err
	}

	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// DecodeBytes returns the raw bytes of an artifact and its format
func DecodeBytes(artifact []byte) ([]byte, Format, error) {
	dec, err := NewDecoder(bytes.NewReader(artifact))
	if err != nil {
		return nil, Format{}, err
	}
	defer dec.Close()

	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, Format{}, err
	}
	return raw, dec.Format(), nil
}

// Inspect reads only the tag byte from r and returns the artifact's format
func Inspect(r io.Reader) (Format, error) {
	return readTag(r)
}

// GetCompressionRatio calculates the compression ratio for given original and compressed sizes
// Returns a value between 0 and 1, where lower is better
// E.g., 0.5 means the compressed size is 50% of the original
func GetCompressionRatio(originalSize, compressedSize int64) float64 {
	if originalSize == 0 {
		return 0
	}
	return float64(compressedSize) / float64(originalSize)
}

// GetCompressionPercentage calculates the compression percentage
// Returns the percentage of space saved (0-100)
// E.g., 50 means 50% space savings
func GetCompressionPercentage(originalSize, compressedSize int64) float64 {
	if originalSize == 0 {
		return 0
	}
	return (1 - float64(compressedSize)/float64(originalSize)) * 100
}
