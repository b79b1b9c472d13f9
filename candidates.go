package objpack

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/absfs/objpack/rle"
)

// ClassicCandidates returns the three plain general-purpose codecs.
func ClassicCandidates() []Format {
	return []Format{FormatGzip, FormatXz, FormatBzip2}
}

// DefaultCandidates returns the formats AutomaticBest probes by default:
// every registered format that compresses, so an automatic artifact is never
// larger than one written with any single registered format.
func DefaultCandidates() []Format {
	return ExtendedCandidates()
}

// HuffmanCandidates returns every combination of gzip, xz and bzip2 with
// and without the Huffman-only pass, plus Huffman-only on its own.
func HuffmanCandidates() []Format {
	return []Format{
		FormatGzip,
		FormatXz,
		FormatBzip2,
		FormatHuffmanOnly,
		FormatGzipHuffman,
		FormatXzHuffman,
		FormatBzip2Huffman,
	}
}

// ExtendedCandidates returns every registered format that compresses, in
// tag order.
func ExtendedCandidates() []Format {
	all := Formats()
	out := make([]Format, 0, len(all))
	for _, f := range all {
		if f != FormatNone {
			out = append(out, f)
		}
	}
	return out
}

// Validate checks that every candidate and level refers to a known format
// or codec.
func (c *Config) Validate() error {
	if len(c.Candidates) == 0 {
		return ErrNoCandidates
	}
	for _, f := range c.Candidates {
		if !f.IsRegistered() {
			return fmt.Errorf("%w: %s", ErrUnregisteredFormat, f)
		}
	}
	for id := range c.Levels {
		if !id.IsValid() {
			return fmt.Errorf("objpack: level set for unknown %v", id)
		}
	}
	return nil
}

// configFile is the YAML layout of a Config:
//
//	candidates: [gzip, xz, "bzip2+huffman"]
//	levels:
//	  gzip: 9
//	rle_flush: keep
type configFile struct {
	Candidates []string       `yaml:"candidates,omitempty"`
	Levels     map[string]int `yaml:"levels,omitempty"`
	RLEFlush   string         `yaml:"rle_flush,omitempty"`
}

// LoadConfig reads a YAML config. Missing keys keep their DefaultConfig
// values; unknown keys are an error.
func LoadConfig(r io.Reader) (*Config, error) {
	var file configFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	cfg := DefaultConfig()
	if file.Candidates != nil {
		cfg.Candidates = make([]Format, 0, len(file.Candidates))
		for _, name := range file.Candidates {
			f, err := ParseFormat(name)
			if err != nil {
				return nil, err
			}
			cfg.Candidates = append(cfg.Candidates, f)
		}
	}
	if len(file.Levels) > 0 {
		cfg.Levels = make(map[CodecID]int, len(file.Levels))
		for name, level := range file.Levels {
			id, err := ParseCodecID(name)
			if err != nil {
				return nil, err
			}
			cfg.Levels[id] = level
		}
	}
	policy, err := rle.ParseFlushPolicy(file.RLEFlush)
	if err != nil {
		return nil, err
	}
	cfg.RLEFlush = policy

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigFile reads a YAML config from path.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadConfig(f)
}

// WriteConfig writes cfg as YAML in the layout LoadConfig reads.
func WriteConfig(w io.Writer, cfg *Config) error {
	file := configFile{RLEFlush: cfg.RLEFlush.String()}
	for _, f := range cfg.Candidates {
		file.Candidates = append(file.Candidates, f.String())
	}
	if len(cfg.Levels) > 0 {
		// yaml sorts map keys, so the output is stable.
		file.Levels = make(map[string]int, len(cfg.Levels))
		for id, level := range cfg.Levels {
			file.Levels[id.String()] = level
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(file); err != nil {
		return err
	}
	return enc.Close()
}
