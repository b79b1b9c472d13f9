package objpack

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/absfs/objpack/internal/stats"
)

type modeKind uint8

const (
	modeNone modeKind = iota
	modeAuto
	modeExplicit
)

// Mode chooses the format of a new artifact.
type Mode struct {
	kind   modeKind
	format Format
}

var (
	// NoCompression stores raw bytes behind the "none" tag.
	NoCompression = Mode{kind: modeNone}

	// AutomaticBest probes every configured candidate and keeps the
	// smallest.
	AutomaticBest = Mode{kind: modeAuto}
)

// ExplicitFormat always encodes with f.
func ExplicitFormat(f Format) Mode {
	return Mode{kind: modeExplicit, format: f}
}

// String returns "none", "auto" or the explicit format's name.
func (m Mode) String() string {
	switch m.kind {
	case modeNone:
		return "none"
	case modeAuto:
		return "auto"
	default:
		return m.format.String()
	}
}

// ParseMode parses "none", "auto" or any registered format name.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return NoCompression, nil
	case "auto", "best":
		return AutomaticBest, nil
	}
	f, err := ParseFormat(s)
	if err != nil {
		return Mode{}, err
	}
	return ExplicitFormat(f), nil
}

// Serializer turns values into artifacts and back. It is safe for
// concurrent use.
type Serializer struct {
	config      *Config
	chain       []ChainOption
	transformer Transformer
	collector   stats.Collector
	logger      *zap.Logger
	stats       Stats
}

// New creates a Serializer. Without options it uses gob and
// DefaultConfig().
func New(opts ...Option) *Serializer {
	return newSerializer(buildOptions(opts))
}

func newSerializer(o options) *Serializer {
	return &Serializer{
		config:      o.config,
		chain:       o.config.ChainOptions(),
		transformer: o.transformer,
		collector:   o.stats,
		logger:      o.logger,
	}
}

// Config returns a copy of the serializer's configuration.
func (s *Serializer) Config() *Config {
	return s.config.clone()
}

// Transformer returns the value transformer in use.
func (s *Serializer) Transformer() Transformer {
	return s.transformer
}

// GetStats returns a snapshot of the statistics.
func (s *Serializer) GetStats() *Stats {
	return s.stats.snapshot()
}

// ResetStats resets statistics to zero
func (s *Serializer) ResetStats() {
	s.stats.reset()
}

// Serialize writes v to w as an artifact. If v cannot be marshaled the
// error matches ErrNotEncodable and nothing is written to w.
//
// A failure after encoding started may leave w holding a partial artifact.
func (s *Serializer) Serialize(v any, w io.Writer, mode Mode) error {
	raw, err := s.marshal(v)
	if err != nil {
		return err
	}
	_, err = s.WriteArtifact(w, raw, mode)
	return err
}

// Deserialize reads an artifact from r and unmarshals it into v. The format
// comes from the artifact's tag. The decoded value's type is not checked
// against v beyond what the transformer itself does.
//
// Codec errors pass through unchanged; a truncated artifact may surface as
// io.EOF rather than io.ErrUnexpectedEOF.
func (s *Serializer) Deserialize(r io.Reader, v any) error {
	raw, _, err := s.ReadArtifact(r)
	if err != nil {
		return err
	}
	return s.transformer.Unmarshal(raw, v)
}

// SaveFile serializes v into the file at path, replacing its contents.
func (s *Serializer) SaveFile(path string, v any, mode Mode) (err error) {
	raw, err := s.marshal(v)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	bw := bufio.NewWriter(f)
	if _, err := s.WriteArtifact(bw, raw, mode); err != nil {
		return err
	}
	return bw.Flush()
}

// LoadFile deserializes the file at path into v.
func (s *Serializer) LoadFile(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return s.Deserialize(bufio.NewReader(f), v)
}

func (s *Serializer) marshal(v any) ([]byte, error) {
	raw, err := s.transformer.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotEncodable, err)
	}
	return raw, nil
}

// WriteArtifact encodes raw to w with the format mode selects and returns
// that format.
func (s *Serializer) WriteArtifact(w io.Writer, raw []byte, mode Mode) (Format, error) {
	f, err := s.choose(raw, mode)
	if err != nil {
		return Format{}, err
	}

	cw := &countingWriter{w: w}
	enc, err := NewEncoder(cw, f, s.chain...)
	if err != nil {
		return Format{}, err
	}
	if _, err := enc.Write(raw); err != nil {
		enc.Close()
		return Format{}, err
	}
	if err := enc.Close(); err != nil {
		return Format{}, err
	}

	s.stats.recordWrite(s.collector, f, int64(len(raw)), cw.n)
	s.logger.Debug("artifact written",
		zap.Stringer("format", f),
		zap.Int("raw_bytes", len(raw)),
		zap.Int64("artifact_bytes", cw.n),
	)
	return f, nil
}

// ReadArtifact decodes an artifact from r and returns its raw bytes and
// format.
func (s *Serializer) ReadArtifact(r io.Reader) ([]byte, Format, error) {
	cr := &countingReader{r: r}
	dec, err := NewDecoder(cr, s.chain...)
	if err != nil {
		return nil, Format{}, err
	}
	defer dec.Close()

	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, Format{}, err
	}

	s.stats.recordRead(s.collector, cr.n, int64(len(raw)))
	s.logger.Debug("artifact read",
		zap.Stringer("format", dec.Format()),
		zap.Int64("artifact_bytes", cr.n),
		zap.Int("raw_bytes", len(raw)),
	)
	return raw, dec.Format(), nil
}

// choose resolves mode to a format, probing the candidates for
// AutomaticBest.
func (s *Serializer) choose(raw []byte, mode Mode) (Format, error) {
	switch mode.kind {
	case modeNone:
		return FormatNone, nil
	case modeExplicit:
		return mode.format, nil
	}

	sel, err := Select(raw, s.config.Candidates, s.chain...)
	if err != nil {
		return Format{}, err
	}
	s.stats.recordProbes(s.collector, len(sel.Trials))
	if ce := s.logger.Check(zap.DebugLevel, "format selected"); ce != nil {
		sizes := make([]zap.Field, 0, len(sel.Trials)+2)
		sizes = append(sizes, zap.Stringer("format", sel.Format), zap.Int64("size", sel.Size))
		for _, t := range sel.Trials {
			sizes = append(sizes, zap.Int64("trial."+t.Format.String(), t.Size))
		}
		ce.Write(sizes...)
	}
	return sel.Format, nil
}

var defaultSerializer = New()

// Serialize writes v to w using gob and the default candidates.
func Serialize(v any, w io.Writer, mode Mode) error {
	return defaultSerializer.Serialize(v, w, mode)
}

// Deserialize reads a gob artifact from r into v.
func Deserialize(r io.Reader, v any) error {
	return defaultSerializer.Deserialize(r, v)
}

// SaveFile serializes v into the file at path using gob.
func SaveFile(path string, v any, mode Mode) error {
	return defaultSerializer.SaveFile(path, v, mode)
}

// LoadFile deserializes the gob artifact at path into v.
func LoadFile(path string, v any) error {
	return defaultSerializer.LoadFile(path, v)
}
