package objpack

import (
	"bytes"
	"errors"
	"testing"
)

func TestPresetConfigs(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
	}{
		{"Default", DefaultConfig()},
		{"Fastest", FastestConfig()},
		{"BestCompression", BestCompressionConfig()},
		{"Compatible", CompatibleConfig()},
	}

	data := generateHighlyCompressibleData(16 * 1024)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.config.Validate(); err != nil {
				t.Fatalf("Validate() error = %v", err)
			}

			s := New(WithConfig(tt.config))
			var buf bytes.Buffer
			if err := s.Serialize(data, &buf, AutomaticBest); err != nil {
				t.Fatalf("Serialize() error = %v", err)
			}
			if buf.Len() >= len(data) {
				t.Errorf("expected compression, got %d bytes from %d", buf.Len(), len(data))
			}

			var out []byte
			if err := s.Deserialize(&buf, &out); err != nil {
				t.Fatalf("Deserialize() error = %v", err)
			}
			if !bytes.Equal(out, data) {
				t.Error("round trip mismatch")
			}
		})
	}
}

func TestEncodeDecodeBytes(t *testing.T) {
	original := []byte("Hello, World! This is test data for byte helpers. " +
		"It should compress well because it has repeated patterns. " +
		"Hello, World! This is test data for byte helpers.")

	for _, f := range Formats() {
		t.Run(f.String(), func(t *testing.T) {
			artifact, err := EncodeBytes(original, f)
			if err != nil {
				t.Fatalf("EncodeBytes() error = %v", err)
			}

			raw, format, err := DecodeBytes(artifact)
			if err != nil {
				t.Fatalf("DecodeBytes() error = %v", err)
			}
			if format != f {
				t.Errorf("DecodeBytes() format = %v, want %v", format, f)
			}
			if !bytes.Equal(raw, original) {
				t.Error("decoded data doesn't match original")
			}
		})
	}
}

func TestEncodeBytes_Unregistered(t *testing.T) {
	_, err := EncodeBytes([]byte("x"), Format{Codec: CodecBrotli, PostProcess: true})
	if !errors.Is(err, ErrUnregisteredFormat) {
		t.Errorf("EncodeBytes() error = %v, want ErrUnregisteredFormat", err)
	}
}

func TestDecodeBytes_Errors(t *testing.T) {
	if _, _, err := DecodeBytes(nil); !errors.Is(err, ErrEmptyArtifact) {
		t.Errorf("DecodeBytes(nil) error = %v, want ErrEmptyArtifact", err)
	}
	if _, _, err := DecodeBytes([]byte{0x99}); !errors.Is(err, ErrUnknownFormatTag) {
		t.Errorf("DecodeBytes(0x99) error = %v, want ErrUnknownFormatTag", err)
	}
	if _, _, err := DecodeBytes([]byte{0x01, 'n', 'o', 'p', 'e'}); err == nil {
		t.Error("DecodeBytes() expected error for a corrupt gzip body")
	}
}

func TestInspect(t *testing.T) {
	artifact, err := EncodeBytes([]byte("inspect me"), FormatGzipHuffman)
	if err != nil {
		t.Fatalf("EncodeBytes() error = %v", err)
	}

	r := bytes.NewReader(artifact)
	f, err := Inspect(r)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if f != FormatGzipHuffman {
		t.Errorf("Inspect() = %v, want %v", f, FormatGzipHuffman)
	}
	if r.Len() != len(artifact)-1 {
		t.Errorf("Inspect consumed %d bytes, want 1", len(artifact)-r.Len())
	}

	if _, err := Inspect(bytes.NewReader(nil)); !errors.Is(err, ErrEmptyArtifact) {
		t.Errorf("Inspect(empty) error = %v, want ErrEmptyArtifact", err)
	}
}

func TestGetCompressionRatio(t *testing.T) {
	tests := []struct {
		name           string
		originalSize   int64
		compressedSize int64
		expected       float64
	}{
		{"50% compression", 1000, 500, 0.5},
		{"75% compression", 1000, 250, 0.25},
		{"no compression", 1000, 1000, 1.0},
		{"zero original", 0, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ratio := GetCompressionRatio(tt.originalSize, tt.compressedSize)
			if ratio != tt.expected {
				t.Errorf("Expected ratio %f, got %f", tt.expected, ratio)
			}
		})
	}
}

func TestGetCompressionPercentage(t *testing.T) {
	tests := []struct {
		name           string
		originalSize   int64
		compressedSize int64
		expected       float64
	}{
		{"50% savings", 1000, 500, 50.0},
		{"75% savings", 1000, 250, 75.0},
		{"no savings", 1000, 1000, 0.0},
		{"zero original", 0, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			percentage := GetCompressionPercentage(tt.originalSize, tt.compressedSize)
			if percentage != tt.expected {
				t.Errorf("Expected percentage %f, got %f", tt.expected, percentage)
			}
		})
	}
}
