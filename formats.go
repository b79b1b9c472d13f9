package objpack

import (
	"fmt"
	"sort"
	"strings"
)

// CodecID identifies a primary compression codec.
type CodecID uint8

const (
	CodecNone        CodecID = iota // bytes stored as is
	CodecGzip                       // gzip (DEFLATE with gzip framing)
	CodecXz                         // xz (LZMA2)
	CodecBzip2                      // bzip2
	CodecHuffmanOnly                // DEFLATE with Huffman coding only, no matching
	CodecRLE                        // (count, value) run-length pairs
	CodecZstd                       // Zstandard
	CodecLZ4                        // LZ4 frame format
	CodecBrotli                     // Brotli
	CodecSnappy                     // Snappy framed stream
)

// postProcessName is the suffix naming the Huffman-only post-process layer.
const postProcessName = "huffman"

var codecNames = map[CodecID]string{
	CodecNone:        "none",
	CodecGzip:        "gzip",
	CodecXz:          "xz",
	CodecBzip2:       "bzip2",
	CodecHuffmanOnly: "huffman",
	CodecRLE:         "rle",
	CodecZstd:        "zstd",
	CodecLZ4:         "lz4",
	CodecBrotli:      "brotli",
	CodecSnappy:      "snappy",
}

// Reverse name mapping, including common aliases.
var codecsByName = map[string]CodecID{
	"none":    CodecNone,
	"raw":     CodecNone,
	"gzip":    CodecGzip,
	"gz":      CodecGzip,
	"xz":      CodecXz,
	"bzip2":   CodecBzip2,
	"bz2":     CodecBzip2,
	"huffman": CodecHuffmanOnly,
	"rle":     CodecRLE,
	"zstd":    CodecZstd,
	"zst":     CodecZstd,
	"lz4":     CodecLZ4,
	"brotli":  CodecBrotli,
	"br":      CodecBrotli,
	"snappy":  CodecSnappy,
	"sz":      CodecSnappy,
}

// IsValid returns true if the codec is known.
func (c CodecID) IsValid() bool {
	_, ok := codecNames[c]
	return ok
}

// String returns the codec name.
func (c CodecID) String() string {
	if name, ok := codecNames[c]; ok {
		return name
	}
	return fmt.Sprintf("codec(%d)", uint8(c))
}

// ParseCodecID parses a codec name such as "gzip" or "bz2".
func ParseCodecID(s string) (CodecID, error) {
	if id, ok := codecsByName[strings.ToLower(strings.TrimSpace(s))]; ok {
		return id, nil
	}
	return 0, fmt.Errorf("objpack: unknown codec %q", s)
}

// Format is a primary codec plus an optional Huffman-only pass applied to
// the codec's output.
type Format struct {
	Codec       CodecID
	PostProcess bool
}

// Plain formats.
var (
	FormatNone        = Format{Codec: CodecNone}
	FormatGzip        = Format{Codec: CodecGzip}
	FormatXz          = Format{Codec: CodecXz}
	FormatBzip2       = Format{Codec: CodecBzip2}
	FormatHuffmanOnly = Format{Codec: CodecHuffmanOnly}
	FormatRLE         = Format{Codec: CodecRLE}
	FormatZstd        = Format{Codec: CodecZstd}
	FormatLZ4         = Format{Codec: CodecLZ4}
	FormatBrotli      = Format{Codec: CodecBrotli}
	FormatSnappy      = Format{Codec: CodecSnappy}
)

// Formats with the Huffman-only post-process layer.
var (
	FormatGzipHuffman  = Format{Codec: CodecGzip, PostProcess: true}
	FormatXzHuffman    = Format{Codec: CodecXz, PostProcess: true}
	FormatBzip2Huffman = Format{Codec: CodecBzip2, PostProcess: true}
	FormatRLEHuffman   = Format{Codec: CodecRLE, PostProcess: true}
)

// Tag table. Post-processed formats use 0x10 | the primary codec's tag.
var formatTags = map[Format]byte{
	FormatNone:         0x00,
	FormatGzip:         0x01,
	FormatXz:           0x02,
	FormatBzip2:        0x03,
	FormatHuffmanOnly:  0x04,
	FormatRLE:          0x05,
	FormatZstd:         0x06,
	FormatLZ4:          0x07,
	FormatBrotli:       0x08,
	FormatSnappy:       0x09,
	FormatGzipHuffman:  0x11,
	FormatXzHuffman:    0x12,
	FormatBzip2Huffman: 0x13,
	FormatRLEHuffman:   0x15,
}

// Reverse tag mapping (tag -> format), filled once by init.
var tagFormats map[byte]Format

// Registered formats in tag order, filled once by init.
var registeredFormats []Format

func init() {
	tagFormats = make(map[byte]Format, len(formatTags))
	for f, tag := range formatTags {
		if other, dup := tagFormats[tag]; dup {
			panic(fmt.Sprintf("objpack: tag 0x%02x assigned to both %v and %v", tag, other, f))
		}
		tagFormats[tag] = f
		registeredFormats = append(registeredFormats, f)
	}
	sort.Slice(registeredFormats, func(i, j int) bool {
		return formatTags[registeredFormats[i]] < formatTags[registeredFormats[j]]
	})
}

// TagOf returns the tag byte for a format, and false if the format is not
// registered.
func TagOf(f Format) (byte, bool) {
	tag, ok := formatTags[f]
	return tag, ok
}

// FormatOf returns the format registered under a tag byte.
func FormatOf(tag byte) (Format, bool) {
	f, ok := tagFormats[tag]
	return f, ok
}

// Formats returns every registered format in tag order.
func Formats() []Format {
	return append([]Format(nil), registeredFormats...)
}

// IsRegistered reports whether f has a tag.
func (f Format) IsRegistered() bool {
	_, ok := formatTags[f]
	return ok
}

// Tag returns the format's tag byte. It panics if f is not registered.
func (f Format) Tag() byte {
	tag, ok := formatTags[f]
	if !ok {
		panic(fmt.Sprintf("objpack: format %v has no tag", f))
	}
	return tag
}

// String returns names like "gzip" or "gzip+huffman".
func (f Format) String() string {
	if f.PostProcess {
		return f.Codec.String() + "+" + postProcessName
	}
	return f.Codec.String()
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// ParseFormat parses a format name such as "xz" or "bzip2+huffman". Only
// registered formats are accepted.
func ParseFormat(s string) (Format, error) {
	name, post, hasPost := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "+")
	if hasPost && post != postProcessName {
		return Format{}, fmt.Errorf("objpack: unknown post-process layer %q in %q", post, s)
	}
	id, err := ParseCodecID(name)
	if err != nil {
		return Format{}, err
	}
	f := Format{Codec: id, PostProcess: hasPost}
	if !f.IsRegistered() {
		return Format{}, fmt.Errorf("%w: %s", ErrUnregisteredFormat, f)
	}
	return f, nil
}

// layers returns the codecs making up f's chain, outermost (closest to
// storage) first.
func (f Format) layers() []CodecID {
	if f.PostProcess {
		return []CodecID{CodecHuffmanOnly, f.Codec}
	}
	return []CodecID{f.Codec}
}
