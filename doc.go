// Package objpack persists values as self-describing compressed artifacts.
//
// An artifact is a single tag byte followed by the value's bytes as encoded
// by the format the tag names. Reading an artifact never needs to be told
// how it was written: the tag selects the decode chain.
//
// # Formats
//
// A Format is a primary codec plus an optional Huffman-only pass applied to
// the codec's output. Registered formats and their tags:
//
//	0x00 none          0x08 brotli
//	0x01 gzip          0x09 snappy
//	0x02 xz            0x11 gzip+huffman
//	0x03 bzip2         0x12 xz+huffman
//	0x04 huffman       0x13 bzip2+huffman
//	0x05 rle           0x15 rle+huffman
//	0x06 zstd
//	0x07 lz4
//
// Any other tag fails with ErrUnknownFormatTag, and an artifact with no
// bytes at all fails with ErrEmptyArtifact.
//
// # Quick Start
//
//	type Point struct{ X, Y int }
//
//	// Write with the smallest of the default candidates
//	var buf bytes.Buffer
//	err := objpack.Serialize(Point{1, 2}, &buf, objpack.AutomaticBest)
//
//	// Read back; the format comes from the tag
//	var p Point
//	err = objpack.Deserialize(&buf, &p)
//
// # Automatic Selection
//
// AutomaticBest encodes the raw bytes with every candidate into a byte
// counter, keeps the smallest (ties go to the earlier candidate) and then
// encodes once more into the destination. The candidate list is
// configuration:
//
//   - ClassicCandidates: gzip, xz, bzip2
//   - HuffmanCandidates: the classic three, huffman, and each classic codec
//     followed by the Huffman pass
//   - ExtendedCandidates: every registered format except none
//
// DefaultCandidates, used unless configured otherwise, is the extended set,
// so an automatic artifact is never larger than a fixed-format one.
//
// Candidate lists, per-codec levels and the RLE flush policy can also be
// loaded from YAML with LoadConfig.
//
// # Keyed Storage
//
// Client stores artifacts under string keys in a disk, memory, S3 or GCS
// backend. The disk backend replaces files atomically. Store errors reach the
// caller unchanged, except a missing key, which is reported as ErrNotFound.
package objpack
