// Package rle implements a streaming run-length byte codec.
//
// Every run of identical bytes is stored as a pair of bytes: a count in the
// range 1-255 followed by the byte value. Runs longer than 255 bytes are split
// into consecutive pairs, so a run of 600 zero bytes is encoded as
//
//	FF 00  FF 00  5A 00
//
// and the sequence "AAAB" becomes
//
//	03 41  01 42
//
// The format has no header and no terminator. An empty input encodes to an
// empty output, and a decoder that runs out of input exactly at a pair
// boundary has reached the end of the stream. A count byte of zero, or a count
// byte with no value byte after it, is corrupt data.
//
// Random data roughly doubles in size under this encoding, so it is only
// useful for inputs dominated by long runs (zero-filled buffers, sparse
// images, padded records) or as a first stage ahead of an entropy coder.
//
// # Flushing
//
// The writer holds the current run in memory until a different byte arrives.
// Flush can either emit that pending run immediately, possibly splitting a run
// that later bytes would have extended, or keep it buffered and only flush the
// downstream writer. See [FlushPolicy].
package rle
