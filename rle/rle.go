package rle

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// MaxRun is the longest run a single pair can describe.
const MaxRun = 255

var (
	// ErrCorrupt is matched by every error caused by malformed encoded data.
	ErrCorrupt = errors.New("rle: corrupt stream")

	// ErrZeroCount is returned when a pair starts with a count of zero.
	ErrZeroCount = fmt.Errorf("%w: zero run count", ErrCorrupt)

	// ErrClosed is returned when writing to a closed Writer.
	ErrClosed = errors.New("rle: write to closed writer")
)

// truncatedPairError reports a count byte that was not followed by a value.
// It matches both ErrCorrupt and io.ErrUnexpectedEOF.
type truncatedPairError struct {
	count byte
}

func (e *truncatedPairError) Error() string {
	return fmt.Sprintf("rle: corrupt stream: missing value after run count %d: %s", e.count, io.ErrUnexpectedEOF)
}

func (e *truncatedPairError) Is(target error) bool {
	return target == ErrCorrupt || target == io.ErrUnexpectedEOF
}

// FlushPolicy controls what Writer.Flush does with the run it is holding.
type FlushPolicy uint8

const (
	// SplitRuns emits the pending run on Flush so everything written so far
	// is visible downstream. A later identical byte starts a new pair.
	SplitRuns FlushPolicy = iota

	// KeepRuns leaves the pending run buffered on Flush. Only Close emits it.
	KeepRuns
)

// String returns the policy name used in configuration files.
func (p FlushPolicy) String() string {
	switch p {
	case SplitRuns:
		return "split"
	case KeepRuns:
		return "keep"
	default:
		return fmt.Sprintf("FlushPolicy(%d)", uint8(p))
	}
}

// ParseFlushPolicy parses "split" or "keep". The empty string means SplitRuns.
func ParseFlushPolicy(s string) (FlushPolicy, error) {
	switch s {
	case "", "split":
		return SplitRuns, nil
	case "keep":
		return KeepRuns, nil
	default:
		return SplitRuns, fmt.Errorf("rle: unknown flush policy %q", s)
	}
}

// Encode run-length encodes data in one call.
func Encode(data []byte) []byte {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	// Writes to a bytes.Buffer cannot fail.
	_, _ = w.Write(data)
	_ = w.Close()
	return buf.Bytes()
}

// Decode expands an encoded buffer in one call.
func Decode(encoded []byte) ([]byte, error) {
	return io.ReadAll(NewReader(bytes.NewReader(encoded)))
}
