package rle_test

import (
	"bytes"
	"crypto/rand"
	"errors"
	"io"
	"testing"

	"github.com/noxer/bytewriter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/absfs/objpack/rle"
)

type encodeTestCase struct {
	Name    string
	Input   []byte
	Encoded []byte
}

var encodeTests = []encodeTestCase{
	{"empty", []byte{}, []byte{}},
	{"single byte", []byte{0x7f}, []byte{0x01, 0x7f}},
	{"run then literal", []byte{0x41, 0x41, 0x41, 0x42}, []byte{0x03, 0x41, 0x01, 0x42}},
	{"no runs", []byte{1, 2, 3}, []byte{1, 1, 1, 2, 1, 3}},
	{"zero bytes", []byte{0, 0, 0, 0}, []byte{4, 0}},
	{"max run", bytes.Repeat([]byte{9}, 255), []byte{255, 9}},
	{"max run plus one", bytes.Repeat([]byte{9}, 256), []byte{255, 9, 1, 9}},
	{
		"600 nulls",
		make([]byte, 600),
		[]byte{255, 0, 255, 0, 90, 0},
	},
	{
		"adjacent runs",
		[]byte{5, 5, 3, 3, 3, 7},
		[]byte{2, 5, 3, 3, 1, 7},
	},
}

func TestEncode__Examples(t *testing.T) {
	for _, test := range encodeTests {
		t.Run(test.Name, func(t *testing.T) {
			assert.Equal(t, test.Encoded, nonNil(rle.Encode(test.Input)))

			// Same thing through the streaming writer into a fixed-size buffer.
			out := make([]byte, len(test.Encoded))
			w := rle.NewWriter(bytewriter.New(out))
			n, err := w.Write(test.Input)
			require.NoError(t, err)
			assert.Equal(t, len(test.Input), n)
			require.NoError(t, w.Close())
			assert.Equal(t, test.Encoded, out)
		})
	}
}

func TestDecode__Examples(t *testing.T) {
	for _, test := range encodeTests {
		t.Run(test.Name, func(t *testing.T) {
			decoded, err := rle.Decode(test.Encoded)
			require.NoError(t, err)
			assert.Equal(t, test.Input, nonNil(decoded))
		})
	}
}

func TestEncode__LongRunsSplitIntoPairs(t *testing.T) {
	for _, n := range []int{1, 2, 254, 255, 256, 509, 510, 511, 1000, 100000} {
		encoded := rle.Encode(bytes.Repeat([]byte{0xaa}, n))

		wantPairs := (n + rle.MaxRun - 1) / rle.MaxRun
		require.Len(t, encoded, 2*wantPairs, "run of %d", n)

		sum := 0
		for i := 0; i < len(encoded); i += 2 {
			count := int(encoded[i])
			assert.GreaterOrEqual(t, count, 1, "run of %d, pair %d", n, i/2)
			assert.LessOrEqual(t, count, rle.MaxRun, "run of %d, pair %d", n, i/2)
			assert.Equal(t, byte(0xaa), encoded[i+1])
			sum += count
		}
		assert.Equal(t, n, sum, "counts for run of %d", n)
	}
}

func TestWriter__RunSpansWrites(t *testing.T) {
	var buf bytes.Buffer
	w := rle.NewWriter(&buf)

	_, err := w.Write([]byte{0x41, 0x41})
	require.NoError(t, err)
	_, err = w.Write([]byte{0x41})
	require.NoError(t, err)
	_, err = w.Write([]byte{0x42})
	require.NoError(t, err)

	// Only the completed run of A is visible before Close.
	assert.Equal(t, []byte{0x03, 0x41}, buf.Bytes())

	require.NoError(t, w.Close())
	assert.Equal(t, []byte{0x03, 0x41, 0x01, 0x42}, buf.Bytes())
}

type countingFlusher struct {
	bytes.Buffer
	flushes int
}

func (c *countingFlusher) Flush() error {
	c.flushes++
	return nil
}

func TestWriter__FlushSplitsRuns(t *testing.T) {
	var buf countingFlusher
	w := rle.NewWriter(&buf)

	_, err := w.Write([]byte{0x41, 0x41})
	require.NoError(t, err)
	require.NoError(t, w.Flush())
	assert.Equal(t, []byte{0x02, 0x41}, buf.Bytes(), "flush should emit the pending run")
	assert.Equal(t, 1, buf.flushes)

	_, err = w.Write([]byte{0x41})
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.Equal(t, []byte{0x02, 0x41, 0x01, 0x41}, buf.Bytes())
	assert.Equal(t, 2, buf.flushes)

	decoded, err := rle.Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []byte{0x41, 0x41, 0x41}, decoded)
}

func TestWriter__FlushKeepsRuns(t *testing.T) {
	var buf countingFlusher
	w := rle.NewWriter(&buf, rle.WithFlushPolicy(rle.KeepRuns))

	_, err := w.Write([]byte{0x41, 0x41})
	require.NoError(t, err)
	require.NoError(t, w.Flush())
	assert.Empty(t, buf.Bytes(), "keep policy must not emit the pending run")
	assert.Equal(t, 1, buf.flushes)

	_, err = w.Write([]byte{0x41})
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.Equal(t, []byte{0x03, 0x41}, buf.Bytes())
}

func TestWriter__WriteAfterClose(t *testing.T) {
	w := rle.NewWriter(io.Discard)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "second Close should be a no-op")

	_, err := w.Write([]byte{1})
	assert.ErrorIs(t, err, rle.ErrClosed)
	assert.ErrorIs(t, w.Flush(), rle.ErrClosed)
}

type failingWriter struct {
	err error
}

func (f failingWriter) Write(p []byte) (int, error) {
	return 0, f.err
}

func TestWriter__DownstreamErrorIsSticky(t *testing.T) {
	diskFull := errors.New("disk full")
	w := rle.NewWriter(failingWriter{diskFull})

	// The first run stays pending, so nothing is written yet.
	_, err := w.Write([]byte{1, 1})
	require.NoError(t, err)

	_, err = w.Write([]byte{2})
	assert.Same(t, diskFull, err)
	_, err = w.Write([]byte{3})
	assert.Same(t, diskFull, err)
	assert.Same(t, diskFull, w.Close())
}

func TestWriter__Reset(t *testing.T) {
	var first, second bytes.Buffer
	w := rle.NewWriter(&first)
	_, _ = w.Write([]byte{7, 7})
	require.NoError(t, w.Close())

	w.Reset(&second)
	_, err := w.Write([]byte{8})
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.Equal(t, []byte{2, 7}, first.Bytes())
	assert.Equal(t, []byte{1, 8}, second.Bytes())
}

func TestReader__ZeroCount(t *testing.T) {
	r := rle.NewReader(bytes.NewReader([]byte{0x02, 0x41, 0x00, 0x41}))

	out, err := io.ReadAll(r)
	require.Error(t, err)
	assert.ErrorIs(t, err, rle.ErrZeroCount)
	assert.ErrorIs(t, err, rle.ErrCorrupt)
	assert.NotErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, []byte{0x41, 0x41}, out)
}

func TestReader__MissingValueByte(t *testing.T) {
	r := rle.NewReader(bytes.NewReader([]byte{0x01, 0x41, 0x03}))

	out, err := io.ReadAll(r)
	require.Error(t, err, "a count byte without a value must not look like a clean end")
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.ErrorIs(t, err, rle.ErrCorrupt)
	assert.NotErrorIs(t, err, rle.ErrZeroCount)
	assert.Equal(t, []byte{0x41}, out)

	// The failure is sticky.
	_, err = r.ReadByte()
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReader__CleanEOF(t *testing.T) {
	r := rle.NewReader(bytes.NewReader(nil))
	n, err := r.Read(make([]byte, 16))
	assert.Equal(t, 0, n)
	assert.Equal(t, io.EOF, err)
}

func TestReader__ZeroLengthRead(t *testing.T) {
	r := rle.NewReader(bytes.NewReader([]byte{0x02, 0x41}))
	n, err := r.Read(nil)
	assert.Equal(t, 0, n)
	assert.NoError(t, err)

	// Still true once the input is exhausted.
	_, err = io.ReadAll(r)
	require.NoError(t, err)
	n, err = r.Read([]byte{})
	assert.Equal(t, 0, n)
	assert.NoError(t, err)
}

func TestReader__ShortReadAtEnd(t *testing.T) {
	r := rle.NewReader(bytes.NewReader([]byte{0x03, 0x41}))

	buf := make([]byte, 10)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []byte{0x41, 0x41, 0x41}, buf[:n])

	n, err = r.Read(buf)
	assert.Equal(t, 0, n)
	assert.Equal(t, io.EOF, err)
}

func TestReader__RunSpansReads(t *testing.T) {
	r := rle.NewReader(bytes.NewReader([]byte{0x05, 0x7a, 0x01, 0x10}))

	buf := make([]byte, 2)
	var got []byte
	for {
		n, err := r.Read(buf)
		got = append(got, buf[:n]...)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}
	assert.Equal(t, []byte{0x7a, 0x7a, 0x7a, 0x7a, 0x7a, 0x10}, got)
}

func TestReader__UnderlyingErrorUnchanged(t *testing.T) {
	broken := errors.New("broken pipe")
	r := rle.NewReader(io.MultiReader(bytes.NewReader([]byte{0x01}), errReader{broken}))

	_, err := r.ReadByte()
	assert.Same(t, broken, err)
}

type errReader struct {
	err error
}

func (e errReader) Read(p []byte) (int, error) {
	return 0, e.err
}

func TestRoundTrip__CompletelyRandom(t *testing.T) {
	original := make([]byte, 1852)
	_, err := rand.Read(original)
	require.NoError(t, err)
	runRoundTrip(t, original)
}

func TestRoundTrip__EntirelyNulls(t *testing.T) {
	runRoundTrip(t, make([]byte, 100000))
}

func TestRoundTrip__Empty(t *testing.T) {
	runRoundTrip(t, []byte{})
}

func TestParseFlushPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    rle.FlushPolicy
		wantErr bool
	}{
		{"", rle.SplitRuns, false},
		{"split", rle.SplitRuns, false},
		{"keep", rle.KeepRuns, false},
		{"sometimes", rle.SplitRuns, true},
	}
	for _, tt := range tests {
		got, err := rle.ParseFlushPolicy(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
		if tt.in != "" {
			assert.Equal(t, tt.in, got.String())
		}
	}
}

////////////////////////////////////////////////////////////////////////////////
// Helper functions

func runRoundTrip(t *testing.T, original []byte) {
	t.Helper()

	var encoded bytes.Buffer
	w := rle.NewWriter(&encoded)
	// Write in uneven chunks so runs straddle Write calls.
	for rest := original; len(rest) > 0; {
		n := min(len(rest), 97)
		_, err := w.Write(rest[:n])
		require.NoError(t, err)
		rest = rest[n:]
	}
	require.NoError(t, w.Close())
	t.Logf("encoded %d to %d", len(original), encoded.Len())

	decoded, err := io.ReadAll(rle.NewReader(&encoded))
	require.NoError(t, err)
	assert.True(t, bytes.Equal(original, decoded), "decoded data doesn't match original data")
}

func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
