package cstream

import (
	"bytes"
	stdgzip "compress/gzip"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestWriteFilterOutputIsStandardGzip(t *testing.T) {
	original := []byte(strings.Repeat("Interoperability matters.\n", 100))

	var buf bytes.Buffer
	f := NewWriteFilter(AlgorithmGzip)
	if err := f.Init(&buf); err != nil {
		t.Fatalf("Failed to init filter: %v", err)
	}
	if _, err := f.Write(original); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Failed to close: %v", err)
	}

	// Decode with the standard library, an independent implementation.
	zr, err := stdgzip.NewReader(&buf)
	if err != nil {
		t.Fatalf("Standard gzip rejected our output: %v", err)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("Standard gzip failed to decode: %v", err)
	}
	if !bytes.Equal(data, original) {
		t.Fatal("Standard gzip decoded different content")
	}
}

// A small write buffer forces the automatic buffer-full flush path many
// times over.
func TestWriteFilterSmallBuffer(t *testing.T) {
	original := []byte(strings.Repeat("0123456789", 1000))

	var buf bytes.Buffer
	f := NewWriteFilterSize(AlgorithmGzip, 16)
	if err := f.Init(&buf); err != nil {
		t.Fatalf("Failed to init filter: %v", err)
	}

	// Byte-at-a-time writes exercise the triggering-byte handoff.
	for _, b := range original {
		if _, err := f.Write([]byte{b}); err != nil {
			t.Fatalf("Failed to write: %v", err)
		}
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Failed to close: %v", err)
	}

	data, err := DecompressBytes(buf.Bytes(), AlgorithmGzip)
	if err != nil {
		t.Fatalf("Failed to decompress: %v", err)
	}
	if !bytes.Equal(data, original) {
		t.Fatal("Content mismatch after byte-at-a-time writes")
	}
}

func TestWriteFilterCloseExactlyOnce(t *testing.T) {
	var buf bytes.Buffer
	f := NewWriteFilter(AlgorithmGzip)
	if err := f.Init(&buf); err != nil {
		t.Fatalf("Failed to init filter: %v", err)
	}
	if _, err := f.Write([]byte("trailer test")); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}

	if err := f.Close(); err != nil {
		t.Fatalf("First close: %v", err)
	}
	size := buf.Len()

	// A second close must not emit anything, trailer included.
	if err := f.Close(); err != nil {
		t.Fatalf("Second close: %v", err)
	}
	if buf.Len() != size {
		t.Fatalf("Second close wrote %d extra bytes", buf.Len()-size)
	}

	if _, err := f.Write([]byte("late")); err != ErrFilterClosed {
		t.Fatalf("Expected ErrFilterClosed after close, got %v", err)
	}

	// The output is complete and independently decodable.
	data, err := DecompressBytes(buf.Bytes(), AlgorithmGzip)
	if err != nil {
		t.Fatalf("Failed to decompress: %v", err)
	}
	if string(data) != "trailer test" {
		t.Fatalf("Expected %q, got %q", "trailer test", data)
	}
}

// shortWriter accepts at most limit bytes in total, then starts landing
// partial writes without reporting an error itself.
type shortWriter struct {
	limit   int
	written int
}

func (w *shortWriter) Write(p []byte) (int, error) {
	if w.written+len(p) > w.limit {
		n := w.limit - w.written
		if n < 0 {
			n = 0
		}
		w.written += n
		return n, nil
	}
	w.written += len(p)
	return len(p), nil
}

func TestWriteFilterShortWriteIsFatal(t *testing.T) {
	f := NewWriteFilter(AlgorithmGzip)
	if err := f.Init(&shortWriter{limit: 10}); err != nil {
		t.Fatalf("Failed to init filter: %v", err)
	}

	// The codec buffers internally, so the short write may only surface
	// at finish time; either way it must surface exactly as a failure.
	_, werr := f.Write([]byte(strings.Repeat("x", 100000)))
	cerr := f.Close()
	if werr == nil && cerr == nil {
		t.Fatal("Expected a short write to fail the stream")
	}
	for _, err := range []error{werr, cerr} {
		if err != nil && !errors.Is(err, io.ErrShortWrite) {
			t.Fatalf("Expected io.ErrShortWrite, got %v", err)
		}
	}
}

func TestWriteFilterTransferPendingBytes(t *testing.T) {
	var buf bytes.Buffer

	zb := NewWriteFilterSize(AlgorithmGzip, 64)
	if err := zb.Init(&buf); err != nil {
		t.Fatalf("Failed to init filter: %v", err)
	}

	// All three writes fit the buffer, so every byte is still pending
	// in filter storage when ownership moves.
	if _, err := zb.Write([]byte("aap ")); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}

	zb2 := zb.Transfer()
	if _, err := zb.Write([]byte("lost")); err != ErrFilterClosed {
		t.Fatalf("Expected ErrFilterClosed from old instance, got %v", err)
	}
	if err := zb.Close(); err != nil {
		t.Fatalf("Close of inert instance: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatal("Closing the inert instance must not emit a trailer")
	}

	if _, err := zb2.Write([]byte("noot ")); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}

	zb3 := zb2.Transfer()
	if _, err := zb3.Write([]byte("mies\n")); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}
	if err := zb3.Close(); err != nil {
		t.Fatalf("Failed to close: %v", err)
	}

	data, err := DecompressBytes(buf.Bytes(), AlgorithmGzip)
	if err != nil {
		t.Fatalf("Failed to decompress: %v", err)
	}
	if string(data) != "aap noot mies\n" {
		t.Fatalf("Expected %q, got %q", "aap noot mies\n", data)
	}
}

func TestWriteFilterReinit(t *testing.T) {
	var first, second bytes.Buffer

	f := NewWriteFilter(AlgorithmXZ)
	if err := f.Init(&first); err != nil {
		t.Fatalf("Failed to init filter: %v", err)
	}
	if _, err := f.Write([]byte("stream one")); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}

	// Re-init finishes the first stream and starts a new session.
	if err := f.Init(&second); err != nil {
		t.Fatalf("Failed to re-init filter: %v", err)
	}
	if _, err := f.Write([]byte("stream two")); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Failed to close: %v", err)
	}

	one, err := DecompressBytes(first.Bytes(), AlgorithmXZ)
	if err != nil {
		t.Fatalf("First stream not decodable: %v", err)
	}
	two, err := DecompressBytes(second.Bytes(), AlgorithmXZ)
	if err != nil {
		t.Fatalf("Second stream not decodable: %v", err)
	}
	if string(one) != "stream one" || string(two) != "stream two" {
		t.Fatalf("Got %q and %q", one, two)
	}
}

func TestWriteFilterCloseColdFilter(t *testing.T) {
	f := NewWriteFilter(AlgorithmZstd)
	if err := f.Close(); err != nil {
		t.Fatalf("Close of cold filter: %v", err)
	}
	if _, err := f.Write([]byte("x")); err != ErrFilterClosed {
		t.Fatalf("Expected ErrFilterClosed, got %v", err)
	}
}
