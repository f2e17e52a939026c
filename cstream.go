package cstream

import "errors"

// Algorithm represents a compression algorithm
type Algorithm string

const (
	AlgorithmGzip   Algorithm = "gzip"
	AlgorithmXZ     Algorithm = "xz"
	AlgorithmZstd   Algorithm = "zstd"
	AlgorithmLZ4    Algorithm = "lz4"
	AlgorithmBrotli Algorithm = "brotli"
	AlgorithmSnappy Algorithm = "snappy"

	// AlgorithmNone is the pass-through path: bytes are relayed unchanged.
	AlgorithmNone Algorithm = ""
)

// DefaultBufferSize is the capacity of a filter's input window, output
// buffer and write buffer unless overridden with NewReaderSize or
// NewWriteFilterSize.
const DefaultBufferSize = 32 * 1024

var (
	ErrUnsupportedAlgorithm = errors.New("cstream: unsupported compression algorithm")

	// ErrFilterClosed is returned by operations on a filter that is
	// closed, never initialized, or inert after a Transfer.
	ErrFilterClosed = errors.New("cstream: filter is closed")

	// ErrCorruptData is returned when the codec engine rejects the
	// compressed payload mid-stream, including truncation. It is
	// deliberately distinct from io.EOF so a damaged stream cannot be
	// mistaken for a complete one.
	ErrCorruptData = errors.New("cstream: corrupted or truncated compressed data")

	// ErrStreamClosed is returned by Read or Write on a closed Reader
	// or Writer facade.
	ErrStreamClosed = errors.New("cstream: stream is closed")
)
