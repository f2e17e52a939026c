package cstream

import (
	"io"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// The functions in this file construct codec sessions: live engine state
// from the external compression libraries, treated as black boxes with a
// streaming feed/drain contract. Filters own sessions; nothing here does.
//
// A level <= 0 selects maximum compression effort for the algorithm.

// newCompressor creates a compressing codec session writing to w
func newCompressor(algo Algorithm, w io.Writer, level int) (io.WriteCloser, error) {
	switch algo {
	case AlgorithmGzip:
		return newGzipCompressor(w, level)
	case AlgorithmXZ:
		return newXZCompressor(w)
	case AlgorithmZstd:
		return newZstdCompressor(w, level)
	case AlgorithmLZ4:
		return newLZ4Compressor(w, level)
	case AlgorithmBrotli:
		return newBrotliCompressor(w, level)
	case AlgorithmSnappy:
		return newSnappyCompressor(w)
	default:
		return nil, ErrUnsupportedAlgorithm
	}
}

// newDecompressor creates a decompressing codec session reading from r.
// Constructors that parse the container header do so here, pulling the
// leading bytes from r; a rejected header surfaces as an error and no
// session is left behind.
func newDecompressor(algo Algorithm, r io.Reader) (io.ReadCloser, error) {
	switch algo {
	case AlgorithmGzip:
		return gzip.NewReader(r)
	case AlgorithmXZ:
		return newXZDecompressor(r)
	case AlgorithmZstd:
		return newZstdDecompressor(r)
	case AlgorithmLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case AlgorithmBrotli:
		return io.NopCloser(brotli.NewReader(r)), nil
	case AlgorithmSnappy:
		return io.NopCloser(snappy.NewReader(r)), nil
	default:
		return nil, ErrUnsupportedAlgorithm
	}
}

func newGzipCompressor(w io.Writer, level int) (io.WriteCloser, error) {
	if level <= 0 {
		level = gzip.BestCompression
	}
	return gzip.NewWriterLevel(w, level)
}

// xz has no level knob in this engine; the encoder defaults match a
// CRC64-checked single stream.
func newXZCompressor(w io.Writer) (io.WriteCloser, error) {
	return xz.NewWriter(w)
}

func newXZDecompressor(r io.Reader) (io.ReadCloser, error) {
	xr, err := xz.NewReader(r)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(xr), nil
}

// zstd sessions are pinned to a single goroutine; everything in this
// package is synchronous and caller-driven.
func newZstdCompressor(w io.Writer, level int) (io.WriteCloser, error) {
	if level <= 0 {
		level = 19
	}
	return zstd.NewWriter(w,
		zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)),
		zstd.WithEncoderConcurrency(1))
}

func newZstdDecompressor(r io.Reader) (io.ReadCloser, error) {
	zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	return zr.IOReadCloser(), nil
}

var lz4Levels = [...]lz4.CompressionLevel{
	lz4.Level1, lz4.Level2, lz4.Level3, lz4.Level4, lz4.Level5,
	lz4.Level6, lz4.Level7, lz4.Level8, lz4.Level9,
}

func newLZ4Compressor(w io.Writer, level int) (io.WriteCloser, error) {
	if level <= 0 || level > len(lz4Levels) {
		level = len(lz4Levels)
	}
	lw := lz4.NewWriter(w)
	if err := lw.Apply(lz4.CompressionLevelOption(lz4Levels[level-1])); err != nil {
		return nil, err
	}
	return lw, nil
}

func newBrotliCompressor(w io.Writer, level int) (io.WriteCloser, error) {
	if level <= 0 || level > brotli.BestCompression {
		level = brotli.BestCompression
	}
	return brotli.NewWriterLevel(w, level), nil
}

// Snappy has no levels; the framed format is used so output is streamable.
func newSnappyCompressor(w io.Writer) (io.WriteCloser, error) {
	return snappy.NewBufferedWriter(w), nil
}
