package cstream

import (
	"bytes"
	"io"
)

// One-shot conveniences built on the filters.

// CompressBytes compresses data with algo at the given level. Level <= 0
// selects maximum effort.
func CompressBytes(data []byte, algo Algorithm, level int) ([]byte, error) {
	var buf bytes.Buffer

	filter := NewWriteFilterLevel(algo, level)
	if err := filter.Init(&buf); err != nil {
		return nil, err
	}

	if _, err := filter.Write(data); err != nil {
		filter.Close()
		return nil, err
	}
	if err := filter.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// DecompressBytes decompresses data with algo.
func DecompressBytes(data []byte, algo Algorithm) ([]byte, error) {
	filter := NewReadFilter(algo)
	if err := filter.Init(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	defer filter.Close()

	return io.ReadAll(filter)
}

// DetectCompressionAlgorithm detects the compression algorithm from the
// leading bytes of data.
func DetectCompressionAlgorithm(data []byte) (Algorithm, bool) {
	return IsCompressed(data)
}

// GetCompressionRatio calculates the compression ratio for given original
// and compressed sizes. Returns a value between 0 and 1, where lower is
// better: 0.5 means the compressed size is 50% of the original.
func GetCompressionRatio(originalSize, compressedSize int64) float64 {
	if originalSize == 0 {
		return 0
	}
	return float64(compressedSize) / float64(originalSize)
}

// GetCompressionPercentage calculates the percentage of space saved
// (0-100).
func GetCompressionPercentage(originalSize, compressedSize int64) float64 {
	if originalSize == 0 {
		return 0
	}
	return (1 - float64(compressedSize)/float64(originalSize)) * 100
}
