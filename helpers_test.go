package cstream

import (
	"bytes"
	"strings"
	"testing"
)

func TestCompressDecompressBytes(t *testing.T) {
	testData := []byte("Hello, compressed world! This is a test of the one-shot helpers.")

	compressed, err := CompressBytes(testData, AlgorithmGzip, 0)
	if err != nil {
		t.Fatalf("Failed to compress: %v", err)
	}

	decompressed, err := DecompressBytes(compressed, AlgorithmGzip)
	if err != nil {
		t.Fatalf("Failed to decompress: %v", err)
	}
	if !bytes.Equal(decompressed, testData) {
		t.Fatalf("Round trip mismatch.\nExpected: %s\nGot: %s", testData, decompressed)
	}
}

func TestDetectCompressionAlgorithm(t *testing.T) {
	compressed, err := CompressBytes([]byte("detect me"), AlgorithmXZ, 0)
	if err != nil {
		t.Fatalf("Failed to compress: %v", err)
	}

	algo, ok := DetectCompressionAlgorithm(compressed)
	if !ok || algo != AlgorithmXZ {
		t.Fatalf("Expected (xz, true), got (%s, %v)", algo, ok)
	}

	algo, ok = DetectCompressionAlgorithm([]byte("uncompressed"))
	if ok || algo != AlgorithmNone {
		t.Fatalf("Expected (none, false), got (%s, %v)", algo, ok)
	}
}

func TestCompressionRatio(t *testing.T) {
	if ratio := GetCompressionRatio(1000, 250); ratio != 0.25 {
		t.Errorf("Expected ratio 0.25, got %f", ratio)
	}
	if ratio := GetCompressionRatio(0, 100); ratio != 0 {
		t.Errorf("Expected ratio 0 for empty original, got %f", ratio)
	}

	if pct := GetCompressionPercentage(1000, 250); pct != 75 {
		t.Errorf("Expected 75%% savings, got %f", pct)
	}
	if pct := GetCompressionPercentage(0, 0); pct != 0 {
		t.Errorf("Expected 0%% for empty original, got %f", pct)
	}
}

func TestHelpersCompressibleContentShrinks(t *testing.T) {
	testData := []byte(strings.Repeat("compressible ", 1000))

	for _, algo := range []Algorithm{AlgorithmGzip, AlgorithmXZ, AlgorithmZstd} {
		compressed, err := CompressBytes(testData, algo, 0)
		if err != nil {
			t.Fatalf("Failed to compress with %s: %v", algo, err)
		}
		if len(compressed) >= len(testData) {
			t.Errorf("%s: expected compression, got %d -> %d bytes", algo, len(testData), len(compressed))
		}
	}
}
