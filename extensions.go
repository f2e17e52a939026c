package cstream

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Extension mapping
var extensionMap = map[Algorithm]string{
	AlgorithmGzip:   ".gz",
	AlgorithmXZ:     ".xz",
	AlgorithmZstd:   ".zst",
	AlgorithmLZ4:    ".lz4",
	AlgorithmBrotli: ".br",
	AlgorithmSnappy: ".sz",
}

// Reverse extension mapping (extension -> algorithm)
var reverseExtensionMap = map[string]Algorithm{
	".gz":     AlgorithmGzip,
	".gzip":   AlgorithmGzip,
	".xz":     AlgorithmXZ,
	".zst":    AlgorithmZstd,
	".zstd":   AlgorithmZstd,
	".lz4":    AlgorithmLZ4,
	".br":     AlgorithmBrotli,
	".sz":     AlgorithmSnappy,
	".snappy": AlgorithmSnappy,
}

// Magic bytes for compression format detection. Brotli and snappy-raw
// carry no reliable signature; those formats are selected by extension
// only. The snappy entry below matches the framed format.
var magicBytes = map[Algorithm][]byte{
	AlgorithmGzip:   {0x1f, 0x8b},
	AlgorithmXZ:     {0xfd, '7', 'z', 'X', 'Z'},
	AlgorithmZstd:   {0x28, 0xb5, 0x2f, 0xfd},
	AlgorithmLZ4:    {0x04, 0x22, 0x4d, 0x18},
	AlgorithmSnappy: {0xff, 0x06, 0x00, 0x00, 0x73, 0x4e, 0x61, 0x50},
}

// maxMagicLen is the longest signature in magicBytes; the sniffer never
// needs to peek further than this.
const maxMagicLen = 8

// GetExtension returns the file extension for an algorithm
func GetExtension(algo Algorithm) string {
	if ext, ok := extensionMap[algo]; ok {
		return ext
	}
	return ""
}

// DetectAlgorithmFromExtension detects the algorithm from a filename
// suffix. The mapping is the symmetric counterpart of magic-byte
// detection: a Writer opened as "x.gz" produces exactly what a Reader
// sniffing "x.gz" selects.
func DetectAlgorithmFromExtension(name string) (Algorithm, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	if algo, ok := reverseExtensionMap[ext]; ok {
		return algo, true
	}
	return AlgorithmNone, false
}

// AddExtension appends the compression extension for algo to a filename
func AddExtension(name string, algo Algorithm) string {
	ext := GetExtension(algo)
	if ext == "" {
		return name
	}
	return name + ext
}

// StripExtension removes a compression extension from a filename
func StripExtension(name string) (string, Algorithm, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	if algo, ok := reverseExtensionMap[ext]; ok {
		stripped := strings.TrimSuffix(name, ext)
		return stripped, algo, true
	}
	return name, AlgorithmNone, false
}

// HasCompressionExtension checks if a filename has a compression extension
func HasCompressionExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	_, ok := reverseExtensionMap[ext]
	return ok
}

// IsCompressed checks if data appears to be compressed based on magic bytes
func IsCompressed(data []byte) (Algorithm, bool) {
	for algo, magic := range magicBytes {
		if len(data) >= len(magic) && bytes.Equal(data[:len(magic)], magic) {
			return algo, true
		}
	}
	return AlgorithmNone, false
}
