// Package cstream provides transparent compression and decompression for
// sequential byte streams.
//
// A caller reads or writes plain bytes; cstream chains the right filter in
// between, so the underlying data may be gzip, xz, zstd, lz4, brotli or
// snappy compressed without the caller knowing or caring.
//
// # Reading
//
// On the read side the format is detected automatically by sniffing the
// leading magic bytes of the source. Nothing is consumed during detection,
// so the selected filter sees the original byte sequence from its start:
//
//	r, err := cstream.OpenReader("data.txt.gz")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	data, _ := io.ReadAll(r)
//
// Plain (uncompressed) sources pass through unchanged.
//
// # Writing
//
// On the write side the codec is chosen from the filename suffix (.gz, .xz,
// .zst, .lz4, .br, .sz) or given explicitly:
//
//	w, err := cstream.OpenWriter("out.txt.xz")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	w.Write([]byte("Hello, world!\n"))
//	w.Close() // flushes and writes the container trailer
//
// # Filters
//
// ReadFilter and WriteFilter are the building blocks underneath the Reader
// and Writer facades. Each filter owns one live codec session plus fixed
// size buffers with explicit cursors. Filters must not be copied; a live
// filter, including any buffered but unconsumed bytes, is moved to a fresh
// instance with Transfer.
//
// All types in this package are single-goroutine: one goroutine drives
// Init, Read/Write and Close over a given instance's lifetime. Distinct
// instances over distinct sources are independent.
//
// Seeking inside compressed data is not supported.
package cstream
