// Package main provides the cscat CLI tool, a zcat replacement that reads
// gzip, xz, zstd and lz4 compressed files (and plain ones) transparently,
// and can compress files in place.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
