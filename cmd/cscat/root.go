package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cstream/cstream"
)

var (
	// Global flags.
	verbose bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cscat [files...]",
	Short: "Print compressed or plain files to standard output",
	Long: `cscat prints files to standard output, decompressing them
transparently. The format is detected from the leading bytes of each
file, so gzip, xz, zstd and lz4 content all work without flags, and
plain files pass through unchanged.

Reading from standard input is supported with "-" or no arguments.

Examples:
  # Print a gzip compressed file
  cscat access.log.gz

  # Concatenate mixed plain and compressed files
  cscat header.txt body.txt.xz

  # Decompress a stream from a pipe
  curl -s https://example.com/data.gz | cscat`,
	RunE: runCat,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	cobra.OnInitialize(func() {
		var err error
		if verbose {
			logger, err = zap.NewDevelopment()
		} else {
			logger = zap.NewNop()
		}
		if err != nil {
			logger = zap.NewNop()
		}
	})
}

func runCat(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	if len(args) == 0 {
		args = []string{"-"}
	}

	for _, name := range args {
		if err := catFile(name, cmd.OutOrStdout()); err != nil {
			return err
		}
	}
	return nil
}

func catFile(name string, out io.Writer) error {
	var r *cstream.Reader
	var err error

	if name == "-" {
		r, err = cstream.NewReader(os.Stdin)
	} else {
		r, err = cstream.OpenReader(name)
	}
	if err != nil {
		return err
	}
	defer r.Close()

	logger.Info("reading",
		zap.String("file", name),
		zap.String("algorithm", string(r.Algorithm())))

	if _, err := io.Copy(out, r); err != nil {
		return err
	}

	logger.Info("done",
		zap.String("file", name),
		zap.Int64("bytes", r.BytesRead()))
	return nil
}
