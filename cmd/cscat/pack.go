package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cstream/cstream"
)

var (
	packAlgorithm string
	packLevel     int
	packKeep      bool
)

var packCmd = &cobra.Command{
	Use:   "pack [files...]",
	Short: "Compress files, appending the codec's extension",
	Long: `pack compresses each file to a sibling carrying the codec's
extension (file.txt becomes file.txt.gz) and removes the original
unless --keep is given.

Examples:
  # gzip a log file to access.log.gz
  cscat pack access.log

  # xz at default (maximum) effort, keeping the original
  cscat pack --algorithm xz --keep notes.txt`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPack,
}

func init() {
	packCmd.Flags().StringVarP(&packAlgorithm, "algorithm", "a", "gzip", "compression algorithm (gzip, xz, zstd, lz4, brotli, snappy)")
	packCmd.Flags().IntVarP(&packLevel, "level", "l", 0, "compression level, 0 for maximum effort")
	packCmd.Flags().BoolVarP(&packKeep, "keep", "k", false, "keep the original file")

	rootCmd.AddCommand(packCmd)
}

func runPack(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	algo := cstream.Algorithm(packAlgorithm)
	if cstream.GetExtension(algo) == "" {
		return cstream.ErrUnsupportedAlgorithm
	}

	for _, name := range args {
		if err := packFile(name, algo); err != nil {
			return err
		}
	}
	return nil
}

func packFile(name string, algo cstream.Algorithm) error {
	in, err := os.Open(name)
	if err != nil {
		return err
	}
	defer in.Close()

	target := cstream.AddExtension(name, algo)
	out, err := os.Create(target)
	if err != nil {
		return err
	}

	w, err := cstream.NewWriterLevel(out, algo, packLevel)
	if err != nil {
		out.Close()
		os.Remove(target)
		return err
	}

	if _, err := io.Copy(w, in); err != nil {
		w.Close()
		out.Close()
		os.Remove(target)
		return err
	}
	if err := w.Close(); err != nil {
		out.Close()
		os.Remove(target)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	info, err := os.Stat(target)
	if err != nil {
		return err
	}
	logger.Info("packed",
		zap.String("file", name),
		zap.String("target", target),
		zap.Int64("raw", w.BytesWritten()),
		zap.Int64("compressed", info.Size()),
		zap.Float64("ratio", cstream.GetCompressionRatio(w.BytesWritten(), info.Size())))

	if packKeep {
		return nil
	}
	return os.Remove(name)
}
