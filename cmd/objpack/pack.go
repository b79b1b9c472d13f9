package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/absfs/objpack"
)

var (
	packOutput string
	packMode   string
)

var packCmd = &cobra.Command{
	Use:   "pack [input]",
	Short: "Compress a file into an artifact",
	Long: `Compress a file (or stdin) into an artifact.

--mode is "auto" (smallest candidate, the default), "none", or a format
name such as gzip, zstd or bzip2+huffman. Run 'objpack formats' for the
full list.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPack,
}

func init() {
	packCmd.Flags().StringVarP(&packOutput, "output", "o", "-", "output artifact path (- for stdout)")
	packCmd.Flags().StringVarP(&packMode, "mode", "m", "auto", "none, auto, or a format name")
	rootCmd.AddCommand(packCmd)
}

func runPack(cmd *cobra.Command, args []string) (err error) {
	mode, err := objpack.ParseMode(packMode)
	if err != nil {
		return err
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	s, collector, err := newSerializer(logger)
	if err != nil {
		return err
	}
	defer summarize(collector)

	in, err := openInput(argOrStdin(args))
	if err != nil {
		return err
	}
	defer in.Close()

	raw, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	out, err := createOutput(packOutput)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	bw := bufio.NewWriter(out)
	f, err := s.WriteArtifact(bw, raw, mode)
	if err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}

	stats := s.GetStats()
	fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d -> %d bytes (%.1f%% saved)\n",
		f, len(raw), stats.BytesEncoded,
		objpack.GetCompressionPercentage(int64(len(raw)), stats.BytesEncoded))
	return nil
}

func argOrStdin(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}
