package main

import (
	"bufio"

	"github.com/spf13/cobra"
)

var unpackOutput string

var unpackCmd = &cobra.Command{
	Use:   "unpack [artifact]",
	Short: "Restore the original bytes of an artifact",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runUnpack,
}

func init() {
	unpackCmd.Flags().StringVarP(&unpackOutput, "output", "o", "-", "output path (- for stdout)")
	rootCmd.AddCommand(unpackCmd)
}

func runUnpack(cmd *cobra.Command, args []string) (err error) {
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

	raw, _, err := s.ReadArtifact(bufio.NewReader(in))
	if err != nil {
		return err
	}

	out, err := createOutput(unpackOutput)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	_, err = out.Write(raw)
	return err
}
