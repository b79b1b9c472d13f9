package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/absfs/objpack"
)

var (
	putMode   string
	getOutput string
)

var putCmd = &cobra.Command{
	Use:   "put <key> [input]",
	Short: "Store a file as an artifact under a key",
	Long: `Compress a file (or stdin) and store the artifact under key in the
store named by --store. The stored object is byte-for-byte what 'pack'
would write.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPut,
}

var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Restore the bytes stored under a key",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

var rmCmd = &cobra.Command{
	Use:   "rm <key>...",
	Short: "Delete artifacts from the store",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRm,
}

func init() {
	putCmd.Flags().StringVarP(&putMode, "mode", "m", "auto", "none, auto, or a format name")
	getCmd.Flags().StringVarP(&getOutput, "output", "o", "-", "output path (- for stdout)")
	rootCmd.AddCommand(putCmd, getCmd, rmCmd)
}

func runPut(cmd *cobra.Command, args []string) error {
	mode, err := objpack.ParseMode(putMode)
	if err != nil {
		return err
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	in, err := openInput(argOrStdin(args[1:]))
	if err != nil {
		return err
	}
	defer in.Close()

	raw, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	client, collector, err := newClient(cmd.Context(), logger)
	if err != nil {
		return err
	}
	defer client.Close()
	defer summarize(collector)

	f, err := client.SaveBytes(cmd.Context(), args[0], raw, mode)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s: stored %d bytes as %s\n", args[0], len(raw), f)
	return nil
}

func runGet(cmd *cobra.Command, args []string) (err error) {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	client, collector, err := newClient(cmd.Context(), logger)
	if err != nil {
		return err
	}
	defer client.Close()
	defer summarize(collector)

	raw, _, err := client.LoadBytes(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out, err := createOutput(getOutput)
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

func runRm(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	client, _, err := newClient(cmd.Context(), logger)
	if err != nil {
		return err
	}
	defer client.Close()

	for _, key := range args {
		if err := client.Delete(cmd.Context(), key); err != nil {
			return err
		}
	}
	return nil
}
