package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/absfs/objpack"
)

var infoCmd = &cobra.Command{
	Use:   "info <artifact>...",
	Short: "Show the format of artifacts",
	Long: `Read only the tag byte of each artifact and print its format and
size on disk.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	var failed int
	for _, path := range args {
		line, err := describe(path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d artifacts unreadable", failed, len(args))
	}
	return nil
}

func describe(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	format, err := objpack.Inspect(f)
	if err != nil {
		return "", err
	}
	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s: %s (tag 0x%02x, %s)", path, format, format.Tag(), formatBytes(info.Size())), nil
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
