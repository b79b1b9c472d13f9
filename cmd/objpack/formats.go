package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/absfs/objpack"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List registered formats and their tags",
	Args:  cobra.NoArgs,
	RunE:  runFormats,
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}

func runFormats(cmd *cobra.Command, args []string) error {
	defaults := make(map[objpack.Format]bool)
	for _, f := range objpack.DefaultCandidates() {
		defaults[f] = true
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TAG\tFORMAT\tCODEC\tHUFFMAN PASS\tDEFAULT CANDIDATE")
	for _, f := range objpack.Formats() {
		fmt.Fprintf(tw, "0x%02x\t%s\t%s\t%t\t%t\n", f.Tag(), f, f.Codec, f.PostProcess, defaults[f])
	}
	return tw.Flush()
}
