package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"github.com/absfs/objpack"
)

var probeCSV bool

var probeCmd = &cobra.Command{
	Use:   "probe [input]",
	Short: "Measure every candidate format on a file",
	Long: `Encode a file with every configured candidate into a byte counter
and report the artifact sizes. Nothing is written. The winner is marked
with '*'; ties go to the candidate listed first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProbe,
}

func init() {
	probeCmd.Flags().BoolVar(&probeCSV, "csv", false, "write results as CSV")
	rootCmd.AddCommand(probeCmd)
}

// probeRow is one line of probe output.
type probeRow struct {
	Format   string  `csv:"format"`
	Tag      string  `csv:"tag"`
	RawBytes int     `csv:"raw_bytes"`
	Size     int64   `csv:"artifact_bytes"`
	Ratio    float64 `csv:"ratio"`
	Selected bool    `csv:"selected"`
}

func runProbe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	in, err := openInput(argOrStdin(args))
	if err != nil {
		return err
	}
	defer in.Close()

	raw, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	sel, err := objpack.Select(raw, cfg.Candidates, cfg.ChainOptions()...)
	if err != nil {
		return err
	}

	rows := probeRows(raw, sel)
	if probeCSV {
		return gocsv.Marshal(rows, cmd.OutOrStdout())
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FORMAT\tTAG\tBYTES\tRATIO\t")
	for _, r := range rows {
		mark := ""
		if r.Selected {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.3f\t%s\n", r.Format, r.Tag, r.Size, r.Ratio, mark)
	}
	return tw.Flush()
}

func probeRows(raw []byte, sel objpack.Selection) []*probeRow {
	rows := make([]*probeRow, 0, len(sel.Trials))
	selected := false
	for _, t := range sel.Trials {
		// Only the first trial matching the winner is the selection.
		win := !selected && t.Format == sel.Format && t.Size == sel.Size
		selected = selected || win
		rows = append(rows, &probeRow{
			Format:   t.Format.String(),
			Tag:      fmt.Sprintf("0x%02x", t.Format.Tag()),
			RawBytes: len(raw),
			Size:     t.Size,
			Ratio:    objpack.GetCompressionRatio(int64(len(raw)), t.Size),
			Selected: win,
		})
	}
	return rows
}
