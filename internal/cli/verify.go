package cli

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/imgprep/subsample/internal/subsample"
	"github.com/spf13/cobra"
)

var verifyJSON bool

var verifyCmd = &cobra.Command{
	Use:   "verify [dataset-root]",
	Short: "Check a subsample directory against its run manifest",
	Long: `Compare <root>/<dest> with <root>/<dest>.manifest.yaml. Reports missing or
unexpected files and classes, and files whose size differs from the source.
Exits non-zero when any problem is found.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVerify,
}

func init() {
	addLayoutFlags(verifyCmd)
	verifyCmd.Flags().BoolVar(&verifyJSON, "json", false, "Print the report as JSON")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings(cmd, args)
	if err != nil {
		return err
	}

	report, err := subsample.Verify(fsys, s.Layout(), logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if verifyJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling report: %w", err)
		}
		fmt.Fprintln(out, string(data))
	} else {
		for _, p := range report.Problems {
			fmt.Fprintln(out, p.String())
		}
		if report.OK() {
			m := report.Manifest
			created := m.CreatedAt
			if t, err := m.Created(); err == nil {
				created = humanize.Time(t)
			}
			fmt.Fprintf(out, "%s matches manifest (run %s from %s, %s files, %s).\n",
				s.Layout().DestPath(), m.RunID, created, humanize.Comma(int64(m.Files)), humanize.Bytes(uint64(m.Bytes)))
		}
	}

	if !report.OK() {
		return fmt.Errorf("%d %s found in %s", len(report.Problems), plural(len(report.Problems), "problem", "problems"), s.Layout().DestPath())
	}
	return nil
}
