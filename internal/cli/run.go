package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/imgprep/subsample/internal/branding"
	"github.com/imgprep/subsample/internal/config"
	"github.com/imgprep/subsample/internal/dataset"
	"github.com/imgprep/subsample/internal/subsample"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	runDryRun     bool
	runNoManifest bool
	runJSON       bool
	runSummary    bool
)

var runCmd = &cobra.Command{
	Use:   "run [dataset-root]",
	Short: "Build the subsample directory",
	Long: `Clear <root>/<dest> and fill it with a random fraction of every class
directory under <root>/<source>. The dataset root defaults to the current
directory or the dataset_root config key.

A run manifest recording the selection is written to <root>/<dest>.manifest.yaml
and can be checked later with 'verify'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().Float64("fraction", config.DefaultFraction, "Fraction of each class to copy, in (0, 1]")
	runCmd.Flags().Int64("seed", config.DefaultSeed, "Random seed")
	addLayoutFlags(runCmd)
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Show the selection without copying anything")
	runCmd.Flags().BoolVar(&runNoManifest, "no-manifest", false, "Do not write the run manifest")
	runCmd.Flags().BoolVar(&runJSON, "json", false, "Print the result as JSON")
	runCmd.Flags().BoolVarP(&runSummary, "summary", "s", false, "Also print what was copied")
	rootCmd.AddCommand(runCmd)
}

// addLayoutFlags registers the flags shared by commands that locate a dataset.
func addLayoutFlags(cmd *cobra.Command) {
	cmd.Flags().String("source", dataset.DefaultSource, "Source directory name under the dataset root")
	cmd.Flags().String("dest", dataset.DefaultDest, "Destination directory name under the dataset root")
}

// resolveSettings binds the command's flags into Viper and returns the
// resolved settings. A positional dataset root wins over everything else.
func resolveSettings(cmd *cobra.Command, args []string) (config.Settings, error) {
	bindings := map[string]string{
		config.KeyFraction:  "fraction",
		config.KeySeed:      "seed",
		config.KeySourceDir: "source",
		config.KeyDestDir:   "dest",
	}
	for key, name := range bindings {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := viper.BindPFlag(key, flag); err != nil {
			return config.Settings{}, fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	if len(args) == 1 {
		viper.Set(config.KeyDatasetRoot, args[0])
	}

	s, err := config.Current()
	if err != nil {
		return config.Settings{}, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings(cmd, args)
	if err != nil {
		return err
	}

	logger.Debug("starting run",
		zap.String("root", s.DatasetRoot),
		zap.String("source", s.SourceDir),
		zap.String("dest", s.DestDir),
		zap.Float64("fraction", s.Fraction),
		zap.Int64("seed", s.Seed),
		zap.Bool("dry_run", runDryRun),
	)

	res, err := subsample.Run(fsys, subsample.Options{
		Layout:        s.Layout(),
		Fraction:      s.Fraction,
		Seed:          s.Seed,
		DryRun:        runDryRun,
		WriteManifest: !runNoManifest,
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if runJSON {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling result: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	if runDryRun {
		return printDryRun(cmd, res)
	}

	fmt.Fprintln(out, branding.CompletionMessage())
	if runSummary {
		fmt.Fprintf(out, "Copied %s %s (%s) from %d %s into %s (seed %d, fraction %g).\n",
			humanize.Comma(int64(res.Files)), plural(res.Files, "file", "files"),
			humanize.Bytes(uint64(res.Bytes)),
			len(res.Classes), plural(len(res.Classes), "class", "classes"),
			res.Dest, res.Seed, res.Fraction)
	}
	return nil
}

func printDryRun(cmd *cobra.Command, res *subsample.Result) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "CLASS\tTOTAL\tSELECTED")
	for _, c := range res.Classes {
		fmt.Fprintf(w, "%s\t%d\t%d\n", c.Name, c.Total, len(c.Selected))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Dry run: %s %s (%s) would be copied into %s.\n",
		humanize.Comma(int64(res.Files)), plural(res.Files, "file", "files"),
		humanize.Bytes(uint64(res.Bytes)), res.Dest)
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
