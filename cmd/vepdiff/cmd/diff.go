package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/eastgenomics/vepdiff/pkg/differ"
	"github.com/eastgenomics/vepdiff/pkg/errors"
	"github.com/eastgenomics/vepdiff/pkg/logging"
	"github.com/eastgenomics/vepdiff/pkg/tabular"
	"github.com/eastgenomics/vepdiff/pkg/validator"
	"github.com/eastgenomics/vepdiff/pkg/variant"
)

var diffFlags struct {
	directory  string
	oldFile    string
	newFile    string
	oldVersion string
	newVersion string
	outputDir  string
}

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Find annotation mismatches between two VEP versions",
	Long: `Diff two annotation runs and write every variant/transcript pair where
consequence, HGVSc, or HGVSp disagree.

Either point --directory at a folder of per-sample exports (pairs are
discovered by sample ID and VEP version in the filename), or pass a single
pair of files with --old and --new.

Outputs in the output directory:
  any_mismatches.tsv       one row per disputed pair, deduplicated across samples
  work_items.tsv           one row per distinct variant with its transcripts
  unique_variants_<i>.txt  chunked exports for the validator batch UI
  unique_transcripts_<i>.txt`,
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)

	diffCmd.Flags().StringVarP(&diffFlags.directory, "directory", "d", "", "directory of per-sample annotation exports")
	diffCmd.Flags().StringVar(&diffFlags.oldFile, "old", "", "annotation export from the old version")
	diffCmd.Flags().StringVar(&diffFlags.newFile, "new", "", "annotation export from the new version")
	diffCmd.Flags().StringVar(&diffFlags.oldVersion, "old-version", "", "old VEP version label")
	diffCmd.Flags().StringVar(&diffFlags.newVersion, "new-version", "", "new VEP version label")
	diffCmd.Flags().StringVarP(&diffFlags.outputDir, "output-dir", "o", ".", "directory for output files")

	_ = diffCmd.MarkFlagRequired("old-version")
	_ = diffCmd.MarkFlagRequired("new-version")
}

func runDiff(cmd *cobra.Command, _ []string) error {
	rows, err := collectMismatches()
	if err != nil {
		return err
	}
	rows = differ.Dedupe(rows)

	outPath := filepath.Join(diffFlags.outputDir, "any_mismatches.tsv")
	if err := tabular.WriteMismatches(outPath, rows, diffFlags.oldVersion, diffFlags.newVersion); err != nil {
		return err
	}
	logging.Info().
		Int("mismatches", len(rows)).
		Str("file", outPath).
		Msg("mismatch table written")

	if err := tabular.WriteVariantsChunked(
		filepath.Join(diffFlags.outputDir, "unique_variants"),
		differ.UniqueVariants(rows), 0); err != nil {
		return err
	}
	if err := tabular.WriteTranscriptsChunked(
		filepath.Join(diffFlags.outputDir, "unique_transcripts"),
		differ.UniqueTranscripts(rows), 0); err != nil {
		return err
	}

	items := validator.BuildWorkItems(rows)
	itemsPath := filepath.Join(diffFlags.outputDir, "work_items.tsv")
	if err := validator.WriteWorkItems(itemsPath, items); err != nil {
		return err
	}
	logging.Info().
		Int("work_items", len(items)).
		Str("file", itemsPath).
		Msg("work items written")

	return nil
}

// collectMismatches runs the differ over either the discovered sample pairs
// or the single pair given on the command line.
func collectMismatches() ([]variant.MismatchRow, error) {
	d := differ.New()

	if diffFlags.directory != "" {
		pairs, err := differ.SamplePairs(diffFlags.directory)
		if err != nil {
			return nil, err
		}
		if len(pairs) == 0 {
			return nil, errors.NewValidationError("directory", diffFlags.directory,
				"no paired sample files found")
		}

		all := []variant.MismatchRow{}
		for _, pair := range pairs {
			rows, err := diffPair(d,
				filepath.Join(diffFlags.directory, pair.OldPath),
				filepath.Join(diffFlags.directory, pair.NewPath))
			if err != nil {
				return nil, err
			}
			logging.Debug().
				Str("sample", pair.SampleID).
				Int("mismatches", len(rows)).
				Msg("sample compared")
			all = append(all, rows...)
		}
		return all, nil
	}

	if diffFlags.oldFile == "" || diffFlags.newFile == "" {
		return nil, errors.NewValidationError("old/new", nil,
			"either --directory or both --old and --new are required")
	}
	return diffPair(d, diffFlags.oldFile, diffFlags.newFile)
}

func diffPair(d differ.Differ, oldPath, newPath string) ([]variant.MismatchRow, error) {
	oldRecords, err := tabular.ReadAnnotations(oldPath, diffFlags.oldVersion)
	if err != nil {
		return nil, err
	}
	newRecords, err := tabular.ReadAnnotations(newPath, diffFlags.newVersion)
	if err != nil {
		return nil, err
	}
	return d.Mismatches(oldRecords, newRecords), nil
}
