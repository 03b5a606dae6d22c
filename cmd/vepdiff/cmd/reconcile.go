package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/eastgenomics/vepdiff/pkg/logging"
	"github.com/eastgenomics/vepdiff/pkg/reconcile"
	"github.com/eastgenomics/vepdiff/pkg/tabular"
	"github.com/eastgenomics/vepdiff/pkg/validator"
)

var reconcileFlags struct {
	mismatches string
	resultsDir string
	assay      string
	outputDir  string
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Merge validator answers onto the mismatch table",
	Long: `Gather all validator chunk outputs for an assay and left-join them onto
the mismatch table by variant and transcript.

Mismatch rows without a validator answer stay in the output with empty
validator columns, so coverage gaps are visible downstream. The validator's
protein notation is normalized to the annotator's convention ("p.?" to ".",
parentheses stripped, "=" to "%3D") before writing.`,
	RunE: runReconcile,
}

func init() {
	rootCmd.AddCommand(reconcileCmd)

	reconcileCmd.Flags().StringVarP(&reconcileFlags.mismatches, "mismatches", "i", "", "mismatch table from 'vepdiff diff'")
	reconcileCmd.Flags().StringVar(&reconcileFlags.resultsDir, "results-dir", ".", "directory holding validator chunk outputs")
	reconcileCmd.Flags().StringVarP(&reconcileFlags.assay, "assay", "a", "", "assay name used in chunk filenames")
	reconcileCmd.Flags().StringVarP(&reconcileFlags.outputDir, "output-dir", "o", ".", "directory for output files")

	_ = reconcileCmd.MarkFlagRequired("mismatches")
	_ = reconcileCmd.MarkFlagRequired("assay")
}

func runReconcile(_ *cobra.Command, _ []string) error {
	mismatches, versionOld, versionNew, err := tabular.ReadMismatches(reconcileFlags.mismatches)
	if err != nil {
		return err
	}

	results, err := validator.GatherChunks(reconcileFlags.resultsDir, reconcileFlags.assay)
	if err != nil {
		return err
	}

	rows := reconcile.Reconcile(mismatches, results)

	outPath := filepath.Join(reconcileFlags.outputDir, "merged_validator_mismatches.tsv")
	if err := tabular.WriteReconciled(outPath, rows, versionOld, versionNew); err != nil {
		return err
	}

	logging.Info().
		Int("rows", len(rows)).
		Int("validator_results", len(results)).
		Str("file", outPath).
		Msg("reconciled table written")
	return nil
}
