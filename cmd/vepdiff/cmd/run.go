package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/eastgenomics/vepdiff/pkg/classify"
	"github.com/eastgenomics/vepdiff/pkg/constants"
	"github.com/eastgenomics/vepdiff/pkg/differ"
	"github.com/eastgenomics/vepdiff/pkg/errors"
	"github.com/eastgenomics/vepdiff/pkg/logging"
	"github.com/eastgenomics/vepdiff/pkg/reconcile"
	"github.com/eastgenomics/vepdiff/pkg/tabular"
	"github.com/eastgenomics/vepdiff/pkg/validator"
	"github.com/eastgenomics/vepdiff/pkg/variant"
)

var runFlags struct {
	directory   string
	oldVersion  string
	newVersion  string
	genomeBuild string
	assay       string
	chunkSize   int
	outputDir   string
	baseURL     string
	format      string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: diff, query, reconcile, classify",
	Long: `Run all four stages in order against a directory of per-sample
annotation exports. Equivalent to running diff, query, reconcile, and
classify with shared settings; the query stage skips chunks whose output
already exists, so an interrupted run can be re-invoked safely.`,
	RunE: runPipeline,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.directory, "directory", "d", "", "directory of per-sample annotation exports")
	runCmd.Flags().StringVar(&runFlags.oldVersion, "old-version", "", "old VEP version label")
	runCmd.Flags().StringVar(&runFlags.newVersion, "new-version", "", "new VEP version label")
	runCmd.Flags().StringVarP(&runFlags.genomeBuild, "genome-build", "g", "", "genome build the samples were run in")
	runCmd.Flags().StringVarP(&runFlags.assay, "assay", "a", "", "assay name used in output filenames")
	runCmd.Flags().IntVarP(&runFlags.chunkSize, "chunk-size", "c", constants.DefaultQueryChunkSize, "work items per output chunk")
	runCmd.Flags().StringVarP(&runFlags.outputDir, "output-dir", "o", ".", "directory for output files")
	runCmd.Flags().StringVar(&runFlags.baseURL, "base-url", constants.DefaultValidatorURL, "validator base URL")
	runCmd.Flags().StringVar(&runFlags.format, "output", "", "summary format printed to stdout (table, json, yaml)")

	_ = runCmd.MarkFlagRequired("directory")
	_ = runCmd.MarkFlagRequired("old-version")
	_ = runCmd.MarkFlagRequired("new-version")
	_ = runCmd.MarkFlagRequired("genome-build")
	_ = runCmd.MarkFlagRequired("assay")
}

func runPipeline(cmd *cobra.Command, _ []string) error {
	// Stage 1: diff
	pairs, err := differ.SamplePairs(runFlags.directory)
	if err != nil {
		return err
	}
	if len(pairs) == 0 {
		return errors.NewValidationError("directory", runFlags.directory,
			"no paired sample files found")
	}

	d := differ.New()
	all := []variant.MismatchRow{}
	for _, pair := range pairs {
		oldRecords, err := tabular.ReadAnnotations(
			filepath.Join(runFlags.directory, pair.OldPath), runFlags.oldVersion)
		if err != nil {
			return err
		}
		newRecords, err := tabular.ReadAnnotations(
			filepath.Join(runFlags.directory, pair.NewPath), runFlags.newVersion)
		if err != nil {
			return err
		}
		all = append(all, d.Mismatches(oldRecords, newRecords)...)
	}
	rows := differ.Dedupe(all)

	mismatchPath := filepath.Join(runFlags.outputDir, "any_mismatches.tsv")
	if err := tabular.WriteMismatches(mismatchPath, rows, runFlags.oldVersion, runFlags.newVersion); err != nil {
		return err
	}
	logging.Info().
		Int("samples", len(pairs)).
		Int("mismatches", len(rows)).
		Msg("diff stage complete")

	// Stage 2: query
	client := validator.New(
		validator.WithBaseURL(runFlags.baseURL),
		validator.WithGenomeBuild(runFlags.genomeBuild),
	)
	items := validator.BuildWorkItems(rows)
	if _, err := client.QueryBatch(cmd.Context(), items, validator.BatchOptions{
		OutputDir: runFlags.outputDir,
		Assay:     runFlags.assay,
		ChunkSize: runFlags.chunkSize,
	}); err != nil {
		return err
	}

	// Stage 3: reconcile (gather re-reads every chunk, including ones from
	// earlier resumed invocations)
	results, err := validator.GatherChunks(runFlags.outputDir, runFlags.assay)
	if err != nil {
		return err
	}
	reconciled := reconcile.Reconcile(rows, results)

	reconciledPath := filepath.Join(runFlags.outputDir, "merged_validator_mismatches.tsv")
	if err := tabular.WriteReconciled(reconciledPath, reconciled, runFlags.oldVersion, runFlags.newVersion); err != nil {
		return err
	}
	logging.Info().
		Int("rows", len(reconciled)).
		Msg("reconcile stage complete")

	// Stage 4: classify
	report := classify.Classify(reconciled, runFlags.oldVersion, runFlags.newVersion)
	return writeClassification(report, runFlags.outputDir, runFlags.format)
}
