package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eastgenomics/vepdiff/pkg/constants"
	"github.com/eastgenomics/vepdiff/pkg/logging"
	"github.com/eastgenomics/vepdiff/pkg/tabular"
	"github.com/eastgenomics/vepdiff/pkg/validator"
)

var queryFlags struct {
	mismatches  string
	workItems   string
	genomeBuild string
	assay       string
	chunkSize   int
	outputDir   string
	baseURL     string
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query the VariantValidator API for disputed variants",
	Long: `Query the VariantValidator LOVD endpoint once per distinct disputed
variant, at most one call per second, and write the answers one TSV per
chunk of work items.

Chunks whose output file already exists are skipped, so an interrupted
batch can simply be re-run. Per-variant server errors and exhausted
retries are logged and leave the variant unanswered; they never abort the
batch.`,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().StringVarP(&queryFlags.mismatches, "mismatches", "i", "", "mismatch table from 'vepdiff diff'")
	queryCmd.Flags().StringVar(&queryFlags.workItems, "work-items", "", "work-item file (alternative to --mismatches)")
	queryCmd.Flags().StringVarP(&queryFlags.genomeBuild, "genome-build", "g", "", "genome build the samples were run in (GRCh37 or GRCh38)")
	queryCmd.Flags().StringVarP(&queryFlags.assay, "assay", "a", "", "assay name used in output filenames")
	queryCmd.Flags().IntVarP(&queryFlags.chunkSize, "chunk-size", "c", constants.DefaultQueryChunkSize, "work items per output chunk")
	queryCmd.Flags().StringVarP(&queryFlags.outputDir, "output-dir", "o", ".", "directory for chunk output files")
	queryCmd.Flags().StringVar(&queryFlags.baseURL, "base-url", constants.DefaultValidatorURL, "validator base URL")

	_ = queryCmd.MarkFlagRequired("genome-build")
	_ = queryCmd.MarkFlagRequired("assay")

	_ = viper.BindPFlag("base_url", queryCmd.Flags().Lookup("base-url"))
}

func runQuery(cmd *cobra.Command, _ []string) error {
	items, err := loadWorkItems()
	if err != nil {
		return err
	}

	client := validator.New(
		validator.WithBaseURL(queryFlags.baseURL),
		validator.WithGenomeBuild(queryFlags.genomeBuild),
	)

	results, err := client.QueryBatch(cmd.Context(), items, validator.BatchOptions{
		OutputDir: queryFlags.outputDir,
		Assay:     queryFlags.assay,
		ChunkSize: queryFlags.chunkSize,
	})
	if err != nil {
		return err
	}

	logging.Info().
		Int("results", len(results)).
		Msg("validator batch complete")
	return nil
}

// loadWorkItems builds work items from the mismatch table, or reads a
// previously exported work-item file.
func loadWorkItems() ([]validator.WorkItem, error) {
	if queryFlags.workItems != "" {
		return validator.ReadWorkItems(queryFlags.workItems)
	}

	rows, _, _, err := tabular.ReadMismatches(queryFlags.mismatches)
	if err != nil {
		return nil, err
	}
	return validator.BuildWorkItems(rows), nil
}
