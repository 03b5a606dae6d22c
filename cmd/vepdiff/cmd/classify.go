package cmd

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/eastgenomics/vepdiff/internal/cmd/output"
	"github.com/eastgenomics/vepdiff/pkg/classify"
	"github.com/eastgenomics/vepdiff/pkg/logging"
	"github.com/eastgenomics/vepdiff/pkg/tabular"
)

var classifyFlags struct {
	reconciled string
	outputDir  string
	format     string
}

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify mismatches against the validator answers",
	Long: `Compute, per nomenclature field and VEP version, whether each reconciled
row disagrees with the validator, and derive what changed between the two
versions: newly corrected, newly wrong, or wrong in both.

Rows without a validator answer for a field are excluded from that field's
counts; their truth value is undefined.

Outputs in the output directory:
  mismatch_counts.tsv          aggregate count per category
  report.yaml                  the same counts as a YAML artifact
  classified_mismatches.tsv    full row-level detail with all flags
  hgvsc_newly_wrong.tsv        per-category row detail
  hgvsp_newly_wrong.tsv
  hgvsc_newly_corrected.tsv
  hgvsp_newly_corrected.tsv`,
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().StringVarP(&classifyFlags.reconciled, "reconciled", "i", "", "reconciled table from 'vepdiff reconcile'")
	classifyCmd.Flags().StringVarP(&classifyFlags.outputDir, "output-dir", "o", ".", "directory for output files")
	classifyCmd.Flags().StringVar(&classifyFlags.format, "output", "", "summary format printed to stdout (table, json, yaml)")

	_ = classifyCmd.MarkFlagRequired("reconciled")
}

func runClassify(_ *cobra.Command, _ []string) error {
	rows, versionOld, versionNew, err := tabular.ReadReconciled(classifyFlags.reconciled)
	if err != nil {
		return err
	}

	report := classify.Classify(rows, versionOld, versionNew)
	if report.Skipped > 0 {
		logging.Warn().
			Int("rows", report.Skipped).
			Msg("rows without validator coverage excluded from counts")
	}

	return writeClassification(report, classifyFlags.outputDir, classifyFlags.format)
}

// writeClassification writes every classification artifact and prints the
// summary to stdout.
func writeClassification(report *classify.Report, dir, format string) error {
	counts := report.Counts()

	if err := tabular.WriteCounts(filepath.Join(dir, "mismatch_counts.tsv"), counts); err != nil {
		return err
	}
	if err := writeYAMLReport(filepath.Join(dir, "report.yaml"), counts); err != nil {
		return err
	}
	if err := tabular.WriteClassified(filepath.Join(dir, "classified_mismatches.tsv"), report); err != nil {
		return err
	}
	if err := tabular.WriteCategoryDetails(dir, report); err != nil {
		return err
	}

	outputFormat, err := output.ParseFormat(format)
	if err != nil {
		return err
	}
	formatter := output.NewFormatter(outputFormat)

	if outputFormat == output.FormatTable {
		data := output.Data{Headers: []string{"Mismatch_Type", "Count"}}
		for _, c := range counts {
			data.Rows = append(data.Rows, []string{c.Category, strconv.Itoa(c.Count)})
		}
		return formatter.Format(os.Stdout, data)
	}
	return formatter.Format(os.Stdout, counts)
}

// writeYAMLReport persists the summary counts as a YAML artifact.
func writeYAMLReport(path string, counts []classify.CategoryCount) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	formatter := &output.YAMLFormatter{}
	if err := formatter.Format(f, counts); err != nil {
		return err
	}
	return f.Close()
}
