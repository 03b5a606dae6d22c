package tabular

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/eastgenomics/vepdiff/pkg/classify"
	"github.com/eastgenomics/vepdiff/pkg/reconcile"
)

// WriteCounts writes the aggregate summary table {Mismatch_Type, Count}.
func WriteCounts(path string, counts []classify.CategoryCount) error {
	records := make([][]string, 0, len(counts))
	for _, c := range counts {
		records = append(records, []string{c.Category, strconv.Itoa(c.Count)})
	}
	return writeTSV(path, []string{"Mismatch_Type", "Count"}, records)
}

// WriteClassified writes the full row-level detail: the reconciled columns
// followed by every per-field flag. Unevaluated flags render as NA.
func WriteClassified(path string, report *classify.Report) error {
	header := reconciledHeader(report.VersionOld, report.VersionNew)
	for _, field := range classify.Fields {
		header = append(header,
			string(field)+"_"+report.VersionOld+"_mismatch",
			string(field)+"_"+report.VersionNew+"_mismatch",
			string(field)+"_both_mismatch",
			string(field)+"_newly_corrected",
			string(field)+"_newly_wrong",
		)
	}

	records := make([][]string, 0, len(report.Rows))
	for _, rc := range report.Rows {
		record := reconciledRecord(rc.Row)
		for _, field := range classify.Fields {
			flags := rc.Flags(field)
			record = append(record,
				formatBool(flags.Evaluated, flags.OldMismatch),
				formatBool(flags.Evaluated, flags.NewMismatch),
				formatBool(flags.Evaluated, flags.BothMismatch),
				formatBool(flags.Evaluated, flags.NewlyCorrected),
				formatBool(flags.Evaluated, flags.NewlyWrong),
			)
		}
		records = append(records, record)
	}
	return writeTSV(path, header, records)
}

// WriteCategoryDetails writes one detail file per field and transition
// category into dir: hgvsc_newly_wrong.tsv, hgvsp_newly_wrong.tsv,
// hgvsc_newly_corrected.tsv, hgvsp_newly_corrected.tsv.
func WriteCategoryDetails(dir string, report *classify.Report) error {
	write := func(name string, rows []reconcile.ReconciledRow) error {
		records := make([][]string, 0, len(rows))
		for _, row := range rows {
			records = append(records, reconciledRecord(row))
		}
		path := filepath.Join(dir, name)
		return writeTSV(path, reconciledHeader(report.VersionOld, report.VersionNew), records)
	}

	for _, field := range classify.Fields {
		lower := strings.ToLower(string(field))
		if err := write(lower+"_newly_wrong.tsv", report.NewlyWrong(field)); err != nil {
			return err
		}
		if err := write(lower+"_newly_corrected.tsv", report.NewlyCorrected(field)); err != nil {
			return err
		}
	}
	return nil
}
