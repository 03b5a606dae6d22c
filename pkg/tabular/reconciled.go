package tabular

import (
	"strconv"

	"github.com/eastgenomics/vepdiff/pkg/errors"
	"github.com/eastgenomics/vepdiff/pkg/reconcile"
	"github.com/eastgenomics/vepdiff/pkg/variant"
)

// reconciledHeader extends the mismatch header with the validator columns.
func reconciledHeader(versionOld, versionNew string) []string {
	return append(mismatchHeader(versionOld, versionNew),
		"HGVSc_validator", "HGVSp_validator", "validator_answered")
}

// reconciledRecord renders one row in reconciled column order.
func reconciledRecord(row reconcile.ReconciledRow) []string {
	return []string{
		row.Key.Chrom, strconv.Itoa(row.Key.Pos), row.Key.Ref, row.Key.Alt, row.Transcript,
		row.ConsequenceOld, row.HGVScOld, row.HGVSpOld,
		row.ConsequenceNew, row.HGVScNew, row.HGVSpNew,
		row.HGVScVal, row.HGVSpVal, formatBool(true, row.HasOracle),
	}
}

// WriteReconciled writes the reconciled comparison table. Rows without a
// validator answer are present with empty validator columns and
// validator_answered=False, so coverage gaps stay visible.
func WriteReconciled(path string, rows []reconcile.ReconciledRow, versionOld, versionNew string) error {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, reconciledRecord(row))
	}
	return writeTSV(path, reconciledHeader(versionOld, versionNew), records)
}

// ReadReconciled reads a reconciled table back, recovering version labels
// from the header.
func ReadReconciled(path string) (rows []reconcile.ReconciledRow, versionOld, versionNew string, err error) {
	records, err := readTSV(path, len(reconciledHeader("", "")))
	if err != nil {
		return nil, "", "", err
	}
	if len(records) == 0 {
		return nil, "", "", errors.NewParseError("tsv", path, 0, "missing header row", nil)
	}

	header := records[0]
	versionOld, versionNew, err = versionsFromHeader(path, header)
	if err != nil {
		return nil, "", "", err
	}

	rows = make([]reconcile.ReconciledRow, 0, len(records)-1)
	for i, record := range records[1:] {
		pos, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, "", "", errors.NewParseError("tsv", path, i+2, "position is not an integer", err)
		}
		rows = append(rows, reconcile.ReconciledRow{
			MismatchRow: variant.MismatchRow{
				Key:            variant.Key{Chrom: record[0], Pos: pos, Ref: record[2], Alt: record[3]},
				Transcript:     record[4],
				ConsequenceOld: record[5],
				HGVScOld:       record[6],
				HGVSpOld:       record[7],
				ConsequenceNew: record[8],
				HGVScNew:       record[9],
				HGVSpNew:       record[10],
			},
			HGVScVal:  record[11],
			HGVSpVal:  record[12],
			HasOracle: record[13] == "True",
		})
	}
	return rows, versionOld, versionNew, nil
}

// versionsFromHeader recovers the version labels embedded in the
// Consequence_<version> columns.
func versionsFromHeader(path string, header []string) (string, string, error) {
	const prefix = "Consequence_"
	if len(header) < 9 ||
		len(header[5]) <= len(prefix) || header[5][:len(prefix)] != prefix ||
		len(header[8]) <= len(prefix) || header[8][:len(prefix)] != prefix {
		return "", "", errors.NewParseError("tsv", path, 1,
			"header does not carry Consequence_<version> columns", nil)
	}
	return header[5][len(prefix):], header[8][len(prefix):], nil
}
