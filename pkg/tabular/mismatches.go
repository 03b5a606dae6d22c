package tabular

import (
	"strconv"

	"github.com/eastgenomics/vepdiff/pkg/errors"
	"github.com/eastgenomics/vepdiff/pkg/variant"
)

// mismatchHeader builds the header for the mismatch table. Version labels
// are embedded in the column names so the file is self-describing.
func mismatchHeader(versionOld, versionNew string) []string {
	return []string{
		"CHROM", "POS", "REF", "ALT", "Feature",
		"Consequence_" + versionOld, "HGVSc_" + versionOld, "HGVSp_" + versionOld,
		"Consequence_" + versionNew, "HGVSc_" + versionNew, "HGVSp_" + versionNew,
	}
}

// WriteMismatches writes the mismatch table with a header row.
func WriteMismatches(path string, rows []variant.MismatchRow, versionOld, versionNew string) error {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			row.Key.Chrom, strconv.Itoa(row.Key.Pos), row.Key.Ref, row.Key.Alt, row.Transcript,
			row.ConsequenceOld, row.HGVScOld, row.HGVSpOld,
			row.ConsequenceNew, row.HGVScNew, row.HGVSpNew,
		})
	}
	return writeTSV(path, mismatchHeader(versionOld, versionNew), records)
}

// ReadMismatches reads a mismatch table back, recovering the version labels
// from the header.
func ReadMismatches(path string) (rows []variant.MismatchRow, versionOld, versionNew string, err error) {
	records, err := readTSV(path, len(mismatchHeader("", "")))
	if err != nil {
		return nil, "", "", err
	}
	if len(records) == 0 {
		return nil, "", "", errors.NewParseError("tsv", path, 0, "missing header row", nil)
	}

	versionOld, versionNew, err = versionsFromHeader(path, records[0])
	if err != nil {
		return nil, "", "", err
	}

	rows = make([]variant.MismatchRow, 0, len(records)-1)
	for i, record := range records[1:] {
		pos, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, "", "", errors.NewParseError("tsv", path, i+2, "position is not an integer", err)
		}
		rows = append(rows, variant.MismatchRow{
			Key:            variant.Key{Chrom: record[0], Pos: pos, Ref: record[2], Alt: record[3]},
			Transcript:     record[4],
			ConsequenceOld: record[5],
			HGVScOld:       record[6],
			HGVSpOld:       record[7],
			ConsequenceNew: record[8],
			HGVScNew:       record[9],
			HGVSpNew:       record[10],
		})
	}
	return rows, versionOld, versionNew, nil
}
