// Package tabular reads and writes the pipeline's tab-separated artifacts:
// the headerless annotation inputs, the mismatch table, the reconciled
// table, and the classification outputs. Input contract violations are
// fatal at load time so a run aborts before any network work; downstream
// joins on silently wrong data would be worse than a crash.
package tabular

import (
	"encoding/csv"
	"os"

	"github.com/eastgenomics/vepdiff/pkg/constants"
	"github.com/eastgenomics/vepdiff/pkg/errors"
)

// writeTSV writes a header plus rows to path in one pass.
func writeTSV(path string, header []string, rows [][]string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, constants.FilePermissions)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = '\t'

	if header != nil {
		if err := w.Write(header); err != nil {
			return errors.WrapIO("write", path, err)
		}
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return errors.WrapIO("write", path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return f.Close()
}

// readTSV reads all records from path, enforcing a fixed field count when
// fields > 0.
func readTSV(path string, fields int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	if fields > 0 {
		r.FieldsPerRecord = fields
	}

	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.WrapParse("tsv", path, err)
	}
	return records, nil
}

// formatBool renders a flag the way the downstream consumers expect:
// "True"/"False", or "NA" when the flag was not evaluated.
func formatBool(evaluated, value bool) string {
	if !evaluated {
		return "NA"
	}
	if value {
		return "True"
	}
	return "False"
}
