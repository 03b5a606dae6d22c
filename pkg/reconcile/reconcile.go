// Package reconcile merges validator answers back onto the mismatch table
// and normalizes the validator's protein nomenclature to the annotator's
// convention so the two are directly comparable.
package reconcile

import (
	"sort"
	"strings"

	"github.com/eastgenomics/vepdiff/pkg/logging"
	"github.com/eastgenomics/vepdiff/pkg/validator"
	"github.com/eastgenomics/vepdiff/pkg/variant"
)

// ReconciledRow is a mismatch row joined with its validator answer.
// Constructed once here and immutable afterwards.
type ReconciledRow struct {
	variant.MismatchRow

	// HasOracle is false when the validator gave no answer for this pair.
	// Such rows stay in the output so coverage gaps are visible, but they
	// are excluded from mismatch and transition computation downstream.
	HasOracle bool
	HGVScVal  string
	HGVSpVal  string
}

// Reconcile left-joins mismatch rows with validator results on
// {variant key, transcript}. Rows without an answer are retained with
// HasOracle=false. The validator's protein nomenclature is normalized; the
// transcript-level value is used as-is.
func Reconcile(mismatches []variant.MismatchRow, results []validator.Result) []ReconciledRow {
	byKey := make(map[variant.RecordKey]validator.Result, len(results))
	for _, result := range results {
		byKey[variant.RecordKey{Key: result.Key, Transcript: result.Transcript}] = result
	}

	rows := make([]ReconciledRow, 0, len(mismatches))
	unanswered := 0
	for _, mismatch := range mismatches {
		row := ReconciledRow{MismatchRow: mismatch}
		if result, exists := byKey[mismatch.RecordKey()]; exists {
			row.HasOracle = true
			row.HGVScVal = result.HGVSc
			row.HGVSpVal = NormalizeProtein(result.HGVSp)
		} else {
			unanswered++
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].MismatchRow.Less(rows[j].MismatchRow)
	})

	if unanswered > 0 {
		logging.Warn().
			Int("unanswered", unanswered).
			Int("total", len(rows)).
			Msg("mismatch rows without a validator answer")
	}

	return rows
}

// NormalizeProtein rewrites the validator's protein notation to the
// annotator's convention:
//   - a value ending in the "p.?" no-protein-change placeholder becomes "."
//   - enclosing parentheses are stripped
//   - "=" (no amino-acid change) becomes its percent-encoded form "%3D"
func NormalizeProtein(hgvsp string) string {
	if strings.HasSuffix(hgvsp, "p.?") {
		return "."
	}
	normalized := strings.NewReplacer("(", "", ")", "").Replace(hgvsp)
	normalized = strings.ReplaceAll(normalized, "=", "%3D")
	return normalized
}
