// Package classify computes, per nomenclature field and annotation version,
// whether each reconciled row disagrees with the validator, and derives the
// transition categories between the two versions: newly corrected, newly
// wrong, and persistently wrong.
package classify

import (
	"fmt"

	"github.com/eastgenomics/vepdiff/pkg/reconcile"
)

// Field identifies one of the two compared nomenclature fields.
type Field string

const (
	// FieldHGVSc is the transcript-level nomenclature field.
	FieldHGVSc Field = "HGVSc"
	// FieldHGVSp is the protein-level nomenclature field.
	FieldHGVSp Field = "HGVSp"
)

// Fields lists the compared fields in output order.
var Fields = []Field{FieldHGVSc, FieldHGVSp}

// FieldFlags holds the per-field classification for one row.
//
// Evaluated is false when the validator gave no answer for the field: the
// truth value is undefined, so the row is counted as neither match nor
// mismatch and takes part in no transition category for that field.
type FieldFlags struct {
	Evaluated      bool
	OldMismatch    bool
	NewMismatch    bool
	BothMismatch   bool
	NewlyCorrected bool
	NewlyWrong     bool
}

// RowClassification pairs a reconciled row with its per-field flags.
type RowClassification struct {
	Row   reconcile.ReconciledRow
	HGVSc FieldFlags
	HGVSp FieldFlags
}

// Flags returns the flags for a field.
func (rc RowClassification) Flags(field Field) FieldFlags {
	if field == FieldHGVSp {
		return rc.HGVSp
	}
	return rc.HGVSc
}

// CategoryCount is one line of the aggregate summary.
type CategoryCount struct {
	Category string `yaml:"category"`
	Count    int    `yaml:"count"`
}

// Report is the full classification output: aggregate counts plus row-level
// detail for audit.
type Report struct {
	VersionOld string
	VersionNew string
	Rows       []RowClassification
	Skipped    int // rows with no validator coverage on either field
}

// Classify computes mismatch and transition flags for every row.
// versionOld and versionNew label the two annotation runs in the summary
// category names.
func Classify(rows []reconcile.ReconciledRow, versionOld, versionNew string) *Report {
	report := &Report{
		VersionOld: versionOld,
		VersionNew: versionNew,
		Rows:       make([]RowClassification, 0, len(rows)),
	}

	for _, row := range rows {
		rc := RowClassification{
			Row:   row,
			HGVSc: fieldFlags(row.HasOracle, row.HGVScOld, row.HGVScNew, row.HGVScVal),
			HGVSp: fieldFlags(row.HasOracle, row.HGVSpOld, row.HGVSpNew, row.HGVSpVal),
		}
		if !rc.HGVSc.Evaluated && !rc.HGVSp.Evaluated {
			report.Skipped++
		}
		report.Rows = append(report.Rows, rc)
	}

	return report
}

// fieldFlags computes one field's flags. An absent oracle answer (no
// coverage, or an empty oracle value) leaves the field unevaluated.
func fieldFlags(hasOracle bool, oldVal, newVal, oracleVal string) FieldFlags {
	if !hasOracle || oracleVal == "" {
		return FieldFlags{}
	}

	oldMismatch := oldVal != oracleVal
	newMismatch := newVal != oracleVal

	return FieldFlags{
		Evaluated:      true,
		OldMismatch:    oldMismatch,
		NewMismatch:    newMismatch,
		BothMismatch:   oldMismatch && newMismatch,
		NewlyCorrected: oldMismatch && !newMismatch,
		NewlyWrong:     !oldMismatch && newMismatch,
	}
}

// Counts returns the aggregate summary in stable order: per-version and
// both-version mismatch counts for each field, then the transition counts.
func (r *Report) Counts() []CategoryCount {
	counts := []CategoryCount{}

	for _, field := range Fields {
		counts = append(counts,
			CategoryCount{Category: fmt.Sprintf("%s_%s_mismatch", field, r.VersionOld), Count: r.count(field, func(f FieldFlags) bool { return f.OldMismatch })},
			CategoryCount{Category: fmt.Sprintf("%s_%s_mismatch", field, r.VersionNew), Count: r.count(field, func(f FieldFlags) bool { return f.NewMismatch })},
			CategoryCount{Category: fmt.Sprintf("%s_both_mismatch", field), Count: r.count(field, func(f FieldFlags) bool { return f.BothMismatch })},
		)
	}
	for _, field := range Fields {
		counts = append(counts,
			CategoryCount{Category: fmt.Sprintf("%s_newly_wrong", field), Count: r.count(field, func(f FieldFlags) bool { return f.NewlyWrong })},
			CategoryCount{Category: fmt.Sprintf("%s_newly_corrected", field), Count: r.count(field, func(f FieldFlags) bool { return f.NewlyCorrected })},
		)
	}

	return counts
}

func (r *Report) count(field Field, pred func(FieldFlags) bool) int {
	n := 0
	for _, rc := range r.Rows {
		flags := rc.Flags(field)
		if flags.Evaluated && pred(flags) {
			n++
		}
	}
	return n
}

// NewlyWrong returns the rows newly wrong in the new version for a field.
func (r *Report) NewlyWrong(field Field) []reconcile.ReconciledRow {
	return r.filter(field, func(f FieldFlags) bool { return f.NewlyWrong })
}

// NewlyCorrected returns the rows corrected by the new version for a field.
func (r *Report) NewlyCorrected(field Field) []reconcile.ReconciledRow {
	return r.filter(field, func(f FieldFlags) bool { return f.NewlyCorrected })
}

func (r *Report) filter(field Field, pred func(FieldFlags) bool) []reconcile.ReconciledRow {
	rows := []reconcile.ReconciledRow{}
	for _, rc := range r.Rows {
		flags := rc.Flags(field)
		if flags.Evaluated && pred(flags) {
			rows = append(rows, rc.Row)
		}
	}
	return rows
}
