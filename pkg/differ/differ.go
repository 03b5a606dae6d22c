// Package differ detects disagreements between two annotation runs of the
// same variants. It joins the two record sets on variant and transcript and
// emits one row per pair where consequence or nomenclature differ.
package differ

import (
	"sort"
	"strings"

	"github.com/eastgenomics/vepdiff/pkg/constants"
	"github.com/eastgenomics/vepdiff/pkg/variant"
)

// Differ handles mismatch detection between annotation runs.
type Differ interface {
	// Mismatches compares two record sets and returns rows where
	// consequence, HGVSc, or HGVSp disagree.
	Mismatches(old, updated []variant.Record) []variant.MismatchRow
}

// differ is the default implementation of Differ.
type differ struct {
	excludePrefix string
}

// New creates a new Differ with default settings.
func New(opts ...Option) Differ {
	d := &differ{
		excludePrefix: constants.NonCodingPrefix,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Option configures a Differ.
type Option func(*differ)

// WithExcludePrefix overrides the transcript prefix excluded from
// comparison.
func WithExcludePrefix(prefix string) Option {
	return func(d *differ) { d.excludePrefix = prefix }
}

// Mismatches compares two record sets and returns rows where consequence,
// HGVSc, or HGVSp disagree.
//
// The join is an inner join on {chrom, pos, ref, alt, transcript}: pairs
// present in only one run are dropped, since there is nothing to compare.
// Comparison is exact and case-sensitive, with empty distinct from any
// non-empty value. Transcripts carrying the excluded prefix never appear in
// the output, even when they differ. Output is sorted by key so a given
// unordered input always produces the same rows in the same order.
func (d *differ) Mismatches(old, updated []variant.Record) []variant.MismatchRow {
	oldMap := make(map[variant.RecordKey]variant.Record, len(old))
	for _, rec := range old {
		oldMap[variant.RecordKeyOf(rec)] = rec
	}

	rows := []variant.MismatchRow{}
	for _, newRec := range updated {
		oldRec, exists := oldMap[variant.RecordKeyOf(newRec)]
		if !exists {
			continue
		}

		if oldRec.Consequence == newRec.Consequence &&
			oldRec.HGVSc == newRec.HGVSc &&
			oldRec.HGVSp == newRec.HGVSp {
			continue
		}

		if d.excludePrefix != "" && strings.HasPrefix(newRec.Transcript, d.excludePrefix) {
			continue
		}

		rows = append(rows, variant.MismatchRow{
			Key:            newRec.Key,
			Transcript:     newRec.Transcript,
			ConsequenceOld: oldRec.Consequence,
			ConsequenceNew: newRec.Consequence,
			HGVScOld:       oldRec.HGVSc,
			HGVScNew:       newRec.HGVSc,
			HGVSpOld:       oldRec.HGVSp,
			HGVSpNew:       newRec.HGVSp,
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Less(rows[j]) })

	return rows
}

// Dedupe collapses exact duplicate rows across samples, preserving first-seen
// order. The validator is deterministic per variant and transcript, so a
// mismatch recurring in many samples only needs one query.
func Dedupe(rows []variant.MismatchRow) []variant.MismatchRow {
	seen := make(map[variant.MismatchRow]bool, len(rows))
	out := make([]variant.MismatchRow, 0, len(rows))
	for _, row := range rows {
		if seen[row] {
			continue
		}
		seen[row] = true
		out = append(out, row)
	}
	return out
}

// UniqueVariants returns the distinct variant keys across the rows, sorted.
func UniqueVariants(rows []variant.MismatchRow) []variant.Key {
	seen := make(map[variant.Key]bool, len(rows))
	keys := make([]variant.Key, 0, len(rows))
	for _, row := range rows {
		if seen[row.Key] {
			continue
		}
		seen[row.Key] = true
		keys = append(keys, row.Key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Description() < keys[j].Description()
	})
	return keys
}

// UniqueTranscripts returns the distinct transcript IDs across the rows,
// sorted.
func UniqueTranscripts(rows []variant.MismatchRow) []string {
	seen := make(map[string]bool, len(rows))
	txs := make([]string, 0, len(rows))
	for _, row := range rows {
		if seen[row.Transcript] {
			continue
		}
		seen[row.Transcript] = true
		txs = append(txs, row.Transcript)
	}
	sort.Strings(txs)
	return txs
}
