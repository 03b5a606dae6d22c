// Package variant defines the core value types shared by every stage of the
// annotation comparison pipeline: genomic variant keys, per-transcript
// annotation records, and the mismatch rows produced by comparing two
// annotation runs.
//
// All types in this package are plain values. They are constructed once by
// the stage that owns them and never mutated afterwards.
package variant

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/eastgenomics/vepdiff/pkg/errors"
)

// DescriptionSeparator joins the four key fields into the variant
// description string used by the validator ("chrom-pos-ref-alt").
const DescriptionSeparator = "-"

// Key uniquely identifies a genomic substitution or indel. Equality is
// exact string/integer match; equivalent representations (e.g. left vs
// right aligned indels) are deliberately not normalized.
type Key struct {
	Chrom string
	Pos   int
	Ref   string
	Alt   string
}

// Description returns the delimited form "chrom-pos-ref-alt" used as the
// join key with the validator.
func (k Key) Description() string {
	return strings.Join([]string{k.Chrom, strconv.Itoa(k.Pos), k.Ref, k.Alt}, DescriptionSeparator)
}

// String implements fmt.Stringer.
func (k Key) String() string { return k.Description() }

// ParseDescription reconstructs a Key from a "chrom-pos-ref-alt" string.
func ParseDescription(desc string) (Key, error) {
	parts := strings.Split(desc, DescriptionSeparator)
	if len(parts) != 4 {
		return Key{}, errors.NewValidationError("variant_description", desc,
			fmt.Sprintf("expected 4 dash-separated fields, got %d", len(parts)))
	}
	pos, err := strconv.Atoi(parts[1])
	if err != nil {
		return Key{}, errors.NewValidationError("variant_description", desc,
			"position is not an integer")
	}
	if pos < 1 {
		return Key{}, errors.NewValidationError("variant_description", desc,
			"position must be >= 1")
	}
	return Key{Chrom: parts[0], Pos: pos, Ref: parts[2], Alt: parts[3]}, nil
}

// Record is one annotation of a variant against a single transcript, as
// produced by one annotation run.
type Record struct {
	Key           Key
	Transcript    string
	Consequence   string
	HGVSc         string
	HGVSp         string
	SourceVersion string
}

// RecordKey is the composite join key for matching records between two
// annotation runs.
type RecordKey struct {
	Key        Key
	Transcript string
}

// RecordKeyOf returns the join key for a record.
func RecordKeyOf(r Record) RecordKey {
	return RecordKey{Key: r.Key, Transcript: r.Transcript}
}

// MismatchRow is the result of joining two annotation runs on
// {Key, Transcript} where at least one of consequence, HGVSc, or HGVSp
// differs between the two versions.
type MismatchRow struct {
	Key        Key
	Transcript string

	ConsequenceOld string
	ConsequenceNew string
	HGVScOld       string
	HGVScNew       string
	HGVSpOld       string
	HGVSpNew       string
}

// RecordKey returns the join key for the row.
func (m MismatchRow) RecordKey() RecordKey {
	return RecordKey{Key: m.Key, Transcript: m.Transcript}
}

// Less orders rows by chrom, pos, ref, alt, transcript for deterministic
// output.
func (m MismatchRow) Less(other MismatchRow) bool {
	if m.Key.Chrom != other.Key.Chrom {
		return m.Key.Chrom < other.Key.Chrom
	}
	if m.Key.Pos != other.Key.Pos {
		return m.Key.Pos < other.Key.Pos
	}
	if m.Key.Ref != other.Key.Ref {
		return m.Key.Ref < other.Key.Ref
	}
	if m.Key.Alt != other.Key.Alt {
		return m.Key.Alt < other.Key.Alt
	}
	return m.Transcript < other.Transcript
}
