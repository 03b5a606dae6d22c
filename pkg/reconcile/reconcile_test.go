package reconcile

import (
	"testing"

	"github.com/eastgenomics/vepdiff/pkg/validator"
	"github.com/eastgenomics/vepdiff/pkg/variant"
)

// TestNormalizeProtein tests the validator-to-annotator protein notation
// rewrites.
func TestNormalizeProtein(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no protein change placeholder", "NP_000000.1:p.?", "."},
		{"bare placeholder", "p.?", "."},
		{"parentheses stripped", "NP_000000.1:p.(Lys34Glu)", "NP_000000.1:p.Lys34Glu"},
		{"silent change percent-encoded", "NP_000000.1:p.(Leu67=)", "NP_000000.1:p.Leu67%3D"},
		{"already plain", "NP_000000.1:p.Lys34Glu", "NP_000000.1:p.Lys34Glu"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeProtein(tt.input); got != tt.want {
				t.Errorf("NormalizeProtein(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestReconcile tests the left join with validator results.
func TestReconcile(t *testing.T) {
	key1 := variant.Key{Chrom: "chr1", Pos: 100, Ref: "A", Alt: "G"}
	key2 := variant.Key{Chrom: "chr2", Pos: 200, Ref: "C", Alt: "T"}

	mismatches := []variant.MismatchRow{
		{Key: key2, Transcript: "NM_2.1", HGVSpOld: "p.Leu67Pro", HGVSpNew: "p.Leu67Arg"},
		{Key: key1, Transcript: "NM_1.1", HGVSpOld: "p.Lys34Glu", HGVSpNew: "p.Lys34Ter"},
	}
	results := []validator.Result{
		{Key: key1, Transcript: "NM_1.1", HGVSc: "NM_1.1:c.100A>G", HGVSp: "NP_1.1:p.(Lys34Ter)"},
		// Result for a pair that is not in the mismatch table; ignored.
		{Key: key2, Transcript: "NM_9.9", HGVSc: "x", HGVSp: "y"},
	}

	rows := Reconcile(mismatches, results)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	// Sorted by variant key, so key1 comes first.
	answered := rows[0]
	if !answered.HasOracle {
		t.Error("expected key1 row to carry a validator answer")
	}
	if answered.HGVScVal != "NM_1.1:c.100A>G" {
		t.Errorf("HGVScVal = %q", answered.HGVScVal)
	}
	if answered.HGVSpVal != "NP_1.1:p.Lys34Ter" {
		t.Errorf("protein value not normalized: %q", answered.HGVSpVal)
	}

	unanswered := rows[1]
	if unanswered.HasOracle {
		t.Error("expected key2 row to have no validator answer")
	}
	if unanswered.HGVScVal != "" || unanswered.HGVSpVal != "" {
		t.Errorf("unanswered row carries validator values: %+v", unanswered)
	}
	if unanswered.HGVSpOld != "p.Leu67Pro" {
		t.Errorf("unanswered row lost its mismatch columns: %+v", unanswered)
	}
}

// TestReconcile_NoResults tests that every row survives an empty answer set.
func TestReconcile_NoResults(t *testing.T) {
	mismatches := []variant.MismatchRow{
		{Key: variant.Key{Chrom: "chr1", Pos: 100, Ref: "A", Alt: "G"}, Transcript: "NM_1.1"},
	}

	rows := Reconcile(mismatches, nil)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].HasOracle {
		t.Error("expected HasOracle=false with no results")
	}
}
