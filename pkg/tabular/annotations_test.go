package tabular

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/eastgenomics/vepdiff/pkg/errors"
	"github.com/eastgenomics/vepdiff/pkg/variant"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.tsv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestReadAnnotations tests loading a headerless annotation export.
func TestReadAnnotations(t *testing.T) {
	path := writeFile(t,
		"chr1\t100\tA\tG\tmissense_variant\tNM_1.1\tc.100A>G\tp.Lys34Glu\n"+
			"chr2\t200\tC\tT\tsynonymous_variant\tNM_2.1\tc.200C>T\t.\n")

	records, err := ReadAnnotations(path, "110")
	if err != nil {
		t.Fatalf("ReadAnnotations: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	want := variant.Record{
		Key:           variant.Key{Chrom: "chr1", Pos: 100, Ref: "A", Alt: "G"},
		Transcript:    "NM_1.1",
		Consequence:   "missense_variant",
		HGVSc:         "c.100A>G",
		HGVSp:         "p.Lys34Glu",
		SourceVersion: "110",
	}
	if records[0] != want {
		t.Errorf("records[0] = %+v, want %+v", records[0], want)
	}
	if records[1].HGVSp != "." {
		t.Errorf("records[1].HGVSp = %q", records[1].HGVSp)
	}
}

// TestReadAnnotations_ContractViolations tests that malformed rows are fatal.
func TestReadAnnotations_ContractViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"wrong column count", "chr1\t100\tA\tG\tmissense_variant\tNM_1.1\tc.100A>G\n"},
		{"non-integer position", "chr1\tabc\tA\tG\tmissense_variant\tNM_1.1\tc.100A>G\tp.Lys34Glu\n"},
		{"zero position", "chr1\t0\tA\tG\tmissense_variant\tNM_1.1\tc.100A>G\tp.Lys34Glu\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.content)
			_, err := ReadAnnotations(path, "110")
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.IsValidationError(err) {
				t.Errorf("expected an input contract violation, got %v", err)
			}
		})
	}
}

// TestReadAnnotations_Empty tests that an empty run loads as zero records.
func TestReadAnnotations_Empty(t *testing.T) {
	records, err := ReadAnnotations(writeFile(t, ""), "110")
	if err != nil {
		t.Fatalf("ReadAnnotations: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}
