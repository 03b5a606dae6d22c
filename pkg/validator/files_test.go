package validator

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/eastgenomics/vepdiff/pkg/variant"
)

// TestResultsRoundTrip tests writing and reading a chunk output file.
func TestResultsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "validator_TWE_chunk1.tsv")

	results := []Result{
		{
			Key:        variant.Key{Chrom: "chr1", Pos: 100, Ref: "A", Alt: "G"},
			Transcript: "NM_1.1",
			HGVSc:      "NM_1.1:c.100A>G",
			HGVSp:      "NP_1.1:p.(Lys34Glu)",
		},
		{
			Key:        variant.Key{Chrom: "chr2", Pos: 200, Ref: "C", Alt: "T"},
			Transcript: "NM_2.1",
			HGVSc:      "NM_2.1:c.200C>T",
			HGVSp:      "",
		},
	}

	if err := WriteResults(path, results); err != nil {
		t.Fatalf("WriteResults: %v", err)
	}
	got, err := ReadResults(path)
	if err != nil {
		t.Fatalf("ReadResults: %v", err)
	}
	if !reflect.DeepEqual(got, results) {
		t.Errorf("round trip mismatch:\n%+v\nvs\n%+v", got, results)
	}
}

// TestReadResults_Errors tests the input contract checks.
func TestReadResults_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		if _, err := ReadResults(filepath.Join(dir, "nope.tsv")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(dir, "empty.tsv")
		if err := os.WriteFile(path, nil, 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := ReadResults(path); err == nil {
			t.Error("expected error for missing header")
		}
	})

	t.Run("bad variant description", func(t *testing.T) {
		path := filepath.Join(dir, "bad.tsv")
		content := "variant\ttranscript\thgvs_c_validator\thgvs_p_validator\nnot-a-variant\tNM_1.1\tx\ty\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := ReadResults(path); err == nil {
			t.Error("expected error for bad description")
		}
	})
}

// TestGatherChunks tests concatenating chunk files in name order, scoped to
// one assay.
func TestGatherChunks(t *testing.T) {
	dir := t.TempDir()

	chunk1 := []Result{{Key: variant.Key{Chrom: "chr1", Pos: 100, Ref: "A", Alt: "G"}, Transcript: "NM_1.1"}}
	chunk2 := []Result{{Key: variant.Key{Chrom: "chr2", Pos: 200, Ref: "C", Alt: "T"}, Transcript: "NM_2.1"}}
	other := []Result{{Key: variant.Key{Chrom: "chr9", Pos: 900, Ref: "G", Alt: "A"}, Transcript: "NM_9.1"}}

	if err := WriteResults(filepath.Join(dir, "validator_TWE_chunk1.tsv"), chunk1); err != nil {
		t.Fatal(err)
	}
	if err := WriteResults(filepath.Join(dir, "validator_TWE_chunk2.tsv"), chunk2); err != nil {
		t.Fatal(err)
	}
	if err := WriteResults(filepath.Join(dir, "validator_CEN_chunk1.tsv"), other); err != nil {
		t.Fatal(err)
	}

	got, err := GatherChunks(dir, "TWE")
	if err != nil {
		t.Fatalf("GatherChunks: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].Transcript != "NM_1.1" || got[1].Transcript != "NM_2.1" {
		t.Errorf("chunk order wrong: %+v", got)
	}

	t.Run("no chunks", func(t *testing.T) {
		got, err := GatherChunks(dir, "MYE")
		if err != nil {
			t.Fatalf("GatherChunks: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected no results, got %+v", got)
		}
	})
}

// TestWorkItemsRoundTrip tests the work-item file format.
func TestWorkItemsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "work_items.tsv")

	items := []WorkItem{
		{Description: "chr1-100-A-G", Transcripts: []string{"NM_1.1", "NM_1.2"}},
		{Description: "chr2-200-C-T", Transcripts: []string{"NM_2.1"}},
	}

	if err := WriteWorkItems(path, items); err != nil {
		t.Fatalf("WriteWorkItems: %v", err)
	}
	got, err := ReadWorkItems(path)
	if err != nil {
		t.Fatalf("ReadWorkItems: %v", err)
	}
	if !reflect.DeepEqual(got, items) {
		t.Errorf("round trip mismatch:\n%+v\nvs\n%+v", got, items)
	}
}
