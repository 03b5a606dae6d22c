package validator

import (
	"reflect"
	"testing"

	"github.com/eastgenomics/vepdiff/pkg/variant"
)

// TestBuildWorkItems tests grouping mismatch rows into one item per variant.
func TestBuildWorkItems(t *testing.T) {
	key1 := variant.Key{Chrom: "chr1", Pos: 100, Ref: "A", Alt: "G"}
	key2 := variant.Key{Chrom: "chr2", Pos: 200, Ref: "C", Alt: "T"}

	rows := []variant.MismatchRow{
		{Key: key2, Transcript: "NM_2.1"},
		{Key: key1, Transcript: "NM_1.1"},
		{Key: key1, Transcript: "NM_1.2"},
		{Key: key1, Transcript: "NM_1.1"}, // duplicate transcript
	}

	items := BuildWorkItems(rows)
	if len(items) != 2 {
		t.Fatalf("expected 2 work items, got %d", len(items))
	}

	// Sorted by description.
	if items[0].Description != "chr1-100-A-G" {
		t.Errorf("items[0].Description = %s", items[0].Description)
	}
	if !reflect.DeepEqual(items[0].Transcripts, []string{"NM_1.1", "NM_1.2"}) {
		t.Errorf("items[0].Transcripts = %v", items[0].Transcripts)
	}
	if items[1].Description != "chr2-200-C-T" {
		t.Errorf("items[1].Description = %s", items[1].Description)
	}
}

// TestWorkItemTranscriptPath tests the pipe-joined URL form.
func TestWorkItemTranscriptPath(t *testing.T) {
	item := WorkItem{Description: "chr1-100-A-G", Transcripts: []string{"NM_1.1", "NM_2.1"}}
	if got := item.TranscriptPath(); got != "NM_1.1|NM_2.1" {
		t.Errorf("TranscriptPath() = %q", got)
	}
}

// TestChunk tests fixed-size chunking.
func TestChunk(t *testing.T) {
	items := make([]WorkItem, 7)

	chunks := Chunk(items, 3)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if len(chunks[0]) != 3 || len(chunks[1]) != 3 || len(chunks[2]) != 1 {
		t.Errorf("chunk sizes wrong: %d %d %d", len(chunks[0]), len(chunks[1]), len(chunks[2]))
	}

	t.Run("non-positive size falls back to default", func(t *testing.T) {
		chunks := Chunk(items, 0)
		if len(chunks) != 1 || len(chunks[0]) != 7 {
			t.Errorf("expected a single default-sized chunk, got %d chunks", len(chunks))
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if chunks := Chunk(nil, 3); len(chunks) != 0 {
			t.Errorf("expected no chunks for empty input, got %d", len(chunks))
		}
	})
}

// TestEndpoint tests the LOVD URL layout.
func TestEndpoint(t *testing.T) {
	c := New(
		WithBaseURL("https://example.org/"),
		WithGenomeBuild("GRCh37"),
	)

	item := WorkItem{Description: "chr1-100-A-G", Transcripts: []string{"NM_1.1", "NM_2.1"}}
	want := "https://example.org/LOVD/lovd/GRCh37/chr1-100-A-G/refseq/NM_1.1|NM_2.1/False/False"
	if got := c.endpoint(item); got != want {
		t.Errorf("endpoint = %q, want %q", got, want)
	}
}
