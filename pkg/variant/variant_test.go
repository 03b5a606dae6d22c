package variant

import (
	"sort"
	"testing"
)

// TestKeyDescription tests the dash-joined description form.
func TestKeyDescription(t *testing.T) {
	key := Key{Chrom: "chr1", Pos: 100, Ref: "A", Alt: "G"}
	if got := key.Description(); got != "chr1-100-A-G" {
		t.Errorf("Description() = %q, want %q", got, "chr1-100-A-G")
	}
	if got := key.String(); got != key.Description() {
		t.Errorf("String() = %q, want Description() %q", got, key.Description())
	}
}

// TestParseDescription tests parsing descriptions back into keys.
func TestParseDescription(t *testing.T) {
	tests := []struct {
		name    string
		desc    string
		want    Key
		wantErr bool
	}{
		{
			name: "valid substitution",
			desc: "chr1-100-A-G",
			want: Key{Chrom: "chr1", Pos: 100, Ref: "A", Alt: "G"},
		},
		{
			name: "valid indel",
			desc: "17-41276045-CTT-C",
			want: Key{Chrom: "17", Pos: 41276045, Ref: "CTT", Alt: "C"},
		},
		{
			name:    "too few fields",
			desc:    "chr1-100-A",
			wantErr: true,
		},
		{
			name:    "too many fields",
			desc:    "chr1-100-A-G-T",
			wantErr: true,
		},
		{
			name:    "non-integer position",
			desc:    "chr1-x-A-G",
			wantErr: true,
		},
		{
			name:    "zero position",
			desc:    "chr1-0-A-G",
			wantErr: true,
		},
		{
			name:    "empty",
			desc:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDescription(tt.desc)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDescription(%q) expected error, got %+v", tt.desc, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDescription(%q) unexpected error: %v", tt.desc, err)
			}
			if got != tt.want {
				t.Errorf("ParseDescription(%q) = %+v, want %+v", tt.desc, got, tt.want)
			}
		})
	}
}

// TestParseDescriptionRoundTrip tests that a parsed key renders back to its
// original description.
func TestParseDescriptionRoundTrip(t *testing.T) {
	descs := []string{"chr1-100-A-G", "X-1-T-TAA", "MT-16024-G-A"}
	for _, desc := range descs {
		key, err := ParseDescription(desc)
		if err != nil {
			t.Fatalf("ParseDescription(%q) unexpected error: %v", desc, err)
		}
		if key.Description() != desc {
			t.Errorf("round trip of %q produced %q", desc, key.Description())
		}
	}
}

// TestMismatchRowLess tests the deterministic row ordering.
func TestMismatchRowLess(t *testing.T) {
	rows := []MismatchRow{
		{Key: Key{Chrom: "chr2", Pos: 50, Ref: "A", Alt: "G"}, Transcript: "NM_1.1"},
		{Key: Key{Chrom: "chr1", Pos: 100, Ref: "A", Alt: "G"}, Transcript: "NM_2.1"},
		{Key: Key{Chrom: "chr1", Pos: 100, Ref: "A", Alt: "G"}, Transcript: "NM_1.1"},
		{Key: Key{Chrom: "chr1", Pos: 100, Ref: "A", Alt: "C"}, Transcript: "NM_1.1"},
		{Key: Key{Chrom: "chr1", Pos: 99, Ref: "T", Alt: "C"}, Transcript: "NM_1.1"},
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Less(rows[j]) })

	wantOrder := []string{
		"chr1-99-T-C/NM_1.1",
		"chr1-100-A-C/NM_1.1",
		"chr1-100-A-G/NM_1.1",
		"chr1-100-A-G/NM_2.1",
		"chr2-50-A-G/NM_1.1",
	}
	for i, row := range rows {
		got := row.Key.Description() + "/" + row.Transcript
		if got != wantOrder[i] {
			t.Errorf("position %d: got %s, want %s", i, got, wantOrder[i])
		}
	}
}
