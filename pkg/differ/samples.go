package differ

import (
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/eastgenomics/vepdiff/pkg/errors"
	"github.com/eastgenomics/vepdiff/pkg/logging"
)

// samplePattern matches per-sample annotation exports. Group 1 is the
// sample ID, group 2 the annotator version embedded in the filename.
var samplePattern = regexp.MustCompile(`^(\d{9}-\d{5}[A-Z]\d{4})-.*_vep(\d+)_filtered\.vcf$`)

// SamplePair is one sample annotated by both versions.
type SamplePair struct {
	SampleID string
	OldPath  string // lower annotator version
	NewPath  string // higher annotator version
}

// SamplePairs scans a directory for per-sample annotation files and pairs
// the old- and new-version file for each sample. Samples without exactly
// two versions are skipped with a warning.
func SamplePairs(dir string) ([]SamplePair, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapIO("read", dir, err)
	}

	type versioned struct {
		version int
		name    string
	}
	bySample := map[string][]versioned{}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), "_filtered.vcf") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		match := samplePattern.FindStringSubmatch(name)
		if match == nil {
			continue
		}
		version, err := strconv.Atoi(match[2])
		if err != nil {
			continue
		}
		bySample[match[1]] = append(bySample[match[1]], versioned{version: version, name: name})
	}

	sampleIDs := make([]string, 0, len(bySample))
	for id := range bySample {
		sampleIDs = append(sampleIDs, id)
	}
	sort.Strings(sampleIDs)

	pairs := make([]SamplePair, 0, len(sampleIDs))
	for _, id := range sampleIDs {
		files := bySample[id]
		if len(files) != 2 {
			logging.Warn().
				Str("sample", id).
				Int("files", len(files)).
				Msg("expected one file per annotator version, skipping sample")
			continue
		}
		sort.Slice(files, func(i, j int) bool { return files[i].version < files[j].version })
		pairs = append(pairs, SamplePair{
			SampleID: id,
			OldPath:  files[0].name,
			NewPath:  files[1].name,
		})
	}

	return pairs, nil
}
