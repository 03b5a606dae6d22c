package validator

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/eastgenomics/vepdiff/pkg/constants"
	"github.com/eastgenomics/vepdiff/pkg/errors"
	"github.com/eastgenomics/vepdiff/pkg/variant"
)

// resultHeader is the column contract for chunk output files.
var resultHeader = []string{"variant", "transcript", "hgvs_c_validator", "hgvs_p_validator"}

// WriteResults writes one chunk's results as a TSV with a header row.
func WriteResults(path string, results []Result) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, constants.FilePermissions)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = '\t'

	if err := w.Write(resultHeader); err != nil {
		return errors.WrapIO("write", path, err)
	}
	for _, r := range results {
		record := []string{r.Key.Description(), r.Transcript, r.HGVSc, r.HGVSp}
		if err := w.Write(record); err != nil {
			return errors.WrapIO("write", path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return f.Close()
}

// ReadResults reads a chunk output file back.
func ReadResults(path string) ([]Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = len(resultHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.WrapParse("tsv", path, err)
	}
	if len(records) == 0 {
		return nil, errors.NewParseError("tsv", path, 0, "missing header row", nil)
	}

	results := make([]Result, 0, len(records)-1)
	for i, record := range records[1:] {
		key, err := variant.ParseDescription(record[0])
		if err != nil {
			return nil, errors.NewParseError("tsv", path, i+2, err.Error(), err)
		}
		results = append(results, Result{
			Key:        key,
			Transcript: record[1],
			HGVSc:      record[2],
			HGVSp:      record[3],
		})
	}
	return results, nil
}

// GatherChunks reads every chunk output file for an assay under dir and
// concatenates the results. Used after QueryBatch (possibly across several
// resumed invocations) to assemble the full validator answer set.
func GatherChunks(dir, assay string) ([]Result, error) {
	pattern := filepath.Join(dir, fmt.Sprintf("validator_%s_chunk*.tsv", assay))
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, errors.WrapIO("read", dir, err)
	}
	sort.Strings(paths)

	all := []Result{}
	for _, path := range paths {
		results, err := ReadResults(path)
		if err != nil {
			return nil, err
		}
		all = append(all, results...)
	}
	return all, nil
}

// workItemHeader is the column contract for work-item files.
var workItemHeader = []string{"variant_description", "transcripts"}

// WriteWorkItems writes work items as a TSV: one row per distinct variant,
// transcripts pipe-joined.
func WriteWorkItems(path string, items []WorkItem) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, constants.FilePermissions)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = '\t'

	if err := w.Write(workItemHeader); err != nil {
		return errors.WrapIO("write", path, err)
	}
	for _, item := range items {
		if err := w.Write([]string{item.Description, item.TranscriptPath()}); err != nil {
			return errors.WrapIO("write", path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return f.Close()
}

// ReadWorkItems reads a work-item file written by WriteWorkItems.
func ReadWorkItems(path string) ([]WorkItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = len(workItemHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.WrapParse("tsv", path, err)
	}
	if len(records) == 0 {
		return nil, errors.NewParseError("tsv", path, 0, "missing header row", nil)
	}

	items := make([]WorkItem, 0, len(records)-1)
	for i, record := range records[1:] {
		if _, err := variant.ParseDescription(record[0]); err != nil {
			return nil, errors.NewParseError("tsv", path, i+2, err.Error(), err)
		}
		item := WorkItem{Description: record[0]}
		if record[1] != "" {
			item.Transcripts = strings.Split(record[1], constants.TranscriptSeparator)
		}
		items = append(items, item)
	}
	return items, nil
}
