package tabular

import (
	"fmt"
	"strconv"

	"github.com/eastgenomics/vepdiff/pkg/errors"
	"github.com/eastgenomics/vepdiff/pkg/variant"
)

// annotationFields is the fixed column count of annotation inputs:
// {chrom, pos, ref, alt, consequence, transcript, hgvs_c, hgvs_p}.
// Column order is the contract; the files carry no header.
const annotationFields = 8

// ReadAnnotations loads one annotation run. sourceVersion labels the run
// (e.g. the annotator version) on every record. Any malformed row is a
// fatal input contract violation.
func ReadAnnotations(path, sourceVersion string) ([]variant.Record, error) {
	records, err := readTSV(path, annotationFields)
	if err != nil {
		return nil, err
	}

	out := make([]variant.Record, 0, len(records))
	for i, record := range records {
		pos, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, errors.NewParseError("tsv", path, i+1,
				fmt.Sprintf("position %q is not an integer", record[1]), err)
		}
		if pos < 1 {
			return nil, errors.NewParseError("tsv", path, i+1,
				fmt.Sprintf("position %d must be >= 1", pos), nil)
		}

		out = append(out, variant.Record{
			Key:           variant.Key{Chrom: record[0], Pos: pos, Ref: record[2], Alt: record[3]},
			Consequence:   record[4],
			Transcript:    record[5],
			HGVSc:         record[6],
			HGVSp:         record[7],
			SourceVersion: sourceVersion,
		})
	}
	return out, nil
}
