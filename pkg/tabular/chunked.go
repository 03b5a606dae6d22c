package tabular

import (
	"fmt"
	"os"

	"github.com/eastgenomics/vepdiff/pkg/constants"
	"github.com/eastgenomics/vepdiff/pkg/errors"
	"github.com/eastgenomics/vepdiff/pkg/variant"
)

// WriteVariantsChunked exports distinct variant keys as headerless
// dash-joined files of at most chunkSize rows each, named
// <prefix>_<i>.txt. The external batch UI caps uploads at 25000 rows,
// hence the chunking.
func WriteVariantsChunked(prefix string, keys []variant.Key, chunkSize int) error {
	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		lines = append(lines, key.Description())
	}
	return writeLinesChunked(prefix, lines, chunkSize)
}

// WriteTranscriptsChunked exports distinct transcript IDs the same way.
func WriteTranscriptsChunked(prefix string, transcripts []string, chunkSize int) error {
	return writeLinesChunked(prefix, transcripts, chunkSize)
}

func writeLinesChunked(prefix string, lines []string, chunkSize int) error {
	if chunkSize <= 0 {
		chunkSize = constants.ExportChunkSize
	}

	for i, start := 0, 0; start < len(lines); i, start = i+1, start+chunkSize {
		end := start + chunkSize
		if end > len(lines) {
			end = len(lines)
		}

		path := fmt.Sprintf("%s_%d.txt", prefix, i)
		content := ""
		for _, line := range lines[start:end] {
			content += line + "\n"
		}
		if err := os.WriteFile(path, []byte(content), constants.FilePermissions); err != nil {
			return errors.WrapIO("write", path, err)
		}
	}
	return nil
}
