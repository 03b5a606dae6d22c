package validator

import (
	"encoding/json"
	"sort"

	"github.com/eastgenomics/vepdiff/pkg/logging"
	"github.com/eastgenomics/vepdiff/pkg/variant"
)

// The LOVD endpoint returns a JSON object keyed by variant description plus
// a reserved "metadata" key. Each variant value nests the description again
// before the per-transcript nomenclature map:
//
//	{
//	  "1-100-A-G": {
//	    "1-100-A-G": {
//	      "hgvs_t_and_p": {
//	        "NM_000000.1": {"t_hgvs": "...", "p_hgvs_tlc": "..."}
//	      }
//	    }
//	  },
//	  "metadata": {...}
//	}

const metadataKey = "metadata"

// lovdTranscript carries the transcript- and protein-level nomenclature for
// one transcript.
type lovdTranscript struct {
	THGVS    *string `json:"t_hgvs"`
	PHGVSTLC *string `json:"p_hgvs_tlc"`
}

// lovdVariant is the inner per-variant object.
type lovdVariant struct {
	HGVSTAndP map[string]lovdTranscript `json:"hgvs_t_and_p"`
}

// lovdResponse is the raw top-level response. Values stay raw until the
// description key is known, because the reserved metadata entry has a
// different shape.
type lovdResponse map[string]json.RawMessage

// flatten converts a response into one Result per (variant, transcript)
// pair, keeping only transcripts the caller asked about. Missing or
// unexpectedly shaped entries produce no results rather than an error; the
// caller records the variant as unanswered.
func flatten(resp lovdResponse, item WorkItem) []Result {
	requested := make(map[string]bool, len(item.Transcripts))
	for _, tx := range item.Transcripts {
		requested[tx] = true
	}

	results := []Result{}
	for desc, raw := range resp {
		if desc == metadataKey {
			continue
		}

		key, err := variant.ParseDescription(desc)
		if err != nil {
			logging.Warn().
				Str("variant", desc).
				Msg("unparseable variant description in validator response, skipping")
			continue
		}

		var inner map[string]lovdVariant
		if err := json.Unmarshal(raw, &inner); err != nil {
			logging.Warn().
				Err(err).
				Str("variant", desc).
				Msg("unexpected validator response shape, skipping variant")
			continue
		}

		entry, exists := inner[desc]
		if !exists || entry.HGVSTAndP == nil {
			logging.Warn().
				Str("variant", desc).
				Msg("validator response missing hgvs_t_and_p, skipping variant")
			continue
		}

		txIDs := make([]string, 0, len(entry.HGVSTAndP))
		for tx := range entry.HGVSTAndP {
			txIDs = append(txIDs, tx)
		}
		sort.Strings(txIDs)

		for _, tx := range txIDs {
			if !requested[tx] {
				continue
			}
			hgvs := entry.HGVSTAndP[tx]
			results = append(results, Result{
				Key:        key,
				Transcript: tx,
				HGVSc:      derefOrEmpty(hgvs.THGVS),
				HGVSp:      derefOrEmpty(hgvs.PHGVSTLC),
			})
		}
	}

	return results
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
