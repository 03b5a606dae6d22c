package validator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/eastgenomics/vepdiff/pkg/constants"
	"github.com/eastgenomics/vepdiff/pkg/errors"
	"github.com/eastgenomics/vepdiff/pkg/logging"
)

// BatchOptions control where chunk outputs land and how items are grouped.
type BatchOptions struct {
	OutputDir string
	Assay     string
	ChunkSize int
}

// chunkFilename returns the output path for chunk index (1-based in the
// filename, for operators).
func (o BatchOptions) chunkFilename(index int) string {
	return filepath.Join(o.OutputDir, fmt.Sprintf("validator_%s_chunk%d.tsv", o.Assay, index+1))
}

// QueryBatch queries every work item and persists results one file per
// chunk. Chunks whose output file already exists are skipped entirely, so a
// re-invoked run never repeats completed network work; callers that need
// strict exactly-once semantics must clear prior outputs first.
//
// Per-item failures never abort the batch: rate-limit and transport errors
// retry with backoff, server errors and retry exhaustion demote the item to
// unanswered. Only unexpected statuses and context cancellation propagate.
// The returned results cover only chunks executed in this invocation; use
// GatherChunks to collect the full set afterwards.
func (c *Client) QueryBatch(ctx context.Context, items []WorkItem, opts BatchOptions) ([]Result, error) {
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	if err := os.MkdirAll(opts.OutputDir, constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", opts.OutputDir, err)
	}

	chunks := Chunk(items, opts.ChunkSize)
	logging.Info().
		Int("items", len(items)).
		Int("chunks", len(chunks)).
		Msg("starting validator batch")

	all := []Result{}
	for index, chunk := range chunks {
		filename := opts.chunkFilename(index)
		if _, err := os.Stat(filename); err == nil {
			logging.Info().
				Str("file", filename).
				Msg("chunk output exists, skipping")
			continue
		}

		results, err := c.queryChunk(ctx, chunk)
		if err != nil {
			return all, err
		}

		if err := WriteResults(filename, results); err != nil {
			return all, err
		}
		logging.Info().
			Str("file", filename).
			Int("results", len(results)).
			Msg("chunk written")

		all = append(all, results...)
	}

	return all, nil
}

// queryChunk runs the items of one chunk sequentially. The shared limiter
// serializes the calls regardless.
func (c *Client) queryChunk(ctx context.Context, chunk []WorkItem) ([]Result, error) {
	results := []Result{}
	for _, item := range chunk {
		itemResults, err := c.Query(ctx, item)
		if err != nil {
			return results, err
		}
		results = append(results, itemResults...)
	}
	return results, nil
}

// Query performs the rate-limited, retried call for a single work item.
// An unanswered item (server error, exhausted retries, malformed response)
// returns an empty slice and no error.
func (c *Client) Query(ctx context.Context, item WorkItem) ([]Result, error) {
	url := c.endpoint(item)

	var resp lovdResponse
	err := c.retry.withRetry(ctx, item.Description, func(ctx context.Context) error {
		if err := c.wait(ctx); err != nil {
			return err
		}
		resp = nil
		return c.transport.GetJSON(ctx, url, &resp)
	})

	switch {
	case err == nil:
		return flatten(resp, item), nil
	case errors.Is(err, errors.ErrOracleUnavailable):
		logging.Warn().
			Str("variant", item.Description).
			Msg("validator server error, recording variant as unanswered")
		return nil, nil
	case errors.Is(err, errors.ErrRetriesExhausted):
		logging.Error().
			Err(err).
			Str("variant", item.Description).
			Msg("retries exhausted, recording variant as unanswered")
		return nil, nil
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		return nil, err
	default:
		return nil, err
	}
}
