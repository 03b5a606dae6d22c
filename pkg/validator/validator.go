// Package validator is the batch client for the external VariantValidator
// REST oracle. It groups disputed variants into work items, queries the
// LOVD endpoint once per distinct variant under a shared one-call-per-second
// rate limit, retries transient failures with exponential backoff, and
// persists results one file per chunk so interrupted runs can resume.
package validator

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/time/rate"

	"github.com/eastgenomics/vepdiff/internal/transport"
	"github.com/eastgenomics/vepdiff/pkg/constants"
	"github.com/eastgenomics/vepdiff/pkg/variant"
)

// WorkItem is one unit of oracle-query work: a single distinct variant and
// the transcripts to check it against.
type WorkItem struct {
	Description string   // "chrom-pos-ref-alt"
	Transcripts []string // ordered, pipe-joined on the wire
}

// TranscriptPath returns the transcripts joined for the URL path.
func (w WorkItem) TranscriptPath() string {
	return strings.Join(w.Transcripts, constants.TranscriptSeparator)
}

// Result is one validator answer for a (variant, transcript) pair.
type Result struct {
	Key        variant.Key
	Transcript string
	HGVSc      string
	HGVSp      string
}

// Client queries the validator in resumable, rate-limited batches.
//
// The rate limiter is a single shared token bucket for the life of the
// client. Anything that distributes chunks across workers must pass the
// same Client (or at least the same limiter), never one limiter per worker,
// or the validator's global one-call-per-second limit will be violated.
type Client struct {
	transport       *transport.Client
	limiter         *rate.Limiter
	retry           RetryConfig
	baseURL         string
	genomeBuild     string
	transcriptModel string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the validator base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(url, "/") }
}

// WithGenomeBuild sets the genome build ("GRCh37" or "GRCh38").
func WithGenomeBuild(build string) Option {
	return func(c *Client) { c.genomeBuild = build }
}

// WithTranscriptModel overrides the transcript model queried.
func WithTranscriptModel(model string) Option {
	return func(c *Client) { c.transcriptModel = model }
}

// WithLimiter injects a shared rate limiter. The default admits one call
// per second with no burst, matching the validator's own limit.
func WithLimiter(limiter *rate.Limiter) Option {
	return func(c *Client) { c.limiter = limiter }
}

// WithRetryConfig overrides the retry policy.
func WithRetryConfig(cfg RetryConfig) Option {
	return func(c *Client) { c.retry = cfg }
}

// WithTransport injects a transport client. Used by tests to point at a
// mock server.
func WithTransport(t *transport.Client) Option {
	return func(c *Client) { c.transport = t }
}

// New creates a validator client for the given genome build.
func New(opts ...Option) *Client {
	c := &Client{
		transport:       transport.New(),
		limiter:         rate.NewLimiter(rate.Every(constants.RateLimitInterval), constants.RateLimitBurst),
		retry:           DefaultRetryConfig(),
		baseURL:         constants.DefaultValidatorURL,
		genomeBuild:     "GRCh38",
		transcriptModel: constants.DefaultTranscriptModel,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// endpoint builds the LOVD endpoint path for one work item. checkOnly and
// liftover stay "False": we want transcript and protein descriptions and no
// liftover.
func (c *Client) endpoint(item WorkItem) string {
	return fmt.Sprintf("%s/LOVD/lovd/%s/%s/%s/%s/False/False",
		c.baseURL, c.genomeBuild, item.Description, c.transcriptModel, item.TranscriptPath())
}

// BuildWorkItems groups mismatch rows by variant description and collects
// each variant's transcripts, so every distinct variant is queried exactly
// once no matter how many transcripts or samples reference it. Items are
// sorted by description.
func BuildWorkItems(rows []variant.MismatchRow) []WorkItem {
	byDesc := map[string]*WorkItem{}
	order := []string{}

	for _, row := range rows {
		desc := row.Key.Description()
		item, exists := byDesc[desc]
		if !exists {
			item = &WorkItem{Description: desc}
			byDesc[desc] = item
			order = append(order, desc)
		}
		if !containsString(item.Transcripts, row.Transcript) {
			item.Transcripts = append(item.Transcripts, row.Transcript)
		}
	}

	sort.Strings(order)
	items := make([]WorkItem, 0, len(order))
	for _, desc := range order {
		items = append(items, *byDesc[desc])
	}
	return items
}

// Chunk splits items into fixed-size groups. Chunk boundaries carry no
// semantic meaning; they exist so output can be written one file per chunk.
func Chunk(items []WorkItem, size int) [][]WorkItem {
	if size <= 0 {
		size = constants.DefaultQueryChunkSize
	}
	chunks := make([][]WorkItem, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}

// wait blocks until the shared token bucket admits the next call.
func (c *Client) wait(ctx context.Context) error {
	return c.limiter.Wait(ctx)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
