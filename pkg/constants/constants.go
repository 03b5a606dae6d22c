// Package constants provides shared constants used throughout the vepdiff
// codebase: timeouts, retry limits, rate limits, chunk sizes, and file
// permissions that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application.
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to the
	// validator API.
	DefaultHTTPTimeout = 30 * time.Second

	// CommandTimeout is the default timeout for CLI commands.
	CommandTimeout = 10 * time.Minute
)

// Retry and rate-limit constants for the validator batch client. The
// validator enforces its own one-call-per-second limit server side and
// returns HTTP 429 on violation.
const (
	// MaxRetries is the maximum number of attempts for a single query.
	MaxRetries = 5

	// RetryBackoff is the base backoff duration, doubled each attempt.
	RetryBackoff = 1 * time.Second

	// MaxRetryBackoff caps the exponential backoff.
	MaxRetryBackoff = 10 * time.Second

	// RateLimitInterval is the minimum spacing between outbound calls.
	RateLimitInterval = 1 * time.Second

	// RateLimitBurst is the token bucket capacity. The validator permits
	// exactly one in-flight call per window.
	RateLimitBurst = 1
)

// Chunking constants.
const (
	// DefaultQueryChunkSize is the default number of work items per query
	// chunk. Chunk boundaries exist only for resumable, file-per-chunk
	// output.
	DefaultQueryChunkSize = 100

	// ExportChunkSize is the maximum number of rows per exported
	// unique-variant or unique-transcript file, matching the batch UI's
	// upload limit.
	ExportChunkSize = 25000
)

// File permission constants define standard Unix file permissions.
const (
	// DirPermissions is the default permission for created directories.
	DirPermissions = 0755

	// FilePermissions is the default permission for created files.
	FilePermissions = 0644
)

// Validator API constants.
const (
	// DefaultValidatorURL is the base URL of the VariantValidator REST API.
	DefaultValidatorURL = "https://rest.variantvalidator.org"

	// DefaultTranscriptModel selects the RefSeq transcript set.
	DefaultTranscriptModel = "refseq"
)

// Annotation comparison constants.
const (
	// NonCodingPrefix marks transcripts excluded from comparison.
	// Non-coding transcripts are not annotated consistently enough to
	// compare.
	NonCodingPrefix = "NR_"

	// TranscriptSeparator joins transcript IDs in a work item.
	TranscriptSeparator = "|"
)
