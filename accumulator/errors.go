package accumulator

import "errors"

var (
	// ErrEmptyHeaders is returned when a batch is asked to ingest zero
	// headers.
	ErrEmptyHeaders = errors.New("accumulator: empty header list")

	// ErrInvalidBlockHash is returned when a header's declared block hash
	// does not match the hash recomputed over its RLP encoding.
	ErrInvalidBlockHash = errors.New("accumulator: block hash mismatch")

	// ErrChainNotContiguous is returned when a header's parent hash does
	// not equal the previous header's block hash.
	ErrChainNotContiguous = errors.New("accumulator: chain not contiguous")

	// ErrHeadersSpanMultipleBatches is returned when the first and last
	// header in the list fall in different batches.
	ErrHeadersSpanMultipleBatches = errors.New("accumulator: headers span multiple batches")

	// ErrInvalidHourGroup is returned when an hour group's claimed
	// timestamp does not match the headers actually assigned to it.
	ErrInvalidHourGroup = errors.New("accumulator: invalid hour group")

	// ErrBatchLinkMismatch is returned when the caller-supplied batch
	// link does not equal the first header's parent hash for a
	// non-genesis batch.
	ErrBatchLinkMismatch = errors.New("accumulator: batch link mismatch")
)
