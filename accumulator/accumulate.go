package accumulator

import (
	"github.com/fossil-light/accumulator/mmr"
)

// MMRState is the hydratable state of one batch's MMR: every node it has
// ever materialized (not just its current peaks) and the counts they
// imply. Carrying the full node set, rather than peaks alone, is what lets
// a later call still generate a proof for a leaf that is no longer a peak.
type MMRState struct {
	Entries       []mmr.NodeEntry
	ElementsCount uint64
	LeavesCount   uint64
}

// BatchInput is everything the accumulator needs to process one batch
// sub-range.
type BatchInput struct {
	ChainID    uint64
	BatchSize  uint64
	MMRStateIn MMRState
	Headers    []Header
	// BatchLink is the previous batch's last block hash. It is ignored
	// for batch index 0.
	BatchLink mmr.Hash
}

// Result is the outcome of successfully accumulating a batch: the Guest
// Output plus the MMR state left after the batch's appends, so callers can
// serialize it for blob storage without recomputing peaks.
type Result struct {
	Output   GuestOutput
	MMRState MMRState
}

// Validate runs the five-point validation contract against input without
// mutating any MMR state. It is exposed separately from Accumulate so
// orchestrators can reject invalid batches before touching storage.
func Validate(input BatchInput) error {
	if len(input.Headers) == 0 {
		return ErrEmptyHeaders
	}

	first, last := input.Headers[0], input.Headers[len(input.Headers)-1]
	batchIndex := BlockNumberToBatchIndex(first.Number, input.BatchSize)
	if BlockNumberToBatchIndex(last.Number, input.BatchSize) != batchIndex {
		return ErrHeadersSpanMultipleBatches
	}

	for i, h := range input.Headers {
		if !h.ValidBlockHash(input.ChainID) {
			return ErrInvalidBlockHash
		}
		if i > 0 && h.ParentHash != input.Headers[i-1].BlockHash {
			return ErrChainNotContiguous
		}
	}

	for _, g := range GroupByHour(input.Headers) {
		if err := g.validate(); err != nil {
			return err
		}
	}

	if batchIndex != 0 && input.BatchLink != first.ParentHash {
		return ErrBatchLinkMismatch
	}

	return nil
}

// Accumulate runs the deterministic batch-accumulation procedure: it
// validates input, appends every header's block hash to an MMR hydrated
// from MMRStateIn, groups headers by hour for fee averaging, and returns
// the resulting Guest Output. It performs no I/O and mutates no state
// outside the MMR it builds locally, so it is safe to run inside a
// sandboxed prover.
func Accumulate(input BatchInput) (Result, error) {
	if err := Validate(input); err != nil {
		return Result{}, err
	}

	store := mmr.NewMemoryStoreFromEntries(input.MMRStateIn.ElementsCount, input.MMRStateIn.Entries)
	m := mmr.New(store)

	for _, h := range input.Headers {
		if _, err := m.Append(h.BlockHash); err != nil {
			return Result{}, err
		}
	}

	root, err := m.RootHash()
	if err != nil {
		return Result{}, err
	}

	groups := GroupByHour(input.Headers)
	fees := make([]FeeAverage, len(groups))
	for i, g := range groups {
		fees[i] = g.feeAverage()
	}

	first, last := input.Headers[0], input.Headers[len(input.Headers)-1]
	batchIndex := BlockNumberToBatchIndex(first.Number, input.BatchSize)

	var firstParentHash mmr.Hash
	if batchIndex != 0 {
		firstParentHash = first.ParentHash
	}

	leavesCount := input.MMRStateIn.LeavesCount + uint64(len(input.Headers))

	return Result{
		Output: GuestOutput{
			BatchIndex:        batchIndex,
			LatestBlockNumber: last.Number,
			LatestBlockHash:   last.BlockHash,
			RootHash:          root,
			LeavesCount:       leavesCount,
			FirstParentHash:   firstParentHash,
			HourlyFeeAverages: fees,
		},
		MMRState: MMRState{
			Entries:       store.All(),
			ElementsCount: m.Size(),
			LeavesCount:   leavesCount,
		},
	}, nil
}
