// Package orchestrator drives batch processing end to end: partitioning a
// requested block range into batch-aligned sub-ranges, hydrating each
// batch's MMR from blob storage, running the batch accumulator, invoking
// the external prover, and submitting the result on-chain.
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/fossil-light/accumulator/accumulator"
	"github.com/fossil-light/accumulator/blobstore"
	"github.com/fossil-light/accumulator/chainclient"
	"github.com/fossil-light/accumulator/headerstore"
	"github.com/fossil-light/accumulator/mmr"
	"github.com/fossil-light/accumulator/prover"
)

// Errors surfaced by the state-transition class of failures: fatal for
// the current batch, never retried.
var (
	ErrLeavesCountDecreased = errors.New("orchestrator: leaves count decreased across calls")
	ErrJournalMismatch      = errors.New("orchestrator: prover journal does not match local guest output")
	ErrNoHeadersInRange     = errors.New("orchestrator: no headers found for batch range")
)

// Orchestrator wires together every external collaborator the per-batch
// procedure depends on.
type Orchestrator struct {
	Config Config

	Chain       chainclient.Client
	Headers     headerstore.Store
	Blobs       blobstore.Store
	Prover      prover.Prover
	ChainID     uint64
	VerifierAddr string

	Logger *zap.Logger

	// TempDir overrides where scoped batch temp files are created; empty
	// uses the OS default.
	TempDir string
}

// BatchResult is what one processed sub-range produced.
type BatchResult struct {
	Range      BatchRange
	Output     accumulator.GuestOutput
	NewState   chainclient.MMRState
	ShortCircuited bool
}

// Run processes [start, end] per the orchestrator's per-call procedure,
// returning one BatchResult per sub-range actually worked (short-circuited
// already-complete batches are included with ShortCircuited set). Batches
// are worked newest-first, so a NumBatches cap bounds how far back from
// end the call reaches rather than how far forward from start.
func (o *Orchestrator) Run(ctx context.Context, start, end uint64) ([]BatchResult, error) {
	return o.runBatches(ctx, start, end)
}

func (o *Orchestrator) runBatches(ctx context.Context, start, end uint64) ([]BatchResult, error) {
	ranges := CalculateBatchRanges(start, end, o.Config.BatchSize)
	if o.Config.NumBatches > 0 && uint64(len(ranges)) > o.Config.NumBatches {
		ranges = ranges[:o.Config.NumBatches]
	}

	results := make([]BatchResult, 0, len(ranges))
	for _, r := range ranges {
		result, err := o.processBatch(ctx, r)
		if err != nil {
			return results, fmt.Errorf("orchestrator: batch %d: %w", r.BatchIndex, err)
		}
		results = append(results, result)
	}
	return results, nil
}

// BuildFromBlock works backward from the configured pinned StartBlock down
// to block 0, bounded by Config.NumBatches.
func (o *Orchestrator) BuildFromBlock(ctx context.Context) ([]BatchResult, error) {
	currentEnd := CalculateStartBlock(o.Config.StartBlock, false, 0)
	return o.runBatches(ctx, 0, currentEnd)
}

// BuildFromLatest works backward from just below the lowest block already
// committed on-chain, filling history gaps behind what's already verified.
func (o *Orchestrator) BuildFromLatest(ctx context.Context) ([]BatchResult, error) {
	minCommitted, err := o.Chain.GetMinCommittedBlock(ctx)
	if err != nil {
		return nil, fmt.Errorf("get min committed block: %w", err)
	}
	currentEnd := CalculateStartBlock(0, true, minCommitted)
	return o.runBatches(ctx, 0, currentEnd)
}

// BuildFromFinalized works backward from a finalized block number supplied
// by the caller, since resolving "finalized" is itself an RPC concept
// outside this package's scope.
func (o *Orchestrator) BuildFromFinalized(ctx context.Context, finalizedBlock uint64) ([]BatchResult, error) {
	return o.runBatches(ctx, 0, finalizedBlock)
}

func (o *Orchestrator) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}

func (o *Orchestrator) processBatch(ctx context.Context, r BatchRange) (BatchResult, error) {
	log := o.logger().With(zap.Uint64("batch_index", r.BatchIndex), zap.Uint64("start", r.Start), zap.Uint64("end", r.End))

	var onChain chainclient.MMRState
	err := retryTransient(ctx, func() error {
		var err error
		onChain, err = o.Chain.GetMMRState(ctx, r.BatchIndex)
		return err
	})
	if err != nil {
		return BatchResult{}, fmt.Errorf("query on-chain state: %w", err)
	}

	state := accumulator.MMRState{}
	var temp *ScopedTempFile

	if onChain.BlobHash != "" {
		temp, err = NewScopedTempFile(o.TempDir, fmt.Sprintf("batch-%d", r.BatchIndex))
		if err != nil {
			return BatchResult{}, fmt.Errorf("acquire scoped temp file: %w", err)
		}
		defer temp.Close()

		hydrated, recomputedRoot, hydrateErr := o.hydrate(ctx, onChain.BlobHash)
		switch {
		case hydrateErr != nil:
			log.Warn("failed to hydrate MMR blob, starting fresh", zap.Error(hydrateErr))
		case recomputedRoot != onChain.RootHash:
			log.Warn("hydrated MMR root does not match on-chain root, discarding and starting fresh",
				zap.String("recomputed_root", recomputedRoot), zap.String("on_chain_root", onChain.RootHash))
		default:
			state = hydrated
			if state.LeavesCount >= o.Config.BatchSize {
				return BatchResult{Range: r, NewState: onChain, ShortCircuited: true}, nil
			}
		}
	}

	headers, err := o.fetchHeaders(ctx, r.Start, r.End)
	if err != nil {
		return BatchResult{}, err
	}
	if len(headers) == 0 {
		return BatchResult{}, ErrNoHeadersInRange
	}

	var batchLink mmr.Hash
	if r.BatchIndex != 0 {
		var previous chainclient.MMRState
		err := retryTransient(ctx, func() error {
			var err error
			previous, err = o.Chain.GetMMRState(ctx, r.BatchIndex-1)
			return err
		})
		if err != nil {
			return BatchResult{}, fmt.Errorf("query previous batch state: %w", err)
		}
		batchLink = previous.LatestBlockHash
	}

	input := accumulator.BatchInput{
		ChainID:    o.ChainID,
		BatchSize:  o.Config.BatchSize,
		MMRStateIn: state,
		Headers:    headers,
		BatchLink:  batchLink,
	}
	result, err := accumulator.Accumulate(input)
	if err != nil {
		return BatchResult{}, fmt.Errorf("accumulate: %w", err)
	}
	if result.MMRState.LeavesCount < state.LeavesCount {
		return BatchResult{}, ErrLeavesCountDecreased
	}

	newBlobHash, err := o.uploadState(ctx, result.MMRState)
	if err != nil {
		return BatchResult{}, fmt.Errorf("upload new blob: %w", err)
	}

	newState := chainclient.MMRState{
		LatestBlockNumber: result.Output.LatestBlockNumber,
		LatestBlockHash:   result.Output.LatestBlockHash,
		RootHash:          result.Output.RootHash,
		LeavesCount:       result.Output.LeavesCount,
		BlobHash:          newBlobHash,
	}

	if o.Config.SkipProof {
		log.Info("skip_proof enabled, not invoking prover or submitting on-chain")
		return BatchResult{Range: r, Output: result.Output, NewState: newState}, nil
	}

	proverOutput, err := o.Prover.Prove(ctx, prover.Input{
		ChainID:       o.ChainID,
		BatchSize:     o.Config.BatchSize,
		HeadersByHour: accumulator.GroupByHour(headers),
		MMRStateIn:    state,
		Headers:       headers,
	})
	if err != nil {
		return BatchResult{}, fmt.Errorf("prove: %w", err)
	}

	journalOutput, err := o.Prover.DecodeJournal(proverOutput.Journal)
	if err != nil {
		return BatchResult{}, fmt.Errorf("decode journal: %w", err)
	}
	if journalOutput.RootHash != result.Output.RootHash || journalOutput.LeavesCount != result.Output.LeavesCount {
		return BatchResult{}, ErrJournalMismatch
	}

	var accepted bool
	err = retryTransient(ctx, func() error {
		var err error
		accepted, err = o.Chain.VerifyMMRProof(ctx, o.VerifierAddr, proverOutput.Calldata, newBlobHash, state.ElementsCount == 0)
		return err
	})
	if err != nil {
		return BatchResult{}, fmt.Errorf("submit verify: %w", err)
	}
	if !accepted {
		return BatchResult{}, fmt.Errorf("%w: verifier rejected calldata for batch %d", ErrJournalMismatch, r.BatchIndex)
	}

	return BatchResult{Range: r, Output: result.Output, NewState: newState}, nil
}

func (o *Orchestrator) hydrate(ctx context.Context, blobHash string) (accumulator.MMRState, string, error) {
	data, err := o.Blobs.Get(ctx, blobHash)
	if err != nil {
		return accumulator.MMRState{}, "", err
	}
	store, leavesCount, err := blobstore.DecodeMMR(data)
	if err != nil {
		return accumulator.MMRState{}, "", err
	}
	hydrated := mmr.New(store)
	root, err := hydrated.RootHash()
	if err != nil {
		return accumulator.MMRState{}, "", err
	}
	return accumulator.MMRState{
		Entries:       store.All(),
		ElementsCount: hydrated.Size(),
		LeavesCount:   leavesCount,
	}, root, nil
}

func (o *Orchestrator) uploadState(ctx context.Context, state accumulator.MMRState) (string, error) {
	// state.Entries is already the full node map Accumulate built this
	// call (every leaf and internal merge), not just the current peaks,
	// so the blob can serve proofs for any historical leaf after a
	// round-trip.
	encoded, err := blobstore.EncodeMMR(state.ElementsCount, state.LeavesCount, state.Entries)
	if err != nil {
		return "", err
	}
	var hash string
	err = retryTransient(ctx, func() error {
		var err error
		hash, err = o.Blobs.Put(ctx, encoded)
		return err
	})
	return hash, err
}

func (o *Orchestrator) fetchHeaders(ctx context.Context, start, end uint64) ([]accumulator.Header, error) {
	var headers []accumulator.Header
	err := retryTransient(ctx, func() error {
		var err error
		headers, err = o.Headers.HeadersInRange(ctx, start, end)
		return err
	})
	return headers, err
}
