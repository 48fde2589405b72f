// Package chainclient talks to the destination L2's MMR-state and
// verifier contract, treated as the three calls spec'd for the batch
// orchestrator: read a batch's state, read the lowest committed block,
// and submit a verified proof.
package chainclient

import (
	"context"

	"github.com/fossil-light/accumulator/mmr"
)

// MMRState is the on-chain record for one batch.
type MMRState struct {
	LatestBlockNumber uint64
	LatestBlockHash   mmr.Hash
	RootHash          string
	LeavesCount       uint64
	BlobHash          string
}

// Client is the destination-chain contract surface the orchestrator
// depends on.
type Client interface {
	// GetMMRState returns the on-chain state for batchIndex. A batch with
	// no on-chain record yet returns the zero MMRState, not an error.
	GetMMRState(ctx context.Context, batchIndex uint64) (MMRState, error)

	// GetMinCommittedBlock returns the lowest block number currently
	// committed on-chain, used by the from_latest build variant.
	GetMinCommittedBlock(ctx context.Context) (uint64, error)

	// VerifyMMRProof submits the prover's calldata plus the new blob
	// hash to the verifier contract, returning whether it accepted the
	// proof and updated the batch record.
	VerifyMMRProof(ctx context.Context, verifierAddress string, calldata []byte, blobHash string, isBuild bool) (bool, error)
}
