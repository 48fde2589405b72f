package chainclient

import (
	"context"
	"fmt"

	gethrpc "github.com/ethereum/go-ethereum/rpc"

	"github.com/fossil-light/accumulator/mmr"
)

// RPCClient is a Client backed by a JSON-RPC endpoint, the same transport
// shape every EVM-family chain in this project's ecosystem exposes.
type RPCClient struct {
	rpc             *gethrpc.Client
	contractAddress string
}

// DialRPC connects to url and targets the MMR-state contract at
// contractAddress.
func DialRPC(ctx context.Context, url, contractAddress string) (*RPCClient, error) {
	client, err := gethrpc.DialContext(ctx, url)
	if err != nil {
		return nil, err
	}
	return &RPCClient{rpc: client, contractAddress: contractAddress}, nil
}

func (c *RPCClient) Close() {
	c.rpc.Close()
}

type mmrStateResult struct {
	LatestBlockNumber uint64 `json:"latest_block_number"`
	LatestBlockHash   string `json:"latest_block_hash"`
	RootHash          string `json:"root_hash"`
	LeavesCount       uint64 `json:"leaves_count"`
	BlobHash          string `json:"blob_hash"`
}

func (c *RPCClient) GetMMRState(ctx context.Context, batchIndex uint64) (MMRState, error) {
	var result mmrStateResult
	if err := c.rpc.CallContext(ctx, &result, "starknet_call", c.contractAddress, "get_mmr_state", batchIndex); err != nil {
		return MMRState{}, fmt.Errorf("chainclient: get_mmr_state: %w", err)
	}
	if result.LatestBlockHash == "" {
		return MMRState{}, nil
	}
	hash, err := mmr.ParseHash(result.LatestBlockHash)
	if err != nil {
		return MMRState{}, fmt.Errorf("chainclient: get_mmr_state: %w", err)
	}
	return MMRState{
		LatestBlockNumber: result.LatestBlockNumber,
		LatestBlockHash:   hash,
		RootHash:          result.RootHash,
		LeavesCount:       result.LeavesCount,
		BlobHash:          result.BlobHash,
	}, nil
}

func (c *RPCClient) GetMinCommittedBlock(ctx context.Context) (uint64, error) {
	var result uint64
	if err := c.rpc.CallContext(ctx, &result, "starknet_call", c.contractAddress, "get_min_mmr_block"); err != nil {
		return 0, fmt.Errorf("chainclient: get_min_mmr_block: %w", err)
	}
	return result, nil
}

func (c *RPCClient) VerifyMMRProof(ctx context.Context, verifierAddress string, calldata []byte, blobHash string, isBuild bool) (bool, error) {
	var accepted bool
	err := c.rpc.CallContext(ctx, &accepted, "starknet_invoke", c.contractAddress, "verify_mmr_proof", verifierAddress, calldata, blobHash, isBuild)
	if err != nil {
		return false, fmt.Errorf("chainclient: verify_mmr_proof: %w", err)
	}
	return accepted, nil
}
