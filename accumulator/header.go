package accumulator

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/fossil-light/accumulator/mmr"
)

// Header is one source-chain block header as delivered by the header
// store: every field a real Ethereum client commits to in its block hash,
// plus the chain it was sourced from.
type Header struct {
	Number        uint64
	BlockHash     mmr.Hash
	ParentHash    mmr.Hash
	UncleHash     mmr.Hash
	Coinbase      [20]byte
	StateRoot     mmr.Hash
	TxRoot        mmr.Hash
	ReceiptRoot   mmr.Hash
	LogsBloom     [256]byte
	Difficulty    uint64
	GasLimit      uint64
	GasUsed       uint64
	Timestamp     uint64
	ExtraData     []byte
	MixDigest     mmr.Hash
	Nonce         uint64
	BaseFeePerGas uint64

	// ChainID identifies the source chain this header was fetched from;
	// ValidBlockHash rejects a header whose ChainID does not match the
	// chain it is being validated against.
	ChainID uint64
}

// BlockNumberToBatchIndex maps a block number to the index of the batch
// that covers it, given batchSize leaves per batch.
func BlockNumberToBatchIndex(number, batchSize uint64) uint64 {
	return number / batchSize
}

// CalculateBatchBounds returns the inclusive [start, end] block range
// covered by batchIndex.
func CalculateBatchBounds(batchIndex, batchSize uint64) (start, end uint64) {
	start = batchIndex * batchSize
	end = start + batchSize - 1
	return
}

// rlpHeader adapts Header to go-ethereum's canonical block header layout so
// its hash can be recomputed the same way a source-chain client computes
// it: Keccak256 over the full RLP encoding, every field included.
func (h Header) rlpHeader() *types.Header {
	return &types.Header{
		ParentHash:  common.Hash(h.ParentHash),
		UncleHash:   common.Hash(h.UncleHash),
		Coinbase:    common.Address(h.Coinbase),
		Root:        common.Hash(h.StateRoot),
		TxHash:      common.Hash(h.TxRoot),
		ReceiptHash: common.Hash(h.ReceiptRoot),
		Bloom:       types.Bloom(h.LogsBloom),
		Difficulty:  new(big.Int).SetUint64(h.Difficulty),
		Number:      new(big.Int).SetUint64(h.Number),
		GasLimit:    h.GasLimit,
		GasUsed:     h.GasUsed,
		Time:        h.Timestamp,
		Extra:       h.ExtraData,
		MixDigest:   common.Hash(h.MixDigest),
		Nonce:       types.EncodeNonce(h.Nonce),
		BaseFee:     new(big.Int).SetUint64(h.BaseFeePerGas),
	}
}

// ValidBlockHash reports whether h was sourced from chainID and its
// BlockHash equals the Keccak256 hash of h's full RLP encoding, the
// external validity function referenced by the validation contract.
func (h Header) ValidBlockHash(chainID uint64) bool {
	if h.ChainID != chainID {
		return false
	}
	return mmr.Hash(h.rlpHeader().Hash()) == h.BlockHash
}
