package accumulator

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/fossil-light/accumulator/mmr"
)

// chainHeader builds a Header whose BlockHash is the real Keccak256/RLP
// hash of its fields, so ValidBlockHash succeeds, chaining it to parent.
func chainHeader(t *testing.T, number uint64, parent mmr.Hash, timestamp, baseFee uint64) Header {
	t.Helper()
	raw := &types.Header{
		ParentHash: common.Hash(parent),
		Number:     new(big.Int).SetUint64(number),
		GasLimit:   30_000_000,
		GasUsed:    21_000,
		Time:       timestamp,
		BaseFee:    new(big.Int).SetUint64(baseFee),
	}
	return Header{
		Number:        number,
		BlockHash:     mmr.Hash(raw.Hash()),
		ParentHash:    parent,
		GasLimit:      raw.GasLimit,
		GasUsed:       raw.GasUsed,
		Timestamp:     timestamp,
		BaseFeePerGas: baseFee,
		ChainID:       1,
	}
}

func buildChain(t *testing.T, n int, startNumber, startTS uint64) []Header {
	t.Helper()
	headers := make([]Header, n)
	var parent mmr.Hash
	for i := 0; i < n; i++ {
		h := chainHeader(t, startNumber+uint64(i), parent, startTS+uint64(i)*15, 1_000_000+uint64(i))
		headers[i] = h
		parent = h.BlockHash
	}
	return headers
}

func TestAccumulateGenesisBatch(t *testing.T) {
	headers := buildChain(t, 5, 0, 3600)
	input := BatchInput{
		ChainID:   1,
		BatchSize: 1024,
		Headers:   headers,
	}
	result, err := Accumulate(input)
	if err != nil {
		t.Fatalf("Accumulate: %v", err)
	}
	if result.Output.BatchIndex != 0 {
		t.Fatalf("BatchIndex = %d, want 0", result.Output.BatchIndex)
	}
	if !result.Output.FirstParentHash.IsZero() {
		t.Fatalf("FirstParentHash = %v, want zero hash for batch 0", result.Output.FirstParentHash)
	}
	if result.Output.LeavesCount != uint64(len(headers)) {
		t.Fatalf("LeavesCount = %d, want %d", result.Output.LeavesCount, len(headers))
	}
	if result.Output.LatestBlockHash != headers[len(headers)-1].BlockHash {
		t.Fatalf("LatestBlockHash mismatch")
	}
}

func TestAccumulateRejectsDiscontinuousChain(t *testing.T) {
	headers := buildChain(t, 3, 0, 3600)
	headers[1] = chainHeader(t, 1, mmr.Hash{0xFF}, headers[1].Timestamp, headers[1].BaseFeePerGas)
	_, err := Accumulate(BatchInput{ChainID: 1, BatchSize: 1024, Headers: headers})
	if err != ErrChainNotContiguous {
		t.Fatalf("err = %v, want ErrChainNotContiguous", err)
	}
}

func TestAccumulateRejectsSpanningBatches(t *testing.T) {
	headers := buildChain(t, 3, 1022, 3600)
	_, err := Accumulate(BatchInput{ChainID: 1, BatchSize: 1024, Headers: headers})
	if err != ErrHeadersSpanMultipleBatches {
		t.Fatalf("err = %v, want ErrHeadersSpanMultipleBatches", err)
	}
}

func TestAccumulateRejectsEmptyHeaders(t *testing.T) {
	_, err := Accumulate(BatchInput{ChainID: 1, BatchSize: 1024})
	if err != ErrEmptyHeaders {
		t.Fatalf("err = %v, want ErrEmptyHeaders", err)
	}
}

func TestAccumulateRejectsBatchLinkMismatch(t *testing.T) {
	headers := buildChain(t, 2, 1024, 3600)
	_, err := Accumulate(BatchInput{
		ChainID:   1,
		BatchSize: 1024,
		Headers:   headers,
		BatchLink: mmr.Hash{0xAB},
	})
	if err != ErrBatchLinkMismatch {
		t.Fatalf("err = %v, want ErrBatchLinkMismatch", err)
	}
}

func TestAccumulateIsDeterministic(t *testing.T) {
	headers := buildChain(t, 10, 0, 3600)
	input := BatchInput{ChainID: 1, BatchSize: 1024, Headers: headers}
	r1, err := Accumulate(input)
	if err != nil {
		t.Fatalf("Accumulate: %v", err)
	}
	r2, err := Accumulate(input)
	if err != nil {
		t.Fatalf("Accumulate: %v", err)
	}
	if r1.Output.RootHash != r2.Output.RootHash {
		t.Fatalf("non-deterministic root: %q != %q", r1.Output.RootHash, r2.Output.RootHash)
	}
}

func TestAccumulateHourGrouping(t *testing.T) {
	headers := buildChain(t, 300, 0, 0)
	input := BatchInput{ChainID: 1, BatchSize: 1024, Headers: headers}
	result, err := Accumulate(input)
	if err != nil {
		t.Fatalf("Accumulate: %v", err)
	}
	for _, fee := range result.Output.HourlyFeeAverages {
		if fee.Timestamp%3600 != 0 {
			t.Fatalf("hour group timestamp %d not hour-aligned", fee.Timestamp)
		}
	}
}

func TestAccumulateContinuesFromHydratedState(t *testing.T) {
	first := buildChain(t, 4, 0, 3600)
	r1, err := Accumulate(BatchInput{ChainID: 1, BatchSize: 1024, Headers: first})
	if err != nil {
		t.Fatalf("Accumulate first: %v", err)
	}

	next := buildChain(t, 2, 0, 3600)
	// splice the continuation onto the real tail of the first chain
	second := make([]Header, 0, 2)
	parent := first[len(first)-1].BlockHash
	for i, h := range next {
		h.Number = uint64(len(first) + i)
		h.ParentHash = parent
		h.BlockHash = chainHeader(t, h.Number, parent, h.Timestamp, h.BaseFeePerGas).BlockHash
		parent = h.BlockHash
		second = append(second, h)
	}

	r2, err := Accumulate(BatchInput{
		ChainID:    1,
		BatchSize:  1024,
		MMRStateIn: r1.MMRState,
		Headers:    second,
	})
	if err != nil {
		t.Fatalf("Accumulate second: %v", err)
	}
	if r2.Output.LeavesCount != r1.Output.LeavesCount+uint64(len(second)) {
		t.Fatalf("LeavesCount = %d, want %d", r2.Output.LeavesCount, r1.Output.LeavesCount+uint64(len(second)))
	}
}
