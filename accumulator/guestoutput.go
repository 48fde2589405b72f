package accumulator

import "github.com/fossil-light/accumulator/mmr"

// GuestOutput is the public journal of a batch's ZK proof: the sole
// evidence the on-chain contract needs to accept a new batch state. Every
// field here must be reproducible bit-for-bit by any replayer of the same
// inputs.
type GuestOutput struct {
	BatchIndex        uint64
	LatestBlockNumber uint64
	LatestBlockHash   mmr.Hash
	RootHash          string
	LeavesCount       uint64
	FirstParentHash   mmr.Hash
	HourlyFeeAverages []FeeAverage
}
