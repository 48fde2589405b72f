package orchestrator

// BatchRange is one batch-aligned sub-range of a requested build range.
type BatchRange struct {
	BatchIndex uint64
	Start      uint64
	End        uint64
}

// CalculateBatchRanges partitions [start, end] (inclusive) into
// batch-aligned sub-ranges and returns them newest-first, matching the
// orchestrator's "processed in reverse" per-call ordering. Correctness of
// the underlying MMR never depends on this order; it only determines
// which batch the orchestrator works on first within one call.
func CalculateBatchRanges(start, end, batchSize uint64) []BatchRange {
	if end < start {
		return nil
	}
	var ranges []BatchRange
	for cursor := start; cursor <= end; {
		batchIndex := cursor / batchSize
		batchEnd := (batchIndex+1)*batchSize - 1
		rangeEnd := batchEnd
		if rangeEnd > end {
			rangeEnd = end
		}
		ranges = append(ranges, BatchRange{BatchIndex: batchIndex, Start: cursor, End: rangeEnd})
		if batchEnd >= end {
			break
		}
		cursor = batchEnd + 1
	}
	reverse(ranges)
	return ranges
}

func reverse(ranges []BatchRange) {
	for i, j := 0, len(ranges)-1; i < j; i, j = i+1, j-1 {
		ranges[i], ranges[j] = ranges[j], ranges[i]
	}
}

// CalculateStartBlock picks the initial current_end for the pinned-block
// and from-latest build variants: the pinned block, or the lowest on-chain
// committed block minus one. The finalized variant does not use it; its
// current_end is supplied by the caller, since "finalized" is itself an
// on-chain/RPC concept outside this package's scope.
func CalculateStartBlock(startBlock uint64, fromLatest bool, minCommittedBlock uint64) uint64 {
	if fromLatest {
		if minCommittedBlock == 0 {
			return 0
		}
		return minCommittedBlock - 1
	}
	return startBlock
}
