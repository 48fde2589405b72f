package mmr

// MMR is a Merkle Mountain Range over a NodeStore. All positions are
// 1-based; position 0 is never addressed.
type MMR struct {
	store NodeStore
}

// New wraps store in an MMR. store may already hold nodes (a hydrated
// batch); an empty store represents an empty MMR.
func New(store NodeStore) *MMR {
	return &MMR{store: store}
}

// Size returns the current elements count (leaves plus internal nodes).
func (m *MMR) Size() uint64 {
	return m.store.Count()
}

// Store returns the underlying NodeStore, for callers that need to
// serialize or otherwise inspect the full node set.
func (m *MMR) Store() NodeStore {
	return m.store
}

// trailingOnes returns the number of consecutive set bits starting at the
// low bit of n. Appending a leaf to an MMR is exactly a binary increment of
// the leaf count: the new leaf occupies the height-0 slot and a carry
// chain of merges propagates for as many mountains as are already present
// at consecutive low heights, i.e. exactly trailingOnes(oldLeafCount)
// merges.
func trailingOnes(n uint64) uint64 {
	var count uint64
	for n&1 == 1 {
		count++
		n >>= 1
	}
	return count
}

// mountainSize returns the node count of a perfect mountain of the given
// zero-based height: 2^(height+1) - 1.
func mountainSize(height uint64) uint64 {
	return (uint64(1) << (height + 1)) - 1
}

// Append adds a new leaf and returns its position. It performs the carry
// chain of parent merges the new leaf triggers, in the same pass.
func (m *MMR) Append(leafHash Hash) (uint64, error) {
	oldSize := m.store.Count()
	oldLeafCount, err := elementsCountToLeafCount(oldSize)
	if err != nil {
		return 0, err
	}

	leafPos := oldSize + 1
	if err := m.store.Set(leafPos, leafHash); err != nil {
		return 0, err
	}

	pos := leafPos
	merges := trailingOnes(oldLeafCount)
	for height := uint64(0); height < merges; height++ {
		leftPos := pos - mountainSize(height)
		leftHash, err := m.store.Get(leftPos)
		if err != nil {
			return 0, err
		}
		rightHash, err := m.store.Get(pos)
		if err != nil {
			return 0, err
		}
		parentPos := pos + 1
		parentHash := HashValues(leftHash, rightHash)
		if err := m.store.Set(parentPos, parentHash); err != nil {
			return 0, err
		}
		pos = parentPos
	}
	return leafPos, nil
}

// PeakHashes returns the hash of every current mountain peak, left to
// right (largest mountain first).
func (m *MMR) PeakHashes() ([]Hash, error) {
	positions, err := findPeaks(m.store.Count())
	if err != nil {
		return nil, err
	}
	hashes := make([]Hash, len(positions))
	for i, pos := range positions {
		h, err := m.store.Get(pos)
		if err != nil {
			return nil, err
		}
		hashes[i] = h
	}
	return hashes, nil
}

// bagThePeaks folds peak hashes right to left into a single bag hash:
// bag = peaks[n-1]; bag = H(peaks[n-2], bag); ...; bag = H(peaks[0], bag).
// An empty peak set bags to the zero Hash.
func bagThePeaks(peaks []Hash) Hash {
	if len(peaks) == 0 {
		return Hash{}
	}
	bag := peaks[len(peaks)-1]
	for i := len(peaks) - 2; i >= 0; i-- {
		bag = HashValues(peaks[i], bag)
	}
	return bag
}

// RootHash computes the MMR root: H(str(elementsCount), bagThePeaks(peaks)).
// An empty MMR's root is the literal sentinel string "0x0", never a hash of
// zero values — the empty accumulator carries no cryptographic commitment.
func (m *MMR) RootHash() (string, error) {
	count := m.store.Count()
	if count == 0 {
		return "0x0", nil
	}
	peaks, err := m.PeakHashes()
	if err != nil {
		return "", err
	}
	bag := bagThePeaks(peaks)
	root := HashValues(encodeCount(count), bag)
	return root.String(), nil
}
