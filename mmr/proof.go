package mmr

// Proof is an inclusion proof for the leaf at Position within an MMR of
// ElementsCount nodes. Siblings runs from the leaf's immediate sibling up
// to (but not including) its mountain's peak; Peaks holds every mountain
// peak hash, left to right, needed to re-derive the root once the proven
// leaf's own mountain peak has been recomputed.
type Proof struct {
	Position      uint64
	LeafHash      Hash
	Siblings      []Hash
	// SiblingIsRight[i] reports whether Siblings[i] is the right child at
	// its level, meaning the path node up to that point is the left
	// child and combines as H(path, sibling); otherwise H(sibling, path).
	SiblingIsRight []bool
	Peaks          []Hash
	ElementsCount  uint64
}

// childPositions returns the absolute positions of the left and right
// children of the node at rootPos, a subtree root of the given zero-based
// height (height must be >= 1).
func childPositions(rootPos, height uint64) (leftPos, rightPos uint64) {
	leftSize := mountainSize(height - 1)
	rightPos = rootPos - 1
	leftPos = rootPos - leftSize - 1
	return
}

// siblingsToPeak walks down from the peak at peakPos (height peakHeight)
// to target, collecting the sibling hash and its side at each level. It
// returns the siblings and their orientation ordered from the leaf
// upward, the order a verifier folds them in.
func siblingsToPeak(store NodeStore, peakPos, peakHeight, target uint64) ([]Hash, []bool, error) {
	var descendingHash []Hash
	var descendingIsRight []bool
	pos, height := peakPos, peakHeight
	for height > 0 {
		leftPos, rightPos := childPositions(pos, height)
		if target <= leftPos {
			siblingHash, err := store.Get(rightPos)
			if err != nil {
				return nil, nil, err
			}
			descendingHash = append(descendingHash, siblingHash)
			descendingIsRight = append(descendingIsRight, true)
			pos, height = leftPos, height-1
		} else {
			siblingHash, err := store.Get(leftPos)
			if err != nil {
				return nil, nil, err
			}
			descendingHash = append(descendingHash, siblingHash)
			descendingIsRight = append(descendingIsRight, false)
			pos, height = rightPos, height-1
		}
	}
	// descending is peak-to-leaf order; reverse to leaf-to-peak.
	n := len(descendingHash)
	siblings := make([]Hash, n)
	isRight := make([]bool, n)
	for i := 0; i < n; i++ {
		siblings[n-1-i] = descendingHash[i]
		isRight[n-1-i] = descendingIsRight[i]
	}
	return siblings, isRight, nil
}

// GetProof builds an inclusion proof for the leaf at pos within the MMR
// backed by store, whose current size is elementsCount.
func (m *MMR) GetProof(pos uint64) (Proof, error) {
	elementsCount := m.store.Count()
	if pos == 0 || pos > elementsCount {
		return Proof{}, ErrInvalidPosition
	}

	leafHash, err := m.store.Get(pos)
	if err != nil {
		return Proof{}, err
	}

	peakPositions, err := findPeaks(elementsCount)
	if err != nil {
		return Proof{}, err
	}
	mountainIdx, height := peakInfo(elementsCount, pos)
	peakPos := peakPositions[mountainIdx]

	siblings, siblingIsRight, err := siblingsToPeak(m.store, peakPos, height, pos)
	if err != nil {
		return Proof{}, err
	}

	peaks := make([]Hash, len(peakPositions))
	for i, p := range peakPositions {
		h, err := m.store.Get(p)
		if err != nil {
			return Proof{}, err
		}
		peaks[i] = h
	}

	return Proof{
		Position:       pos,
		LeafHash:       leafHash,
		Siblings:       siblings,
		SiblingIsRight: siblingIsRight,
		Peaks:          peaks,
		ElementsCount:  elementsCount,
	}, nil
}
