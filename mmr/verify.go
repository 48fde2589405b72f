package mmr

// Verify checks that proof is a valid inclusion proof for its LeafHash
// against expectedRoot, the canonical root string produced by RootHash.
// It is pure: it touches no store, only the values carried in proof.
func Verify(proof Proof, expectedRoot string) (bool, error) {
	if len(proof.Siblings) != len(proof.SiblingIsRight) {
		return false, ErrSiblingsHeightMismatch
	}

	current := proof.LeafHash
	for i, sibling := range proof.Siblings {
		if proof.SiblingIsRight[i] {
			current = HashValues(current, sibling)
		} else {
			current = HashValues(sibling, current)
		}
	}

	peakPositions, err := findPeaks(proof.ElementsCount)
	if err != nil {
		return false, err
	}
	if len(peakPositions) != len(proof.Peaks) {
		return false, ErrPeaksCountMismatch
	}
	mountainIdx, height := peakInfo(proof.ElementsCount, proof.Position)
	if height != uint64(len(proof.Siblings)) {
		return false, ErrSiblingsHeightMismatch
	}
	if current != proof.Peaks[mountainIdx] {
		return false, nil
	}

	bag := bagThePeaks(proof.Peaks)
	root := HashValues(encodeCount(proof.ElementsCount), bag)
	return root.String() == expectedRoot, nil
}
