package mmr

import "errors"

var (
	// ErrInvalidPosition is returned for a 1-based position that is zero or
	// exceeds the current elements count.
	ErrInvalidPosition = errors.New("mmr: invalid position")

	// ErrInvalidMMRSize is returned when an elements count does not
	// correspond to a valid MMR: the mountain decomposition leaves a
	// remainder, meaning siblings exist without their parent.
	ErrInvalidMMRSize = errors.New("mmr: invalid mmr size")

	// ErrNodeNotFound is returned by a NodeStore that has no entry for a
	// requested position.
	ErrNodeNotFound = errors.New("mmr: node not found")

	// ErrPeaksCountMismatch is returned by proof verification when the
	// supplied peaks slice does not have the length the mmr size demands.
	ErrPeaksCountMismatch = errors.New("mmr: peaks count mismatch")

	// ErrSiblingsHeightMismatch is returned by proof verification when the
	// supplied siblings slice length does not match the expected mountain
	// height for the proven position.
	ErrSiblingsHeightMismatch = errors.New("mmr: siblings length does not match mountain height")
)
