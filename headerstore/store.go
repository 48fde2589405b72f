// Package headerstore accesses the source-chain block header table. The
// table itself and its population are out of scope here; this package
// treats it as a plain relational SELECT over a range of block numbers.
package headerstore

import (
	"context"

	"github.com/fossil-light/accumulator/accumulator"
)

// Store fetches headers for a contiguous, inclusive block-number range,
// ordered ascending by number.
type Store interface {
	HeadersInRange(ctx context.Context, start, end uint64) ([]accumulator.Header, error)
}
