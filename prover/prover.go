// Package prover models the external zero-knowledge prover as a black
// box: it takes a batch's accumulation input and returns a proof receipt,
// the verifier calldata derived from it, and the public journal.
package prover

import (
	"context"
	"errors"

	"github.com/fossil-light/accumulator/accumulator"
)

// ErrEmptyMethodIdentity is returned when a Prover is constructed with an
// empty ELF or method ID; the prover is content-addressed by that pair and
// neither half may be empty.
var ErrEmptyMethodIdentity = errors.New("prover: method elf and method id must both be non-empty")

// Input is everything the prover needs to produce a proof for one batch.
type Input struct {
	ChainID     uint64
	BatchSize   uint64
	HeadersByHour []accumulator.HourGroup
	MMRStateIn  accumulator.MMRState
	Headers     []accumulator.Header
}

// Output is the prover's result: an opaque receipt, the calldata the
// verifier contract expects, and the public journal bytes, which decode to
// a GuestOutput.
type Output struct {
	Receipt  []byte
	Calldata []byte
	Journal  []byte
}

// Prover runs proof generation, a CPU-bound operation that must execute on
// a dedicated worker thread rather than the cooperative task runtime (see
// WorkerPoolProver).
type Prover interface {
	Prove(ctx context.Context, input Input) (Output, error)
	DecodeJournal(journal []byte) (accumulator.GuestOutput, error)
}

// MethodIdentity is the (elf, id) pair a Prover is content-addressed by.
type MethodIdentity struct {
	MethodELF []byte
	MethodID  string
}

func (m MethodIdentity) validate() error {
	if len(m.MethodELF) == 0 || m.MethodID == "" {
		return ErrEmptyMethodIdentity
	}
	return nil
}
