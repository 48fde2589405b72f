package prover

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/JekaMas/workerpool"

	"github.com/fossil-light/accumulator/accumulator"
)

// ProveFunc runs the actual (black-box) proving computation. In
// production this calls out to the zero-knowledge proving toolchain; in
// tests it can be a fast stand-in that replays Accumulate and serializes
// its Guest Output as the journal.
type ProveFunc func(Input) (Output, error)

// WorkerPoolProver dispatches proof generation onto a single dedicated
// worker, matching the concurrency model's requirement that proof
// generation run off the cooperative runtime thread: the calling
// goroutine suspends on exactly one channel receive per batch and never
// blocks on the compute itself.
type WorkerPoolProver struct {
	identity MethodIdentity
	pool     *workerpool.WorkerPool
	prove    ProveFunc
}

// NewWorkerPoolProver returns a Prover backed by a single-worker pool, so
// proof generation for successive batches is serialized onto one
// dedicated thread rather than spawning an unbounded goroutine per call.
func NewWorkerPoolProver(identity MethodIdentity, prove ProveFunc) (*WorkerPoolProver, error) {
	if err := identity.validate(); err != nil {
		return nil, err
	}
	return &WorkerPoolProver{
		identity: identity,
		pool:     workerpool.New(1),
		prove:    prove,
	}, nil
}

// Close releases the dedicated worker. No in-flight proof can be
// cancelled cooperatively; Close becomes effective once it returns.
func (p *WorkerPoolProver) Close() {
	p.pool.StopWait()
}

type proveResult struct {
	output Output
	err    error
}

func (p *WorkerPoolProver) Prove(ctx context.Context, input Input) (Output, error) {
	done := make(chan proveResult, 1)
	p.pool.Submit(func() {
		output, err := p.prove(input)
		done <- proveResult{output, err}
	})

	select {
	case <-ctx.Done():
		return Output{}, ctx.Err()
	case result := <-done:
		return result.output, result.err
	}
}

func (p *WorkerPoolProver) DecodeJournal(journal []byte) (accumulator.GuestOutput, error) {
	var out accumulator.GuestOutput
	if err := json.Unmarshal(journal, &out); err != nil {
		return accumulator.GuestOutput{}, fmt.Errorf("prover: decode journal: %w", err)
	}
	return out, nil
}
