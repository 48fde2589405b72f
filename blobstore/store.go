// Package blobstore models the content-addressed blob collaborator (IPFS
// in production) the orchestrator uses to persist and rehydrate serialized
// MMR state between calls.
package blobstore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// MaxBlobSize bounds both put and get, matching the external interface's
// default 50 MiB ceiling.
const MaxBlobSize = 50 * 1024 * 1024

var (
	// ErrBlobTooLarge is returned when a put or get would exceed
	// MaxBlobSize.
	ErrBlobTooLarge = errors.New("blobstore: blob exceeds maximum size")

	// ErrBlobNotFound is returned by Get when no blob exists for the
	// given hash.
	ErrBlobNotFound = errors.New("blobstore: blob not found")
)

// Store is the narrow contract every backend implements: a content
// address in, the bytes it addresses out, or vice versa.
type Store interface {
	Put(ctx context.Context, data []byte) (hash string, err error)
	Get(ctx context.Context, hash string) ([]byte, error)
}

// ContentHash returns the content address Put uses for data: hex-encoded
// SHA-256.
func ContentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
