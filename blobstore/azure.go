package blobstore

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

// AzureStore is the production blob backend: one container, blobs named by
// content hash rather than the sequential massif index a log-structured
// store would use.
type AzureStore struct {
	client    *azblob.Client
	container string
}

// NewAzureStore wraps an already-authenticated azblob.Client for the given
// container.
func NewAzureStore(client *azblob.Client, container string) *AzureStore {
	return &AzureStore{client: client, container: container}
}

func (s *AzureStore) Put(ctx context.Context, data []byte) (string, error) {
	if len(data) > MaxBlobSize {
		return "", ErrBlobTooLarge
	}
	hash := ContentHash(data)
	_, err := s.client.UploadBuffer(ctx, s.container, hash, data, nil)
	if err != nil {
		return "", err
	}
	return hash, nil
}

func (s *AzureStore) Get(ctx context.Context, hash string) ([]byte, error) {
	resp, err := s.client.DownloadStream(ctx, s.container, hash, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return nil, ErrBlobNotFound
		}
		return nil, err
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, io.LimitReader(resp.Body, MaxBlobSize+1)); err != nil {
		return nil, err
	}
	if buf.Len() > MaxBlobSize {
		return nil, ErrBlobTooLarge
	}
	return buf.Bytes(), nil
}

// IsNotFound reports whether err represents a missing blob, whether it
// originated locally (MemoryStore/HTTPStore) or from Azure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrBlobNotFound) || bloberror.HasCode(err, bloberror.BlobNotFound)
}
