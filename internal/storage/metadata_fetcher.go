package storage

import (
	"context"
	"errors"

	"go-oembed-provider/pkg/models"
)

// ErrMetadataNotFound indicates the backend has no metadata for the URL
var ErrMetadataNotFound = errors.New("content metadata not found")

// MetadataFetcher is the backend collaborator contract: resolve content
// metadata for a URL, optionally hinting the caller's size constraints.
type MetadataFetcher interface {
	FetchMetadata(ctx context.Context, contentURL string, maxWidth, maxHeight int) (*models.ContentMetadata, error)
}
