package repository

import (
	"context"
	"errors"
	"fmt"

	"go-oembed-provider/internal/storage"
	"go-oembed-provider/pkg/models"
)

// backendMetadataRepository implements MetadataRepository over a pluggable
// storage fetcher. Alias normalization happens here, once, so the rest of the
// pipeline only ever sees canonical fields.
type backendMetadataRepository struct {
	fetcher storage.MetadataFetcher
}

// NewMetadataRepository creates a repository over the given fetcher
func NewMetadataRepository(fetcher storage.MetadataFetcher) MetadataRepository {
	return &backendMetadataRepository{fetcher: fetcher}
}

// GetContentMetadata fetches and normalizes metadata for a content URL
func (r *backendMetadataRepository) GetContentMetadata(ctx context.Context, contentURL string, maxWidth, maxHeight int) (*models.ContentMetadata, error) {
	meta, err := r.fetcher.FetchMetadata(ctx, contentURL, maxWidth, maxHeight)
	if err != nil {
		if errors.Is(err, storage.ErrMetadataNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	meta.Normalize()
	return meta, nil
}
