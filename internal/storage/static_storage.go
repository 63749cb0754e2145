package storage

import (
	"context"
	"net/url"

	"go-oembed-provider/pkg/models"
)

// StaticMetadataFetcher serves metadata from an in-memory map keyed by
// content path. Intended for development and tests; it never mutates its
// entries after construction.
type StaticMetadataFetcher struct {
	entries map[string]models.ContentMetadata
}

// NewStaticMetadataFetcher creates a fetcher over a fixed set of entries,
// keyed by URL path (e.g. "/videos/123").
func NewStaticMetadataFetcher(entries map[string]models.ContentMetadata) MetadataFetcher {
	if entries == nil {
		entries = map[string]models.ContentMetadata{}
	}
	return &StaticMetadataFetcher{entries: entries}
}

// FetchMetadata looks up the content URL's path. Size hints are ignored.
func (s *StaticMetadataFetcher) FetchMetadata(ctx context.Context, contentURL string, maxWidth, maxHeight int) (*models.ContentMetadata, error) {
	parsed, err := url.Parse(contentURL)
	if err != nil {
		return nil, ErrMetadataNotFound
	}
	meta, ok := s.entries[parsed.Path]
	if !ok {
		return nil, ErrMetadataNotFound
	}
	// Copy so callers can normalize without touching the stored entry
	out := meta
	return &out, nil
}
