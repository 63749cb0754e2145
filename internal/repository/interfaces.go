package repository

import (
	"context"

	"go-oembed-provider/pkg/models"
)

// MetadataRepository defines the interface for content metadata access
type MetadataRepository interface {
	// GetContentMetadata resolves metadata for a content URL, with optional
	// size hints (0 = unconstrained). The returned metadata is normalized:
	// field aliases are already folded into their canonical fields.
	GetContentMetadata(ctx context.Context, contentURL string, maxWidth, maxHeight int) (*models.ContentMetadata, error)
}
