package factory

import (
	"fmt"

	"go-oembed-provider/internal/config"
	"go-oembed-provider/internal/storage"
)

// MetadataSourceFactory creates metadata fetchers
type MetadataSourceFactory interface {
	CreateFetcher(cfg *config.Config) (storage.MetadataFetcher, error)
}

// metadataSourceFactory implements MetadataSourceFactory
type metadataSourceFactory struct{}

// NewMetadataSourceFactory creates a new metadata source factory
func NewMetadataSourceFactory() MetadataSourceFactory {
	return &metadataSourceFactory{}
}

// CreateFetcher creates the fetcher selected by METADATA_SOURCE
func (f *metadataSourceFactory) CreateFetcher(cfg *config.Config) (storage.MetadataFetcher, error) {
	switch cfg.MetadataSource {
	case config.SourceHTTP:
		return storage.NewHTTPMetadataFetcher(cfg.MetadataBackendURL, cfg.FetchTimeout), nil
	case config.SourceAzure:
		return storage.NewAzureMetadataFetcher(
			cfg.AzureStorageAccount,
			cfg.AzureStorageKey,
			cfg.AzureMetadataContainer,
		)
	case config.SourceStatic:
		return storage.NewStaticMetadataFetcher(nil), nil
	default:
		return nil, fmt.Errorf("unsupported metadata source: %s", cfg.MetadataSource)
	}
}
