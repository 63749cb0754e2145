package container

import (
	"fmt"
	"net/http"

	"go-oembed-provider/internal/builder"
	"go-oembed-provider/internal/config"
	"go-oembed-provider/internal/factory"
	"go-oembed-provider/internal/logger"
	"go-oembed-provider/internal/observer"
	"go-oembed-provider/internal/repository"
	"go-oembed-provider/internal/service"
	"go-oembed-provider/internal/storage"
	"go-oembed-provider/internal/transport"
	"go-oembed-provider/pkg/validation"
)

// Container holds all application dependencies
type Container struct {
	config          *config.Config
	metadataFetcher storage.MetadataFetcher
	metadataRepo    repository.MetadataRepository
	oembedService   service.OembedService
	handler         http.Handler
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	// Build dependency graph
	metadataFetcher, err := factory.NewMetadataSourceFactory().CreateFetcher(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create metadata fetcher: %w", err)
	}

	metadataRepo := repository.NewMetadataRepository(metadataFetcher)
	authorizer := validation.NewURLAuthorizer(cfg.ProviderDomain)
	responseBuilder := builder.New(cfg.ProviderName, cfg.ProviderURL)

	events := observer.NewEventSubject()
	events.Subscribe(observer.NewLoggingObserver(logger.Logger))

	oembedService := service.NewOembedService(metadataRepo, authorizer, responseBuilder, events)
	handler := transport.NewHandler(oembedService, cfg)

	return &Container{
		config:          cfg,
		metadataFetcher: metadataFetcher,
		metadataRepo:    metadataRepo,
		oembedService:   oembedService,
		handler:         handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}
