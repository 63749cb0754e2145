package service

import (
	"context"
	"errors"
	"time"

	"go-oembed-provider/internal/builder"
	apperrors "go-oembed-provider/internal/errors"
	"go-oembed-provider/internal/observer"
	"go-oembed-provider/internal/repository"
	"go-oembed-provider/pkg/models"
	"go-oembed-provider/pkg/validation"
)

// OembedService orchestrates the embed pipeline for already-validated
// parameters: authorize -> fetch metadata -> build response.
type OembedService interface {
	ResolveEmbed(ctx context.Context, params models.RequestParameters) (*models.OembedResponse, *apperrors.AppError)
}

type oembedService struct {
	repo       repository.MetadataRepository
	authorizer *validation.URLAuthorizer
	builder    *builder.Builder
	events     observer.Subject
}

// NewOembedService creates the orchestrator. The events subject may be nil.
func NewOembedService(
	repo repository.MetadataRepository,
	authorizer *validation.URLAuthorizer,
	responseBuilder *builder.Builder,
	events observer.Subject,
) OembedService {
	return &oembedService{
		repo:       repo,
		authorizer: authorizer,
		builder:    responseBuilder,
		events:     events,
	}
}

// ResolveEmbed runs the pipeline. Backend and construction failures are
// downgraded to a generic internal error with a safe message; the underlying
// cause stays attached for logging only.
func (s *oembedService) ResolveEmbed(ctx context.Context, params models.RequestParameters) (*models.OembedResponse, *apperrors.AppError) {
	start := time.Now()
	s.notify(ctx, observer.EmbedEvent{
		EventType:  observer.RequestReceived,
		Timestamp:  start,
		ContentURL: params.URL,
		Format:     params.Format,
		Success:    true,
	})

	authResult, authErr := s.authorizer.Authorize(params.URL)
	if authErr != nil {
		s.notifyFailure(ctx, params, start, authErr)
		return nil, authErr
	}

	meta, err := s.repo.GetContentMetadata(ctx, authResult.URL, params.MaxWidth, params.MaxHeight)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.Is(err, repository.ErrContentNotFound) {
			appErr = apperrors.New(apperrors.CodeContentNotFound, "Content not found", err)
		} else {
			appErr = apperrors.NewInternalError("Failed to resolve content metadata", err)
		}
		s.notify(ctx, observer.EmbedEvent{
			EventType:      observer.MetadataFetchFailed,
			Timestamp:      time.Now(),
			ContentURL:     params.URL,
			ProcessingTime: time.Since(start),
			ErrorCode:      string(appErr.Code),
			ErrorMessage:   err.Error(),
		})
		return nil, appErr
	}

	s.notify(ctx, observer.EmbedEvent{
		EventType:      observer.MetadataFetched,
		Timestamp:      time.Now(),
		ContentURL:     params.URL,
		ProcessingTime: time.Since(start),
		Success:        true,
		Metadata:       map[string]interface{}{"content_type": meta.Type},
	})

	resp, buildErr := s.builder.Build(meta, params.MaxWidth, params.MaxHeight)
	if buildErr != nil {
		// Required-field failures are backend data-integrity problems, not
		// caller errors; surface them as a generic internal error.
		appErr := apperrors.NewInternalError("Failed to build embed response", buildErr)
		s.notifyFailure(ctx, params, start, appErr)
		return nil, appErr
	}

	s.notify(ctx, observer.EmbedEvent{
		EventType:      observer.EmbedBuilt,
		Timestamp:      time.Now(),
		ContentURL:     params.URL,
		Format:         params.Format,
		ProcessingTime: time.Since(start),
		Success:        true,
		Metadata:       map[string]interface{}{"type": resp.Type},
	})
	return resp, nil
}

func (s *oembedService) notifyFailure(ctx context.Context, params models.RequestParameters, start time.Time, appErr *apperrors.AppError) {
	s.notify(ctx, observer.EmbedEvent{
		EventType:      observer.EmbedFailed,
		Timestamp:      time.Now(),
		ContentURL:     params.URL,
		Format:         params.Format,
		ProcessingTime: time.Since(start),
		ErrorCode:      string(appErr.Code),
		ErrorMessage:   appErr.Error(),
	})
}

func (s *oembedService) notify(ctx context.Context, event observer.EmbedEvent) {
	if s.events == nil {
		return
	}
	s.events.NotifyObservers(ctx, event)
}
