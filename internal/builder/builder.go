// Package builder derives complete, type-specific oEmbed responses from
// backend content metadata and caller size constraints.
package builder

import (
	"strings"

	apperrors "go-oembed-provider/internal/errors"
	"go-oembed-provider/internal/htmlgen"
	"go-oembed-provider/pkg/models"
)

// Default embed dimensions per content type, applied when neither the
// metadata nor the caller supplies a value.
const (
	defaultPhotoWidth  = 800
	defaultPhotoHeight = 600
	defaultVideoWidth  = 640
	defaultVideoHeight = 360
	defaultRichWidth   = 500
	defaultRichHeight  = 300
)

// Default cache ages (seconds) per content type
var defaultCacheAge = map[models.ContentType]int{
	models.TypePhoto: 7200,
	models.TypeVideo: 3600,
	models.TypeRich:  1800,
	models.TypeLink:  3600,
}

// Builder constructs oEmbed responses for one provider. Provider identity is
// injected at construction so Build stays a pure function of its arguments.
type Builder struct {
	providerName string
	providerURL  string
}

// New creates a response builder with the given provider identity
func New(providerName, providerURL string) *Builder {
	return &Builder{
		providerName: providerName,
		providerURL:  providerURL,
	}
}

// Build derives a complete oEmbed response from normalized metadata and
// optional size constraints (0 means unconstrained). It fails with
// MISSING_REQUIRED_FIELD when the resolved type's required fields are absent,
// which callers treat as a backend data-integrity failure, not a caller
// error. Identical inputs always yield identical outputs.
func (b *Builder) Build(meta *models.ContentMetadata, maxWidth, maxHeight int) (*models.OembedResponse, *apperrors.AppError) {
	contentType := models.ContentType(strings.ToLower(meta.Type))
	if !contentType.IsKnown() {
		contentType = models.TypeRich
	}

	resp := &models.OembedResponse{
		Version:      "1.0",
		Type:         string(contentType),
		ProviderName: b.providerName,
		ProviderURL:  b.providerURL,
		CacheAge:     meta.CacheAge,
	}
	if resp.CacheAge == 0 {
		resp.CacheAge = defaultCacheAge[contentType]
	}

	if meta.Title != "" {
		resp.Title = meta.Title
	}
	resp.AuthorName = meta.AuthorName
	resp.AuthorURL = meta.AuthorURL

	// Thumbnail dimensions are all-or-none with the thumbnail URL
	if meta.ThumbnailURL != "" {
		resp.ThumbnailURL = meta.ThumbnailURL
		resp.ThumbnailWidth = meta.ThumbnailWidth
		resp.ThumbnailHeight = meta.ThumbnailHeight
	}

	switch contentType {
	case models.TypePhoto:
		return b.buildPhoto(resp, meta, maxWidth, maxHeight)
	case models.TypeVideo:
		return b.buildVideo(resp, meta, maxWidth, maxHeight)
	case models.TypeLink:
		return resp, nil
	default:
		return b.buildRich(resp, meta, maxWidth, maxHeight)
	}
}

func (b *Builder) buildPhoto(resp *models.OembedResponse, meta *models.ContentMetadata, maxWidth, maxHeight int) (*models.OembedResponse, *apperrors.AppError) {
	if meta.URL == "" {
		return nil, apperrors.New(apperrors.CodeMissingRequiredField,
			"photo content requires a source url", nil)
	}
	resp.URL = meta.URL
	resp.Width = dimensionOrDefault(Constrain(meta.Width, maxWidth), defaultPhotoWidth)
	resp.Height = dimensionOrDefault(Constrain(meta.Height, maxHeight), defaultPhotoHeight)
	return resp, nil
}

func (b *Builder) buildVideo(resp *models.OembedResponse, meta *models.ContentMetadata, maxWidth, maxHeight int) (*models.OembedResponse, *apperrors.AppError) {
	if meta.HTML == "" && meta.EmbedURL == "" {
		return nil, apperrors.New(apperrors.CodeMissingRequiredField,
			"video content requires html or an embed url", nil)
	}
	resp.Width = dimensionOrDefault(Constrain(meta.Width, maxWidth), defaultVideoWidth)
	resp.Height = dimensionOrDefault(Constrain(meta.Height, maxHeight), defaultVideoHeight)
	resp.HTML = meta.HTML
	if resp.HTML == "" {
		resp.HTML = htmlgen.VideoEmbed(meta, resp.Width, resp.Height)
	}
	return resp, nil
}

func (b *Builder) buildRich(resp *models.OembedResponse, meta *models.ContentMetadata, maxWidth, maxHeight int) (*models.OembedResponse, *apperrors.AppError) {
	resp.Type = string(models.TypeRich)
	resp.Width = dimensionOrDefault(Constrain(meta.Width, maxWidth), defaultRichWidth)
	resp.Height = dimensionOrDefault(Constrain(meta.Height, maxHeight), defaultRichHeight)

	switch {
	case meta.HTML != "":
		resp.HTML = meta.HTML
	case strings.EqualFold(meta.Type, "widget"):
		resp.HTML = htmlgen.WidgetEmbed(meta, resp.Width, resp.Height)
	case len(meta.Images) > 0:
		resp.HTML = htmlgen.GalleryEmbed(meta.Images, resp.Width, resp.Height)
	default:
		resp.HTML = htmlgen.RichContainer(meta, resp.Width, resp.Height)
	}
	return resp, nil
}

// Constrain caps an original dimension to a caller-supplied limit. 0 means
// "absent" on either side: an absent original yields the limit, an absent
// limit leaves the original unchanged. Width and height are capped
// independently; aspect ratio is deliberately not recomputed.
func Constrain(original, limit int) int {
	if original == 0 {
		return limit
	}
	if limit == 0 {
		return original
	}
	if original < limit {
		return original
	}
	return limit
}

func dimensionOrDefault(value, fallback int) int {
	if value == 0 {
		return fallback
	}
	return value
}
