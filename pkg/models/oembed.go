package models

import "strconv"

// ContentType identifies one of the four oEmbed 1.0 content types
type ContentType string

const (
	TypePhoto ContentType = "photo"
	TypeVideo ContentType = "video"
	TypeRich  ContentType = "rich"
	TypeLink  ContentType = "link"
)

// IsKnown reports whether the content type is one of the four oEmbed types
func (t ContentType) IsKnown() bool {
	switch t {
	case TypePhoto, TypeVideo, TypeRich, TypeLink:
		return true
	}
	return false
}

// RequestParameters holds the sanitized query parameters for an embed request.
// MaxWidth/MaxHeight use 0 for "not supplied" (valid values are 1-2048).
type RequestParameters struct {
	URL       string
	Format    string
	MaxWidth  int
	MaxHeight int
}

// GalleryImage describes one entry of a gallery metadata payload.
// Src and Title are accepted aliases for URL and Alt.
type GalleryImage struct {
	URL   string `json:"url,omitempty"`
	Src   string `json:"src,omitempty"`
	Alt   string `json:"alt,omitempty"`
	Title string `json:"title,omitempty"`
}

// ContentMetadata is the backend collaborator's description of a piece of
// content. Several fields have legacy aliases (author, authorUrl, thumbnail,
// src); Normalize folds them into the canonical fields so the rest of the
// pipeline never has to check aliases.
type ContentMetadata struct {
	Type            string         `json:"type,omitempty"`
	Title           string         `json:"title,omitempty"`
	AuthorName      string         `json:"author_name,omitempty"`
	Author          string         `json:"author,omitempty"`
	AuthorURL       string         `json:"author_url,omitempty"`
	AuthorURLAlias  string         `json:"authorUrl,omitempty"`
	URL             string         `json:"url,omitempty"`
	Width           int            `json:"width,omitempty"`
	Height          int            `json:"height,omitempty"`
	HTML            string         `json:"html,omitempty"`
	EmbedURL        string         `json:"embedUrl,omitempty"`
	Content         string         `json:"content,omitempty"`
	ThumbnailURL    string         `json:"thumbnail_url,omitempty"`
	Thumbnail       string         `json:"thumbnail,omitempty"`
	ThumbnailWidth  int            `json:"thumbnail_width,omitempty"`
	ThumbnailHeight int            `json:"thumbnail_height,omitempty"`
	CacheAge        int            `json:"cache_age,omitempty"`
	Images          []GalleryImage `json:"images,omitempty"`
}

// Normalize folds field aliases into their canonical counterparts. It is
// applied exactly once, at the repository boundary, so downstream code only
// reads canonical fields.
func (m *ContentMetadata) Normalize() {
	if m.AuthorName == "" && m.Author != "" {
		m.AuthorName = m.Author
	}
	m.Author = ""

	if m.AuthorURL == "" && m.AuthorURLAlias != "" {
		m.AuthorURL = m.AuthorURLAlias
	}
	m.AuthorURLAlias = ""

	if m.ThumbnailURL == "" && m.Thumbnail != "" {
		m.ThumbnailURL = m.Thumbnail
	}
	m.Thumbnail = ""

	for i := range m.Images {
		if m.Images[i].URL == "" && m.Images[i].Src != "" {
			m.Images[i].URL = m.Images[i].Src
		}
		m.Images[i].Src = ""
		if m.Images[i].Alt == "" && m.Images[i].Title != "" {
			m.Images[i].Alt = m.Images[i].Title
		}
		m.Images[i].Title = ""
	}
}

// OembedResponse is the outbound oEmbed 1.0 entity. Field order here defines
// the element order of the XML rendering; keep it stable.
type OembedResponse struct {
	Version         string `json:"version"`
	Type            string `json:"type"`
	Title           string `json:"title,omitempty"`
	AuthorName      string `json:"author_name,omitempty"`
	AuthorURL       string `json:"author_url,omitempty"`
	ProviderName    string `json:"provider_name,omitempty"`
	ProviderURL     string `json:"provider_url,omitempty"`
	CacheAge        int    `json:"cache_age,omitempty"`
	ThumbnailURL    string `json:"thumbnail_url,omitempty"`
	ThumbnailWidth  int    `json:"thumbnail_width,omitempty"`
	ThumbnailHeight int    `json:"thumbnail_height,omitempty"`
	URL             string `json:"url,omitempty"`
	Width           int    `json:"width,omitempty"`
	Height          int    `json:"height,omitempty"`
	HTML            string `json:"html,omitempty"`
}

// Field is one key/value pair of a flattened response, used by the XML
// serializer. Values are already string-coerced.
type Field struct {
	Key   string
	Value string
}

// Fields flattens the response into its non-empty fields, in the same order
// the JSON rendering uses. Only scalar values occur; nested values are out of
// contract for the XML serializer.
func (r *OembedResponse) Fields() []Field {
	fields := make([]Field, 0, 15)
	add := func(key, value string) {
		if value != "" {
			fields = append(fields, Field{Key: key, Value: value})
		}
	}
	addInt := func(key string, value int) {
		if value != 0 {
			fields = append(fields, Field{Key: key, Value: strconv.Itoa(value)})
		}
	}

	add("version", r.Version)
	add("type", r.Type)
	add("title", r.Title)
	add("author_name", r.AuthorName)
	add("author_url", r.AuthorURL)
	add("provider_name", r.ProviderName)
	add("provider_url", r.ProviderURL)
	addInt("cache_age", r.CacheAge)
	add("thumbnail_url", r.ThumbnailURL)
	addInt("thumbnail_width", r.ThumbnailWidth)
	addInt("thumbnail_height", r.ThumbnailHeight)
	add("url", r.URL)
	addInt("width", r.Width)
	addInt("height", r.Height)
	add("html", r.HTML)
	return fields
}

// ValidationError represents a structured validation error
type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// ErrorBody carries the four core error fields every error response exposes,
// plus an optional details string.
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	RequestID string `json:"requestId"`
	Details   string `json:"details,omitempty"`
}

// ErrorResponse is the outbound error entity
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}
