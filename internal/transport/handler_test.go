package transport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-oembed-provider/internal/builder"
	"go-oembed-provider/internal/config"
	"go-oembed-provider/internal/repository"
	"go-oembed-provider/internal/service"
	"go-oembed-provider/internal/storage"
	"go-oembed-provider/pkg/models"
	"go-oembed-provider/pkg/validation"

	"github.com/gin-gonic/gin"
)

func newTestHandler() http.Handler {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Host:               "127.0.0.1",
		Port:               "8080",
		RequestTimeout:     5 * time.Second,
		MaxRequestBodySize: 1 << 20,
		ProviderName:       "My Business Name",
		ProviderURL:        "https://mybusiness.com",
		ProviderDomain:     "mybusiness.com",
	}

	fetcher := storage.NewStaticMetadataFetcher(map[string]models.ContentMetadata{
		"/videos/123": {
			Type:            "video",
			Title:           "Test Video & Special Characters",
			EmbedURL:        "https://mybusiness.com/embed/123",
			ThumbnailURL:    "https://mybusiness.com/thumb/123.jpg",
			ThumbnailWidth:  320,
			ThumbnailHeight: 180,
		},
		"/photos/broken": {Type: "photo"},
		"/articles/1":    {Type: "link", Title: "An Article"},
	})

	svc := service.NewOembedService(
		repository.NewMetadataRepository(fetcher),
		validation.NewURLAuthorizer(cfg.ProviderDomain),
		builder.New(cfg.ProviderName, cfg.ProviderURL),
		nil,
	)
	return NewHandler(svc, cfg)
}

func doRequest(handler http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	handler.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, body string) models.ErrorResponse {
	t.Helper()
	var decoded models.ErrorResponse
	if err := json.Unmarshal([]byte(body), &decoded); err != nil {
		t.Fatalf("Expected valid JSON error body, got %q: %v", body, err)
	}
	return decoded
}

func TestHandler_MissingURL(t *testing.T) {
	w := doRequest(newTestHandler(), "/oembed")

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
	decoded := decodeError(t, w.Body.String())
	if decoded.Error.Code != "MISSING_URL" {
		t.Errorf("Expected MISSING_URL, got %s", decoded.Error.Code)
	}
	if decoded.Error.Message != "URL parameter is required" {
		t.Errorf("Unexpected message: %s", decoded.Error.Message)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("Expected CORS header on error response")
	}
}

func TestHandler_MissingURL_XML(t *testing.T) {
	w := doRequest(newTestHandler(), "/oembed?format=xml")

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.HasPrefix(body, `<?xml version="1.0"`) {
		t.Errorf("Expected XML declaration, got: %s", body)
	}
	for _, want := range []string{"<error>", "<code>MISSING_URL</code>", "<message>URL parameter is required</message>"} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected %q in body, got: %s", want, body)
		}
	}
}

func TestHandler_InvalidFormat(t *testing.T) {
	w := doRequest(newTestHandler(), "/oembed?url=https://mybusiness.com/videos/123&format=yaml")

	if w.Code != http.StatusNotImplemented {
		t.Errorf("Expected 501, got %d", w.Code)
	}
	if decoded := decodeError(t, w.Body.String()); decoded.Error.Code != "INVALID_FORMAT" {
		t.Errorf("Expected INVALID_FORMAT, got %s", decoded.Error.Code)
	}
}

func TestHandler_InvalidMaxWidth(t *testing.T) {
	w := doRequest(newTestHandler(), "/oembed?url=https://mybusiness.com/videos/123&maxwidth=abc")

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
	if decoded := decodeError(t, w.Body.String()); decoded.Error.Code != "INVALID_MAXWIDTH" {
		t.Errorf("Expected INVALID_MAXWIDTH, got %s", decoded.Error.Code)
	}
}

func TestHandler_UnauthorizedDomain(t *testing.T) {
	w := doRequest(newTestHandler(), "/oembed?url=https://other-domain.com/video")

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
	if decoded := decodeError(t, w.Body.String()); decoded.Error.Code != "UNAUTHORIZED_DOMAIN" {
		t.Errorf("Expected UNAUTHORIZED_DOMAIN, got %s", decoded.Error.Code)
	}
}

func TestHandler_VideoSuccess(t *testing.T) {
	w := doRequest(newTestHandler(), "/oembed?url=https://mybusiness.com/videos/123&maxwidth=800&maxheight=600")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if w.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Expected application/json, got %s", w.Header().Get("Content-Type"))
	}
	if w.Header().Get("Cache-Control") != "max-age=3600" {
		t.Errorf("Expected max-age=3600, got %s", w.Header().Get("Cache-Control"))
	}

	var resp models.OembedResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Expected valid JSON body: %v", err)
	}
	if resp.Version != "1.0" || resp.Type != "video" {
		t.Errorf("Unexpected response: %+v", resp)
	}
	if resp.Width != 800 || resp.Height != 600 {
		t.Errorf("Expected 800x600, got %dx%d", resp.Width, resp.Height)
	}
	if !strings.Contains(resp.HTML, `width="800" height="600"`) ||
		!strings.Contains(resp.HTML, `sandbox="allow-scripts allow-same-origin allow-presentation"`) {
		t.Errorf("Unexpected html: %s", resp.HTML)
	}
	if resp.ThumbnailURL == "" || resp.ThumbnailWidth != 320 {
		t.Errorf("Expected thumbnail triple, got: %+v", resp)
	}
}

func TestHandler_VideoSuccess_XML(t *testing.T) {
	w := doRequest(newTestHandler(), "/oembed?url=https://mybusiness.com/videos/123&format=xml")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if w.Header().Get("Content-Type") != "text/xml" {
		t.Errorf("Expected text/xml, got %s", w.Header().Get("Content-Type"))
	}
	body := w.Body.String()
	if !strings.Contains(body, "<oembed>") || !strings.Contains(body, "<type>video</type>") {
		t.Errorf("Unexpected XML body: %s", body)
	}
	if !strings.Contains(body, "&amp; Special Characters") {
		t.Errorf("Expected escaped title, got: %s", body)
	}
}

func TestHandler_PhotoMissingSourceURL(t *testing.T) {
	w := doRequest(newTestHandler(), "/oembed?url=https://mybusiness.com/photos/broken")

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", w.Code)
	}
	decoded := decodeError(t, w.Body.String())
	if decoded.Error.Code != "INTERNAL_ERROR" {
		t.Errorf("Expected INTERNAL_ERROR, got %s", decoded.Error.Code)
	}
	// The backend data-integrity detail must not leak to the caller
	if strings.Contains(decoded.Error.Message, "required") {
		t.Errorf("Expected safe generic message, got: %s", decoded.Error.Message)
	}
}

func TestHandler_ContentNotFound(t *testing.T) {
	w := doRequest(newTestHandler(), "/oembed?url=https://mybusiness.com/videos/999")

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
	if decoded := decodeError(t, w.Body.String()); decoded.Error.Code != "CONTENT_NOT_FOUND" {
		t.Errorf("Expected CONTENT_NOT_FOUND, got %s", decoded.Error.Code)
	}
}

func TestHandler_LinkType(t *testing.T) {
	w := doRequest(newTestHandler(), "/oembed?url=https://mybusiness.com/articles/1")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("Expected valid JSON body: %v", err)
	}
	if decoded["type"] != "link" {
		t.Errorf("Expected type link, got %v", decoded["type"])
	}
	for _, absent := range []string{"html", "width", "height", "url"} {
		if _, ok := decoded[absent]; ok {
			t.Errorf("Expected no %s field on link response, got: %v", absent, decoded[absent])
		}
	}
}

func TestHandler_Health(t *testing.T) {
	w := doRequest(newTestHandler(), "/health")

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "available") {
		t.Errorf("Unexpected health body: %s", w.Body.String())
	}
}
