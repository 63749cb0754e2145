package formatter

import (
	"encoding/json"
	"strings"
	"testing"

	apperrors "go-oembed-provider/internal/errors"
	"go-oembed-provider/pkg/models"
)

func sampleResponse() *models.OembedResponse {
	return &models.OembedResponse{
		Version:      "1.0",
		Type:         "video",
		Title:        "Test Video & Special Characters",
		ProviderName: "My Business Name",
		ProviderURL:  "https://mybusiness.com",
		CacheAge:     3600,
		Width:        800,
		Height:       600,
		HTML:         `<iframe src="https://mybusiness.com/embed/123"></iframe>`,
	}
}

func TestFormat_JSON(t *testing.T) {
	result := Format(sampleResponse(), "json")

	if result.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", result.StatusCode)
	}
	if result.Headers["Content-Type"] != "application/json" {
		t.Errorf("Expected application/json, got %s", result.Headers["Content-Type"])
	}
	if result.Headers["Cache-Control"] != "max-age=3600" {
		t.Errorf("Expected max-age=3600, got %s", result.Headers["Cache-Control"])
	}
	if result.Headers["Access-Control-Allow-Origin"] != "*" {
		t.Error("Expected CORS header on success response")
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(result.Body), &decoded); err != nil {
		t.Fatalf("Expected valid JSON body: %v", err)
	}
	if decoded["version"] != "1.0" || decoded["type"] != "video" {
		t.Errorf("Unexpected body: %s", result.Body)
	}
}

func TestFormat_XML(t *testing.T) {
	result := Format(sampleResponse(), "xml")

	if result.Headers["Content-Type"] != "text/xml" {
		t.Errorf("Expected text/xml, got %s", result.Headers["Content-Type"])
	}
	if !strings.HasPrefix(result.Body, `<?xml version="1.0" encoding="utf-8" standalone="yes"?>`) {
		t.Errorf("Expected XML declaration, got: %s", result.Body)
	}
	if !strings.Contains(result.Body, "<oembed>") || !strings.Contains(result.Body, "</oembed>") {
		t.Errorf("Expected oembed root element, got: %s", result.Body)
	}
	if !strings.Contains(result.Body, "<title>Test Video &amp; Special Characters</title>") {
		t.Errorf("Expected escaped title, got: %s", result.Body)
	}
	if !strings.Contains(result.Body, "<width>800</width>") {
		t.Errorf("Expected string-coerced width, got: %s", result.Body)
	}
	if strings.Contains(result.Body, "<iframe") {
		t.Errorf("Expected html field escaped, got: %s", result.Body)
	}
}

func TestFormat_JSONAndXMLFieldParity(t *testing.T) {
	resp := sampleResponse()
	jsonResult := Format(resp, "json")
	xmlResult := Format(resp, "xml")

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(jsonResult.Body), &decoded); err != nil {
		t.Fatalf("Expected valid JSON body: %v", err)
	}

	for key := range decoded {
		if !strings.Contains(xmlResult.Body, "<"+key+">") {
			t.Errorf("JSON field %q missing from XML body", key)
		}
	}
	for _, field := range resp.Fields() {
		if _, ok := decoded[field.Key]; !ok {
			t.Errorf("XML field %q missing from JSON body", field.Key)
		}
	}
}

func TestFormat_DefaultCacheControl(t *testing.T) {
	resp := sampleResponse()
	resp.CacheAge = 0
	result := Format(resp, "json")

	if result.Headers["Cache-Control"] != "max-age=3600" {
		t.Errorf("Expected default max-age=3600, got %s", result.Headers["Cache-Control"])
	}
}

func TestFormatError_JSON(t *testing.T) {
	result := FormatError(400, "URL parameter is required", "json", apperrors.CodeMissingURL, "")

	if result.StatusCode != 400 {
		t.Errorf("Expected status 400, got %d", result.StatusCode)
	}
	if result.Headers["Access-Control-Allow-Origin"] != "*" {
		t.Error("Expected CORS header on error response")
	}

	var decoded models.ErrorResponse
	if err := json.Unmarshal([]byte(result.Body), &decoded); err != nil {
		t.Fatalf("Expected valid JSON body: %v", err)
	}
	if decoded.Error.Code != "MISSING_URL" {
		t.Errorf("Expected MISSING_URL, got %s", decoded.Error.Code)
	}
	if decoded.Error.Message != "URL parameter is required" {
		t.Errorf("Unexpected message: %s", decoded.Error.Message)
	}
	if decoded.Error.Timestamp == "" || decoded.Error.RequestID == "" {
		t.Error("Expected fresh timestamp and requestId")
	}
	if !strings.HasPrefix(decoded.Error.RequestID, "req_") {
		t.Errorf("Expected req_ prefix, got %s", decoded.Error.RequestID)
	}
	if decoded.Error.Details != "" {
		t.Errorf("Expected no details, got %q", decoded.Error.Details)
	}
}

func TestFormatError_XML(t *testing.T) {
	result := FormatError(400, "URL parameter is required", "xml", apperrors.CodeMissingURL, "")

	if !strings.HasPrefix(result.Body, `<?xml version="1.0"`) {
		t.Errorf("Expected XML declaration, got: %s", result.Body)
	}
	for _, want := range []string{"<error>", "<code>MISSING_URL</code>", "<message>URL parameter is required</message>", "<requestId>"} {
		if !strings.Contains(result.Body, want) {
			t.Errorf("Expected %q in XML error body, got: %s", want, result.Body)
		}
	}
}

func TestFormatError_DefaultCodes(t *testing.T) {
	tests := []struct {
		status   int
		expected string
	}{
		{400, "BAD_REQUEST"},
		{401, "UNAUTHORIZED"},
		{404, "NOT_FOUND"},
		{501, "NOT_IMPLEMENTED"},
		{500, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		result := FormatError(tt.status, "boom", "json", "", "")
		var decoded models.ErrorResponse
		if err := json.Unmarshal([]byte(result.Body), &decoded); err != nil {
			t.Fatalf("Expected valid JSON body: %v", err)
		}
		if decoded.Error.Code != tt.expected {
			t.Errorf("Status %d: expected %s, got %s", tt.status, tt.expected, decoded.Error.Code)
		}
	}
}

func TestFormatError_Details(t *testing.T) {
	result := FormatError(404, "URL domain is not authorized", "json", apperrors.CodeUnauthorizedDomain, "hostname mismatch")

	var decoded models.ErrorResponse
	if err := json.Unmarshal([]byte(result.Body), &decoded); err != nil {
		t.Fatalf("Expected valid JSON body: %v", err)
	}
	if decoded.Error.Details != "hostname mismatch" {
		t.Errorf("Expected details, got %q", decoded.Error.Details)
	}
}

func TestNewRequestID(t *testing.T) {
	first := NewRequestID()
	second := NewRequestID()

	if !strings.HasPrefix(first, "req_") {
		t.Errorf("Expected req_ prefix, got %s", first)
	}
	if first == second {
		t.Errorf("Expected distinct request IDs, got %s twice", first)
	}
}
