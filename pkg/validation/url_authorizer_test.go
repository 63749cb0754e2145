package validation

import (
	"strings"
	"testing"

	apperrors "go-oembed-provider/internal/errors"
)

func TestAuthorize_AuthorizedDomains(t *testing.T) {
	authorizer := NewURLAuthorizer("mybusiness.com")

	validURLs := []string{
		"https://mybusiness.com/videos/123",
		"http://mybusiness.com/photos/456",
		"https://cdn.mybusiness.com/embed/789",
		"https://www.mybusiness.com/",
	}

	for _, url := range validURLs {
		result, err := authorizer.Authorize(url)
		if err != nil {
			t.Errorf("Expected %s to be authorized, got error: %v", url, err)
			continue
		}
		if result.Hostname == "" {
			t.Errorf("Expected hostname for %s", url)
		}
	}
}

func TestAuthorize_UnauthorizedDomain(t *testing.T) {
	authorizer := NewURLAuthorizer("mybusiness.com")

	_, err := authorizer.Authorize("https://other-domain.com/video")
	if err == nil {
		t.Fatal("Expected unauthorized domain to fail")
	}
	if err.Code != apperrors.CodeUnauthorizedDomain {
		t.Errorf("Expected UNAUTHORIZED_DOMAIN, got %s", err.Code)
	}
	if err.StatusCode != 404 {
		t.Errorf("Expected status 404, got %d", err.StatusCode)
	}
	if !strings.Contains(err.Details, "other-domain.com") || !strings.Contains(err.Details, "mybusiness.com") {
		t.Errorf("Expected details to name both values, got %q", err.Details)
	}
}

func TestAuthorize_MalformedURLs(t *testing.T) {
	authorizer := NewURLAuthorizer("mybusiness.com")

	malformed := []string{
		"",
		"://missing-scheme",
		"ftp://mybusiness.com/file",
		"javascript:alert(1)",
		"http://",
		"https://mybusiness.com/" + strings.Repeat("a", MaxURLLength),
	}

	for _, url := range malformed {
		_, err := authorizer.Authorize(url)
		if err == nil {
			t.Errorf("Expected %q to fail authorization", url)
			continue
		}
		if err.Code != apperrors.CodeMalformedURL {
			t.Errorf("Expected MALFORMED_URL for %q, got %s", url, err.Code)
		}
	}
}

func TestAuthorize_MissingProviderDomain(t *testing.T) {
	authorizer := NewURLAuthorizer("")

	_, err := authorizer.Authorize("https://mybusiness.com/videos/123")
	if err == nil {
		t.Fatal("Expected missing provider domain to fail")
	}
	if err.Code != apperrors.CodeMissingProviderDomain {
		t.Errorf("Expected MISSING_PROVIDER_DOMAIN, got %s", err.Code)
	}
	if err.StatusCode != 500 {
		t.Errorf("Expected status 500, got %d", err.StatusCode)
	}
}

func TestAuthorize_ResultParts(t *testing.T) {
	authorizer := NewURLAuthorizer("mybusiness.com")

	result, err := authorizer.Authorize("https://CDN.MyBusiness.com/videos/123?hd=1")
	if err != nil {
		t.Fatalf("Expected authorized URL, got: %v", err)
	}
	if result.Hostname != "cdn.mybusiness.com" {
		t.Errorf("Expected lowercased hostname, got %s", result.Hostname)
	}
	if result.Pathname != "/videos/123" {
		t.Errorf("Unexpected pathname: %s", result.Pathname)
	}
	if result.URL == "" {
		t.Error("Expected canonical URL to be set")
	}
}
