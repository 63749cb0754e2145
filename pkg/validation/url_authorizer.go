package validation

import (
	"fmt"
	"net/url"
	"strings"

	apperrors "go-oembed-provider/internal/errors"
)

// MaxURLLength rejects absurdly long content URLs before parsing
const MaxURLLength = 2048

// URLAuthorizer verifies that a content URL is well formed and belongs to the
// configured provider domain (or one of its subdomains).
type URLAuthorizer struct {
	providerDomain string
	allowedSchemes []string
}

// NewURLAuthorizer creates an authorizer for the given provider domain. An
// empty domain is accepted here and reported per request as a server
// misconfiguration.
func NewURLAuthorizer(providerDomain string) *URLAuthorizer {
	return &URLAuthorizer{
		providerDomain: strings.ToLower(strings.TrimSpace(providerDomain)),
		allowedSchemes: []string{"http", "https"},
	}
}

// AuthResult carries the canonical URL and its parts for downstream use
type AuthResult struct {
	URL      string
	Hostname string
	Pathname string
}

// Authorize validates the content URL, short-circuiting on the first failure
func (a *URLAuthorizer) Authorize(rawURL string) (*AuthResult, *apperrors.AppError) {
	if rawURL == "" || len(rawURL) > MaxURLLength {
		return nil, apperrors.New(apperrors.CodeMalformedURL, "Invalid URL format", nil)
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeMalformedURL, "Invalid URL format", err)
	}

	if !a.isSchemeAllowed(parsed.Scheme) {
		return nil, apperrors.New(apperrors.CodeMalformedURL, "URL scheme must be http or https", nil)
	}

	hostname := strings.ToLower(parsed.Hostname())
	if hostname == "" {
		return nil, apperrors.New(apperrors.CodeMalformedURL, "URL must have a valid host", nil)
	}

	if a.providerDomain == "" {
		return nil, apperrors.New(apperrors.CodeMissingProviderDomain, "Provider domain is not configured", nil)
	}

	// Suffix match so subdomains of the provider domain are authorized
	if !strings.HasSuffix(hostname, a.providerDomain) {
		return nil, apperrors.NewWithDetails(
			apperrors.CodeUnauthorizedDomain,
			"URL domain is not authorized for this provider",
			fmt.Sprintf("hostname %q does not match provider domain %q", hostname, a.providerDomain),
			nil,
		)
	}

	return &AuthResult{
		URL:      parsed.String(),
		Hostname: hostname,
		Pathname: parsed.Path,
	}, nil
}

// isSchemeAllowed checks if the URL scheme is in the allowed list
func (a *URLAuthorizer) isSchemeAllowed(scheme string) bool {
	scheme = strings.ToLower(scheme)
	for _, allowed := range a.allowedSchemes {
		if scheme == allowed {
			return true
		}
	}
	return false
}
