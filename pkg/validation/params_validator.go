package validation

import (
	"net/url"
	"strconv"

	apperrors "go-oembed-provider/internal/errors"
	"go-oembed-provider/pkg/models"
)

const (
	// FormatJSON and FormatXML are the only response formats oEmbed 1.0
	// defines.
	FormatJSON = "json"
	FormatXML  = "xml"

	// MaxDimension caps maxwidth/maxheight requests
	MaxDimension = 2048
)

// Result is the outcome of parameter validation. Format always holds a usable
// value (json unless xml was validly requested) so error responses can still
// be rendered in a sensible format.
type Result struct {
	IsValid bool
	Errors  []models.ValidationError
	Format  string
	Params  models.RequestParameters
}

// FirstError returns the first collected error, which is the only one
// surfaced to the caller.
func (r *Result) FirstError() *models.ValidationError {
	if len(r.Errors) == 0 {
		return nil
	}
	return &r.Errors[0]
}

// SanitizeParams percent-decodes url/maxwidth/maxheight and defaults format
// to json when absent. Values that fail to decode are kept as-is. It performs
// no shape or range validation.
func SanitizeParams(raw map[string]string) map[string]string {
	sanitized := make(map[string]string, len(raw))
	for key, value := range raw {
		sanitized[key] = value
	}
	for _, key := range []string{"url", "maxwidth", "maxheight"} {
		if value, ok := sanitized[key]; ok {
			if decoded, err := url.QueryUnescape(value); err == nil {
				sanitized[key] = decoded
			}
		}
	}
	if sanitized["format"] == "" {
		sanitized["format"] = FormatJSON
	}
	return sanitized
}

// ValidateParams checks presence and shape of url, format, maxwidth and
// maxheight. All checks run independently and every discovered error is
// collected, in the order url, format, maxwidth, maxheight. Pure function
// over its input.
func ValidateParams(raw map[string]string) *Result {
	result := &Result{Format: FormatJSON}

	rawURL, hasURL := raw["url"]
	if !hasURL || rawURL == "" {
		result.Errors = append(result.Errors, models.ValidationError{
			Code:    string(apperrors.CodeMissingURL),
			Message: "URL parameter is required",
			Field:   "url",
		})
	}

	if format, ok := raw["format"]; ok && format != "" {
		switch format {
		case FormatJSON:
		case FormatXML:
			result.Format = FormatXML
		default:
			result.Errors = append(result.Errors, models.ValidationError{
				Code:    string(apperrors.CodeInvalidFormat),
				Message: "Format must be either json or xml",
				Field:   "format",
			})
		}
	}

	maxWidth := validateDimension(raw, "maxwidth", apperrors.CodeInvalidMaxWidth, &result.Errors)
	maxHeight := validateDimension(raw, "maxheight", apperrors.CodeInvalidMaxHeight, &result.Errors)

	result.IsValid = len(result.Errors) == 0
	if result.IsValid {
		result.Params = models.RequestParameters{
			URL:       rawURL,
			Format:    result.Format,
			MaxWidth:  maxWidth,
			MaxHeight: maxHeight,
		}
	}
	return result
}

// validateDimension parses an optional dimension parameter. Non-numeric,
// non-integer and out-of-range values all produce the same code.
func validateDimension(raw map[string]string, key string, code apperrors.Code, errs *[]models.ValidationError) int {
	value, ok := raw[key]
	if !ok || value == "" {
		return 0
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 || n > MaxDimension {
		*errs = append(*errs, models.ValidationError{
			Code:    string(code),
			Message: key + " must be an integer between 1 and 2048",
			Field:   key,
		})
		return 0
	}
	return n
}
