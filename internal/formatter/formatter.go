// Package formatter serializes oEmbed success and error payloads into the
// JSON or XML bodies the transport writes out, with the matching headers.
package formatter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	apperrors "go-oembed-provider/internal/errors"
	"go-oembed-provider/pkg/models"

	"github.com/google/uuid"
)

const xmlDeclaration = `<?xml version="1.0" encoding="utf-8" standalone="yes"?>`

// Result is a transport-agnostic rendering of a response
type Result struct {
	StatusCode int
	Headers    map[string]string
	Body       string
}

// Format serializes a success response in the requested format. Formatting
// never fails for well-formed response objects; fields are string-coerced
// during XML serialization.
func Format(resp *models.OembedResponse, format string) *Result {
	cacheAge := resp.CacheAge
	if cacheAge == 0 {
		cacheAge = 3600
	}

	headers := map[string]string{
		"Cache-Control":               "max-age=" + strconv.Itoa(cacheAge),
		"Access-Control-Allow-Origin": "*",
	}

	if format == "xml" {
		headers["Content-Type"] = "text/xml"
		return &Result{
			StatusCode: http.StatusOK,
			Headers:    headers,
			Body:       renderXML("oembed", resp.Fields()),
		}
	}

	headers["Content-Type"] = "application/json"
	body, _ := json.Marshal(resp)
	return &Result{
		StatusCode: http.StatusOK,
		Headers:    headers,
		Body:       string(body),
	}
}

// FormatError renders an error response. Every error body carries the same
// four core fields (code, message, timestamp, requestId) so callers can
// correlate support requests; timestamp and requestId are generated fresh per
// call. An empty code defaults from the HTTP status.
func FormatError(statusCode int, message, format string, code apperrors.Code, details string) *Result {
	if code == "" {
		code = codeForStatus(statusCode)
	}

	body := models.ErrorBody{
		Code:      string(code),
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: NewRequestID(),
		Details:   details,
	}

	headers := map[string]string{
		"Access-Control-Allow-Origin": "*",
	}

	if format == "xml" {
		headers["Content-Type"] = "text/xml"
		fields := []models.Field{
			{Key: "code", Value: body.Code},
			{Key: "message", Value: body.Message},
			{Key: "timestamp", Value: body.Timestamp},
			{Key: "requestId", Value: body.RequestID},
		}
		if body.Details != "" {
			fields = append(fields, models.Field{Key: "details", Value: body.Details})
		}
		return &Result{
			StatusCode: statusCode,
			Headers:    headers,
			Body:       renderXML("error", fields),
		}
	}

	headers["Content-Type"] = "application/json"
	payload, _ := json.Marshal(models.ErrorResponse{Error: body})
	return &Result{
		StatusCode: statusCode,
		Headers:    headers,
		Body:       string(payload),
	}
}

// NewRequestID generates a human-debuggable request identifier: a fixed
// prefix, a time-based component and a random component. Not guaranteed
// globally unique.
func NewRequestID() string {
	return fmt.Sprintf("req_%s_%s",
		strconv.FormatInt(time.Now().UnixMilli(), 36),
		strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// renderXML emits the declaration plus a flat root element with one child per
// field, in field order. Only scalar values occur; nested values are out of
// contract.
func renderXML(root string, fields []models.Field) string {
	var sb strings.Builder
	sb.WriteString(xmlDeclaration)
	sb.WriteString("\n<")
	sb.WriteString(root)
	sb.WriteString(">")
	for _, f := range fields {
		sb.WriteString("<")
		sb.WriteString(f.Key)
		sb.WriteString(">")
		sb.WriteString(escapeXML(f.Value))
		sb.WriteString("</")
		sb.WriteString(f.Key)
		sb.WriteString(">")
	}
	sb.WriteString("</")
	sb.WriteString(root)
	sb.WriteString(">")
	return sb.String()
}

// escapeXML replaces the five XML-significant characters with named entities
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}

// codeForStatus picks the default taxonomy code for an HTTP status
func codeForStatus(statusCode int) apperrors.Code {
	switch statusCode {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusNotImplemented:
		return "NOT_IMPLEMENTED"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}
