package transport

import (
	"context"
	"net/http"
	"time"

	"go-oembed-provider/internal/config"
	apperrors "go-oembed-provider/internal/errors"
	"go-oembed-provider/internal/formatter"
	"go-oembed-provider/internal/logger"
	"go-oembed-provider/internal/service"
	"go-oembed-provider/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewHandler wires the oEmbed routes onto a gin engine
func NewHandler(svc service.OembedService, cfg *config.Config) http.Handler {
	r := gin.Default()

	r.Use(requestSizeLimiter(cfg.MaxRequestBodySize))

	r.GET("/health", healthCheck)
	r.GET("/oembed", handleOembed(svc, cfg))

	return r
}

// handleOembed runs the full pipeline: sanitize -> validate -> resolve ->
// format. Only the first validation error is surfaced to the caller.
func handleOembed(svc service.OembedService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		logger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"ip":     c.ClientIP(),
		}).Info("Processing oEmbed request")

		raw := map[string]string{}
		for _, key := range []string{"url", "format", "maxwidth", "maxheight"} {
			if value, ok := c.GetQuery(key); ok {
				raw[key] = value
			}
		}

		result := validation.ValidateParams(validation.SanitizeParams(raw))
		if !result.IsValid {
			first := result.FirstError()
			code := apperrors.Code(first.Code)
			logger.WithFields(logrus.Fields{
				"code":  first.Code,
				"field": first.Field,
				"ip":    c.ClientIP(),
			}).Error("Invalid oEmbed request parameters")
			writeResult(c, formatter.FormatError(apperrors.StatusForCode(code), first.Message, result.Format, code, ""))
			return
		}

		resp, appErr := svc.ResolveEmbed(ctx, result.Params)
		if appErr != nil {
			logger.WithError(appErr).WithFields(logrus.Fields{
				"url":         result.Params.URL,
				"status_code": appErr.StatusCode,
				"ip":          c.ClientIP(),
			}).Error("oEmbed request failed")
			writeResult(c, formatter.FormatError(appErr.StatusCode, appErr.Message, result.Format, appErr.Code, appErr.Details))
			return
		}

		logger.WithFields(logrus.Fields{
			"url":                result.Params.URL,
			"type":               resp.Type,
			"format":             result.Params.Format,
			"processing_time_ms": time.Since(startTime).Milliseconds(),
		}).Info("oEmbed request completed successfully")

		writeResult(c, formatter.Format(resp, result.Params.Format))
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": "1.0.0",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// writeResult copies a formatter result onto the wire
func writeResult(c *gin.Context, result *formatter.Result) {
	for key, value := range result.Headers {
		c.Header(key, value)
	}
	c.Data(result.StatusCode, result.Headers["Content-Type"], []byte(result.Body))
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
