// Package htmlgen builds the embed markup carried in oEmbed responses.
// Generators never fail: any unusable input falls back to a fixed, safe
// placeholder so the response pipeline cannot be broken by bad metadata.
package htmlgen

import (
	"fmt"
	"net/url"
	"strings"

	"go-oembed-provider/pkg/models"
)

const (
	videoPlaceholder   = `<div style="padding:20px;text-align:center;color:#666;">Video not available</div>`
	galleryPlaceholder = `<div style="padding:20px;text-align:center;color:#666;">Gallery not available</div>`

	// Permissions granted to video iframes
	videoAllowList = "accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture"

	// Sandbox applied to every generated iframe
	iframeSandbox = "allow-scripts allow-same-origin allow-presentation"
)

// EscapeHTML escapes the five HTML-significant characters plus forward slash.
// Substitutions are applied sequentially, ampersand first, so entities
// introduced by later steps are not double-escaped.
func EscapeHTML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	s = strings.ReplaceAll(s, "'", "&#39;")
	s = strings.ReplaceAll(s, "/", "&#x2F;")
	return s
}

// SanitizeURL parses a URL, accepts only http/https, and returns the
// canonical re-serialized form. Returns an empty string on any parse failure
// or disallowed scheme, which callers treat as "use the placeholder".
func SanitizeURL(raw string) string {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return ""
	}
	if parsed.Host == "" {
		return ""
	}
	return parsed.String()
}

// VideoEmbed emits a sandboxed iframe for video content. Falls back to the
// video placeholder when no usable embed URL is present.
func VideoEmbed(meta *models.ContentMetadata, width, height int) string {
	embedURL := meta.EmbedURL
	if embedURL == "" {
		embedURL = meta.URL
	}
	src := SanitizeURL(embedURL)
	if src == "" {
		return videoPlaceholder
	}

	width, height = fallbackDimensions(width, height, meta, 640, 360)
	return fmt.Sprintf(
		`<iframe width="%d" height="%d" src="%s" frameborder="0" allow="%s" allowfullscreen sandbox="%s"></iframe>`,
		width, height, src, videoAllowList, iframeSandbox)
}

// RichContainer wraps rich content in a bordered, scrollable container.
// Pre-built html from the backend is trusted and passed through verbatim.
func RichContainer(meta *models.ContentMetadata, width, height int) string {
	if meta.HTML != "" {
		return meta.HTML
	}

	content := meta.Content
	if content == "" {
		content = "Rich content"
	}
	width, height = fallbackDimensions(width, height, meta, 500, 300)
	return fmt.Sprintf(
		`<div style="border:1px solid #ddd;border-radius:4px;padding:16px;width:%dpx;height:%dpx;overflow:auto;">%s</div>`,
		width, height, EscapeHTML(content))
}

// WidgetEmbed emits a sandboxed iframe for widget content when an embed URL
// is present (without allowfullscreen), otherwise a styled container around
// the supplied html or content.
func WidgetEmbed(meta *models.ContentMetadata, width, height int) string {
	embedURL := meta.EmbedURL
	if embedURL == "" {
		embedURL = meta.URL
	}
	width, height = fallbackDimensions(width, height, meta, 500, 300)

	if src := SanitizeURL(embedURL); src != "" {
		return fmt.Sprintf(
			`<iframe width="%d" height="%d" src="%s" frameborder="0" sandbox="%s"></iframe>`,
			width, height, src, iframeSandbox)
	}

	content := meta.HTML
	if content == "" {
		content = meta.Content
	}
	if content == "" {
		content = "Interactive widget"
	}
	return fmt.Sprintf(
		`<div style="border:1px solid #ddd;border-radius:4px;padding:16px;width:%dpx;height:%dpx;overflow:auto;">%s</div>`,
		width, height, content)
}

// GalleryEmbed joins the surviving images into a scrollable container.
// Entries whose URL fails sanitization are skipped; alt text is escaped and
// defaults to "Image N" for the Nth entry. Returns the gallery placeholder
// when no entries survive.
func GalleryEmbed(images []models.GalleryImage, width, height int) string {
	var items []string
	for i, img := range images {
		src := SanitizeURL(img.URL)
		if src == "" {
			continue
		}
		alt := img.Alt
		if alt == "" {
			alt = fmt.Sprintf("Image %d", i+1)
		}
		items = append(items, fmt.Sprintf(
			`<img src="%s" alt="%s" style="max-height:100%%;margin-right:8px;"/>`,
			src, EscapeHTML(alt)))
	}
	if len(items) == 0 {
		return galleryPlaceholder
	}

	if width == 0 {
		width = 500
	}
	if height == 0 {
		height = 300
	}
	return fmt.Sprintf(
		`<div style="display:flex;overflow-x:auto;width:%dpx;height:%dpx;">%s</div>`,
		width, height, strings.Join(items, ""))
}

// ResponsiveWrapper wraps embed HTML in a padding-bottom aspect-ratio box.
// The percentage is height/width*100 when both are known, else 56.25 (16:9).
func ResponsiveWrapper(html string, width, height int) string {
	pct := 56.25
	if width > 0 && height > 0 {
		pct = float64(height) / float64(width) * 100
	}
	return fmt.Sprintf(
		`<div style="position:relative;padding-bottom:%s%%;height:0;overflow:hidden;">%s</div>`,
		formatPercent(pct), html)
}

func formatPercent(pct float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", pct), "0"), ".")
}

// fallbackDimensions resolves the effective embed size: caller-provided
// values win, then metadata dimensions, then the content-type defaults.
func fallbackDimensions(width, height int, meta *models.ContentMetadata, defW, defH int) (int, int) {
	if width == 0 {
		width = meta.Width
	}
	if width == 0 {
		width = defW
	}
	if height == 0 {
		height = meta.Height
	}
	if height == 0 {
		height = defH
	}
	return width, height
}
