package iframer

import (
	"context"
	"math"
	"strconv"
	"strings"
)

// Media is the normalized result of resolving a URL.
type Media struct {
	// MediaID is generated fresh for every resolution. It is not a cache key.
	MediaID string `json:"mediaId"`

	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	AuthorName  string `json:"authorName,omitempty"`

	// Href always equals the request URL.
	Href   string `json:"href"`
	Domain string `json:"domain,omitempty"`

	Type         string `json:"type,omitempty"`
	ProviderName string `json:"providerName,omitempty"`

	IframeWidth  *int `json:"iframeWidth,omitempty"`
	IframeHeight *int `json:"iframeHeight,omitempty"`

	ThumbnailURL     string `json:"thumbnailUrl,omitempty"`
	ThumbnailWidth   *int   `json:"thumbnailWidth,omitempty"`
	ThumbnailHeight  *int   `json:"thumbnailHeight,omitempty"`
	ThumbnailImageID string `json:"thumbnailImageId,omitempty"`

	IframeSrc string `json:"iframeSrc,omitempty"`

	// IframeAttr never contains src, width or height.
	IframeAttr map[string]string `json:"iframeAttr,omitempty"`
}

// HasEmbed reports whether the media carries an iframe embed.
func (m *Media) HasEmbed() bool {
	return m.IframeSrc != ""
}

// Resolver resolves page URLs into Media records.
type Resolver interface {
	// Resolve always returns a Media record. Network and parsing failures
	// degrade the record; they are never returned to the caller.
	Resolve(ctx context.Context, req *Request) *Media
}

// ParseDimension parses a numeric field supplied as a string.
// It returns nil for absent, non-numeric, non-finite, zero or out-of-range values.
func ParseDimension(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return nil
	}
	n := int(f)
	if n == 0 {
		return nil
	}
	return &n
}
