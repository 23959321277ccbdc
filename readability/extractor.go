// Package readability implements iframer.MetadataExtractor using
// github.com/go-shiori/go-readability. It is a fallback for pages whose
// author and summary are only discoverable from the article body.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/iframer"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements iframer.MetadataExtractor at compile time.
var _ iframer.MetadataExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to derive page metadata.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractMetadata implements iframer.MetadataExtractor.
func (e *Extractor) ExtractMetadata(pageURL, html string) iframer.Metadata {
	if html == "" {
		return iframer.Metadata{}
	}

	// A nil page URL is accepted; relative image links then stay relative.
	u, _ := url.Parse(pageURL)

	article, err := readability.FromReader(strings.NewReader(html), u)
	if err != nil {
		return iframer.Metadata{}
	}

	return iframer.Metadata{
		Title:       strings.TrimSpace(article.Title),
		Description: strings.TrimSpace(article.Excerpt),
		Author:      strings.TrimSpace(article.Byline),
		SiteName:    strings.TrimSpace(article.SiteName),
		Image:       strings.TrimSpace(article.Image),
	}
}
