// Package trafilatura implements iframer.MetadataExtractor using
// github.com/markusmobius/go-trafilatura. It is the last resort in the
// metadata chain: slower, but good at finding authors in article bodies.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/iframer"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements iframer.MetadataExtractor at compile time.
var _ iframer.MetadataExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to derive page metadata.
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

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(html), opts)
	if err != nil || result == nil {
		return iframer.Metadata{}
	}

	return iframer.Metadata{
		Title:       strings.TrimSpace(result.Metadata.Title),
		Description: strings.TrimSpace(result.Metadata.Description),
		Author:      strings.TrimSpace(result.Metadata.Author),
		SiteName:    strings.TrimSpace(result.Metadata.Sitename),
	}
}
