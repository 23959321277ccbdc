// Package opengraph implements iframer.MetadataExtractor using
// github.com/dyatlov/go-opengraph.
package opengraph

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/dyatlov/go-opengraph/opengraph"
	"github.com/fwojciec/iframer"
)

// Ensure Extractor implements iframer.MetadataExtractor at compile time.
var _ iframer.MetadataExtractor = (*Extractor)(nil)

// Extractor reads Open Graph properties.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractMetadata implements iframer.MetadataExtractor.
func (e *Extractor) ExtractMetadata(pageURL, html string) iframer.Metadata {
	var m iframer.Metadata
	if html == "" {
		return m
	}

	og := opengraph.NewOpenGraph()
	if err := og.ProcessHTML(strings.NewReader(html)); err != nil {
		return m
	}

	m.Title = strings.TrimSpace(og.Title)
	m.Description = strings.TrimSpace(og.Description)
	m.SiteName = strings.TrimSpace(og.SiteName)

	if og.Article != nil {
		for _, author := range og.Article.Authors {
			// Authors are often profile URLs; only names are useful here.
			if author != "" && !strings.HasPrefix(author, "http") {
				m.Author = author
				break
			}
		}
	}

	for _, img := range og.Images {
		src := img.SecureURL
		if src == "" {
			src = img.URL
		}
		if src == "" {
			continue
		}
		m.Image = resolveURL(pageURL, src)
		if img.Width > 0 {
			m.ImageWidth = strconv.FormatUint(img.Width, 10)
		}
		if img.Height > 0 {
			m.ImageHeight = strconv.FormatUint(img.Height, 10)
		}
		break
	}

	return m
}

func resolveURL(pageURL, ref string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}
