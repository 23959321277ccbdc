package iframer

// Metadata holds page-level metadata found via standard meta-tag conventions.
// All fields are optional.
type Metadata struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Author      string `json:"author,omitempty"`
	SiteName    string `json:"siteName,omitempty"`
	Image       string `json:"image,omitempty"`
	ImageWidth  string `json:"imageWidth,omitempty"`
	ImageHeight string `json:"imageHeight,omitempty"`
}

// IsComplete reports whether every field the normalizer consumes is set.
func (m *Metadata) IsComplete() bool {
	return m.Title != "" && m.Description != "" && m.Author != "" && m.Image != ""
}

// Merge fills empty fields of m from other. Image dimensions travel with
// the image they describe.
func (m *Metadata) Merge(other Metadata) {
	if m.Title == "" {
		m.Title = other.Title
	}
	if m.Description == "" {
		m.Description = other.Description
	}
	if m.Author == "" {
		m.Author = other.Author
	}
	if m.SiteName == "" {
		m.SiteName = other.SiteName
	}
	if m.Image == "" && other.Image != "" {
		m.Image = other.Image
		m.ImageWidth = other.ImageWidth
		m.ImageHeight = other.ImageHeight
	}
}

// MetadataExtractor pulls metadata out of a page. It has no error channel:
// missing tags, unparseable markup and empty input all yield empty fields.
type MetadataExtractor interface {
	ExtractMetadata(pageURL, html string) Metadata
}

// MetadataChain runs extractors in order, filling only the gaps left by
// earlier ones. It stops once every field is set.
type MetadataChain []MetadataExtractor

// ExtractMetadata implements MetadataExtractor.
func (c MetadataChain) ExtractMetadata(pageURL, html string) Metadata {
	var m Metadata
	if html == "" {
		return m
	}
	for _, e := range c {
		m.Merge(e.ExtractMetadata(pageURL, html))
		if m.IsComplete() {
			break
		}
	}
	return m
}
