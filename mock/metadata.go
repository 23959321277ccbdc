package mock

import "github.com/fwojciec/iframer"

var _ iframer.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor is a mock implementation of iframer.MetadataExtractor.
type MetadataExtractor struct {
	ExtractMetadataFn func(pageURL, html string) iframer.Metadata
}

func (e *MetadataExtractor) ExtractMetadata(pageURL, html string) iframer.Metadata {
	return e.ExtractMetadataFn(pageURL, html)
}
