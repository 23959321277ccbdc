package iframer

import "context"

// Document is a parsed HTML page. It is never modified after creation.
type Document interface {
	// HTML returns the raw markup the document was parsed from.
	HTML() string

	// Hash identifies the document content. Equal markup yields equal hashes.
	Hash() uint64

	// Attr returns the attribute of the first element matching the CSS selector.
	Attr(selector, attr string) (string, bool)
}

// DocumentParser parses raw HTML into a Document.
type DocumentParser interface {
	Parse(html string) (Document, error)
}

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch retrieves the page at url and returns its HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}
