// Package goquery implements HTML inspection for iframer using
// github.com/PuerkitoBio/goquery: page documents, meta-tag metadata rules,
// and iframe extraction from oEmbed markup.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/iframer"
)

var (
	_ iframer.Document       = (*Document)(nil)
	_ iframer.DocumentParser = (*Parser)(nil)
)

// Document is a parsed HTML page identified by the xxhash of its markup.
type Document struct {
	doc  *goquery.Document
	html string
	hash uint64
}

// NewDocument parses html into a Document.
func NewDocument(html string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, iframer.Errorf(iframer.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Document{
		doc:  doc,
		html: html,
		hash: xxhash.Sum64String(html),
	}, nil
}

// HTML returns the markup the document was parsed from.
func (d *Document) HTML() string {
	return d.html
}

// Hash returns the xxhash of the markup.
func (d *Document) Hash() uint64 {
	return d.hash
}

// Attr returns the attribute of the first element matching selector.
func (d *Document) Attr(selector, attr string) (string, bool) {
	return d.doc.Find(selector).First().Attr(attr)
}

// Parser creates Documents.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse implements iframer.DocumentParser.
func (p *Parser) Parse(html string) (iframer.Document, error) {
	return NewDocument(html)
}
