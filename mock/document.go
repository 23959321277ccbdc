package mock

import "github.com/fwojciec/iframer"

var (
	_ iframer.Document       = (*Document)(nil)
	_ iframer.DocumentParser = (*DocumentParser)(nil)
)

// Document is a mock implementation of iframer.Document.
type Document struct {
	HTMLFn func() string
	HashFn func() uint64
	AttrFn func(selector, attr string) (string, bool)
}

func (d *Document) HTML() string {
	return d.HTMLFn()
}

func (d *Document) Hash() uint64 {
	return d.HashFn()
}

func (d *Document) Attr(selector, attr string) (string, bool) {
	return d.AttrFn(selector, attr)
}

// DocumentParser is a mock implementation of iframer.DocumentParser.
type DocumentParser struct {
	ParseFn func(html string) (iframer.Document, error)
}

func (p *DocumentParser) Parse(html string) (iframer.Document, error) {
	return p.ParseFn(html)
}
