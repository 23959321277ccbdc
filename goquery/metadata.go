package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/iframer"
	"github.com/tidwall/gjson"
)

var _ iframer.MetadataExtractor = (*MetadataExtractor)(nil)

// rule reads a candidate value from a selection. The first non-empty
// candidate of a field wins.
type rule struct {
	selector string
	attr     string // empty means text content
}

var (
	titleRules = []rule{
		{`meta[property="og:title"]`, "content"},
		{`meta[name="twitter:title"]`, "content"},
		{`meta[property="twitter:title"]`, "content"},
		{`title`, ""},
		{`h1`, ""},
	}
	descriptionRules = []rule{
		{`meta[property="og:description"]`, "content"},
		{`meta[name="twitter:description"]`, "content"},
		{`meta[property="twitter:description"]`, "content"},
		{`meta[name="description"]`, "content"},
		{`meta[itemprop="description"]`, "content"},
	}
	authorRules = []rule{
		{`meta[name="author"]`, "content"},
		{`meta[property="article:author"]`, "content"},
		{`meta[property="og:article:author"]`, "content"},
		{`[itemprop="author"] [itemprop="name"]`, ""},
		{`[itemprop="author"]`, "content"},
		{`[rel="author"]`, ""},
	}
	imageRules = []rule{
		{`meta[property="og:image:secure_url"]`, "content"},
		{`meta[property="og:image"]`, "content"},
		{`meta[property="og:image:url"]`, "content"},
		{`meta[name="twitter:image"]`, "content"},
		{`meta[name="twitter:image:src"]`, "content"},
		{`meta[property="twitter:image"]`, "content"},
		{`link[rel="image_src"]`, "href"},
		{`meta[itemprop="image"]`, "content"},
	}
	siteNameRules = []rule{
		{`meta[property="og:site_name"]`, "content"},
		{`meta[name="application-name"]`, "content"},
	}
)

// jsonLDAuthorPaths are gjson paths for an author name in a JSON-LD block.
var jsonLDAuthorPaths = []string{
	"author.name",
	"author.0.name",
	"author",
	"creator.name",
}

// MetadataExtractor finds page metadata using meta-tag conventions
// (Open Graph, Twitter cards, schema.org microdata and JSON-LD).
type MetadataExtractor struct{}

// NewMetadataExtractor creates a new MetadataExtractor.
func NewMetadataExtractor() *MetadataExtractor {
	return &MetadataExtractor{}
}

// ExtractMetadata implements iframer.MetadataExtractor.
func (e *MetadataExtractor) ExtractMetadata(pageURL, html string) iframer.Metadata {
	var m iframer.Metadata
	if html == "" {
		return m
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return m
	}

	m.Title = firstMatch(doc, titleRules)
	m.Description = firstMatch(doc, descriptionRules)
	m.SiteName = firstMatch(doc, siteNameRules)

	m.Author = jsonLDAuthor(doc)
	if m.Author == "" {
		m.Author = firstMatch(doc, authorRules)
	}
	// article:author is frequently a profile URL rather than a name.
	if isURL(m.Author) {
		m.Author = ""
	}

	if image := firstMatch(doc, imageRules); image != "" {
		m.Image = resolveURL(pageURL, image)
		m.ImageWidth = attr(doc, `meta[property="og:image:width"]`, "content")
		m.ImageHeight = attr(doc, `meta[property="og:image:height"]`, "content")
	}

	return m
}

func firstMatch(doc *goquery.Document, rules []rule) string {
	for _, r := range rules {
		if v := attr(doc, r.selector, r.attr); v != "" {
			return v
		}
	}
	return ""
}

func attr(doc *goquery.Document, selector, name string) string {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return ""
	}
	if name == "" {
		return normalizeSpace(sel.Text())
	}
	v, _ := sel.Attr(name)
	return normalizeSpace(v)
}

func jsonLDAuthor(doc *goquery.Document) string {
	var author string
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		raw := sel.Text()
		if !gjson.Valid(raw) {
			return true
		}
		for _, path := range jsonLDAuthorPaths {
			res := gjson.Get(raw, path)
			if res.Type == gjson.String && strings.TrimSpace(res.Str) != "" {
				author = normalizeSpace(res.Str)
				return false
			}
		}
		return true
	})
	return author
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

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
