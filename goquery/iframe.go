package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Iframe is the first iframe element found in embed markup.
type Iframe struct {
	Src    string
	Width  string
	Height string

	// Attr holds every other attribute of the element.
	Attr map[string]string
}

// ExtractIframe returns the first iframe element in markup.
// Returns false if the markup contains no iframe.
func ExtractIframe(markup string) (*Iframe, bool) {
	if strings.TrimSpace(markup) == "" {
		return nil, false
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, false
	}

	sel := doc.Find("iframe").First()
	if sel.Length() == 0 {
		return nil, false
	}

	iframe := &Iframe{Attr: make(map[string]string)}
	for _, a := range sel.Nodes[0].Attr {
		switch strings.ToLower(a.Key) {
		case "src":
			iframe.Src = a.Val
		case "width":
			iframe.Width = a.Val
		case "height":
			iframe.Height = a.Val
		default:
			iframe.Attr[a.Key] = a.Val
		}
	}

	return iframe, true
}
