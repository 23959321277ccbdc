package oembed

import (
	"context"
	"net/url"

	"github.com/fwojciec/iframer"
	"github.com/fwojciec/iframer/memo"
)

var _ iframer.Strategy = (*DiscoveryStrategy)(nil)

// Discovery link types, in lookup order.
var discoverySelectors = []string{
	`link[type="application/json+oembed"]`,
	`link[type="text/xml+oembed"]`,
}

// DiscoveryStrategy follows the oEmbed discovery link advertised by the page.
// It is skipped for unsupported domains and pages that could not be fetched.
type DiscoveryStrategy struct {
	client iframer.EmbedClient
	urls   *memo.Cache[string]
}

// NewDiscoveryStrategy creates a DiscoveryStrategy calling endpoints through client.
func NewDiscoveryStrategy(client iframer.EmbedClient) *DiscoveryStrategy {
	return &DiscoveryStrategy{
		client: client,
		urls:   memo.New[string](),
	}
}

// Name returns "discovery".
func (s *DiscoveryStrategy) Name() string { return "discovery" }

// Resolve fetches the embed from the page's discovery endpoint.
func (s *DiscoveryStrategy) Resolve(ctx context.Context, sc *iframer.StrategyContext) (*iframer.Embed, error) {
	if !sc.DomainSupported || sc.Document == nil {
		return nil, nil
	}

	endpointURL := s.urls.Do(iframer.MemoKey(sc.URL, sc.Document, sc.Params), func() string {
		return DiscoveryURL(sc.URL, sc.Document, sc.Params)
	})
	if endpointURL == "" {
		return nil, nil
	}

	return s.client.FetchEmbed(ctx, endpointURL)
}

// DiscoveryURL returns the page's advertised oEmbed endpoint resolved
// against pageURL with params appended, or "" if the page has none.
func DiscoveryURL(pageURL string, doc iframer.Document, params iframer.Params) string {
	var href string
	for _, sel := range discoverySelectors {
		if v, ok := doc.Attr(sel, "href"); ok && v != "" {
			href = v
			break
		}
	}
	if href == "" {
		return ""
	}

	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base, err := url.Parse(pageURL); err == nil {
		ref = base.ResolveReference(ref)
	}
	if !ref.IsAbs() {
		return ""
	}

	params.AppendTo(ref)
	return ref.String()
}
