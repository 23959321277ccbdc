package iframer

import (
	"context"
	"net/url"
	"regexp"
	"strings"
)

// Provider is a known oEmbed service.
type Provider struct {
	Name      string
	URL       string
	Endpoints []*Endpoint
}

// Endpoint is a provider API endpoint and the page URLs it serves.
type Endpoint struct {
	// URL is the endpoint template. A "{format}" placeholder is replaced with "json".
	URL string

	// Schemes match the page URLs this endpoint accepts.
	// An endpoint without schemes matches every URL on the provider's host.
	Schemes []*regexp.Regexp
}

// Match reports whether the endpoint serves pageURL.
func (e *Endpoint) Match(pageURL string) bool {
	for _, re := range e.Schemes {
		if re.MatchString(pageURL) {
			return true
		}
	}
	return false
}

// Build returns the endpoint URL for pageURL with params appended.
func (e *Endpoint) Build(pageURL string, params Params) (string, error) {
	raw := e.URL
	templated := strings.Contains(raw, "{format}")
	if templated {
		raw = strings.ReplaceAll(raw, "{format}", "json")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", Errorf(EINVALID, "invalid endpoint URL %q: %v", e.URL, err)
	}

	extra := url.Values{"url": {pageURL}}
	if !templated && u.Query().Get("format") == "" {
		extra.Set("format", "json")
	}
	u.RawQuery = appendQuery(u.RawQuery, extra.Encode())
	params.AppendTo(u)

	return u.String(), nil
}

// ProviderRegistry finds oEmbed providers by page URL.
type ProviderRegistry interface {
	// FindProvider returns the provider and endpoint serving pageURL.
	// Returns ENOTFOUND if no provider matches.
	FindProvider(pageURL string) (*Provider, *Endpoint, error)
}

// EmbedClient calls oEmbed endpoints.
type EmbedClient interface {
	// FetchEmbed retrieves and parses the oEmbed response at endpointURL.
	// Both JSON and XML responses are accepted.
	FetchEmbed(ctx context.Context, endpointURL string) (*Embed, error)
}
