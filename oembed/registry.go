package oembed

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"io"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"github.com/fwojciec/iframer"
)

var _ iframer.ProviderRegistry = (*Registry)(nil)

//go:embed providers.json
var defaultProviders []byte

// Registry is a static list of oEmbed providers, matched in order.
type Registry struct {
	providers []*iframer.Provider
}

// providerJSON is the oembed.com providers.json entry format.
type providerJSON struct {
	Name      string `json:"provider_name"`
	URL       string `json:"provider_url"`
	Endpoints []struct {
		Schemes []string `json:"schemes"`
		URL     string   `json:"url"`
	} `json:"endpoints"`
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// DefaultRegistry returns the registry built from the bundled provider list.
func DefaultRegistry() *Registry {
	defaultOnce.Do(func() {
		r, err := LoadRegistry(bytes.NewReader(defaultProviders))
		if err != nil {
			panic("oembed: invalid bundled providers.json: " + err.Error())
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// NewRegistry creates a registry from providers.
func NewRegistry(providers ...*iframer.Provider) *Registry {
	return &Registry{providers: providers}
}

// LoadRegistry reads a provider list in the oembed.com providers.json format.
// Endpoints without a URL are skipped. An endpoint without schemes matches
// any URL on its provider's host.
func LoadRegistry(r io.Reader) (*Registry, error) {
	var entries []providerJSON
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, iframer.Errorf(iframer.EINVALID, "invalid provider list: %v", err)
	}

	providers := make([]*iframer.Provider, 0, len(entries))
	for _, entry := range entries {
		p := &iframer.Provider{Name: entry.Name, URL: entry.URL}
		for _, ep := range entry.Endpoints {
			if ep.URL == "" {
				continue
			}
			e := &iframer.Endpoint{URL: ep.URL}
			for _, scheme := range ep.Schemes {
				e.Schemes = append(e.Schemes, SchemeRegexp(scheme))
			}
			if len(e.Schemes) == 0 {
				re := hostRegexp(entry.URL)
				if re == nil {
					continue
				}
				e.Schemes = []*regexp.Regexp{re}
			}
			p.Endpoints = append(p.Endpoints, e)
		}
		if len(p.Endpoints) > 0 {
			providers = append(providers, p)
		}
	}
	return NewRegistry(providers...), nil
}

// FindProvider returns the first provider endpoint matching pageURL.
func (r *Registry) FindProvider(pageURL string) (*iframer.Provider, *iframer.Endpoint, error) {
	for _, p := range r.providers {
		for _, e := range p.Endpoints {
			if e.Match(pageURL) {
				return p, e, nil
			}
		}
	}
	return nil, nil, iframer.Errorf(iframer.ENOTFOUND, "no oEmbed provider for %q", pageURL)
}

// Len returns the number of providers.
func (r *Registry) Len() int {
	return len(r.providers)
}

// SchemeRegexp converts an oEmbed URL scheme such as
// "https://*.youtube.com/watch*" into an anchored regular expression.
// A "*" matches any run of characters.
func SchemeRegexp(scheme string) *regexp.Regexp {
	parts := strings.Split(scheme, "*")
	for i, part := range parts {
		parts[i] = regexp.QuoteMeta(part)
	}
	return regexp.MustCompile("^" + strings.Join(parts, ".*") + "$")
}

func hostRegexp(providerURL string) *regexp.Regexp {
	u, err := url.Parse(providerURL)
	if err != nil || u.Hostname() == "" {
		return nil
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	return regexp.MustCompile(`^https?://([^/]+\.)?` + regexp.QuoteMeta(host) + `(/|$)`)
}
