// Package resolve turns page URLs into normalized Media records by running
// the page fetcher, the metadata extractors and the embed strategy chain.
package resolve

import (
	"context"
	"time"

	"github.com/fwojciec/iframer"
	"github.com/rs/xid"
)

var _ iframer.Resolver = (*Resolver)(nil)

// DefaultFetchTimeout bounds the page fetch when no timeout is configured.
const DefaultFetchTimeout = 8 * time.Second

// Resolver is the embed resolution pipeline: fetch, extract, resolve, normalize.
//
// Resolve never fails. Fetch errors leave the strategies without a document,
// strategy errors count as "no result", and a miss on every source yields a
// Media holding only its ID and href.
type Resolver struct {
	fetcher  iframer.Fetcher
	parser   iframer.DocumentParser
	metadata iframer.MetadataExtractor
	strategy iframer.Strategy

	domains      iframer.DomainList
	newID        func() string
	fetchTimeout time.Duration
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithDomains sets the list gating the page-based strategies.
// By default every domain is supported.
func WithDomains(domains iframer.DomainList) Option {
	return func(r *Resolver) {
		r.domains = domains
	}
}

// WithIDGenerator replaces the mediaId generator.
func WithIDGenerator(fn func() string) Option {
	return func(r *Resolver) {
		r.newID = fn
	}
}

// WithFetchTimeout sets the page fetch timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		r.fetchTimeout = d
	}
}

// NewResolver creates a Resolver. strategy is usually an oembed.Chain.
func NewResolver(
	fetcher iframer.Fetcher,
	parser iframer.DocumentParser,
	metadata iframer.MetadataExtractor,
	strategy iframer.Strategy,
	opts ...Option,
) *Resolver {
	r := &Resolver{
		fetcher:      fetcher,
		parser:       parser,
		metadata:     metadata,
		strategy:     strategy,
		domains:      iframer.AllDomains{},
		newID:        func() string { return xid.New().String() },
		fetchTimeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the Media record for req.
func (r *Resolver) Resolve(ctx context.Context, req *iframer.Request) (media *iframer.Media) {
	media = &iframer.Media{MediaID: r.newID(), Href: req.URL}
	defer func() {
		if recover() != nil {
			media = &iframer.Media{MediaID: media.MediaID, Href: req.URL, Domain: Domain(req.URL)}
		}
	}()

	doc := r.fetchPage(ctx, req.URL)

	var meta iframer.Metadata
	if doc != nil {
		meta = r.metadata.ExtractMetadata(req.URL, doc.HTML())
	}

	embed, err := r.strategy.Resolve(ctx, &iframer.StrategyContext{
		URL:             req.URL,
		Document:        doc,
		Params:          req.ProviderParams(),
		DomainSupported: r.domains.Supports(req.URL),
	})
	if err != nil {
		embed = nil
	}

	normalized := Normalize(req.URL, meta, embed)
	normalized.MediaID = media.MediaID
	return normalized
}

// fetchPage returns the parsed page, or nil if it could not be fetched or parsed.
func (r *Resolver) fetchPage(ctx context.Context, pageURL string) iframer.Document {
	if pageURL == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.fetchTimeout)
	defer cancel()

	html, err := r.fetcher.Fetch(ctx, pageURL)
	if err != nil || html == "" {
		return nil
	}

	doc, err := r.parser.Parse(html)
	if err != nil {
		return nil
	}
	return doc
}
