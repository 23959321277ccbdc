package oembed

import (
	"context"

	"github.com/fwojciec/iframer"
	"github.com/fwojciec/iframer/memo"
)

var _ iframer.Strategy = (*ProviderStrategy)(nil)

// ProviderStrategy calls the registered oEmbed provider matching the page URL.
// It does not need the page document and ignores the domain gate.
type ProviderStrategy struct {
	registry iframer.ProviderRegistry
	client   iframer.EmbedClient
	lookups  *memo.Cache[*iframer.Endpoint]
}

// NewProviderStrategy creates a ProviderStrategy.
func NewProviderStrategy(registry iframer.ProviderRegistry, client iframer.EmbedClient) *ProviderStrategy {
	return &ProviderStrategy{
		registry: registry,
		client:   client,
		lookups:  memo.New[*iframer.Endpoint](),
	}
}

// Name returns "provider".
func (s *ProviderStrategy) Name() string { return "provider" }

// Resolve fetches the embed from the matching provider endpoint.
func (s *ProviderStrategy) Resolve(ctx context.Context, sc *iframer.StrategyContext) (*iframer.Embed, error) {
	endpoint := s.lookups.Do(sc.URL, func() *iframer.Endpoint {
		_, e, err := s.registry.FindProvider(sc.URL)
		if err != nil {
			return nil
		}
		return e
	})
	if endpoint == nil {
		return nil, nil
	}

	endpointURL, err := endpoint.Build(sc.URL, sc.Params)
	if err != nil {
		return nil, err
	}
	return s.client.FetchEmbed(ctx, endpointURL)
}
