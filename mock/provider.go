package mock

import (
	"context"

	"github.com/fwojciec/iframer"
)

var (
	_ iframer.ProviderRegistry = (*ProviderRegistry)(nil)
	_ iframer.EmbedClient      = (*EmbedClient)(nil)
)

// ProviderRegistry is a mock implementation of iframer.ProviderRegistry.
type ProviderRegistry struct {
	FindProviderFn func(pageURL string) (*iframer.Provider, *iframer.Endpoint, error)
}

func (r *ProviderRegistry) FindProvider(pageURL string) (*iframer.Provider, *iframer.Endpoint, error) {
	return r.FindProviderFn(pageURL)
}

// EmbedClient is a mock implementation of iframer.EmbedClient.
type EmbedClient struct {
	FetchEmbedFn func(ctx context.Context, endpointURL string) (*iframer.Embed, error)
}

func (c *EmbedClient) FetchEmbed(ctx context.Context, endpointURL string) (*iframer.Embed, error) {
	return c.FetchEmbedFn(ctx, endpointURL)
}
