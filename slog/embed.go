package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/iframer"
)

// Ensure LoggingEmbedClient implements iframer.EmbedClient.
var _ iframer.EmbedClient = (*LoggingEmbedClient)(nil)

// LoggingEmbedClient wraps an EmbedClient and logs each endpoint call.
type LoggingEmbedClient struct {
	next   iframer.EmbedClient
	logger *slog.Logger
}

// NewLoggingEmbedClient creates a new LoggingEmbedClient.
func NewLoggingEmbedClient(next iframer.EmbedClient, logger *slog.Logger) *LoggingEmbedClient {
	return &LoggingEmbedClient{next: next, logger: logger}
}

// FetchEmbed delegates to the wrapped client and logs the endpoint call.
func (c *LoggingEmbedClient) FetchEmbed(ctx context.Context, endpointURL string) (embed *iframer.Embed, err error) {
	defer func(begin time.Time) {
		var typ string
		if embed != nil {
			typ = embed.Type
		}
		c.logger.Info("oembed",
			"endpoint", endpointURL,
			"type", typ,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.FetchEmbed(ctx, endpointURL)
}
