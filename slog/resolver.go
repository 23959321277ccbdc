package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/iframer"
)

// Ensure LoggingResolver implements iframer.Resolver.
var _ iframer.Resolver = (*LoggingResolver)(nil)

// LoggingResolver wraps a Resolver and logs each resolution outcome.
type LoggingResolver struct {
	next   iframer.Resolver
	logger *slog.Logger
}

// NewLoggingResolver creates a new LoggingResolver.
func NewLoggingResolver(next iframer.Resolver, logger *slog.Logger) *LoggingResolver {
	return &LoggingResolver{next: next, logger: logger}
}

// Resolve delegates to the wrapped resolver and logs a summary of the result.
func (r *LoggingResolver) Resolve(ctx context.Context, req *iframer.Request) (media *iframer.Media) {
	defer func(begin time.Time) {
		r.logger.Info("resolve",
			"url", req.URL,
			"media_id", media.MediaID,
			"embed", media.HasEmbed(),
			"title", media.Title != "",
			"duration", time.Since(begin),
		)
	}(time.Now())
	return r.next.Resolve(ctx, req)
}
