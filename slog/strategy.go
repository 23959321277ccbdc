package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/iframer"
)

// Ensure LoggingStrategy implements iframer.Strategy.
var _ iframer.Strategy = (*LoggingStrategy)(nil)

// LoggingStrategy wraps a Strategy and logs every attempt. Wrap each strategy
// of a chain separately to see which one produced the embed.
type LoggingStrategy struct {
	next   iframer.Strategy
	logger *slog.Logger
}

// NewLoggingStrategy creates a new LoggingStrategy.
func NewLoggingStrategy(next iframer.Strategy, logger *slog.Logger) *LoggingStrategy {
	return &LoggingStrategy{next: next, logger: logger}
}

// Name returns the wrapped strategy's name.
func (s *LoggingStrategy) Name() string {
	return s.next.Name()
}

// Resolve delegates to the wrapped strategy and logs the outcome.
func (s *LoggingStrategy) Resolve(ctx context.Context, sc *iframer.StrategyContext) (embed *iframer.Embed, err error) {
	defer func(begin time.Time) {
		s.logger.Info("strategy",
			"strategy", s.next.Name(),
			"url", sc.URL,
			"hit", !embed.IsZero(),
			"domain_supported", sc.DomainSupported,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Resolve(ctx, sc)
}
