// Package oembed implements the embed strategy chain: oEmbed discovery from
// page markup, the static provider registry, and the player-card fallback.
package oembed

import (
	"context"
	"fmt"

	"github.com/fwojciec/iframer"
)

var _ iframer.Strategy = (*Chain)(nil)

// Chain tries strategies in order and returns the first non-empty Embed.
//
// Strategy errors and panics count as "no result" and the next strategy is
// tried. Resolve therefore never returns an error.
type Chain struct {
	Strategies []iframer.Strategy
}

// NewChain returns a chain of the given strategies.
func NewChain(strategies ...iframer.Strategy) *Chain {
	return &Chain{Strategies: strategies}
}

// Name returns "chain".
func (c *Chain) Name() string { return "chain" }

// Resolve returns the first non-empty Embed, or nil when every strategy misses.
func (c *Chain) Resolve(ctx context.Context, sc *iframer.StrategyContext) (*iframer.Embed, error) {
	for _, s := range c.Strategies {
		if ctx.Err() != nil {
			return nil, nil
		}
		embed, err := try(ctx, s, sc)
		if err != nil || embed.IsZero() {
			continue
		}
		return embed, nil
	}
	return nil, nil
}

func try(ctx context.Context, s iframer.Strategy, sc *iframer.StrategyContext) (embed *iframer.Embed, err error) {
	defer func() {
		if r := recover(); r != nil {
			embed, err = nil, iframer.Errorf(iframer.EINTERNAL, "strategy %s panicked: %v", s.Name(), r)
		}
	}()
	embed, err = s.Resolve(ctx, sc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name(), err)
	}
	return embed, nil
}
