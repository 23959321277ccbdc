package mock

import (
	"context"

	"github.com/fwojciec/iframer"
)

var _ iframer.Strategy = (*Strategy)(nil)

// Strategy is a mock implementation of iframer.Strategy.
type Strategy struct {
	ResolveFn func(ctx context.Context, sc *iframer.StrategyContext) (*iframer.Embed, error)
	NameFn    func() string
}

func (s *Strategy) Resolve(ctx context.Context, sc *iframer.StrategyContext) (*iframer.Embed, error) {
	return s.ResolveFn(ctx, sc)
}

func (s *Strategy) Name() string {
	return s.NameFn()
}
