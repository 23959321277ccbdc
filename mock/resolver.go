package mock

import (
	"context"

	"github.com/fwojciec/iframer"
)

var _ iframer.Resolver = (*Resolver)(nil)

// Resolver is a mock implementation of iframer.Resolver.
type Resolver struct {
	ResolveFn func(ctx context.Context, req *iframer.Request) *iframer.Media
}

func (r *Resolver) Resolve(ctx context.Context, req *iframer.Request) *iframer.Media {
	return r.ResolveFn(ctx, req)
}
