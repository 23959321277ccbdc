package resolve

import (
	"context"

	"github.com/fwojciec/iframer"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of resolutions ResolveAll runs at once
// when no limit is given.
const DefaultConcurrency = 8

// ResolveAll resolves every request with at most concurrency resolutions in
// flight. The result at index i belongs to reqs[i].
func ResolveAll(ctx context.Context, r iframer.Resolver, reqs []*iframer.Request, concurrency int) []*iframer.Media {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]*iframer.Media, len(reqs))
	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, req := range reqs {
		g.Go(func() error {
			results[i] = r.Resolve(ctx, req)
			return nil
		})
	}
	_ = g.Wait()
	return results
}
