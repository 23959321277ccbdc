package main

import (
	"encoding/json"

	"github.com/fwojciec/iframer"
	"github.com/fwojciec/iframer/resolve"
)

// Run executes the resolve command. Media records are printed one per line,
// in argument order.
func (c *ResolveCmd) Run(deps *Dependencies) error {
	reqs := make([]*iframer.Request, 0, len(c.URLs))
	for _, u := range c.URLs {
		req := &iframer.Request{
			URL:       u,
			SizeHints: iframer.SizeHints{MaxWidth: c.MaxWidth, MaxHeight: c.MaxHeight},
			Params:    c.Params,
		}
		if err := req.Validate(); err != nil {
			return err
		}
		reqs = append(reqs, req)
	}

	results := resolve.ResolveAll(deps.Ctx, deps.Resolver, reqs, deps.Config.Concurrency)

	enc := json.NewEncoder(deps.Stdout)
	if c.Pretty {
		enc.SetIndent("", "  ")
	}
	for _, media := range results {
		if err := enc.Encode(media); err != nil {
			return err
		}
	}
	return nil
}
