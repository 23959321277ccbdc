package main

import (
	iframerhttp "github.com/fwojciec/iframer/http"
)

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	handler := iframerhttp.NewHandler(deps.Resolver, deps.Logger,
		iframerhttp.WithMetricsHandler(deps.Metrics.Handler()),
	)

	server := iframerhttp.NewServer(deps.Config.Listen, handler)
	if err := server.Open(); err != nil {
		return err
	}
	deps.Logger.Info("listening", "url", server.URL())

	<-deps.Ctx.Done()
	return server.Close()
}
