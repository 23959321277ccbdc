package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/fwojciec/iframer"
	"github.com/fwojciec/iframer/bloom"
	"github.com/fwojciec/iframer/fs"
	"github.com/fwojciec/iframer/goquery"
	iframerhttp "github.com/fwojciec/iframer/http"
	"github.com/fwojciec/iframer/oembed"
	"github.com/fwojciec/iframer/opengraph"
	"github.com/fwojciec/iframer/prometheus"
	"github.com/fwojciec/iframer/readability"
	"github.com/fwojciec/iframer/resolve"
	"github.com/fwojciec/iframer/rod"
	iframerslog "github.com/fwojciec/iframer/slog"
	"github.com/fwojciec/iframer/trafilatura"
)

// buildResolver wires the resolution pipeline described by cfg. The
// returned closer releases the page fetcher.
func buildResolver(cfg Config, logger *slog.Logger, metrics *prometheus.Metrics) (iframer.Resolver, io.Closer, error) {
	registry, err := loadRegistry(cfg.ProvidersFile)
	if err != nil {
		return nil, nil, err
	}

	domains, err := loadDomains(cfg.DomainsFile)
	if err != nil {
		return nil, nil, err
	}

	fetcher, err := newFetcher(cfg)
	if err != nil {
		return nil, nil, err
	}

	client := iframerslog.NewLoggingEmbedClient(
		iframerhttp.NewEmbedClient(
			iframerhttp.WithEmbedTimeout(cfg.EndpointTimeout),
			iframerhttp.WithEmbedUserAgent(cfg.UserAgent),
			iframerhttp.WithLimiter(resolve.NewDomainLimiter(cfg.EndpointRate)),
		),
		logger,
	)

	instrument := func(s iframer.Strategy) iframer.Strategy {
		return prometheus.NewStrategy(iframerslog.NewLoggingStrategy(s, logger), metrics)
	}
	chain := oembed.NewChain(
		instrument(oembed.NewDiscoveryStrategy(client)),
		instrument(oembed.NewProviderStrategy(registry, client)),
		instrument(oembed.NewPlayerStrategy()),
	)

	metadata := iframer.MetadataChain{
		goquery.NewMetadataExtractor(),
		opengraph.NewExtractor(),
		readability.NewExtractor(),
		trafilatura.NewExtractor(),
	}

	var resolver iframer.Resolver = resolve.NewResolver(
		iframerslog.NewLoggingFetcher(fetcher, logger),
		goquery.NewParser(),
		metadata,
		chain,
		resolve.WithDomains(domains),
		resolve.WithFetchTimeout(cfg.FetchTimeout),
	)
	resolver = iframerslog.NewLoggingResolver(resolver, logger)
	resolver = prometheus.NewResolver(resolver, metrics)

	return resolver, fetcher, nil
}

func newFetcher(cfg Config) (iframer.Fetcher, error) {
	if cfg.Fetcher == FetcherRod {
		f, err := rod.NewFetcher(
			rod.WithFetchTimeout(cfg.FetchTimeout),
			rod.WithUserAgent(cfg.UserAgent),
		)
		if err != nil {
			return nil, iframer.Errorf(iframer.EUNAVAILABLE, "failed to start browser (is Chrome or Chromium installed?): %v", err)
		}
		return f, nil
	}
	return iframerhttp.NewFetcher(
		iframerhttp.WithTimeout(cfg.FetchTimeout),
		iframerhttp.WithMaxBodyBytes(cfg.MaxPageBytes),
		iframerhttp.WithUserAgent(cfg.UserAgent),
	), nil
}

func loadRegistry(path string) (iframer.ProviderRegistry, error) {
	if path == "" {
		return oembed.DefaultRegistry(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, iframer.Errorf(iframer.ENOTFOUND, "providers file %q: %v", path, err)
	}
	defer f.Close()
	return oembed.LoadRegistry(f)
}

// loadDomains returns the domain gate. Without a list every domain is supported.
func loadDomains(path string) (iframer.DomainList, error) {
	if path == "" {
		return iframer.AllDomains{}, nil
	}
	domains, err := fs.LoadDomains(path)
	if err != nil {
		return nil, err
	}
	return bloom.NewDomainSet(domains), nil
}
