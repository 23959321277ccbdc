package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/iframer/fs"
	iframerhttp "github.com/fwojciec/iframer/http"
	"github.com/fwojciec/iframer/oembed"
)

// DefaultProvidersSource is the canonical oEmbed provider list.
const DefaultProvidersSource = "https://oembed.com/providers.json"

// ProvidersCmd groups provider list commands.
type ProvidersCmd struct {
	Sync ProvidersSyncCmd `cmd:"" help:"Download the oEmbed provider list for use with --providers-file"`
}

// ProvidersSyncCmd is the "providers sync" subcommand.
type ProvidersSyncCmd struct {
	Source string `default:"${providers_source}" help:"Provider list URL"`
	Output string `short:"o" type:"path" required:"" help:"File to write"`
}

// Run downloads the provider list, checks that it parses and writes it to Output.
func (c *ProvidersSyncCmd) Run(deps *Dependencies) error {
	fetcher := iframerhttp.NewFetcher(
		iframerhttp.WithTimeout(deps.Config.FetchTimeout),
		iframerhttp.WithUserAgent(deps.Config.UserAgent),
	)
	defer fetcher.Close()

	body, err := fetcher.Fetch(deps.Ctx, c.Source)
	if err != nil {
		return fmt.Errorf("fetching provider list: %w", err)
	}

	registry, err := oembed.LoadRegistry(strings.NewReader(body))
	if err != nil {
		return err
	}

	if err := fs.WriteFile(c.Output, []byte(body)); err != nil {
		return fmt.Errorf("writing provider list: %w", err)
	}

	deps.Logger.Info("providers synced", "source", c.Source, "output", c.Output, "providers", registry.Len())
	fmt.Fprintf(deps.Stdout, "%d providers written to %s\n", registry.Len(), c.Output)
	return nil
}
