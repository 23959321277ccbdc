package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/iframer"
	"github.com/fwojciec/iframer/prometheus"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Config   Config
	Resolver iframer.Resolver
	Metrics  *prometheus.Metrics
}

// CLI defines the command-line interface structure for Kong.
// Flags left unset fall back to the config file, then to defaults.
type CLI struct {
	ConfigFile string `name:"config" type:"path" env:"IFRAMER_CONFIG" help:"YAML config file"`
	LogLevel   string `default:"info" enum:"debug,info,warn,error" env:"IFRAMER_LOG_LEVEL" help:"Log level"`
	LogFormat  string `default:"text" enum:"text,json" env:"IFRAMER_LOG_FORMAT" help:"Log format"`

	Fetcher         string        `env:"IFRAMER_FETCHER" help:"Page fetch backend: http or rod"`
	FetchTimeout    time.Duration `env:"IFRAMER_FETCH_TIMEOUT" help:"Page fetch timeout (default 8s)"`
	EndpointTimeout time.Duration `env:"IFRAMER_ENDPOINT_TIMEOUT" help:"oEmbed endpoint timeout (default 8s)"`
	MaxPageBytes    int64         `env:"IFRAMER_MAX_PAGE_BYTES" help:"Maximum page size read"`
	UserAgent       string        `env:"IFRAMER_USER_AGENT" help:"User-Agent header for outgoing requests"`
	ProvidersFile   string        `type:"path" env:"IFRAMER_PROVIDERS_FILE" help:"oEmbed providers.json replacing the bundled list"`
	DomainsFile     string        `type:"path" env:"IFRAMER_DOMAINS_FILE" help:"Supported domain list (JSON array)"`
	EndpointRate    float64       `env:"IFRAMER_ENDPOINT_RATE" help:"Requests per second per oEmbed host (0 disables limiting)"`

	Resolve   ResolveCmd   `cmd:"" help:"Resolve URLs and print media records as JSON"`
	Serve     ServeCmd     `cmd:"" help:"Serve the resolution API over HTTP"`
	Providers ProvidersCmd `cmd:"" help:"Manage the oEmbed provider list"`
}

// ResolveCmd is the "resolve" subcommand.
type ResolveCmd struct {
	URLs        []string          `arg:"" name:"url" help:"Page URLs to resolve"`
	MaxWidth    int               `help:"Maximum embed width passed to providers"`
	MaxHeight   int               `help:"Maximum embed height passed to providers"`
	Params      map[string]string `short:"P" name:"param" help:"Extra provider parameter as key=value (repeatable)"`
	Concurrency int               `short:"c" env:"IFRAMER_CONCURRENCY" help:"Concurrent resolutions"`
	Pretty      bool              `help:"Indent JSON output"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Listen string `short:"l" env:"IFRAMER_LISTEN" help:"Listen address (default :8080)"`
}

// Config loads the config file, if any, and applies flags on top.
func (c *CLI) Config() (Config, error) {
	cfg := DefaultConfig()
	if c.ConfigFile != "" {
		loaded, err := LoadConfig(c.ConfigFile)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}

	overlay(&cfg.Fetcher, c.Fetcher)
	overlay(&cfg.FetchTimeout, c.FetchTimeout)
	overlay(&cfg.EndpointTimeout, c.EndpointTimeout)
	overlay(&cfg.MaxPageBytes, c.MaxPageBytes)
	overlay(&cfg.UserAgent, c.UserAgent)
	overlay(&cfg.ProvidersFile, c.ProvidersFile)
	overlay(&cfg.DomainsFile, c.DomainsFile)
	overlay(&cfg.EndpointRate, c.EndpointRate)
	overlay(&cfg.Concurrency, c.Resolve.Concurrency)
	overlay(&cfg.Listen, c.Serve.Listen)

	return cfg, cfg.Validate()
}

// overlay replaces dst with v unless v is the zero value.
func overlay[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}
