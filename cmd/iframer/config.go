package main

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/fwojciec/iframer"
	iframerhttp "github.com/fwojciec/iframer/http"
	"github.com/fwojciec/iframer/resolve"
	"gopkg.in/yaml.v3"
)

// Fetch backends.
const (
	FetcherHTTP = "http"
	FetcherRod  = "rod"
)

// Config holds the settings shared by all commands.
type Config struct {
	Fetcher         string        `yaml:"fetcher"`
	FetchTimeout    time.Duration `yaml:"fetch_timeout"`
	EndpointTimeout time.Duration `yaml:"endpoint_timeout"`
	MaxPageBytes    int64         `yaml:"max_page_bytes"`
	UserAgent       string        `yaml:"user_agent"`
	ProvidersFile   string        `yaml:"providers_file"`
	DomainsFile     string        `yaml:"domains_file"`
	EndpointRate    float64       `yaml:"endpoint_rate"`
	Concurrency     int           `yaml:"concurrency"`
	Listen          string        `yaml:"listen"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Fetcher:         FetcherHTTP,
		FetchTimeout:    resolve.DefaultFetchTimeout,
		EndpointTimeout: iframerhttp.DefaultEmbedTimeout,
		MaxPageBytes:    iframerhttp.DefaultMaxBodyBytes,
		UserAgent:       iframerhttp.DefaultUserAgent,
		Concurrency:     resolve.DefaultConcurrency,
		Listen:          ":8080",
	}
}

// LoadConfig reads a YAML config file. Keys absent from the file keep
// their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, iframer.Errorf(iframer.ENOTFOUND, "config file %q not found", path)
	} else if err != nil {
		return Config{}, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, iframer.Errorf(iframer.EINVALID, "config file %q: %v", path, err)
	}
	return cfg, nil
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	switch {
	case c.Fetcher != FetcherHTTP && c.Fetcher != FetcherRod:
		return iframer.Errorf(iframer.EINVALID, "fetcher must be %q or %q, got %q", FetcherHTTP, FetcherRod, c.Fetcher)
	case c.FetchTimeout <= 0:
		return iframer.Errorf(iframer.EINVALID, "fetch timeout must be positive")
	case c.EndpointTimeout <= 0:
		return iframer.Errorf(iframer.EINVALID, "endpoint timeout must be positive")
	case c.MaxPageBytes <= 0:
		return iframer.Errorf(iframer.EINVALID, "max page bytes must be positive")
	case c.EndpointRate < 0:
		return iframer.Errorf(iframer.EINVALID, "endpoint rate must not be negative")
	case c.Concurrency <= 0:
		return iframer.Errorf(iframer.EINVALID, "concurrency must be positive")
	}
	return nil
}
