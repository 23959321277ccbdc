package http

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/iframer"
	"github.com/tidwall/gjson"
)

// DefaultEmbedTimeout bounds each oEmbed endpoint call.
const DefaultEmbedTimeout = 8 * time.Second

// maxEmbedBytes caps oEmbed response bodies.
const maxEmbedBytes = 1 << 20

// Ensure EmbedClient implements iframer.EmbedClient at compile time.
var _ iframer.EmbedClient = (*EmbedClient)(nil)

// EmbedClient calls oEmbed endpoints and parses their JSON or XML responses.
// Numeric fields are read leniently: both 640 and "640" become "640".
type EmbedClient struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	limiter   iframer.DomainLimiter
}

// EmbedOption configures an EmbedClient.
type EmbedOption func(*EmbedClient)

// WithEmbedTimeout sets the per-call timeout.
// Defaults to DefaultEmbedTimeout (8s) if not specified.
func WithEmbedTimeout(d time.Duration) EmbedOption {
	return func(c *EmbedClient) {
		c.timeout = d
	}
}

// WithEmbedUserAgent sets the User-Agent header.
func WithEmbedUserAgent(ua string) EmbedOption {
	return func(c *EmbedClient) {
		c.userAgent = ua
	}
}

// WithLimiter rate limits calls per endpoint host.
func WithLimiter(l iframer.DomainLimiter) EmbedOption {
	return func(c *EmbedClient) {
		c.limiter = l
	}
}

// NewEmbedClient creates a new EmbedClient.
func NewEmbedClient(opts ...EmbedOption) *EmbedClient {
	c := &EmbedClient{
		timeout:   DefaultEmbedTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.client = &http.Client{Timeout: c.timeout}
	return c
}

// FetchEmbed retrieves and parses the oEmbed response at endpointURL.
func (c *EmbedClient) FetchEmbed(ctx context.Context, endpointURL string) (*iframer.Embed, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if c.limiter != nil {
		u, err := url.Parse(endpointURL)
		if err != nil {
			return nil, iframer.Errorf(iframer.EINVALID, "invalid endpoint URL: %v", err)
		}
		if err := c.limiter.Wait(ctx, u.Hostname()); err != nil {
			return nil, err
		}
	}

	body, err := get(ctx, c.client, endpointURL, c.userAgent, "application/json, text/xml;q=0.9", maxEmbedBytes)
	if err != nil {
		return nil, err
	}

	return ParseEmbed(body)
}

// ParseEmbed parses an oEmbed response body. XML bodies are detected by
// their leading '<'; anything else must be a JSON object.
func ParseEmbed(body []byte) (*iframer.Embed, error) {
	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '<' {
		return parseXMLEmbed(body)
	}
	return parseJSONEmbed(body)
}

func parseJSONEmbed(body []byte) (*iframer.Embed, error) {
	if !gjson.ValidBytes(body) {
		return nil, iframer.Errorf(iframer.EINVALID, "malformed oEmbed JSON")
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, iframer.Errorf(iframer.EINVALID, "oEmbed JSON is not an object")
	}

	e := &iframer.Embed{}
	root.ForEach(func(key, value gjson.Result) bool {
		switch value.Type {
		case gjson.String, gjson.Number:
			setEmbedField(e, key.String(), value.String())
		}
		return true
	})
	return e, nil
}

func parseXMLEmbed(body []byte) (*iframer.Embed, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, iframer.Errorf(iframer.EINVALID, "malformed oEmbed XML: %v", err)
	}
	root := doc.SelectElement("oembed")
	if root == nil {
		return nil, iframer.Errorf(iframer.EINVALID, "oEmbed XML has no oembed element")
	}

	e := &iframer.Embed{}
	for _, child := range root.ChildElements() {
		setEmbedField(e, child.Tag, child.Text())
	}
	return e, nil
}

func setEmbedField(e *iframer.Embed, key, value string) {
	switch key {
	case "type":
		e.Type = value
	case "version":
		e.Version = value
	case "title":
		e.Title = value
	case "author_name":
		e.AuthorName = value
	case "author_url":
		e.AuthorURL = value
	case "provider_name":
		e.ProviderName = value
	case "provider_url":
		e.ProviderURL = value
	case "cache_age":
		e.CacheAge = value
	case "width":
		e.Width = value
	case "height":
		e.Height = value
	case "thumbnail_url":
		e.ThumbnailURL = value
	case "thumbnail_width":
		e.ThumbnailWidth = value
	case "thumbnail_height":
		e.ThumbnailHeight = value
	case "html":
		e.HTML = value
	}
}
