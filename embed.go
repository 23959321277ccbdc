package iframer

import "context"

// Embed is oEmbed-shaped data produced by a Strategy. Every field is
// optional and kept as a string, exactly as the source supplied it;
// numeric fields are parsed later with ParseDimension.
type Embed struct {
	Type            string `json:"type,omitempty"`
	Version         string `json:"version,omitempty"`
	Title           string `json:"title,omitempty"`
	AuthorName      string `json:"author_name,omitempty"`
	AuthorURL       string `json:"author_url,omitempty"`
	ProviderName    string `json:"provider_name,omitempty"`
	ProviderURL     string `json:"provider_url,omitempty"`
	CacheAge        string `json:"cache_age,omitempty"`
	Width           string `json:"width,omitempty"`
	Height          string `json:"height,omitempty"`
	ThumbnailURL    string `json:"thumbnail_url,omitempty"`
	ThumbnailWidth  string `json:"thumbnail_width,omitempty"`
	ThumbnailHeight string `json:"thumbnail_height,omitempty"`
	HTML            string `json:"html,omitempty"`
}

// IsZero reports whether the embed carries no data at all.
func (e *Embed) IsZero() bool {
	return e == nil || *e == Embed{}
}

// StrategyContext is the input shared by all strategies of one resolution.
type StrategyContext struct {
	// URL is the page URL being resolved.
	URL string

	// Document is the fetched page, or nil when nothing could be fetched.
	Document Document

	// Params are forwarded to oEmbed endpoints.
	Params Params

	// DomainSupported gates the strategies that rely on the page itself.
	DomainSupported bool
}

// Strategy attempts to produce an Embed for a page.
//
// A nil Embed with a nil error means the strategy does not apply. Errors
// are never fatal to a resolution: the chain treats them as "no result".
type Strategy interface {
	Resolve(ctx context.Context, sc *StrategyContext) (*Embed, error)

	// Name returns the strategy's identifier (e.g., "discovery", "provider").
	Name() string
}
