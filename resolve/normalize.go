package resolve

import (
	"net/url"

	"github.com/fwojciec/iframer"
	"github.com/fwojciec/iframer/goquery"
)

// Normalize merges page metadata and the winning strategy's embed into a
// Media record for href. embed may be nil. The MediaID is left empty.
//
// Title and author prefer the embed; description comes from the page.
// The thumbnail prefers the embed and falls back to the page image.
func Normalize(href string, meta iframer.Metadata, embed *iframer.Embed) *iframer.Media {
	if embed == nil {
		embed = &iframer.Embed{}
	}

	m := &iframer.Media{
		Href:         href,
		Domain:       Domain(href),
		Title:        firstNonEmpty(embed.Title, meta.Title),
		Description:  meta.Description,
		AuthorName:   firstNonEmpty(embed.AuthorName, meta.Author),
		Type:         embed.Type,
		ProviderName: embed.ProviderName,
		IframeWidth:  iframer.ParseDimension(embed.Width),
		IframeHeight: iframer.ParseDimension(embed.Height),
	}

	switch {
	case embed.ThumbnailURL != "":
		m.ThumbnailURL = embed.ThumbnailURL
		m.ThumbnailWidth = iframer.ParseDimension(embed.ThumbnailWidth)
		m.ThumbnailHeight = iframer.ParseDimension(embed.ThumbnailHeight)
	case meta.Image != "":
		m.ThumbnailURL = meta.Image
		m.ThumbnailWidth = iframer.ParseDimension(meta.ImageWidth)
		m.ThumbnailHeight = iframer.ParseDimension(meta.ImageHeight)
	}

	if iframe, ok := goquery.ExtractIframe(embed.HTML); ok {
		m.IframeSrc = iframe.Src
		if m.IframeWidth == nil {
			m.IframeWidth = iframer.ParseDimension(iframe.Width)
		}
		if m.IframeHeight == nil {
			m.IframeHeight = iframer.ParseDimension(iframe.Height)
		}
		if len(iframe.Attr) > 0 {
			m.IframeAttr = iframe.Attr
		}
	}

	return m
}

// Domain returns the host of rawURL, or "" if it has none.
func Domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
