package resolve_test

import (
	"testing"

	"github.com/fwojciec/iframer"
	"github.com/fwojciec/iframer/resolve"
	"github.com/stretchr/testify/assert"
)

func intPtr(n int) *int { return &n }

func TestNormalize(t *testing.T) {
	t.Parallel()

	t.Run("prefers embed title and author over page metadata", func(t *testing.T) {
		t.Parallel()

		m := resolve.Normalize("https://site.example/v",
			iframer.Metadata{Title: "Page title", Author: "Page author", Description: "Page description"},
			&iframer.Embed{Title: "Embed title", AuthorName: "Embed author"},
		)

		assert.Equal(t, "Embed title", m.Title)
		assert.Equal(t, "Embed author", m.AuthorName)
		assert.Equal(t, "Page description", m.Description)
	})

	t.Run("backfills title and author from page metadata", func(t *testing.T) {
		t.Parallel()

		m := resolve.Normalize("https://site.example/v",
			iframer.Metadata{Title: "Page title", Author: "Page author"},
			&iframer.Embed{HTML: `<iframe src="https://p/v"></iframe>`},
		)

		assert.Equal(t, "Page title", m.Title)
		assert.Equal(t, "Page author", m.AuthorName)
	})

	t.Run("copies iframe attributes except src, width and height", func(t *testing.T) {
		t.Parallel()

		m := resolve.Normalize("https://site.example/v", iframer.Metadata{}, &iframer.Embed{
			HTML: `<div><iframe SRC="https://p/v" Width="640" height="360" allow="fullscreen" title="Player"></iframe><iframe src="https://p/second"></iframe></div>`,
		})

		assert.Equal(t, "https://p/v", m.IframeSrc)
		assert.Equal(t, map[string]string{"allow": "fullscreen", "title": "Player"}, m.IframeAttr)
		assert.NotContains(t, m.IframeAttr, "src")
		assert.NotContains(t, m.IframeAttr, "width")
		assert.NotContains(t, m.IframeAttr, "height")
	})

	t.Run("prefers embed dimensions over iframe attributes", func(t *testing.T) {
		t.Parallel()

		m := resolve.Normalize("https://site.example/v", iframer.Metadata{}, &iframer.Embed{
			Width:  "480",
			Height: "270",
			HTML:   `<iframe src="https://p/v" width="100%" height="360"></iframe>`,
		})

		assert.Equal(t, intPtr(480), m.IframeWidth)
		assert.Equal(t, intPtr(270), m.IframeHeight)
	})

	t.Run("leaves non-numeric dimensions unset", func(t *testing.T) {
		t.Parallel()

		m := resolve.Normalize("https://site.example/v", iframer.Metadata{}, &iframer.Embed{
			Width:          "abc",
			Height:         "",
			ThumbnailURL:   "https://p/t.jpg",
			ThumbnailWidth: "NaN",
			HTML:           `<iframe src="https://p/v" width="auto"></iframe>`,
		})

		assert.Nil(t, m.IframeWidth)
		assert.Nil(t, m.IframeHeight)
		assert.Nil(t, m.ThumbnailWidth)
		assert.Nil(t, m.ThumbnailHeight)
	})

	t.Run("leaves out-of-range dimensions unset", func(t *testing.T) {
		t.Parallel()

		m := resolve.Normalize("https://site.example/v", iframer.Metadata{}, &iframer.Embed{
			Width:           "1e30",
			Height:          "-1e30",
			ThumbnailURL:    "https://p/t.jpg",
			ThumbnailWidth:  "99999999999",
			ThumbnailHeight: "1e30",
			HTML:            `<iframe src="https://p/v"></iframe>`,
		})

		assert.Nil(t, m.IframeWidth)
		assert.Nil(t, m.IframeHeight)
		assert.Nil(t, m.ThumbnailWidth)
		assert.Nil(t, m.ThumbnailHeight)
	})

	t.Run("leaves iframe fields unset without iframe markup", func(t *testing.T) {
		t.Parallel()

		m := resolve.Normalize("https://site.example/v", iframer.Metadata{}, &iframer.Embed{
			Type: "photo",
			HTML: `<blockquote>quoted</blockquote>`,
		})

		assert.Empty(t, m.IframeSrc)
		assert.Nil(t, m.IframeAttr)
		assert.Equal(t, "photo", m.Type)
	})

	t.Run("takes the thumbnail from the embed first", func(t *testing.T) {
		t.Parallel()

		m := resolve.Normalize("https://site.example/v",
			iframer.Metadata{Image: "https://site.example/og.png", ImageWidth: "1200"},
			&iframer.Embed{ThumbnailURL: "https://p/t.jpg", ThumbnailWidth: "480", ThumbnailHeight: "360"},
		)

		assert.Equal(t, "https://p/t.jpg", m.ThumbnailURL)
		assert.Equal(t, intPtr(480), m.ThumbnailWidth)
		assert.Equal(t, intPtr(360), m.ThumbnailHeight)
	})

	t.Run("falls back to the page image for the thumbnail", func(t *testing.T) {
		t.Parallel()

		m := resolve.Normalize("https://site.example/v",
			iframer.Metadata{Image: "https://site.example/og.png", ImageWidth: "1200", ImageHeight: "630"},
			nil,
		)

		assert.Equal(t, "https://site.example/og.png", m.ThumbnailURL)
		assert.Equal(t, intPtr(1200), m.ThumbnailWidth)
		assert.Equal(t, intPtr(630), m.ThumbnailHeight)
		assert.Empty(t, m.ThumbnailImageID)
	})

	t.Run("keeps href verbatim", func(t *testing.T) {
		t.Parallel()

		href := "HTTPS://Site.Example/a/../b?x=1#frag"

		m := resolve.Normalize(href, iframer.Metadata{}, nil)

		assert.Equal(t, href, m.Href)
	})
}

func TestDomain(t *testing.T) {
	t.Parallel()

	t.Run("returns the host of the URL", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "x.example.com", resolve.Domain("https://x.example.com/path"))
	})

	t.Run("drops the port", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "x.example.com", resolve.Domain("https://x.example.com:8443/path"))
	})

	t.Run("returns empty string for invalid URLs", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, resolve.Domain("not a url"))
		assert.Empty(t, resolve.Domain("http://[::1"))
		assert.Empty(t, resolve.Domain(""))
	})
}
