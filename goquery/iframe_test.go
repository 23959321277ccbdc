package goquery_test

import (
	"testing"

	"github.com/fwojciec/iframer/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractIframe(t *testing.T) {
	t.Parallel()

	t.Run("separates src and dimensions from other attributes", func(t *testing.T) {
		t.Parallel()

		iframe, ok := goquery.ExtractIframe(`<iframe src='https://p/v' width='640' height='360' allow='fullscreen'></iframe>`)

		require.True(t, ok)
		assert.Equal(t, "https://p/v", iframe.Src)
		assert.Equal(t, "640", iframe.Width)
		assert.Equal(t, "360", iframe.Height)
		assert.Equal(t, map[string]string{"allow": "fullscreen"}, iframe.Attr)
	})

	t.Run("uses only the first iframe", func(t *testing.T) {
		t.Parallel()

		iframe, ok := goquery.ExtractIframe(`<div><iframe src="https://a"></iframe><iframe src="https://b"></iframe></div>`)

		require.True(t, ok)
		assert.Equal(t, "https://a", iframe.Src)
	})

	t.Run("treats attribute names case-insensitively", func(t *testing.T) {
		t.Parallel()

		iframe, ok := goquery.ExtractIframe(`<IFRAME SRC="https://a" WIDTH="10" FrameBorder="0"></IFRAME>`)

		require.True(t, ok)
		assert.Equal(t, "https://a", iframe.Src)
		assert.Equal(t, "10", iframe.Width)
		assert.Equal(t, map[string]string{"frameborder": "0"}, iframe.Attr)
	})

	t.Run("unescapes entities in src", func(t *testing.T) {
		t.Parallel()

		iframe, ok := goquery.ExtractIframe(`<iframe src="https://p/v?a=1&amp;b=2"></iframe>`)

		require.True(t, ok)
		assert.Equal(t, "https://p/v?a=1&b=2", iframe.Src)
	})

	t.Run("returns false without an iframe", func(t *testing.T) {
		t.Parallel()

		_, ok := goquery.ExtractIframe(`<blockquote class="twitter-tweet"><a href="https://x">x</a></blockquote>`)
		assert.False(t, ok)

		_, ok = goquery.ExtractIframe("")
		assert.False(t, ok)
	})
}
