package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/iframer"
	iframerhttp "github.com/fwojciec/iframer/http"
	"github.com/fwojciec/iframer/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmbed(t *testing.T) {
	t.Parallel()

	t.Run("parses JSON with numeric and string dimensions", func(t *testing.T) {
		t.Parallel()

		body := `{"type":"video","version":"1.0","title":"T","width":640,"height":"360","thumbnail_width":480.5,"html":"<iframe src='https://p/v'></iframe>","extra":{"a":1}}`

		e, err := iframerhttp.ParseEmbed([]byte(body))
		require.NoError(t, err)

		assert.Equal(t, &iframer.Embed{
			Type:           "video",
			Version:        "1.0",
			Title:          "T",
			Width:          "640",
			Height:         "360",
			ThumbnailWidth: "480.5",
			HTML:           "<iframe src='https://p/v'></iframe>",
		}, e)
	})

	t.Run("ignores null fields", func(t *testing.T) {
		t.Parallel()

		e, err := iframerhttp.ParseEmbed([]byte(`{"title":null,"type":"link"}`))
		require.NoError(t, err)

		assert.Equal(t, &iframer.Embed{Type: "link"}, e)
	})

	t.Run("parses XML responses", func(t *testing.T) {
		t.Parallel()

		body := `<?xml version="1.0" encoding="utf-8"?>
<oembed>
  <type>video</type>
  <title>XML Title</title>
  <width>400</width>
  <html>&lt;iframe src="https://x/e"&gt;&lt;/iframe&gt;</html>
</oembed>`

		e, err := iframerhttp.ParseEmbed([]byte(body))
		require.NoError(t, err)

		assert.Equal(t, "video", e.Type)
		assert.Equal(t, "XML Title", e.Title)
		assert.Equal(t, "400", e.Width)
		assert.Equal(t, `<iframe src="https://x/e"></iframe>`, e.HTML)
	})

	t.Run("rejects malformed bodies", func(t *testing.T) {
		t.Parallel()

		for _, body := range []string{"", "not json", "[1,2]", "<html><body>no oembed</body></html>"} {
			_, err := iframerhttp.ParseEmbed([]byte(body))
			assert.Error(t, err, "body %q", body)
		}
	})
}

func TestEmbedClient_FetchEmbed(t *testing.T) {
	t.Parallel()

	t.Run("fetches and parses endpoint response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "https://example.com/v/1", r.URL.Query().Get("url"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"type":"rich","title":"Hello"}`))
		}))
		defer server.Close()

		client := iframerhttp.NewEmbedClient()

		e, err := client.FetchEmbed(context.Background(), server.URL+"/oembed?url=https%3A%2F%2Fexample.com%2Fv%2F1")
		require.NoError(t, err)
		assert.Equal(t, "Hello", e.Title)
	})

	t.Run("returns error for non-2xx status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		_, err := iframerhttp.NewEmbedClient().FetchEmbed(context.Background(), server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
	})

	t.Run("times out slow endpoints", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte(`{"title":"late"}`))
		}))
		defer server.Close()

		client := iframerhttp.NewEmbedClient(iframerhttp.WithEmbedTimeout(10 * time.Millisecond))

		_, err := client.FetchEmbed(context.Background(), server.URL)
		require.Error(t, err)
	})

	t.Run("waits on the limiter with the endpoint host", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"title":"ok"}`))
		}))
		defer server.Close()

		var host string
		limiter := &mock.DomainLimiter{
			WaitFn: func(ctx context.Context, domain string) error {
				host = domain
				return nil
			},
		}

		_, err := iframerhttp.NewEmbedClient(iframerhttp.WithLimiter(limiter)).FetchEmbed(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1", host)
	})

	t.Run("returns limiter errors without calling the endpoint", func(t *testing.T) {
		t.Parallel()

		called := make(chan struct{}, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called <- struct{}{}
		}))
		defer server.Close()

		limiter := &mock.DomainLimiter{
			WaitFn: func(ctx context.Context, domain string) error {
				return errors.New("rate limited")
			},
		}

		_, err := iframerhttp.NewEmbedClient(iframerhttp.WithLimiter(limiter)).FetchEmbed(context.Background(), server.URL)
		require.Error(t, err)
		assert.Empty(t, called)
	})
}
