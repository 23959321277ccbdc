package main_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/iframer"
	main "github.com/fwojciec/iframer/cmd/iframer"
	"github.com/fwojciec/iframer/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("shows help without arguments", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), nil, stdout, &bytes.Buffer{})

		require.Error(t, err)
		assert.Contains(t, stdout.String(), "Usage:")
	})

	t.Run("help succeeds", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{"--help"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "resolve")
		assert.Contains(t, stdout.String(), "serve")
	})

	t.Run("prints one media record per URL in order", func(t *testing.T) {
		t.Parallel()

		var (
			mu   sync.Mutex
			seen []*iframer.Request
		)
		m := main.NewMain()
		m.Resolver = &mock.Resolver{
			ResolveFn: func(_ context.Context, req *iframer.Request) *iframer.Media {
				mu.Lock()
				seen = append(seen, req)
				mu.Unlock()
				return &iframer.Media{MediaID: "id", Href: req.URL}
			},
		}
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{
			"resolve", "https://a.example/1", "https://b.example/2",
			"--max-width", "640", "-P", "theme=dark",
		}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
		require.Len(t, lines, 2)
		var first, second iframer.Media
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
		require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
		assert.Equal(t, "https://a.example/1", first.Href)
		assert.Equal(t, "https://b.example/2", second.Href)

		require.Len(t, seen, 2)
		for _, req := range seen {
			assert.Equal(t, 640, req.SizeHints.MaxWidth)
			assert.Equal(t, map[string]string{"theme": "dark"}, req.Params)
		}
	})

	t.Run("rejects empty URLs", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Resolver = &mock.Resolver{}

		err := m.Run(context.Background(), []string{"resolve", " "}, &bytes.Buffer{}, &bytes.Buffer{})

		assert.Equal(t, iframer.EINVALID, iframer.ErrorCode(err))
	})

	t.Run("resolves against real pages with the wired pipeline", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			fmt.Fprint(w, `<html><head>
				<title>Clip</title>
				<meta name="twitter:player" content="https://player.example/embed/1">
			</head></html>`)
		}))
		t.Cleanup(srv.Close)
		stdout := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{"resolve", srv.URL + "/clip"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		var media iframer.Media
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &media))
		assert.Equal(t, "Clip", media.Title)
		assert.Equal(t, "https://player.example/embed/1", media.IframeSrc)
		assert.NotEmpty(t, media.MediaID)
	})

	t.Run("gates page strategies with the domain list", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<meta name="twitter:player" content="https://player.example/embed/1">`)
		}))
		t.Cleanup(srv.Close)
		domains := filepath.Join(t.TempDir(), "domains.json")
		require.NoError(t, os.WriteFile(domains, []byte(`["vimeo.com"]`), 0o644))
		stdout := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{
			"--domains-file", domains, "resolve", srv.URL,
		}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		var media iframer.Media
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &media))
		assert.Empty(t, media.IframeSrc)
	})

	t.Run("serves the API until canceled", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Resolver = &mock.Resolver{
			ResolveFn: func(_ context.Context, req *iframer.Request) *iframer.Media {
				return &iframer.Media{MediaID: "id", Href: req.URL}
			},
		}
		ctx, cancel := context.WithCancel(context.Background())
		stderr := &syncBuffer{}
		done := make(chan error, 1)

		go func() {
			done <- m.Run(ctx, []string{"--log-format", "json", "serve", "--listen", "127.0.0.1:0"}, &bytes.Buffer{}, stderr)
		}()

		addr := waitForListen(t, stderr)
		resp, err := http.Get(addr + "/media?url=https://vimeo.com/1")
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		cancel()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("serve did not stop after cancel")
		}
	})
}

// waitForListen reads the JSON log until the server reports its URL.
func waitForListen(t *testing.T, logs *syncBuffer) string {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		scanner := bufio.NewScanner(strings.NewReader(logs.String()))
		for scanner.Scan() {
			var entry struct {
				Msg string `json:"msg"`
				URL string `json:"url"`
			}
			if json.Unmarshal(scanner.Bytes(), &entry) == nil && entry.Msg == "listening" {
				return entry.URL
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("server did not start")
	return ""
}

func TestMain_ProvidersSync(t *testing.T) {
	t.Parallel()

	t.Run("writes the downloaded provider list", func(t *testing.T) {
		t.Parallel()

		const list = `[{"provider_name":"Clips","provider_url":"https://clips.example/","endpoints":[{"schemes":["https://clips.example/v/*"],"url":"https://clips.example/oembed"}]}]`
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(list))
		}))
		defer srv.Close()
		out := filepath.Join(t.TempDir(), "providers.json")
		stdout := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(),
			[]string{"providers", "sync", "--source", srv.URL, "-o", out},
			stdout, &bytes.Buffer{})

		require.NoError(t, err)
		got, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.JSONEq(t, list, string(got))
		assert.Contains(t, stdout.String(), "1 providers written")
	})

	t.Run("runs while the configured providers file is missing", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		}))
		defer srv.Close()
		out := filepath.Join(t.TempDir(), "providers.json")

		err := main.NewMain().Run(context.Background(),
			[]string{"--providers-file", out, "providers", "sync", "--source", srv.URL, "-o", out},
			&bytes.Buffer{}, &bytes.Buffer{})

		require.NoError(t, err)
		assert.FileExists(t, out)
	})

	t.Run("keeps the existing file when the download is not a provider list", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>maintenance</html>`))
		}))
		defer srv.Close()
		out := filepath.Join(t.TempDir(), "providers.json")
		require.NoError(t, os.WriteFile(out, []byte(`[]`), 0644))

		err := main.NewMain().Run(context.Background(),
			[]string{"providers", "sync", "--source", srv.URL, "-o", out},
			&bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
		assert.Equal(t, iframer.EINVALID, iframer.ErrorCode(err))
		got, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, `[]`, string(got))
	})
}
