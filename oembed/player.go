package oembed

import (
	"context"
	"strings"

	"github.com/fwojciec/iframer"
	"github.com/fwojciec/iframer/memo"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var _ iframer.Strategy = (*PlayerStrategy)(nil)

// PlayerStrategy synthesizes iframe markup from the page's twitter:player
// card. It makes no network calls.
type PlayerStrategy struct {
	players *memo.Cache[string]
}

// NewPlayerStrategy creates a PlayerStrategy.
func NewPlayerStrategy() *PlayerStrategy {
	return &PlayerStrategy{players: memo.New[string]()}
}

// Name returns "player".
func (s *PlayerStrategy) Name() string { return "player" }

// Resolve builds an embed from the player card, if the page has one.
func (s *PlayerStrategy) Resolve(_ context.Context, sc *iframer.StrategyContext) (*iframer.Embed, error) {
	if !sc.DomainSupported || sc.Document == nil {
		return nil, nil
	}

	doc := sc.Document
	playerURL := s.players.Do(iframer.MemoKey(sc.URL, doc, nil), func() string {
		return metaContent(doc, "twitter:player")
	})
	if playerURL == "" {
		return nil, nil
	}

	width := metaContent(doc, "twitter:player:width")
	height := metaContent(doc, "twitter:player:height")

	markup, err := PlayerIframe(playerURL, width, height)
	if err != nil {
		return nil, err
	}
	return &iframer.Embed{
		Width:  width,
		Height: height,
		HTML:   markup,
	}, nil
}

// PlayerIframe renders an iframe for a player URL. Empty dimensions are omitted.
func PlayerIframe(src, width, height string) (string, error) {
	n := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Iframe,
		Data:     "iframe",
		Attr: []html.Attribute{
			{Key: "src", Val: src},
			{Key: "frameborder", Val: "0"},
			{Key: "scrolling", Val: "no"},
		},
	}
	if width != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "width", Val: width})
	}
	if height != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "height", Val: height})
	}

	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return "", err
	}
	return b.String(), nil
}

// metaContent reads a meta tag by name, falling back to property.
func metaContent(doc iframer.Document, name string) string {
	for _, key := range []string{"name", "property"} {
		if v, ok := doc.Attr(`meta[`+key+`="`+name+`"]`, "content"); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}
