package iframer

import (
	"encoding/json"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Request describes a single resolution call. It is not modified by the resolver.
type Request struct {
	// URL is the page to resolve. Media.Href always equals it verbatim.
	URL string `json:"url"`

	// SizeHints are forwarded to oEmbed endpoints as maxwidth/maxheight.
	SizeHints SizeHints `json:"sizeHints"`

	// Params are passed through verbatim to oEmbed endpoints.
	Params map[string]string `json:"params,omitempty"`
}

// SizeHints bound the dimensions of the returned embed. Zero means unset.
type SizeHints struct {
	MaxWidth  int `json:"maxWidth,omitempty"`
	MaxHeight int `json:"maxHeight,omitempty"`
}

// Validate returns an error if the request cannot be resolved at all.
func (r *Request) Validate() error {
	if strings.TrimSpace(r.URL) == "" {
		return Errorf(EINVALID, "url required")
	}
	return nil
}

// ProviderParams returns the parameters sent to oEmbed endpoints.
// Keys are lower-cased; explicit Params override size hints. When two keys
// differ only in case, the one sorting last wins.
func (r *Request) ProviderParams() Params {
	merged := make(map[string]string, len(r.Params)+2)
	if r.SizeHints.MaxWidth > 0 {
		merged["maxwidth"] = strconv.Itoa(r.SizeHints.MaxWidth)
	}
	if r.SizeHints.MaxHeight > 0 {
		merged["maxheight"] = strconv.Itoa(r.SizeHints.MaxHeight)
	}
	keys := make([]string, 0, len(r.Params))
	for k := range r.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		merged[strings.ToLower(k)] = r.Params[k]
	}
	return NewParams(merged)
}

// Param is a single provider parameter.
type Param struct {
	Key   string
	Value string
}

// Params is a set of provider parameters sorted by key.
// Two Params with the same pairs are equal regardless of how they were built.
type Params []Param

// NewParams builds sorted Params from a map.
func NewParams(m map[string]string) Params {
	params := make(Params, 0, len(m))
	for k, v := range m {
		params = append(params, Param{Key: k, Value: v})
	}
	sort.Slice(params, func(i, j int) bool {
		return params[i].Key < params[j].Key
	})
	return params
}

// Map returns the parameters as a map.
func (p Params) Map() map[string]string {
	m := make(map[string]string, len(p))
	for _, param := range p {
		m[param.Key] = param.Value
	}
	return m
}

// Key returns the canonical serialization of the parameters, used as part
// of memoization keys. encoding/json writes map keys in sorted order.
func (p Params) Key() string {
	b, err := json.Marshal(p.Map())
	if err != nil {
		return ""
	}
	return string(b)
}

// AppendTo adds the parameters to the query of u, lower-casing keys.
// The existing query is kept byte for byte.
func (p Params) AppendTo(u *url.URL) {
	if len(p) == 0 {
		return
	}
	q := make(url.Values, len(p))
	for _, param := range p {
		q.Add(strings.ToLower(param.Key), param.Value)
	}
	u.RawQuery = appendQuery(u.RawQuery, q.Encode())
}

func appendQuery(raw, extra string) string {
	switch {
	case extra == "":
		return raw
	case raw == "":
		return extra
	case strings.HasSuffix(raw, "&"):
		return raw + extra
	default:
		return raw + "&" + extra
	}
}
