package iframer

import (
	"strconv"
	"strings"
)

// MemoKey builds the cache key for a computation over a page.
// A nil document contributes an empty identity.
func MemoKey(pageURL string, doc Document, params Params) string {
	var b strings.Builder
	b.WriteString(pageURL)
	b.WriteByte(0)
	if doc != nil {
		b.WriteString(strconv.FormatUint(doc.Hash(), 16))
	}
	b.WriteByte(0)
	b.WriteString(params.Key())
	return b.String()
}
