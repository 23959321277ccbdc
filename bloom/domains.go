// Package bloom implements iframer.DomainList backed by a Bloom filter.
package bloom

import (
	"net/url"
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/iframer"
)

// DefaultFalsePositiveRate is the filter's target false positive rate.
// False positives are confirmed against an exact set, so this only affects speed.
const DefaultFalsePositiveRate = 0.001

var _ iframer.DomainList = (*DomainSet)(nil)

// DomainSet reports whether a URL's host, or any parent domain of it, is in
// the supported domain list. The Bloom filter rejects most unknown hosts
// without touching the exact set.
type DomainSet struct {
	filter *bloom.BloomFilter
	hosts  map[string]struct{}
}

// NewDomainSet builds a DomainSet from domain list entries. Entries may be
// bare hosts ("vimeo.com") or sample URLs with or without a scheme
// ("www.youtube.com/watch?v=..."); only the host is kept.
func NewDomainSet(domains []string) *DomainSet {
	s := &DomainSet{
		hosts: make(map[string]struct{}, len(domains)),
	}
	for _, d := range domains {
		if host := normalizeEntry(d); host != "" {
			s.hosts[host] = struct{}{}
		}
	}

	n := uint(len(s.hosts))
	if n == 0 {
		n = 1
	}
	s.filter = bloom.NewWithEstimates(n, DefaultFalsePositiveRate)
	for host := range s.hosts {
		s.filter.AddString(host)
	}
	return s
}

// Supports implements iframer.DomainList.
func (s *DomainSet) Supports(pageURL string) bool {
	u, err := url.Parse(pageURL)
	if err != nil {
		return false
	}
	host := normalizeHost(u.Hostname())
	if host == "" {
		return false
	}

	for {
		if s.filter.TestString(host) {
			if _, ok := s.hosts[host]; ok {
				return true
			}
		}
		i := strings.IndexByte(host, '.')
		if i < 0 {
			return false
		}
		host = host[i+1:]
		// Never match on a bare top-level domain.
		if !strings.Contains(host, ".") {
			return false
		}
	}
}

// Len returns the number of distinct hosts in the set.
func (s *DomainSet) Len() int {
	return len(s.hosts)
}

// normalizeEntry extracts the host from a domain list entry.
func normalizeEntry(entry string) string {
	entry = strings.TrimSpace(entry)
	if i := strings.Index(entry, "://"); i >= 0 {
		entry = entry[i+3:]
	}
	if i := strings.IndexAny(entry, "/?#"); i >= 0 {
		entry = entry[:i]
	}
	// The crawler's samples are sometimes truncated with an ellipsis.
	entry = strings.TrimRight(entry, ".")
	if i := strings.LastIndexByte(entry, ':'); i >= 0 {
		entry = entry[:i]
	}
	return normalizeHost(entry)
}

func normalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	return strings.TrimPrefix(host, "www.")
}
