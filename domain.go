package iframer

import "context"

// DomainList decides whether a page's host is known to be embeddable.
type DomainList interface {
	Supports(pageURL string) bool
}

// AllDomains is a DomainList that supports every URL.
type AllDomains struct{}

// Supports always returns true.
func (AllDomains) Supports(string) bool { return true }

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
