package mock

import (
	"context"

	"github.com/fwojciec/iframer"
)

var (
	_ iframer.DomainList    = (*DomainList)(nil)
	_ iframer.DomainLimiter = (*DomainLimiter)(nil)
)

// DomainList is a mock implementation of iframer.DomainList.
type DomainList struct {
	SupportsFn func(pageURL string) bool
}

func (l *DomainList) Supports(pageURL string) bool {
	return l.SupportsFn(pageURL)
}

// DomainLimiter is a mock implementation of iframer.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
