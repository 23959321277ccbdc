package rod

import (
	"sync"
	"sync/atomic"

	"github.com/fwojciec/iframer"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultPagesPerBrowser is how many page loads one Chrome process serves
// before it is replaced.
const DefaultPagesPerBrowser = 75

// Pool owns a headless Chrome process and hands out tabs from it. Chrome's
// resident memory grows with every rendered page and never returns to its
// baseline, so the process is replaced after a fixed number of loads.
//
// Pool is safe for concurrent use.
type Pool struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher

	served atomic.Int64
	limit  int64
	closed atomic.Bool
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithPagesPerBrowser sets how many loads a browser serves before it is replaced.
func WithPagesPerBrowser(n int64) PoolOption {
	return func(p *Pool) {
		if n > 0 {
			p.limit = n
		}
	}
}

// NewPool launches a headless Chrome and returns a Pool around it.
// Close must be called to release the process.
func NewPool(opts ...PoolOption) (*Pool, error) {
	p := &Pool{limit: DefaultPagesPerBrowser}
	for _, opt := range opts {
		opt(p)
	}

	browser, lnchr, err := launch()
	if err != nil {
		return nil, err
	}
	p.browser, p.launcher = browser, lnchr
	return p, nil
}

// Page opens a blank tab. When the current browser has served its quota a
// fresh one is launched first. The returned release func closes the tab and
// counts it toward the quota.
func (p *Pool) Page() (*rod.Page, func(), error) {
	if p.closed.Load() {
		return nil, nil, iframer.Errorf(iframer.EUNAVAILABLE, "browser pool is closed")
	}

	p.mu.Lock()
	if p.served.Load() >= p.limit {
		p.replace()
	}
	browser := p.browser
	p.mu.Unlock()

	if browser == nil {
		return nil, nil, iframer.Errorf(iframer.EUNAVAILABLE, "browser pool is closed")
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, nil, iframer.Errorf(iframer.EUNAVAILABLE, "opening tab: %v", err)
	}
	release := func() {
		_ = page.Close()
		p.served.Add(1)
	}
	return page, release, nil
}

// PID returns the process ID of the current Chrome launcher, or 0 once closed.
func (p *Pool) PID() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.launcher == nil {
		return 0
	}
	return p.launcher.PID()
}

// Close shuts the browser down. Close is safe to call multiple times.
func (p *Pool) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var err error
	if p.browser != nil {
		err = p.browser.Close()
		p.browser = nil
	}
	if p.launcher != nil {
		p.launcher.Kill()
		p.launcher = nil
	}
	return err
}

// replace swaps in a freshly launched browser. The old one keeps serving if
// the launch fails. Must be called with mu held.
func (p *Pool) replace() {
	browser, lnchr, err := launch()
	if err != nil {
		return
	}

	old, oldLauncher := p.browser, p.launcher
	p.browser, p.launcher = browser, lnchr
	p.served.Store(0)

	if old != nil {
		_ = old.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
}

func launch() (*rod.Browser, *launcher.Launcher, error) {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := lnchr.Launch()
	if err != nil {
		return nil, nil, iframer.Errorf(iframer.EUNAVAILABLE, "launching browser: %v", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return nil, nil, iframer.Errorf(iframer.EUNAVAILABLE, "connecting to browser: %v", err)
	}
	return browser, lnchr, nil
}
