package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of pages rendered before Chrome is
// restarted. Chrome's memory use grows with every page and never returns
// to baseline, which matters on batches of thousands of shop pages.
const DefaultMaxPages = 75

// browser owns one headless Chrome and restarts it every maxPages pages.
type browser struct {
	mu       sync.Mutex
	current  *rod.Browser
	launcher *launcher.Launcher
	pages    int
	maxPages int
	closed   bool
}

// launch starts Chrome with flags that keep background tabs rendering.
func (b *browser) launch() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	br := rod.New().ControlURL(u)
	if err := br.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	b.current, b.launcher, b.pages = br, l, 0
	return nil
}

// acquire returns the browser to render the next page on, restarting
// Chrome first when the page budget is spent. A failed restart keeps the
// old browser.
func (b *browser) acquire() (*rod.Browser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, errClosed
	}

	if b.pages >= b.maxPages {
		oldBrowser, oldLauncher := b.current, b.launcher
		if err := b.launch(); err == nil {
			_ = oldBrowser.Close()
			oldLauncher.Kill()
		}
	}
	b.pages++
	return b.current, nil
}

// close shuts Chrome down. Later calls do nothing.
func (b *browser) close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	err := b.current.Close()
	b.launcher.Kill()
	return err
}

func (b *browser) pid() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.launcher == nil {
		return 0
	}
	return b.launcher.PID()
}
